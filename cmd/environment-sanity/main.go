// Package main provides the environment-sanity entry point: it filters the
// inherited environment through the black list, white list and settings of
// the invoked program and then replaces itself with that program.
//
// Usage:
//
//	environment-sanity PROGRAM [ARG...]
package main

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/isseis/go-env-sanity/internal/cli"
	"github.com/isseis/go-env-sanity/internal/config"
	"github.com/isseis/go-env-sanity/internal/configpath"
	"github.com/isseis/go-env-sanity/internal/envlist"
	"github.com/isseis/go-env-sanity/internal/envvar"
	"github.com/isseis/go-env-sanity/internal/launcher"
	"github.com/isseis/go-env-sanity/internal/logging"
	"github.com/isseis/go-env-sanity/internal/terminal"
)

// process is the part of the operating system a run touches.
type process struct {
	args        []string
	environ     []string
	stderr      io.Writer
	stderrFd    uintptr
	goos        string
	resolveHome func() (string, error)
	execer      launcher.Execer
}

func main() {
	// Generate run ID early for error handling
	runID := logging.GenerateRunID()

	// run only returns on failure; a successful exec replaces this process
	if err := run(runID, process{
		args:        os.Args[1:],
		environ:     os.Environ(),
		stderr:      os.Stderr,
		stderrFd:    os.Stderr.Fd(),
		goos:        runtime.GOOS,
		resolveHome: configpath.ResolveHome,
		execer:      launcher.DefaultExecer,
	}); err != nil {
		var fatalErr *logging.FatalError
		if !errors.As(err, &fatalErr) {
			fatalErr = fatal(logging.ErrorTypeExec, "main", "", runID, err)
		}
		logging.HandleFatal(os.Stderr, slog.Default(), fatalErr)
		os.Exit(logging.ExitCode)
	}
}

func run(runID string, p process) error {
	// The snapshot is the only view of the inherited environment; HOME is
	// removed from the live environment below.
	snapshot := envvar.Snapshot(p.environ)
	capabilities := terminal.NewCapabilities(terminal.Options{
		Fd:     p.stderrFd,
		Lookup: snapshot.LookupString,
	})

	bootstrap, err := logging.Setup(logging.LoggerConfig{
		Level:        slog.LevelWarn,
		RunID:        runID,
		Writer:       p.stderr,
		Capabilities: capabilities,
	})
	if err != nil {
		return fatal(logging.ErrorTypeLogSetup, "logging", "Failed to setup logger", runID, err)
	}
	slog.SetDefault(bootstrap.Logger)

	invocation, err := cli.ParseArguments(p.args)
	if err != nil {
		return fatal(logging.ErrorTypeInvalidArguments, "cli", "", runID, err)
	}

	home, err := p.resolveHome()
	if err != nil {
		return fatal(logging.ErrorTypeHomeUnavailable, "configpath", "", runID, err)
	}
	locator := configpath.NewLocator(home)

	cfg, err := config.NewLoader().Load(locator.ToolConfigFile())
	if err != nil {
		return fatal(logging.ErrorTypeConfigParsing, "config", "Failed to load "+locator.ToolConfigFile(), runID, err)
	}
	level, err := cfg.Logging.SlogLevel()
	if err != nil {
		return fatal(logging.ErrorTypeConfigParsing, "config", "", runID, err)
	}

	logger, err := logging.Setup(logging.LoggerConfig{
		Level:        level,
		LogDir:       cfg.Logging.Dir,
		RunID:        runID,
		Writer:       p.stderr,
		Capabilities: capabilities,
	})
	if err != nil {
		return fatal(logging.ErrorTypeLogSetup, "logging", "Failed to setup logger", runID, err)
	}
	slog.SetDefault(logger.Logger)
	logger.Debug("Starting", "program", invocation.Program, "run_id", runID, "log_file", logger.Path)

	plan, err := launcher.Prepare(launcher.Options{
		Invocation: invocation,
		Locator:    locator,
		Inherited:  snapshot,
		GOOS:       p.goos,
		Logger:     logger.Logger,
	})
	if err != nil {
		return fatal(classifyPrepareError(err), "launcher", "", runID, err)
	}

	// The log file is opened close-on-exec and stays usable if exec fails.
	if err := launcher.Exec(plan, p.execer); err != nil {
		return fatal(logging.ErrorTypeExec, "launcher", "", runID, err)
	}
	return nil
}

func classifyPrepareError(err error) logging.ErrorType {
	var collision *envlist.DefaultCollisionError
	switch {
	case errors.As(err, &collision):
		return logging.ErrorTypeDefaultCollision
	case errors.Is(err, launcher.ErrNotFound):
		return logging.ErrorTypeProgramNotFound
	default:
		return logging.ErrorTypeListFile
	}
}

func fatal(errType logging.ErrorType, component, message, runID string, err error) *logging.FatalError {
	return &logging.FatalError{
		Type:      errType,
		Message:   message,
		Component: component,
		RunID:     runID,
		Err:       err,
	}
}

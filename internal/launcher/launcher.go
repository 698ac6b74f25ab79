// Package launcher builds the sanitized environment for a program and
// replaces the current process with it.
//
// Prepare runs the fixed pipeline:
//
//  1. black list from defaults, extended by the program's black file
//  2. white list from defaults checked against the black list, extended by
//     the program's white file
//  3. settings from computed defaults, extended by the program's settings file
//  4. inherited environment filtered through the white and black lists
//  5. settings overlaid on the filtered environment
//
// and Exec performs the final process replacement.
package launcher

import (
	"log/slog"

	"github.com/isseis/go-env-sanity/internal/cli"
	"github.com/isseis/go-env-sanity/internal/configpath"
	"github.com/isseis/go-env-sanity/internal/defaults"
	"github.com/isseis/go-env-sanity/internal/envlist"
	"github.com/isseis/go-env-sanity/internal/envvar"
)

// Options are the inputs of one run.
type Options struct {
	Invocation cli.Invocation
	Locator    configpath.Locator
	// Inherited is the environment snapshot taken at startup. It is the only
	// view of the inherited environment the pipeline uses.
	Inherited envvar.Environment
	// GOOS selects OS-specific defaults; normally runtime.GOOS.
	GOOS   string
	Logger *slog.Logger
}

// Plan is everything needed to replace the process.
type Plan struct {
	Program string
	// Path is the resolved executable.
	Path string
	// Args excludes the program name.
	Args []string
	Env  envvar.Environment
}

// Argv returns the argument vector, starting with the program name.
func (p *Plan) Argv() []string {
	argv := make([]string, 0, len(p.Args)+1)
	argv = append(argv, p.Program)
	return append(argv, p.Args...)
}

// Prepare builds the Plan. It reads the program's list files but has no
// other side effects.
func Prepare(opts Options) (*Plan, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	program := opts.Invocation.Program

	black := envlist.NewBlackList(defaults.BlackList())
	if path, ok := opts.Locator.FindListFile(program, envlist.KindBlack); ok {
		logger.Debug("Loading black list file", "file", path)
		if err := black.AddFromFile(path); err != nil {
			return nil, err
		}
	}

	white, err := envlist.NewWhiteList(black, defaults.WhiteList(), envlist.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	if path, ok := opts.Locator.FindListFile(program, envlist.KindWhite); ok {
		logger.Debug("Loading white list file", "file", path)
		if err := white.AddFromFile(path); err != nil {
			return nil, err
		}
	}

	settings := envlist.NewSettingsList(defaults.Settings(defaults.SettingsInput{
		Home:      opts.Locator.Home(),
		TempDir:   opts.Locator.TempDir(program),
		GOOS:      opts.GOOS,
		Inherited: opts.Inherited,
	}))
	if path, ok := opts.Locator.FindListFile(program, envlist.KindSettings); ok {
		logger.Debug("Loading settings file", "file", path)
		if err := settings.AddFromFile(path); err != nil {
			return nil, err
		}
	}

	env := settings.ApplyTo(white.FilterEnvironment(opts.Inherited))

	searchPath, _ := env.LookupString("PATH")
	path, err := LookPath(program, searchPath)
	if err != nil {
		return nil, err
	}

	logger.Debug("Prepared environment",
		"program", program,
		"path", path,
		"black_listed", black.Len(),
		"white_listed", white.Len(),
		"settings", settings.Len(),
		"final_vars", len(env))

	return &Plan{
		Program: program,
		Path:    path,
		Args:    opts.Invocation.Args,
		Env:     env,
	}, nil
}

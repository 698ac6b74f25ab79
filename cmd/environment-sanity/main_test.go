package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isseis/go-env-sanity/internal/logging"
)

type recordingExecer struct {
	called bool
	path   string
	argv   []string
	envv   []string
	err    error
}

func (r *recordingExecer) Exec(path string, argv []string, envv []string) error {
	r.called = true
	r.path = path
	r.argv = argv
	r.envv = envv
	return r.err
}

type fixture struct {
	home   string
	bin    string
	stderr *bytes.Buffer
	execer *recordingExecer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	f := &fixture{
		home:   filepath.Join(root, "home"),
		bin:    filepath.Join(root, "bin"),
		stderr: &bytes.Buffer{},
		execer: &recordingExecer{},
	}
	require.NoError(t, os.MkdirAll(f.home, 0o750))
	require.NoError(t, os.MkdirAll(f.bin, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(f.bin, "tool"), []byte("#!/bin/sh\n"), 0o755)) //nolint:gosec
	return f
}

func (f *fixture) writeFile(t *testing.T, rel, content string) {
	t.Helper()
	path := filepath.Join(f.home, ".environment-sanity", rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func (f *fixture) process(args ...string) process {
	return process{
		args: args,
		environ: []string{
			"PATH=" + f.bin,
			"HOME=/somewhere/else",
			"LD_PRELOAD=/tmp/evil.so",
			"LOGNAME=alice",
			"EDITOR=vi",
		},
		stderr:      f.stderr,
		goos:        "linux",
		resolveHome: func() (string, error) { return f.home, nil },
		execer:      f.execer,
	}
}

func requireFatal(t *testing.T, err error, want logging.ErrorType) *logging.FatalError {
	t.Helper()
	var fatalErr *logging.FatalError
	require.ErrorAs(t, err, &fatalErr)
	assert.Equal(t, want, fatalErr.Type)
	assert.Equal(t, "run-id", fatalErr.RunID)
	return fatalErr
}

func TestRun_ExecsWithSanitizedEnvironment(t *testing.T) {
	f := newFixture(t)

	err := run("run-id", f.process("tool", "-l", "x y"))
	require.NoError(t, err)

	require.True(t, f.execer.called)
	assert.Equal(t, filepath.Join(f.bin, "tool"), f.execer.path)
	assert.Equal(t, []string{"tool", "-l", "x y"}, f.execer.argv)

	assert.Contains(t, f.execer.envv, "PATH="+f.bin)
	assert.Contains(t, f.execer.envv, "HOME="+f.home)
	assert.Contains(t, f.execer.envv, "TMPDIR="+filepath.Join(f.home, ".environment-sanity", "tmp", "tool"))
	assert.Contains(t, f.execer.envv, "TZ=Etc/UTC")
	assert.Contains(t, f.execer.envv, "USER=alice")
	assert.Contains(t, f.execer.envv, "LANG=C.UTF-8")
	for _, kv := range f.execer.envv {
		assert.False(t, strings.HasPrefix(kv, "LD_PRELOAD="), kv)
		assert.False(t, strings.HasPrefix(kv, "EDITOR="), kv)
		assert.False(t, strings.HasPrefix(kv, "LOGNAME="), kv)
	}

	assert.Empty(t, f.stderr.String(), "a successful run prints nothing")
}

func TestRun_ProgramFilesApply(t *testing.T) {
	f := newFixture(t)
	f.writeFile(t, "settings/tool/white", "EDITOR\nLD_PRELOAD\n")
	f.writeFile(t, "settings/tool/settings", "GREETING\thello\tworld\n")

	require.NoError(t, run("run-id", f.process("tool")))

	assert.Contains(t, f.execer.envv, "EDITOR=vi")
	assert.Contains(t, f.execer.envv, "GREETING=hello\tworld")
	for _, kv := range f.execer.envv {
		assert.False(t, strings.HasPrefix(kv, "LD_PRELOAD="), kv)
	}
	assert.Contains(t, f.stderr.String(), "environment-sanity:WARN: ")
	assert.Contains(t, f.stderr.String(), "variable=LD_PRELOAD")
}

func TestRun_ErrorLevelStillWarnsOnBlackListedWhiteListEntry(t *testing.T) {
	f := newFixture(t)
	f.writeFile(t, "config.toml", "[logging]\nlevel = \"error\"\n")
	f.writeFile(t, "settings/tool/white", "LD_PRELOAD\n")

	require.NoError(t, run("run-id", f.process("tool")))

	assert.Contains(t, f.stderr.String(), "environment-sanity:WARN: ")
	assert.Contains(t, f.stderr.String(), "variable=LD_PRELOAD")
	for _, kv := range f.execer.envv {
		assert.False(t, strings.HasPrefix(kv, "LD_PRELOAD="), kv)
	}
}

func TestRun_FatalErrors(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T, f *fixture) process
		wantType logging.ErrorType
	}{
		{
			name:     "no program",
			setup:    func(_ *testing.T, f *fixture) process { return f.process() },
			wantType: logging.ErrorTypeInvalidArguments,
		},
		{
			name:     "program with path separator",
			setup:    func(_ *testing.T, f *fixture) process { return f.process("./tool") },
			wantType: logging.ErrorTypeInvalidArguments,
		},
		{
			name: "home unavailable",
			setup: func(_ *testing.T, f *fixture) process {
				p := f.process("tool")
				p.resolveHome = func() (string, error) { return "", errors.New("no passwd entry") }
				return p
			},
			wantType: logging.ErrorTypeHomeUnavailable,
		},
		{
			name: "bad tool config",
			setup: func(t *testing.T, f *fixture) process {
				f.writeFile(t, "config.toml", "[logging]\nlevel = \"loud\"\n")
				return f.process("tool")
			},
			wantType: logging.ErrorTypeConfigParsing,
		},
		{
			name: "settings record without tab",
			setup: func(t *testing.T, f *fixture) process {
				f.writeFile(t, "settings/tool/settings", "NOTAB\n")
				return f.process("tool")
			},
			wantType: logging.ErrorTypeListFile,
		},
		{
			name: "NUL byte in black list",
			setup: func(t *testing.T, f *fixture) process {
				f.writeFile(t, "settings/tool/black", "A\x00B\n")
				return f.process("tool")
			},
			wantType: logging.ErrorTypeListFile,
		},
		{
			name: "black list file names PATH",
			setup: func(t *testing.T, f *fixture) process {
				f.writeFile(t, "settings/tool/black", "PATH\n")
				return f.process("tool")
			},
			wantType: logging.ErrorTypeDefaultCollision,
		},
		{
			name:     "program not found",
			setup:    func(_ *testing.T, f *fixture) process { return f.process("missing") },
			wantType: logging.ErrorTypeProgramNotFound,
		},
		{
			name: "exec fails",
			setup: func(_ *testing.T, f *fixture) process {
				f.execer.err = errors.New("permission denied")
				return f.process("tool")
			},
			wantType: logging.ErrorTypeExec,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			err := run("run-id", tt.setup(t, f))
			requireFatal(t, err, tt.wantType)
			if tt.wantType != logging.ErrorTypeExec {
				assert.False(t, f.execer.called, "no exec after a fatal error")
			}
		})
	}
}

func TestRun_JSONLogFile(t *testing.T) {
	f := newFixture(t)
	logDir := filepath.Join(f.home, "logs")
	f.writeFile(t, "config.toml", "[logging]\nlevel = \"debug\"\ndir = \""+logDir+"\"\n")

	require.NoError(t, run("run-id", f.process("tool")))

	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), "_run-id.json"))

	data, err := os.ReadFile(filepath.Join(logDir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"Prepared environment"`)
	assert.Contains(t, f.stderr.String(), "environment-sanity:DEBUG: Prepared environment")
}

package configpath

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/isseis/go-env-sanity/internal/envlist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errLookup = errors.New("no such user")

func TestResolveHome(t *testing.T) {
	tests := []struct {
		name    string
		lookup  LookupFunc
		want    string
		wantErr bool
	}{
		{name: "user database entry", lookup: func() (string, error) { return "/home/alice", nil }, want: "/home/alice"},
		{name: "lookup failure", lookup: func() (string, error) { return "", errLookup }, wantErr: true},
		{name: "empty home", lookup: func() (string, error) { return "", nil }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveHome(tt.lookup)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrHomeUnavailable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveHome_IgnoresHOME(t *testing.T) {
	t.Setenv("HOME", "/attacker/controlled")

	home, err := ResolveHome()
	if err != nil {
		t.Skipf("user database lookup unavailable: %v", err)
	}

	_, set := os.LookupEnv("HOME")
	assert.False(t, set, "HOME is removed from the process environment")
	assert.NotEqual(t, "/attacker/controlled", home)
}

func TestLocator_Paths(t *testing.T) {
	l := NewLocator("/home/alice")

	assert.Equal(t, "/home/alice", l.Home())
	assert.Equal(t, "/home/alice/.environment-sanity/config.toml", l.ToolConfigFile())
	assert.Equal(t, "/home/alice/.environment-sanity/settings/ls/black", l.ListFile("ls", envlist.KindBlack))
	assert.Equal(t, "/home/alice/.environment-sanity/settings/ls/white", l.ListFile("ls", envlist.KindWhite))
	assert.Equal(t, "/home/alice/.environment-sanity/settings/ls/settings", l.ListFile("ls", envlist.KindSettings))
	assert.Equal(t, "/home/alice/.environment-sanity/tmp/ls", l.TempDir("ls"))
}

func TestLocator_FindListFile(t *testing.T) {
	home := t.TempDir()
	l := NewLocator(home)

	settingsDir := filepath.Join(home, ".environment-sanity", "settings", "ls")
	require.NoError(t, os.MkdirAll(settingsDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(settingsDir, "white"), []byte("TERM\n"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(settingsDir, "black"), 0o750))
	require.NoError(t, os.Symlink(filepath.Join(home, "missing"), filepath.Join(settingsDir, "settings")))

	path, ok := l.FindListFile("ls", envlist.KindWhite)
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(settingsDir, "white"), path)

	_, ok = l.FindListFile("ls", envlist.KindBlack)
	assert.False(t, ok, "a directory is treated as absent")

	_, ok = l.FindListFile("ls", envlist.KindSettings)
	assert.False(t, ok, "a dangling symlink is treated as absent")

	_, ok = l.FindListFile("cat", envlist.KindWhite)
	assert.False(t, ok)
}

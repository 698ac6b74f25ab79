// Package configpath resolves the invoking user's home directory and the
// per-program configuration locations beneath it.
//
// Layout under the home directory:
//
//	.environment-sanity/config.toml               tool configuration
//	.environment-sanity/settings/<program>/black  black list additions
//	.environment-sanity/settings/<program>/white  white list additions
//	.environment-sanity/settings/<program>/settings
//	.environment-sanity/tmp/<program>             private TMPDIR
package configpath

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/isseis/go-env-sanity/internal/envlist"
	"github.com/isseis/go-env-sanity/internal/safefileio"
)

const (
	toolDirName     = ".environment-sanity"
	settingsDirName = "settings"
	tempDirName     = "tmp"
	configFileName  = "config.toml"
)

// ErrHomeUnavailable is returned when the home directory cannot be determined.
var ErrHomeUnavailable = errors.New("can not determine home directory")

// LookupFunc resolves the current user's home directory.
type LookupFunc func() (string, error)

// userDatabaseHome looks the home directory up in the user database.
func userDatabaseHome() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return u.HomeDir, nil
}

// ResolveHome returns the home directory from the user database, ignoring
// the inherited HOME. HOME is removed from this process's environment first
// so no fallback path can consult it; callers must take their environment
// snapshot before calling ResolveHome.
func ResolveHome() (string, error) {
	if err := os.Unsetenv("HOME"); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHomeUnavailable, err)
	}
	return resolveHome(userDatabaseHome)
}

func resolveHome(lookup LookupFunc) (string, error) {
	home, err := lookup()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHomeUnavailable, err)
	}
	if home == "" {
		return "", ErrHomeUnavailable
	}
	return home, nil
}

// Locator computes configuration paths for one home directory.
type Locator struct {
	home string
}

// NewLocator creates a Locator rooted at home.
func NewLocator(home string) Locator {
	return Locator{home: home}
}

// Home returns the home directory.
func (l Locator) Home() string {
	return l.home
}

// ToolConfigFile returns the tool configuration file path.
func (l Locator) ToolConfigFile() string {
	return filepath.Join(l.home, toolDirName, configFileName)
}

// ListFile returns the path of a per-program list file. It does not check
// whether the file exists.
func (l Locator) ListFile(program string, kind envlist.Kind) string {
	return filepath.Join(l.home, toolDirName, settingsDirName, program, string(kind))
}

// FindListFile returns the path of a per-program list file and true if it
// exists and is a regular file. Any other state, including a stat error,
// counts as absent.
func (l Locator) FindListFile(program string, kind envlist.Kind) (string, bool) {
	path := l.ListFile(program, kind)
	if !safefileio.IsRegularFile(path) {
		return "", false
	}
	return path, true
}

// TempDir returns the private temporary directory of program.
func (l Locator) TempDir(program string) string {
	return filepath.Join(l.home, toolDirName, tempDirName, program)
}

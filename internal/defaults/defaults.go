// Package defaults holds the built-in black list and white list seeds and
// computes the per-program default settings.
package defaults

import "github.com/isseis/go-env-sanity/internal/envvar"

// blackList names loader-influencing variables and identity variables that
// are too easy to spoof. HOME is included because it is forced by the
// settings list from the user database.
var blackList = []string{
	"CDPATH",

	"LD_LIBRARY_PATH",
	"LD_PRELOAD",

	"DYLD_LIBRARY_PATH",
	"DYLD_FALLBACK_LIBRARY_PATH",
	"DYLD_FRAMEWORK_PATH",
	"DYLD_FALLBACK_FRAMEWORK_PATH",

	// glibc
	"LD_BIND_NOW",
	"LD_TRACE_LOADED_OBJECTS",
	"LD_AOUT_LIBRARY_PATH",
	"LD_AOUT_PRELOAD",
	"LD_AUDIT",
	"LD_BIND_NOT",
	"LD_DEBUG",
	"LD_DEBUG_OUTPUT",
	"LD_DYNAMIC_WEAK",
	"LD_HWCAP_MASK",
	"LD_KEEPDIR",
	"LD_NOWARN",
	"LD_ORIGIN_PATH",
	"LD_POINTER_GUARD",
	"LD_PROFILE",
	"LD_PROFILE_OUTPUT",
	"LD_SHOW_AUXV",
	"LD_USE_LOAD_BIAS",
	"LD_VERBOSE",
	"LD_WARN",
	"LDD_ARGV0",

	// LOGNAME is what musl's getlogin() reads.
	"LOGNAME",
	"USER",

	"SUDO_USER",
	"SUDO_UID",
	"SUDO_COMMAND",
	"SUDO_GID",

	"HOME",
}

// whiteList is deliberately minimal.
var whiteList = []string{
	"PATH",
	"TMPDIR",
}

var localeNames = []string{
	"LC_ALL",
	"LC_COLLATE",
	"LC_CTYPE",
	"LC_MESSAGES",
	"LC_MONETARY",
	"LC_NUMERIC",
	"LC_TIME",
	"LANG",
}

const (
	linuxLocale = "C.UTF-8"
	otherLocale = "UTF-8"
	timeZone    = "Etc/UTC"
)

// BlackList returns the built-in black list.
func BlackList() []envvar.Name {
	return toNames(blackList)
}

// WhiteList returns the built-in white list.
func WhiteList() []envvar.Name {
	return toNames(whiteList)
}

// SettingsInput is what the computed settings depend on.
type SettingsInput struct {
	// Home is the home directory from the user database.
	Home string
	// TempDir is the per-program private temporary directory.
	TempDir string
	// GOOS selects the locale family and the login name variable.
	GOOS string
	// Inherited is the environment snapshot. Only LOGNAME (Linux) or USER
	// (other systems) is read from it.
	Inherited envvar.Environment
}

// Settings computes the default settings list for one program.
func Settings(in SettingsInput) map[envvar.Name]envvar.Value {
	settings := map[envvar.Name]envvar.Value{
		envvar.MustName("TZ"):                    envvar.MustValue(timeZone),
		envvar.MustName("HOME"):                  envvar.MustValue(in.Home),
		envvar.MustName("TMPDIR"):                envvar.MustValue(in.TempDir),
		envvar.MustName("HOMEBREW_NO_ANALYTICS"): envvar.MustValue("1"),
	}

	locale := otherLocale
	// BSDs introduced USER; Linux libcs read LOGNAME. Whichever one the
	// platform trusts is copied into the other.
	source, target := envvar.MustName("USER"), envvar.MustName("LOGNAME")
	if in.GOOS == "linux" {
		locale = linuxLocale
		source, target = target, source
	}

	for _, n := range localeNames {
		settings[envvar.MustName(n)] = envvar.MustValue(locale)
	}

	if v, ok := in.Inherited.Lookup(source); ok {
		settings[target] = v
	}

	return settings
}

func toNames(ss []string) []envvar.Name {
	out := make([]envvar.Name, 0, len(ss))
	for _, s := range ss {
		out = append(out, envvar.MustName(s))
	}
	return out
}

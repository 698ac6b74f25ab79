package terminal

import (
	"strings"

	"golang.org/x/term"
)

// ciEnvVars contains common CI environment variables
var ciEnvVars = []string{
	"CI",                     // Generic CI indicator
	"CONTINUOUS_INTEGRATION", // Generic CI indicator
	"GITHUB_ACTIONS",         // GitHub Actions
	"TRAVIS",                 // Travis CI
	"CIRCLECI",               // Circle CI
	"JENKINS_URL",            // Jenkins
	"BUILD_NUMBER",           // Jenkins/TeamCity/etc
	"GITLAB_CI",              // GitLab CI
	"BUILDKITE",              // Buildkite
	"DRONE",                  // Drone CI
	"TF_BUILD",               // Azure DevOps
}

// InteractiveDetector decides whether a descriptor is an interactive terminal.
type InteractiveDetector struct {
	fd         uintptr
	lookup     LookupFunc
	isTerminal func(fd uintptr) bool
}

func newInteractiveDetector(fd uintptr, lookup LookupFunc, isTerminal func(uintptr) bool) *InteractiveDetector {
	if isTerminal == nil {
		isTerminal = func(fd uintptr) bool { return term.IsTerminal(int(fd)) }
	}
	return &InteractiveDetector{fd: fd, lookup: lookup, isTerminal: isTerminal}
}

// IsInteractive returns true if the descriptor is a terminal and no CI
// system is detected.
func (d *InteractiveDetector) IsInteractive() bool {
	if d.IsCIEnvironment() {
		return false
	}
	return d.isTerminal(d.fd)
}

// IsCIEnvironment checks if the current environment is a CI/CD system
func (d *InteractiveDetector) IsCIEnvironment() bool {
	for _, envVar := range ciEnvVars {
		value, ok := d.lookup(envVar)
		if !ok || value == "" {
			continue
		}
		// CI=false or CI=0 should not be considered a CI environment
		if envVar == "CI" {
			return isCITruthy(value)
		}
		return true
	}
	return false
}

func isCITruthy(value string) bool {
	lower := strings.ToLower(strings.TrimSpace(value))
	return lower != "false" && lower != "0" && lower != "no"
}

package config

import (
	"fmt"
	"regexp"
)

// envVarPattern matches ${VAR_NAME} patterns in TOML values
var envVarPattern = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// DetectEnvVar checks if a raw TOML value is a simple ${VAR_NAME} reference.
// Returns the variable name and true if the value is a pure env var reference.
func DetectEnvVar(rawValue string) (string, bool) {
	matches := envVarPattern.FindStringSubmatch(rawValue)
	if len(matches) == 2 {
		return matches[1], true
	}
	return "", false
}

// envHint names the variable an empty value came from
func envHint(raw string) string {
	if name, ok := DetectEnvVar(raw); ok {
		return fmt.Sprintf(" (is %s set?)", name)
	}
	return ""
}

package utils

import (
	"os"
	"strconv"
	"strings"
)

// ParseEnvBool reads a boolean environment variable. It returns
// defaultValue when the variable is unset or cannot be parsed; the second
// result reports whether a valid value was found.
func ParseEnvBool(name string, defaultValue bool) (bool, bool) {
	raw, ok := os.LookupEnv(name)
	if !ok {
		return defaultValue, false
	}

	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return defaultValue, false
	}

	return value, true
}

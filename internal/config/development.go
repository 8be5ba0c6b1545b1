package config

import (
	"os"
	"strconv"
)

// Development reports whether DEVELOPMENT is set to anything but a false
// value, e.g. "1" or "true".
func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	if on, err := strconv.ParseBool(development); err == nil {
		return on
	}
	return development != ""
}

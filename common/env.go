package common

import (
	"os"
	"strings"
)

// GetenvOrDefault returns os.Getenv(key), or defaultValue when unset/blank.
func GetenvOrDefault(key, defaultValue string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}

	return defaultValue
}

// Package env reads bootstrap settings that are needed before the
// envconfig-backed configuration is loaded.
package env

import (
	"os"
	"strings"
)

// Prefix namespaces every variable the service owns.
const Prefix = "OOH_"

// First returns the first non-blank value among keys, trimmed, or fallback.
func First(fallback string, keys ...string) string {
	for _, key := range keys {
		if val := strings.TrimSpace(os.Getenv(key)); val != "" {
			return val
		}
	}
	return fallback
}

// Get looks up the prefixed variable first and then the bare name, so
// OOH_LOG_FORMAT wins over LOG_FORMAT.
func Get(name, fallback string) string {
	name = strings.TrimPrefix(name, Prefix)
	return First(fallback, Prefix+name, name)
}

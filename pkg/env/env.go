package env

import "os"

// Get returns the environment variable value, or fallback when unset or empty.
func Get(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// IsSet reports whether the variable is present with a non-empty value.
func IsSet(key string) bool {
	return os.Getenv(key) != ""
}

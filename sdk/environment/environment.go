// Package environment provides utilities for managing environment variables
// and configuration loading with support for namespacing and defaults.
package environment

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from a .env file in the working
// directory. A missing file is not an error.
func LoadEnv() error {
	return LoadPath("")
}

// LoadPath loads environment variables from the .env file at p, or from
// .env in the working directory when p is empty. Variables already present
// in the process environment are never overwritten.
func LoadPath(p string) error {
	var err error
	if p != "" {
		err = godotenv.Load(p)
	} else {
		err = godotenv.Load()
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// GetEnvOrDefault retrieves an environment variable value, returning a fallback
// value if the variable is not set.
//
// Example:
//
//	port := GetEnvOrDefault("PORT", "8080")
func GetEnvOrDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetNamespaceEnvKey constructs a namespaced environment variable key by
// combining a namespace prefix with the actual key name using an underscore.
// If no namespace is provided, it returns the key unchanged.
//
// Example:
//
//	key := GetNamespaceEnvKey("BACKOFFICE", "PG_DATABASE_URL")
//	// Returns: "BACKOFFICE_PG_DATABASE_URL"
func GetNamespaceEnvKey(namespace, key string) string {
	if namespace == "" {
		return key
	}
	return fmt.Sprintf("%s_%s", namespace, key)
}

// GetNamespaceEnvOrDefault retrieves a namespaced environment variable value,
// returning a fallback value if the variable is not set.
func GetNamespaceEnvOrDefault(namespace, key, fallback string) string {
	return GetEnvOrDefault(GetNamespaceEnvKey(namespace, key), fallback)
}

// Package envfile loads environment variables from .env files.
// Variables already set in the environment take precedence.
package envfile

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Load reads a .env file and sets any variables not already in the
// environment (godotenv semantics). Returns nil if the file doesn't
// exist; returns an error only for unreadable or malformed files.
func Load(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("checking env file %s: %w", path, err)
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindProjectBinary returns the dreamsearch binary under test. The runner is
// started from the project root, so bin/dreamsearch is used unless
// DREAMSEARCH_BINARY names another build.
func FindProjectBinary() (string, error) {
	if p := os.Getenv("DREAMSEARCH_BINARY"); p != "" {
		return p, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("could not get working directory: %w", err)
	}
	binaryPath := filepath.Join(wd, "bin", "dreamsearch")
	if _, err := os.Stat(binaryPath); err != nil {
		return "", fmt.Errorf("dreamsearch binary not found (set DREAMSEARCH_BINARY or build bin/dreamsearch): %w", err)
	}
	return binaryPath, nil
}

package config

import (
	"fmt"
	"os"
	"strings"
)

// UpdateAPIKey rewrites the OPENAI_API_KEY line in the given env file,
// preserving every other line, and updates the running process env so the
// next client picks up the new key.
func UpdateAPIKey(path, apiKey string) error {
	var lines []string
	if raw, err := os.ReadFile(path); err == nil {
		lines = strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	}

	keyFound := false
	out := make([]string, 0, len(lines)+1)
	for _, line := range lines {
		if strings.HasPrefix(line, "OPENAI_API_KEY=") {
			out = append(out, "OPENAI_API_KEY="+apiKey)
			keyFound = true
			continue
		}
		out = append(out, line)
	}
	if !keyFound {
		out = append(out, "OPENAI_API_KEY="+apiKey)
	}

	if err := os.WriteFile(path, []byte(strings.Join(out, "\n")+"\n"), 0o600); err != nil {
		return fmt.Errorf("write env file: %w", err)
	}
	return os.Setenv("OPENAI_API_KEY", apiKey)
}

// EnsureEnvFile creates an empty env file with a key placeholder when none
// exists yet.
func EnsureEnvFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte("OPENAI_API_KEY=\n"), 0o600)
}

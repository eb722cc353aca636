package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// Config holds CLI configuration
type Config struct {
	ServerURL  string
	PuzzleFile string
	Output     string
	Verbose    bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:  getEnvOrDefault("WORDGRID_SERVER", "http://localhost:8080"),
		PuzzleFile: getEnvOrDefault("WORDGRID_PUZZLE_FILE", defaultPuzzleFile()),
		Output:     "text",
		Verbose:    false,
	}
}

// LoadPuzzleID reads the last puzzle ID, returning "" if none was saved
func (c *Config) LoadPuzzleID() (string, error) {
	data, err := os.ReadFile(c.PuzzleFile)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil // No puzzle file is fine
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// SavePuzzleID remembers a puzzle ID for later commands
func (c *Config) SavePuzzleID(id string) error {
	dir := filepath.Dir(c.PuzzleFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	return os.WriteFile(c.PuzzleFile, []byte(id), 0600)
}

// ClearPuzzleID forgets the saved puzzle ID if it matches id
func (c *Config) ClearPuzzleID(id string) error {
	saved, err := c.LoadPuzzleID()
	if err != nil || saved != id {
		return err
	}
	if err := os.Remove(c.PuzzleFile); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func defaultPuzzleFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wordgrid/puzzle"
	}
	return filepath.Join(home, ".wordgrid", "puzzle")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

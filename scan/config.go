package scan

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds the options of a binary scan.
type Config struct {
	// Strict rejects UNPREDICTABLE encodings instead of printing them.
	// Default: false.
	Strict bool `json:"strict"`

	// Workers is the number of chunks decoded concurrently.
	// Default: 4.
	Workers int `json:"workers"`

	// ChunkWords is the number of instruction words handed to one worker
	// at a time. Default: 4096.
	ChunkWords int `json:"chunk_words"`

	// MaxHits stops recording hits once reached; 0 means no limit.
	// Counting continues past the limit. Default: 0.
	MaxHits int `json:"max_hits"`
}

// DefaultConfig returns a Config with the default values.
func DefaultConfig() *Config {
	return &Config{
		Strict:     false,
		Workers:    4,
		ChunkWords: 4096,
		MaxHits:    0,
	}
}

// LoadConfig loads a Config from a JSON file. Fields absent from the file
// keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scan config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse scan config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a Config to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize scan config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write scan config file: %w", err)
	}

	return nil
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be > 0")
	}
	if c.ChunkWords <= 0 {
		return fmt.Errorf("chunk_words must be > 0")
	}
	if c.MaxHits < 0 {
		return fmt.Errorf("max_hits must be >= 0")
	}
	return nil
}

// Clone returns a copy of the Config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

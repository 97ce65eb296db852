package demoserver

import (
	"github.com/raysh454/mycv/internal/logging"
	"github.com/raysh454/mycv/internal/store"
)

// Config holds configuration for the demo server.
type Config struct {
	// Port is the port on which the demo server listens.
	Port int

	// DSN is handed to store.Open; empty keeps everything in memory.
	DSN string

	// ChromePDF prints resumes through Chrome instead of the built-in text
	// layout, falling back to the latter when Chrome fails.
	ChromePDF      bool
	ChromeHeadless bool

	Logger logging.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Port:           8000,
		DSN:            store.MemoryDSN,
		ChromeHeadless: true,
	}
}

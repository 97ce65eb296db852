// Package config holds the client's runtime configuration.
//
// Values are layered: Default() first, then an optional YAML file, then
// MYCV_-prefixed environment variables. Flags set on the command line are
// applied by the caller on top of the loaded Config.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/raysh454/mycv/internal/logging"
)

// Config contains process configuration.
type Config struct {
	// BaseURL is the API root every path is appended to.
	BaseURL string `koanf:"base_url"`

	// Timeout bounds a whole HTTP exchange, e.g. "30s".
	Timeout time.Duration `koanf:"timeout"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// DownloadDir is where generated PDFs are saved.
	DownloadDir string `koanf:"download_dir"`

	// Template and Language are the PDF defaults.
	Template string `koanf:"template"`
	Language string `koanf:"language"`

	// MaxDownloadSize caps response bodies, e.g. "25 MB" or "20MiB".
	MaxDownloadSize string `koanf:"max_download_size"`

	MetricsNamespace string `koanf:"metrics_namespace"`

	// ChromeHeadless runs the month-input probe without a window.
	ChromeHeadless bool `koanf:"chrome_headless"`

	// DemoPort is the listen port of the demo server.
	DemoPort int `koanf:"demo_port"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		BaseURL:          "http://localhost:8000/api",
		Timeout:          30 * time.Second,
		LogLevel:         "info",
		DownloadDir:      ".",
		Template:         "classic",
		Language:         "en",
		MaxDownloadSize:  "25 MB",
		MetricsNamespace: "mycv",
		ChromeHeadless:   true,
		DemoPort:         8000,
	}
}

// MaxDownloadBytes parses MaxDownloadSize. An empty value means no limit.
func (c *Config) MaxDownloadBytes() (int64, error) {
	if c.MaxDownloadSize == "" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(c.MaxDownloadSize)
	if err != nil {
		return 0, fmt.Errorf("%w: max_download_size %q: %v", ErrInvalidConfig, c.MaxDownloadSize, err)
	}
	return int64(n), nil
}

// Validate checks the fields the client cannot start without.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: base_url %q must be an absolute URL", ErrInvalidConfig, c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := c.MaxDownloadBytes(); err != nil {
		return err
	}
	if c.DemoPort < 0 || c.DemoPort > 65535 {
		return fmt.Errorf("%w: demo_port %d out of range", ErrInvalidConfig, c.DemoPort)
	}
	return nil
}

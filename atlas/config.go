package atlas

import "fmt"

// Size limits accepted by Config.Validate.
const (
	MinSize = 16
	MaxSize = 16384
)

// Config holds atlas dimensions in pixels.
type Config struct {
	// Width of the atlas texture. Default: 1024
	Width int

	// Height of the atlas texture. Default: 1024
	Height int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Width: 1024, Height: 1024}
}

// Validate checks that both dimensions are within [MinSize, MaxSize].
func (c *Config) Validate() error {
	if c.Width < MinSize || c.Width > MaxSize {
		return &ConfigError{Field: "Width", Reason: fmt.Sprintf("must be in [%d, %d]", MinSize, MaxSize)}
	}
	if c.Height < MinSize || c.Height > MaxSize {
		return &ConfigError{Field: "Height", Reason: fmt.Sprintf("must be in [%d, %d]", MinSize, MaxSize)}
	}
	return nil
}

// ConfigError reports an invalid Config field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "atlas: invalid config." + e.Field + ": " + e.Reason
}

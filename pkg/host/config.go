package host

import (
	"context"
	"log/slog"
)

// Config configures a Root.
type Config struct {
	// Logger receives debug and error lines. Defaults to slog.Default().
	Logger *slog.Logger

	// MaxPasses bounds the flush loop. A flush that still has work after
	// this many passes fails with a render loop error. Default: 100.
	MaxPasses int

	// Context is the parent of the context handed to components through
	// StdContext. Default: context.Background().
	Context context.Context
}

// DefaultConfig returns a Config with defaults applied.
func DefaultConfig() *Config {
	return &Config{
		Logger:    slog.Default(),
		MaxPasses: 100,
		Context:   context.Background(),
	}
}

func (c *Config) withDefaults() *Config {
	out := DefaultConfig()
	if c == nil {
		return out
	}
	if c.Logger != nil {
		out.Logger = c.Logger
	}
	if c.MaxPasses > 0 {
		out.MaxPasses = c.MaxPasses
	}
	if c.Context != nil {
		out.Context = c.Context
	}
	return out
}

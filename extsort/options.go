package extsort

import (
	"github.com/go-logr/logr"

	"github.com/0xRadioAc7iv/go-extsort/internal"
)

type Option func(*internal.Config)

// WithMemoryBudget sets the number of bytes of raw input held in memory
// while splitting. It must be greater than the longest record.
func WithMemoryBudget(bytes int) Option {
	return func(c *internal.Config) {
		c.MemoryBudget = bytes
	}
}

// WithWorkDir sets the directory holding the temporary run file.
func WithWorkDir(dir string) Option {
	return func(c *internal.Config) {
		c.WorkDir = dir
	}
}

func WithLogger(logger logr.Logger) Option {
	return func(c *internal.Config) {
		c.Logger = logger
	}
}

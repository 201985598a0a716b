package internal

import (
	"os"
	"path/filepath"

	"github.com/go-logr/logr"

	"github.com/0xRadioAc7iv/go-extsort/core"
)

type Config struct {
	MemoryBudget int
	WorkDir      string
	Logger       logr.Logger
}

func DefaultConfig() *Config {
	return &Config{
		MemoryBudget: core.DefaultMemoryBudget,
		WorkDir:      filepath.Join(os.TempDir(), core.WorkDirName),
		Logger:       logr.Discard(),
	}
}

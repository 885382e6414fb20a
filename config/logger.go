package config

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// NewLogger builds a JSON production logger at the given level name.
func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "log level %q", level)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	return cfg.Build()
}

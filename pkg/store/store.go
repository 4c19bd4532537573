// Package store persists trained models to disk or Redis.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/zpam/nbayes/pkg/config"
	"github.com/zpam/nbayes/pkg/learning"
)

// ErrModelNotFound is returned by Load when no model has been saved yet.
var ErrModelNotFound = errors.New("model not found")

// Store saves and loads a single trained model. Save replaces whatever
// model was stored before.
type Store interface {
	Save(ctx context.Context, model *learning.Model) error
	Load(ctx context.Context) (*learning.Model, error)
	Location() string
	Close() error
}

// New opens the backend selected by cfg.
func New(cfg config.StoreConfig, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Backend {
	case "file", "":
		return NewFileStore(cfg.ModelPath, logger), nil
	case "redis":
		return NewRedisStore(cfg.Redis, logger)
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Backend)
	}
}

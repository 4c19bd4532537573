package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/zpam/nbayes/pkg/learning"
)

// FileStore keeps the model as an indented JSON snapshot.
type FileStore struct {
	path   string
	logger *zap.Logger
}

// NewFileStore creates a store backed by the file at path
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{
		path:   path,
		logger: logger.With(zap.String("component", "store"), zap.String("backend", "file")),
	}
}

// Location returns the model file path
func (s *FileStore) Location() string {
	return s.path
}

// Save writes the model to a temporary file and renames it into place
func (s *FileStore) Save(ctx context.Context, model *learning.Model) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}

	data, err := json.MarshalIndent(model.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create model file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write model file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write model file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace model file: %w", err)
	}

	s.logger.Info("model saved",
		zap.String("model_id", model.ID()),
		zap.String("path", s.path),
		zap.Int("bytes", len(data)))
	return nil
}

// Load reads and validates the model file
func (s *FileStore) Load(ctx context.Context) (*learning.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}

	var snap learning.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode model: %w", err)
	}

	model, err := learning.FromSnapshot(&snap)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("model loaded", zap.String("model_id", model.ID()), zap.String("path", s.path))
	return model, nil
}

// Close is a no-op for files
func (s *FileStore) Close() error {
	return nil
}

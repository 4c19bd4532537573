package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zpam/nbayes/pkg/config"
	"github.com/zpam/nbayes/pkg/learning"
)

func trainedModel(t *testing.T) *learning.Model {
	t.Helper()
	model, err := learning.Estimate(
		learning.Counts{"hi": 1, "there": 1, "free": 1},
		learning.Counts{"free": 1, "money": 1, "now": 1},
		1, 1)
	require.NoError(t, err)
	return model
}

func otherModel(t *testing.T) *learning.Model {
	t.Helper()
	model, err := learning.Estimate(learning.Counts{"lunch": 2}, learning.Counts{"pills": 1}, 2, 1)
	require.NoError(t, err)
	return model
}

func assertSameModel(t *testing.T, want, got *learning.Model) {
	t.Helper()
	assert.Equal(t, want.ID(), got.ID())
	assert.Equal(t, want.Vocabulary(), got.Vocabulary())
	assert.Equal(t, want.Prior(learning.Ham), got.Prior(learning.Ham))
	assert.Equal(t, want.Prior(learning.Spam), got.Prior(learning.Spam))
	assert.Equal(t, want.Documents(learning.Spam), got.Documents(learning.Spam))
	assert.True(t, want.TrainedAt().Equal(got.TrainedAt()))
	for _, token := range want.Vocabulary() {
		for _, label := range []learning.Label{learning.Ham, learning.Spam} {
			wp, _ := want.Prob(token, label)
			gp, ok := got.Prob(token, label)
			assert.True(t, ok)
			assert.Equal(t, wp, gp, "%s/%s", token, label)
		}
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewFileStore(filepath.Join(t.TempDir(), "models", "nbayes.json"), zap.NewNop())
	defer s.Close()

	model := trainedModel(t)
	require.NoError(t, s.Save(ctx, model))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assertSameModel(t, model, loaded)

	// Save replaces the previous model
	other := otherModel(t)
	require.NoError(t, s.Save(ctx, other))
	loaded, err = s.Load(ctx)
	require.NoError(t, err)
	assertSameModel(t, other, loaded)

	entries, err := os.ReadDir(filepath.Dir(s.Location()))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStoreNotFound(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "missing.json"), nil)
	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, ErrModelNotFound)
}

func TestFileStoreCorrupt(t *testing.T) {
	dir := t.TempDir()

	garbage := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(garbage, []byte("{not json"), 0644))
	_, err := NewFileStore(garbage, nil).Load(context.Background())
	assert.ErrorContains(t, err, "failed to decode model")

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"ham_documents":0,"spam_documents":0}`), 0644))
	_, err = NewFileStore(invalid, nil).Load(context.Background())
	assert.ErrorIs(t, err, learning.ErrInvalidModel)
}

func setupRedisStore(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	s, err := NewRedisStore(config.RedisConfig{
		URL:       "redis://" + mr.Addr(),
		KeyPrefix: "test:model",
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return mr, s
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	mr, s := setupRedisStore(t)

	model := trainedModel(t)
	require.NoError(t, s.Save(ctx, model))

	assert.Equal(t, model.ID(), mr.HGet("test:model:meta", "id"))
	assert.Equal(t, "0.6666666666666666", mr.HGet("test:model:probs:spam", "money"))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assertSameModel(t, model, loaded)
}

func TestRedisStoreSaveReplaces(t *testing.T) {
	ctx := context.Background()
	mr, s := setupRedisStore(t)

	require.NoError(t, s.Save(ctx, trainedModel(t)))
	other := otherModel(t)
	require.NoError(t, s.Save(ctx, other))

	// Tokens from the first model are gone
	keys, err := mr.HKeys("test:model:probs:ham")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"lunch", "pills"}, keys)

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assertSameModel(t, other, loaded)
}

func TestRedisStoreNotFound(t *testing.T) {
	_, s := setupRedisStore(t)
	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, ErrModelNotFound)
}

func TestRedisStoreCorrupt(t *testing.T) {
	ctx := context.Background()
	mr, s := setupRedisStore(t)

	require.NoError(t, s.Save(ctx, trainedModel(t)))
	mr.HSet("test:model:probs:ham", "money", "lots")

	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, learning.ErrInvalidModel)
}

func TestNewRedisStoreUnreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = NewRedisStore(config.RedisConfig{URL: "redis://" + addr}, nil)
	assert.ErrorContains(t, err, "redis connection failed")

	_, err = NewRedisStore(config.RedisConfig{URL: "://bad"}, nil)
	assert.ErrorContains(t, err, "invalid Redis URL")
}

func TestNew(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	cfg := config.DefaultConfig().Store
	cfg.ModelPath = filepath.Join(t.TempDir(), "m.json")

	s, err := New(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	cfg.Backend = "redis"
	cfg.Redis.URL = "redis://" + mr.Addr()
	s, err = New(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, s)
	assert.Contains(t, s.Location(), "nbayes:model")
	require.NoError(t, s.Close())

	cfg.Backend = "s3"
	_, err = New(cfg, nil)
	assert.Error(t, err)
}

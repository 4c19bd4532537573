package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/zpam/nbayes/pkg/config"
	"github.com/zpam/nbayes/pkg/learning"
)

// RedisStore keeps the model in three hashes under a key prefix:
//
//	<prefix>:meta        id, priors, document counts, training time
//	<prefix>:probs:ham   token -> P(token|ham)
//	<prefix>:probs:spam  token -> P(token|spam)
type RedisStore struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

// NewRedisStore connects to Redis and verifies the connection
func NewRedisStore(cfg config.RedisConfig, logger *zap.Logger) (*RedisStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}
	if cfg.Database != 0 {
		opt.DB = cfg.Database
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "nbayes:model"
	}

	return &RedisStore{
		client: client,
		prefix: prefix,
		logger: logger.With(zap.String("component", "store"), zap.String("backend", "redis")),
	}, nil
}

func (s *RedisStore) metaKey() string {
	return s.prefix + ":meta"
}

func (s *RedisStore) probsKey(label learning.Label) string {
	return s.prefix + ":probs:" + label.String()
}

// Location returns the Redis address and key prefix
func (s *RedisStore) Location() string {
	return fmt.Sprintf("redis://%s/%d %s", s.client.Options().Addr, s.client.Options().DB, s.prefix)
}

// Save replaces the stored model in a single MULTI/EXEC transaction
func (s *RedisStore) Save(ctx context.Context, model *learning.Model) error {
	snap := model.Snapshot()

	meta := map[string]interface{}{
		"id":             snap.ID,
		"prior_ham":      formatFloat(snap.PriorHam),
		"prior_spam":     formatFloat(snap.PriorSpam),
		"ham_documents":  snap.HamDocs,
		"spam_documents": snap.SpamDocs,
		"trained_at":     snap.TrainedAt.UTC().Format(time.RFC3339Nano),
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.metaKey(), s.probsKey(learning.Ham), s.probsKey(learning.Spam))
		pipe.HSet(ctx, s.metaKey(), meta)
		if len(snap.HamProbs) > 0 {
			pipe.HSet(ctx, s.probsKey(learning.Ham), probFields(snap.HamProbs))
			pipe.HSet(ctx, s.probsKey(learning.Spam), probFields(snap.SpamProbs))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save model to redis: %w", err)
	}

	s.logger.Info("model saved",
		zap.String("model_id", snap.ID),
		zap.String("prefix", s.prefix),
		zap.Int("vocabulary", len(snap.HamProbs)))
	return nil
}

// Load fetches all three hashes in one pipeline and validates the result
func (s *RedisStore) Load(ctx context.Context) (*learning.Model, error) {
	pipe := s.client.Pipeline()
	metaCmd := pipe.HGetAll(ctx, s.metaKey())
	hamCmd := pipe.HGetAll(ctx, s.probsKey(learning.Ham))
	spamCmd := pipe.HGetAll(ctx, s.probsKey(learning.Spam))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to load model from redis: %w", err)
	}

	meta := metaCmd.Val()
	if len(meta) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, s.prefix)
	}

	snap := &learning.Snapshot{ID: meta["id"]}
	var err error
	if snap.PriorHam, err = parseFloat(meta, "prior_ham"); err != nil {
		return nil, err
	}
	if snap.PriorSpam, err = parseFloat(meta, "prior_spam"); err != nil {
		return nil, err
	}
	if snap.HamDocs, err = parseInt(meta, "ham_documents"); err != nil {
		return nil, err
	}
	if snap.SpamDocs, err = parseInt(meta, "spam_documents"); err != nil {
		return nil, err
	}
	if snap.TrainedAt, err = time.Parse(time.RFC3339Nano, meta["trained_at"]); err != nil {
		return nil, fmt.Errorf("%w: bad trained_at: %v", learning.ErrInvalidModel, err)
	}
	if snap.HamProbs, err = parseProbs(hamCmd.Val()); err != nil {
		return nil, err
	}
	if snap.SpamProbs, err = parseProbs(spamCmd.Val()); err != nil {
		return nil, err
	}

	model, err := learning.FromSnapshot(snap)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("model loaded", zap.String("model_id", model.ID()), zap.String("prefix", s.prefix))
	return model, nil
}

// Close closes the Redis client
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func probFields(probs map[string]float64) map[string]interface{} {
	fields := make(map[string]interface{}, len(probs))
	for token, p := range probs {
		fields[token] = formatFloat(p)
	}
	return fields
}

func parseFloat(meta map[string]string, field string) (float64, error) {
	f, err := strconv.ParseFloat(meta[field], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad %s: %v", learning.ErrInvalidModel, field, err)
	}
	return f, nil
}

func parseInt(meta map[string]string, field string) (int, error) {
	n, err := strconv.Atoi(meta[field])
	if err != nil {
		return 0, fmt.Errorf("%w: bad %s: %v", learning.ErrInvalidModel, field, err)
	}
	return n, nil
}

func parseProbs(fields map[string]string) (map[string]float64, error) {
	probs := make(map[string]float64, len(fields))
	for token, raw := range fields {
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad probability for %q: %v", learning.ErrInvalidModel, token, err)
		}
		probs[token] = p
	}
	return probs, nil
}

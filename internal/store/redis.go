package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/envaplast/planta-cli/internal/core/domain"
)

const (
	redisTokenKey = "planta:auth_token"
	redisUserKey  = "planta:user_data"

	connectTimeout = 5 * time.Second
)

// RedisConfig captures the settings for establishing the Redis connection.
type RedisConfig struct {
	Addr string
	DB   int
}

// Connect initialises a Redis client and validates connectivity with a ping.
func Connect(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// RedisStore keeps the session credential in Redis, for plant-floor kiosk
// terminals that share one operator session across machines. The token and
// the user snapshot live under two keys written in one MULTI block and
// removed together.
type RedisStore struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewRedisStore(client *redis.Client, log zerolog.Logger) *RedisStore {
	return &RedisStore{client: client, log: log}
}

func (s *RedisStore) Token(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, redisTokenKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading token: %w", err)
	}
	return token, nil
}

func (s *RedisStore) UserSnapshot(ctx context.Context) (*domain.User, error) {
	raw, err := s.client.Get(ctx, redisUserKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading user snapshot: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.log.Warn().Err(err).Msg("user snapshot corrupt, ignoring")
		return nil, nil
	}
	return &user, nil
}

func (s *RedisStore) SetCredentials(ctx context.Context, token string, user *domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding user snapshot: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, redisTokenKey, token, 0)
	pipe.Set(ctx, redisUserKey, string(raw), 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("storing credentials: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, redisTokenKey, redisUserKey).Err(); err != nil {
		return fmt.Errorf("clearing credentials: %w", err)
	}
	return nil
}

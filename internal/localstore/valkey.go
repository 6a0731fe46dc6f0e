package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ValkeyStorage keeps slots as keys in a Valkey/Redis instance, for setups
// where client state must be shared between hosts.
type ValkeyStorage struct {
	client *redis.Client
	prefix string
}

type ValkeyConfig struct {
	Addr     string
	Password string
	Prefix   string
	Timeout  time.Duration
}

func NewValkeyStorage(cfg ValkeyConfig) (*ValkeyStorage, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "eventhub:state"
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  cfg.Timeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
	}

	return &ValkeyStorage{
		client: rdb,
		prefix: cfg.Prefix,
	}, nil
}

func (s *ValkeyStorage) key(slot string) string {
	return s.prefix + ":" + slot
}

func (s *ValkeyStorage) Get(ctx context.Context, slot string, v any) error {
	raw, err := s.client.Get(ctx, s.key(slot)).Result()
	if err != nil {
		if err == redis.Nil {
			return ErrNoSlot
		}
		return fmt.Errorf("read slot %s: %w", slot, err)
	}

	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("decode slot %s: %w", slot, err)
	}
	return nil
}

func (s *ValkeyStorage) Set(ctx context.Context, slot string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode slot %s: %w", slot, err)
	}

	if err := s.client.Set(ctx, s.key(slot), raw, 0).Err(); err != nil {
		return fmt.Errorf("write slot %s: %w", slot, err)
	}
	return nil
}

func (s *ValkeyStorage) Remove(ctx context.Context, slot string) error {
	if err := s.client.Del(ctx, s.key(slot)).Err(); err != nil {
		return fmt.Errorf("remove slot %s: %w", slot, err)
	}
	return nil
}

func (s *ValkeyStorage) Close() error {
	return s.client.Close()
}

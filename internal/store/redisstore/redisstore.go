// Package redisstore keeps the board record in Redis under a single key.
package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Makepad-fr/kanban/internal/model"
	"github.com/Makepad-fr/kanban/internal/store"
)

type Store struct {
	rdb *redis.Client
	key string
}

// New wraps an existing client. prefix is joined to the record key with a
// colon, so several boards can share one database. An empty key means
// store.DefaultKey.
func New(rdb *redis.Client, prefix, key string) *Store {
	if key == "" {
		key = store.DefaultKey
	}
	if prefix != "" {
		key = prefix + ":" + key
	}
	return &Store{rdb: rdb, key: key}
}

// Dial connects and pings before returning.
func Dial(ctx context.Context, opts *redis.Options, prefix, key string) (*Store, error) {
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return New(rdb, prefix, key), nil
}

func (s *Store) Key() string { return s.key }

func (s *Store) Load(ctx context.Context) (model.Board, bool, error) {
	raw, err := s.rdb.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.Board{}, false, nil
	}
	if err != nil {
		return model.Board{}, false, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	b, err := store.Decode(raw)
	if err != nil {
		return model.Board{}, false, err
	}
	return b, true, nil
}

func (s *Store) Save(ctx context.Context, b model.Board) error {
	raw, err := store.Encode(b)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

func (s *Store) Close() error { return s.rdb.Close() }

// Package redis stores conversation state in Redis, suitable for bots that
// run multiple instances behind one token. State lives under a string key and
// answers under a hash, both namespaced by a configurable prefix. An optional
// TTL bounds abandoned conversations.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "forms"

// Store implements the forms store interface over a Redis client.
type Store struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix replaces the default key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithTTL sets an expiry applied to state and answer keys on every write.
// Zero keeps keys forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// New wraps an existing Redis client. The client stays owned by the caller.
func New(client redis.UniversalClient, opts ...Option) *Store {
	s := &Store{client: client, prefix: defaultPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) stateKey(conversationID int64) string {
	return fmt.Sprintf("%s:state:%d", s.prefix, conversationID)
}

func (s *Store) dataKey(conversationID int64) string {
	return fmt.Sprintf("%s:data:%d", s.prefix, conversationID)
}

// State returns the stored machine state, or the empty string when the key
// does not exist.
func (s *Store) State(ctx context.Context, conversationID int64) (string, error) {
	state, err := s.client.Get(ctx, s.stateKey(conversationID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis: get state: %w", err)
	}
	return state, nil
}

// SetState updates the machine state. An empty state deletes the key so the
// conversation reads back as "not in a form".
func (s *Store) SetState(ctx context.Context, conversationID int64, state string) error {
	key := s.stateKey(conversationID)
	if state == "" {
		if err := s.client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("redis: clear state: %w", err)
		}
		return nil
	}
	if err := s.client.Set(ctx, key, state, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis: set state: %w", err)
	}
	return nil
}

// Data returns all stored answers for a conversation.
func (s *Store) Data(ctx context.Context, conversationID int64) (map[string]string, error) {
	data, err := s.client.HGetAll(ctx, s.dataKey(conversationID)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: read answers: %w", err)
	}
	return data, nil
}

// UpdateData stores one answer in the conversation hash.
func (s *Store) UpdateData(ctx context.Context, conversationID int64, key, value string) error {
	dk := s.dataKey(conversationID)
	if err := s.client.HSet(ctx, dk, key, value).Err(); err != nil {
		return fmt.Errorf("redis: store answer: %w", err)
	}
	if s.ttl > 0 {
		if err := s.client.Expire(ctx, dk, s.ttl).Err(); err != nil {
			return fmt.Errorf("redis: refresh ttl: %w", err)
		}
	}
	return nil
}

// Clear removes the state key and the answer hash for a conversation.
func (s *Store) Clear(ctx context.Context, conversationID int64) error {
	if err := s.client.Del(ctx, s.stateKey(conversationID), s.dataKey(conversationID)).Err(); err != nil {
		return fmt.Errorf("redis: clear session: %w", err)
	}
	return nil
}

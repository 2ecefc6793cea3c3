package redis

import (
	"fmt"

	"github.com/go-redis/redis"
	"github.com/pkg/errors"
	"github.com/zerofinance/xwallet-console/sdk/session"
)

// Scope is a session.Scope backed by a single Redis key. No TTL is set on the
// key; expiry of the record it holds is decided by the session.Store.
type Scope struct {
	client *redis.Client
	key    string
}

// NewScope returns a Scope that stores its record under the key name,
// namespaced by prefix.
func NewScope(client *redis.Client, prefix, name string) *Scope {
	return &Scope{
		client: client,
		key:    prefixedKey(prefix, name),
	}
}

// NewDurableScope returns a Scope suitable for use as the durable scope of a
// session.Store.
func NewDurableScope(client *redis.Client, prefix string) *Scope {
	return NewScope(client, prefix, session.DurableKey)
}

// Key returns the Redis key the Scope reads and writes.
func (s *Scope) Key() string {
	return s.key
}

func (s *Scope) Read() ([]byte, error) {
	data, err := s.client.Get(s.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, errors.Wrapf(err, "error reading redis key %q", s.key)
}

func (s *Scope) Write(data []byte) error {
	return errors.Wrapf(
		s.client.Set(s.key, data, 0).Err(),
		"error writing redis key %q",
		s.key,
	)
}

func (s *Scope) Clear() error {
	return errors.Wrapf(
		s.client.Del(s.key).Err(),
		"error deleting redis key %q",
		s.key,
	)
}

func prefixedKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return fmt.Sprintf("%s:%s", prefix, key)
}

// Package redisstore implements the snippet repository on Redis.
//
// Redis enforces the snippet lifecycle: SET with EX writes the value and its
// expiry atomically, and eviction happens server-side when the TTL elapses.
// The client owns a connection pool internally; every command checks a
// connection out and returns it on all exit paths, so no request holds a
// connection across its lifetime and no handle is shared between requests.
package redisstore

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sakif/tempshare/internal/apperror"
	"github.com/sakif/tempshare/internal/model"
)

// TTL sentinels as returned by go-redis: the raw Redis integers -2 ("no such
// key") and -1 ("key has no expiry") come back as nanosecond durations,
// unscaled.
const (
	ttlKeyMissing = time.Duration(-2)
	ttlNoExpiry   = time.Duration(-1)
)

// Config holds the connection settings for the Redis backend.
type Config struct {
	Addr     string
	Password string
	TLS      bool
}

// Store is a SnippetRepository backed by Redis.
type Store struct {
	client *redis.Client
}

// New creates a Store. It does not require the backend to be reachable yet:
// connectivity problems surface per operation as ErrUnavailable, and the
// health endpoint reports them via Ping.
func New(cfg Config) *Store {
	opts := &redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return &Store{client: redis.NewClient(opts)}
}

// NewWithClient wraps an existing client. Used by tests to point the store at
// an in-process Redis.
func NewWithClient(client *redis.Client) *Store {
	return &Store{client: client}
}

// Ping verifies the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return classify("ping", err)
	}
	return nil
}

// Put serializes the snippet and writes it together with its expiry in a
// single SET ... EX command. There is no window where the key exists without
// a TTL.
func (s *Store) Put(ctx context.Context, key string, snippet *model.Snippet, ttl time.Duration) error {
	data, err := json.Marshal(snippet)
	if err != nil {
		return fmt.Errorf("redisstore: encoding snippet: %w", err)
	}

	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return classify("put", err)
	}
	return nil
}

// Get reads the remaining TTL and the value in one pipelined round trip.
//
// The TTL decides the outcome: -2 means the key never existed or was already
// evicted (NotFound), -1 or 0 means the key is logically dead, either created
// without an expiry or caught mid-eviction (Expired). A missing value despite
// a positive TTL reading also maps to NotFound; the two reads are not atomic
// and the key can expire between them.
func (s *Store) Get(ctx context.Context, key string) (*model.Snippet, error) {
	pipe := s.client.Pipeline()
	ttlCmd := pipe.TTL(ctx, key)
	getCmd := pipe.Get(ctx, key)

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, classify("get", err)
	}

	switch ttl := ttlCmd.Val(); {
	case ttl == ttlKeyMissing:
		return nil, apperror.NotFound("file")
	case ttl == ttlNoExpiry || ttl == 0:
		return nil, apperror.Expired("file")
	}

	data, err := getCmd.Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperror.NotFound("file")
		}
		return nil, classify("get", err)
	}

	var snippet model.Snippet
	if err := json.Unmarshal(data, &snippet); err != nil {
		return nil, fmt.Errorf("redisstore: decoding snippet: %w", err)
	}
	return &snippet, nil
}

// Delete removes the key. DEL reports how many keys it removed, which gives
// the existence check and the removal in one atomic command; a count of zero
// maps to NotFound so repeated deletes are harmless.
func (s *Store) Delete(ctx context.Context, key string) error {
	n, err := s.client.Del(ctx, key).Result()
	if err != nil {
		return classify("delete", err)
	}
	if n == 0 {
		return apperror.NotFound("file")
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}

// classify separates "could not reach the backend" from "the backend rejected
// the operation". The former maps to 503, the latter to 500.
func classify(op string, err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, io.EOF) || errors.Is(err, redis.ErrClosed) ||
		errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("redisstore: %s: %w", op, apperror.Unavailable("failed to connect to the snippet store"))
	}
	return fmt.Errorf("redisstore: %s: %w", op, err)
}

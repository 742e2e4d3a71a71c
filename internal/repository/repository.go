// Package repository declares the storage interfaces the service layer
// depends on. Concrete implementations live in subpackages.
package repository

import (
	"context"
	"time"

	"github.com/sakif/tempshare/internal/model"
)

// SnippetRepository stores one snippet per key with a backend-enforced TTL.
//
// Put must attach the TTL in the same operation as the value write, so a
// crash can never leave a key without an expiry. Get distinguishes three
// outcomes via apperror sentinels: a snippet, ErrNotFound (key never existed
// or already evicted), or ErrExpired (key present but its lifetime is over).
// Delete is idempotent: deleting an absent key returns ErrNotFound rather
// than failing.
type SnippetRepository interface {
	Put(ctx context.Context, key string, snippet *model.Snippet, ttl time.Duration) error
	Get(ctx context.Context, key string) (*model.Snippet, error)
	Delete(ctx context.Context, key string) error
}

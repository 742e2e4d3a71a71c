// Package shareid implements the identifier scheme for shared snippets.
//
// A share id is the externally visible "{language}-{uuid}" string that
// appears in share URLs. The corresponding storage key in the backing store
// is "file:{share_id}:data". The language part is a namespace tag only; this
// package accepts any non-empty string and leaves language validation to the
// layers that know which languages exist.
package shareid

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

const (
	keyPrefix = "file:"
	keySuffix = ":data"
)

// ErrMalformed reports a share id that cannot be split into language and uuid.
var ErrMalformed = errors.New("shareid: malformed share id")

// ShareID is an externally visible snippet identifier.
type ShareID string

// New mints a fresh share id for the given language tag.
func New(language string) ShareID {
	return ShareID(language + "-" + uuid.NewString())
}

// Join rebuilds a share id from its parts.
func Join(language, id string) ShareID {
	return ShareID(language + "-" + id)
}

// Parse splits a share id into its language tag and uuid part.
//
// UUIDs contain hyphens, so the split happens at the FIRST hyphen only:
// "python-550e8400-e29b-..." parses as ("python", "550e8400-e29b-...").
// Parse fails when there is no hyphen at all or the language part is empty.
func Parse(s string) (language, id string, err error) {
	language, id, found := strings.Cut(s, "-")
	if !found || language == "" {
		return "", "", ErrMalformed
	}
	return language, id, nil
}

// StorageKey maps the share id to the internal key under which the snippet
// lives in the backing store.
func (s ShareID) StorageKey() string {
	return keyPrefix + string(s) + keySuffix
}

func (s ShareID) String() string {
	return string(s)
}

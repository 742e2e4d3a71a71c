// Package service contains the business logic for snippet sharing: request
// validation, share-id generation, expiry handling, and orchestration of the
// snippet store. It knows nothing about HTTP; handlers translate its errors.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sakif/tempshare/internal/apperror"
	"github.com/sakif/tempshare/internal/model"
	"github.com/sakif/tempshare/internal/repository"
	"github.com/sakif/tempshare/internal/shareid"
)

// ValidExpiryMinutes enumerates the accepted snippet lifetimes: 10 minutes,
// 30 minutes, 1 hour, 1 day, 1 week. Any other value is rejected before a key
// is created.
var ValidExpiryMinutes = []model.Minutes{10, 30, 60, 1440, 10080}

// MaxCodeBytes caps the payload size accepted anywhere in the service.
// Enforced here so the store can never be handed an unbounded value,
// regardless of which surface calls in.
const MaxCodeBytes = 512 * 1024

// displayTimeLayout formats the advisory expiry timestamp returned to
// clients. Display only; the backing store's TTL is authoritative.
const displayTimeLayout = "2006-01-02 15:04:05"

// SnippetService handles upload, fetch, and delete of shared snippets.
type SnippetService struct {
	repo    repository.SnippetRepository
	baseURL string
	logger  *slog.Logger
}

// NewSnippetService creates a SnippetService. baseURL is the public prefix
// share URLs are built from, without a trailing slash.
func NewSnippetService(repo repository.SnippetRepository, baseURL string, logger *slog.Logger) *SnippetService {
	return &SnippetService{
		repo:    repo,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// Upload validates the request, mints a share id, and stores the snippet with
// its TTL in a single atomic write.
func (s *SnippetService) Upload(ctx context.Context, req model.UploadRequest) (*model.UploadResponse, error) {
	title := strings.TrimSpace(req.Title)

	if req.Code == "" {
		return nil, apperror.ValidationFailed("code", "code, language, title, and expiry time are required")
	}
	if req.Language == "" {
		return nil, apperror.ValidationFailed("language", "code, language, title, and expiry time are required")
	}
	if title == "" {
		return nil, apperror.ValidationFailed("title", "code, language, title, and expiry time are required")
	}
	if !validExpiry(req.ExpiryTime) {
		return nil, apperror.ValidationFailed("expiryTime", "invalid expiry time, please choose a valid value")
	}
	if len(req.Code) > MaxCodeBytes {
		return nil, apperror.TooLarge("code", "code exceeds the 0.5 MB limit")
	}

	ttl := time.Duration(req.ExpiryTime) * time.Minute
	expiryTime := time.Now().UTC().Add(ttl).Format(displayTimeLayout) + " UTC"

	sid := shareid.New(req.Language)
	snippet := &model.Snippet{
		Title:      title,
		Code:       req.Code,
		Language:   req.Language,
		ExpiryTime: expiryTime,
	}

	if err := s.repo.Put(ctx, sid.StorageKey(), snippet, ttl); err != nil {
		s.logger.Error("failed to store snippet",
			slog.String("shareID", sid.String()),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("storing snippet: %w", err)
	}

	s.logger.Info("snippet stored",
		slog.String("shareID", sid.String()),
		slog.Int("ttlMinutes", int(req.ExpiryTime)),
	)

	return &model.UploadResponse{
		Message:    "Code uploaded successfully",
		FileURL:    s.baseURL + "/file/" + sid.String(),
		ExpiryTime: expiryTime,
	}, nil
}

// Fetch parses the share id and reads the snippet from the store.
// Outcomes: the snippet, NotFound, or Expired.
func (s *SnippetService) Fetch(ctx context.Context, rawID string) (*model.Snippet, error) {
	sid, err := parseShareID(rawID)
	if err != nil {
		return nil, err
	}

	snippet, err := s.repo.Get(ctx, sid.StorageKey())
	if err != nil {
		return nil, fmt.Errorf("fetching snippet: %w", err)
	}
	return snippet, nil
}

// Delete removes the snippet. Deleting an already-absent snippet surfaces
// NotFound, which handlers report as 404; it is not an internal failure.
func (s *SnippetService) Delete(ctx context.Context, rawID string) error {
	sid, err := parseShareID(rawID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, sid.StorageKey()); err != nil {
		return fmt.Errorf("deleting snippet: %w", err)
	}

	s.logger.Info("snippet deleted", slog.String("shareID", sid.String()))
	return nil
}

func parseShareID(rawID string) (shareid.ShareID, error) {
	language, id, err := shareid.Parse(rawID)
	if err != nil {
		return "", apperror.ValidationFailed("shareID",
			"invalid share id format, it should be 'language-file_id'")
	}
	return shareid.Join(language, id), nil
}

func validExpiry(m model.Minutes) bool {
	for _, v := range ValidExpiryMinutes {
		if m == v {
			return true
		}
	}
	return false
}

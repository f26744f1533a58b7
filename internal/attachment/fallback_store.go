package attachment

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// fallbackStore writes to S3 first and falls back to the local file system.
type fallbackStore struct {
	s3Store   Store
	fileStore Store
	s3Enabled bool
	logger    zerolog.Logger
}

// NewFallbackStore creates a store that tries S3 first, then falls back to local file system.
// If s3Store is nil, it will only use the file store.
func NewFallbackStore(s3Store, fileStore Store, s3Enabled bool, logger zerolog.Logger) Store {
	return &fallbackStore{
		s3Store:   s3Store,
		fileStore: fileStore,
		s3Enabled: s3Enabled,
		logger:    logger.With().Str("component", "fallback-attachment-store").Logger(),
	}
}

func (s *fallbackStore) useS3() bool {
	return s.s3Enabled && s.s3Store != nil
}

// Upload attempts S3 first, then the local file system.
func (s *fallbackStore) Upload(ctx context.Context, folder, filename string, content io.Reader) (string, error) {
	if !s.useS3() {
		s.logger.Debug().
			Bool("s3_enabled", s.s3Enabled).
			Bool("has_s3_store", s.s3Store != nil).
			Msg("S3 disabled or not configured, using local file system")
		return s.fileStore.Upload(ctx, folder, filename, content)
	}

	// Both attempts need the full content.
	data, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("failed to read attachment content: %w", err)
	}

	reference, err := s.s3Store.Upload(ctx, folder, filename, bytes.NewReader(data))
	if err == nil {
		return reference, nil
	}

	s.logger.Warn().
		Err(err).
		Str("folder", folder).
		Msg("failed to upload to S3, falling back to local file system")

	return s.fileStore.Upload(ctx, folder, filename, bytes.NewReader(data))
}

// Delete routes the reference to the store that produced it. S3 reports
// success for missing keys, so a local reference must not be sent there.
func (s *fallbackStore) Delete(ctx context.Context, reference string) error {
	if !s.useS3() {
		return s.fileStore.Delete(ctx, reference)
	}

	o, ok := s.s3Store.(owner)
	if ok && o.Owns(reference) {
		return s.s3Store.Delete(ctx, reference)
	}
	if ok {
		return s.fileStore.Delete(ctx, reference)
	}

	// Ownership unknown: both deletes are idempotent.
	s3Err := s.s3Store.Delete(ctx, reference)
	if s3Err != nil {
		s.logger.Warn().
			Err(s3Err).
			Str("reference", reference).
			Msg("failed to delete from S3")
	}
	return errors.Join(s3Err, s.fileStore.Delete(ctx, reference))
}

package attachment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// fileStore implements Store on the local file system.
type fileStore struct {
	root   string
	logger zerolog.Logger
}

// NewFileStore creates a store rooted at dir. References are paths relative to dir.
func NewFileStore(dir string, logger zerolog.Logger) Store {
	return &fileStore{
		root:   dir,
		logger: logger.With().Str("component", "file-attachment-store").Logger(),
	}
}

// Upload writes content to root/folder/<uuid><ext>.
func (s *fileStore) Upload(ctx context.Context, folder, filename string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	reference := objectName(folder, filename)
	fullPath := filepath.Join(s.root, filepath.FromSlash(reference))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		s.logger.Error().Err(err).Str("folder", folder).Msg("failed to create attachment folder")
		return "", fmt.Errorf("failed to create attachment folder %s: %w", folder, err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		s.logger.Error().Err(err).Str("file", fullPath).Msg("failed to create attachment file")
		return "", fmt.Errorf("failed to create attachment file: %w", err)
	}

	written, err := io.Copy(file, content)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(fullPath)
		s.logger.Error().Err(err).Str("file", fullPath).Msg("failed to write attachment file")
		return "", fmt.Errorf("failed to write attachment file: %w", err)
	}

	s.logger.Info().
		Str("reference", reference).
		Int64("bytes", written).
		Msg("attachment stored")

	return reference, nil
}

// Delete removes the file behind reference.
func (s *fileStore) Delete(ctx context.Context, reference string) error {
	cleaned, err := cleanReference(reference)
	if err != nil {
		return fmt.Errorf("failed to delete attachment %q: %w", reference, err)
	}

	fullPath := filepath.Join(s.root, filepath.FromSlash(cleaned))
	if err := os.Remove(fullPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug().Str("reference", cleaned).Msg("attachment already absent")
			return nil
		}
		s.logger.Error().Err(err).Str("reference", cleaned).Msg("failed to delete attachment")
		return fmt.Errorf("failed to delete attachment %s: %w", cleaned, err)
	}

	s.logger.Info().Str("reference", cleaned).Msg("attachment deleted")
	return nil
}

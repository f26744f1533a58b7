package attachment

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// s3API is the subset of *s3.Client used by the store.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Options configures the S3 store.
type S3Options struct {
	Bucket string
	Region string
	// Prefix is prepended to every object key (e.g. "attachments/").
	Prefix string
	// PublicBaseURL, when set, makes references absolute URLs under it.
	PublicBaseURL string
}

// s3Store implements Store on AWS S3.
type s3Store struct {
	client  s3API
	options S3Options
	logger  zerolog.Logger
}

// NewS3Store creates a new S3-based attachment store.
func NewS3Store(ctx context.Context, opts S3Options, logger zerolog.Logger) (Store, error) {
	logger = logger.With().Str("component", "s3-attachment-store").Logger()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(opts.Region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", opts.Bucket).
		Str("region", opts.Region).
		Msg("S3 attachment store initialised")

	return newS3Store(s3.NewFromConfig(cfg), opts, logger), nil
}

func newS3Store(client s3API, opts S3Options, logger zerolog.Logger) *s3Store {
	return &s3Store{client: client, options: opts, logger: logger}
}

// Upload puts content under prefix+folder/<uuid><ext>.
func (s *s3Store) Upload(ctx context.Context, folder, filename string, content io.Reader) (string, error) {
	// The SDK signs the payload, so it needs a seekable body.
	data, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("failed to read attachment content: %w", err)
	}

	key := s.options.Prefix + objectName(folder, filename)
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.options.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if contentType := mime.TypeByExtension(filepath.Ext(key)); contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.options.Bucket).
			Str("key", key).
			Msg("failed to put object to S3")
		return "", fmt.Errorf("failed to put object to S3 (bucket=%s, key=%s): %w", s.options.Bucket, key, err)
	}

	s.logger.Info().
		Str("bucket", s.options.Bucket).
		Str("key", key).
		Int("bytes", len(data)).
		Msg("attachment stored in S3")

	return s.reference(key), nil
}

// Delete removes the object behind reference.
func (s *s3Store) Delete(ctx context.Context, reference string) error {
	key, err := s.key(reference)
	if err != nil {
		return fmt.Errorf("failed to delete attachment %q: %w", reference, err)
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.options.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.options.Bucket).
			Str("key", key).
			Msg("failed to delete object from S3")
		return fmt.Errorf("failed to delete object from S3 (bucket=%s, key=%s): %w", s.options.Bucket, key, err)
	}

	s.logger.Info().Str("bucket", s.options.Bucket).Str("key", key).Msg("attachment deleted from S3")
	return nil
}

// Owns reports whether reference was produced by this store: an absolute URL
// under PublicBaseURL, or a key under Prefix.
func (s *s3Store) Owns(reference string) bool {
	if base := strings.TrimRight(s.options.PublicBaseURL, "/"); base != "" {
		return strings.HasPrefix(reference, base+"/")
	}
	return s.options.Prefix != "" && strings.HasPrefix(reference, s.options.Prefix)
}

func (s *s3Store) reference(key string) string {
	if s.options.PublicBaseURL == "" {
		return key
	}
	return strings.TrimRight(s.options.PublicBaseURL, "/") + "/" + key
}

func (s *s3Store) key(reference string) (string, error) {
	if base := strings.TrimRight(s.options.PublicBaseURL, "/"); base != "" {
		reference = strings.TrimPrefix(reference, base+"/")
	}
	return cleanReference(reference)
}

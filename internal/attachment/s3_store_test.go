package attachment

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockS3Client is a mock implementation of s3API.
type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if out, ok := args.Get(0).(*s3.PutObjectOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockS3Client) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params)
	if out, ok := args.Get(0).(*s3.DeleteObjectOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestS3Store_Upload(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		publicBaseURL string
		wantPrefix    string
	}{
		{name: "Key reference", publicBaseURL: "", wantPrefix: "attachments/Products/"},
		{name: "Public URL reference", publicBaseURL: "https://cdn.example.com/", wantPrefix: "https://cdn.example.com/attachments/Products/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(MockS3Client)
			var body string
			client.On("PutObject", ctx, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
				return aws.ToString(in.Bucket) == "media" &&
					strings.HasPrefix(aws.ToString(in.Key), "attachments/Products/") &&
					aws.ToString(in.ContentType) == "image/png"
			})).Run(func(args mock.Arguments) {
				in := args.Get(1).(*s3.PutObjectInput)
				data, _ := io.ReadAll(in.Body)
				body = string(data)
			}).Return(&s3.PutObjectOutput{}, nil)

			store := newS3Store(client, S3Options{
				Bucket: "media", Prefix: "attachments/", PublicBaseURL: tt.publicBaseURL,
			}, zerolog.Nop())

			ref, err := store.Upload(ctx, "Products", "logo.png", strings.NewReader("png-bytes"))

			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(ref, tt.wantPrefix), ref)
			assert.Equal(t, "png-bytes", body)
			client.AssertExpectations(t)
		})
	}
}

func TestS3Store_UploadFails(t *testing.T) {
	ctx := context.Background()
	client := new(MockS3Client)
	client.On("PutObject", ctx, mock.Anything).Return(nil, errors.New("access denied"))

	store := newS3Store(client, S3Options{Bucket: "media"}, zerolog.Nop())

	ref, err := store.Upload(ctx, "Products", "a.jpg", strings.NewReader("x"))

	assert.Empty(t, ref)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to put object to S3")
}

func TestS3Store_DeleteStripsPublicBaseURL(t *testing.T) {
	ctx := context.Background()
	client := new(MockS3Client)
	client.On("DeleteObject", ctx, mock.MatchedBy(func(in *s3.DeleteObjectInput) bool {
		return aws.ToString(in.Key) == "attachments/Products/a.jpg"
	})).Return(&s3.DeleteObjectOutput{}, nil)

	store := newS3Store(client, S3Options{
		Bucket: "media", Prefix: "attachments/", PublicBaseURL: "https://cdn.example.com",
	}, zerolog.Nop())

	err := store.Delete(ctx, "https://cdn.example.com/attachments/Products/a.jpg")

	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestS3Store_Owns(t *testing.T) {
	tests := []struct {
		name      string
		options   S3Options
		reference string
		want      bool
	}{
		{"Key under prefix", S3Options{Prefix: "attachments/"}, "attachments/Products/a.jpg", true},
		{"Local reference", S3Options{Prefix: "attachments/"}, "Products/a.jpg", false},
		{"URL under public base", S3Options{Prefix: "attachments/", PublicBaseURL: "https://cdn.example.com/"}, "https://cdn.example.com/attachments/Products/a.jpg", true},
		{"Bare key with public base", S3Options{Prefix: "attachments/", PublicBaseURL: "https://cdn.example.com"}, "attachments/Products/a.jpg", false},
		{"No prefix or base", S3Options{}, "Products/a.jpg", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newS3Store(new(MockS3Client), tt.options, zerolog.Nop())
			assert.Equal(t, tt.want, store.Owns(tt.reference))
		})
	}
}

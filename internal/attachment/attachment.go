// Package attachment stores binary uploads (product images) and hands back
// references that the mapping layer turns into public URLs.
package attachment

import (
	"context"
	"errors"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store defines the interface for attachment storage.
type Store interface {
	// Upload stores content under folder and returns its reference. The
	// original filename only contributes its extension.
	Upload(ctx context.Context, folder, filename string, content io.Reader) (string, error)

	// Delete removes a stored attachment. Deleting a missing attachment is not an error.
	Delete(ctx context.Context, reference string) error
}

// owner is implemented by stores that recognise their own references.
type owner interface {
	Owns(reference string) bool
}

// ErrInvalidReference is returned for references that escape the store root.
var ErrInvalidReference = errors.New("invalid attachment reference")

// objectName builds a collision-free "folder/<uuid><ext>" reference.
func objectName(folder, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join(folder, uuid.NewString()+ext)
}

// cleanReference normalises a relative reference and rejects traversal.
func cleanReference(reference string) (string, error) {
	cleaned := path.Clean("/" + strings.TrimSpace(reference))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." || strings.Contains(reference, "..") {
		return "", ErrInvalidReference
	}
	return cleaned, nil
}

package store

import (
	"context"
	"path/filepath"
	"strings"
)

// Document names, one per persisted collection.
const (
	DocServices      = "services.json"
	DocRequests      = "requests.json"
	DocReviews       = "reviews.json"
	DocSubscriptions = "subscriptions.json"
	DocFavorites     = "favorites.json"
	DocUsers         = "users.json"
	DocProfiles      = "profiles.json"
	DocMessages      = "messages.json"
)

// Backend loads and saves whole named documents.
type Backend interface {
	// Load returns the stored bytes of the named document.
	// Returns ErrNotFound if the document has never been saved.
	Load(ctx context.Context, name string) ([]byte, error)

	// Save replaces the named document with data. A failed save leaves the
	// previous version intact.
	Save(ctx context.Context, name string, data []byte) error

	// Close releases any resources held by the backend.
	Close() error
}

// checkName rejects names that are blank or contain path elements.
func checkName(name string) error {
	if strings.TrimSpace(name) == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return ErrInvalidDocumentName
	}
	return nil
}

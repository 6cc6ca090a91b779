// Package directory provides read-only access to the therapist corpus,
// either through the TherapAPI provider or an in-process demo directory.
// The application never owns or mutates therapist records.
package directory

import (
	"context"
	"errors"

	"github.com/therapick/therapick-api/internal/types"
)

var (
	// ErrNotFound indicates the therapist id is unknown to the provider.
	ErrNotFound = errors.New("therapist not found")
	// ErrUnavailable indicates the provider could not be reached or
	// answered with a server error. Callers map it to a generic
	// directory-unavailable condition, never the raw failure.
	ErrUnavailable = errors.New("directory unavailable")
)

// Client is the read-only directory query interface.
type Client interface {
	Search(ctx context.Context, params types.SearchParams) (*types.SearchResult, error)
	GetByID(ctx context.Context, id string) (*types.Therapist, error)
	Reviews(ctx context.Context, id string) ([]types.Review, error)
	Specialties(ctx context.Context) ([]string, error)
	// Mode names the active provider for health reporting.
	Mode() string
}

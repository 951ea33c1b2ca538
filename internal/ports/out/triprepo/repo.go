package triprepo

import (
	"context"

	"github.com/techup/travel-explorer-api/internal/domain"
)

// Repository provides access to persisted trips.
//
// Result ordering expectations:
//   - List and Search results are ordered by CreatedAt descending (newest
//     first), ID descending as tiebreak, to keep responses deterministic.
type Repository interface {
	// Create persists a new trip and assigns its ID.
	Create(ctx context.Context, t domain.Trip) (domain.Trip, error)

	// Update replaces the stored trip. Returns ErrNotFound if it vanished.
	Update(ctx context.Context, t domain.Trip) (domain.Trip, error)

	Delete(ctx context.Context, id domain.TripID) error

	GetByID(ctx context.Context, id domain.TripID) (domain.Trip, error)

	ListAll(ctx context.Context) ([]domain.Trip, error)
	ListByAuthor(ctx context.Context, author domain.UserID) ([]domain.Trip, error)

	// Search matches query case-insensitively as a substring of the title,
	// the description, or any single tag. A blank query matches everything.
	Search(ctx context.Context, query string) ([]domain.Trip, error)
}

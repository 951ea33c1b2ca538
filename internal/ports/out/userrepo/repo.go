package userrepo

import (
	"context"

	"github.com/techup/travel-explorer-api/internal/domain"
)

// Repository provides access to persisted user accounts.
//
// Emails are stored and looked up in normalized (trimmed, lowercased) form;
// callers normalize with domain.NormalizeEmail before calling. The email
// uniqueness rule is enforced here, not at the application layer alone.
type Repository interface {
	// Create persists a new account and assigns its ID.
	// Returns ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, u domain.User) (domain.User, error)

	GetByID(ctx context.Context, id domain.UserID) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// Package authz holds the ownership rule applied before mutating operations.
package authz

import (
	"github.com/techup/travel-explorer-api/internal/app/apperr"
	"github.com/techup/travel-explorer-api/internal/domain"
)

// Owned is any resource that records the account allowed to mutate it.
type Owned interface {
	OwnerID() domain.UserID
}

// RequireOwner allows the operation iff caller owns res. A denial is a
// permission failure carrying message; it is never reported as not-found,
// so callers resolve existence before calling this.
func RequireOwner(caller domain.Identity, res Owned, message string) error {
	if caller.UserID == res.OwnerID() {
		return nil
	}
	return apperr.Forbidden(message)
}

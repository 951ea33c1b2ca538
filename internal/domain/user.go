package domain

import "time"

// User is the domain representation of a registered account.
// PasswordHash is an opaque bcrypt hash; it never appears in API payloads
// or log output.
type User struct {
	ID UserID

	Email        string
	PasswordHash string
	DisplayName  string

	CreatedAt time.Time
}

// UserSummary is the public projection of a user attached to read models.
type UserSummary struct {
	ID          UserID
	Email       string
	DisplayName string
}

func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName}
}

package domain

// Identity is the authenticated caller for the duration of one request.
// It is produced only by successful token validation, carried in the request
// context, and never persisted.
type Identity struct {
	UserID UserID
	Email  string
}

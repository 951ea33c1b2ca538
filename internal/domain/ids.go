package domain

// UserID is the internal numeric identifier for a user account.
// It is assigned by the user repository on creation.
type UserID int64

// TripID is the internal numeric identifier for a trip record.
type TripID int64

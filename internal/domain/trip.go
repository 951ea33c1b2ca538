package domain

import "time"

// Trip is a published travel log entry. Title is required; Description and
// the coordinate pair are optional. Photos and Tags are always non-nil,
// possibly empty.
type Trip struct {
	ID TripID

	Title       string
	Description *string

	Photos []string
	Tags   []string

	Latitude  *float64
	Longitude *float64

	AuthorID UserID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnerID reports the account that may mutate this trip.
func (t Trip) OwnerID() UserID { return t.AuthorID }

// TripDetails is the read model for single-trip endpoints: the trip plus its
// author's public profile.
type TripDetails struct {
	Trip
	Author UserSummary
}

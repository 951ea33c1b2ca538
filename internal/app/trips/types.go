package trips

import "github.com/oapi-codegen/nullable"

type CreateInput struct {
	Title       string
	Description *string
	Photos      []string
	Tags        []string
	Latitude    *float64
	Longitude   *float64
}

// UpdateInput is a partial patch. Every field is tri-state: absent keeps the
// stored value, null clears it, a value replaces it. Title cannot be cleared;
// photos and tags clear to empty slices, never nil.
type UpdateInput struct {
	Title       nullable.Nullable[string]
	Description nullable.Nullable[string]
	Photos      nullable.Nullable[[]string]
	Tags        nullable.Nullable[[]string]
	Latitude    nullable.Nullable[float64]
	Longitude   nullable.Nullable[float64]
}

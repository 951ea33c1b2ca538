package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/oapi-codegen/nullable"

	"github.com/techup/travel-explorer-api/internal/app/apperr"
	"github.com/techup/travel-explorer-api/internal/app/auth"
	"github.com/techup/travel-explorer-api/internal/app/trips"
	"github.com/techup/travel-explorer-api/internal/app/uploads"
	"github.com/techup/travel-explorer-api/internal/domain"
)

// --- requests ---

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

func (r registerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(0, 255), is.Email),
		// 72 is bcrypt's input ceiling.
		validation.Field(&r.Password, validation.Required, validation.Length(6, 72)),
		validation.Field(&r.DisplayName, validation.Length(0, 100)),
	)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

type tripCreateRequest struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Photos      []string `json:"photos"`
	Tags        []string `json:"tags"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

func (r tripCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
	)
}

func (r tripCreateRequest) toInput() trips.CreateInput {
	return trips.CreateInput{
		Title:       r.Title,
		Description: r.Description,
		Photos:      r.Photos,
		Tags:        r.Tags,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
	}
}

// tripUpdateRequest is a partial patch: fields left out of the JSON body keep
// their stored value, explicit nulls clear, values replace. The tri-state
// survives decoding because every field is a Nullable rather than a pointer.
type tripUpdateRequest struct {
	Title       nullable.Nullable[string]   `json:"title"`
	Description nullable.Nullable[string]   `json:"description"`
	Photos      nullable.Nullable[[]string] `json:"photos"`
	Tags        nullable.Nullable[[]string] `json:"tags"`
	Latitude    nullable.Nullable[float64]  `json:"latitude"`
	Longitude   nullable.Nullable[float64]  `json:"longitude"`
}

func (r tripUpdateRequest) toInput() trips.UpdateInput {
	return trips.UpdateInput{
		Title:       r.Title,
		Description: r.Description,
		Photos:      r.Photos,
		Tags:        r.Tags,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
	}
}

// --- responses ---

type sessionResponse struct {
	Token       string `json:"token"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	UserID      int64  `json:"userId"`
}

func newSessionResponse(s auth.Session) sessionResponse {
	return sessionResponse{
		Token:       s.Token,
		Email:       s.User.Email,
		DisplayName: s.User.DisplayName,
		UserID:      int64(s.User.ID),
	}
}

// profileResponse is the current-user projection. It deliberately carries no
// token: /me answers "who am I", it does not re-issue credentials.
type profileResponse struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	UserID      int64  `json:"userId"`
}

func newProfileResponse(u domain.User) profileResponse {
	return profileResponse{
		Email:       u.Email,
		DisplayName: u.DisplayName,
		UserID:      int64(u.ID),
	}
}

type tripSummaryResponse struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Photos      []string `json:"photos"`
	Tags        []string `json:"tags"`
}

func newTripSummaryList(ts []domain.Trip) []tripSummaryResponse {
	out := make([]tripSummaryResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, tripSummaryResponse{
			ID:          int64(t.ID),
			Title:       t.Title,
			Description: t.Description,
			Photos:      t.Photos,
			Tags:        t.Tags,
		})
	}
	return out
}

type tripDetailResponse struct {
	ID                int64     `json:"id"`
	Title             string    `json:"title"`
	Description       *string   `json:"description"`
	Photos            []string  `json:"photos"`
	Tags              []string  `json:"tags"`
	Latitude          *float64  `json:"latitude"`
	Longitude         *float64  `json:"longitude"`
	AuthorID          int64     `json:"authorId"`
	AuthorEmail       string    `json:"authorEmail"`
	AuthorDisplayName string    `json:"authorDisplayName"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func newTripDetailResponse(d domain.TripDetails) tripDetailResponse {
	return tripDetailResponse{
		ID:                int64(d.ID),
		Title:             d.Title,
		Description:       d.Description,
		Photos:            d.Photos,
		Tags:              d.Tags,
		Latitude:          d.Latitude,
		Longitude:         d.Longitude,
		AuthorID:          int64(d.Author.ID),
		AuthorEmail:       d.Author.Email,
		AuthorDisplayName: d.Author.DisplayName,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

func newTripDetailList(ds []domain.TripDetails) []tripDetailResponse {
	out := make([]tripDetailResponse, 0, len(ds))
	for _, d := range ds {
		out = append(out, newTripDetailResponse(d))
	}
	return out
}

type uploadResponse struct {
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

func newUploadResponse(u uploads.Uploaded) uploadResponse {
	return uploadResponse{
		URL:         u.URL,
		Filename:    u.Filename,
		Size:        u.Size,
		ContentType: u.ContentType,
	}
}

func newUploadResponseList(us []uploads.Uploaded) []uploadResponse {
	out := make([]uploadResponse, 0, len(us))
	for _, u := range us {
		out = append(out, newUploadResponse(u))
	}
	return out
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- decoding ---

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validation(map[string]string{"body": "must be valid JSON"})
	}
	return nil
}

// validationFields flattens an ozzo result into the taxonomy's field map.
// Keys follow the struct json tags, so they match the request body.
func validationFields(err error) map[string]string {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return map[string]string{"body": err.Error()}
	}
	fields := make(map[string]string, len(verrs))
	for name, ferr := range verrs {
		fields[name] = ferr.Error()
	}
	return fields
}

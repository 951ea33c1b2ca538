// Package trips implements the trip catalog: public browsing and search,
// plus create/update/delete restricted to each trip's author.
package trips

import (
	"context"
	"errors"
	"strings"

	"github.com/oapi-codegen/nullable"

	"github.com/techup/travel-explorer-api/internal/app/apperr"
	"github.com/techup/travel-explorer-api/internal/app/authz"
	"github.com/techup/travel-explorer-api/internal/domain"
	clockport "github.com/techup/travel-explorer-api/internal/ports/out/clock"
	"github.com/techup/travel-explorer-api/internal/ports/out/triprepo"
	"github.com/techup/travel-explorer-api/internal/ports/out/userrepo"
)

type Service struct {
	trips triprepo.Repository
	users userrepo.Repository
	clk   clockport.Clock
}

func NewService(trips triprepo.Repository, users userrepo.Repository, clk clockport.Clock) *Service {
	return &Service{trips: trips, users: users, clk: clk}
}

func (s *Service) List(ctx context.Context) ([]domain.Trip, error) {
	return s.trips.ListAll(ctx)
}

func (s *Service) Search(ctx context.Context, query string) ([]domain.Trip, error) {
	return s.trips.Search(ctx, strings.TrimSpace(query))
}

func (s *Service) Get(ctx context.Context, id domain.TripID) (domain.TripDetails, error) {
	t, err := s.getTrip(ctx, id)
	if err != nil {
		return domain.TripDetails{}, err
	}
	return s.withAuthor(ctx, t)
}

// ListMine returns the caller's trips in detail shape, newest first.
func (s *Service) ListMine(ctx context.Context, caller domain.Identity) ([]domain.TripDetails, error) {
	author, err := s.getUser(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	ts, err := s.trips.ListByAuthor(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.TripDetails, 0, len(ts))
	for _, t := range ts {
		out = append(out, domain.TripDetails{Trip: t, Author: author.Summary()})
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, caller domain.Identity, in CreateInput) (domain.TripDetails, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.TripDetails{}, apperr.Validation(map[string]string{"title": "cannot be blank"})
	}

	// The token may outlive the account; resolve the author before writing.
	author, err := s.getUser(ctx, caller.UserID)
	if err != nil {
		return domain.TripDetails{}, err
	}

	now := s.clk.Now()
	t, err := s.trips.Create(ctx, domain.Trip{
		Title:       title,
		Description: cloneStringPtr(in.Description),
		Photos:      cloneStrings(in.Photos),
		Tags:        cloneStrings(in.Tags),
		Latitude:    cloneFloatPtr(in.Latitude),
		Longitude:   cloneFloatPtr(in.Longitude),
		AuthorID:    author.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return domain.TripDetails{}, err
	}
	return domain.TripDetails{Trip: t, Author: author.Summary()}, nil
}

func (s *Service) Update(ctx context.Context, caller domain.Identity, id domain.TripID, in UpdateInput) (domain.TripDetails, error) {
	t, err := s.getTrip(ctx, id)
	if err != nil {
		return domain.TripDetails{}, err
	}
	if err := authz.RequireOwner(caller, t, "You can only edit your own trips"); err != nil {
		return domain.TripDetails{}, err
	}
	if err := applyPatch(&t, in); err != nil {
		return domain.TripDetails{}, err
	}

	t.UpdatedAt = s.clk.Now()
	saved, err := s.trips.Update(ctx, t)
	if err != nil {
		if errors.Is(err, triprepo.ErrNotFound) {
			return domain.TripDetails{}, apperr.NotFoundf("Trip with id %d not found", id)
		}
		return domain.TripDetails{}, err
	}
	return s.withAuthor(ctx, saved)
}

func (s *Service) Delete(ctx context.Context, caller domain.Identity, id domain.TripID) error {
	t, err := s.getTrip(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.RequireOwner(caller, t, "You can only delete your own trips"); err != nil {
		return err
	}
	if err := s.trips.Delete(ctx, id); err != nil {
		if errors.Is(err, triprepo.ErrNotFound) {
			return apperr.NotFoundf("Trip with id %d not found", id)
		}
		return err
	}
	return nil
}

func (s *Service) getTrip(ctx context.Context, id domain.TripID) (domain.Trip, error) {
	t, err := s.trips.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, triprepo.ErrNotFound) {
			return domain.Trip{}, apperr.NotFoundf("Trip with id %d not found", id)
		}
		return domain.Trip{}, err
	}
	return t, nil
}

func (s *Service) getUser(ctx context.Context, id domain.UserID) (domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return domain.User{}, apperr.NotFoundf("User with id %d not found", id)
		}
		return domain.User{}, err
	}
	return u, nil
}

func (s *Service) withAuthor(ctx context.Context, t domain.Trip) (domain.TripDetails, error) {
	author, err := s.getUser(ctx, t.AuthorID)
	if err != nil {
		return domain.TripDetails{}, err
	}
	return domain.TripDetails{Trip: t, Author: author.Summary()}, nil
}

func applyPatch(t *domain.Trip, in UpdateInput) error {
	if in.Title.IsSpecified() {
		if in.Title.IsNull() {
			return apperr.Validation(map[string]string{"title": "cannot be blank"})
		}
		title := strings.TrimSpace(in.Title.MustGet())
		if title == "" {
			return apperr.Validation(map[string]string{"title": "cannot be blank"})
		}
		t.Title = title
	}

	applyNullablePtr(&t.Description, in.Description)
	applyNullablePtr(&t.Latitude, in.Latitude)
	applyNullablePtr(&t.Longitude, in.Longitude)
	applyNullableSlice(&t.Photos, in.Photos)
	applyNullableSlice(&t.Tags, in.Tags)
	return nil
}

func applyNullablePtr[T any](dst **T, o nullable.Nullable[T]) {
	if !o.IsSpecified() {
		return
	}
	if o.IsNull() {
		*dst = nil
		return
	}
	v := o.MustGet()
	*dst = &v
}

func applyNullableSlice(dst *[]string, o nullable.Nullable[[]string]) {
	if !o.IsSpecified() {
		return
	}
	if o.IsNull() {
		*dst = []string{}
		return
	}
	*dst = cloneStrings(o.MustGet())
}

func cloneStrings(vs []string) []string {
	out := make([]string, len(vs))
	copy(out, vs)
	return out
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneFloatPtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

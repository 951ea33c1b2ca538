package triprepo

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/techup/travel-explorer-api/internal/domain"
	"github.com/techup/travel-explorer-api/internal/ports/out/triprepo"
)

// Repo is an in-memory implementation of triprepo.Repository.
// It is safe for concurrent use. IDs are assigned from a sequence starting
// at 1, mirroring the identity column of the postgres adapter.
type Repo struct {
	mu sync.RWMutex

	nextID int64
	byID   map[domain.TripID]domain.Trip
}

func NewRepo() *Repo {
	return &Repo{
		nextID: 1,
		byID:   make(map[domain.TripID]domain.Trip),
	}
}

func (r *Repo) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	t.ID = domain.TripID(r.nextID)
	r.nextID++
	stored := cloneTrip(t)
	r.byID[t.ID] = stored
	return cloneTrip(stored), nil
}

func (r *Repo) Update(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[t.ID]; !ok {
		return domain.Trip{}, triprepo.ErrNotFound
	}
	stored := cloneTrip(t)
	r.byID[t.ID] = stored
	return cloneTrip(stored), nil
}

func (r *Repo) Delete(ctx context.Context, id domain.TripID) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return triprepo.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.TripID) (domain.Trip, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byID[id]
	if !ok {
		return domain.Trip{}, triprepo.ErrNotFound
	}
	return cloneTrip(t), nil
}

func (r *Repo) ListAll(ctx context.Context) ([]domain.Trip, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Trip, 0, len(r.byID))
	for _, t := range r.byID {
		out = append(out, cloneTrip(t))
	}
	sortTripsNewestFirst(out)
	return out, nil
}

func (r *Repo) ListByAuthor(ctx context.Context, author domain.UserID) ([]domain.Trip, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Trip, 0)
	for _, t := range r.byID {
		if t.AuthorID == author {
			out = append(out, cloneTrip(t))
		}
	}
	sortTripsNewestFirst(out)
	return out, nil
}

func (r *Repo) Search(ctx context.Context, query string) ([]domain.Trip, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return r.ListAll(ctx)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Trip, 0)
	for _, t := range r.byID {
		if matchesQuery(t, q) {
			out = append(out, cloneTrip(t))
		}
	}
	sortTripsNewestFirst(out)
	return out, nil
}

func matchesQuery(t domain.Trip, q string) bool {
	if strings.Contains(strings.ToLower(t.Title), q) {
		return true
	}
	if t.Description != nil && strings.Contains(strings.ToLower(*t.Description), q) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func cloneTrip(t domain.Trip) domain.Trip {
	out := t
	out.Photos = cloneStrings(t.Photos)
	out.Tags = cloneStrings(t.Tags)
	out.Description = cloneStringPtr(t.Description)
	out.Latitude = cloneFloatPtr(t.Latitude)
	out.Longitude = cloneFloatPtr(t.Longitude)
	return out
}

// cloneStrings also normalizes nil to an empty slice: Photos and Tags are
// never nil on a stored trip.
func cloneStrings(ss []string) []string {
	out := make([]string, len(ss))
	copy(out, ss)
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

func sortTripsNewestFirst(ts []domain.Trip) {
	sort.Slice(ts, func(i, j int) bool {
		if ts[i].CreatedAt.Equal(ts[j].CreatedAt) {
			return ts[i].ID > ts[j].ID
		}
		return ts[i].CreatedAt.After(ts[j].CreatedAt)
	})
}

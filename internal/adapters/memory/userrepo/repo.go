package userrepo

import (
	"context"
	"sync"

	"github.com/techup/travel-explorer-api/internal/domain"
	"github.com/techup/travel-explorer-api/internal/ports/out/userrepo"
)

// Repo is an in-memory implementation of userrepo.Repository.
// It is safe for concurrent use. IDs are assigned from a sequence starting
// at 1, mirroring the identity column of the postgres adapter.
type Repo struct {
	mu sync.RWMutex

	nextID    int64
	byID      map[domain.UserID]domain.User
	idByEmail map[string]domain.UserID
}

func NewRepo() *Repo {
	return &Repo{
		nextID:    1,
		byID:      make(map[domain.UserID]domain.User),
		idByEmail: make(map[string]domain.UserID),
	}
}

func (r *Repo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.idByEmail[u.Email]; ok {
		return domain.User{}, userrepo.ErrEmailTaken
	}

	u.ID = domain.UserID(r.nextID)
	r.nextID++
	r.byID[u.ID] = u
	r.idByEmail[u.Email] = u.ID
	return u, nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.UserID) (domain.User, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return domain.User{}, userrepo.ErrNotFound
	}
	return u, nil
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.idByEmail[email]
	if !ok {
		return domain.User{}, userrepo.ErrNotFound
	}
	u, ok := r.byID[id]
	if !ok {
		return domain.User{}, userrepo.ErrNotFound
	}
	return u, nil
}

func (r *Repo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.idByEmail[email]
	return ok, nil
}

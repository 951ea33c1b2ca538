package userrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/techup/travel-explorer-api/internal/adapters/postgres"
	"github.com/techup/travel-explorer-api/internal/domain"
	"github.com/techup/travel-explorer-api/internal/ports/out/userrepo"
)

// Repo is a Postgres implementation of userrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	if r.pool == nil {
		return domain.User{}, errors.New("nil postgres pool")
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, display_name, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`,
		u.Email,
		u.PasswordHash,
		u.DisplayName,
		u.CreatedAt.UTC(),
	).Scan(&u.ID)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode && pe.ConstraintName == "users_email_unique" {
			return domain.User{}, userrepo.ErrEmailTaken
		}
		return domain.User{}, err
	}
	return u, nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.UserID) (domain.User, error) {
	if r.pool == nil {
		return domain.User{}, errors.New("nil postgres pool")
	}
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, display_name, created_at
		FROM users
		WHERE id = $1
	`, int64(id))
	return scanUser(row)
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	if r.pool == nil {
		return domain.User{}, errors.New("nil postgres pool")
	}
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, display_name, created_at
		FROM users
		WHERE email = $1
	`, email)
	return scanUser(row)
}

func (r *Repo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if r.pool == nil {
		return false, errors.New("nil postgres pool")
	}
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)
	`, email).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func scanUser(row interface {
	Scan(dest ...any) error
}) (domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, userrepo.ErrNotFound
		}
		return domain.User{}, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}

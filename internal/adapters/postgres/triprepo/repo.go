package triprepo

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/techup/travel-explorer-api/internal/domain"
	"github.com/techup/travel-explorer-api/internal/ports/out/triprepo"
)

const tripColumns = `
	id,
	title,
	description,
	photos,
	tags,
	latitude,
	longitude,
	author_id,
	created_at,
	updated_at
`

// Repo is a Postgres implementation of triprepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	if r.pool == nil {
		return domain.Trip{}, errors.New("nil postgres pool")
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO trips (
			title,
			description,
			photos,
			tags,
			latitude,
			longitude,
			author_id,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`,
		t.Title,
		t.Description,
		ensureStrings(t.Photos),
		ensureStrings(t.Tags),
		t.Latitude,
		t.Longitude,
		int64(t.AuthorID),
		t.CreatedAt.UTC(),
		t.UpdatedAt.UTC(),
	).Scan(&t.ID)
	if err != nil {
		return domain.Trip{}, err
	}
	t.Photos = ensureStrings(t.Photos)
	t.Tags = ensureStrings(t.Tags)
	return t, nil
}

func (r *Repo) Update(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	if r.pool == nil {
		return domain.Trip{}, errors.New("nil postgres pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE trips
		SET title = $2,
		    description = $3,
		    photos = $4,
		    tags = $5,
		    latitude = $6,
		    longitude = $7,
		    updated_at = $8
		WHERE id = $1
	`,
		int64(t.ID),
		t.Title,
		t.Description,
		ensureStrings(t.Photos),
		ensureStrings(t.Tags),
		t.Latitude,
		t.Longitude,
		t.UpdatedAt.UTC(),
	)
	if err != nil {
		return domain.Trip{}, err
	}
	if ct.RowsAffected() == 0 {
		return domain.Trip{}, triprepo.ErrNotFound
	}
	t.Photos = ensureStrings(t.Photos)
	t.Tags = ensureStrings(t.Tags)
	return t, nil
}

func (r *Repo) Delete(ctx context.Context, id domain.TripID) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	ct, err := r.pool.Exec(ctx, `DELETE FROM trips WHERE id = $1`, int64(id))
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return triprepo.ErrNotFound
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.TripID) (domain.Trip, error) {
	if r.pool == nil {
		return domain.Trip{}, errors.New("nil postgres pool")
	}
	row := r.pool.QueryRow(ctx, `
		SELECT `+tripColumns+`
		FROM trips
		WHERE id = $1
	`, int64(id))
	return scanTrip(row)
}

func (r *Repo) ListAll(ctx context.Context) ([]domain.Trip, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	return r.queryTrips(ctx, `
		SELECT `+tripColumns+`
		FROM trips
		ORDER BY created_at DESC, id DESC
	`)
}

func (r *Repo) ListByAuthor(ctx context.Context, author domain.UserID) ([]domain.Trip, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	return r.queryTrips(ctx, `
		SELECT `+tripColumns+`
		FROM trips
		WHERE author_id = $1
		ORDER BY created_at DESC, id DESC
	`, int64(author))
}

func (r *Repo) Search(ctx context.Context, query string) ([]domain.Trip, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	if query == "" {
		return r.ListAll(ctx)
	}
	pattern := "%" + escapeLike(query) + "%"
	return r.queryTrips(ctx, `
		SELECT `+tripColumns+`
		FROM trips
		WHERE title ILIKE $1
		   OR description ILIKE $1
		   OR EXISTS (SELECT 1 FROM unnest(tags) AS tag WHERE tag ILIKE $1)
		ORDER BY created_at DESC, id DESC
	`, pattern)
}

// --- helpers ---

func (r *Repo) queryTrips(ctx context.Context, sql string, args ...any) ([]domain.Trip, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Trip, 0)
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanTrip(row interface {
	Scan(dest ...any) error
}) (domain.Trip, error) {
	var t domain.Trip
	if err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Photos,
		&t.Tags,
		&t.Latitude,
		&t.Longitude,
		&t.AuthorID,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, triprepo.ErrNotFound
		}
		return domain.Trip{}, err
	}
	t.Photos = ensureStrings(t.Photos)
	t.Tags = ensureStrings(t.Tags)
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return t, nil
}

func ensureStrings(vs []string) []string {
	if vs == nil {
		return []string{}
	}
	return vs
}

// escapeLike neutralizes LIKE metacharacters so the query is matched as a
// literal substring.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

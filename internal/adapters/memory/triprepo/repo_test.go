package triprepo

import (
	"context"
	"testing"
	"time"

	"github.com/techup/travel-explorer-api/internal/domain"
)

func TestRepo_ReturnsIsolatedCopies(t *testing.T) {
	t.Parallel()

	r := NewRepo()
	now := time.Unix(100, 0).UTC()
	desc := "original"
	created, err := r.Create(context.Background(), domain.Trip{
		Title:       "Trip",
		Description: &desc,
		Photos:      []string{"p1"},
		Tags:        []string{"t1"},
		AuthorID:    1,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("Create() err=%v", err)
	}

	// Mutating what the repo handed back must not leak into storage.
	created.Photos[0] = "mutated"
	created.Tags[0] = "mutated"
	*created.Description = "mutated"

	got, err := r.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() err=%v", err)
	}
	if got.Photos[0] != "p1" || got.Tags[0] != "t1" || *got.Description != "original" {
		t.Fatalf("stored trip mutated through a returned copy: %+v", got)
	}
}

func TestRepo_NilSlicesComeBackEmpty(t *testing.T) {
	t.Parallel()

	r := NewRepo()
	created, err := r.Create(context.Background(), domain.Trip{Title: "Bare", AuthorID: 1})
	if err != nil {
		t.Fatalf("Create() err=%v", err)
	}
	got, err := r.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() err=%v", err)
	}
	if got.Photos == nil || got.Tags == nil {
		t.Fatalf("Photos=%v Tags=%v, want empty non-nil slices", got.Photos, got.Tags)
	}
	if len(got.Photos) != 0 || len(got.Tags) != 0 {
		t.Fatalf("Photos=%v Tags=%v, want empty", got.Photos, got.Tags)
	}
}

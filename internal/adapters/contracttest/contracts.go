// Package contracttest holds behavioral suites that every repository
// implementation (memory, postgres) must pass. Adapters invoke them from
// their own test files with a factory that provides a fresh store.
package contracttest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/techup/travel-explorer-api/internal/domain"
	triprepoport "github.com/techup/travel-explorer-api/internal/ports/out/triprepo"
	userrepoport "github.com/techup/travel-explorer-api/internal/ports/out/userrepo"
)

type CleanupFunc = func()

type UserRepoFactory func(t *testing.T) (userrepoport.Repository, CleanupFunc)
type TripRepoFactory func(t *testing.T) (triprepoport.Repository, CleanupFunc)

func RunUserRepo(t *testing.T, newRepo UserRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	now := time.Unix(1000, 0).UTC()
	alice, err := repo.Create(ctx, domain.User{
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$fakefakefakefakefakefakefakefakefakefakefakefakefake",
		DisplayName:  "Alice",
		CreatedAt:    now,
	})
	if err != nil {
		t.Fatalf("Create alice: %v", err)
	}
	if alice.ID <= 0 {
		t.Fatalf("Create did not assign an ID: %+v", alice)
	}

	got, err := repo.GetByID(ctx, alice.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Email != "alice@example.com" || got.DisplayName != "Alice" {
		t.Fatalf("unexpected user: %+v", got)
	}

	got, err = repo.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.ID != alice.ID {
		t.Fatalf("GetByEmail().ID=%d, want %d", got.ID, alice.ID)
	}

	// Email uniqueness.
	if _, err := repo.Create(ctx, domain.User{
		Email:        "alice@example.com",
		PasswordHash: "other-hash",
		DisplayName:  "Alice Two",
		CreatedAt:    now,
	}); !errors.Is(err, userrepoport.ErrEmailTaken) {
		t.Fatalf("duplicate Create err=%v, want ErrEmailTaken", err)
	}

	ok, err := repo.ExistsByEmail(ctx, "alice@example.com")
	if err != nil || !ok {
		t.Fatalf("ExistsByEmail(alice)=%v err=%v, want true", ok, err)
	}
	ok, err = repo.ExistsByEmail(ctx, "nobody@example.com")
	if err != nil || ok {
		t.Fatalf("ExistsByEmail(nobody)=%v err=%v, want false", ok, err)
	}

	if _, err := repo.GetByID(ctx, alice.ID+1000); !errors.Is(err, userrepoport.ErrNotFound) {
		t.Fatalf("GetByID(missing) err=%v, want ErrNotFound", err)
	}
	if _, err := repo.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, userrepoport.ErrNotFound) {
		t.Fatalf("GetByEmail(missing) err=%v, want ErrNotFound", err)
	}

	// Distinct addresses get distinct IDs.
	bob, err := repo.Create(ctx, domain.User{
		Email:        "bob@example.com",
		PasswordHash: "hash-b",
		DisplayName:  "Bob",
		CreatedAt:    now,
	})
	if err != nil {
		t.Fatalf("Create bob: %v", err)
	}
	if bob.ID == alice.ID {
		t.Fatalf("duplicate IDs assigned: %d", bob.ID)
	}
}

// RunTripRepo exercises trip persistence. Trips reference an author, so the
// suite seeds one through the user repository; against postgres both
// factories must share a database for the foreign key to resolve.
func RunTripRepo(t *testing.T, newUserRepo UserRepoFactory, newTripRepo TripRepoFactory) {
	t.Helper()
	ctx := context.Background()

	users, uCleanup := newUserRepo(t)
	if uCleanup != nil {
		t.Cleanup(uCleanup)
	}
	trips, tCleanup := newTripRepo(t)
	if tCleanup != nil {
		t.Cleanup(tCleanup)
	}

	now := time.Unix(2000, 0).UTC()
	author, err := users.Create(ctx, domain.User{
		Email:        "author@example.com",
		PasswordHash: "hash",
		DisplayName:  "Author",
		CreatedAt:    now,
	})
	if err != nil {
		t.Fatalf("seed author: %v", err)
	}
	other, err := users.Create(ctx, domain.User{
		Email:        "other@example.com",
		PasswordHash: "hash",
		DisplayName:  "Other",
		CreatedAt:    now,
	})
	if err != nil {
		t.Fatalf("seed other: %v", err)
	}

	desc := "Snorkeling and volcano hikes"
	lat, lon := 20.7984, -156.3319
	maui, err := trips.Create(ctx, domain.Trip{
		Title:       "Maui Adventure",
		Description: &desc,
		Photos:      []string{"https://cdn.example.com/maui.jpg"},
		Tags:        []string{"beach", "hiking"},
		Latitude:    &lat,
		Longitude:   &lon,
		AuthorID:    author.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("Create maui: %v", err)
	}
	if maui.ID <= 0 {
		t.Fatalf("Create did not assign an ID: %+v", maui)
	}

	got, err := trips.GetByID(ctx, maui.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Maui Adventure" || got.AuthorID != author.ID {
		t.Fatalf("unexpected trip: %+v", got)
	}
	if got.Description == nil || *got.Description != desc {
		t.Fatalf("description lost: %+v", got.Description)
	}
	if len(got.Photos) != 1 || len(got.Tags) != 2 {
		t.Fatalf("photos/tags lost: %+v", got)
	}
	if got.Latitude == nil || *got.Latitude != lat {
		t.Fatalf("latitude lost: %+v", got.Latitude)
	}

	// Newest-first listing; equal CreatedAt breaks ties by ID descending.
	later := now.Add(time.Hour)
	oslo, err := trips.Create(ctx, domain.Trip{
		Title:     "Oslo Weekend",
		Tags:      []string{"city"},
		AuthorID:  other.ID,
		CreatedAt: later,
		UpdatedAt: later,
	})
	if err != nil {
		t.Fatalf("Create oslo: %v", err)
	}
	kyoto, err := trips.Create(ctx, domain.Trip{
		Title:     "Kyoto Temples",
		AuthorID:  author.ID,
		CreatedAt: later,
		UpdatedAt: later,
	})
	if err != nil {
		t.Fatalf("Create kyoto: %v", err)
	}

	all, err := trips.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("ListAll len=%d, want 3", len(all))
	}
	if all[0].ID != kyoto.ID || all[1].ID != oslo.ID || all[2].ID != maui.ID {
		t.Fatalf("ListAll order=[%d %d %d], want [%d %d %d]",
			all[0].ID, all[1].ID, all[2].ID, kyoto.ID, oslo.ID, maui.ID)
	}

	mine, err := trips.ListByAuthor(ctx, author.ID)
	if err != nil {
		t.Fatalf("ListByAuthor: %v", err)
	}
	if len(mine) != 2 || mine[0].ID != kyoto.ID || mine[1].ID != maui.ID {
		t.Fatalf("ListByAuthor=%+v", mine)
	}

	// Search is a case-insensitive substring over title, description, tags.
	for query, wantID := range map[string]domain.TripID{
		"MAUI":       maui.ID,
		"snorkeling": maui.ID,
		"hik":        maui.ID,
		"city":       oslo.ID,
	} {
		res, err := trips.Search(ctx, query)
		if err != nil {
			t.Fatalf("Search(%q): %v", query, err)
		}
		if len(res) != 1 || res[0].ID != wantID {
			t.Fatalf("Search(%q)=%+v, want single trip %d", query, res, wantID)
		}
	}
	res, err := trips.Search(ctx, "")
	if err != nil {
		t.Fatalf("Search(blank): %v", err)
	}
	if len(res) != 3 {
		t.Fatalf("Search(blank) len=%d, want 3", len(res))
	}
	res, err = trips.Search(ctx, "no-such-place")
	if err != nil {
		t.Fatalf("Search(miss): %v", err)
	}
	if len(res) != 0 {
		t.Fatalf("Search(miss) len=%d, want 0", len(res))
	}

	// Update replaces the stored row.
	upd := got
	upd.Title = "Maui Adventure 2.0"
	upd.Tags = []string{"beach"}
	upd.UpdatedAt = later
	saved, err := trips.Update(ctx, upd)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if saved.Title != "Maui Adventure 2.0" || len(saved.Tags) != 1 {
		t.Fatalf("Update returned %+v", saved)
	}
	got, err = trips.GetByID(ctx, maui.ID)
	if err != nil || got.Title != "Maui Adventure 2.0" {
		t.Fatalf("GetByID after update=%+v err=%v", got, err)
	}

	missing := upd
	missing.ID = maui.ID + 1000
	if _, err := trips.Update(ctx, missing); !errors.Is(err, triprepoport.ErrNotFound) {
		t.Fatalf("Update(missing) err=%v, want ErrNotFound", err)
	}

	// Delete.
	if err := trips.Delete(ctx, maui.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := trips.GetByID(ctx, maui.ID); !errors.Is(err, triprepoport.ErrNotFound) {
		t.Fatalf("GetByID after delete err=%v, want ErrNotFound", err)
	}
	if err := trips.Delete(ctx, maui.ID); !errors.Is(err, triprepoport.ErrNotFound) {
		t.Fatalf("Delete(again) err=%v, want ErrNotFound", err)
	}
}

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/techup/travel-explorer-api/internal/app/apperr"
)

func TestKind_Status(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kind apperr.Kind
		want int
	}{
		{apperr.KindValidation, http.StatusBadRequest},
		{apperr.KindEmailExists, http.StatusConflict},
		{apperr.KindBadCredentials, http.StatusUnauthorized},
		{apperr.KindTokenMissing, http.StatusUnauthorized},
		{apperr.KindTokenMalformed, http.StatusUnauthorized},
		{apperr.KindBadSignature, http.StatusUnauthorized},
		{apperr.KindTokenExpired, http.StatusUnauthorized},
		{apperr.KindForbidden, http.StatusForbidden},
		{apperr.KindNotFound, http.StatusNotFound},
		{apperr.KindInternal, http.StatusInternalServerError},
		{apperr.Kind("bogus"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := tc.kind.Status(); got != tc.want {
			t.Errorf("Status(%s)=%d want %d", tc.kind, got, tc.want)
		}
	}
}

func TestClassify_PassesTaggedErrorsThrough(t *testing.T) {
	t.Parallel()

	orig := apperr.NotFoundf("Trip with id %d not found", 7)
	got := apperr.Classify(fmt.Errorf("loading trip: %w", orig))
	if got != orig {
		t.Fatalf("Classify returned %+v, want the wrapped tagged error", got)
	}
	if got.Message != "Trip with id 7 not found" {
		t.Fatalf("message=%q", got.Message)
	}
}

func TestClassify_CollapsesUnknownErrorsToInternal(t *testing.T) {
	t.Parallel()

	// The cause's message must never leak, even when it contains words
	// like "not found".
	got := apperr.Classify(errors.New("pq: relation users not found"))
	if got.Kind != apperr.KindInternal {
		t.Fatalf("kind=%s want %s", got.Kind, apperr.KindInternal)
	}
	if got.Message != "An unexpected error occurred" {
		t.Fatalf("message=%q", got.Message)
	}
}

func TestValidation_CarriesFieldMap(t *testing.T) {
	t.Parallel()

	err := apperr.Validation(map[string]string{"email": "cannot be blank"})
	if err.Kind != apperr.KindValidation || err.Message != "Validation failed" {
		t.Fatalf("err=%+v", err)
	}
	if err.Fields["email"] != "cannot be blank" {
		t.Fatalf("fields=%v", err.Fields)
	}
}

func TestBadCredentials_GenericMessage(t *testing.T) {
	t.Parallel()

	err := apperr.BadCredentials()
	if err.Message != "Invalid email or password" {
		t.Fatalf("message=%q must not name the failing part", err.Message)
	}
}

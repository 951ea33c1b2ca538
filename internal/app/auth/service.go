// Package auth implements registration, login, and current-user resolution.
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/techup/travel-explorer-api/internal/app/apperr"
	"github.com/techup/travel-explorer-api/internal/domain"
	"github.com/techup/travel-explorer-api/internal/platform/auth/passwordhash"
	"github.com/techup/travel-explorer-api/internal/platform/auth/tokencodec"
	clockport "github.com/techup/travel-explorer-api/internal/ports/out/clock"
	"github.com/techup/travel-explorer-api/internal/ports/out/userrepo"
)

type Service struct {
	users  userrepo.Repository
	hasher passwordhash.Hasher
	codec  *tokencodec.Codec
	clk    clockport.Clock
}

func NewService(users userrepo.Repository, hasher passwordhash.Hasher, codec *tokencodec.Codec, clk clockport.Clock) *Service {
	return &Service{users: users, hasher: hasher, codec: codec, clk: clk}
}

// Register creates an account and issues its first token. The email is the
// case-insensitive identity key: it is normalized before the uniqueness
// check, the create, and every later lookup.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Session, error) {
	email := domain.NormalizeEmail(in.Email)
	if email == "" {
		return Session{}, apperr.Validation(map[string]string{"email": "cannot be blank"})
	}
	if in.Password == "" {
		return Session{}, apperr.Validation(map[string]string{"password": "cannot be blank"})
	}

	displayName := domain.NormalizeHumanName(in.DisplayName)
	if displayName == "" {
		displayName = emailLocalPart(email)
	}

	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return Session{}, err
	}
	if taken {
		return Session{}, apperr.EmailExists()
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return Session{}, err
	}

	u, err := s.users.Create(ctx, domain.User{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayName,
		CreatedAt:    s.clk.Now(),
	})
	if err != nil {
		// Lost a race with a concurrent registration: the unique constraint
		// is the authority, the Exists pre-check only gives the common case
		// a friendlier path.
		if errors.Is(err, userrepo.ErrEmailTaken) {
			return Session{}, apperr.EmailExists()
		}
		return Session{}, err
	}

	return s.newSession(u)
}

// Login verifies the credential and issues a fresh token. Unknown email and
// wrong password produce the same failure so responses do not reveal which
// accounts exist.
func (s *Service) Login(ctx context.Context, in LoginInput) (Session, error) {
	email := domain.NormalizeEmail(in.Email)
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return Session{}, apperr.BadCredentials()
		}
		return Session{}, err
	}
	if !s.hasher.Verify(in.Password, u.PasswordHash) {
		return Session{}, apperr.BadCredentials()
	}
	return s.newSession(u)
}

// CurrentUser re-loads the account behind an authenticated identity before
// profile data is exposed. A vanished account is reported as not-found,
// which is distinct from every token-validity failure.
func (s *Service) CurrentUser(ctx context.Context, id domain.UserID) (domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return domain.User{}, apperr.NotFoundf("User with id %d not found", id)
		}
		return domain.User{}, err
	}
	return u, nil
}

func (s *Service) newSession(u domain.User) (Session, error) {
	token, err := s.codec.Issue(domain.Identity{UserID: u.ID, Email: u.Email}, s.clk.Now())
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, User: u}, nil
}

func emailLocalPart(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}

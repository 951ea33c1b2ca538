// Package tokencodec issues and validates the signed bearer tokens that carry
// request identity. Tokens are compact HS256 JWTs signed with a single
// process-wide secret; there is no refresh and no server-side session state.
package tokencodec

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/techup/travel-explorer-api/internal/domain"
)

// Validation failures. All three map to 401 at the HTTP edge but keep
// distinct messages, so they stay distinct here.
var (
	ErrMalformed    = errors.New("tokencodec: malformed token")
	ErrBadSignature = errors.New("tokencodec: signature mismatch")
	ErrExpired      = errors.New("tokencodec: token expired")
)

// DefaultValidity is the issue-to-expiry window used when none is configured.
const DefaultValidity = 24 * time.Hour

// Claims is the signed claim set: subject (email), issued-at, expiry, plus
// the numeric account id. Immutable once signed; the signature covers every
// field.
type Claims struct {
	UserID int64 `json:"userId"`
	jwt.RegisteredClaims
}

// Identity converts validated claims into the request identity.
func (c Claims) Identity() domain.Identity {
	return domain.Identity{UserID: domain.UserID(c.UserID), Email: c.Subject}
}

// Codec signs and validates tokens. The secret and validity window are fixed
// at construction and never rewritten, so one Codec serves all requests
// concurrently without locking.
type Codec struct {
	secret   []byte
	validity time.Duration
}

// New returns a Codec signing with secret. A non-positive validity selects
// DefaultValidity.
func New(secret []byte, validity time.Duration) *Codec {
	if validity <= 0 {
		validity = DefaultValidity
	}
	return &Codec{secret: secret, validity: validity}
}

// Validity reports the configured issue-to-expiry window.
func (c *Codec) Validity() time.Duration { return c.validity }

// Issue signs a token for id with issuedAt=now and expiresAt=now+validity.
// Issuing the same identity at a different instant yields a different token.
func (c *Codec) Issue(id domain.Identity, now time.Time) (string, error) {
	claims := Claims{
		UserID: int64(id.UserID),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.validity)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Validate parses token, verifies the HS256 signature against the codec
// secret, and checks that now is before the expiry instant. Every failure is
// folded into ErrMalformed, ErrBadSignature, or ErrExpired; library error
// text never escapes to callers.
//
// A structurally valid token whose claims lack a subject or a positive
// userId is malformed: it was not minted by this codec.
func (c *Codec) Validate(token string, now time.Time) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return Claims{}, mapParseError(err)
	}
	if claims.UserID <= 0 || claims.Subject == "" {
		return Claims{}, ErrMalformed
	}
	return claims, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		// Also covers tokens declaring any algorithm other than HS256,
		// including alg=none.
		return ErrBadSignature
	default:
		return ErrMalformed
	}
}

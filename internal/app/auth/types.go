package auth

import "github.com/techup/travel-explorer-api/internal/domain"

type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

type LoginInput struct {
	Email    string
	Password string
}

// Session is the outcome of a successful registration or login: a signed
// bearer token plus the account it identifies.
type Session struct {
	Token string
	User  domain.User
}

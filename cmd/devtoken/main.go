package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/techup/travel-explorer-api/internal/domain"
	"github.com/techup/travel-explorer-api/internal/platform/auth/tokencodec"
)

// devtoken mints a bearer token for local curl sessions against an api
// process started with the same JWT_SECRET. It is a development helper, not
// a provisioning tool: the account behind the claims must already exist for
// protected endpoints that re-load it.
func main() {
	var (
		secret = flag.String("secret", os.Getenv("JWT_SECRET"), "signing secret (defaults to JWT_SECRET)")
		userID = flag.Int64("user", 1, "userId claim")
		email  = flag.String("email", "dev@example.com", "subject claim")
		ttl    = flag.Duration("ttl", 24*time.Hour, "validity window")
	)
	flag.Parse()

	if *secret == "" {
		log.Fatal("no signing secret: pass -secret or set JWT_SECRET")
	}
	if *userID <= 0 {
		log.Fatal("-user must be positive")
	}

	codec := tokencodec.New([]byte(*secret), *ttl)
	token, err := codec.Issue(domain.Identity{UserID: domain.UserID(*userID), Email: *email}, time.Now().UTC())
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}
	fmt.Println(token)
}

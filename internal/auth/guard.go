package auth

import (
	"context"
	"errors"

	dom "github.com/adi-1080/notesapp/internal/domain"
)

// ErrUnauthorized is returned for any token that does not resolve to a
// live account: missing, malformed, expired, tampered, or issued to an
// account that no longer exists.
var ErrUnauthorized = errors.New("unauthorized")

// AccountLookup is the slice of the user repo the guard needs.
type AccountLookup interface {
	FindByEmail(ctx context.Context, email string) (dom.User, error)
}

// Guard resolves bearer tokens to accounts. It is the precondition gate
// in front of every note operation.
type Guard struct {
	codec    *Codec
	accounts AccountLookup
}

// NewGuard returns a Guard verifying tokens with codec and resolving
// subjects through accounts.
func NewGuard(codec *Codec, accounts AccountLookup) *Guard {
	return &Guard{codec: codec, accounts: accounts}
}

// Resolve verifies the token and looks up the subject's account.
// A valid token whose account has since been deleted is unauthorized,
// never a stale identity.
func (g *Guard) Resolve(ctx context.Context, tokenString string) (dom.User, error) {
	subject, err := g.codec.Verify(tokenString)
	if err != nil {
		return dom.User{}, ErrUnauthorized
	}
	u, err := g.accounts.FindByEmail(ctx, subject)
	if err != nil {
		return dom.User{}, ErrUnauthorized
	}
	return u, nil
}

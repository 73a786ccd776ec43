package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: bad signature,
// expired, malformed, or signed with an unexpected method. Verify never
// distinguishes the causes, so a caller cannot probe which check failed.
var ErrInvalidToken = errors.New("invalid token")

// Codec signs and verifies HS256 access tokens carrying a subject
// (the account email) and an absolute expiry. The secret is fixed at
// construction and must stay stable for the life of the process.
type Codec struct {
	secret     []byte
	defaultTTL time.Duration
}

// NewCodec returns a Codec signing with secret. ttl is the default
// token lifetime used by Issue.
func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), defaultTTL: ttl}
}

// Issue returns a signed token for subject expiring after the codec's
// default TTL.
func (c *Codec) Issue(subject string) (string, error) {
	return c.IssueWithTTL(subject, c.defaultTTL)
}

// IssueWithTTL returns a signed token for subject expiring after ttl.
func (c *Codec) IssueWithTTL(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	return token.SignedString(c.secret)
}

// Verify checks signature and expiry and returns the embedded subject.
// Any failure returns ErrInvalidToken.
func (c *Codec) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

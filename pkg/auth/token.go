package auth

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
)

type (
	TokenIssuer struct {
		secret   []byte
		lifetime time.Duration
	}
	TokenOption func(*TokenIssuer)
	// Claims carry the account identity inside a signed token.
	Claims struct {
		jwt.RegisteredClaims
		Admin bool `json:"admin"`
	}
)

func WithLifetime(arg time.Duration) TokenOption {
	return func(t *TokenIssuer) {
		t.lifetime = arg
	}
}

func NewTokenIssuer(secret string, opts ...TokenOption) *TokenIssuer {
	ret := &TokenIssuer{secret: []byte(secret), lifetime: 24 * time.Hour}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// IssueToken creates a signed token for the account with the given
// external id.
func (t *TokenIssuer) IssueToken(externalID uuid.UUID, admin bool) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   externalID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.lifetime)),
		},
		Admin: admin,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// VerifyToken parses and validates a signed token. Expired or tampered
// tokens yield ErrInvalidToken.
func (t *TokenIssuer) VerifyToken(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return t.secret, nil
		})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Subject returns the account external id carried in the claims.
func (c *Claims) SubjectID() (uuid.UUID, error) {
	return uuid.FromString(c.Subject)
}

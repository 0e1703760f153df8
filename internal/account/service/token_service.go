package service

//go:generate mockgen -destination=../../mocks/mock_token_issuer.go -package=mocks github.com/annrbk/Auth-app-backend/internal/account/service TokenIssuer

import (
	"fmt"
	"time"

	autherror "github.com/annrbk/Auth-app-backend/internal/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenIssuer interface {
	Issue(accountID string) (string, error)
	Verify(tokenString string) (string, error)
}

// TokenService issues and verifies HS256-signed identity tokens. Tokens are
// self-contained: validity is signature plus expiry, with no server-side
// revocation, so a token outlives blocking or deletion of its account.
type TokenService struct {
	Secret string
	Expiry time.Duration
}

type AccountClaims struct {
	jwt.RegisteredClaims
}

func NewTokenService(secret string, expiryHours int) *TokenService {
	return &TokenService{
		Secret: secret,
		Expiry: time.Duration(expiryHours) * time.Hour,
	}
}

// Issue signs a token bound to accountID, expiring Expiry from now.
func (ts *TokenService) Issue(accountID string) (string, error) {
	now := time.Now()

	claims := AccountClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.Expiry)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ts.Secret))
}

// Verify parses the token and returns the subject account id. Malformed,
// tampered, and expired tokens all come back as ErrInvalidToken.
func (ts *TokenService) Verify(tokenString string) (string, error) {
	claims := &AccountClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ts.Secret), nil
	})

	if err != nil || !token.Valid {
		return "", autherror.ErrInvalidToken
	}

	return claims.Subject, nil
}

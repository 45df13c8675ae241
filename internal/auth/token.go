package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenIssuer signs and verifies the access tokens handed to the SPA and TUI.
// Tokens are stateless; sign-out is token disposal on the client.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

type claims struct {
	CompanyID string `json:"company_id"`
	jwt.RegisteredClaims
}

func (i *TokenIssuer) Issue(userID, companyID uuid.UUID, now time.Time) (string, error) {
	c := claims{
		CompanyID: companyID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signed, nil
}

func (i *TokenIssuer) Verify(tokenString string) (Identity, error) {
	var c claims

	_, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("parsing token: %w", err)
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return Identity{}, fmt.Errorf("parsing subject: %w", err)
	}

	companyID, err := uuid.Parse(c.CompanyID)
	if err != nil {
		return Identity{}, fmt.Errorf("parsing company id: %w", err)
	}

	return Identity{UserID: userID, CompanyID: companyID}, nil
}

package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"stockledger/internal/domain"
)

type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// TokenIssuer signs and verifies HS256 access tokens whose subject is the
// owner's user id.
type TokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret, issuer string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (ti *TokenIssuer) Issue(owner domain.Owner) (string, time.Time, error) {
	if len(ti.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("jwt: empty secret")
	}

	now := ti.now()
	expiresAt := now.Add(ti.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ti.issuer,
			Subject:   owner.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email: owner.Email,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return signed, expiresAt, nil
}

func (ti *TokenIssuer) Parse(tokenString string) (domain.Owner, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ti.secret, nil
	},
		jwt.WithIssuer(ti.issuer),
		jwt.WithTimeFunc(ti.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return domain.Owner{}, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return domain.Owner{}, fmt.Errorf("invalid claims")
	}

	return domain.Owner{UserID: claims.Subject, Email: claims.Email}, nil
}

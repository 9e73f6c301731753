package jwt

import (
	"context"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/artem13815/fundwatch/pkg/auth"
)

type Generator struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewGenerator(secret, issuer string, ttl time.Duration) *Generator {
	return &Generator{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// Claims carries the identity payload clients already rely on: a numeric
// user id under "id" and the account email, plus the registered claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"id"`
	Email  string `json:"email"`
}

func (g *Generator) Generate(ctx context.Context, user auth.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    g.issuer,
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
		UserID: user.ID,
		Email:  user.Email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secret)
}

// Parse validates signature, expiry and (when configured) issuer, and
// returns the embedded identity. Expired and forged tokens come back as
// the same single error: callers are not told which check failed.
func Parse(tokenStr, secret, expectedIssuer string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil || !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if expectedIssuer != "" && claims.Issuer != expectedIssuer {
		return nil, jwt.ErrTokenInvalidIssuer
	}
	return claims, nil
}

package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"quizdesk-service/internal/domain"
)

// TokenService issues and verifies HS256 bearer tokens carrying the user
// identity. It implements app.Authenticator.
type TokenService struct {
	hmac []byte
	ttl  time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &TokenService{hmac: []byte(secret), ttl: ttl}
}

type claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// Issue signs a token for the given user.
func (s *TokenService) Issue(userID, name string) (string, error) {
	now := time.Now()
	c := &claims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    "quizdesk",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return t.SignedString(s.hmac)
}

// CurrentUser resolves the user behind a bearer token. Any parse or
// validation failure maps to ErrUnauthenticated.
func (s *TokenService) CurrentUser(_ context.Context, token string) (domain.UserInfo, error) {
	if token == "" {
		return domain.UserInfo{}, domain.ErrUnauthenticated
	}
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.hmac, nil
	})
	if err != nil || !parsed.Valid {
		return domain.UserInfo{}, domain.ErrUnauthenticated
	}
	c, ok := parsed.Claims.(*claims)
	if !ok || c.Subject == "" {
		return domain.UserInfo{}, domain.ErrUnauthenticated
	}
	return domain.UserInfo{ID: c.Subject, Name: c.Name}, nil
}

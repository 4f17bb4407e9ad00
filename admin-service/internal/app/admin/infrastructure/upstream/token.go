package upstream

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenSubject = "admin-service"

// TokenSource выпускает сервисный JWT для запросов к backend
// Токен переиспользуется, пока до истечения больше refreshSkew
type TokenSource struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

const refreshSkew = 30 * time.Second

func NewTokenSource(secret string, ttl time.Duration) *TokenSource {
	return &TokenSource{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Token возвращает действующий токен, при необходимости выпускает новый
func (s *TokenSource) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.token != "" && now.Add(refreshSkew).Before(s.expiresAt) {
		return s.token, nil
	}

	expiresAt := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Issuer:    tokenSubject,
		Subject:   tokenSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign service token: %w", err)
	}

	s.token = signed
	s.expiresAt = expiresAt
	return signed, nil
}

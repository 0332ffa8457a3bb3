// Package card issues and verifies signed share links for plans. A card
// token carries the normalized context and seed, so the receiving end can
// rebuild the exact same plan without any stored state.
package card

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"peet-planner/internal/engine"
)

// Claims is the signed payload of a share card.
type Claims struct {
	Context engine.Context `json:"ctx"`
	Seed    int            `json:"seed"`
	jwt.RegisteredClaims
}

// Service signs and verifies card tokens.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates a card service. The secret must not be empty.
func NewService(secret string, ttl time.Duration) (*Service, error) {
	if secret == "" {
		return nil, fmt.Errorf("card signing secret is empty")
	}
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &Service{secret: []byte(secret), ttl: ttl}, nil
}

// Issue signs a token for the given context and seed.
func (s *Service) Issue(ctx engine.Context, seed int) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Context: ctx,
		Seed:    seed,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign card token: %w", err)
	}
	return signed, nil
}

// Verify parses a token and returns its claims.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to verify card token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid card token")
	}
	return claims, nil
}

// Handler serves the plan behind a card token as JSON.
func (s *Service) Handler(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString := r.URL.Query().Get("token")
		if tokenString == "" {
			http.Error(w, "missing token", http.StatusBadRequest)
			return
		}

		claims, err := s.Verify(tokenString)
		if err != nil {
			http.Error(w, "invalid or expired card", http.StatusUnauthorized)
			return
		}

		plan := eng.PlanWithSeed(claims.Context, claims.Seed)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(plan); err != nil {
			log.Printf("Failed to write card response: %v", err)
		}
	}
}

package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/openboard/service-jobboard-go/pkg/apperr"
	"github.com/openboard/service-jobboard-go/pkg/utilities"
)

type Config struct {
	Secret string
	TTL    time.Duration
}

// ConfigFromEnv reads the token signing config from env vars.
func ConfigFromEnv() Config {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		// development fallback, never use in production
		secret = "secret-dev"
	}
	ttl := 24 * time.Hour
	if v := os.Getenv("JWT_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			ttl = d
		}
	}
	return Config{Secret: secret, TTL: ttl}
}

// TokenService issues and verifies HS256 access tokens. The signing secret
// is injected at construction so tests can run with their own key.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(cfg Config) *TokenService {
	return &TokenService{secret: []byte(cfg.Secret), ttl: cfg.TTL}
}

// Issue signs a token carrying the caller identity.
func (s *TokenService) Issue(id Identity) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"username": id.Username,
		"is_admin": id.IsAdmin,
		"jti":      utilities.NewTokenID(),
		"iat":      now.Unix(),
		"exp":      now.Add(s.ttl).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token and returns the identity it carries.
func (s *TokenService) Verify(token string) (*Identity, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, apperr.Unauthorized("invalid token")
	}
	username, _ := claims["username"].(string)
	if username == "" {
		return nil, apperr.Unauthorized("invalid token")
	}
	isAdmin, _ := claims["is_admin"].(bool)
	return &Identity{Username: username, IsAdmin: isAdmin}, nil
}

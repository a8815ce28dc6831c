package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"

	"storefront-backend/internal/apperr"
)

// Claims is the payload of an access token.
type Claims struct {
	Email string `json:"email"`
	jwt.StandardClaims
}

// TokenService issues and verifies HS256 access tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for email that expires after the configured ttl.
func (s *TokenService) Issue(email string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.ttl).Unix(),
			Subject:   email,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks an Authorization header value of the form "Bearer <token>".
func (s *TokenService) Verify(header string) (*Claims, error) {
	if strings.TrimSpace(header) == "" {
		return nil, apperr.ErrMissingCredential
	}
	fields := strings.Fields(header)
	if len(fields) < 2 {
		return nil, apperr.ErrInvalidCredential
	}

	token, err := jwt.ParseWithClaims(fields[1], &Claims{}, s.keyFunc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidCredential, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Email == "" {
		return nil, apperr.ErrInvalidCredential
	}
	return claims, nil
}

func (s *TokenService) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return s.secret, nil
}

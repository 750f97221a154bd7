package auth

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/msoler84/userhub/internal/common"
)

// TokenService issues and verifies signed, time-limited bearer tokens.
// The subject is any JSON-serializable value: a user id for a session token,
// nil for a signup verification artifact. Tokens are stateless; there is no
// revocation list.
type TokenService struct {
	secret   []byte
	validity time.Duration
}

func NewTokenService(secret []byte, validity time.Duration) *TokenService {
	return &TokenService{secret: secret, validity: validity}
}

// Issue returns a signed token for subject using the default validity.
func (s *TokenService) Issue(subject any) (string, error) {
	return s.IssueFor(subject, s.validity)
}

// IssueFor returns a signed token for subject that expires after d.
func (s *TokenService) IssueFor(subject any, d time.Duration) (string, error) {
	sub, err := json.Marshal(subject)
	if err != nil {
		return "", err
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   string(sub),
		ExpiresAt: jwt.NewNumericDate(now.Add(d)),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        uuid.NewString(),
	})

	return token.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the decoded subject.
// It fails with common.ErrTokenExpired when the token's lifetime has elapsed
// and with common.ErrInvalidToken for a tampered or malformed token.
func (s *TokenService) Verify(tokenString string) (any, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	var subject any
	if claims.Subject != "" {
		if err := json.Unmarshal([]byte(claims.Subject), &subject); err != nil {
			return nil, common.ErrInvalidToken
		}
	}
	return subject, nil
}

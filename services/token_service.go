package services

import (
	"errors"
	"time"

	"blog-platform-api/models"

	"github.com/golang-jwt/jwt/v4"
)

// TokenClaims is the signed payload: who the token identifies plus the
// registered issue/expiry timestamps.
type TokenClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type TokenService interface {
	Issue(userID, email string) (string, error)
	IssueWithTTL(userID, email string, ttl time.Duration) (string, error)
	Verify(tokenString string) (*TokenClaims, error)
}

type tokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService takes the signing key from config; there is no default key.
func NewTokenService(secret []byte, ttl time.Duration) TokenService {
	return &tokenService{secret: secret, ttl: ttl}
}

func (s *tokenService) Issue(userID, email string) (string, error) {
	return s.IssueWithTTL(userID, email, s.ttl)
}

func (s *tokenService) IssueWithTTL(userID, email string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := TokenClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(s.secret)
}

// Verify returns the claims or a models.TokenError tagged with the failure
// kind. Expected failures never panic or surface as generic errors.
func (s *tokenService) Verify(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, &models.TokenError{Kind: models.TokenMalformed, Err: err}
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, &models.TokenError{Kind: models.TokenExpired, Err: err}
		default:
			// Wrong key, wrong algorithm, tampered payload.
			return nil, &models.TokenError{Kind: models.TokenSignatureInvalid, Err: err}
		}
	}

	if !token.Valid {
		return nil, &models.TokenError{Kind: models.TokenSignatureInvalid}
	}

	return claims, nil
}

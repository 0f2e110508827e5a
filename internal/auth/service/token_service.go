package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/ejifeanyi/lintra/internal/auth/service TokenGenerator

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/ejifeanyi/lintra/internal/errors"
	"github.com/ejifeanyi/lintra/pkg/constant"
)

type TokenGenerator interface {
	Issue(userID string) (string, error)
	Verify(tokenString string) (string, error)
}

// TokenService signs and verifies bearer tokens against a single
// process-wide secret. It is stateless and safe for concurrent use.
type TokenService struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

type JWTCustomClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
}

func NewTokenService(secret string) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("token service: signing secret is not configured")
	}
	return &TokenService{
		secret: []byte(secret),
		expiry: constant.TokenExpiry,
		now:    time.Now,
	}, nil
}

// Issue produces a signed token carrying only the principal's id. Role is
// intentionally not embedded: authorization re-reads it from the store so
// role changes take effect without reissuing tokens.
func (ts *TokenService) Issue(userID string) (string, error) {
	now := ts.now()

	claims := JWTCustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return token, nil
}

// Verify parses and validates the given token string and returns the encoded
// principal id. Failures collapse into exactly three kinds: expired,
// malformed (bad structure or signature), and a generic verification error.
func (ts *TokenService) Verify(tokenString string) (string, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ts.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return ts.now() }))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", apperrors.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed),
			errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", apperrors.ErrTokenMalformed
		default:
			return "", apperrors.ErrTokenVerification
		}
	}

	if !token.Valid {
		return "", apperrors.ErrTokenVerification
	}

	return claims.UserID, nil
}

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and validates bearer tokens
type TokenService interface {
	GenerateAccessToken(userID kernel.UserID, email string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}

// TokenClaims is the identity carried by a validated token
type TokenClaims struct {
	UserID    kernel.UserID
	Email     string
	ExpiresAt time.Time
}

type jwtClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// JWTService implements TokenService with HMAC-signed JWTs
type JWTService struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

func NewJWTService(secret string, ttl time.Duration, issuer string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
	}
}

func (s *JWTService) GenerateAccessToken(userID kernel.UserID, email string) (string, error) {
	if userID.IsEmpty() {
		return "", ErrInvalidToken().WithDetail("reason", "empty subject")
	}

	now := time.Now()
	claims := jwtClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errx.Wrap(err, "failed to sign token", errx.TypeInternal)
	}
	return token, nil
}

func (s *JWTService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	var claims jwtClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired()
		}
		return nil, ErrInvalidToken().WithCause(err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken()
	}

	return &TokenClaims{
		UserID:    kernel.NewUserID(claims.Subject),
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

const (
	RoleIndUser = "IndUser"
	RoleAdmin   = "Admin"
)

var (
	ErrInvalidJWTToken  = errors.New("JWT token is invalid")
	ErrExpiredJWTToken  = errors.New("JWT token is expired")
	ErrMissingExpiry    = errors.New("JWT token has no expiration time")
	ErrInvalidIssuer    = errors.New("JWT token issuer is not accepted")
	ErrInvalidAudience  = errors.New("JWT token audience is not accepted")
	ErrMissingRoleClaim = errors.New("JWT token carries no role")
)

type JWTManagerInterface interface {
	GenerateAccessJWT(subject, role string, duration time.Duration) (string, error)
	ValidateAccessToken(tokenString string) (*RoleClaims, error)
}

type RoleClaims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

type JWTManager struct {
	secret   []byte
	issuer   string
	audience string
}

func NewJWTManager(secret, issuer, audience string) JWTManagerInterface {
	return &JWTManager{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
	}
}

// GenerateAccessJWT signs a role token. The service only validates tokens; issuing
// them is left to cmd/issue-token and tests.
func (j *JWTManager) GenerateAccessJWT(subject, role string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := &RoleClaims{
		Role: role,
		StandardClaims: jwt.StandardClaims{
			Subject:   subject,
			Issuer:    j.issuer,
			Audience:  j.audience,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(duration).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secret)
}

// ValidateAccessToken checks signature, issuer, audience and expiry with no clock skew.
func (j *JWTManager) ValidateAccessToken(tokenString string) (*RoleClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &RoleClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	})

	if err != nil {
		var validationErr *jwt.ValidationError
		if errors.As(err, &validationErr) {
			if validationErr.Errors&(jwt.ValidationErrorExpired) != 0 {
				return nil, ErrExpiredJWTToken
			}
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*RoleClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidJWTToken
	}
	if claims.ExpiresAt == 0 {
		return nil, ErrMissingExpiry
	}
	if !claims.VerifyIssuer(j.issuer, true) {
		return nil, ErrInvalidIssuer
	}
	if !claims.VerifyAudience(j.audience, true) {
		return nil, ErrInvalidAudience
	}
	if claims.Role == "" {
		return nil, ErrMissingRoleClaim
	}

	return claims, nil
}

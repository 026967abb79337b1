package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret   = "test-secret"
	testIssuer   = "bill-platform"
	testAudience = "bill-platform-clients"
)

func TestValidateAccessToken_Valid(t *testing.T) {
	manager := NewJWTManager(testSecret, testIssuer, testAudience)

	token, err := manager.GenerateAccessJWT("user-1", RoleIndUser, time.Minute)
	require.NoError(t, err)

	claims, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, RoleIndUser, claims.Role)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	manager := NewJWTManager(testSecret, testIssuer, testAudience)

	token, err := manager.GenerateAccessJWT("user-1", RoleIndUser, -time.Second)
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrExpiredJWTToken)
}

func TestValidateAccessToken_WrongIssuer(t *testing.T) {
	other := NewJWTManager(testSecret, "someone-else", testAudience)
	token, err := other.GenerateAccessJWT("user-1", RoleIndUser, time.Minute)
	require.NoError(t, err)

	manager := NewJWTManager(testSecret, testIssuer, testAudience)
	_, err = manager.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidIssuer)
}

func TestValidateAccessToken_WrongAudience(t *testing.T) {
	other := NewJWTManager(testSecret, testIssuer, "another-app")
	token, err := other.GenerateAccessJWT("user-1", RoleIndUser, time.Minute)
	require.NoError(t, err)

	manager := NewJWTManager(testSecret, testIssuer, testAudience)
	_, err = manager.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidAudience)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	other := NewJWTManager("another-secret", testIssuer, testAudience)
	token, err := other.GenerateAccessJWT("user-1", RoleIndUser, time.Minute)
	require.NoError(t, err)

	manager := NewJWTManager(testSecret, testIssuer, testAudience)
	_, err = manager.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}

func TestValidateAccessToken_MissingExpiry(t *testing.T) {
	claims := &RoleClaims{
		Role: RoleAdmin,
		StandardClaims: jwt.StandardClaims{
			Issuer:   testIssuer,
			Audience: testAudience,
			IssuedAt: time.Now().Unix(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	manager := NewJWTManager(testSecret, testIssuer, testAudience)
	_, err = manager.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrMissingExpiry)
}

func TestValidateAccessToken_MissingRole(t *testing.T) {
	manager := NewJWTManager(testSecret, testIssuer, testAudience)
	token, err := manager.GenerateAccessJWT("user-1", "", time.Minute)
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrMissingRoleClaim)
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	manager := NewJWTManager(testSecret, testIssuer, testAudience)
	_, err := manager.ValidateAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}

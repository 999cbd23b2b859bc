package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager("secret", "", time.Hour)
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID, "a@example.com", "admin", "Amal")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)

	got, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, got)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, "admin", claims.AppRole())
	assert.Equal(t, "Amal", claims.UserMetadata.FullName)
}

func TestManager_WrongSecret(t *testing.T) {
	token, err := NewManager("one", "", time.Hour).GenerateAccessToken(uuid.New(), "", "member", "")
	require.NoError(t, err)

	_, err = NewManager("two", "", time.Hour).ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestManager_Expired(t *testing.T) {
	m := NewManager("secret", "", -time.Minute)
	token, err := m.GenerateAccessToken(uuid.New(), "", "member", "")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestManager_Issuer(t *testing.T) {
	token, err := NewManager("secret", "other", time.Hour).GenerateAccessToken(uuid.New(), "", "member", "")
	require.NoError(t, err)

	_, err = NewManager("secret", "expected", time.Hour).ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestManager_RejectsNoneAlgorithm(t *testing.T) {
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: uuid.NewString()}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewManager("secret", "", time.Hour).ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestClaims_AppRoleFallsBackToTopLevel(t *testing.T) {
	c := &Claims{Role: "admin"}
	assert.Equal(t, "admin", c.AppRole())
}

func TestClaims_UserIDInvalid(t *testing.T) {
	c := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "not-a-uuid"}}
	_, err := c.UserID()
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

package security

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestGenerateAndVerifyToken(t *testing.T) {
	token, err := GenerateToken(Claims{ID: "user-1", Name: "Sana"}, time.Hour, testSecret)
	require.NoError(t, err)

	claims, err := VerifyToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.ID)
	assert.Equal(t, "Sana", claims.Name)
	require.NotNil(t, claims.ExpiresAt)
}

func TestVerifyToken_Rejects(t *testing.T) {
	valid, err := GenerateToken(Claims{ID: "user-1"}, time.Hour, testSecret)
	require.NoError(t, err)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		ID:               "user-1",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noID, err := GenerateToken(Claims{Name: "nobody"}, time.Hour, testSecret)
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{ID: "user-1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"wrong secret", valid, "other-secret"},
		{"expired", expired, testSecret},
		{"garbage", "not.a.token", testSecret},
		{"missing id", noID, testSecret},
		{"alg none", unsigned, testSecret},
		{"no secret configured", valid, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := VerifyToken(tt.token, tt.secret)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestVerifyToken_MissingIDError(t *testing.T) {
	token, err := GenerateToken(Claims{Name: "nobody"}, 0, testSecret)
	require.NoError(t, err)

	_, err = VerifyToken(token, testSecret)
	assert.True(t, errors.Is(err, ErrMissingUserID))
}

func TestGenerateToken_RequiresSecret(t *testing.T) {
	_, err := GenerateToken(Claims{ID: "x"}, time.Hour, "")
	assert.Error(t, err)
}

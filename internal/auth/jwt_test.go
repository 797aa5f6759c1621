package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret"

func TestGenerateAndValidateToken(t *testing.T) {
	tests := []struct {
		name string
		role Role
	}{
		{name: "player", role: RolePlayer},
		{name: "system", role: RoleSystem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			playerID := uuid.New()

			token, err := GenerateToken(playerID, tt.role, testSecret, 24*time.Hour)
			require.NoError(t, err)
			require.NotEmpty(t, token)

			claims, err := ValidateToken(token, testSecret)
			require.NoError(t, err)
			assert.Equal(t, playerID, claims.PlayerID)
			assert.Equal(t, tt.role, claims.Role)
		})
	}
}

func TestValidateToken(t *testing.T) {
	playerID := uuid.New()

	validToken, err := GenerateToken(playerID, RolePlayer, testSecret, 24*time.Hour)
	require.NoError(t, err)

	expiredToken, err := GenerateToken(playerID, RolePlayer, testSecret, -1*time.Hour)
	require.NoError(t, err)

	badRole, err := GenerateToken(playerID, Role("admin"), testSecret, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name      string
		token     string
		secret    string
		wantErrIs error
	}{
		{
			name:      "expired token",
			token:     expiredToken,
			secret:    testSecret,
			wantErrIs: jwt.ErrTokenExpired,
		},
		{
			name:      "wrong secret",
			token:     validToken,
			secret:    "wrong-secret",
			wantErrIs: jwt.ErrTokenSignatureInvalid,
		},
		{
			name:      "malformed token",
			token:     "not.a.valid.jwt",
			secret:    testSecret,
			wantErrIs: jwt.ErrTokenMalformed,
		},
		{
			name:      "empty token",
			token:     "",
			secret:    testSecret,
			wantErrIs: jwt.ErrTokenMalformed,
		},
		{
			name:      "unknown role",
			token:     badRole,
			secret:    testSecret,
			wantErrIs: ErrUnknownRole,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateToken(tc.token, tc.secret)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErrIs)
		})
	}
}

func TestValidateToken_RejectsNonHMAC(t *testing.T) {
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		PlayerID: uuid.NewString(),
		Role:     string(RoleSystem),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateToken(signed, testSecret)
	require.Error(t, err)
}

func TestClaimsCanAccess(t *testing.T) {
	self, other := uuid.New(), uuid.New()

	assert.True(t, Claims{PlayerID: self, Role: RolePlayer}.CanAccess(self))
	assert.False(t, Claims{PlayerID: self, Role: RolePlayer}.CanAccess(other))
	assert.True(t, Claims{PlayerID: self, Role: RoleSystem}.CanAccess(other))
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("")
	require.NoError(t, err)
	assert.Equal(t, RolePlayer, r)

	r, err = ParseRole("system")
	require.NoError(t, err)
	assert.Equal(t, RoleSystem, r)

	_, err = ParseRole("root")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestClaimsContext(t *testing.T) {
	_, ok := ClaimsFromContext(context.Background())
	assert.False(t, ok)

	want := Claims{PlayerID: uuid.New(), Role: RoleSystem}
	got, ok := ClaimsFromContext(ContextWithClaims(context.Background(), want))
	require.True(t, ok)
	assert.Equal(t, want, got)
}

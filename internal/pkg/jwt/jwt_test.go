package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrm-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", "1h", "24h")

	token, expiresAt, err := svc.GenerateAccessToken(42, "alice", user.RoleAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), expiresAt, 5)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	ctx := jwtauth.NewContext(context.Background(), decoded, nil)
	claims, err := ClaimsFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, user.RoleAdmin, claims.Role)
	assert.True(t, claims.HasPermission(user.PermissionUserManage))

	typ, ok := decoded.Get("type")
	require.True(t, ok)
	assert.Equal(t, TokenTypeAccess, typ)
}

func TestGenerateRefreshToken(t *testing.T) {
	svc := NewJWTService("test-secret", "1h", "24h")

	first, _, err := svc.GenerateRefreshToken(7)
	require.NoError(t, err)
	second, _, err := svc.GenerateRefreshToken(7)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	decoded, err := svc.JWTAuth().Decode(first)
	require.NoError(t, err)
	typ, _ := decoded.Get("type")
	assert.Equal(t, TokenTypeRefresh, typ)
}

func TestInvalidExpiration(t *testing.T) {
	svc := NewJWTService("test-secret", "forever", "24h")

	_, _, err := svc.GenerateAccessToken(1, "alice", user.RoleUser)
	assert.Error(t, err)
}

func TestClaimsFromContextWithoutToken(t *testing.T) {
	_, err := ClaimsFromContext(context.Background())
	assert.Error(t, err)
}

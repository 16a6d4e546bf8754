package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asdes/report-service/internal/domain"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 30)
	user := &domain.User{ID: "u1", Role: domain.RoleWarga}

	token, exp, err := tm.GenerateToken(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), exp, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, domain.RoleWarga, claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenManager_UniqueTokenIDs(t *testing.T) {
	tm := NewTokenManager("test-secret", 30)
	user := &domain.User{ID: "u1", Role: domain.RoleWarga}

	first, _, err := tm.GenerateToken(user)
	require.NoError(t, err)
	second, _, err := tm.GenerateToken(user)
	require.NoError(t, err)

	c1, err := tm.ParseToken(first)
	require.NoError(t, err)
	c2, err := tm.ParseToken(second)
	require.NoError(t, err)
	assert.NotEqual(t, c1.ID, c2.ID)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 30).GenerateToken(&domain.User{ID: "u1", Role: domain.RoleWarga})
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", 30).ParseToken(token)
	assert.Error(t, err)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	tm := &TokenManager{secret: []byte("test-secret"), ttl: -time.Minute}
	token, _, err := tm.GenerateToken(&domain.User{ID: "u1", Role: domain.RoleWarga})
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("rahasia123", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "rahasia123", hash)

	assert.NoError(t, ComparePassword(hash, "rahasia123"))
	assert.Error(t, ComparePassword(hash, "salah"))
}

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Minute, time.Hour)

	access, err := m.GenerateAccessToken("u1", "a@b.co", "creator")
	require.NoError(t, err)

	claims, err := m.ParseToken(access, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "creator", claims.Role)

	_, err = m.ParseToken(access, TokenTypeRefresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestTokenManager_RejectsForeignSecretAndExpired(t *testing.T) {
	m := NewTokenManager("secret", time.Minute, time.Hour)
	other := NewTokenManager("other", time.Minute, time.Hour)

	token, err := other.GenerateAccessToken("u1", "a@b.co", "admin")
	require.NoError(t, err)
	_, err = m.ParseToken(token, TokenTypeAccess)
	assert.Error(t, err)

	m.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }
	expired, err := m.GenerateAccessToken("u1", "a@b.co", "admin")
	require.NoError(t, err)
	m.now = time.Now
	_, err = m.ParseToken(expired, TokenTypeAccess)
	assert.Error(t, err)
}

func TestPasswordHelpers(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))

	pw, err := GeneratePassword(12)
	require.NoError(t, err)
	assert.Len(t, pw, 12)
	assert.Regexp(t, `^[A-Za-z0-9]{12}$`, pw)
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, IsAdmin("admin"))
	assert.False(t, IsAdmin("creator"))
	assert.False(t, IsAdmin(""))
}

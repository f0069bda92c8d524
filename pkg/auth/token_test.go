package auth

import (
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer("secret")
	id := uuid.Must(uuid.NewV4())

	token, err := issuer.IssueToken(id, true)
	require.NoError(t, err)

	claims, err := issuer.VerifyToken(token)
	require.NoError(t, err)
	assert.True(t, claims.Admin)
	got, err := claims.SubjectID()
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestVerifyRejects(t *testing.T) {
	issuer := NewTokenIssuer("secret")
	id := uuid.Must(uuid.NewV4())

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.VerifyToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewTokenIssuer("other").IssueToken(id, false)
		require.NoError(t, err)
		_, err = issuer.VerifyToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
	t.Run("expired", func(t *testing.T) {
		short := NewTokenIssuer("secret", WithLifetime(-time.Minute))
		token, err := short.IssueToken(id, false)
		require.NoError(t, err)
		_, err = issuer.VerifyToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("tifosi4ever")
	require.NoError(t, err)
	assert.NotEqual(t, "tifosi4ever", hash)
	assert.True(t, VerifyPassword(hash, "tifosi4ever"))
	assert.False(t, VerifyPassword(hash, "wrong"))
}

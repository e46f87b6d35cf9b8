package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	now := time.Now()
	sess := &Session{ID: "abc-123", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}

	raw, err := IssueToken("s3cret", sess)
	require.NoError(t, err)

	id, err := ParseToken("s3cret", raw, now)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", id)
}

func TestParseTokenRejects(t *testing.T) {
	now := time.Now()
	sess := &Session{ID: "abc-123", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	raw, err := IssueToken("s3cret", sess)
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := ParseToken("other", raw, now)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		_, err := ParseToken("s3cret", raw, now.Add(2*time.Hour))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseToken("s3cret", "not.a.token", now)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

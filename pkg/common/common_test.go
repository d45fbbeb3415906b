package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDint64Unique(t *testing.T) {
	seen := make(map[int64]struct{})
	for i := 0; i < 1000; i++ {
		id := UUIDint64()
		_, dup := seen[id]
		require.False(t, dup, "duplicate snowflake id %d", id)
		seen[id] = struct{}{}
	}
}

func TestChainHashToken(t *testing.T) {
	token := ChainHashToken()
	assert.True(t, strings.HasPrefix(token, "0x"))
	assert.Len(t, token, 34)
	assert.NotEqual(t, token, ChainHashToken())
}

func TestPasswordRoundTrip(t *testing.T) {
	hashed, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hashed)
	assert.True(t, CheckPassword(hashed, "s3cret"))
	assert.False(t, CheckPassword(hashed, "wrong"))
}

package utils

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateNumericCode(t *testing.T) {
	t.Run("generates codes of the requested length", func(t *testing.T) {
		code, err := GenerateNumericCode(6)
		require.NoError(t, err)
		assert.Len(t, code, 6)
	})

	t.Run("generates only numeric characters", func(t *testing.T) {
		code, err := GenerateNumericCode(6)
		require.NoError(t, err)
		for i, c := range code {
			assert.True(t, c >= '0' && c <= '9',
				"character at position %d (%c) should be numeric", i, c)
		}
		_, err = strconv.Atoi(code)
		require.NoError(t, err)
	})

	t.Run("generates different codes", func(t *testing.T) {
		codes := make(map[string]bool)
		for i := 0; i < 50; i++ {
			code, err := GenerateNumericCode(6)
			require.NoError(t, err)
			codes[code] = true
		}
		assert.Greater(t, len(codes), 1)
	})

	t.Run("allows leading zeros", func(t *testing.T) {
		// Statistically some code out of many starts with 0
		found := false
		for i := 0; i < 200 && !found; i++ {
			code, err := GenerateNumericCode(6)
			require.NoError(t, err)
			if code[0] == '0' {
				found = true
			}
		}
		assert.True(t, found, "expected at least one code with a leading zero")
	})
}

func TestHashCode(t *testing.T) {
	t.Run("is deterministic", func(t *testing.T) {
		assert.Equal(t, HashCode("123456"), HashCode("123456"))
	})

	t.Run("differs for different codes", func(t *testing.T) {
		assert.NotEqual(t, HashCode("123456"), HashCode("123457"))
	})

	t.Run("never equals the raw code", func(t *testing.T) {
		assert.NotEqual(t, "123456", HashCode("123456"))
	})
}

func TestBuildCodeRecord(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	record := BuildCodeRecord("123456", 10*time.Minute, now)

	assert.Equal(t, HashCode("123456"), record.CodeHash)
	assert.Equal(t, now.Add(10*time.Minute), record.ExpiresAt)
	assert.Equal(t, now, record.LastSentAt)
}

func TestIsCodeValid(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	record := BuildCodeRecord("123456", 10*time.Minute, now)

	t.Run("valid immediately after issuance", func(t *testing.T) {
		assert.True(t, IsCodeValid(&record.CodeHash, &record.ExpiresAt, "123456", now))
	})

	t.Run("valid just before the TTL elapses", func(t *testing.T) {
		at := now.Add(10*time.Minute - time.Second)
		assert.True(t, IsCodeValid(&record.CodeHash, &record.ExpiresAt, "123456", at))
	})

	t.Run("invalid after the TTL elapses", func(t *testing.T) {
		at := now.Add(10*time.Minute + time.Second)
		assert.False(t, IsCodeValid(&record.CodeHash, &record.ExpiresAt, "123456", at))
	})

	t.Run("invalid for a different code", func(t *testing.T) {
		assert.False(t, IsCodeValid(&record.CodeHash, &record.ExpiresAt, "654321", now))
	})

	t.Run("invalid with no stored hash", func(t *testing.T) {
		assert.False(t, IsCodeValid(nil, &record.ExpiresAt, "123456", now))
		empty := ""
		assert.False(t, IsCodeValid(&empty, &record.ExpiresAt, "123456", now))
	})

	t.Run("invalid with no expiry", func(t *testing.T) {
		assert.False(t, IsCodeValid(&record.CodeHash, nil, "123456", now))
	})
}

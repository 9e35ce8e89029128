package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"
)

// CodeRecord is the stored shape of an issued one-time code. The raw code
// is never stored or logged, only its digest.
type CodeRecord struct {
	CodeHash   string
	ExpiresAt  time.Time
	LastSentAt time.Time
}

// GenerateNumericCode generates a uniformly-random numeric code of the
// given length. Leading zeros are allowed.
func GenerateNumericCode(length int) (string, error) {
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		code[i] = byte('0' + n.Int64())
	}
	return string(code), nil
}

// HashCode derives the one-way digest stored in place of a raw code
func HashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// BuildCodeRecord stamps a freshly issued code with its expiry window
func BuildCodeRecord(code string, ttl time.Duration, now time.Time) CodeRecord {
	return CodeRecord{
		CodeHash:   HashCode(code),
		ExpiresAt:  now.Add(ttl),
		LastSentAt: now,
	}
}

// IsCodeValid checks a supplied code against a stored hash and expiry.
// It reports false for an absent record, an elapsed expiry, or a digest
// mismatch. The comparison is constant-time.
func IsCodeValid(codeHash *string, expiresAt *time.Time, supplied string, now time.Time) bool {
	if codeHash == nil || *codeHash == "" || expiresAt == nil {
		return false
	}
	if now.After(*expiresAt) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(HashCode(supplied)), []byte(*codeHash)) == 1
}

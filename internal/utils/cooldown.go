package utils

import (
	"math"
	"time"
)

// CooldownResult is the outcome of a per-channel send cooldown check
type CooldownResult struct {
	Allowed           bool
	RetryAfterSeconds int
}

// CheckCooldown decides whether enough time has passed since the last send.
// A nil lastSentAt always allows. When disallowed, RetryAfterSeconds is the
// remaining wait rounded up to whole seconds.
func CheckCooldown(lastSentAt *time.Time, window time.Duration, now time.Time) CooldownResult {
	if lastSentAt == nil {
		return CooldownResult{Allowed: true}
	}

	elapsed := now.Sub(*lastSentAt)
	if elapsed >= window {
		return CooldownResult{Allowed: true}
	}

	remaining := window - elapsed
	return CooldownResult{
		Allowed:           false,
		RetryAfterSeconds: int(math.Ceil(remaining.Seconds())),
	}
}

// Package cache provides the Redis-backed cache used for analysis results
// and rate-limit counters.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// ResultTTL bounds how long an analysis is reused for identical report text.
const ResultTTL = 24 * time.Hour

// TextHash fingerprints extracted report text for the result cache.
func TextHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func ResultKey(textHash string) string {
	return fmt.Sprintf("analysis:result:%s", textHash)
}

func RateLimitKey(clientKey string) string {
	return fmt.Sprintf("ratelimit:%s", clientKey)
}

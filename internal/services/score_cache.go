// Package services – ScoreCache
//
// Compatibility scores are pure functions of a user's answer set, but
// recomputing them for every candidate on every discovery request is wasted
// work. ScoreCache memoizes computed scores in a size-bounded, expiring LRU.
//
// Invalidation is structural rather than imperative: cache keys embed a
// digest of the exact answer set, so submitting a new answer changes the key
// and a stale entry can never be served again. The TTL and size cap exist
// only to bound memory; Invalidate exists for the account-deletion path where
// the old entries should not linger at all.
package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/emberapp/go-dating-backend/internal/compat"
)

// ScoreCache memoizes compat.ComputeScore results keyed by
// (userID, digest of answers). Safe for concurrent use. A nil *ScoreCache is
// valid and computes every score directly.
type ScoreCache struct {
	lru *expirable.LRU[string, compat.Score]
}

// NewScoreCache constructs a cache holding up to size entries for at most ttl.
// Non-positive size falls back to 1024; non-positive ttl disables expiry.
func NewScoreCache(size int, ttl time.Duration) *ScoreCache {
	if size <= 0 {
		size = 1024
	}
	return &ScoreCache{lru: expirable.NewLRU[string, compat.Score](size, nil, ttl)}
}

// Score returns the compatibility score for the given answer set, serving a
// memoized value when the identical set has been scored before.
func (c *ScoreCache) Score(userID string, answers []compat.Answer) compat.Score {
	if c == nil || c.lru == nil {
		return compat.ComputeScore(answers)
	}
	key := scoreCacheKey(userID, answers)
	if s, ok := c.lru.Get(key); ok {
		return s
	}
	s := compat.ComputeScore(answers)
	c.lru.Add(key, s)
	return s
}

// Invalidate drops every cached entry belonging to userID. Needed only when
// the user's answers are removed outright (account deletion); ordinary
// submissions self-invalidate through the digest in the key.
func (c *ScoreCache) Invalidate(userID string) {
	if c == nil || c.lru == nil {
		return
	}
	prefix := userID + ":"
	for _, k := range c.lru.Keys() {
		if strings.HasPrefix(k, prefix) {
			c.lru.Remove(k)
		}
	}
}

// scoreCacheKey builds "userID:sha256(answers)" over the canonical answer
// tuple ordering supplied by the store.
func scoreCacheKey(userID string, answers []compat.Answer) string {
	h := sha256.New()
	for _, a := range answers {
		fmt.Fprintf(h, "%s\x00%s\x00%d\x00", a.QuestionID, a.Text, a.AnsweredAt.UnixNano())
	}
	return userID + ":" + hex.EncodeToString(h.Sum(nil))
}

package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// CandidateSetKey returns the cache key for the deterministic question
// candidate set of a (level, domain) pair.
func (r *CacheKeyStruct) CandidateSetKey(level, domain string) string {
	return fmt.Sprintf("bank:%s:%s:candidates", level, domain)
}

// CandidateSetPattern returns the SCAN match pattern covering every
// candidate set key. Used for cache invalidation after bank edits.
func (r *CacheKeyStruct) CandidateSetPattern() string {
	return "bank:*:candidates"
}

// SessionEventsChannel returns the Redis PubSub channel name for a
// session's live event stream.
func (r *CacheKeyStruct) SessionEventsChannel(sessionID string) string {
	return fmt.Sprintf("session:%s:events", sessionID)
}

var CacheKey = NewCacheKeyStruct()

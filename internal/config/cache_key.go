package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// PlayAnsweredKey returns the Redis SET holding the quiz ids a session answered
// correctly in its current random-play run.
func (r *CacheKeyStruct) PlayAnsweredKey(sessionID string) string {
	return fmt.Sprintf("play:%s:answered", sessionID)
}

var CacheKey = NewCacheKeyStruct()

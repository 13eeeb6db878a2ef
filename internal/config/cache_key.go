package config

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// SearchKey returns the cache key for one page of a database-backed search.
// The normalized query is hashed so raw user input never lands in key names.
func (r *CacheKeyStruct) SearchKey(query string, page, limit int) string {
	sum := sha1.Sum([]byte(query))
	return fmt.Sprintf("search:%s:%d:%d", hex.EncodeToString(sum[:]), page, limit)
}

// ListKey returns the cache key for one page of the identifier listing.
func (r *CacheKeyStruct) ListKey(filters string, page, limit int) string {
	sum := sha1.Sum([]byte(filters))
	return fmt.Sprintf("students:%s:%d:%d", hex.EncodeToString(sum[:]), page, limit)
}

// Patterns match every key written by SearchKey and ListKey.
func (r *CacheKeyStruct) Patterns() []string {
	return []string{"search:*", "students:*"}
}

var CacheKey = NewCacheKeyStruct()

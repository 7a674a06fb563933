package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// TokenBlacklist holds revoked access tokens until their natural expiry.
// Logout writes here; the JWT middleware consults it on every request.
type TokenBlacklist struct {
	cache *cache.Cache
}

func NewTokenBlacklist() *TokenBlacklist {
	// Default expiration of 24 hours matches the longest token lifetime;
	// expired entries are purged every 10 minutes.
	c := cache.New(24*time.Hour, 10*time.Minute)
	return &TokenBlacklist{
		cache: c,
	}
}

func (b *TokenBlacklist) Revoke(token string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = cache.DefaultExpiration
	}
	b.cache.Set(token, struct{}{}, ttl)
}

func (b *TokenBlacklist) IsRevoked(token string) bool {
	_, found := b.cache.Get(token)
	return found
}

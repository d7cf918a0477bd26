package auth

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// RevocationList remembers token ids revoked at logout. Entries expire with
// the token they belong to.
type RevocationList struct {
	cache *cache.Cache
}

func NewRevocationList(cleanupInterval time.Duration) *RevocationList {
	return &RevocationList{
		cache: cache.New(cache.NoExpiration, cleanupInterval),
	}
}

func (r *RevocationList) Revoke(jti string, expiresAt time.Time) {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}
	r.cache.Set(jti, struct{}{}, ttl)
}

func (r *RevocationList) IsRevoked(jti string) bool {
	_, found := r.cache.Get(jti)
	return found
}

// Len reports how many revocations are currently held.
func (r *RevocationList) Len() int {
	return r.cache.ItemCount()
}

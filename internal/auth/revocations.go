package auth

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MaxRevocations bounds how many logged-out tokens are remembered.
const MaxRevocations = 10000

// Revocations remembers the JTIs of logged-out tokens until they would have
// expired anyway. It is held in memory; a restart forgets it.
type Revocations struct {
	jtis *expirable.LRU[string, time.Time]
}

// NewRevocations creates an empty revocation list.
func NewRevocations() *Revocations {
	return &Revocations{
		jtis: expirable.NewLRU[string, time.Time](MaxRevocations, nil, TokenExpiry),
	}
}

// Revoke adds a token's JTI to the list.
func (r *Revocations) Revoke(jti string, expiresAt time.Time) {
	if jti == "" || time.Now().After(expiresAt) {
		return
	}
	r.jtis.Add(jti, expiresAt)
}

// IsRevoked checks if a token's JTI has been revoked.
func (r *Revocations) IsRevoked(jti string) bool {
	_, ok := r.jtis.Get(jti)
	return ok
}

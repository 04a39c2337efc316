package hashutil

import (
	"crypto/sha256"
	"fmt"
	"sync/atomic"
	"time"
)

var seq atomic.Uint64

// NewID returns a 7-character hex ID for a registration of name at t.
// Successive calls with the same arguments return different IDs.
func NewID(name string, t time.Time) string {
	n := seq.Add(1)
	return FromSeed(fmt.Sprintf("%s\x00%d\x00%d", name, t.UnixNano(), n))
}

// FromSeed returns a deterministic 7-character hex ID for seed.
func FromSeed(seed string) string {
	hash := sha256.Sum256([]byte(seed))
	return fmt.Sprintf("%x", hash[:4])[:7]
}

package id

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewLoanNumber returns a human-readable, collision-resistant loan number,
// e.g. "LOAN-1735555555555-417": millisecond timestamp plus a random suffix.
func NewLoanNumber() string {
	var b [2]byte
	_, _ = rand.Read(b[:])
	suffix := binary.BigEndian.Uint16(b[:]) % 1000
	return fmt.Sprintf("LOAN-%d-%03d", time.Now().UnixMilli(), suffix)
}

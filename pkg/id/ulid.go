// Package id generates lexicographically sortable identifiers for queue
// items. Sorting ids sorts by creation time, which keeps queue listings
// and store scans in delivery order without a secondary index.
package id

import (
	"crypto/rand"
	"encoding/binary"
	"time"
)

// Crockford's Base32 alphabet (excludes I, L, O, U to avoid confusion).
const encoding = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// NewULID generates a ULID: 26 characters, 48-bit millisecond timestamp
// followed by 80 random bits, Crockford Base32 encoded.
func NewULID() string {
	return NewULIDAt(time.Now())
}

// NewULIDAt generates a ULID with the timestamp component taken from t.
func NewULIDAt(t time.Time) string {
	var entropy [10]byte
	if _, err := rand.Read(entropy[:]); err != nil {
		// Degraded but functional fallback when the random source fails.
		binary.BigEndian.PutUint64(entropy[:8], uint64(t.UnixNano()))
	}

	ms := uint64(t.UnixMilli())
	var out [26]byte

	// 48-bit timestamp packs into 10 base32 characters, high bits first.
	for i := 9; i >= 0; i-- {
		out[i] = encoding[ms&0x1F]
		ms >>= 5
	}

	// 80 random bits pack into 16 characters. Walk the entropy as one
	// bit stream, consuming 5 bits per character.
	var acc uint64
	bits := 0
	pos := 10
	for _, b := range entropy {
		acc = acc<<8 | uint64(b)
		bits += 8
		for bits >= 5 {
			bits -= 5
			out[pos] = encoding[(acc>>uint(bits))&0x1F]
			pos++
		}
	}

	return string(out[:])
}

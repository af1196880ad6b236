// Package extract locates 20-byte remote chain addresses embedded in raw
// account buffers whose authoritative schema is not available. It slides a
// 32-byte window across every offset and matches the canonical zero-padding
// pattern used when a 20-byte address is stored inside a 32-byte slot.
//
// A typed, versionable schema decoder is the preferred path once the record
// layout is known; this scan is the fallback for layouts that have none.
package extract

import (
	"bytes"
	"crypto/sha256"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// WindowSize is the width of the sliding window.
	WindowSize = 32

	// zeroPrefixLen is the number of leading zero bytes a window must carry
	// before the 20-byte address tail.
	zeroPrefixLen = WindowSize - common.AddressLength
)

// Candidate is one matched window: its byte offset into the scanned buffer
// and the 20-byte tail decoded as an address.
type Candidate struct {
	Offset  int            `json:"offset"`
	Address common.Address `json:"address"`
}

// matches reports whether a 32-byte window holds a zero-padded, non-zero
// 20-byte address.
func matches(window []byte) bool {
	for _, b := range window[:zeroPrefixLen] {
		if b != 0 {
			return false
		}
	}
	for _, b := range window[zeroPrefixLen:] {
		if b != 0 {
			return true
		}
	}

	return false
}

// First returns the lowest-offset candidate in buf, scanning from offset 0.
// It reports false when no window matches or the buffer is shorter than one
// window.
func First(buf []byte) (Candidate, bool) {
	for off := 0; off+WindowSize <= len(buf); off++ {
		if matches(buf[off : off+WindowSize]) {
			return Candidate{Offset: off, Address: common.BytesToAddress(buf[off+zeroPrefixLen : off+WindowSize])}, true
		}
	}

	return Candidate{}, false
}

// All returns every candidate in buf in ascending offset order. Candidates
// decoding to the same address are collapsed to the first occurrence; the
// value, not the offset, is the deduplication key. The input is never
// mutated and a buffer shorter than one window yields an empty result.
func All(buf []byte) []Candidate {
	var out []Candidate
	seen := make(map[common.Address]struct{})

	for off := 0; off+WindowSize <= len(buf); off++ {
		if !matches(buf[off : off+WindowSize]) {
			continue
		}

		addr := common.BytesToAddress(buf[off+zeroPrefixLen : off+WindowSize])
		if _, ok := seen[addr]; ok {
			continue
		}
		seen[addr] = struct{}{}

		out = append(out, Candidate{Offset: off, Address: addr})
	}

	return out
}

// Marker computes the 8-byte account discriminator for a named record type,
// sha256("account:<name>")[:8].
func Marker(name string) [8]byte {
	sum := sha256.Sum256([]byte("account:" + name))

	var out [8]byte
	copy(out[:], sum[:8])

	return out
}

// HasMarker reports whether buf starts with the discriminator for name. It
// is a best-effort check only; callers must not reject buffers on a
// mismatch since the record's true type name is not authoritative.
func HasMarker(buf []byte, name string) bool {
	if len(buf) < 8 {
		return false
	}
	marker := Marker(name)

	return bytes.Equal(buf[:8], marker[:])
}

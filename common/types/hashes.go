package types

import (
	"encoding/hex"
	"fmt"
)

// Hash32Length is the length of Hash32 in bytes.
const Hash32Length = 32

// Hash32 is a 32-byte blake3 digest.
type Hash32 [Hash32Length]byte

// Bytes returns the hash as a byte slice.
func (h Hash32) Bytes() []byte { return h[:] }

// Hex returns the hex encoding of the hash.
func (h Hash32) Hex() string { return hex.EncodeToString(h[:]) }

// String implements fmt.Stringer.
func (h Hash32) String() string { return h.Hex() }

// ShortString returns the first 5 hex characters of the hash, for logging purposes.
func (h Hash32) ShortString() string { return h.Hex()[:5] }

// MarshalText implements encoding.TextMarshaler.
func (h Hash32) MarshalText() ([]byte, error) {
	return []byte(h.Hex()), nil
}

// UnmarshalText parses a hash in hex syntax.
func (h *Hash32) UnmarshalText(input []byte) error {
	if hex.DecodedLen(len(input)) != Hash32Length {
		return fmt.Errorf("hash32: invalid length %d", len(input))
	}
	if _, err := hex.Decode(h[:], input); err != nil {
		return fmt.Errorf("hash32: %w", err)
	}
	return nil
}

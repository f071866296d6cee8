// Package hash implements the 20-byte SHA-1 object identity used across the
// object store, the index and the commit graph (spec §3, "Hash").
package hash

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"

	"github.com/nopeNoshishi/nss/internal/nsserr"
)

// Size is the length in bytes of a Hash.
const Size = 20

// MinPrefixLen is the shortest hex prefix the store will accept for
// abbreviated lookups (spec §4.B).
const MinPrefixLen = 6

// Hash is a 20-byte SHA-1 digest, the identity of every stored object.
type Hash [Size]byte

// Zero is the all-zero hash, the zero value of Hash.
var Zero Hash

// Sum computes the hash of data.
func Sum(data []byte) Hash {
	return Hash(sha1.Sum(data))
}

// String renders the hash as 40 lowercase hex characters.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether h is the all-zero hash.
func (h Hash) IsZero() bool {
	return h == Zero
}

// Parse decodes a full 40-character hex hash.
func Parse(s string) (Hash, error) {
	var h Hash
	if len(s) != Size*2 {
		return h, fmt.Errorf("hash: %q is not %d hex characters", s, Size*2)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return h, nsserr.Wrap("hash: decoding hex", err)
	}
	copy(h[:], b)
	return h, nil
}

// ValidPrefix reports whether prefix is syntactically usable for abbreviated
// lookups: at least MinPrefixLen hex characters and no more than a full hash.
func ValidPrefix(prefix string) error {
	if len(prefix) < MinPrefixLen {
		return nsserr.ErrLessObjectHash
	}
	if len(prefix) > Size*2 {
		return fmt.Errorf("hash: prefix %q longer than a full hash", prefix)
	}
	if _, err := hex.DecodeString(padOdd(prefix)); err != nil {
		return fmt.Errorf("hash: prefix %q is not hex: %w", prefix, err)
	}
	return nil
}

// padOdd right-pads an odd-length hex string with a throwaway nibble purely
// so hex.DecodeString can validate the run of hex digits.
func padOdd(s string) string {
	if len(s)%2 == 1 {
		return s + "0"
	}
	return s
}

// Package hash wraps xxHash64 for component name keys and block digests.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of a name.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}

// Digest computes the xxHash64 of a payload.
func Digest(data []byte) uint64 {
	return xxhash.Sum64(data)
}

package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 fingerprint of a content hash (uuid) string.
// Fingerprints key the uuid→rid memo table; the full uuid is re-checked on
// every hit, so a collision costs a memo miss, never a wrong row.
func ID(uuid string) uint64 {
	return xxhash.Sum64String(uuid)
}

// Package hash computes the 64-bit identifiers used to index column names.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of a column name.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}

package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Short returns the first 16 hex characters, enough for cache keys
func (h Hash) Short() string {
	if len(h) <= 16 {
		return string(h)
	}
	return string(h[:16])
}

// ContentHash fingerprints a table of string cells. Each row's keys are sorted
// so map iteration order never changes the result.
func ContentHash(columns []string, rows []map[string]string) Hash {
	var data strings.Builder
	for _, c := range columns {
		data.WriteString(c)
		data.WriteByte(0x1f)
	}
	data.WriteByte('\n')

	for _, row := range rows {
		keys := make([]string, 0, len(row))
		for k := range row {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			data.WriteString(fmt.Sprintf("%s=%s", k, row[k]))
			data.WriteByte(0x1f)
		}
		data.WriteByte('\n')
	}

	return NewHash([]byte(data.String()))
}

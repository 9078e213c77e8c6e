package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/matzehuels/paragon/pkg/board"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// HashBoards hashes a board set by name and content. The result does not
// depend on map iteration order.
func HashBoards(boards map[string]board.Board) string {
	names := make([]string, 0, len(boards))
	for name := range boards {
		names = append(names, name)
	}
	slices.Sort(names)

	type entry struct {
		Name string   `json:"name"`
		Rows []string `json:"rows"`
	}
	entries := make([]entry, len(names))
	for i, name := range names {
		entries[i] = entry{Name: name, Rows: boards[name].Rows()}
	}
	data, _ := json.Marshal(entries)
	return Hash(data)
}

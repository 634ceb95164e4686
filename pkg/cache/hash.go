package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds a content-addressed key of the form prefix:hash(parts...).
// Parse keys hash the raw source; layout keys additionally hash the options
// that influence placement, so any input change is a new key.
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	// Full SHA-256 (64 hex chars) so distinct models never collide.
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash returns the SHA-256 hex digest of data. The pipeline uses it as the
// model hash attached to parse results and stored diagrams.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

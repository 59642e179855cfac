package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
// Parts JSON cannot encode (NaN, infinities) are hashed from their Go syntax
// so distinct inputs still get distinct keys.
func hashKey(prefix string, parts ...any) string {
	data, err := json.Marshal(parts)
	if err != nil {
		data = fmt.Appendf(nil, "%#v", parts)
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// LayoutKeyOpts holds every input that changes a placement result.
type LayoutKeyOpts struct {
	Length    float64 `json:"length"`
	PostWidth float64 `json:"post_width"`
	TargetGap float64 `json:"target_gap"`
}

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey returns the key for a computed layout.
	LayoutKey(opts LayoutKeyOpts) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:" followed by a hash of opts.
func (DefaultKeyer) LayoutKey(opts LayoutKeyOpts) string {
	return hashKey("layout", opts.Length, opts.PostWidth, opts.TargetGap)
}

package judge

import "sync"

// KeyRotator hands out API keys round-robin so sustained benchmark runs
// spread load across every configured key. Safe for concurrent use.
type KeyRotator struct {
	mu   sync.Mutex
	keys []string
	next int
}

// NewKeyRotator builds a rotator over the given keys. Blank entries are
// dropped; an empty rotator reports no keys rather than panicking.
func NewKeyRotator(keys []string) *KeyRotator {
	cleaned := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			cleaned = append(cleaned, k)
		}
	}
	return &KeyRotator{keys: cleaned}
}

// Next returns the next key in rotation, or ErrNoAPIKey when none exist.
func (r *KeyRotator) Next() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.keys) == 0 {
		return "", ErrNoAPIKey
	}
	key := r.keys[r.next]
	r.next = (r.next + 1) % len(r.keys)
	return key, nil
}

// Len reports how many usable keys the rotator holds.
func (r *KeyRotator) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.keys)
}

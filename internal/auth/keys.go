package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const DefaultBcryptCost = 12

// KeySet holds the API keys accepted by protected endpoints. Entries that look
// like bcrypt hashes are compared with bcrypt; everything else is compared in
// constant time against the raw key.
type KeySet struct {
	plain  [][]byte
	hashed [][]byte
}

func NewKeySet(keys []string) *KeySet {
	set := &KeySet{}
	seen := make(map[string]struct{}, len(keys))
	for _, raw := range keys {
		key := strings.TrimSpace(raw)
		if key == "" {
			continue
		}
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}

		if IsBcryptHash(key) {
			set.hashed = append(set.hashed, []byte(key))
			continue
		}
		set.plain = append(set.plain, []byte(key))
	}
	return set
}

func (s *KeySet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.plain) + len(s.hashed)
}

// Verify reports whether credential matches one of the accepted keys.
func (s *KeySet) Verify(credential string) bool {
	if s == nil {
		return false
	}
	candidate := []byte(strings.TrimSpace(credential))
	if len(candidate) == 0 {
		return false
	}

	matched := false
	for _, key := range s.plain {
		if subtle.ConstantTimeCompare(candidate, key) == 1 {
			matched = true
		}
	}
	if matched {
		return true
	}

	for _, hash := range s.hashed {
		if bcrypt.CompareHashAndPassword(hash, candidate) == nil {
			return true
		}
	}
	return false
}

// HashKey returns a bcrypt hash of key suitable for the API_KEYS setting.
func HashKey(key string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", fmt.Errorf("key is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(trimmed), DefaultBcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash key: %w", err)
	}
	return string(hash), nil
}

func IsBcryptHash(value string) bool {
	if _, err := bcrypt.Cost([]byte(value)); err != nil {
		return false
	}
	return true
}

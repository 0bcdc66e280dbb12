// Package sidekiq generates Sidekiq-style job identifiers.
package sidekiq

import (
	"crypto/rand"
	"fmt"
)

const (
	jidLength = 24
	alphabet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// Generator produces 24-character random job IDs.
type Generator struct{}

// New creates a Generator.
func New() *Generator {
	return &Generator{}
}

// NewID returns a fresh job ID: 24 random alphanumeric ASCII characters.
func (Generator) NewID() (string, error) {
	buf := make([]byte, jidLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf), nil
}

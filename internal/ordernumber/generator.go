// Package ordernumber mints public-facing order identifiers without a
// round-trip to storage. The database unique constraint on the order number
// is the authoritative collision backstop.
package ordernumber

import (
	"crypto/rand"
	"fmt"
)

// alphabet excludes visually confusable characters (0/O, 1/I). 32 symbols
// over 8 positions gives roughly 10^12 combinations, so birthday collisions
// are negligible at any realistic order volume.
const alphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

const suffixLength = 8

type Generator struct {
	prefix string
}

func NewGenerator(prefix string) *Generator {
	return &Generator{prefix: prefix}
}

// Generate returns a fresh order number, e.g. "ORD-H7K2MN9P".
func (g *Generator) Generate() (string, error) {
	buf := make([]byte, suffixLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}

	suffix := make([]byte, suffixLength)
	for i, b := range buf {
		suffix[i] = alphabet[int(b)%len(alphabet)]
	}

	return g.prefix + string(suffix), nil
}

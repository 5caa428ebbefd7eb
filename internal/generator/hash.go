package generator

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"

	"github.com/vadimbarashkov/tinyurl-service/internal/entity"
)

// Hash samples short URI symbols from the hex MD5 digest of the long URL.
//
// Sampling is still random, so the same long URL does not map to the same
// short URI. Prefer Random; Hash only narrows the alphabet to hex digits.
type Hash struct {
	length int
}

// NewHash returns a Hash generator producing short URIs of the given length.
func NewHash(length int) (*Hash, error) {
	const op = "generator.NewHash"

	if err := validateLength(length); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Hash{length: length}, nil
}

// Generate returns a new short URI sampled from the digest of originalURL.
func (g *Hash) Generate(originalURL string) (string, error) {
	const op = "generator.Hash.Generate"

	if originalURL == "" {
		return "", fmt.Errorf("%s: empty original url: %w", op, entity.ErrInvalidArgument)
	}

	sum := md5.Sum([]byte(originalURL))

	shortURI, err := sample(hex.EncodeToString(sum[:]), g.length)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return shortURI, nil
}

// Package generator provides short URI generators.
//
// Generators do not avoid collisions and keep no record of previous outputs:
// the caller is expected to retry when a candidate is already taken. Both
// implementations draw from crypto/rand through go-nanoid and are safe for
// concurrent use.
package generator

import (
	"fmt"

	"github.com/vadimbarashkov/tinyurl-service/internal/entity"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Alphabet is the set of symbols generated short URIs are built from.
const Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// MaxLength is the longest short URI a generator can be configured for.
const MaxLength = 255

// Random samples every symbol of a short URI uniformly from Alphabet.
// The long URL only has to be non-empty; it does not influence the output.
type Random struct {
	length int
}

// NewRandom returns a Random generator producing short URIs of the given length.
func NewRandom(length int) (*Random, error) {
	const op = "generator.NewRandom"

	if err := validateLength(length); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Random{length: length}, nil
}

// Generate returns a new random short URI for originalURL.
func (g *Random) Generate(originalURL string) (string, error) {
	const op = "generator.Random.Generate"

	if originalURL == "" {
		return "", fmt.Errorf("%s: empty original url: %w", op, entity.ErrInvalidArgument)
	}

	shortURI, err := sample(Alphabet, g.length)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return shortURI, nil
}

func validateLength(length int) error {
	if length < 1 || length > MaxLength {
		return fmt.Errorf("length must be in [1, %d], got %d: %w", MaxLength, length, entity.ErrInvalidArgument)
	}
	return nil
}

// sample draws length symbols from alphabet with replacement.
func sample(alphabet string, length int) (string, error) {
	s, err := gonanoid.Generate(alphabet, length)
	if err != nil {
		return "", fmt.Errorf("failed to sample short uri: %w", err)
	}
	return s, nil
}

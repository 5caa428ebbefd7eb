package generator

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadimbarashkov/tinyurl-service/internal/entity"
)

const originalURL = "https://www.example.com"

type shortURIGenerator interface {
	Generate(originalURL string) (string, error)
}

func newGenerators(t *testing.T, length int) map[string]shortURIGenerator {
	t.Helper()

	random, err := NewRandom(length)
	require.NoError(t, err)

	hash, err := NewHash(length)
	require.NoError(t, err)

	return map[string]shortURIGenerator{
		"random": random,
		"hash":   hash,
	}
}

func TestNew_InvalidLength(t *testing.T) {
	for _, length := range []int{-1, 0, MaxLength + 1} {
		random, err := NewRandom(length)
		assert.ErrorIs(t, err, entity.ErrInvalidArgument)
		assert.Nil(t, random)

		hash, err := NewHash(length)
		assert.ErrorIs(t, err, entity.ErrInvalidArgument)
		assert.Nil(t, hash)
	}
}

func TestGenerate_Length(t *testing.T) {
	for _, length := range []int{1, 6, 32, MaxLength} {
		for name, gen := range newGenerators(t, length) {
			shortURI, err := gen.Generate(originalURL)

			assert.NoError(t, err, name)
			assert.Len(t, shortURI, length, name)
		}
	}
}

func TestGenerate_EmptyOriginalURL(t *testing.T) {
	for name, gen := range newGenerators(t, 6) {
		shortURI, err := gen.Generate("")

		assert.ErrorIs(t, err, entity.ErrInvalidArgument, name)
		assert.Empty(t, shortURI, name)
	}
}

func TestGenerate_NewValueAlways(t *testing.T) {
	for name, gen := range newGenerators(t, 6) {
		seen := make(map[string]struct{})

		for i := 0; i < 10; i++ {
			shortURI, err := gen.Generate(originalURL)
			require.NoError(t, err, name)

			assert.NotContains(t, seen, shortURI, name)
			seen[shortURI] = struct{}{}
		}
	}
}

func TestGenerate_Alphabet(t *testing.T) {
	random, err := NewRandom(MaxLength)
	require.NoError(t, err)

	shortURI, err := random.Generate(originalURL)
	require.NoError(t, err)

	for _, r := range shortURI {
		assert.True(t, strings.ContainsRune(Alphabet, r), "unexpected symbol %q", r)
	}

	hash, err := NewHash(MaxLength)
	require.NoError(t, err)

	shortURI, err = hash.Generate(originalURL)
	require.NoError(t, err)

	for _, r := range shortURI {
		assert.True(t, strings.ContainsRune("0123456789abcdef", r), "unexpected symbol %q", r)
	}
}

func TestGenerate_Concurrent(t *testing.T) {
	const goroutines = 8
	const perGoroutine = 100

	for name, gen := range newGenerators(t, 6) {
		var wg sync.WaitGroup
		wg.Add(goroutines)

		for i := 0; i < goroutines; i++ {
			go func() {
				defer wg.Done()
				for j := 0; j < perGoroutine; j++ {
					shortURI, err := gen.Generate(originalURL)
					assert.NoError(t, err, name)
					assert.Len(t, shortURI, 6, name)
				}
			}()
		}

		wg.Wait()
	}
}

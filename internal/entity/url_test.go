package entity

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURL_IncrementAccessCount(t *testing.T) {
	url := NewURL("https://www.example.com")
	assert.Equal(t, "https://www.example.com", url.OriginalURL())

	for i := uint64(0); i < 5; i++ {
		assert.Equal(t, i, url.AccessCount())
		assert.Equal(t, i+1, url.IncrementAccessCount())
	}

	assert.Equal(t, uint64(5), url.AccessCount())
	assert.Equal(t, "https://www.example.com", url.OriginalURL())
}

func TestURL_IncrementAccessCount_Concurrent(t *testing.T) {
	const goroutines = 16
	const perGoroutine = 1000

	url := NewURL("https://www.example.com")

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				url.IncrementAccessCount()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(goroutines*perGoroutine), url.AccessCount())
}

// Package memory provides the in-memory URL repository.
//
// Records are spread over a fixed set of shards, each guarded by its own
// RWMutex, so operations on keys in different shards never contend. Every
// operation on a single key runs entirely under that key's shard lock.
package memory

import (
	"hash/crc32"
	"sync"
	"sync/atomic"

	"github.com/vadimbarashkov/tinyurl-service/internal/entity"
)

const defaultShardCount = 32

// Option configures a URLRepository.
type Option func(*URLRepository)

// WithShardCount sets the number of shards. Values below 1 are ignored.
func WithShardCount(n int) Option {
	return func(r *URLRepository) {
		if n > 0 {
			r.shardCount = n
		}
	}
}

type shard struct {
	mu   sync.RWMutex
	urls map[string]*entity.URL
}

// URLRepository is a concurrent map from short URI to URL record.
type URLRepository struct {
	shardCount int
	shards     []*shard
	size       atomic.Int64
}

// NewURLRepository returns an empty repository with defaultShardCount shards unless overridden.
func NewURLRepository(opts ...Option) *URLRepository {
	r := &URLRepository{shardCount: defaultShardCount}

	for _, opt := range opts {
		opt(r)
	}

	r.shards = make([]*shard, r.shardCount)
	for i := range r.shards {
		r.shards[i] = &shard{urls: make(map[string]*entity.URL)}
	}

	return r
}

func (r *URLRepository) shardFor(shortURI string) *shard {
	return r.shards[crc32.ChecksumIEEE([]byte(shortURI))%uint32(len(r.shards))]
}

// InsertIfAbsent stores url under shortURI unless the key is taken.
// It reports whether the record was inserted; an existing record is never overwritten.
func (r *URLRepository) InsertIfAbsent(shortURI string, url *entity.URL) bool {
	s := r.shardFor(shortURI)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.urls[shortURI]; exists {
		return false
	}

	s.urls[shortURI] = url
	r.size.Add(1)

	return true
}

// Get returns the record bound to shortURI.
func (r *URLRepository) Get(shortURI string) (*entity.URL, bool) {
	s := r.shardFor(shortURI)

	s.mu.RLock()
	defer s.mu.RUnlock()

	url, exists := s.urls[shortURI]
	return url, exists
}

// Remove deletes the record bound to shortURI and reports whether one existed.
func (r *URLRepository) Remove(shortURI string) bool {
	s := r.shardFor(shortURI)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.urls[shortURI]; !exists {
		return false
	}

	delete(s.urls, shortURI)
	r.size.Add(-1)

	return true
}

// IncrementClicks adds one click to the record currently bound to shortURI
// and returns that record. It is a no-op returning false when the key is absent.
//
// The read lock excludes Remove and InsertIfAbsent on the same shard, so the
// click always lands on the record that was bound at lookup time.
func (r *URLRepository) IncrementClicks(shortURI string) (*entity.URL, bool) {
	s := r.shardFor(shortURI)

	s.mu.RLock()
	defer s.mu.RUnlock()

	url, exists := s.urls[shortURI]
	if !exists {
		return nil, false
	}

	url.IncrementAccessCount()

	return url, true
}

// Size returns the number of live records.
//
// The counter is updated under the shard lock of each insert and remove, so
// the result is the exact count at some instant during the call, though not
// necessarily the latest one when writers run concurrently.
func (r *URLRepository) Size() int {
	return int(r.size.Load())
}

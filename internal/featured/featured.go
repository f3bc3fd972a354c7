package featured

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/VeranoAtelier/verano-web/internal/storage"
)

// Picker hands out random featured photos for the landing page. The photo
// pool is cached from storage at startup and refreshed by the reindexer.
type Picker struct {
	client  *storage.Client
	albums  []string
	randGen *rand.Rand

	mu   sync.RWMutex
	pool []*storage.Photo
}

func NewPicker(client *storage.Client, albums []string) (*Picker, error) {
	picker := &Picker{
		client:  client,
		albums:  albums,
		randGen: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if err := picker.Refresh(); err != nil {
		return nil, fmt.Errorf("fail to init photo pool for a new featured picker: %w", err)
	}

	return picker, nil
}

// Give returns up to n distinct random photos from the featured pool.
func (p *Picker) Give(n int) []*storage.Photo {
	p.mu.RLock()
	pool := make([]*storage.Photo, len(p.pool))
	copy(pool, p.pool)
	p.mu.RUnlock()

	p.randGen.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if n > len(pool) {
		n = len(pool)
	}
	return pool[:n]
}

// Refresh re-scans every album and swaps in the new pool.
func (p *Picker) Refresh() error {
	pool := make([]*storage.Photo, 0)
	for _, album := range p.albums {
		photos, err := p.client.ListAlbum(album)
		if err != nil {
			return fmt.Errorf("fail to list '%s' album for featured pool: %w", album, err)
		}
		pool = append(pool, photos...)
	}

	p.mu.Lock()
	p.pool = pool
	p.mu.Unlock()
	return nil
}

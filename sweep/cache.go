package sweep

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/katalvlaran/pairspec/basis"
	"github.com/katalvlaran/pairspec/eigen"
	"github.com/katalvlaran/pairspec/selection"
)

var (
	// ErrNilIndex indicates a nil basis index.
	ErrNilIndex = errors.New("sweep: basis index is nil")

	// ErrNilCompute indicates a nil compute callback.
	ErrNilCompute = errors.New("sweep: compute func is nil")

	// ErrBadWorkers indicates a non-positive worker count.
	ErrBadWorkers = errors.New("sweep: invalid worker count")

	// ErrStore wraps a persistence backend failure.
	ErrStore = errors.New("sweep: store failure")
)

// ComputeFunc diagonalizes one parameter point.
type ComputeFunc func(at selection.Params) (*eigen.Spectrum, error)

// Cache memoizes spectra keyed by parameter fingerprint, scoped to one
// basis identity token. When GetOrCompute sees an index whose token
// differs from the cached one, every entry is dropped in a single step
// before the lookup proceeds. Safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	token   uuid.UUID
	entries map[[32]byte]*eigen.Spectrum
	store   Store
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithStore attaches a persistence backend: hits are served from it
// when the in-memory map misses, and fresh results are written through.
func WithStore(s Store) CacheOption {
	return func(c *Cache) { c.store = s }
}

// NewCache returns an empty cache.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{entries: make(map[[32]byte]*eigen.Spectrum)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Invalidate drops every entry cached under token in one step. Entries
// under a different token are untouched; the cache only ever holds one
// token's entries at a time.
func (c *Cache) Invalidate(token uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == token {
		c.entries = make(map[[32]byte]*eigen.Spectrum)
	}
}

// Len reports the number of memoized points.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// GetOrCompute returns the spectrum for (ix, at), memoized while ix
// keeps its identity token. The lock is not held during fn, so two
// concurrent first misses on the same point may both compute; later
// calls hit the cache. Errors from fn pass through unwrapped and
// nothing is cached for that point.
func (c *Cache) GetOrCompute(ix *basis.Index, at selection.Params, fn ComputeFunc) (*eigen.Spectrum, error) {
	if ix == nil {
		return nil, ErrNilIndex
	}
	if fn == nil {
		return nil, ErrNilCompute
	}
	token := ix.Token()
	fp := Fingerprint(at)

	c.mu.Lock()
	c.syncToken(token)
	if sp, ok := c.entries[fp]; ok {
		c.mu.Unlock()
		return sp, nil
	}
	c.mu.Unlock()

	if c.store != nil {
		if sp, ok, err := c.load(token, fp); err != nil {
			return nil, err
		} else if ok {
			c.insert(token, fp, sp)
			return sp, nil
		}
	}

	sp, err := fn(at)
	if err != nil {
		return nil, err
	}
	c.insert(token, fp, sp)
	if c.store != nil {
		blob, merr := sp.MarshalBinary()
		if merr != nil {
			return nil, fmt.Errorf("sweep: encode spectrum: %w: %v", ErrStore, merr)
		}
		if perr := c.store.Put(storeKey(token, fp), blob); perr != nil {
			return nil, fmt.Errorf("sweep: write-through: %w: %v", ErrStore, perr)
		}
	}
	return sp, nil
}

// syncToken drops every entry if the basis identity moved. Callers
// hold c.mu.
func (c *Cache) syncToken(token uuid.UUID) {
	if c.token == token {
		return
	}
	c.token = token
	c.entries = make(map[[32]byte]*eigen.Spectrum)
}

// insert memoizes sp unless the cache has moved to a newer basis
// token since the compute started; a stale result is discarded rather
// than allowed to roll the cache back over fresher entries.
func (c *Cache) insert(token uuid.UUID, fp [32]byte, sp *eigen.Spectrum) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != token {
		return
	}
	c.entries[fp] = sp
}

// load reads one point through the persistent store.
func (c *Cache) load(token uuid.UUID, fp [32]byte) (*eigen.Spectrum, bool, error) {
	blob, ok, err := c.store.Get(storeKey(token, fp))
	if err != nil {
		return nil, false, fmt.Errorf("sweep: read-through: %w: %v", ErrStore, err)
	}
	if !ok {
		return nil, false, nil
	}
	var sp eigen.Spectrum
	if err := sp.UnmarshalBinary(blob); err != nil {
		return nil, false, fmt.Errorf("sweep: decode spectrum: %w: %v", ErrStore, err)
	}
	return &sp, true, nil
}

// storeKey scopes a fingerprint to a basis token so a persisted sweep
// never serves results for a differently restricted basis.
func storeKey(token uuid.UUID, fp [32]byte) []byte {
	key := make([]byte, 0, len(token)+len(fp))
	key = append(key, token[:]...)
	key = append(key, fp[:]...)
	return key
}

package mapping

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"piano-ledmap/internal/config"
)

// Cache memoizes results by calibration generation so hot readers such
// as a note resolver skip recomputation between mutations. Use one cache
// per calibration manager; generations from different managers collide.
type Cache struct {
	results *lru.Cache[uint64, *Result]
}

func NewCache(size int) (*Cache, error) {
	results, err := lru.New[uint64, *Result](size)
	if err != nil {
		return nil, err
	}
	return &Cache{results: results}, nil
}

// Get returns the mapping for the snapshot, computing and storing it on
// a miss.
func (c *Cache) Get(cal config.Calibration) (*Result, error) {
	if res, ok := c.results.Get(cal.Generation); ok {
		return res, nil
	}
	res, err := Compute(cal)
	if err != nil {
		return nil, err
	}
	c.results.Add(cal.Generation, res)
	return res, nil
}

// Purge drops every cached result.
func (c *Cache) Purge() {
	c.results.Purge()
}

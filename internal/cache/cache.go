// Package cache is a small read-through store for shared reference data
// (products, customers, suppliers). Entries never expire on their own;
// the owning service invalidates its key after every mutation, so reads
// between mutations hit memory instead of the database.
package cache

import (
	gocache "github.com/patrickmn/go-cache"
)

// Well-known keys, one per reference collection. Accounts are not cached:
// their balances move on every cash document.
const (
	KeyProducts  = "ref:products"
	KeyCustomers = "ref:customers"
	KeySuppliers = "ref:suppliers"
)

type Store struct {
	c *gocache.Cache
}

func NewStore() *Store {
	// No TTL: invalidation is mutation-driven, not time-driven
	return &Store{c: gocache.New(gocache.NoExpiration, 0)}
}

// GetOrLoad returns the cached value for key, calling load on a miss and
// caching its result. Load errors are returned without caching anything.
func (s *Store) GetOrLoad(key string, load func() (interface{}, error)) (interface{}, error) {
	if v, ok := s.c.Get(key); ok {
		return v, nil
	}
	v, err := load()
	if err != nil {
		return nil, err
	}
	s.c.Set(key, v, gocache.NoExpiration)
	return v, nil
}

// Invalidate drops a key after the underlying collection mutated
func (s *Store) Invalidate(keys ...string) {
	for _, key := range keys {
		s.c.Delete(key)
	}
}

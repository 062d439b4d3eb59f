package cache

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrLoad_CachesResult(t *testing.T) {
	store := NewStore()
	calls := 0
	load := func() (interface{}, error) {
		calls++
		return []string{"a", "b"}, nil
	}

	v1, err := store.GetOrLoad(KeyProducts, load)
	require.NoError(t, err)
	v2, err := store.GetOrLoad(KeyProducts, load)
	require.NoError(t, err)

	assert.Equal(t, v1, v2)
	assert.Equal(t, 1, calls, "second read should hit the cache")
}

func TestGetOrLoad_ErrorNotCached(t *testing.T) {
	store := NewStore()
	calls := 0
	load := func() (interface{}, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("db down")
		}
		return "ok", nil
	}

	_, err := store.GetOrLoad(KeyCustomers, load)
	require.Error(t, err)

	v, err := store.GetOrLoad(KeyCustomers, load)
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 2, calls)
}

func TestInvalidate(t *testing.T) {
	store := NewStore()
	calls := 0
	load := func() (interface{}, error) {
		calls++
		return calls, nil
	}

	v, _ := store.GetOrLoad(KeySuppliers, load)
	assert.Equal(t, 1, v)

	store.Invalidate(KeySuppliers)

	v, _ = store.GetOrLoad(KeySuppliers, load)
	assert.Equal(t, 2, v, "invalidated key should reload")
}

package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return New(rdb), mr
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestNilStoreIsAlwaysMiss(t *testing.T) {
	var s *Store
	ctx := context.Background()

	assert.False(t, s.Enabled())
	assert.Nil(t, New(nil))

	require.NoError(t, s.SetJSON(ctx, "k", payload{Name: "x"}, CatalogTTL))
	var out payload
	hit, err := s.GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	locked, _, err := s.LoginLocked(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, locked)
	require.NoError(t, s.InvalidateCatalog(ctx))
}

func TestJSONRoundTrip(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetJSON(ctx, "k", payload{Name: "gpu", Count: 3}, CatalogTTL))
	assert.Equal(t, CatalogTTL, mr.TTL("k"))

	var out payload
	hit, err := s.GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, payload{Name: "gpu", Count: 3}, out)

	hit, err = s.GetJSON(ctx, "missing", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestInvalidateCatalog(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetJSON(ctx, CategoriesKey, []string{"a"}, CatalogTTL))
	require.NoError(t, s.SetJSON(ctx, FiltersKey(1), []string{"b"}, CatalogTTL))
	require.NoError(t, s.SetJSON(ctx, FiltersKey(22), []string{"c"}, CatalogTTL))
	require.NoError(t, mr.Set("unrelated", "keep"))

	require.NoError(t, s.InvalidateCatalog(ctx))

	assert.False(t, mr.Exists(CategoriesKey))
	assert.False(t, mr.Exists(FiltersKey(1)))
	assert.False(t, mr.Exists(FiltersKey(22)))
	assert.True(t, mr.Exists("unrelated"))
}

func TestLoginLockoutAfterFiveFailures(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < MaxLoginFailures-1; i++ {
		_, err := s.RecordLoginFailure(ctx, "Alice")
		require.NoError(t, err)
	}
	locked, _, err := s.LoginLocked(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, locked)

	_, err = s.RecordLoginFailure(ctx, "alice")
	require.NoError(t, err)
	locked, ttl, err := s.LoginLocked(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, locked)
	assert.Equal(t, LoginLockout, ttl)

	mr.FastForward(LoginLockout)
	locked, _, err = s.LoginLocked(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestClearLoginFailures(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < MaxLoginFailures; i++ {
		_, err := s.RecordLoginFailure(ctx, "bob")
		require.NoError(t, err)
	}
	require.NoError(t, s.ClearLoginFailures(ctx, "bob"))

	locked, _, err := s.LoginLocked(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, locked)
}

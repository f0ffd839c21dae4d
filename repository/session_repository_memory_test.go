package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emi-calculator/domain"
)

var testParams = domain.LoanParameters{
	Principal:         1_000_000,
	AnnualRatePercent: 6.5,
	TermYears:         5,
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestRepo(t *testing.T, ttl time.Duration) (*SessionRepositoryMemory, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	repo := newSessionRepositoryMemory(ttl, clock.now)
	t.Cleanup(repo.Stop)
	return repo, clock
}

func TestSessionRepositoryMemory_CreateGet(t *testing.T) {
	repo, _ := newTestRepo(t, time.Hour)

	id, err := repo.Create(testParams)
	require.NoError(t, err)

	got, err := repo.Get(id)
	require.NoError(t, err)
	assert.Equal(t, testParams, got)

	other, err := repo.Create(testParams)
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}

func TestSessionRepositoryMemory_Update(t *testing.T) {
	repo, _ := newTestRepo(t, time.Hour)
	id, err := repo.Create(testParams)
	require.NoError(t, err)

	updated, err := repo.Update(id, func(p domain.LoanParameters) domain.LoanParameters {
		p.TermYears = 20
		return p
	})
	require.NoError(t, err)
	assert.Equal(t, 20, updated.TermYears)

	got, err := repo.Get(id)
	require.NoError(t, err)
	assert.Equal(t, 20, got.TermYears)
}

func TestSessionRepositoryMemory_NotFound(t *testing.T) {
	repo, _ := newTestRepo(t, time.Hour)

	_, err := repo.Get("nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = repo.Update("nope", func(p domain.LoanParameters) domain.LoanParameters { return p })
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.ErrorIs(t, repo.Delete("nope"), ErrSessionNotFound)
}

func TestSessionRepositoryMemory_Expiry(t *testing.T) {
	repo, clock := newTestRepo(t, 30*time.Minute)
	idle, err := repo.Create(testParams)
	require.NoError(t, err)
	active, err := repo.Create(testParams)
	require.NoError(t, err)

	clock.advance(20 * time.Minute)
	_, err = repo.Get(active)
	require.NoError(t, err)

	clock.advance(20 * time.Minute)
	_, err = repo.Get(idle)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = repo.Get(active)
	assert.NoError(t, err)
}

func TestSessionRepositoryMemory_Sweep(t *testing.T) {
	repo, clock := newTestRepo(t, time.Minute)
	_, err := repo.Create(testParams)
	require.NoError(t, err)
	require.Equal(t, 1, repo.Len())

	clock.advance(2 * time.Minute)
	repo.sweep()

	assert.Equal(t, 0, repo.Len())
}

func TestMockCache(t *testing.T) {
	cache := NewMockCache()
	ctx := context.Background()

	_, ok := cache.Get(ctx, "k")
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "k", "v"))
	v, ok := cache.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

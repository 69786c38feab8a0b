package folio

import (
	"context"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	corefolio "logiprofit/internal/core/folio"
)

type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

// mockQuerier simulates the sys_folios UPSERT: each call bumps the per-key
// counter atomically, like the database does.
type mockQuerier struct {
	mu       sync.Mutex
	counters map[string]int64
}

func newMockQuerier() *mockQuerier {
	return &mockQuerier{counters: make(map[string]int64)}
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	key, _ := args[0].(string)

	if len(args) == 2 {
		// SetNextValue path: current_val is forced to args[1]
		val, _ := args[1].(int64)
		m.counters[key] = val
		return &mockRow{val: val}
	}

	m.counters[key]++
	return &mockRow{val: m.counters[key]}
}

func TestNextFolio_Sequential(t *testing.T) {
	svc := New(newMockQuerier())
	ctx := context.Background()
	cfg := corefolio.DefaultConfig("COT")

	first, err := svc.NextFolio(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, "COT-00001", first)

	second, err := svc.NextFolio(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, "COT-00002", second)
}

func TestNextFolio_IndependentPrefixes(t *testing.T) {
	svc := New(newMockQuerier())
	ctx := context.Background()

	quote, err := svc.NextFolio(ctx, corefolio.DefaultConfig("COT"))
	require.NoError(t, err)
	trip, err := svc.NextFolio(ctx, corefolio.DefaultConfig("FLT"))
	require.NoError(t, err)

	assert.Equal(t, "COT-00001", quote)
	assert.Equal(t, "FLT-00001", trip)
}

func TestNextFolio_ConcurrentUnique(t *testing.T) {
	svc := New(newMockQuerier())
	ctx := context.Background()
	cfg := corefolio.DefaultConfig("COT")

	const n = 100

	results := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			folio, err := svc.NextFolio(ctx, cfg)
			assert.NoError(t, err)
			results <- folio
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool, n)
	for folio := range results {
		assert.False(t, seen[folio], "duplicate folio %s", folio)
		seen[folio] = true
	}
	assert.Len(t, seen, n)
}

func TestSetNextValue(t *testing.T) {
	svc := New(newMockQuerier())
	ctx := context.Background()
	cfg := corefolio.DefaultConfig("COT")

	require.NoError(t, svc.SetNextValue(ctx, cfg, 500))

	folio, err := svc.NextFolio(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, "COT-00500", folio)
}

func TestSetNextValue_Invalid(t *testing.T) {
	svc := New(newMockQuerier())
	err := svc.SetNextValue(context.Background(), corefolio.DefaultConfig("COT"), 0)
	assert.Error(t, err)
}

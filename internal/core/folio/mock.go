package folio

import (
	"context"
	"sync"
)

// MockGenerator is a test implementation of Generator.
// Allocates from an in-memory counter per prefix; safe for concurrent use.
type MockGenerator struct {
	mu       sync.Mutex
	counters map[string]int64

	// NextFolioFunc overrides the default behavior when set.
	NextFolioFunc func(ctx context.Context, cfg Config) (string, error)
}

// NewMockGenerator creates an in-memory folio generator.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{counters: make(map[string]int64)}
}

// NextFolio implements Generator.
func (m *MockGenerator) NextFolio(ctx context.Context, cfg Config) (string, error) {
	if m.NextFolioFunc != nil {
		return m.NextFolioFunc(ctx, cfg)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counters == nil {
		m.counters = make(map[string]int64)
	}
	m.counters[cfg.Prefix]++
	return cfg.Format(m.counters[cfg.Prefix]), nil
}

// SetNextValue implements Generator.
func (m *MockGenerator) SetNextValue(ctx context.Context, cfg Config, value int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counters == nil {
		m.counters = make(map[string]int64)
	}
	m.counters[cfg.Prefix] = value - 1
	return nil
}

// Ensure compile-time interface compliance.
var _ Generator = (*MockGenerator)(nil)

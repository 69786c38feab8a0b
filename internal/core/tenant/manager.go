package tenant

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"logiprofit/pkg/logger"
)

// ManagerConfig configures the tenant pool manager.
type ManagerConfig struct {
	// DBUser / DBPassword are shared credentials for tenant databases.
	DBUser     string
	DBPassword string

	// MaxTotalPools caps the number of simultaneously open tenant pools.
	MaxTotalPools int

	// MaxConnsPerTenant caps connections within one tenant pool.
	MaxConnsPerTenant int32

	// PoolIdleTimeout evicts pools not used for this duration.
	PoolIdleTimeout time.Duration

	// EvictionInterval is how often the idle sweep runs.
	EvictionInterval time.Duration
}

// DefaultManagerConfig returns production-safe defaults.
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		MaxTotalPools:     100,
		MaxConnsPerTenant: 10,
		PoolIdleTimeout:   30 * time.Minute,
		EvictionInterval:  5 * time.Minute,
	}
}

// ManagedPool wraps a tenant pool with usage tracking for eviction
// and graceful shutdown.
type ManagedPool struct {
	pool     *pgxpool.Pool
	tenant   *Tenant
	lastUsed atomic.Int64 // unix nano
	refs     atomic.Int64 // in-flight requests
}

// Pool returns the underlying pgx pool.
func (p *ManagedPool) Pool() *pgxpool.Pool { return p.pool }

// Tenant returns the tenant this pool belongs to.
func (p *ManagedPool) Tenant() *Tenant { return p.tenant }

// AcquireRef marks the pool as in use by a request.
func (p *ManagedPool) AcquireRef() {
	p.refs.Add(1)
	p.lastUsed.Store(time.Now().UnixNano())
}

// ReleaseRef releases the request reference.
func (p *ManagedPool) ReleaseRef() {
	p.refs.Add(-1)
	p.lastUsed.Store(time.Now().UnixNano())
}

func (p *ManagedPool) idleSince() time.Time {
	return time.Unix(0, p.lastUsed.Load())
}

// Manager maintains one connection pool per active tenant, created lazily
// and evicted after idling.
type Manager struct {
	cfg      ManagerConfig
	registry Registry
	log      *logger.Logger

	mu    sync.Mutex
	pools map[string]*ManagedPool

	stopEviction chan struct{}
	stopOnce     sync.Once
}

// NewManager creates a tenant pool manager and starts the idle sweeper.
func NewManager(cfg ManagerConfig, registry Registry, log *logger.Logger) *Manager {
	m := &Manager{
		cfg:          cfg,
		registry:     registry,
		log:          log.WithComponent("tenant-manager"),
		pools:        make(map[string]*ManagedPool),
		stopEviction: make(chan struct{}),
	}
	if cfg.EvictionInterval > 0 {
		go m.evictionLoop()
	}
	return m
}

// GetPool returns the pool for tenantID, opening it on first use.
func (m *Manager) GetPool(ctx context.Context, tenantID string) (*ManagedPool, error) {
	m.mu.Lock()
	if mp, ok := m.pools[tenantID]; ok {
		mp.lastUsed.Store(time.Now().UnixNano())
		m.mu.Unlock()
		return mp, nil
	}
	m.mu.Unlock()

	// Resolve tenant outside the lock; registry hits the meta-database.
	t, err := m.registry.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !t.IsActive() {
		return nil, ErrTenantNotActive
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Another request may have opened it meanwhile.
	if mp, ok := m.pools[tenantID]; ok {
		return mp, nil
	}

	if m.cfg.MaxTotalPools > 0 && len(m.pools) >= m.cfg.MaxTotalPools {
		if !m.evictIdleLocked() {
			return nil, ErrMaxPoolLimit
		}
	}

	poolCfg, err := pgxpool.ParseConfig(t.DSN(m.cfg.DBUser, m.cfg.DBPassword))
	if err != nil {
		return nil, fmt.Errorf("parse tenant dsn: %w", err)
	}
	if m.cfg.MaxConnsPerTenant > 0 {
		poolCfg.MaxConns = m.cfg.MaxConnsPerTenant
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open tenant pool: %w", err)
	}

	mp := &ManagedPool{pool: pool, tenant: t}
	mp.lastUsed.Store(time.Now().UnixNano())
	m.pools[tenantID] = mp

	m.log.Infow("tenant pool opened", "tenant_id", tenantID, "slug", t.Slug)
	return mp, nil
}

// PrewarmPools opens pools for all active tenants.
func (m *Manager) PrewarmPools(ctx context.Context) error {
	tenants, err := m.registry.ListActive(ctx)
	if err != nil {
		return err
	}
	var firstErr error
	for _, t := range tenants {
		if _, err := m.GetPool(ctx, t.ID); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("prewarm %s: %w", t.Slug, err)
		}
	}
	return firstErr
}

// Stats returns the number of open pools.
func (m *Manager) Stats() (openPools int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pools)
}

// Close shuts down all pools and the eviction loop.
func (m *Manager) Close() {
	m.stopOnce.Do(func() { close(m.stopEviction) })

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, mp := range m.pools {
		mp.pool.Close()
		delete(m.pools, id)
	}
}

func (m *Manager) evictionLoop() {
	ticker := time.NewTicker(m.cfg.EvictionInterval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stopEviction:
			return
		case <-ticker.C:
			m.mu.Lock()
			m.evictIdleLocked()
			m.mu.Unlock()
		}
	}
}

// evictIdleLocked closes pools idle beyond the timeout with no in-flight
// requests. Returns true if at least one pool was evicted. Caller holds mu.
func (m *Manager) evictIdleLocked() bool {
	evicted := false
	cutoff := time.Now().Add(-m.cfg.PoolIdleTimeout)
	for id, mp := range m.pools {
		if mp.refs.Load() > 0 {
			continue
		}
		if mp.idleSince().After(cutoff) {
			continue
		}
		mp.pool.Close()
		delete(m.pools, id)
		evicted = true
		m.log.Infow("tenant pool evicted", "tenant_id", id)
	}
	return evicted
}

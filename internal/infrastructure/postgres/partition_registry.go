package postgres

import (
	"context"
	"fmt"
	"sync"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/eventos-api/internal/application/tenant"
	"github.com/jhoicas/eventos-api/pkg/config"
	"github.com/jhoicas/eventos-api/pkg/logger"
)

var _ tenant.PartitionCache = (*PartitionRegistry)(nil)

// PoolOpener abre un pool atado a una partición (search_path fijado al
// schema). Inyectable para tests; en producción se usa NewPartitionOpener.
type PoolOpener func(ctx context.Context, schemaName string) (*pgxpool.Pool, error)

// PartitionRegistry cachea un pool por partición. La primera petición de un
// schema construye el pool; las siguientes reutilizan el handle. singleflight
// garantiza que N peticiones concurrentes del mismo schema construyen uno solo.
type PartitionRegistry struct {
	open  PoolOpener
	log   *logger.Logger
	group singleflight.Group

	mu    sync.RWMutex
	pools map[string]*pgxpool.Pool
}

// NewPartitionRegistry construye el registro con el opener recibido.
func NewPartitionRegistry(open PoolOpener, log *logger.Logger) *PartitionRegistry {
	return &PartitionRegistry{
		open:  open,
		log:   log,
		pools: make(map[string]*pgxpool.Pool),
	}
}

// Get devuelve el pool de la partición, construyéndolo si es la primera vez.
func (r *PartitionRegistry) Get(ctx context.Context, schemaName string) (*pgxpool.Pool, error) {
	r.mu.RLock()
	pool, ok := r.pools[schemaName]
	r.mu.RUnlock()
	if ok {
		return pool, nil
	}

	v, err, _ := r.group.Do(schemaName, func() (any, error) {
		// Releer bajo el lock: otro vuelo pudo poblar el mapa entre el
		// RUnlock y el Do.
		r.mu.RLock()
		existing, ok := r.pools[schemaName]
		r.mu.RUnlock()
		if ok {
			return existing, nil
		}

		p, err := r.open(ctx, schemaName)
		if err != nil {
			return nil, fmt.Errorf("open partition %s: %w", schemaName, err)
		}
		r.mu.Lock()
		r.pools[schemaName] = p
		r.mu.Unlock()
		if r.log != nil {
			r.log.Info().Str("schema", schemaName).Msg("partición abierta")
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*pgxpool.Pool), nil
}

// Invalidate cierra y desaloja el handle de la partición. Se invoca al
// eliminar un tenant; un Get posterior reconstruye el pool si el schema
// vuelve a existir.
func (r *PartitionRegistry) Invalidate(schemaName string) {
	r.mu.Lock()
	pool, ok := r.pools[schemaName]
	delete(r.pools, schemaName)
	r.mu.Unlock()
	if ok {
		pool.Close()
		if r.log != nil {
			r.log.Info().Str("schema", schemaName).Msg("partición desalojada")
		}
	}
}

// Close cierra todos los handles. Para el shutdown del proceso.
func (r *PartitionRegistry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name, pool := range r.pools {
		pool.Close()
		delete(r.pools, name)
	}
}

// NewPartitionOpener construye el opener de producción: pools chicos con el
// search_path fijado al schema de la partición (y public de respaldo para
// extensiones), codec decimal registrado y ping de verificación.
func NewPartitionOpener(db config.DBConfig, maxConns int) PoolOpener {
	return func(ctx context.Context, schemaName string) (*pgxpool.Pool, error) {
		poolConfig, err := pgxpool.ParseConfig(db.ConnectionString())
		if err != nil {
			return nil, fmt.Errorf("parse DSN: %w", err)
		}
		if maxConns <= 0 {
			maxConns = 5
		}
		poolConfig.MaxConns = int32(maxConns)
		poolConfig.MinConns = 0
		poolConfig.MaxConnIdleTime = 10 * time.Minute
		poolConfig.ConnConfig.RuntimeParams["search_path"] = schemaName + ",public"
		poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
			pgxdecimal.Register(conn.TypeMap())
			return nil
		}

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, fmt.Errorf("crear pool de partición: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ping partición %s: %w", schemaName, err)
		}
		return pool, nil
	}
}

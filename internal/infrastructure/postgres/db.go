package postgres

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrClosed = errors.New("postgres: database closed")

type Options struct {
	MaxConns    int32
	MinConns    int32
	MaxConnLife time.Duration
}

// DB owns the connection pool. The pool is opened on first use; a failed
// attempt leaves DB unopened so the next call retries.
type DB struct {
	dsn  string
	opts Options

	mu     sync.Mutex
	pool   *pgxpool.Pool
	closed bool
}

func NewDB(dsn string, opts Options) *DB {
	return &DB{dsn: dsn, opts: opts}
}

// FromPool wraps an already opened pool.
func FromPool(pool *pgxpool.Pool) *DB {
	return &DB{pool: pool}
}

// Pool returns the shared pool, opening it if needed. Concurrent callers share a single open.
func (d *DB) Pool(ctx context.Context) (*pgxpool.Pool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, ErrClosed
	}
	if d.pool != nil {
		return d.pool, nil
	}
	pool, err := open(ctx, d.dsn, d.opts)
	if err != nil {
		return nil, err
	}
	d.pool = pool
	return pool, nil
}

// Health pings the database, opening the pool first if needed.
func (d *DB) Health(ctx context.Context) error {
	pool, err := d.Pool(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return pool.Ping(ctx)
}

func (d *DB) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pool != nil {
		d.pool.Close()
		d.pool = nil
	}
	d.closed = true
}

func open(ctx context.Context, dsn string, o Options) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	if o.MaxConns > 0 {
		cfg.MaxConns = o.MaxConns
	}
	if o.MinConns > 0 {
		cfg.MinConns = o.MinConns
	}
	if o.MaxConnLife > 0 {
		cfg.MaxConnLifetime = o.MaxConnLife
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

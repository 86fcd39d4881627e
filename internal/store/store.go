package store

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("not found")

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Options controls how Open builds the connection pool.
type Options struct {
	URL            string
	MaxConns       int32
	ConnectTimeout time.Duration
	// InsecureTLS skips server certificate verification on TLS connections.
	InsecureTLS bool
}

// Open parses the connection string, applies the pool limits and pings once.
func Open(ctx context.Context, o Options) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(o.URL)
	if err != nil {
		return nil, fmt.Errorf("db config: %w", err)
	}
	if o.MaxConns > 0 {
		cfg.MaxConns = o.MaxConns
	}
	if o.ConnectTimeout > 0 {
		cfg.ConnConfig.ConnectTimeout = o.ConnectTimeout
	}
	if o.InsecureTLS {
		skipVerify(cfg.ConnConfig.TLSConfig)
		for _, fb := range cfg.ConnConfig.Fallbacks {
			skipVerify(fb.TLSConfig)
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return pool, nil
}

// skipVerify drops certificate checks from a TLS config built from sslmode.
// A nil config means TLS is off and stays off.
func skipVerify(c *tls.Config) {
	if c == nil {
		return
	}
	c.InsecureSkipVerify = true
	c.VerifyPeerCertificate = nil
	c.VerifyConnection = nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

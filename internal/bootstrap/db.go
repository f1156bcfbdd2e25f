package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/GoSim-25-26J-441/purple-team-sim/config"
	"github.com/GoSim-25-26J-441/purple-team-sim/internal/storage/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DBOptions struct {
	ConnectTO time.Duration
	PingTO    time.Duration
	MaxConns  int32
}

// OpenDB opens the pgx pool used by the health check. It returns nil, nil
// when no database is configured.
func OpenDB(ctx context.Context, cfg *config.DatabaseConfig, opt DBOptions) (*pgxpool.Pool, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	if opt.ConnectTO == 0 {
		opt.ConnectTO = 5 * time.Second
	}
	if opt.PingTO == 0 {
		opt.PingTO = 2 * time.Second
	}
	if opt.MaxConns == 0 {
		opt.MaxConns = 4
	}

	pcfg, err := pgxpool.ParseConfig(postgres.DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("db config: %w", err)
	}
	pcfg.MaxConns = opt.MaxConns

	cctx, cancel := context.WithTimeout(ctx, opt.ConnectTO)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(cctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	pctx, pcancel := context.WithTimeout(ctx, opt.PingTO)
	defer pcancel()
	if err := pool.Ping(pctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return pool, nil
}

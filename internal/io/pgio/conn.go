package pgio

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oeai/oeaimport/pkg/config"
)

func pgxConn(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	pgxCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		slog.Error("Cannot parse pgx config", "error", err)
		return nil, err
	}
	// rows are imported one at a time
	pgxCfg.MaxConns = 2

	db, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		slog.Error("Cannot connect to database", "error", err)
		return nil, err
	}
	if err = db.Ping(ctx); err != nil {
		db.Close()
		slog.Error("Cannot reach database", "error", err)
		return nil, err
	}
	return db, nil
}

package postgres

import (
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"vibecheck/internal/config"
)

const connMaxLifetime = 30 * time.Minute

// NewDB opens the PostgreSQL pool. Document search needs the pgvector
// extension; a database without it still serves everything else.
func NewDB(cfg *config.DBConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres %s/%s: %w", cfg.Host, cfg.Name, err)
	}
	db.SetMaxOpenConns(cfg.MaxOpen)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(connMaxLifetime)

	var hasVector bool
	if err := db.Get(&hasVector, "SELECT EXISTS (SELECT 1 FROM pg_extension WHERE extname = 'vector')"); err != nil {
		db.Close()
		return nil, fmt.Errorf("checking extensions: %w", err)
	}
	if !hasVector {
		log.Printf("postgres.NewDB: WARNING: pgvector extension missing, run migrations before searching")
	}
	return db, nil
}

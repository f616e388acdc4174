package db

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/Anish-Chanda/bytesearch/internal/config"
)

// Run is one recorded search.
type Run struct {
	ID            string    `db:"run_id"`
	Algorithm     string    `db:"algorithm"`
	Hasher        string    `db:"hasher"`
	Pattern       []byte    `db:"pattern"`
	TextBytes     int64     `db:"text_bytes"`
	Matches       int64     `db:"match_count"`
	ElapsedMicros int64     `db:"elapsed_us"`
	CreatedAt     time.Time `db:"created_at"`
}

type Client struct {
	db *sqlx.DB
}

// New connects to Postgres using BSEARCH_POSTGRES_DSN.
func New(cfg *config.Config) (*Client, error) {
	if cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("PostgresDSN must be set")
	}
	db, err := sqlx.Connect("postgres", cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return &Client{db: db}, nil
}

// Close the DB connection.
func (c *Client) Close() error {
	return c.db.Close()
}

// InsertRun records a finished search.
func (c *Client) InsertRun(run Run) error {
	_, err := c.db.NamedExec(
		`INSERT INTO search_runs (run_id, algorithm, hasher, pattern, text_bytes, match_count, elapsed_us)
		 VALUES (:run_id, :algorithm, :hasher, :pattern, :text_bytes, :match_count, :elapsed_us)`,
		run,
	)
	return err
}

// RecentRuns returns up to limit runs, newest first.
func (c *Client) RecentRuns(limit int) ([]Run, error) {
	var runs []Run
	err := c.db.Select(&runs,
		`SELECT run_id, algorithm, hasher, pattern, text_bytes, match_count, elapsed_us, created_at
		 FROM search_runs ORDER BY created_at DESC LIMIT $1`, limit)
	return runs, err
}

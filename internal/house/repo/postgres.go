package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/andrasetya/realestate-rizz/internal/house/entity"
)

// PostgresStore backs the house repository with a Postgres table via sqlx.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore { return &PostgresStore{db: db} }

// EnsureTable creates the houses table if not exists (idempotent).
// This is a convenience for early development; prefer migrations in production.
func (s *PostgresStore) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS houses (
  fid BIGINT PRIMARY KEY,
  username TEXT NOT NULL,
  house_type TEXT NOT NULL,
  price_line TEXT NOT NULL,
  investment_score INT NOT NULL,
  investment_note TEXT NOT NULL,
  tagline TEXT NOT NULL,
  address_line TEXT NOT NULL,
  city TEXT NOT NULL,
  neighborhood TEXT NOT NULL,
  vibe_label TEXT NOT NULL,
  risk_label TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_houses_created_at ON houses(created_at);
`
	_, err := s.db.ExecContext(ctx, ddl)
	return err
}

const houseColumns = `fid, username, house_type, price_line, investment_score,
	investment_note, tagline, address_line, city, neighborhood, vibe_label,
	risk_label, created_at`

func (s *PostgresStore) Get(ctx context.Context, fid int64) (*entity.House, error) {
	const q = `SELECT ` + houseColumns + ` FROM houses WHERE fid=$1`
	var h entity.House
	if err := s.db.GetContext(ctx, &h, q, fid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &h, nil
}

func (s *PostgresStore) PutIfAbsent(ctx context.Context, h *entity.House) (*entity.House, bool, error) {
	const q = `INSERT INTO houses (` + houseColumns + `)
		VALUES (:fid,:username,:house_type,:price_line,:investment_score,
			:investment_note,:tagline,:address_line,:city,:neighborhood,
			:vibe_label,:risk_label,:created_at)
		ON CONFLICT (fid) DO NOTHING`
	res, err := s.db.NamedExecContext(ctx, q, h)
	if err != nil {
		return nil, false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, false, err
	}
	// lost the race or inserted; either way the row is the source of truth now
	stored, err := s.Get(ctx, h.FID)
	if err != nil {
		return nil, false, err
	}
	return stored, rows == 1, nil
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]*entity.House, error) {
	const q = `SELECT ` + houseColumns + ` FROM houses ORDER BY created_at ASC, fid ASC`
	out := make([]*entity.House, 0)
	if err := s.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

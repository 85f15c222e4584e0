package repo

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// PostgresStore backs the vote ledger with a table whose primary key makes
// duplicate votes a no-op insert.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore { return &PostgresStore{db: db} }

// EnsureTable creates the votes table if not exists (idempotent).
func (s *PostgresStore) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS votes (
  target_fid BIGINT NOT NULL,
  voter_fid BIGINT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  PRIMARY KEY (target_fid, voter_fid)
);
CREATE INDEX IF NOT EXISTS idx_votes_target ON votes(target_fid);
`
	_, err := s.db.ExecContext(ctx, ddl)
	return err
}

func (s *PostgresStore) Add(ctx context.Context, targetFID, voterFID int64) (bool, error) {
	const q = `INSERT INTO votes (target_fid, voter_fid) VALUES ($1, $2)
		ON CONFLICT (target_fid, voter_fid) DO NOTHING`
	res, err := s.db.ExecContext(ctx, q, targetFID, voterFID)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

func (s *PostgresStore) Contains(ctx context.Context, targetFID, voterFID int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM votes WHERE target_fid=$1 AND voter_fid=$2)`
	var ok bool
	if err := s.db.GetContext(ctx, &ok, q, targetFID, voterFID); err != nil {
		return false, err
	}
	return ok, nil
}

func (s *PostgresStore) CountFor(ctx context.Context, targetFID int64) (int, error) {
	const q = `SELECT COUNT(*) FROM votes WHERE target_fid=$1`
	var n int
	if err := s.db.GetContext(ctx, &n, q, targetFID); err != nil {
		return 0, err
	}
	return n, nil
}

package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/kilianp07/greenslot/core/model"
	"github.com/kilianp07/greenslot/core/snapshot"
)

// SQLiteStore persists slots to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS delivery_slots (
        begin_ts INTEGER PRIMARY KEY,
        end_ts INTEGER NOT NULL,
        green INTEGER NOT NULL,
        product_id TEXT NOT NULL
    );`
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Save replaces the table content in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, slots []model.DeliverySlot) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if _, err = tx.ExecContext(ctx, `DELETE FROM delivery_slots`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO delivery_slots (begin_ts, end_ts, green, product_id) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()
	for _, slot := range slots {
		if _, err = stmt.ExecContext(ctx, slot.Begin.Unix(), slot.End.Unix(), slot.Green, slot.ProductID.String()); err != nil {
			return fmt.Errorf("insert %s: %w", slot, err)
		}
	}
	return tx.Commit()
}

// Load returns slots matching q.
func (s *SQLiteStore) Load(ctx context.Context, q snapshot.Query) ([]model.DeliverySlot, error) {
	var args []any
	query := `SELECT begin_ts, end_ts, green, product_id FROM delivery_slots WHERE 1=1`
	if !q.Start.IsZero() {
		query += ` AND begin_ts >= ?`
		args = append(args, q.Start.Unix())
	}
	if !q.End.IsZero() {
		query += ` AND begin_ts < ?`
		args = append(args, q.End.Unix())
	}
	if q.ProductID != uuid.Nil {
		query += ` AND product_id = ?`
		args = append(args, q.ProductID.String())
	}
	query += ` ORDER BY begin_ts`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []model.DeliverySlot
	for rows.Next() {
		var (
			begin, end int64
			green      bool
			product    string
		)
		if err := rows.Scan(&begin, &end, &green, &product); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(product)
		if err != nil {
			return nil, fmt.Errorf("product id %q: %w", product, err)
		}
		res = append(res, model.DeliverySlot{
			Begin:     time.Unix(begin, 0).UTC(),
			End:       time.Unix(end, 0).UTC(),
			Green:     green,
			ProductID: id,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

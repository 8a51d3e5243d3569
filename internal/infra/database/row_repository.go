package database

import (
	"context"
	"database/sql"
	"log"

	"github.com/lesptitsgilets/contacts-sync/internal/entity"
)

// RowRepository checkpoints the reconciled rows of a run, so an export stays
// downloadable after the run finished (and a crashed run leaves no stale
// rows behind).
type RowRepository struct {
	DB *sql.DB
}

func NewRowRepository(db *sql.DB) *RowRepository {
	return &RowRepository{DB: db}
}

// ReplaceForRun swaps the run's rows atomically, preserving export order via
// the position column.
func (r *RowRepository) ReplaceForRun(ctx context.Context, runID string, rows []entity.Row) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sync_rows WHERE run_id = $1`, runID); err != nil {
		return err
	}

	query := `
		INSERT INTO sync_rows (run_id, position, contact_id, email, firstname, lastname, membership_date, adhesion_ok, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	for i, row := range rows {
		_, err := tx.ExecContext(ctx, query,
			runID,
			i,
			row.ContactID,
			row.Email,
			row.FirstName,
			row.LastName,
			row.MembershipDate,
			row.Current,
			row.Phone,
		)
		if err != nil {
			log.Printf("Database error inserting row %d of run %s: %v", i, runID, err)
			return err
		}
	}

	return tx.Commit()
}

func (r *RowRepository) ListByRun(ctx context.Context, runID string) ([]entity.Row, error) {
	query := `
		SELECT contact_id, email, firstname, lastname, membership_date, adhesion_ok, phone
		FROM sync_rows
		WHERE run_id = $1
		ORDER BY position
	`

	result, err := r.DB.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer result.Close()

	var rows []entity.Row
	for result.Next() {
		var row entity.Row
		err := result.Scan(
			&row.ContactID,
			&row.Email,
			&row.FirstName,
			&row.LastName,
			&row.MembershipDate,
			&row.Current,
			&row.Phone,
		)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return rows, result.Err()
}

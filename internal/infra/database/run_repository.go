package database

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/lesptitsgilets/contacts-sync/internal/entity"
)

var ErrRunNotFound = errors.New("sync run not found")

type RunRepository struct {
	DB *sql.DB
}

func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{DB: db}
}

func (r *RunRepository) Create(ctx context.Context, run *entity.SyncRun) error {
	query := `
		INSERT INTO sync_runs (id, source, status, total_rows, matched, multiple, unmatched, error, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.DB.ExecContext(ctx, query,
		run.ID,
		run.Source,
		run.Status,
		run.TotalRows,
		run.Matched,
		run.Multiple,
		run.Unmatched,
		run.Error,
		run.CreatedAt,
		run.UpdatedAt,
	)
	if err != nil {
		log.Printf("Database error creating run: %v", err)
		return err
	}

	return nil
}

func (r *RunRepository) Update(ctx context.Context, run *entity.SyncRun) error {
	run.UpdatedAt = time.Now()

	query := `
		UPDATE sync_runs
		SET status = $2, total_rows = $3, matched = $4, multiple = $5, unmatched = $6, error = $7, updated_at = $8
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query,
		run.ID,
		run.Status,
		run.TotalRows,
		run.Matched,
		run.Multiple,
		run.Unmatched,
		run.Error,
		run.UpdatedAt,
	)
	if err != nil {
		log.Printf("Database error updating run: %v", err)
		return err
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRunNotFound
	}
	return nil
}

func (r *RunRepository) FindByID(ctx context.Context, id string) (*entity.SyncRun, error) {
	query := `
		SELECT id, source, status, total_rows, matched, multiple, unmatched, error, created_at, updated_at
		FROM sync_runs
		WHERE id = $1
	`

	var run entity.SyncRun
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&run.ID,
		&run.Source,
		&run.Status,
		&run.TotalRows,
		&run.Matched,
		&run.Multiple,
		&run.Unmatched,
		&run.Error,
		&run.CreatedAt,
		&run.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}

	return &run, nil
}

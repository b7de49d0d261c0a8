package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/peakfig/peakfig/internal/common"
	"github.com/peakfig/peakfig/internal/model"
)

// ScanRun summarizes one persisted extraction pass over a document.
// VocabVersion records the scale phrase vocabulary that produced the hits,
// so stored results stay traceable after the vocabulary changes.
type ScanRun struct {
	CreatedAt    time.Time
	PDFPath      string
	ID           int64
	StartPage    int
	EndPage      int
	HitCount     int
	VocabVersion int
	ApplyScaling bool
}

// SaveRun persists a run summary and its ranked hits in one transaction,
// returning the new run ID. Hits are stored in the order given; their rank
// is their 1-based position.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run ScanRun, hits []model.NumberHit) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if run.PDFPath == "" {
		return 0, fmt.Errorf("pdf path cannot be empty")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO scan_runs (pdf_path, start_page, end_page, apply_scaling, hit_count, vocab_version)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.PDFPath, run.StartPage, run.EndPage, run.ApplyScaling, len(hits), run.VocabVersion)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO scan_hits (run_id, rank, page, raw_text, raw_value, scaled_value,
		 units, scale_name, scale_phrase, percent, x0, top, x1, bottom, reading_order)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare hit insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, h := range hits {
		if _, err := stmt.ExecContext(ctx,
			runID, i+1, h.PageNum, h.RawText, h.RawValue, h.ScaledValue,
			string(h.Units), string(h.ScaleName), h.ScalePhrase, h.Percent,
			h.BBox.X0, h.BBox.Top, h.BBox.X1, h.BBox.Bottom, h.Order); err != nil {
			return 0, fmt.Errorf("failed to insert hit %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first. A non-positive
// limit returns all runs.
func (s *SQLiteStorage) ListRuns(ctx context.Context, limit int) ([]ScanRun, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT id, pdf_path, created_at, start_page, end_page, apply_scaling, hit_count, vocab_version
		FROM scan_runs ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []ScanRun
	for rows.Next() {
		var r ScanRun
		if err := rows.Scan(&r.ID, &r.PDFPath, &r.CreatedAt, &r.StartPage,
			&r.EndPage, &r.ApplyScaling, &r.HitCount, &r.VocabVersion); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun returns one run by ID.
func (s *SQLiteStorage) GetRun(ctx context.Context, id int64) (*ScanRun, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var r ScanRun
	err := s.db.QueryRowContext(ctx,
		`SELECT id, pdf_path, created_at, start_page, end_page, apply_scaling, hit_count, vocab_version
		 FROM scan_runs WHERE id = ?`, id).
		Scan(&r.ID, &r.PDFPath, &r.CreatedAt, &r.StartPage, &r.EndPage, &r.ApplyScaling, &r.HitCount, &r.VocabVersion)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &r, nil
}

// GetRunHits returns a run's hits in rank order.
func (s *SQLiteStorage) GetRunHits(ctx context.Context, runID int64) ([]model.NumberHit, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT page, raw_text, raw_value, scaled_value, units, scale_name,
		 scale_phrase, percent, x0, top, x1, bottom, reading_order
		 FROM scan_hits WHERE run_id = ? ORDER BY rank`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query hits: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var hits []model.NumberHit
	for rows.Next() {
		var h model.NumberHit
		var units, scaleName string
		if err := rows.Scan(&h.PageNum, &h.RawText, &h.RawValue, &h.ScaledValue,
			&units, &scaleName, &h.ScalePhrase, &h.Percent,
			&h.BBox.X0, &h.BBox.Top, &h.BBox.X1, &h.BBox.Bottom, &h.Order); err != nil {
			return nil, fmt.Errorf("failed to scan hit: %w", err)
		}
		h.Units = model.Units(units)
		h.ScaleName = model.Scale(scaleName)
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"skinscout/internal/models"
)

// Bounds for ListRecentAnalyses.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

const analysisColumns = `id, ingredients, status, risk_score, match_count, rule, source, created_at`

// CreateAnalysis stores an analysis. A zero ID is replaced with a new UUID and
// CreatedAt is set from the database clock.
func (d *DB) CreateAnalysis(ctx context.Context, a *models.Analysis) error {
	if a.Status != "safe" && a.Status != "danger" {
		return fmt.Errorf("%w: status %q", ErrInvalidAnalysis, a.Status)
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Ingredients == nil {
		a.Ingredients = []string{}
	}

	err := d.Pool.QueryRow(ctx, `
		INSERT INTO analyses (id, ingredients, status, risk_score, match_count, rule, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`, a.ID, a.Ingredients, a.Status, a.RiskScore, a.MatchCount, a.Rule, a.Source).Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}
	return nil
}

// GetAnalysisByID retrieves an analysis by its ID.
func (d *DB) GetAnalysisByID(ctx context.Context, id uuid.UUID) (*models.Analysis, error) {
	row := d.Pool.QueryRow(ctx, `SELECT `+analysisColumns+` FROM analyses WHERE id = $1`, id)

	a, err := scanAnalysis(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAnalysisNotFound
		}
		return nil, err
	}
	return a, nil
}

// ListRecentAnalyses returns the newest analyses first. The limit is clamped
// to [1, MaxListLimit]; non-positive values use DefaultListLimit.
func (d *DB) ListRecentAnalyses(ctx context.Context, limit int) ([]models.Analysis, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	rows, err := d.Pool.Query(ctx, `
		SELECT `+analysisColumns+`
		FROM analyses
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	analyses := []models.Analysis{}
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, *a)
	}
	return analyses, rows.Err()
}

// CountAnalysesByStatus returns per-status totals for metrics export.
func (d *DB) CountAnalysesByStatus(ctx context.Context) ([]models.StatusCount, error) {
	rows, err := d.Pool.Query(ctx, `SELECT status, COUNT(*) FROM analyses GROUP BY status ORDER BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []models.StatusCount
	for rows.Next() {
		var c models.StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func scanAnalysis(row pgx.Row) (*models.Analysis, error) {
	var a models.Analysis
	err := row.Scan(&a.ID, &a.Ingredients, &a.Status, &a.RiskScore, &a.MatchCount, &a.Rule, &a.Source, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

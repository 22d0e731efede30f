package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mpetrov/secureapp/internal/models"
	"github.com/mpetrov/secureapp/internal/storage"
)

// CreateCalculation inserts a calculation row with its precomputed result.
// A reference to an absent user fails the foreign-key check and is returned
// as-is; the handler layer never produces one.
func (s *Store) CreateCalculation(ctx context.Context, calculation models.Calculation) (models.Calculation, error) {
	const query = `
		INSERT INTO calculations (id, a, b, type, result, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, a, b, type, result, user_id, created_at;
	`
	row := s.pool.QueryRow(ctx, query,
		calculation.ID, calculation.A, calculation.B, calculation.Type, calculation.Result, calculation.UserID)
	created, err := scanCalculation(row)
	if err != nil {
		return models.Calculation{}, fmt.Errorf("create calculation: %w", err)
	}
	return created, nil
}

// ListCalculations returns calculations matching the filter, oldest first.
func (s *Store) ListCalculations(ctx context.Context, filter storage.CalculationFilter) ([]models.Calculation, error) {
	query := `
		SELECT id, a, b, type, result, user_id, created_at
		FROM calculations
		WHERE ($1::text IS NULL OR type = $1)
		  AND ($2::uuid IS NULL OR user_id = $2)
		ORDER BY created_at, id;
	`
	rows, err := s.pool.Query(ctx, query, filter.Type, filter.UserID)
	if err != nil {
		return nil, fmt.Errorf("list calculations: %w", err)
	}
	defer rows.Close()

	var calculations []models.Calculation
	for rows.Next() {
		calculation, err := scanCalculation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan calculation row: %w", err)
		}
		calculations = append(calculations, calculation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list calculations: %w", err)
	}
	return calculations, nil
}

// DeleteCalculation permanently removes one calculation row.
func (s *Store) DeleteCalculation(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM calculations WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete calculation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanCalculation(row pgx.Row) (models.Calculation, error) {
	var calculation models.Calculation
	err := row.Scan(&calculation.ID, &calculation.A, &calculation.B, &calculation.Type,
		&calculation.Result, &calculation.UserID, &calculation.CreatedAt)
	if err != nil {
		return models.Calculation{}, err
	}
	return calculation, nil
}

package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ValuationRecord is a saved valuation row. SWOTAnalysis is the formatted
// display line, not the four raw fields.
type ValuationRecord struct {
	ID              uuid.UUID `json:"id"`
	OwnerID         uuid.UUID `json:"owner_id"`
	CompanyName     string    `json:"company_name"`
	ValuationAmount float64   `json:"valuation_amount"`
	SWOTAnalysis    string    `json:"swot_analysis"`
	CreatedAt       time.Time `json:"created_at"`
}

// InsertValuation stores a valuation record and returns it with the
// database-assigned ID and timestamp.
func (db *DB) InsertValuation(ctx context.Context, ownerID uuid.UUID, companyName string, amount float64, swot string) (*ValuationRecord, error) {
	var rec ValuationRecord
	err := db.pool.QueryRow(ctx,
		`INSERT INTO valuations (owner_id, company_name, valuation_amount, swot_analysis)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, owner_id, company_name, valuation_amount, swot_analysis, created_at`,
		ownerID, companyName, amount, swot,
	).Scan(&rec.ID, &rec.OwnerID, &rec.CompanyName, &rec.ValuationAmount, &rec.SWOTAnalysis, &rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert valuation: %w", err)
	}
	return &rec, nil
}

// ListValuationsByOwner retrieves the owner's saved valuations, newest first.
func (db *DB) ListValuationsByOwner(ctx context.Context, ownerID uuid.UUID) ([]ValuationRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, owner_id, company_name, valuation_amount, swot_analysis, created_at
		 FROM valuations WHERE owner_id = $1 ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list valuations: %w", err)
	}
	defer rows.Close()

	var records []ValuationRecord
	for rows.Next() {
		var rec ValuationRecord
		if err := rows.Scan(&rec.ID, &rec.OwnerID, &rec.CompanyName, &rec.ValuationAmount, &rec.SWOTAnalysis, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan valuation: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// GetValuation retrieves a single record scoped to its owner. Returns
// (nil, nil) when no matching row exists.
func (db *DB) GetValuation(ctx context.Context, id, ownerID uuid.UUID) (*ValuationRecord, error) {
	var rec ValuationRecord
	err := db.pool.QueryRow(ctx,
		`SELECT id, owner_id, company_name, valuation_amount, swot_analysis, created_at
		 FROM valuations WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	).Scan(&rec.ID, &rec.OwnerID, &rec.CompanyName, &rec.ValuationAmount, &rec.SWOTAnalysis, &rec.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get valuation: %w", err)
	}
	return &rec, nil
}

// DeleteValuation removes a record scoped to its owner. It reports false when
// no row matched, so a delete of someone else's record looks like a miss.
func (db *DB) DeleteValuation(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM valuations WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete valuation: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

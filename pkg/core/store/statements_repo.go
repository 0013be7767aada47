package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"finstat_engine/pkg/core/statements"
)

// StatementType distinguishes the two snapshot kinds sharing one table.
type StatementType string

const (
	TypeBalanceSheet    StatementType = "balance_sheet"
	TypeIncomeStatement StatementType = "income_statement"
)

// StatementsRepo persists statement snapshots keyed by
// (user_id, fiscal_year, month, statement_type).
type StatementsRepo struct {
	pool *pgxpool.Pool
}

// NewStatementsRepo creates a repo backed by the given pool.
func NewStatementsRepo(pool *pgxpool.Pool) *StatementsRepo {
	return &StatementsRepo{pool: pool}
}

// SaveBalanceSheet upserts a balance sheet snapshot. A locked row is
// never overwritten; the guard lives in the SQL so concurrent writers
// cannot race past it.
func (r *StatementsRepo) SaveBalanceSheet(ctx context.Context, userID string, month int, snap *statements.BalanceSheetSnapshot) error {
	return r.save(ctx, userID, snap.Year, month, TypeBalanceSheet, string(snap.Source), snap)
}

// SaveIncomeStatement upserts an income statement snapshot under the
// same lock guard.
func (r *StatementsRepo) SaveIncomeStatement(ctx context.Context, userID string, month int, snap *statements.IncomeStatementSnapshot) error {
	return r.save(ctx, userID, snap.Year, month, TypeIncomeStatement, string(snap.Source), snap)
}

func (r *StatementsRepo) save(ctx context.Context, userID string, year, month int, st StatementType, source string, payload interface{}) error {
	dataJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	query := `
		INSERT INTO statement_snapshots (
			user_id, fiscal_year, month, statement_type, source, data, is_locked
		) VALUES ($1, $2, $3, $4, $5, $6, FALSE)
		ON CONFLICT (user_id, fiscal_year, month, statement_type)
		DO UPDATE SET
			data = EXCLUDED.data,
			source = EXCLUDED.source,
			updated_at = NOW()
		WHERE statement_snapshots.is_locked = FALSE
	`
	tag, err := r.pool.Exec(ctx, query, userID, year, month, st, source, dataJSON)
	if err != nil {
		return fmt.Errorf("failed to save %s snapshot: %w", st, err)
	}
	if tag.RowsAffected() == 0 {
		return statements.ErrLocked
	}
	return nil
}

// LoadBalanceSheet fetches a balance sheet snapshot, nil when absent.
func (r *StatementsRepo) LoadBalanceSheet(ctx context.Context, userID string, year, month int) (*statements.BalanceSheetSnapshot, error) {
	dataJSON, err := r.load(ctx, userID, year, month, TypeBalanceSheet)
	if err != nil || dataJSON == nil {
		return nil, err
	}
	var snap statements.BalanceSheetSnapshot
	if err := json.Unmarshal(dataJSON, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal balance sheet: %w", err)
	}
	return &snap, nil
}

// LoadIncomeStatement fetches an income statement snapshot, nil when absent.
func (r *StatementsRepo) LoadIncomeStatement(ctx context.Context, userID string, year, month int) (*statements.IncomeStatementSnapshot, error) {
	dataJSON, err := r.load(ctx, userID, year, month, TypeIncomeStatement)
	if err != nil || dataJSON == nil {
		return nil, err
	}
	var snap statements.IncomeStatementSnapshot
	if err := json.Unmarshal(dataJSON, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal income statement: %w", err)
	}
	return &snap, nil
}

func (r *StatementsRepo) load(ctx context.Context, userID string, year, month int, st StatementType) ([]byte, error) {
	query := `
		SELECT data
		FROM statement_snapshots
		WHERE user_id = $1 AND fiscal_year = $2 AND month = $3 AND statement_type = $4
		LIMIT 1
	`
	var dataJSON []byte
	err := r.pool.QueryRow(ctx, query, userID, year, month, st).Scan(&dataJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil // absent
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s snapshot: %w", st, err)
	}
	return dataJSON, nil
}

// Delete removes an unlocked snapshot, reporting whether a row was
// removed. Locked snapshots must be unlocked first.
func (r *StatementsRepo) Delete(ctx context.Context, userID string, year, month int, st StatementType) (bool, error) {
	query := `
		DELETE FROM statement_snapshots
		WHERE user_id = $1 AND fiscal_year = $2 AND month = $3 AND statement_type = $4
		  AND is_locked = FALSE
	`
	tag, err := r.pool.Exec(ctx, query, userID, year, month, st)
	if err != nil {
		return false, fmt.Errorf("failed to delete %s: %w", st, err)
	}
	return tag.RowsAffected() > 0, nil
}

// Approve locks a snapshot. The conditional UPDATE is the atomicity
// guarantee: of two concurrent approvals exactly one sees a row flip.
func (r *StatementsRepo) Approve(ctx context.Context, userID string, year, month int, st StatementType) (bool, error) {
	query := `
		UPDATE statement_snapshots
		SET is_locked = TRUE, updated_at = NOW()
		WHERE user_id = $1 AND fiscal_year = $2 AND month = $3 AND statement_type = $4
		  AND is_locked = FALSE
	`
	tag, err := r.pool.Exec(ctx, query, userID, year, month, st)
	if err != nil {
		return false, fmt.Errorf("failed to approve %s: %w", st, err)
	}
	return tag.RowsAffected() > 0, nil
}

// Unlock clears the lock so the snapshot becomes writable again.
func (r *StatementsRepo) Unlock(ctx context.Context, userID string, year, month int, st StatementType) (bool, error) {
	query := `
		UPDATE statement_snapshots
		SET is_locked = FALSE, updated_at = NOW()
		WHERE user_id = $1 AND fiscal_year = $2 AND month = $3 AND statement_type = $4
		  AND is_locked = TRUE
	`
	tag, err := r.pool.Exec(ctx, query, userID, year, month, st)
	if err != nil {
		return false, fmt.Errorf("failed to unlock %s: %w", st, err)
	}
	return tag.RowsAffected() > 0, nil
}

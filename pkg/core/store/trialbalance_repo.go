package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"finstat_engine/pkg/core/ledger"
)

// TrialBalanceRepo persists trial balances keyed by (user_id, fiscal_year, month).
type TrialBalanceRepo struct {
	pool *pgxpool.Pool
}

// NewTrialBalanceRepo creates a repo backed by the given pool.
func NewTrialBalanceRepo(pool *pgxpool.Pool) *TrialBalanceRepo {
	return &TrialBalanceRepo{pool: pool}
}

// Save upserts one period's trial balance. An approved trial balance is
// immutable until explicitly unapproved.
func (r *TrialBalanceRepo) Save(ctx context.Context, userID string, tb *ledger.TrialBalance) error {
	dataJSON, err := json.Marshal(tb.Accounts)
	if err != nil {
		return fmt.Errorf("failed to marshal accounts: %w", err)
	}

	query := `
		INSERT INTO trial_balances (
			user_id, fiscal_year, month, accounts, is_approved
		) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, fiscal_year, month)
		DO UPDATE SET
			accounts = EXCLUDED.accounts,
			is_approved = EXCLUDED.is_approved,
			updated_at = NOW()
		WHERE trial_balances.is_approved = FALSE
	`
	tag, err := r.pool.Exec(ctx, query, userID, tb.Year, tb.Month, dataJSON, tb.IsApproved)
	if err != nil {
		return fmt.Errorf("failed to save trial balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("trial balance %d-%02d is approved and cannot be overwritten", tb.Year, tb.Month)
	}
	return nil
}

// Load fetches one period's trial balance, nil when absent.
func (r *TrialBalanceRepo) Load(ctx context.Context, userID string, year, month int) (*ledger.TrialBalance, error) {
	query := `
		SELECT accounts, is_approved
		FROM trial_balances
		WHERE user_id = $1 AND fiscal_year = $2 AND month = $3
		LIMIT 1
	`
	var dataJSON []byte
	var approved bool
	err := r.pool.QueryRow(ctx, query, userID, year, month).Scan(&dataJSON, &approved)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil // absent
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load trial balance: %w", err)
	}

	tb := &ledger.TrialBalance{Year: year, Month: month, IsApproved: approved}
	if err := json.Unmarshal(dataJSON, &tb.Accounts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal accounts: %w", err)
	}
	return tb, nil
}

// Approve marks a period's trial balance approved, conditionally so two
// concurrent approvals cannot both report success.
func (r *TrialBalanceRepo) Approve(ctx context.Context, userID string, year, month int) (bool, error) {
	query := `
		UPDATE trial_balances
		SET is_approved = TRUE, updated_at = NOW()
		WHERE user_id = $1 AND fiscal_year = $2 AND month = $3 AND is_approved = FALSE
	`
	tag, err := r.pool.Exec(ctx, query, userID, year, month)
	if err != nil {
		return false, fmt.Errorf("failed to approve trial balance: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListPeriods returns the (year, month) pairs a user has uploaded,
// newest first.
func (r *TrialBalanceRepo) ListPeriods(ctx context.Context, userID string) ([][2]int, error) {
	query := `
		SELECT fiscal_year, month
		FROM trial_balances
		WHERE user_id = $1
		ORDER BY fiscal_year DESC, month DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	defer rows.Close()

	var periods [][2]int
	for rows.Next() {
		var year, month int
		if err := rows.Scan(&year, &month); err != nil {
			return nil, err
		}
		periods = append(periods, [2]int{year, month})
	}
	return periods, rows.Err()
}

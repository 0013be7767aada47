package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"finstat_engine/pkg/core/scenario"
)

// ScenarioRepo persists simulation scenarios keyed by their UUID.
type ScenarioRepo struct {
	pool *pgxpool.Pool
}

// NewScenarioRepo creates a repo backed by the given pool.
func NewScenarioRepo(pool *pgxpool.Pool) *ScenarioRepo {
	return &ScenarioRepo{pool: pool}
}

// Save upserts a scenario. Scenarios are working drafts, so unlike
// statement snapshots they can always be overwritten.
func (r *ScenarioRepo) Save(ctx context.Context, userID string, sc *scenario.SimulationScenario) error {
	dataJSON, err := json.Marshal(sc)
	if err != nil {
		return fmt.Errorf("failed to marshal scenario: %w", err)
	}

	query := `
		INSERT INTO scenarios (id, user_id, name, data)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			data = EXCLUDED.data,
			updated_at = NOW()
	`
	_, err = r.pool.Exec(ctx, query, sc.ID, userID, sc.Name, dataJSON)
	if err != nil {
		return fmt.Errorf("failed to save scenario: %w", err)
	}
	return nil
}

// Load fetches a scenario by id, nil when absent.
func (r *ScenarioRepo) Load(ctx context.Context, id string) (*scenario.SimulationScenario, error) {
	query := `SELECT data FROM scenarios WHERE id = $1 LIMIT 1`
	var dataJSON []byte
	err := r.pool.QueryRow(ctx, query, id).Scan(&dataJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil // absent
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load scenario: %w", err)
	}

	var sc scenario.SimulationScenario
	if err := json.Unmarshal(dataJSON, &sc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scenario: %w", err)
	}
	return &sc, nil
}

// ListByUser returns a user's scenario ids and names, newest first.
func (r *ScenarioRepo) ListByUser(ctx context.Context, userID string) (map[string]string, error) {
	query := `
		SELECT id, name
		FROM scenarios
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer rows.Close()

	scenarios := make(map[string]string)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		scenarios[id] = name
	}
	return scenarios, rows.Err()
}

// Delete removes a scenario, reporting whether a row existed.
func (r *ScenarioRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM scenarios WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete scenario: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

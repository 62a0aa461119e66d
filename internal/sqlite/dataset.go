package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"time"

	"github.com/chemviz/equipview/internal/domain/dataset"
	"github.com/chemviz/equipview/internal/repository"
)

// Fixed-width UTC layout so uploaded_at compares correctly in SQL ORDER BY
// and in the eviction subquery.
const timeLayout = "2006-01-02 15:04:05.000000000"

// DatasetRepository implements repository.DatasetRepository for SQLite
type DatasetRepository struct {
	db *DB
}

// NewDatasetRepository creates a new DatasetRepository
func NewDatasetRepository(db *DB) *DatasetRepository {
	return &DatasetRepository{db: db}
}

// StoreAndEvict persists the dataset and its rows, then restores the
// owner's retention window inside the same transaction. The count is
// re-checked after the insert and eviction loops until it holds, so
// concurrent inserts for the same owner cannot leave the window exceeded.
func (r *DatasetRepository) StoreAndEvict(ctx context.Context, ds *dataset.Dataset, window int) (int, error) {
	distribution, err := json.Marshal(ds.Aggregate.TypeDistribution)
	if err != nil {
		return 0, fmt.Errorf("failed to encode type distribution: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insertDataset := `
		INSERT INTO datasets (id, owner_id, name, uploaded_at, total_records,
			avg_flowrate, avg_pressure, avg_temperature, type_distribution)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, insertDataset,
		ds.ID,
		ds.OwnerID,
		ds.Name,
		ds.UploadedAt.UTC().Format(timeLayout),
		ds.Aggregate.TotalRecords,
		ds.Aggregate.AvgFlowrate,
		ds.Aggregate.AvgPressure,
		ds.Aggregate.AvgTemperature,
		string(distribution),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create dataset: %w", err)
	}

	insertRow := `
		INSERT INTO equipment (dataset_id, position, name, type, flowrate, pressure, temperature)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	stmt, err := tx.PrepareContext(ctx, insertRow)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare equipment insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range ds.Records {
		if _, err := stmt.ExecContext(ctx, ds.ID, i, rec.Name, rec.Type, rec.Flowrate, rec.Pressure, rec.Temperature); err != nil {
			return 0, fmt.Errorf("failed to insert equipment row %d: %w", i, err)
		}
	}

	evicted := 0
	for {
		var count int
		err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM datasets WHERE owner_id = ?`, ds.OwnerID).Scan(&count)
		if err != nil {
			return 0, fmt.Errorf("failed to count datasets: %w", err)
		}
		if count <= window {
			break
		}

		// Oldest first, ties broken by smallest id.
		_, err = tx.ExecContext(ctx, `
			DELETE FROM datasets WHERE id = (
				SELECT id FROM datasets
				WHERE owner_id = ?
				ORDER BY uploaded_at ASC, id ASC
				LIMIT 1
			)
		`, ds.OwnerID)
		if err != nil {
			return 0, fmt.Errorf("failed to evict oldest dataset: %w", err)
		}
		evicted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return evicted, nil
}

// Get retrieves a dataset with its rows in source order. Absent datasets
// and datasets of other owners are both reported as ErrNotFound.
func (r *DatasetRepository) Get(ctx context.Context, ownerID, id string) (*dataset.Dataset, error) {
	query := `
		SELECT id, owner_id, name, uploaded_at, total_records,
			avg_flowrate, avg_pressure, avg_temperature, type_distribution
		FROM datasets
		WHERE id = ? AND owner_id = ?
	`

	var ds dataset.Dataset
	var distribution, uploadedAt string
	err := r.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&ds.ID,
		&ds.OwnerID,
		&ds.Name,
		&uploadedAt,
		&ds.Aggregate.TotalRecords,
		&ds.Aggregate.AvgFlowrate,
		&ds.Aggregate.AvgPressure,
		&ds.Aggregate.AvgTemperature,
		&distribution,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get dataset: %w", err)
	}

	if err := json.Unmarshal([]byte(distribution), &ds.Aggregate.TypeDistribution); err != nil {
		return nil, fmt.Errorf("failed to decode type distribution: %w", err)
	}
	if ds.UploadedAt, err = time.ParseInLocation(timeLayout, uploadedAt, time.UTC); err != nil {
		return nil, fmt.Errorf("failed to parse uploaded_at: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT name, type, flowrate, pressure, temperature
		FROM equipment
		WHERE dataset_id = ?
		ORDER BY position ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query equipment: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec dataset.EquipmentRecord
		if err := rows.Scan(&rec.Name, &rec.Type, &rec.Flowrate, &rec.Pressure, &rec.Temperature); err != nil {
			return nil, fmt.Errorf("failed to scan equipment row: %w", err)
		}
		ds.Records = append(ds.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating equipment rows: %w", err)
	}

	return &ds, nil
}

// Delete removes a dataset owned by ownerID; equipment rows cascade.
func (r *DatasetRepository) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM datasets WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete dataset: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// ListRecent returns the owner's dataset summaries, newest first.
func (r *DatasetRepository) ListRecent(ctx context.Context, ownerID string, limit int) ([]dataset.Summary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, uploaded_at, total_records
		FROM datasets
		WHERE owner_id = ?
		ORDER BY uploaded_at DESC, id DESC
		LIMIT ?
	`, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}
	defer rows.Close()

	var summaries []dataset.Summary
	for rows.Next() {
		var s dataset.Summary
		var uploadedAt string
		if err := rows.Scan(&s.ID, &s.Name, &uploadedAt, &s.TotalRecords); err != nil {
			return nil, fmt.Errorf("failed to scan dataset summary: %w", err)
		}
		if s.UploadedAt, err = time.ParseInLocation(timeLayout, uploadedAt, time.UTC); err != nil {
			return nil, fmt.Errorf("failed to parse uploaded_at: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dataset rows: %w", err)
	}

	return summaries, nil
}

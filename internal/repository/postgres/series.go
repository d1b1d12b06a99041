package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/RMahshie/freqplot/internal/repository"
	"github.com/RMahshie/freqplot/pkg/models"
)

//go:embed schema.sql
var schema string

// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// Migrate creates the series table if it does not exist
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// PostgresSeriesRepository implements SeriesRepository for PostgreSQL
type PostgresSeriesRepository struct {
	db *sql.DB
}

// NewPostgresSeriesRepository creates a new PostgreSQL series repository
func NewPostgresSeriesRepository(db *sql.DB) repository.SeriesRepository {
	return &PostgresSeriesRepository{db: db}
}

// Create inserts a new series record
func (r *PostgresSeriesRepository) Create(ctx context.Context, series *models.Series) error {
	if err := series.Validate(); err != nil {
		return err
	}
	if series.ID == "" {
		series.ID = uuid.New().String()
	}

	samples, err := json.Marshal(series.Samples)
	if err != nil {
		return fmt.Errorf("failed to marshal samples: %w", err)
	}

	query := `
		INSERT INTO frequency_series (id, name, samples)
		VALUES ($1, $2, $3)`

	_, err = r.db.ExecContext(ctx, query, series.ID, series.Name, string(samples))
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return &models.SeriesError{Series: series.Name, Err: models.ErrDuplicateSeries}
	}
	if err != nil {
		return fmt.Errorf("failed to insert series: %w", err)
	}
	return nil
}

// GetByName retrieves a series by name
func (r *PostgresSeriesRepository) GetByName(ctx context.Context, name string) (*models.Series, error) {
	query := `
		SELECT id, name, samples
		FROM frequency_series
		WHERE name = $1`

	series, err := scanSeries(r.db.QueryRowContext(ctx, query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", models.ErrSeriesNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return series, nil
}

// List retrieves every series ordered by name
func (r *PostgresSeriesRepository) List(ctx context.Context) ([]*models.Series, error) {
	query := `
		SELECT id, name, samples
		FROM frequency_series
		ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list series: %w", err)
	}
	defer rows.Close()

	var out []*models.Series
	for rows.Next() {
		series, err := scanSeries(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, series)
	}
	return out, rows.Err()
}

// Delete removes a series by name
func (r *PostgresSeriesRepository) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM frequency_series WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("failed to delete series: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", models.ErrSeriesNotFound, name)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSeries(row scanner) (*models.Series, error) {
	var series models.Series
	var samples []byte

	if err := row.Scan(&series.ID, &series.Name, &samples); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(samples, &series.Samples); err != nil {
		return nil, fmt.Errorf("failed to unmarshal samples for %q: %w", series.Name, err)
	}
	return &series, nil
}

// Package app wires configuration into the repository, storage and render service.
package app

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/freqplot/internal/chart"
	"github.com/RMahshie/freqplot/internal/config"
	"github.com/RMahshie/freqplot/internal/processing"
	"github.com/RMahshie/freqplot/internal/repository"
	"github.com/RMahshie/freqplot/internal/repository/memory"
	"github.com/RMahshie/freqplot/internal/repository/postgres"
	"github.com/RMahshie/freqplot/internal/storage"
)

type App struct {
	Series repository.SeriesRepository
	Render processing.RenderService

	db *sql.DB
}

// New builds the application from cfg. Close releases the database, if any.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}

	switch cfg.Database.Source {
	case "postgres":
		db, err := sql.Open("postgres", cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		a.db = db
		a.Series = postgres.NewPostgresSeriesRepository(db)
		log.Info().Msg("Using PostgreSQL series repository")
	default:
		a.Series = memory.NewStubRepository()
		log.Debug().Msg("Using built-in sample series")
	}

	var s3Service storage.S3Service
	if cfg.AWS.Publish() {
		svc, err := storage.NewS3Service(storage.S3Config{
			Bucket:    cfg.AWS.S3Bucket,
			Endpoint:  cfg.AWS.S3Endpoint,
			Region:    cfg.AWS.Region,
			AccessKey: cfg.AWS.AccessKeyID,
			SecretKey: cfg.AWS.SecretAccessKey,
		})
		if err != nil {
			a.Close()
			return nil, err
		}
		s3Service = svc
		log.Info().Str("bucket", cfg.AWS.S3Bucket).Msg("Chart publishing enabled")
	}

	a.Render = processing.NewRenderService(a.Series, s3Service, chart.DefaultConfig())
	return a, nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

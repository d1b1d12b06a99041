package processing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/freqplot/internal/chart"
	"github.com/RMahshie/freqplot/internal/repository"
	"github.com/RMahshie/freqplot/internal/storage"
	"github.com/RMahshie/freqplot/pkg/models"
)

// DefaultOutputFile is where the runner writes the chart unless told otherwise.
const DefaultOutputFile = "logscale-sample.svg"

// DefaultSeries is the order series are drawn in, which is also legend order.
var DefaultSeries = []string{"A", "B"}

var ErrNoSeries = errors.New("no series requested")

// RunOptions configures a single chart run
type RunOptions struct {
	OutputFile  string
	SeriesNames []string
}

type RenderService interface {
	// Run renders the requested series and writes the chart to disk,
	// publishing it when storage is configured.
	Run(ctx context.Context, opts RunOptions) (*models.RenderResult, error)
	// Render draws the requested series into w.
	Render(ctx context.Context, w io.Writer, names []string) (*models.Dataset, error)
}

type renderService struct {
	repository repository.SeriesRepository
	s3         storage.S3Service // nil disables publishing
	chart      chart.Config
	now        func() time.Time
}

func NewRenderService(repo repository.SeriesRepository, s3Service storage.S3Service, cfg chart.Config) RenderService {
	return &renderService{
		repository: repo,
		s3:         s3Service,
		chart:      cfg,
		now:        time.Now,
	}
}

func (s *renderService) Run(ctx context.Context, opts RunOptions) (*models.RenderResult, error) {
	if opts.OutputFile == "" {
		opts.OutputFile = DefaultOutputFile
	}
	if len(opts.SeriesNames) == 0 {
		opts.SeriesNames = DefaultSeries
	}

	// Step 1: Render into memory
	var buf bytes.Buffer
	ds, err := s.Render(ctx, &buf, opts.SeriesNames)
	if err != nil {
		return nil, err
	}

	// Step 2: Write the file
	if err := writeFile(opts.OutputFile, buf.Bytes()); err != nil {
		return nil, err
	}
	log.Info().
		Str("path", opts.OutputFile).
		Str("size", humanize.Bytes(uint64(buf.Len()))).
		Strs("series", ds.Names()).
		Msg("Chart written")

	result := &models.RenderResult{
		Path:      opts.OutputFile,
		Bytes:     int64(buf.Len()),
		Series:    ds.Names(),
		CreatedAt: s.now(),
	}

	// Step 3: Publish
	if s.s3 != nil {
		if err := s.publish(ctx, result, buf.Bytes()); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (s *renderService) Render(ctx context.Context, w io.Writer, names []string) (*models.Dataset, error) {
	if len(names) == 0 {
		return nil, ErrNoSeries
	}

	ds, err := repository.LoadDataset(ctx, s.repository, names)
	if err != nil {
		return nil, err
	}

	c, err := chart.New(s.chart)
	if err != nil {
		return nil, err
	}
	for _, series := range ds.Series() {
		if err := c.AddSeries(series); err != nil {
			return nil, fmt.Errorf("failed to add series: %w", err)
		}
	}

	n, err := c.Render(w)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	log.Debug().Int64("bytes", n).Int("series", ds.Len()).Msg("Chart rendered")

	return ds, nil
}

func (s *renderService) publish(ctx context.Context, result *models.RenderResult, body []byte) error {
	key := fmt.Sprintf("charts/%s/%s", uuid.New(), filepath.Base(result.Path))
	if err := s.s3.UploadChart(ctx, key, storage.SVGContentType, body); err != nil {
		return err
	}

	url, err := s.s3.GenerateDownloadURL(ctx, key)
	if err != nil {
		return err
	}

	result.S3Key = key
	result.DownloadURL = url
	log.Info().Str("key", key).Msg("Chart published")
	return nil
}

func writeFile(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

package handlers

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/freqplot/internal/chart"
	"github.com/RMahshie/freqplot/internal/processing"
	"github.com/RMahshie/freqplot/internal/repository"
	"github.com/RMahshie/freqplot/internal/storage"
	"github.com/RMahshie/freqplot/pkg/models"
)

// ChartHandler handles chart and series HTTP requests
type ChartHandler struct {
	repo      repository.SeriesRepository
	renderSvc processing.RenderService
}

// NewChartHandler creates a new chart handler
func NewChartHandler(repo repository.SeriesRepository, renderSvc processing.RenderService) *ChartHandler {
	return &ChartHandler{
		repo:      repo,
		renderSvc: renderSvc,
	}
}

// RenderChart renders the requested series as an SVG document
func (h *ChartHandler) RenderChart(ctx context.Context, req *models.RenderChartRequest) (*models.RenderChartResponse, error) {
	names := splitNames(req.Series)
	log.Info().Strs("series", names).Msg("Rendering chart")

	var buf bytes.Buffer
	if _, err := h.renderSvc.Render(ctx, &buf, names); err != nil {
		if errors.Is(err, models.ErrDuplicateSeries) {
			return nil, huma.Error400BadRequest(err.Error(), err)
		}
		return nil, toHTTPError("Failed to render chart", err)
	}

	return &models.RenderChartResponse{
		ContentType: storage.SVGContentType,
		Body:        buf.Bytes(),
	}, nil
}

// ListSeries returns every stored series
func (h *ChartHandler) ListSeries(ctx context.Context, req *struct{}) (*models.ListSeriesResponse, error) {
	series, err := h.repo.List(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list series", err)
	}

	resp := &models.ListSeriesResponse{}
	resp.Body.Series = series
	return resp, nil
}

// GetSeries returns a single series by name
func (h *ChartHandler) GetSeries(ctx context.Context, req *models.SeriesNameRequest) (*models.SeriesResponse, error) {
	series, err := h.repo.GetByName(ctx, req.Name)
	if err != nil {
		return nil, toHTTPError("Failed to get series", err)
	}
	return &models.SeriesResponse{Body: series}, nil
}

// CreateSeries stores a new series
func (h *ChartHandler) CreateSeries(ctx context.Context, req *models.CreateSeriesRequest) (*models.SeriesResponse, error) {
	series := req.Body
	series.ID = ""

	if err := h.repo.Create(ctx, &series); err != nil {
		return nil, toHTTPError("Failed to create series", err)
	}
	log.Info().Str("name", series.Name).Str("id", series.ID).Int("samples", len(series.Samples)).Msg("Series created")

	return &models.SeriesResponse{Body: &series}, nil
}

// DeleteSeries removes a series by name
func (h *ChartHandler) DeleteSeries(ctx context.Context, req *models.SeriesNameRequest) (*struct{}, error) {
	if err := h.repo.Delete(ctx, req.Name); err != nil {
		return nil, toHTTPError("Failed to delete series", err)
	}
	log.Info().Str("name", req.Name).Msg("Series deleted")
	return &struct{}{}, nil
}

// toHTTPError maps domain errors onto HTTP status codes
func toHTTPError(msg string, err error) error {
	switch {
	case errors.Is(err, models.ErrSeriesNotFound):
		return huma.Error404NotFound(err.Error(), err)
	case errors.Is(err, models.ErrDuplicateSeries):
		return huma.Error409Conflict(err.Error(), err)
	case errors.Is(err, models.ErrUnnamedSeries),
		errors.Is(err, models.ErrEmptySeries),
		errors.Is(err, models.ErrNonPositiveFrequency),
		errors.Is(err, models.ErrOutOfLogDomain),
		errors.Is(err, processing.ErrNoSeries):
		return huma.Error400BadRequest(err.Error(), err)
	case errors.Is(err, chart.ErrInvalidConfig):
		return huma.Error500InternalServerError("Chart misconfigured", err)
	}
	log.Error().Err(err).Msg(msg)
	return huma.Error500InternalServerError(msg, err)
}

func splitNames(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/RMahshie/freqplot/internal/api/handlers"
	"github.com/RMahshie/freqplot/internal/processing"
	"github.com/RMahshie/freqplot/internal/repository"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(api huma.API, seriesRepo repository.SeriesRepository, renderSvc processing.RenderService) {
	// Initialize handlers
	chartHandler := handlers.NewChartHandler(seriesRepo, renderSvc)

	// Register chart routes
	huma.Register(api, huma.Operation{
		OperationID: "renderLogScaleChart",
		Method:      http.MethodGet,
		Path:        "/api/charts/logscale",
		Summary:     "Render log-scale chart",
		Description: "Renders the requested series as a log-scale frequency response SVG",
		Tags:        []string{"Charts"},
		Responses: map[string]*huma.Response{
			"200": {
				Description: "SVG chart",
				Content:     map[string]*huma.MediaType{"image/svg+xml": {}},
			},
		},
	}, chartHandler.RenderChart)

	// Register series routes
	huma.Register(api, huma.Operation{
		OperationID: "listSeries",
		Method:      http.MethodGet,
		Path:        "/api/series",
		Summary:     "List series",
		Description: "Returns every stored frequency response series",
		Tags:        []string{"Series"},
	}, chartHandler.ListSeries)

	huma.Register(api, huma.Operation{
		OperationID: "getSeries",
		Method:      http.MethodGet,
		Path:        "/api/series/{name}",
		Summary:     "Get series",
		Description: "Returns a single series by name",
		Tags:        []string{"Series"},
	}, chartHandler.GetSeries)

	huma.Register(api, huma.Operation{
		OperationID:   "createSeries",
		Method:        http.MethodPost,
		Path:          "/api/series",
		Summary:       "Create series",
		Description:   "Stores a new frequency response series",
		Tags:          []string{"Series"},
		DefaultStatus: http.StatusCreated,
	}, chartHandler.CreateSeries)

	huma.Register(api, huma.Operation{
		OperationID:   "deleteSeries",
		Method:        http.MethodDelete,
		Path:          "/api/series/{name}",
		Summary:       "Delete series",
		Description:   "Removes a series by name",
		Tags:          []string{"Series"},
		DefaultStatus: http.StatusNoContent,
	}, chartHandler.DeleteSeries)
}

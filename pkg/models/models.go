package models

import (
	"time"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

// RenderChartRequest selects the series to plot, in legend order
type RenderChartRequest struct {
	Series string `query:"series" default:"A,B" example:"A,B" doc:"Comma-separated series names in drawing order"`
}

// RenderChartResponse carries the rendered SVG document
type RenderChartResponse struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// CreateSeriesRequest represents a request to store a new series
type CreateSeriesRequest struct {
	Body Series
}

// SeriesResponse wraps a single stored series
type SeriesResponse struct {
	Body *Series
}

// ListSeriesResponse lists every stored series
type ListSeriesResponse struct {
	Body struct {
		Series []*Series `json:"series" doc:"Stored series ordered by name"`
	}
}

// SeriesNameRequest addresses a series by name
type SeriesNameRequest struct {
	Name string `path:"name" doc:"Series name"`
}

// RenderResult describes a finished render
type RenderResult struct {
	Path        string    `json:"path" doc:"Local path of the written chart"`
	Bytes       int64     `json:"bytes" doc:"Size of the SVG document"`
	Series      []string  `json:"series" doc:"Series drawn, in legend order"`
	S3Key       string    `json:"s3_key,omitempty" doc:"Object key when the chart was published"`
	DownloadURL string    `json:"download_url,omitempty" doc:"Pre-signed download URL when published"`
	CreatedAt   time.Time `json:"created_at" doc:"Render timestamp"`
}

package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"cpipulse/internal/cpi"
	apierrors "cpipulse/internal/errors"
	"cpipulse/internal/exporter"
)

// DashboardHandler serves the dashboard data API: derived tables, summary
// metrics, correlation, trendlines, uploads and CSV downloads.
type DashboardHandler struct {
	service        DashboardServiceInterface
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
	csvWriter      *exporter.CSVWriter
	validate       *validator.Validate
	maxUploadBytes int64
	now            func() time.Time
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, maxUploadBytes int64) *DashboardHandler {
	return &DashboardHandler{
		service:        service,
		logger:         logger.With(slog.String("component", "dashboard_handler")),
		errorHandler:   errorHandler,
		csvWriter:      exporter.NewCSVWriter(logger),
		validate:       validator.New(),
		maxUploadBytes: maxUploadBytes,
		now:            time.Now,
	}
}

// Routes returns the dashboard routes.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/bounds", h.GetBounds)
	r.Get("/summary", h.GetSummary)
	r.Get("/table", h.GetTable)
	r.Get("/correlation", h.GetCorrelation)
	r.Get("/exchange-stats", h.GetExchangeStats)
	r.Get("/trendlines", h.GetTrendlines)
	r.Get("/download", h.Download)

	r.Post("/upload", h.Upload)
	r.Post("/reset", h.Reset)

	return r
}

// rangeQuery carries the date-range filter from the query string.
type rangeQuery struct {
	From string `validate:"omitempty,datetime=2006-01-02"`
	To   string `validate:"omitempty,datetime=2006-01-02"`
}

// parseRange validates from/to query parameters and fills missing bounds
// from the loaded dataset. The UI enforces bounds within the data; the
// API re-checks only from <= to.
func (h *DashboardHandler) parseRange(r *http.Request) (cpi.DateRange, *apierrors.APIError) {
	q := rangeQuery{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}
	if err := h.validate.Struct(q); err != nil {
		return cpi.DateRange{}, apierrors.ErrValidation("from/to", "dates must use the 2006-01-02 layout")
	}

	info := h.service.Info()
	dr := cpi.DateRange{Start: info.MinDate, End: info.MaxDate}

	if q.From != "" {
		start, _ := time.Parse("2006-01-02", q.From)
		dr.Start = start
	}
	if q.To != "" {
		end, _ := time.Parse("2006-01-02", q.To)
		dr.End = end
	}

	if dr.Start.After(dr.End) {
		return cpi.DateRange{}, apierrors.ErrValidation("from", "start date must not be after end date")
	}
	return dr, nil
}

// GetBounds returns the loaded dataset's date bounds and provenance.
func (h *DashboardHandler) GetBounds(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Info())
}

// summaryResponse pairs the numeric metrics with their display form.
type summaryResponse struct {
	Values  cpi.Summary          `json:"values"`
	Display cpi.FormattedSummary `json:"display"`
}

// GetSummary returns the header metrics for the selected range.
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	dr, apiErr := h.parseRange(r)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	summary, err := h.service.Summary(r.Context(), dr)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, summaryResponse{Values: summary, Display: summary.Format()})
}

// GetTable returns the filtered table. With derived=true every computed
// column is included; otherwise only the raw columns are returned.
func (h *DashboardHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	dr, apiErr := h.parseRange(r)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	table, err := h.service.Table(r.Context(), dr)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	if r.URL.Query().Get("derived") == "true" {
		render.JSON(w, r, table)
		return
	}

	raw := make([]cpi.Observation, len(table))
	for i, row := range table {
		raw[i] = row.Observation
	}
	render.JSON(w, r, raw)
}

// GetCorrelation returns the pairwise Pearson matrix for the range.
func (h *DashboardHandler) GetCorrelation(w http.ResponseWriter, r *http.Request) {
	dr, apiErr := h.parseRange(r)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	matrix, err := h.service.Correlation(r.Context(), dr)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, matrix)
}

// GetExchangeStats returns mean/min/max of the exchange rate for the range.
func (h *DashboardHandler) GetExchangeStats(w http.ResponseWriter, r *http.Request) {
	dr, apiErr := h.parseRange(r)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	stats, err := h.service.ExchangeStats(r.Context(), dr)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, stats)
}

// GetTrendlines returns the OLS fits for the two scatter views.
func (h *DashboardHandler) GetTrendlines(w http.ResponseWriter, r *http.Request) {
	dr, apiErr := h.parseRange(r)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	lines, err := h.service.Trendlines(r.Context(), dr)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, lines)
}

// Upload replaces the session dataset with an uploaded CSV. The file is
// read from the "file" multipart field, or from the raw body when the
// request is not multipart.
func (h *DashboardHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	reader := r.Body
	if err := r.ParseMultipartForm(h.maxUploadBytes); err == nil {
		file, _, err := r.FormFile("file")
		if err != nil {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("file", "multipart field \"file\" is required"))
			return
		}
		defer file.Close()
		reader = file
	}

	info, err := h.service.ReplaceDataset(r.Context(), reader)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "dataset uploaded",
		slog.Int("records", info.Records))
	render.JSON(w, r, info)
}

// Reset restores the sample dataset.
func (h *DashboardHandler) Reset(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.ResetSample(r.Context()))
}

// Download streams the currently displayed table as a CSV attachment
// named with the current date.
func (h *DashboardHandler) Download(w http.ResponseWriter, r *http.Request) {
	dr, apiErr := h.parseRange(r)
	if apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	table, err := h.service.Table(r.Context(), dr)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	filename := exporter.DownloadFilename(h.now())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))

	opts := exporter.WriteOptions{
		IncludeDerived: r.URL.Query().Get("derived") == "true",
		BOMPrefix:      true,
	}
	if err := h.csvWriter.Write(w, table, opts); err != nil {
		// Headers are already sent; log instead of re-rendering.
		h.logger.ErrorContext(r.Context(), "CSV download failed mid-stream",
			slog.String("error", err.Error()))
	}
}

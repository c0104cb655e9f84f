// Package http contains the chi handlers of the report API: workbook
// upload, summary and chart queries, and report downloads.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "fleetpulse/internal/errors"
	"fleetpulse/internal/fleet"
	"fleetpulse/internal/middleware"
	"fleetpulse/internal/services"
)

// uploadField is the multipart form field carrying the workbook.
const uploadField = "file"

// Download filenames and content types.
const (
	excelFilename    = "Fleet_Report.xlsx"
	pdfFilename      = "Fleet_Report.pdf"
	excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType   = "application/pdf"
)

// WorkbookHandler handles workbook upload, summary, chart, and export
// requests.
type WorkbookHandler struct {
	service       ReportServiceInterface
	logger        *slog.Logger
	errorHandler  *apierrors.ErrorHandler
	metrics       *middleware.Metrics
	validate      *validator.Validate
	maxUploadSize int64
}

// NewWorkbookHandler creates a new workbook handler.
func NewWorkbookHandler(service ReportServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, metrics *middleware.Metrics, maxUploadSize int64) *WorkbookHandler {
	return &WorkbookHandler{
		service:       service,
		logger:        logger.With(slog.String("handler", "workbook")),
		errorHandler:  errorHandler,
		metrics:       metrics,
		validate:      validator.New(),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the workbook routes.
func (h *WorkbookHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Upload)

	r.Route("/{workbookID}", func(r chi.Router) {
		r.Use(h.WorkbookCtx)
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/summary", h.GetSummary)
		r.Delete("/", h.DeleteWorkbook)
		r.Route("/charts", func(r chi.Router) {
			r.Get("/profit", h.GetProfitChart)
			r.Get("/expenses", h.GetExpenseBreakdown)
		})
		r.Get("/export/excel", h.ExportExcel)
		r.Get("/export/pdf", h.ExportPDF)
	})

	return r
}

// WorkbookCtx validates the workbook ID path parameter.
func (h *WorkbookHandler) WorkbookCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "workbookID")
		if err := h.validate.Var(id, "required,uuid4"); err != nil {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("workbook_id", "Workbook ID must be a valid UUID"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Upload handles POST /api/workbooks. The request is a multipart form with
// the workbook in the "file" field; the response carries the workbook ID
// and the filter defaults derived from the Income sheet.
func (h *WorkbookHandler) Upload(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "workbook upload started",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.Int64("content_length", r.ContentLength))

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			h.errorHandler.HandleError(w, r, apierrors.ErrPayloadTooLarge)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation(uploadField, "Upload must carry a workbook in the 'file' field"))
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".xlsx" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation(uploadField, fmt.Sprintf("Unsupported file type %q, expected .xlsx", ext)))
		return
	}

	result, err := h.service.Upload(r.Context(), file)
	if err != nil {
		if errors.Is(err, fleet.ErrMissingIncomeSheet) {
			h.errorHandler.HandleError(w, r, apierrors.ErrMissingIncomeSheet)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	h.metrics.CountUpload()

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   result,
	})
}

// GetSummary handles GET /api/workbooks/{id}/summary.
func (h *WorkbookHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	data, err := h.service.Summary(r.Context(), chi.URLParam(r, "workbookID"), filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   data,
	})
}

// GetProfitChart handles GET /api/workbooks/{id}/charts/profit.
func (h *WorkbookHandler) GetProfitChart(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	bars, err := h.service.ProfitChart(r.Context(), chi.URLParam(r, "workbookID"), filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   bars,
		"count":  len(bars),
	})
}

// GetExpenseBreakdown handles GET /api/workbooks/{id}/charts/expenses.
// The truck query parameter selects whose categories to slice.
func (h *WorkbookHandler) GetExpenseBreakdown(w http.ResponseWriter, r *http.Request) {
	truck := r.URL.Query().Get("truck")
	if truck == "" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("truck", "Truck identifier is required"))
		return
	}

	filter, err := h.parseFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	slices, err := h.service.ExpenseBreakdown(r.Context(), chi.URLParam(r, "workbookID"), filter, truck)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"truck":  truck,
		"data":   slices,
	})
}

// ExportExcel handles GET /api/workbooks/{id}/export/excel.
func (h *WorkbookHandler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "excel", excelFilename, excelContentType, h.service.ExportExcel)
}

// ExportPDF handles GET /api/workbooks/{id}/export/pdf.
func (h *WorkbookHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "pdf", pdfFilename, pdfContentType, h.service.ExportPDF)
}

// DeleteWorkbook handles DELETE /api/workbooks/{id}.
func (h *WorkbookHandler) DeleteWorkbook(w http.ResponseWriter, r *http.Request) {
	h.service.Delete(r.Context(), chi.URLParam(r, "workbookID"))
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
	})
}

type exportFunc func(ctx context.Context, id string, filter fleet.Filter) ([]byte, error)

func (h *WorkbookHandler) export(w http.ResponseWriter, r *http.Request, format, filename, contentType string, fn exportFunc) {
	filter, err := h.parseFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	data, err := fn(r.Context(), chi.URLParam(r, "workbookID"), filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	h.metrics.CountExport(format)

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write export response",
			slog.String("format", format),
			slog.String("error", err.Error()))
	}
}

// filterParams are the query parameters shared by summary, chart, and
// export requests.
type filterParams struct {
	From string `validate:"omitempty,datetime=2006-01-02"`
	To   string `validate:"omitempty,datetime=2006-01-02"`
}

// parseFilter reads the driver and date-range query parameters. Drivers
// arrive comma-separated; dates as 2006-01-02. A missing endpoint leaves
// the range open, which disables date filtering entirely.
func (h *WorkbookHandler) parseFilter(r *http.Request) (fleet.Filter, error) {
	q := r.URL.Query()

	params := filterParams{From: q.Get("from"), To: q.Get("to")}
	if err := h.validate.Struct(params); err != nil {
		return fleet.Filter{}, apierrors.ErrValidation("date_range", "Dates must use the 2006-01-02 format")
	}

	var filter fleet.Filter
	if raw := q.Get("drivers"); raw != "" {
		filter.Drivers = strings.Split(raw, ",")
	}
	if params.From != "" {
		filter.From, _ = time.Parse("2006-01-02", params.From)
	}
	if params.To != "" {
		filter.To, _ = time.Parse("2006-01-02", params.To)
	}
	return filter, nil
}

// mapServiceError translates service sentinels into API errors.
func (h *WorkbookHandler) mapServiceError(err error) error {
	switch {
	case errors.Is(err, services.ErrWorkbookNotFound):
		return apierrors.ErrWorkbookNotFound
	case errors.Is(err, services.ErrTruckNotFound):
		return apierrors.ErrTruckNotFound
	default:
		return err
	}
}

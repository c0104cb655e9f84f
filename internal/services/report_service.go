package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"fleetpulse/internal/exporter"
	"fleetpulse/internal/fleet"
	"fleetpulse/internal/session"
)

// previewRows is how many filtered income rows the summary response
// carries as a preview of the underlying data.
const previewRows = 5

// UploadResult describes a freshly parsed workbook: the handle the client
// uses for every later request plus the filter defaults derived from it.
type UploadResult struct {
	WorkbookID    string          `json:"workbook_id"`
	IncomeRows    int             `json:"income_rows"`
	Drivers       []string        `json:"drivers"`
	DateRange     fleet.DateRange `json:"date_range"`
	ExpenseSheets []string        `json:"expense_sheets"`
}

// ReportData is the full summary payload for one filter selection.
type ReportData struct {
	FilteredRows int                  `json:"filtered_rows"`
	Preview      []fleet.IncomeRecord `json:"preview"`
	Summary      []fleet.TruckSummary `json:"summary"`
	Table        []fleet.FormattedRow `json:"table"`
}

// ReportService orchestrates the report pipeline: parse on upload, then
// filter, aggregate, present, and export on demand. Every call recomputes
// from the stored workbook; there is no cached derived state.
type ReportService struct {
	store      *session.Store
	aggregator *fleet.Aggregator
	logger     *slog.Logger
}

// NewReportService creates a report service backed by the given store.
func NewReportService(store *session.Store, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		store:      store,
		aggregator: fleet.NewAggregator(logger),
		logger:     logger.With(slog.String("component", "report_service")),
	}
}

// Upload parses an uploaded workbook and stores it. A workbook without an
// Income sheet surfaces fleet.ErrMissingIncomeSheet, the one fatal
// condition of the pipeline.
func (s *ReportService) Upload(ctx context.Context, r io.Reader) (*UploadResult, error) {
	wb, err := fleet.ParseWorkbook(r, s.logger)
	if err != nil {
		return nil, fmt.Errorf("parse workbook: %w", err)
	}

	id := s.store.Put(wb)

	sheets := make([]string, 0, len(wb.Expenses))
	for _, sheet := range wb.Expenses {
		sheets = append(sheets, sheet.Name)
	}

	s.logger.InfoContext(ctx, "workbook uploaded",
		slog.String("workbook_id", id),
		slog.Int("income_rows", len(wb.Income)),
		slog.Int("expense_sheets", len(sheets)))

	return &UploadResult{
		WorkbookID:    id,
		IncomeRows:    len(wb.Income),
		Drivers:       fleet.Drivers(wb.Income),
		DateRange:     fleet.ParsedDateRange(wb.Income),
		ExpenseSheets: sheets,
	}, nil
}

// Summary runs the filter and aggregation stages for a stored workbook and
// returns the preview, raw summary, and currency-formatted table.
func (s *ReportService) Summary(ctx context.Context, id string, filter fleet.Filter) (*ReportData, error) {
	summaries, filtered, err := s.summarize(ctx, id, filter)
	if err != nil {
		return nil, err
	}

	preview := filtered
	if len(preview) > previewRows {
		preview = preview[:previewRows]
	}

	return &ReportData{
		FilteredRows: len(filtered),
		Preview:      preview,
		Summary:      summaries,
		Table:        fleet.FormatSummary(summaries),
	}, nil
}

// ProfitChart returns bar-chart data of Profit/Loss per truck under the
// given filter.
func (s *ReportService) ProfitChart(ctx context.Context, id string, filter fleet.Filter) ([]fleet.ProfitBar, error) {
	summaries, _, err := s.summarize(ctx, id, filter)
	if err != nil {
		return nil, err
	}
	return fleet.ProfitChart(summaries), nil
}

// ExpenseBreakdown returns pie-chart data of one truck's nonzero expense
// categories. ErrTruckNotFound means the truck has no summary row under
// the current filter.
func (s *ReportService) ExpenseBreakdown(ctx context.Context, id string, filter fleet.Filter, truck string) ([]fleet.ExpenseSlice, error) {
	summaries, _, err := s.summarize(ctx, id, filter)
	if err != nil {
		return nil, err
	}
	slices, ok := fleet.ExpenseBreakdown(summaries, truck)
	if !ok {
		return nil, ErrTruckNotFound
	}
	return slices, nil
}

// ExportExcel serializes the filtered summary as a single-sheet workbook.
func (s *ReportService) ExportExcel(ctx context.Context, id string, filter fleet.Filter) ([]byte, error) {
	summaries, _, err := s.summarize(ctx, id, filter)
	if err != nil {
		return nil, err
	}
	return exporter.WriteExcel(summaries)
}

// ExportPDF serializes the filtered summary as a single-page grid document.
func (s *ReportService) ExportPDF(ctx context.Context, id string, filter fleet.Filter) ([]byte, error) {
	summaries, _, err := s.summarize(ctx, id, filter)
	if err != nil {
		return nil, err
	}
	return exporter.WritePDF(summaries)
}

// Delete discards a stored workbook.
func (s *ReportService) Delete(ctx context.Context, id string) {
	s.store.Delete(id)
	s.logger.InfoContext(ctx, "workbook deleted", slog.String("workbook_id", id))
}

func (s *ReportService) summarize(ctx context.Context, id string, filter fleet.Filter) ([]fleet.TruckSummary, []fleet.IncomeRecord, error) {
	wb, ok := s.store.Get(id)
	if !ok {
		return nil, nil, ErrWorkbookNotFound
	}
	filtered := filter.Apply(wb.Income)
	return s.aggregator.Summarize(ctx, filtered, wb.Expenses), filtered, nil
}

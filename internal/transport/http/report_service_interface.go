package http

import (
	"context"
	"io"

	"fleetpulse/internal/fleet"
	"fleetpulse/internal/services"
)

// ReportServiceInterface defines the contract the workbook handler needs
// from the report service. Kept as an interface so handler tests can
// substitute a stub.
type ReportServiceInterface interface {
	Upload(ctx context.Context, r io.Reader) (*services.UploadResult, error)
	Summary(ctx context.Context, id string, filter fleet.Filter) (*services.ReportData, error)
	ProfitChart(ctx context.Context, id string, filter fleet.Filter) ([]fleet.ProfitBar, error)
	ExpenseBreakdown(ctx context.Context, id string, filter fleet.Filter, truck string) ([]fleet.ExpenseSlice, error)
	ExportExcel(ctx context.Context, id string, filter fleet.Filter) ([]byte, error)
	ExportPDF(ctx context.Context, id string, filter fleet.Filter) ([]byte, error)
	Delete(ctx context.Context, id string)
}

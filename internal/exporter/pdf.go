package exporter

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"fleetpulse/internal/fleet"
)

// PDF grid geometry. One fixed-width cell per column per row; wide tables
// simply run off the page edge, which the report accepts in exchange for a
// trivially simple layout.
const (
	pdfCellWidth  = 25
	pdfCellHeight = 8
)

// WritePDF serializes the summary as a single-page document: a centered
// title, a header row, and one bordered grid row per summary entry.
// Numeric cells are rounded to 2 decimals; there is no pagination.
func WritePDF(summaries []fleet.TruckSummary) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(200, 10, "Fleet Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)

	for _, col := range fleet.SummaryColumns {
		pdf.CellFormat(pdfCellWidth, pdfCellHeight, col, "1", 0, "", false, 0, "")
	}
	pdf.Ln(-1)

	for _, s := range summaries {
		cells := []string{s.Truck, s.Driver, formatInt(s.TotalLoads),
			formatFloat(s.TotalInvAmount), formatFloat(s.TotalNetPay)}
		for _, cat := range fleet.ExpenseCategories {
			cells = append(cells, formatFloat(s.Expenses[cat]))
		}
		cells = append(cells,
			formatFloat(s.TotalExpenses),
			formatFloat(s.ProfitLoss),
			formatFloat(s.ProfitPerLoad))

		for _, cell := range cells {
			pdf.CellFormat(pdfCellWidth, pdfCellHeight, cell, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

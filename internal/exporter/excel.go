// Package exporter serializes the truck summary for download: a plain
// single-sheet Excel workbook and a single-page PDF grid. Both carry the
// same columns as the on-screen table.
package exporter

import (
	"bytes"
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"fleetpulse/internal/fleet"
)

// reportSheet is the sheet name of the exported workbook.
const reportSheet = "Report"

// WriteExcel serializes the summary as one unstyled sheet: a header row
// followed by one row per summary entry. An undefined Profit per Load is
// written as an empty cell.
func WriteExcel(summaries []fleet.TruckSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(fleet.SummaryColumns))
	for i, col := range fleet.SummaryColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(reportSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, s := range summaries {
		row := summaryCells(s)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("row coordinates: %w", err)
		}
		if err := f.SetSheetRow(reportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// summaryCells lays out one summary row in SummaryColumns order.
func summaryCells(s fleet.TruckSummary) []interface{} {
	row := []interface{}{s.Truck, s.Driver, s.TotalLoads, s.TotalInvAmount, s.TotalNetPay}
	for _, cat := range fleet.ExpenseCategories {
		row = append(row, s.Expenses[cat])
	}
	row = append(row, s.TotalExpenses, s.ProfitLoss)
	if math.IsNaN(s.ProfitPerLoad) {
		row = append(row, nil)
	} else {
		row = append(row, s.ProfitPerLoad)
	}
	return row
}

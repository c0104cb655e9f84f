package fleet

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// incomeSheetName is the one sheet the upload must carry. Its absence is
// the single fatal condition of the pipeline.
const incomeSheetName = "Income"

// ErrMissingIncomeSheet reports an upload without an Income sheet.
var ErrMissingIncomeSheet = errors.New("workbook has no Income sheet")

// ParseWorkbook reads an uploaded .xlsx workbook. The Income sheet is
// parsed into records with normalized pickup dates; every other sheet is
// kept verbatim for expense matching. Sheets that cannot be read and cells
// that do not parse degrade to empty values rather than failing the upload.
func ParseWorkbook(r io.Reader, logger *slog.Logger) (*Workbook, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(incomeSheetName)
	if err != nil || idx < 0 {
		return nil, ErrMissingIncomeSheet
	}

	incomeRows, err := f.GetRows(incomeSheetName)
	if err != nil {
		return nil, fmt.Errorf("read %s sheet: %w", incomeSheetName, err)
	}

	wb := &Workbook{Income: parseIncome(incomeRows)}

	for _, name := range f.GetSheetList() {
		if name == incomeSheetName {
			continue
		}
		rows, err := f.GetRows(name)
		if err != nil {
			logger.Warn("skipping unreadable sheet",
				slog.String("sheet", name),
				slog.String("error", err.Error()))
			continue
		}
		sheet := Sheet{Name: name}
		if len(rows) > 0 {
			sheet.Columns = rows[0]
			sheet.Rows = rows[1:]
		}
		wb.Expenses = append(wb.Expenses, sheet)
	}

	logger.Info("workbook parsed",
		slog.Int("income_rows", len(wb.Income)),
		slog.Int("expense_sheets", len(wb.Expenses)))

	return wb, nil
}

// parseIncome maps the Income sheet onto records using the header row.
// Column positions are resolved by exact header name; a missing Pickup
// column simply leaves every date unset.
func parseIncome(rows [][]string) []IncomeRecord {
	if len(rows) == 0 {
		return nil
	}

	index := make(map[string]int, len(rows[0]))
	for i, header := range rows[0] {
		name := strings.TrimSpace(header)
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	// Cell values are taken verbatim. The Truck value in particular joins
	// against expense sheets by exact equality, so no trimming happens here.
	cell := func(row []string, column string) string {
		if i, ok := index[column]; ok && i < len(row) {
			return row[i]
		}
		return ""
	}

	records := make([]IncomeRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		rec := IncomeRecord{
			Truck:     cell(row, ColumnTruck),
			Driver:    cell(row, ColumnDriver),
			Pickup:    cell(row, ColumnPickup),
			InvAmount: ParseAmount(cell(row, ColumnInvAmount)),
			NetPay:    ParseAmount(cell(row, ColumnNetPay)),
		}
		rec.PickupDate = NormalizePickup(rec.Pickup)
		records = append(records, rec)
	}
	return records
}

// ParseAmount converts a currency cell to a float. Thousands separators
// and a leading dollar sign are tolerated; anything else yields zero.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

package fleet

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Chart colors for the profit bar chart, keyed by sign.
const (
	colorProfit = "#00B894"
	colorLoss   = "#D63031"
)

var currencyPrinter = message.NewPrinter(language.English)

// FormatCurrency renders a monetary value as $#,###.## with thousands
// grouping. NaN passes through as "$NaN", the undefined Profit per Load.
func FormatCurrency(v float64) string {
	if math.IsNaN(v) {
		return "$NaN"
	}
	return currencyPrinter.Sprintf("$%.2f", v)
}

// ProfitBar is one bar of the Profit/Loss-per-truck chart.
type ProfitBar struct {
	Truck      string  `json:"truck"`
	Driver     string  `json:"driver"`
	ProfitLoss float64 `json:"profit_loss"`
	Label      string  `json:"label"`
	Color      string  `json:"color"`
}

// ProfitChart builds bar-chart data from the summary, one bar per summary
// row, colored by sign and labeled with whole-dollar currency.
func ProfitChart(summaries []TruckSummary) []ProfitBar {
	bars := make([]ProfitBar, 0, len(summaries))
	for _, s := range summaries {
		color := colorProfit
		if s.ProfitLoss < 0 {
			color = colorLoss
		}
		bars = append(bars, ProfitBar{
			Truck:      s.Truck,
			Driver:     s.Driver,
			ProfitLoss: s.ProfitLoss,
			Label:      currencyPrinter.Sprintf("$%.0f", s.ProfitLoss),
			Color:      color,
		})
	}
	return bars
}

// ExpenseSlice is one slice of a truck's expense-breakdown pie chart.
type ExpenseSlice struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// ExpenseBreakdown returns the nonzero expense categories of the first
// summary row matching the truck, in category order. The second return is
// false when the truck has no summary row.
func ExpenseBreakdown(summaries []TruckSummary, truck string) ([]ExpenseSlice, bool) {
	for _, s := range summaries {
		if s.Truck != truck {
			continue
		}
		var slices []ExpenseSlice
		for _, cat := range ExpenseCategories {
			if amount := s.Expenses[cat]; amount > 0 {
				slices = append(slices, ExpenseSlice{Category: cat, Amount: amount})
			}
		}
		return slices, true
	}
	return nil, false
}

// FormattedRow is a summary row with its monetary columns rendered as
// currency strings for the on-screen table.
type FormattedRow struct {
	Truck          string            `json:"truck"`
	Driver         string            `json:"driver"`
	TotalLoads     int               `json:"total_loads"`
	TotalInvAmount string            `json:"total_inv_amt"`
	TotalNetPay    string            `json:"total_net_pay"`
	Expenses       map[string]string `json:"expenses"`
	TotalExpenses  string            `json:"total_expenses"`
	ProfitLoss     string            `json:"profit_loss"`
	ProfitPerLoad  string            `json:"profit_per_load"`
}

// FormatSummary renders the summary table with currency formatting applied
// to every monetary column.
func FormatSummary(summaries []TruckSummary) []FormattedRow {
	rows := make([]FormattedRow, 0, len(summaries))
	for _, s := range summaries {
		expenses := make(map[string]string, len(s.Expenses))
		for _, cat := range ExpenseCategories {
			expenses[cat] = FormatCurrency(s.Expenses[cat])
		}
		rows = append(rows, FormattedRow{
			Truck:          s.Truck,
			Driver:         s.Driver,
			TotalLoads:     s.TotalLoads,
			TotalInvAmount: FormatCurrency(s.TotalInvAmount),
			TotalNetPay:    FormatCurrency(s.TotalNetPay),
			Expenses:       expenses,
			TotalExpenses:  FormatCurrency(s.TotalExpenses),
			ProfitLoss:     FormatCurrency(s.ProfitLoss),
			ProfitPerLoad:  FormatCurrency(s.ProfitPerLoad),
		})
	}
	return rows
}

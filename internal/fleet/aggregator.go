package fleet

import (
	"context"
	"log/slog"
	"math"
	"sort"
)

// Aggregator turns filtered income and raw expense sheets into the
// per-truck/per-driver summary. It carries no state beyond its logger;
// every call recomputes from scratch.
type Aggregator struct {
	logger *slog.Logger
}

// NewAggregator creates an aggregator. A nil logger falls back to the
// default slog logger.
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger.With(slog.String("component", "aggregator"))}
}

// Summarize groups income by (Truck, Driver), attributes expense-sheet
// amounts to trucks, and derives the profit metrics. Rows with an empty
// Truck or Driver are excluded from grouping. Expense attribution joins on
// EXACT equality between the Truck value and the sheet's identifier cells;
// mismatched formatting between sheets yields a zero contribution.
func (a *Aggregator) Summarize(ctx context.Context, income []IncomeRecord, sheets []Sheet) []TruckSummary {
	type groupKey struct{ truck, driver string }

	groups := make(map[groupKey]*TruckSummary)
	var order []groupKey
	for _, rec := range income {
		if rec.Truck == "" || rec.Driver == "" {
			continue
		}
		key := groupKey{rec.Truck, rec.Driver}
		sum, ok := groups[key]
		if !ok {
			sum = &TruckSummary{
				Truck:    rec.Truck,
				Driver:   rec.Driver,
				Expenses: make(map[string]float64, len(ExpenseCategories)),
			}
			for _, cat := range ExpenseCategories {
				sum.Expenses[cat] = 0
			}
			groups[key] = sum
			order = append(order, key)
		}
		sum.TotalLoads++
		sum.TotalInvAmount += rec.InvAmount
		sum.TotalNetPay += rec.NetPay
	}

	for _, sheet := range sheets {
		category, totals := a.resolveSheet(ctx, sheet)
		if category == "" {
			continue
		}
		for _, key := range order {
			sum := groups[key]
			if amount, ok := totals[sum.Truck]; ok {
				sum.Expenses[category] += amount
			}
		}
	}

	summaries := make([]TruckSummary, 0, len(order))
	for _, key := range order {
		sum := groups[key]
		for _, cat := range ExpenseCategories {
			sum.TotalExpenses += sum.Expenses[cat]
		}
		sum.ProfitLoss = sum.TotalNetPay - sum.TotalExpenses
		if sum.TotalLoads == 0 {
			sum.ProfitPerLoad = math.NaN()
		} else {
			sum.ProfitPerLoad = sum.ProfitLoss / float64(sum.TotalLoads)
		}
		summaries = append(summaries, *sum)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Truck != summaries[j].Truck {
			return summaries[i].Truck < summaries[j].Truck
		}
		return summaries[i].Driver < summaries[j].Driver
	})

	a.logger.InfoContext(ctx, "summary computed",
		slog.Int("income_rows", len(income)),
		slog.Int("summary_rows", len(summaries)),
		slog.Int("expense_sheets", len(sheets)))

	return summaries
}

// resolveSheet sniffs the identifier and amount columns of an expense sheet
// and sums amounts per truck identifier. The empty category means the sheet
// contributes nothing: either a column failed to resolve or no keyword rule
// matched the sheet name.
func (a *Aggregator) resolveSheet(ctx context.Context, sheet Sheet) (string, map[string]float64) {
	truckCol, ok := FindColumn(sheet.Columns, "truck", "unit")
	if !ok {
		a.logger.DebugContext(ctx, "no identifier column, sheet skipped",
			slog.String("sheet", sheet.Name))
		return "", nil
	}
	amountCol, ok := FindColumn(sheet.Columns, "amount", "cost")
	if !ok {
		a.logger.DebugContext(ctx, "no amount column, sheet skipped",
			slog.String("sheet", sheet.Name))
		return "", nil
	}
	category, ok := CategoryForSheet(sheet.Name)
	if !ok {
		a.logger.DebugContext(ctx, "no category rule matched, sheet skipped",
			slog.String("sheet", sheet.Name))
		return "", nil
	}

	totals := make(map[string]float64)
	for _, row := range sheet.Rows {
		if truckCol >= len(row) {
			continue
		}
		truck := row[truckCol]
		if truck == "" {
			continue
		}
		var amount float64
		if amountCol < len(row) {
			amount = ParseAmount(row[amountCol])
		}
		totals[truck] += amount
	}
	return category, totals
}

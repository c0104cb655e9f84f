// Package fleet implements the profit-and-loss core: parsing a multi-sheet
// trucking workbook, filtering income loads, and aggregating categorized
// expenses into a per-truck/per-driver summary.
package fleet

import "time"

// Income sheet column headers expected in the uploaded workbook.
const (
	ColumnTruck     = "Truck"
	ColumnDriver    = "Driver"
	ColumnPickup    = "Pickup"
	ColumnInvAmount = "Inv Amt"
	ColumnNetPay    = "Net pay"
)

// Expense categories in their fixed reporting order. Every summary row
// carries one numeric field per category.
const (
	CategoryLoan      = "Loan Exp"
	CategoryInsurance = "Insurance"
	CategoryIFTA      = "IFTA"
	CategoryPlates    = "Plates"
	CategoryPrepass   = "Prepass"
	CategoryOffice    = "Office"
	CategoryRepairs   = "Repairs"
	CategoryFuel      = "Fuel"
	CategoryTolls     = "Tolls"
	CategoryFactoring = "Factoring Fee"
)

// ExpenseCategories lists all categories in reporting order.
var ExpenseCategories = []string{
	CategoryLoan,
	CategoryInsurance,
	CategoryIFTA,
	CategoryPlates,
	CategoryPrepass,
	CategoryOffice,
	CategoryRepairs,
	CategoryFuel,
	CategoryTolls,
	CategoryFactoring,
}

// IncomeRecord is one load from the Income sheet. PickupDate is the zero
// time when the Pickup field was absent or unparseable.
type IncomeRecord struct {
	Truck      string    `json:"truck"`
	Driver     string    `json:"driver"`
	Pickup     string    `json:"pickup"`
	PickupDate time.Time `json:"pickup_date,omitempty"`
	InvAmount  float64   `json:"inv_amount"`
	NetPay     float64   `json:"net_pay"`
}

// Sheet is a raw expense sheet loaded verbatim: header row plus data rows,
// no schema validation. Rows shorter than the header are allowed.
type Sheet struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Workbook is a fully loaded upload: the parsed Income sheet and every
// other sheet by name, in workbook order.
type Workbook struct {
	Income   []IncomeRecord
	Expenses []Sheet
}

// TruckSummary is one row of the profit-and-loss report, keyed by the
// (Truck, Driver) pair. Expenses holds one entry per expense category,
// zero when no sheet contributed.
type TruckSummary struct {
	Truck          string             `json:"truck"`
	Driver         string             `json:"driver"`
	TotalLoads     int                `json:"total_loads"`
	TotalInvAmount float64            `json:"total_inv_amount"`
	TotalNetPay    float64            `json:"total_net_pay"`
	Expenses       map[string]float64 `json:"expenses"`
	TotalExpenses  float64            `json:"total_expenses"`
	ProfitLoss     float64            `json:"profit_loss"`
	ProfitPerLoad  float64            `json:"profit_per_load"`
}

// SummaryColumns is the column order of the exported report, mirroring the
// on-screen summary table.
var SummaryColumns = func() []string {
	cols := []string{"Truck", "Driver", "Total_Loads", "Total_Inv_Amt", "Total_Net_Pay"}
	cols = append(cols, ExpenseCategories...)
	return append(cols, "Total Expenses", "Profit/Loss", "Profit per Load")
}()

// DateRange is the span of parsed pickup dates in a workbook.
type DateRange struct {
	Min time.Time `json:"min,omitempty"`
	Max time.Time `json:"max,omitempty"`
}

package fleet

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSummaries() []TruckSummary {
	return []TruckSummary{
		{
			Truck: "T1", Driver: "D1", TotalLoads: 2,
			TotalInvAmount: 1500, TotalNetPay: 1200,
			Expenses: map[string]float64{
				CategoryFuel:  200,
				CategoryTolls: 50,
			},
			TotalExpenses: 250, ProfitLoss: 950, ProfitPerLoad: 475,
		},
		{
			Truck: "T2", Driver: "D2", TotalLoads: 1,
			TotalInvAmount: 400, TotalNetPay: 300,
			Expenses:      map[string]float64{CategoryRepairs: 500},
			TotalExpenses: 500, ProfitLoss: -200, ProfitPerLoad: -200,
		},
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{1500, "$1,500.00"},
		{0, "$0.00"},
		{-200, "$-200.00"},
		{1234567.891, "$1,234,567.89"},
		{math.NaN(), "$NaN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(tt.value))
		})
	}
}

func TestProfitChart(t *testing.T) {
	bars := ProfitChart(sampleSummaries())
	require.Len(t, bars, 2)

	assert.Equal(t, "T1", bars[0].Truck)
	assert.Equal(t, 950.0, bars[0].ProfitLoss)
	assert.Equal(t, "$950", bars[0].Label)
	assert.Equal(t, colorProfit, bars[0].Color)

	assert.Equal(t, "T2", bars[1].Truck)
	assert.Equal(t, colorLoss, bars[1].Color)
	assert.Equal(t, "$-200", bars[1].Label)
}

func TestExpenseBreakdown(t *testing.T) {
	t.Run("nonzero categories in order", func(t *testing.T) {
		slices, ok := ExpenseBreakdown(sampleSummaries(), "T1")
		require.True(t, ok)
		require.Len(t, slices, 2)
		assert.Equal(t, CategoryFuel, slices[0].Category)
		assert.Equal(t, 200.0, slices[0].Amount)
		assert.Equal(t, CategoryTolls, slices[1].Category)
	})

	t.Run("unknown truck", func(t *testing.T) {
		slices, ok := ExpenseBreakdown(sampleSummaries(), "T9")
		assert.False(t, ok)
		assert.Nil(t, slices)
	})

	t.Run("all-zero expenses yield no slices", func(t *testing.T) {
		summaries := []TruckSummary{{Truck: "T3", Expenses: map[string]float64{}}}
		slices, ok := ExpenseBreakdown(summaries, "T3")
		assert.True(t, ok)
		assert.Empty(t, slices)
	})
}

func TestFormatSummary(t *testing.T) {
	rows := FormatSummary(sampleSummaries())
	require.Len(t, rows, 2)

	assert.Equal(t, "$1,500.00", rows[0].TotalInvAmount)
	assert.Equal(t, "$1,200.00", rows[0].TotalNetPay)
	assert.Equal(t, "$250.00", rows[0].TotalExpenses)
	assert.Equal(t, "$950.00", rows[0].ProfitLoss)
	assert.Equal(t, "$475.00", rows[0].ProfitPerLoad)
	assert.Equal(t, "$200.00", rows[0].Expenses[CategoryFuel])
	assert.Equal(t, "$0.00", rows[0].Expenses[CategoryOffice])

	assert.Equal(t, "$-200.00", rows[1].ProfitLoss)
}

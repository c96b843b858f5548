package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layoutdev-pt/prospout/internal/models"
	"github.com/layoutdev-pt/prospout/internal/store"
)

func TestSummarizeFinanceEmpty(t *testing.T) {
	got := SummarizeFinance(nil)
	assert.Equal(t, 0.0, got.Revenue)
	assert.Equal(t, 0.0, got.Expenses)
	assert.Equal(t, 0.0, got.Profit)
	assert.Empty(t, got.Series)
}

func TestSummarizeFinanceTotalsAndProfit(t *testing.T) {
	got := SummarizeFinance([]models.FinanceEntry{
		{Type: models.FinanceRevenue, Amount: 1000, Date: date(2024, 1, 5)},
		{Type: models.FinanceRevenue, Amount: 500, Date: date(2024, 1, 20)},
		{Type: models.FinanceExpense, Amount: 300, Date: date(2024, 1, 10)},
	})

	assert.Equal(t, 1500.0, got.Revenue)
	assert.Equal(t, 300.0, got.Expenses)
	assert.Equal(t, 1200.0, got.Profit)
	require.Len(t, got.Series, 1)
	assert.Equal(t, models.FinancePeriod{Period: "2024-01", Revenue: 1500, Expenses: 300, Profit: 1200}, got.Series[0])
}

func TestSummarizeFinanceSeriesSparseAndSorted(t *testing.T) {
	got := SummarizeFinance([]models.FinanceEntry{
		{Type: models.FinanceExpense, Amount: 50, Date: date(2024, 6, 1)},
		{Type: models.FinanceRevenue, Amount: 200, Date: date(2024, 2, 1)},
		{Type: models.FinanceRevenue, Amount: 100, Date: date(2024, 6, 15)},
	})

	// Only months with entries appear, ascending.
	require.Len(t, got.Series, 2)
	assert.Equal(t, "2024-02", got.Series[0].Period)
	assert.Equal(t, 200.0, got.Series[0].Profit)
	assert.Equal(t, "2024-06", got.Series[1].Period)
	assert.Equal(t, 50.0, got.Series[1].Profit)
}

func TestServiceFinanceAppliesDateBounds(t *testing.T) {
	st := store.NewMemoryStore()
	st.AddFinanceEntry(models.FinanceEntry{Type: models.FinanceRevenue, Amount: 100, Date: date(2024, 1, 10)})
	st.AddFinanceEntry(models.FinanceEntry{Type: models.FinanceRevenue, Amount: 999, Date: date(2024, 5, 10)})
	st.AddFinanceEntry(models.FinanceEntry{Type: models.FinanceExpense, Amount: 30, Date: date(2024, 1, 31)})

	from, to := date(2024, 1, 1), date(2024, 1, 31)
	got := NewService(st).Finance(Filter{From: &from, To: &to})

	assert.Equal(t, 100.0, got.Revenue)
	assert.Equal(t, 30.0, got.Expenses)
	assert.Equal(t, 70.0, got.Profit)
	require.Len(t, got.Series, 1)
	assert.Equal(t, "2024-01", got.Series[0].Period)
}

func TestServiceFinanceUnboundedWhenNoDates(t *testing.T) {
	st := store.NewMemoryStore()
	st.AddFinanceEntry(models.FinanceEntry{Type: models.FinanceRevenue, Amount: 10, Date: date(2020, 1, 1)})
	st.AddFinanceEntry(models.FinanceEntry{Type: models.FinanceRevenue, Amount: 20, Date: date(2030, 1, 1)})

	got := NewService(st).Finance(Filter{})
	assert.Equal(t, 30.0, got.Revenue)
}

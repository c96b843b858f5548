package analytics

import (
	"sort"

	"github.com/layoutdev-pt/prospout/internal/models"
)

// SummarizeFinance reduces finance entries into overall revenue/expenses/
// profit plus a per-month profit series. The series is sparse: only months
// with at least one entry appear, in ascending period order.
func SummarizeFinance(entries []models.FinanceEntry) models.FinanceSummary {
	sum := models.FinanceSummary{Series: []models.FinancePeriod{}}
	byMonth := make(map[string]*models.FinancePeriod)
	for _, e := range entries {
		key := monthKey(e.Date)
		p, ok := byMonth[key]
		if !ok {
			p = &models.FinancePeriod{Period: key}
			byMonth[key] = p
		}
		switch e.Type {
		case models.FinanceRevenue:
			sum.Revenue += e.Amount
			p.Revenue += e.Amount
		default:
			sum.Expenses += e.Amount
			p.Expenses += e.Amount
		}
	}
	sum.Profit = sum.Revenue - sum.Expenses

	for _, p := range byMonth {
		p.Profit = p.Revenue - p.Expenses
		sum.Series = append(sum.Series, *p)
	}
	sort.Slice(sum.Series, func(i, j int) bool { return sum.Series[i].Period < sum.Series[j].Period })
	return sum
}

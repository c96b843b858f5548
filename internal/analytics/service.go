package analytics

import (
	"net/url"
	"strings"
	"time"

	"github.com/layoutdev-pt/prospout/internal/models"
	"github.com/layoutdev-pt/prospout/internal/store"
)

// Filter scopes one analytics query. Absent pipeline means all pipelines
// combined; absent dates leave the totals unbounded while the time series
// falls back to its default range.
type Filter struct {
	Pipeline *models.Pipeline
	From     *time.Time
	To       *time.Time
	UserID   string
}

// ParseFilter reads a filter from query parameters. Unknown pipelines and
// unparseable dates are treated as absent, never as errors.
func ParseFilter(v url.Values) Filter {
	var f Filter
	if p := models.Pipeline(strings.ToUpper(strings.TrimSpace(v.Get("pipeline")))); p.Valid() {
		f.Pipeline = &p
	}
	if t, ok := ParseDate(v.Get("from")); ok {
		f.From = &t
	}
	if t, ok := ParseDate(v.Get("to")); ok {
		f.To = &t
	}
	f.UserID = strings.TrimSpace(v.Get("user"))
	return f
}

// ParseDate accepts RFC3339 timestamps or plain YYYY-MM-DD dates.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(dayKeyFormat, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// Service is the analytics façade: it reads a snapshot from the store, runs
// the pure reduction pipeline, and returns one consolidated result. It holds
// no per-call state, so concurrent queries never interfere.
type Service struct {
	st *store.MemoryStore
}

func NewService(st *store.MemoryStore) *Service { return &Service{st: st} }

// Query computes totals, every rate KPI, deal metrics, and the daily time
// series for one filter.
func (s *Service) Query(f Filter) models.Result {
	now := time.Now().UTC()

	// Totals honor only the bounds the caller gave; the series grid always
	// has a concrete range, defaulting to the last 30 days.
	sf := store.Filter{Pipeline: f.Pipeline, UserID: f.UserID}
	if f.From != nil {
		from := dayStart(*f.From)
		sf.From = &from
	}
	if f.To != nil {
		to := endOfDay(*f.To)
		sf.To = &to
	}

	seriesStart, seriesEnd := DefaultRange(now)
	if f.From != nil {
		seriesStart = dayStart(*f.From)
	}
	if f.To != nil {
		seriesEnd = endOfDay(*f.To)
	}

	activities := s.st.ListActivities(sf)
	deals := s.st.ListDeals(store.Filter{Pipeline: f.Pipeline, UserID: f.UserID})

	totals := Aggregate(activities)
	totalDeals, avg := DealMetrics(deals)

	return models.Result{
		Totals:            totals,
		TotalDeals:        totalDeals,
		AvgTimeToCashDays: avg,
		Rates:             CalculateRates(totals, totalDeals),
		TimeSeries:        DailySeries(seriesStart, seriesEnd, activities, deals),
	}
}

// Finance computes the profit/loss summary over finance entries matching the
// filter's user and date bounds (unbounded when absent).
func (s *Service) Finance(f Filter) models.FinanceSummary {
	sf := store.Filter{UserID: f.UserID}
	if f.From != nil {
		from := dayStart(*f.From)
		sf.From = &from
	}
	if f.To != nil {
		to := endOfDay(*f.To)
		sf.To = &to
	}
	return SummarizeFinance(s.st.ListFinance(sf))
}

// Monthly computes an independent rollup for each of the 12 months of year:
// full totals per month plus deal metrics over deals closed within that month.
func (s *Service) Monthly(year int, f Filter) models.MonthlyRollup {
	label := "ALL"
	if f.Pipeline != nil {
		label = string(*f.Pipeline)
	}

	deals := s.st.ListDeals(store.Filter{Pipeline: f.Pipeline, UserID: f.UserID})

	jan := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	dec := time.Date(year, time.December, 1, 0, 0, 0, 0, time.UTC)
	months := make([]models.MonthEntry, 0, 12)
	for _, m := range dateGrid(jan, dec, stepMonth) {
		start, end := monthBounds(m)
		activities := s.st.ListActivities(store.Filter{
			Pipeline: f.Pipeline,
			UserID:   f.UserID,
			From:     &start,
			To:       &end,
		})

		key := monthKey(start)
		var monthDeals []models.Deal
		for _, d := range deals {
			if d.Closed() && monthKey(*d.ClosedAt) == key {
				monthDeals = append(monthDeals, d)
			}
		}
		totalDeals, avg := DealMetrics(monthDeals)

		months = append(months, models.MonthEntry{
			Month:             key,
			Totals:            Aggregate(activities),
			TotalDeals:        totalDeals,
			AvgTimeToCashDays: avg,
		})
	}

	return models.MonthlyRollup{Year: year, Pipeline: label, Months: months}
}

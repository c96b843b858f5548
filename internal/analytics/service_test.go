package analytics

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layoutdev-pt/prospout/internal/models"
	"github.com/layoutdev-pt/prospout/internal/store"
)

func TestParseFilter(t *testing.T) {
	v := url.Values{}
	v.Set("pipeline", "companies")
	v.Set("from", "2024-01-01")
	v.Set("to", "2024-01-31")
	v.Set("user", "u-1")

	f := ParseFilter(v)
	require.NotNil(t, f.Pipeline)
	assert.Equal(t, models.PipelineCompanies, *f.Pipeline)
	require.NotNil(t, f.From)
	assert.Equal(t, date(2024, 1, 1), *f.From)
	require.NotNil(t, f.To)
	assert.Equal(t, date(2024, 1, 31), *f.To)
	assert.Equal(t, "u-1", f.UserID)
}

func TestParseFilterMalformedInputTreatedAsAbsent(t *testing.T) {
	v := url.Values{}
	v.Set("pipeline", "UNICORNS")
	v.Set("from", "not-a-date")
	v.Set("to", "31/01/2024")

	f := ParseFilter(v)
	assert.Nil(t, f.Pipeline)
	assert.Nil(t, f.From)
	assert.Nil(t, f.To)
}

func TestParseDateFormats(t *testing.T) {
	got, ok := ParseDate("2024-05-02")
	require.True(t, ok)
	assert.Equal(t, date(2024, 5, 2), got)

	got, ok = ParseDate("2024-05-02T10:30:00Z")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 5, 2, 10, 30, 0, 0, time.UTC), got)

	_, ok = ParseDate("")
	assert.False(t, ok)
}

// Scenario: one activity with 100 calls / 25 answered / 10 R1 booked / 8 held,
// one deal closed ten days after creation.
func TestQueryConcreteScenario(t *testing.T) {
	st := store.NewMemoryStore()
	st.AddActivity(models.Activity{
		Date:              date(2024, 1, 5),
		ColdCallsMade:     100,
		ColdCallsAnswered: 25,
		R1ViaCall:         10,
		R1Completed:       8,
	})
	closed := date(2024, 1, 11)
	st.AddDeal(models.Deal{CreatedAt: date(2024, 1, 1), ClosedAt: &closed})

	from, to := date(2024, 1, 1), date(2024, 1, 31)
	res := NewService(st).Query(Filter{From: &from, To: &to})

	assert.Equal(t, 100, res.Totals.TotalCalls)
	assert.Equal(t, 25.0, res.PctCallsAnswered)
	assert.Equal(t, 10.0, res.PctR1ViaCall)
	assert.Equal(t, 10, TotalR1Scheduled(res.Totals))
	assert.Equal(t, 80.0, res.PctR1ShowRate)
	assert.Equal(t, 1, res.TotalDeals)
	require.NotNil(t, res.AvgTimeToCashDays)
	assert.Equal(t, 10.0, *res.AvgTimeToCashDays)

	require.Len(t, res.TimeSeries, 31)
	assert.Equal(t, "2024-01-01", res.TimeSeries[0].Date)
	assert.Equal(t, 100, res.TimeSeries[4].Calls)
	assert.Equal(t, 1, res.TimeSeries[10].DealsClosed)
}

func TestQueryEmptyStore(t *testing.T) {
	st := store.NewMemoryStore()
	from, to := date(2024, 1, 1), date(2024, 1, 10)
	res := NewService(st).Query(Filter{From: &from, To: &to})

	assert.Equal(t, models.Totals{}, res.Totals)
	assert.Equal(t, models.Rates{}, res.Rates)
	assert.Equal(t, 0, res.TotalDeals)
	assert.Nil(t, res.AvgTimeToCashDays)
	assert.Len(t, res.TimeSeries, 10)
}

func TestQueryDefaultSeriesRangeIs30Days(t *testing.T) {
	res := NewService(store.NewMemoryStore()).Query(Filter{})
	assert.Len(t, res.TimeSeries, 30)
}

func TestQueryFiltersByPipeline(t *testing.T) {
	st := store.NewMemoryStore()
	st.AddActivity(models.Activity{Date: date(2024, 1, 2), Pipeline: models.PipelineCompanies, ColdCallsMade: 5})
	st.AddActivity(models.Activity{Date: date(2024, 1, 2), Pipeline: models.PipelineInfluencers, ColdCallsMade: 9})

	p := models.PipelineInfluencers
	from, to := date(2024, 1, 1), date(2024, 1, 3)
	res := NewService(st).Query(Filter{Pipeline: &p, From: &from, To: &to})

	assert.Equal(t, 9, res.Totals.TotalCalls)
}

func TestQueryIdempotentOnUnchangedStore(t *testing.T) {
	st := store.NewMemoryStore()
	st.AddActivity(models.Activity{Date: date(2024, 1, 5), ColdCallsMade: 7, R1Completed: 2})
	closed := date(2024, 1, 9)
	st.AddDeal(models.Deal{CreatedAt: date(2024, 1, 2), ClosedAt: &closed})

	svc := NewService(st)
	from, to := date(2024, 1, 1), date(2024, 1, 31)
	f := Filter{From: &from, To: &to}

	assert.Equal(t, svc.Query(f), svc.Query(f))
}

// Scenario: two January activities and one February activity; the other ten
// months stay all-zero.
func TestMonthlyRollupConcreteScenario(t *testing.T) {
	st := store.NewMemoryStore()
	st.AddActivity(models.Activity{Date: date(2024, 1, 10), ColdCallsMade: 5, R1Completed: 1})
	st.AddActivity(models.Activity{Date: date(2024, 1, 20), ColdCallsMade: 7})
	st.AddActivity(models.Activity{Date: date(2024, 2, 3), ColdCallsMade: 3})

	got := NewService(st).Monthly(2024, Filter{})

	assert.Equal(t, 2024, got.Year)
	assert.Equal(t, "ALL", got.Pipeline)
	require.Len(t, got.Months, 12)

	assert.Equal(t, "2024-01", got.Months[0].Month)
	assert.Equal(t, 12, got.Months[0].Totals.TotalCalls)
	assert.Equal(t, 1, got.Months[0].Totals.R1Completed)

	assert.Equal(t, "2024-02", got.Months[1].Month)
	assert.Equal(t, 3, got.Months[1].Totals.TotalCalls)

	for i := 2; i < 12; i++ {
		assert.Equal(t, models.Totals{}, got.Months[i].Totals, "month %s", got.Months[i].Month)
		assert.Equal(t, 0, got.Months[i].TotalDeals)
		assert.Nil(t, got.Months[i].AvgTimeToCashDays)
	}
}

func TestMonthlyRollupDealsAttributedToClosingMonth(t *testing.T) {
	st := store.NewMemoryStore()
	closedMar := date(2024, 3, 15)
	st.AddDeal(models.Deal{CreatedAt: date(2024, 3, 5), ClosedAt: &closedMar})
	st.AddDeal(models.Deal{CreatedAt: date(2024, 3, 1)}) // open, never attributed

	got := NewService(st).Monthly(2024, Filter{})

	require.Len(t, got.Months, 12)
	assert.Equal(t, 1, got.Months[2].TotalDeals)
	require.NotNil(t, got.Months[2].AvgTimeToCashDays)
	assert.Equal(t, 10.0, *got.Months[2].AvgTimeToCashDays)
	for i, m := range got.Months {
		if i == 2 {
			continue
		}
		assert.Equal(t, 0, m.TotalDeals)
	}
}

func TestMonthlyRollupPipelineLabel(t *testing.T) {
	p := models.PipelineCompanies
	got := NewService(store.NewMemoryStore()).Monthly(2024, Filter{Pipeline: &p})
	assert.Equal(t, "COMPANIES", got.Pipeline)
}

package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layoutdev-pt/prospout/internal/models"
)

func TestDailySeriesEmptyInputStillHasFullGrid(t *testing.T) {
	series := DailySeries(date(2024, 3, 1), date(2024, 3, 10), nil, nil)

	require.Len(t, series, 10)
	assert.Equal(t, "2024-03-01", series[0].Date)
	assert.Equal(t, "2024-03-10", series[9].Date)
	for i, p := range series {
		assert.Equal(t, models.DayPoint{Date: p.Date}, p, "bucket %d should be zero", i)
		if i > 0 {
			assert.Less(t, series[i-1].Date, p.Date)
		}
	}
}

func TestDailySeriesBucketAssignment(t *testing.T) {
	acts := []models.Activity{
		{Date: date(2024, 3, 2), ColdCallsMade: 5, ColdCallsAnswered: 2, R1ViaCall: 1, MeetsViaDm: 1, MeetsViaEmail: 1, R1Completed: 1},
		{Date: date(2024, 3, 2), ColdCallsMade: 3},
	}
	series := DailySeries(date(2024, 3, 1), date(2024, 3, 3), acts, nil)

	require.Len(t, series, 3)
	assert.Equal(t, 8, series[1].Calls)
	assert.Equal(t, 2, series[1].CallsAnswered)
	assert.Equal(t, 3, series[1].R1Scheduled)
	assert.Equal(t, 1, series[1].R1Completed)
	assert.Equal(t, models.DayPoint{Date: "2024-03-01"}, series[0])
	assert.Equal(t, models.DayPoint{Date: "2024-03-03"}, series[2])
}

func TestDailySeriesInclusiveBoundaries(t *testing.T) {
	acts := []models.Activity{
		{Date: date(2024, 3, 1), ColdCallsMade: 1},  // start boundary
		{Date: date(2024, 3, 5), ColdCallsMade: 2},  // end boundary
		{Date: date(2024, 2, 29), ColdCallsMade: 4}, // one day before: dropped
		{Date: date(2024, 3, 6), ColdCallsMade: 8},  // one day after: dropped
	}
	series := DailySeries(date(2024, 3, 1), date(2024, 3, 5), acts, nil)

	require.Len(t, series, 5)
	assert.Equal(t, 1, series[0].Calls)
	assert.Equal(t, 2, series[4].Calls)
	total := 0
	for _, p := range series {
		total += p.Calls
	}
	assert.Equal(t, 3, total)
}

func TestDailySeriesLateEndOfDayRecordIncluded(t *testing.T) {
	late := time.Date(2024, 3, 5, 23, 30, 0, 0, time.UTC)
	series := DailySeries(date(2024, 3, 5), date(2024, 3, 5), []models.Activity{{Date: late, ColdCallsMade: 1}}, nil)
	require.Len(t, series, 1)
	assert.Equal(t, 1, series[0].Calls)
}

func TestDailySeriesClosedDealsBucketedByClosedAt(t *testing.T) {
	closed := date(2024, 3, 2)
	outside := date(2024, 4, 1)
	deals := []models.Deal{
		{CreatedAt: date(2024, 1, 1), ClosedAt: &closed},
		{CreatedAt: date(2024, 1, 1), ClosedAt: &closed},
		{CreatedAt: date(2024, 1, 1), ClosedAt: &outside}, // outside grid: dropped
		{CreatedAt: date(2024, 1, 1)},                     // open: ignored
	}
	series := DailySeries(date(2024, 3, 1), date(2024, 3, 3), nil, deals)

	require.Len(t, series, 3)
	assert.Equal(t, 2, series[1].DealsClosed)
	assert.Equal(t, 0, series[0].DealsClosed)
	assert.Equal(t, 0, series[2].DealsClosed)
}

func TestDefaultRangeIsLast30Days(t *testing.T) {
	now := time.Date(2024, 6, 15, 13, 45, 0, 0, time.UTC)
	from, to := DefaultRange(now)

	assert.Equal(t, date(2024, 5, 17), from)
	assert.Equal(t, "2024-06-15", dayKey(to))

	series := DailySeries(from, to, nil, nil)
	assert.Len(t, series, 30)
}

func TestDateGridMonthStep(t *testing.T) {
	jan := date(2024, 1, 1)
	dec := date(2024, 12, 1)
	grid := dateGrid(jan, dec, stepMonth)

	require.Len(t, grid, 12)
	assert.Equal(t, "2024-01", monthKey(grid[0]))
	assert.Equal(t, "2024-12", monthKey(grid[11]))
}

func TestMonthBounds(t *testing.T) {
	start, end := monthBounds(date(2024, 2, 14))
	assert.Equal(t, date(2024, 2, 1), start)
	assert.Equal(t, "2024-02-29", dayKey(end)) // leap year
}

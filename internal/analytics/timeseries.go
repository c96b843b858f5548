package analytics

import (
	"time"

	"github.com/layoutdev-pt/prospout/internal/models"
)

const dayKeyFormat = "2006-01-02"

// dateGrid returns every bucket start from start to end inclusive, advanced by
// step. Both daily and monthly series are built on this one generator so the
// two modes cannot drift apart.
func dateGrid(start, end time.Time, step func(time.Time) time.Time) []time.Time {
	var out []time.Time
	for cur := start; !cur.After(end); cur = step(cur) {
		out = append(out, cur)
	}
	return out
}

func stepDay(t time.Time) time.Time   { return t.AddDate(0, 0, 1) }
func stepMonth(t time.Time) time.Time { return t.AddDate(0, 1, 0) }

// dayStart truncates to UTC midnight so a record's bucket does not depend on
// server locale.
func dayStart(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func endOfDay(t time.Time) time.Time {
	return dayStart(t).Add(24*time.Hour - time.Millisecond)
}

func dayKey(t time.Time) string   { return t.UTC().Format(dayKeyFormat) }
func monthKey(t time.Time) string { return t.UTC().Format("2006-01") }

// DefaultRange is the last 30 days ending today.
func DefaultRange(now time.Time) (time.Time, time.Time) {
	return dayStart(now.AddDate(0, 0, -29)), endOfDay(now)
}

// monthBounds returns the inclusive bounds of the calendar month containing t.
func monthBounds(t time.Time) (time.Time, time.Time) {
	y, m, _ := t.UTC().Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0).Add(-time.Millisecond)
}

// DailySeries buckets activities and closed deals onto a fixed day grid over
// [from, to]. The series always has one point per calendar day in
// chronological order, all-zero where nothing happened; records outside the
// grid are silently dropped.
func DailySeries(from, to time.Time, activities []models.Activity, deals []models.Deal) []models.DayPoint {
	grid := dateGrid(dayStart(from), endOfDay(to), stepDay)
	series := make([]models.DayPoint, len(grid))
	index := make(map[string]*models.DayPoint, len(grid))
	for i, d := range grid {
		series[i] = models.DayPoint{Date: dayKey(d)}
		index[series[i].Date] = &series[i]
	}

	for _, a := range activities {
		row, ok := index[dayKey(a.Date)]
		if !ok {
			continue
		}
		row.Calls += max0(a.ColdCallsMade)
		row.CallsAnswered += max0(a.ColdCallsAnswered)
		row.R1Scheduled += max0(a.R1ViaCall) + max0(a.MeetsViaDm) + max0(a.MeetsViaEmail)
		row.R1Completed += max0(a.R1Completed)
	}

	for _, d := range deals {
		if !d.Closed() {
			continue
		}
		row, ok := index[dayKey(*d.ClosedAt)]
		if !ok {
			continue
		}
		row.DealsClosed++
	}

	return series
}

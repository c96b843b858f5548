package analytics

import (
	"math"

	"github.com/layoutdev-pt/prospout/internal/models"
)

// safeDiv is the single division policy for every rate: a zero denominator
// yields 0, never NaN or Inf.
func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// pct converts a ratio of counters into a percentage with one decimal digit.
func pct(a, b int) float64 {
	return math.Round(safeDiv(float64(a), float64(b))*1000) / 10
}

func round1(f float64) float64 { return math.Round(f*10) / 10 }

// CalculateRates derives every percentage KPI from aggregated totals and the
// closed-deal count. Total over any input: no formula can divide by zero or
// return non-finite values.
func CalculateRates(t models.Totals, totalDeals int) models.Rates {
	r1Scheduled := TotalR1Scheduled(t)
	return models.Rates{
		PctCallsAnswered: pct(t.ColdCallsAnswered, t.TotalCalls),
		PctR1ViaCall:     pct(t.R1ViaCall, t.TotalCalls),
		PctDmResponse:    pct(t.ColdDmsReplied, t.ColdDmsSent),
		PctR1ViaDm:       pct(t.MeetsViaDm, t.ColdDmsReplied),
		PctEmailReply:    pct(t.EmailsReplied, t.EmailsSent),
		PctEmailOpen:     pct(t.EmailsOpened, t.EmailsSent),

		PctR1ShowRate: pct(t.R1Completed, r1Scheduled),
		PctR2ShowRate: pct(t.R2Completed, t.R2Scheduled),
		PctR3ShowRate: pct(t.R3Completed, t.R3Scheduled),

		PctR1ToClose: pct(totalDeals, t.R1Completed),
		PctR2ToClose: pct(totalDeals, t.R2Completed),
		PctR3ToClose: pct(totalDeals, t.R3Completed),

		PctR1ToVerbal: pct(t.VerbalAgreements, t.R1Completed),
		PctR2ToVerbal: pct(t.VerbalAgreements, t.R2Completed),
		PctR3ToVerbal: pct(t.VerbalAgreements, t.R3Completed),

		PctR1ToR2: pct(t.R2Scheduled, t.R1Completed),
		PctR2ToR3: pct(t.R3Scheduled, t.R2Completed),
	}
}

// DealMetrics counts closed deals and averages their time-to-cash. A deal's
// time-to-cash is its stored value when present, else the createdAt→closedAt
// span in days rounded to one decimal. avg is nil when no closed deal has a
// resolvable value.
func DealMetrics(deals []models.Deal) (totalDeals int, avg *float64) {
	var sum float64
	var n int
	for _, d := range deals {
		if !d.Closed() {
			continue
		}
		totalDeals++
		if v, ok := timeToCash(d); ok {
			sum += v
			n++
		}
	}
	if n > 0 {
		m := round1(sum / float64(n))
		avg = &m
	}
	return totalDeals, avg
}

func timeToCash(d models.Deal) (float64, bool) {
	if d.TimeToCashDays != nil {
		return *d.TimeToCashDays, true
	}
	if d.ClosedAt != nil && !d.CreatedAt.IsZero() {
		return round1(d.ClosedAt.Sub(d.CreatedAt).Hours() / 24), true
	}
	return 0, false
}

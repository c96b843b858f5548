package analytics

import "github.com/layoutdev-pt/prospout/internal/models"

// Aggregate reduces a collection of activities into elementwise counter sums.
// Pure and order-independent; an empty input yields all zeros. Negative
// counters are treated as 0 even though the store clamps on insert, so the
// reduction stays total over any input.
func Aggregate(activities []models.Activity) models.Totals {
	var t models.Totals
	for _, a := range activities {
		t.TotalCalls += max0(a.ColdCallsMade)
		t.ColdCallsAnswered += max0(a.ColdCallsAnswered)
		t.R1ViaCall += max0(a.R1ViaCall)
		t.ColdDmsSent += max0(a.ColdDmsSent)
		t.ColdDmsReplied += max0(a.ColdDmsReplied)
		t.MeetsViaDm += max0(a.MeetsViaDm)
		t.EmailsSent += max0(a.EmailsSent)
		t.EmailsOpened += max0(a.EmailsOpened)
		t.EmailsReplied += max0(a.EmailsReplied)
		t.MeetsViaEmail += max0(a.MeetsViaEmail)

		t.R1Completed += max0(a.R1Completed)
		t.R2Scheduled += max0(a.R2Scheduled)
		t.R2Completed += max0(a.R2Completed)
		t.R3Scheduled += max0(a.R3Scheduled)
		t.R3Completed += max0(a.R3Completed)

		t.VerbalAgreements += max0(a.VerbalAgreements)
		t.DealsClosedFromActivities += max0(a.DealsClosed)
	}
	return t
}

// TotalR1Scheduled is the number of discovery meetings booked across all
// three prospecting channels.
func TotalR1Scheduled(t models.Totals) int {
	return t.R1ViaCall + t.MeetsViaDm + t.MeetsViaEmail
}

func max0(i int) int {
	if i < 0 {
		return 0
	}
	return i
}

package models

import "time"

// Pipeline partitions all activity and deal data into top-level lead categories.
type Pipeline string

const (
	PipelineCompanies   Pipeline = "COMPANIES"
	PipelineInfluencers Pipeline = "INFLUENCERS"
)

func (p Pipeline) Valid() bool {
	return p == PipelineCompanies || p == PipelineInfluencers
}

// Activity is one logging event's outreach counters for a single pipeline.
// Immutable after insertion.
type Activity struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	Pipeline Pipeline  `json:"pipeline"`
	Date     time.Time `json:"date"`

	// Prospecting
	ColdCallsMade     int `json:"coldCallsMade"`
	ColdCallsAnswered int `json:"coldCallsAnswered"`
	R1ViaCall         int `json:"r1ViaCall"`
	ColdDmsSent       int `json:"coldDmsSent"`
	ColdDmsReplied    int `json:"coldDmsReplied"`
	MeetsViaDm        int `json:"meetsViaDm"`
	EmailsSent        int `json:"emailsSent"`
	EmailsOpened      int `json:"emailsOpened"`
	EmailsReplied     int `json:"emailsReplied"`
	MeetsViaEmail     int `json:"meetsViaEmail"`

	// Meeting stages: R1 discovery, R2 follow-up, R3 Q&A
	R1Completed int `json:"r1Completed"`
	R2Scheduled int `json:"r2Scheduled"`
	R2Completed int `json:"r2Completed"`
	R3Scheduled int `json:"r3Scheduled"`
	R3Completed int `json:"r3Completed"`

	// Closing
	VerbalAgreements int `json:"verbalAgreements"`
	DealsClosed      int `json:"dealsClosed"`

	AvgTimeToCashDays *float64 `json:"avgTimeToCashDays,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Deal is a single sales opportunity. A deal is closed iff ClosedAt is set.
type Deal struct {
	ID              string     `json:"id"`
	UserID          string     `json:"userId"`
	Pipeline        Pipeline   `json:"pipeline"`
	CreatedAt       time.Time  `json:"createdAt"`
	ClosedAt        *time.Time `json:"closedAt,omitempty"`
	VerbalAgreement bool       `json:"verbalAgreement"`
	Value           *float64   `json:"value,omitempty"`
	TimeToCashDays  *float64   `json:"timeToCashDays,omitempty"`
}

func (d Deal) Closed() bool { return d.ClosedAt != nil }

// Totals is the elementwise sum of every Activity counter across a filtered
// collection. DealsClosedFromActivities mirrors the manual per-activity counter
// and is reported separately from the Deal-derived TotalDeals so one real
// closing logged both ways is never counted twice.
type Totals struct {
	TotalCalls        int `json:"totalCalls"`
	ColdCallsAnswered int `json:"coldCallsAnswered"`
	R1ViaCall         int `json:"r1ViaCall"`
	ColdDmsSent       int `json:"coldDmsSent"`
	ColdDmsReplied    int `json:"coldDmsReplied"`
	MeetsViaDm        int `json:"meetsViaDm"`
	EmailsSent        int `json:"emailsSent"`
	EmailsOpened      int `json:"emailsOpened"`
	EmailsReplied     int `json:"emailsReplied"`
	MeetsViaEmail     int `json:"meetsViaEmail"`

	R1Completed int `json:"r1Completed"`
	R2Scheduled int `json:"r2Scheduled"`
	R2Completed int `json:"r2Completed"`
	R3Scheduled int `json:"r3Scheduled"`
	R3Completed int `json:"r3Completed"`

	VerbalAgreements          int `json:"verbalAgreements"`
	DealsClosedFromActivities int `json:"dealsClosedFromActivities"`
}

// Rates holds every derived percentage KPI, each with one decimal of percent.
// To-close ratios can exceed 100 because the numerator is the total closed
// deal count, not a stage-specific one.
type Rates struct {
	PctCallsAnswered float64 `json:"pctCallsAnswered"`
	PctR1ViaCall     float64 `json:"pctR1ViaCall"`
	PctDmResponse    float64 `json:"pctDmResponse"`
	PctR1ViaDm       float64 `json:"pctR1ViaDm"`
	PctEmailReply    float64 `json:"pctEmailReply"`
	PctEmailOpen     float64 `json:"pctEmailOpen"`

	PctR1ShowRate float64 `json:"pctR1ShowRate"`
	PctR2ShowRate float64 `json:"pctR2ShowRate"`
	PctR3ShowRate float64 `json:"pctR3ShowRate"`

	PctR1ToClose float64 `json:"pctR1ToClose"`
	PctR2ToClose float64 `json:"pctR2ToClose"`
	PctR3ToClose float64 `json:"pctR3ToClose"`

	PctR1ToVerbal float64 `json:"pctR1ToVerbal"`
	PctR2ToVerbal float64 `json:"pctR2ToVerbal"`
	PctR3ToVerbal float64 `json:"pctR3ToVerbal"`

	PctR1ToR2 float64 `json:"pctR1ToR2"`
	PctR2ToR3 float64 `json:"pctR2ToR3"`
}

// DayPoint is one bucket of the daily time series. Date is the YYYY-MM-DD key.
type DayPoint struct {
	Date          string `json:"date"`
	Calls         int    `json:"calls"`
	CallsAnswered int    `json:"callsAnswered"`
	R1Scheduled   int    `json:"r1Scheduled"`
	R1Completed   int    `json:"r1Completed"`
	DealsClosed   int    `json:"dealsClosed"`
}

// Result is the consolidated analytics output for one filter.
type Result struct {
	Totals            Totals   `json:"totals"`
	TotalDeals        int      `json:"totalDeals"`
	AvgTimeToCashDays *float64 `json:"avgTimeToCashDays"`
	Rates
	TimeSeries []DayPoint `json:"timeSeries"`
}

// MonthEntry is one month of the yearly rollup. Month is the YYYY-MM key.
type MonthEntry struct {
	Month             string   `json:"month"`
	Totals            Totals   `json:"totals"`
	TotalDeals        int      `json:"totalDeals"`
	AvgTimeToCashDays *float64 `json:"avgTimeToCashDays"`
}

// MonthlyRollup covers all 12 months of one year, in calendar order.
type MonthlyRollup struct {
	Year     int          `json:"year"`
	Pipeline string       `json:"pipeline"`
	Months   []MonthEntry `json:"months"`
}

// FinanceType categorizes a finance entry as money in or money out.
type FinanceType string

const (
	FinanceRevenue FinanceType = "REVENUE"
	FinanceExpense FinanceType = "EXPENSE"
)

func (t FinanceType) Valid() bool {
	return t == FinanceRevenue || t == FinanceExpense
}

// FinanceEntry is one manually logged revenue or expense item.
type FinanceEntry struct {
	ID          string      `json:"id"`
	UserID      string      `json:"userId"`
	Date        time.Time   `json:"date"`
	Type        FinanceType `json:"type"`
	Category    string      `json:"category"`
	Amount      float64     `json:"amount"`
	Description string      `json:"description"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// FinancePeriod is one month of the profit series. Period is the YYYY-MM key.
type FinancePeriod struct {
	Period   string  `json:"period"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
	Profit   float64 `json:"profit"`
}

// FinanceSummary is the consolidated profit/loss view: overall totals plus a
// per-month series covering only months that have entries, ascending.
type FinanceSummary struct {
	Revenue  float64         `json:"revenue"`
	Expenses float64         `json:"expenses"`
	Profit   float64         `json:"profit"`
	Series   []FinancePeriod `json:"series"`
}

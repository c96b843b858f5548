package ingest

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/layoutdev-pt/prospout/internal/analytics"
	"github.com/layoutdev-pt/prospout/internal/config"
	"github.com/layoutdev-pt/prospout/internal/models"
	"github.com/layoutdev-pt/prospout/internal/store"
)

// Feed pulls activity/deal records from an external feed into the store and
// pushes signed daily analytics snapshots to a sink.
type Feed struct {
	c   HTTPClient
	st  *store.MemoryStore
	svc *analytics.Service
	log *slog.Logger
	cfg config.Config
}

func NewFeed(c HTTPClient, st *store.MemoryStore, svc *analytics.Service, log *slog.Logger, cfg config.Config) *Feed {
	return &Feed{c: c, st: st, svc: svc, log: log, cfg: cfg}
}

type feedResp struct {
	Activities []activityRec `json:"activities"`
	Deals      []dealRec     `json:"deals"`
}

type activityRec struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Pipeline string `json:"pipeline"`
	Date     string `json:"date"`

	ColdCallsMade     int `json:"cold_calls_made"`
	ColdCallsAnswered int `json:"cold_calls_answered"`
	R1ViaCall         int `json:"r1_via_call"`
	ColdDmsSent       int `json:"cold_dms_sent"`
	ColdDmsReplied    int `json:"cold_dms_replied"`
	MeetsViaDm        int `json:"meets_via_dm"`
	EmailsSent        int `json:"emails_sent"`
	EmailsOpened      int `json:"emails_opened"`
	EmailsReplied     int `json:"emails_replied"`
	MeetsViaEmail     int `json:"meets_via_email"`

	R1Completed int `json:"r1_completed"`
	R2Scheduled int `json:"r2_scheduled"`
	R2Completed int `json:"r2_completed"`
	R3Scheduled int `json:"r3_scheduled"`
	R3Completed int `json:"r3_completed"`

	VerbalAgreements int `json:"verbal_agreements"`
	DealsClosed      int `json:"deals_closed"`

	AvgTimeToCashDays *float64 `json:"avg_time_to_cash_days"`
}

type dealRec struct {
	ID              string   `json:"id"`
	UserID          string   `json:"user_id"`
	Pipeline        string   `json:"pipeline"`
	CreatedAt       string   `json:"created_at"`
	ClosedAt        string   `json:"closed_at"`
	VerbalAgreement bool     `json:"verbal_agreement"`
	Value           *float64 `json:"value"`
	TimeToCashDays  *float64 `json:"time_to_cash_days"`
}

// Run fetches the configured feed once and inserts every unseen record dated
// on or after since (all records when since is nil). Records with unparseable
// dates are skipped, not fatal. Returns the number of records added.
func (f *Feed) Run(ctx context.Context, since *time.Time) (int, error) {
	if f.cfg.FeedURL == "" {
		return 0, errors.New("feed not configured")
	}

	var resp feedResp
	if err := GetJSONWithRetry(ctx, f.c, f.cfg.FeedURL, &resp); err != nil {
		return 0, err
	}

	added := 0
	for _, r := range resp.Activities {
		d, ok := analytics.ParseDate(r.Date)
		if !ok {
			continue
		}
		if since != nil && dayUTC(d).Before(dayUTC(*since)) {
			continue
		}
		key := "activity|" + r.ID
		if r.ID == "" {
			key = "activity|" + r.Date + "|" + r.UserID
		}
		if !f.st.MarkSeen(key) {
			continue
		}
		f.st.AddActivity(models.Activity{
			ID:       strings.TrimSpace(r.ID),
			UserID:   strings.TrimSpace(r.UserID),
			Pipeline: models.Pipeline(strings.ToUpper(strings.TrimSpace(r.Pipeline))),
			Date:     d,

			ColdCallsMade:     r.ColdCallsMade,
			ColdCallsAnswered: r.ColdCallsAnswered,
			R1ViaCall:         r.R1ViaCall,
			ColdDmsSent:       r.ColdDmsSent,
			ColdDmsReplied:    r.ColdDmsReplied,
			MeetsViaDm:        r.MeetsViaDm,
			EmailsSent:        r.EmailsSent,
			EmailsOpened:      r.EmailsOpened,
			EmailsReplied:     r.EmailsReplied,
			MeetsViaEmail:     r.MeetsViaEmail,

			R1Completed: r.R1Completed,
			R2Scheduled: r.R2Scheduled,
			R2Completed: r.R2Completed,
			R3Scheduled: r.R3Scheduled,
			R3Completed: r.R3Completed,

			VerbalAgreements:  r.VerbalAgreements,
			DealsClosed:       r.DealsClosed,
			AvgTimeToCashDays: r.AvgTimeToCashDays,
		})
		added++
	}

	for _, r := range resp.Deals {
		created, ok := analytics.ParseDate(r.CreatedAt)
		if !ok {
			continue
		}
		if since != nil && dayUTC(created).Before(dayUTC(*since)) {
			continue
		}
		key := "deal|" + r.ID
		if r.ID == "" {
			key = "deal|" + r.CreatedAt + "|" + r.UserID
		}
		if !f.st.MarkSeen(key) {
			continue
		}
		d := models.Deal{
			ID:              strings.TrimSpace(r.ID),
			UserID:          strings.TrimSpace(r.UserID),
			Pipeline:        models.Pipeline(strings.ToUpper(strings.TrimSpace(r.Pipeline))),
			CreatedAt:       created,
			VerbalAgreement: r.VerbalAgreement,
			Value:           r.Value,
			TimeToCashDays:  r.TimeToCashDays,
		}
		if closed, ok := analytics.ParseDate(r.ClosedAt); ok {
			d.ClosedAt = &closed
		}
		f.st.AddDeal(d)
		added++
	}

	f.log.Info("feed ingest complete", slog.Int("added", added))
	return added, nil
}

// ExportDay posts the analytics snapshot for one day to the configured sink,
// signed with HMAC-SHA256. Returns the number of activity records covered;
// a day with no activity is skipped without calling the sink.
func (f *Feed) ExportDay(ctx context.Context, date time.Time) (int, error) {
	if f.cfg.SinkURL == "" || f.cfg.SinkSecret == "" {
		return 0, errors.New("sink not configured")
	}

	day := dayUTC(date)
	n := len(f.st.ListActivities(store.Filter{From: &day, To: ptr(day.Add(24*time.Hour - time.Millisecond))}))
	if n == 0 {
		return 0, nil
	}

	res := f.svc.Query(analytics.Filter{From: &day, To: &day})
	b, err := json.Marshal(res)
	if err != nil {
		return 0, err
	}
	mac := hmac.New(sha256.New, []byte(f.cfg.SinkSecret))
	mac.Write(b)
	sig := hex.EncodeToString(mac.Sum(nil))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.cfg.SinkURL, strings.NewReader(string(b)))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Signature", sig)
	resp, err := f.c.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, errors.New("export sink non-2xx")
	}
	return n, nil
}

func dayUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

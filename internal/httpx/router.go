package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/layoutdev-pt/prospout/internal/analytics"
	"github.com/layoutdev-pt/prospout/internal/ingest"
	"github.com/layoutdev-pt/prospout/internal/models"
	"github.com/layoutdev-pt/prospout/internal/store"
	"github.com/layoutdev-pt/prospout/internal/utils"
)

type dealPayload struct {
	UserID          string   `json:"userId"`
	Pipeline        string   `json:"pipeline"`
	CreatedAt       string   `json:"createdAt"`
	ClosedAt        string   `json:"closedAt"`
	VerbalAgreement bool     `json:"verbalAgreement"`
	Value           *float64 `json:"value"`
	TimeToCashDays  *float64 `json:"timeToCashDays"`
}

type activityPayload struct {
	UserID   string `json:"userId"`
	Pipeline string `json:"pipeline"`
	Date     string `json:"date"`

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

	R1Completed int `json:"r1Completed"`
	R2Scheduled int `json:"r2Scheduled"`
	R2Completed int `json:"r2Completed"`
	R3Scheduled int `json:"r3Scheduled"`
	R3Completed int `json:"r3Completed"`

	VerbalAgreements int `json:"verbalAgreements"`
	DealsClosed      int `json:"dealsClosed"`

	AvgTimeToCashDays *float64 `json:"avgTimeToCashDays"`

	// Deal records logged together with the activity.
	Deals []dealPayload `json:"deals"`
}

type financePayload struct {
	UserID      string   `json:"userId"`
	Date        string   `json:"date"`
	Type        string   `json:"type"`
	Category    string   `json:"category"`
	Amount      *float64 `json:"amount"`
	Description string   `json:"description"`
}

func NewRouter(log *slog.Logger, st *store.MemoryStore, svc *analytics.Service, feed *ingest.Feed) http.Handler {
	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(log))
	mux.Use(utils.Metrics)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ready")) })
	mux.Handle("/metrics", promhttp.Handler())

	mux.Get("/api/activities", func(w http.ResponseWriter, r *http.Request) {
		f := analytics.ParseFilter(r.URL.Query())
		sf := store.Filter{Pipeline: f.Pipeline, From: f.From, To: f.To, UserID: f.UserID}
		writeJSON(w, map[string]any{"activities": st.ListActivities(sf)})
	})

	mux.Post("/api/activities", func(w http.ResponseWriter, r *http.Request) {
		var p activityPayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, "bad payload", 400)
			return
		}
		a := models.Activity{
			UserID:   p.UserID,
			Pipeline: models.Pipeline(strings.ToUpper(strings.TrimSpace(p.Pipeline))),

			ColdCallsMade:     p.ColdCallsMade,
			ColdCallsAnswered: p.ColdCallsAnswered,
			R1ViaCall:         p.R1ViaCall,
			ColdDmsSent:       p.ColdDmsSent,
			ColdDmsReplied:    p.ColdDmsReplied,
			MeetsViaDm:        p.MeetsViaDm,
			EmailsSent:        p.EmailsSent,
			EmailsOpened:      p.EmailsOpened,
			EmailsReplied:     p.EmailsReplied,
			MeetsViaEmail:     p.MeetsViaEmail,

			R1Completed: p.R1Completed,
			R2Scheduled: p.R2Scheduled,
			R2Completed: p.R2Completed,
			R3Scheduled: p.R3Scheduled,
			R3Completed: p.R3Completed,

			VerbalAgreements:  p.VerbalAgreements,
			DealsClosed:       p.DealsClosed,
			AvgTimeToCashDays: p.AvgTimeToCashDays,
		}
		if t, ok := analytics.ParseDate(p.Date); ok {
			a.Date = t
		}
		created := st.AddActivity(a)

		for _, dp := range p.Deals {
			if dp.Pipeline == "" {
				dp.Pipeline = p.Pipeline
			}
			st.AddDeal(toDeal(dp))
		}

		writeJSON(w, map[string]any{"created": created})
	})

	mux.Get("/api/deals", func(w http.ResponseWriter, r *http.Request) {
		f := analytics.ParseFilter(r.URL.Query())
		writeJSON(w, map[string]any{"deals": st.ListDeals(store.Filter{Pipeline: f.Pipeline, UserID: f.UserID})})
	})

	mux.Post("/api/deals", func(w http.ResponseWriter, r *http.Request) {
		var p dealPayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, "bad payload", 400)
			return
		}
		writeJSON(w, map[string]any{"created": st.AddDeal(toDeal(p))})
	})

	mux.Get("/api/analytics", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, svc.Query(analytics.ParseFilter(r.URL.Query())))
	})

	mux.Get("/api/analytics/monthly", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		year := atoiDef(q.Get("year"), time.Now().UTC().Year())
		writeJSON(w, svc.Monthly(year, analytics.ParseFilter(q)))
	})

	mux.Get("/api/finance", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, svc.Finance(analytics.ParseFilter(r.URL.Query())))
	})

	mux.Post("/api/finance", func(w http.ResponseWriter, r *http.Request) {
		var p financePayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, "bad payload", 400)
			return
		}
		typ := models.FinanceType(strings.ToUpper(strings.TrimSpace(p.Type)))
		if !typ.Valid() {
			http.Error(w, "type must be REVENUE or EXPENSE", 400)
			return
		}
		e := models.FinanceEntry{
			UserID:      p.UserID,
			Type:        typ,
			Category:    strings.TrimSpace(p.Category),
			Description: strings.TrimSpace(p.Description),
		}
		if p.Amount != nil {
			e.Amount = *p.Amount
		}
		if t, ok := analytics.ParseDate(p.Date); ok {
			e.Date = t
		}
		writeJSON(w, map[string]any{"created": st.AddFinanceEntry(e)})
	})

	mux.Post("/api/reset", func(w http.ResponseWriter, r *http.Request) {
		st.Reset()
		writeJSON(w, map[string]any{"ok": true})
	})

	mux.Get("/api/reset", func(w http.ResponseWriter, r *http.Request) {
		activities, deals, finance := st.Counts()
		writeJSON(w, map[string]any{"activities": activities, "deals": deals, "finance": finance})
	})

	mux.Post("/ingest/run", func(w http.ResponseWriter, r *http.Request) {
		var since *time.Time
		if t, ok := analytics.ParseDate(r.URL.Query().Get("since")); ok {
			since = &t
		}
		added, err := feed.Run(r.Context(), since)
		if err != nil {
			http.Error(w, err.Error(), 502)
			return
		}
		writeJSON(w, map[string]any{"added": added})
	})

	mux.Post("/export/run", func(w http.ResponseWriter, r *http.Request) {
		t, ok := analytics.ParseDate(r.URL.Query().Get("date"))
		if !ok {
			http.Error(w, "date required (YYYY-MM-DD)", 400)
			return
		}
		n, err := feed.ExportDay(r.Context(), t)
		if err != nil {
			http.Error(w, err.Error(), 502)
			return
		}
		writeJSON(w, map[string]any{"exported": n})
	})

	return mux
}

func toDeal(p dealPayload) models.Deal {
	d := models.Deal{
		UserID:          p.UserID,
		Pipeline:        models.Pipeline(strings.ToUpper(strings.TrimSpace(p.Pipeline))),
		VerbalAgreement: p.VerbalAgreement,
		Value:           p.Value,
		TimeToCashDays:  p.TimeToCashDays,
	}
	if t, ok := analytics.ParseDate(p.CreatedAt); ok {
		d.CreatedAt = t
	}
	if t, ok := analytics.ParseDate(p.ClosedAt); ok {
		d.ClosedAt = &t
	}
	return d
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	enc.Encode(v)
}

func atoiDef(s string, d int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return v
}

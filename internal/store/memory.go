package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/layoutdev-pt/prospout/internal/models"
)

// Filter narrows a listing. Nil/empty fields match everything; date bounds are
// inclusive and only apply to activities.
type Filter struct {
	Pipeline *models.Pipeline
	From     *time.Time
	To       *time.Time
	UserID   string
}

// MemoryStore holds all activity and deal records. Records are immutable once
// inserted; the only mutation besides insert is a full Reset.
type MemoryStore struct {
	mu         sync.RWMutex
	activities []models.Activity
	deals      []models.Deal
	finance    []models.FinanceEntry
	seen       map[string]struct{} // idempotency keys for feed ingest
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{seen: make(map[string]struct{})}
}

// MarkSeen records an ingest idempotency key, returning false if it was
// already present.
func (s *MemoryStore) MarkSeen(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = struct{}{}
	return true
}

// AddActivity inserts one activity, filling id/date/pipeline defaults and
// clamping negative counters to 0. Returns the stored record.
func (s *MemoryStore) AddActivity(a models.Activity) models.Activity {
	now := time.Now().UTC()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.UserID == "" {
		a.UserID = "local-user"
	}
	if !a.Pipeline.Valid() {
		a.Pipeline = models.PipelineCompanies
	}
	if a.Date.IsZero() {
		a.Date = now
	}
	a.CreatedAt = now

	a.ColdCallsMade = max0(a.ColdCallsMade)
	a.ColdCallsAnswered = max0(a.ColdCallsAnswered)
	a.R1ViaCall = max0(a.R1ViaCall)
	a.ColdDmsSent = max0(a.ColdDmsSent)
	a.ColdDmsReplied = max0(a.ColdDmsReplied)
	a.MeetsViaDm = max0(a.MeetsViaDm)
	a.EmailsSent = max0(a.EmailsSent)
	a.EmailsOpened = max0(a.EmailsOpened)
	a.EmailsReplied = max0(a.EmailsReplied)
	a.MeetsViaEmail = max0(a.MeetsViaEmail)
	a.R1Completed = max0(a.R1Completed)
	a.R2Scheduled = max0(a.R2Scheduled)
	a.R2Completed = max0(a.R2Completed)
	a.R3Scheduled = max0(a.R3Scheduled)
	a.R3Completed = max0(a.R3Completed)
	a.VerbalAgreements = max0(a.VerbalAgreements)
	a.DealsClosed = max0(a.DealsClosed)
	if a.AvgTimeToCashDays != nil && *a.AvgTimeToCashDays < 0 {
		a.AvgTimeToCashDays = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = append(s.activities, a)
	return a
}

// AddDeal inserts one deal, filling id/pipeline/createdAt defaults. Returns
// the stored record.
func (s *MemoryStore) AddDeal(d models.Deal) models.Deal {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.UserID == "" {
		d.UserID = "local-user"
	}
	if !d.Pipeline.Valid() {
		d.Pipeline = models.PipelineCompanies
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	if d.Value != nil && *d.Value < 0 {
		d.Value = nil
	}
	if d.TimeToCashDays != nil && *d.TimeToCashDays < 0 {
		d.TimeToCashDays = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.deals = append(s.deals, d)
	return d
}

// AddFinanceEntry inserts one revenue/expense item, filling id/date defaults
// and clamping a negative amount to 0. Returns the stored record.
func (s *MemoryStore) AddFinanceEntry(e models.FinanceEntry) models.FinanceEntry {
	now := time.Now().UTC()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.UserID == "" {
		e.UserID = "local-user"
	}
	if e.Date.IsZero() {
		e.Date = now
	}
	e.CreatedAt = now
	if e.Amount < 0 {
		e.Amount = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.finance = append(s.finance, e)
	return e
}

// ListFinance returns a copy of every finance entry matching the filter's
// user and inclusive date bounds.
func (s *MemoryStore) ListFinance(f Filter) []models.FinanceEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.FinanceEntry, 0, len(s.finance))
	for _, e := range s.finance {
		if f.UserID != "" && e.UserID != f.UserID {
			continue
		}
		if f.From != nil && e.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && e.Date.After(*f.To) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// ListActivities returns a copy of every activity matching the filter.
// An unmatched filter yields an empty slice, never an error.
func (s *MemoryStore) ListActivities(f Filter) []models.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Activity, 0, len(s.activities))
	for _, a := range s.activities {
		if f.Pipeline != nil && a.Pipeline != *f.Pipeline {
			continue
		}
		if f.UserID != "" && a.UserID != f.UserID {
			continue
		}
		if f.From != nil && a.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && a.Date.After(*f.To) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// ListDeals returns a copy of every deal matching the filter's pipeline and
// user. Date bounds are ignored: deal attribution by date is the engine's job.
func (s *MemoryStore) ListDeals(f Filter) []models.Deal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Deal, 0, len(s.deals))
	for _, d := range s.deals {
		if f.Pipeline != nil && d.Pipeline != *f.Pipeline {
			continue
		}
		if f.UserID != "" && d.UserID != f.UserID {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Reset drops every record and all idempotency keys.
func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = nil
	s.deals = nil
	s.finance = nil
	s.seen = make(map[string]struct{})
}

// Counts reports the number of stored records of each kind.
func (s *MemoryStore) Counts() (activities, deals, finance int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.activities), len(s.deals), len(s.finance)
}

func max0(i int) int {
	if i < 0 {
		return 0
	}
	return i
}

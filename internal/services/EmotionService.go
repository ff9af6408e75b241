package services

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"emotrack/internal/models"

	"go.uber.org/atomic"
)

// DefaultWindowDays applies when a query passes a non-positive window.
const DefaultWindowDays = 30

// PersisterInterface writes the full store snapshot durably.
type PersisterInterface interface {
	Save(storage *models.Storage) error
}

type EmotionServiceInterface interface {
	Upsert(record models.EmotionRecord) (models.EmotionRecord, error)
	QueryBySubject(subjectID string, windowDays int) []models.EmotionRecord
	QueryBySubjects(subjectIDs []string, windowDays int) []models.EmotionRecord
	QueryToday(subjectID string) models.TodayRecords
	All() []models.EmotionRecord
	Len() int
	Revision() uint64
	Reset() error
	ResolveAlert(id string) error
	ResolvedAlerts() map[string]struct{}
	Snapshot() *models.Storage
	Restore(storage *models.Storage)
	Now() time.Time
}

type EmotionService struct {
	mu        sync.RWMutex
	records   []models.EmotionRecord
	index     map[string]int
	resolved  []string
	persister PersisterInterface
	revision  *atomic.Uint64
	now       func() time.Time
}

func (es *EmotionService) Now() time.Time {
	return es.now()
}

// Upsert stores the record under its derived id, replacing an earlier
// declaration for the same subject, day and period. The new state is
// persisted before it becomes visible; on a write failure nothing changes.
func (es *EmotionService) Upsert(record models.EmotionRecord) (models.EmotionRecord, error) {
	record.ID = models.RecordID(record.SubjectID, record.Date, record.Period)
	record.RecordedAt = es.now()

	es.mu.Lock()
	defer es.mu.Unlock()

	next := make([]models.EmotionRecord, len(es.records), len(es.records)+1)
	copy(next, es.records)
	pos, exists := es.index[record.ID]
	if exists {
		next[pos] = record
	} else {
		next = append(next, record)
	}

	if err := es.persist(next, es.resolved); err != nil {
		return models.EmotionRecord{}, err
	}

	es.records = next
	if !exists {
		es.index[record.ID] = len(next) - 1
	}
	es.revision.Inc()
	return record, nil
}

func (es *EmotionService) QueryBySubject(subjectID string, windowDays int) []models.EmotionRecord {
	return es.query(windowDays, func(r *models.EmotionRecord) bool {
		return r.SubjectID == subjectID
	})
}

func (es *EmotionService) QueryBySubjects(subjectIDs []string, windowDays int) []models.EmotionRecord {
	set := make(map[string]struct{}, len(subjectIDs))
	for _, id := range subjectIDs {
		set[id] = struct{}{}
	}
	return es.query(windowDays, func(r *models.EmotionRecord) bool {
		_, ok := set[r.SubjectID]
		return ok
	})
}

func (es *EmotionService) QueryToday(subjectID string) models.TodayRecords {
	today := models.FormatDate(es.now())

	es.mu.RLock()
	defer es.mu.RUnlock()

	var result models.TodayRecords
	if i, ok := es.index[models.RecordID(subjectID, today, models.PeriodMorning)]; ok {
		r := es.records[i]
		result.Morning = &r
	}
	if i, ok := es.index[models.RecordID(subjectID, today, models.PeriodEvening)]; ok {
		r := es.records[i]
		result.Evening = &r
	}
	return result
}

// All returns every record in store order.
func (es *EmotionService) All() []models.EmotionRecord {
	es.mu.RLock()
	defer es.mu.RUnlock()

	out := make([]models.EmotionRecord, len(es.records))
	copy(out, es.records)
	return out
}

func (es *EmotionService) Len() int {
	es.mu.RLock()
	defer es.mu.RUnlock()
	return len(es.records)
}

// Revision increases on every successful mutation.
func (es *EmotionService) Revision() uint64 {
	return es.revision.Load()
}

func (es *EmotionService) Reset() error {
	es.mu.Lock()
	defer es.mu.Unlock()

	if err := es.persist([]models.EmotionRecord{}, []string{}); err != nil {
		return err
	}
	es.records = make([]models.EmotionRecord, 0)
	es.index = make(map[string]int)
	es.resolved = make([]string, 0)
	es.revision.Inc()
	return nil
}

func (es *EmotionService) ResolveAlert(id string) error {
	es.mu.Lock()
	defer es.mu.Unlock()

	for _, r := range es.resolved {
		if r == id {
			return nil
		}
	}
	next := make([]string, len(es.resolved), len(es.resolved)+1)
	copy(next, es.resolved)
	next = append(next, id)

	if err := es.persist(es.records, next); err != nil {
		return err
	}
	es.resolved = next
	es.revision.Inc()
	return nil
}

func (es *EmotionService) ResolvedAlerts() map[string]struct{} {
	es.mu.RLock()
	defer es.mu.RUnlock()

	out := make(map[string]struct{}, len(es.resolved))
	for _, id := range es.resolved {
		out[id] = struct{}{}
	}
	return out
}

func (es *EmotionService) Snapshot() *models.Storage {
	es.mu.RLock()
	defer es.mu.RUnlock()
	return es.snapshot(es.records, es.resolved)
}

// Restore replaces the whole state without persisting it.
func (es *EmotionService) Restore(storage *models.Storage) {
	es.mu.Lock()
	defer es.mu.Unlock()

	es.records = make([]models.EmotionRecord, 0, len(storage.Records))
	es.index = make(map[string]int, len(storage.Records))
	for _, r := range storage.Records {
		if pos, ok := es.index[r.ID]; ok {
			es.records[pos] = r
			continue
		}
		es.index[r.ID] = len(es.records)
		es.records = append(es.records, r)
	}
	es.resolved = append(make([]string, 0, len(storage.ResolvedAlerts)), storage.ResolvedAlerts...)
	es.revision.Inc()
}

func (es *EmotionService) query(windowDays int, match func(*models.EmotionRecord) bool) []models.EmotionRecord {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	now := es.now()
	cutoff := models.FormatDate(now.AddDate(0, 0, -windowDays))
	today := models.FormatDate(now)

	es.mu.RLock()
	result := make([]models.EmotionRecord, 0)
	for i := range es.records {
		r := &es.records[i]
		if r.Date >= cutoff && r.Date <= today && match(r) {
			result = append(result, *r)
		}
	}
	es.mu.RUnlock()

	sortNewestFirst(result)
	return result
}

// sortNewestFirst orders by date descending, evening before morning on the
// same day, then by most recent recording.
func sortNewestFirst(records []models.EmotionRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := &records[i], &records[j]
		if a.Date != b.Date {
			return a.Date > b.Date
		}
		if a.Period != b.Period {
			return a.Period == models.PeriodEvening
		}
		return a.RecordedAt.After(b.RecordedAt)
	})
}

func (es *EmotionService) persist(records []models.EmotionRecord, resolved []string) error {
	if err := es.persister.Save(es.snapshot(records, resolved)); err != nil {
		return fmt.Errorf("persisting emotion records: %w", err)
	}
	return nil
}

func (es *EmotionService) snapshot(records []models.EmotionRecord, resolved []string) *models.Storage {
	s := &models.Storage{
		Version:        models.StorageVersion,
		Records:        make([]models.EmotionRecord, len(records)),
		ResolvedAlerts: make([]string, len(resolved)),
	}
	copy(s.Records, records)
	copy(s.ResolvedAlerts, resolved)
	return s
}

func NewEmotionService(persister PersisterInterface) EmotionServiceInterface {
	return &EmotionService{
		records:   make([]models.EmotionRecord, 0),
		index:     make(map[string]int),
		resolved:  make([]string, 0),
		persister: persister,
		revision:  atomic.NewUint64(0),
		now:       time.Now,
	}
}

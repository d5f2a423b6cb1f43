package services

import (
	"fmt"
	"sync"
	"time"

	"cpms-admin-api/config"
	"cpms-admin-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReminderLedger is the dedup store keyed by (project, review, calendar day).
// MarkNotified is idempotent, but callers must check AlreadyNotified first
// and skip dispatch: marking only stops the scan from deciding to dispatch
// again, it does not undo sends.
type ReminderLedger interface {
	AlreadyNotified(projectID uint, reviewName, day string) (bool, error)
	MarkNotified(projectID uint, reviewName, day string, recipientCount int) error
	// Prune drops entries whose calendar day is older than the cutoff
	// (exclusive) to bound memory in long-running processes.
	Prune(before string) error
}

func ledgerKey(projectID uint, reviewName, day string) string {
	return fmt.Sprintf("%d-%s-%s", projectID, reviewName, day)
}

type memoryEntry struct {
	day            string
	sentAt         time.Time
	recipientCount int
}

// MemoryLedger keeps reminder history for the process lifetime only; a
// restart forgets what was sent today. Guarded for concurrent manual and
// scheduled invocations.
type MemoryLedger struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{entries: make(map[string]memoryEntry)}
}

func (l *MemoryLedger) AlreadyNotified(projectID uint, reviewName, day string) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.entries[ledgerKey(projectID, reviewName, day)]
	return ok, nil
}

func (l *MemoryLedger) MarkNotified(projectID uint, reviewName, day string, recipientCount int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := ledgerKey(projectID, reviewName, day)
	if _, ok := l.entries[key]; ok {
		return nil
	}
	l.entries[key] = memoryEntry{day: day, sentAt: time.Now(), recipientCount: recipientCount}
	return nil
}

func (l *MemoryLedger) Prune(before string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, e := range l.entries {
		// Days are YYYY-MM-DD, so string order is date order.
		if e.day < before {
			delete(l.entries, key)
		}
	}
	return nil
}

// Len reports the number of live entries.
func (l *MemoryLedger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// DBLedger persists reminder records so dedup survives a mid-day restart.
// Selected with REMINDER_LEDGER=db.
type DBLedger struct {
	db *gorm.DB
}

func NewDBLedger(db *gorm.DB) *DBLedger {
	if db == nil {
		db = config.DB
	}
	return &DBLedger{db: db}
}

func (l *DBLedger) AlreadyNotified(projectID uint, reviewName, day string) (bool, error) {
	var count int64
	err := l.db.Model(&models.ReminderRecord{}).
		Where("project_id = ? AND review_name = ? AND calendar_day = ?", projectID, reviewName, day).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (l *DBLedger) MarkNotified(projectID uint, reviewName, day string, recipientCount int) error {
	record := &models.ReminderRecord{
		ProjectID:      projectID,
		ReviewName:     reviewName,
		CalendarDay:    day,
		SentAt:         time.Now(),
		RecipientCount: recipientCount,
	}
	// Second insert for the same key is a no-op, matching the idempotence
	// contract of MarkNotified.
	return l.db.Clauses(clause.OnConflict{DoNothing: true}).Create(record).Error
}

func (l *DBLedger) Prune(before string) error {
	return l.db.Where("calendar_day < ?", before).Delete(&models.ReminderRecord{}).Error
}

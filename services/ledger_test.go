package services

import (
	"database/sql/driver"
	"regexp"
	"sync"
	"testing"
)

func TestMemoryLedgerMarkAndLookup(t *testing.T) {
	l := NewMemoryLedger()

	notified, err := l.AlreadyNotified(7, "review0", "2025-03-10")
	if err != nil || notified {
		t.Fatalf("expected fresh key to be unnotified, got %v %v", notified, err)
	}

	if err := l.MarkNotified(7, "review0", "2025-03-10", 2); err != nil {
		t.Fatalf("MarkNotified: %v", err)
	}
	notified, _ = l.AlreadyNotified(7, "review0", "2025-03-10")
	if !notified {
		t.Fatal("expected key to be notified after mark")
	}

	// Marking twice is a no-op.
	if err := l.MarkNotified(7, "review0", "2025-03-10", 5); err != nil {
		t.Fatalf("second MarkNotified: %v", err)
	}
	if l.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", l.Len())
	}

	// A new day is a distinct key.
	notified, _ = l.AlreadyNotified(7, "review0", "2025-03-11")
	if notified {
		t.Fatal("next day must be a fresh key")
	}
}

func TestMemoryLedgerPrune(t *testing.T) {
	l := NewMemoryLedger()
	_ = l.MarkNotified(1, "review0", "2025-03-08", 1)
	_ = l.MarkNotified(2, "review0", "2025-03-09", 1)
	_ = l.MarkNotified(3, "review0", "2025-03-10", 1)

	if err := l.Prune("2025-03-09"); err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if l.Len() != 2 {
		t.Fatalf("expected 2 entries after prune, got %d", l.Len())
	}
	if notified, _ := l.AlreadyNotified(1, "review0", "2025-03-08"); notified {
		t.Fatal("pruned entry still present")
	}
	if notified, _ := l.AlreadyNotified(2, "review0", "2025-03-09"); !notified {
		t.Fatal("cutoff-day entry must survive")
	}
}

func TestMemoryLedgerConcurrentAccess(t *testing.T) {
	l := NewMemoryLedger()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n uint) {
			defer wg.Done()
			_ = l.MarkNotified(n, "review0", "2025-03-10", 1)
			_, _ = l.AlreadyNotified(n, "review0", "2025-03-10")
		}(uint(i))
	}
	wg.Wait()
	if l.Len() != 50 {
		t.Fatalf("expected 50 entries, got %d", l.Len())
	}
}

func TestDBLedgerLookupAndMark(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT count.* FROM `reminder_records`"),
			args:    []driver.Value{int64(7), "review0", "2025-03-10"},
			columns: []string{"count"},
			rows:    [][]driver.Value{{int64(0)}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `reminder_records`"),
			result:  scriptedResult{lastInsertID: 1, rowsAffected: 1},
		},
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT count.* FROM `reminder_records`"),
			args:    []driver.Value{int64(7), "review0", "2025-03-10"},
			columns: []string{"count"},
			rows:    [][]driver.Value{{int64(1)}},
		},
	}

	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	l := NewDBLedger(gormDB)

	notified, err := l.AlreadyNotified(7, "review0", "2025-03-10")
	if err != nil || notified {
		t.Fatalf("expected unnotified, got %v %v", notified, err)
	}
	if err := l.MarkNotified(7, "review0", "2025-03-10", 2); err != nil {
		t.Fatalf("MarkNotified: %v", err)
	}
	notified, err = l.AlreadyNotified(7, "review0", "2025-03-10")
	if err != nil || !notified {
		t.Fatalf("expected notified, got %v %v", notified, err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

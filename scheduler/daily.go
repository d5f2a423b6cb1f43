package scheduler

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"cpms-admin-api/services"
)

const (
	defaultHour   = 10
	defaultMinute = 0

	// An invocation that outlives this deadline is stuck; the per-call
	// queries and sends are all bounded well below it.
	runTimeout = time.Hour
)

// DailyScheduler fires the reminder job once per calendar day at a fixed
// wall-clock time. Contract: at-least-once daily, non-overlapping — a firing
// that arrives while a run is still active is skipped and logged.
type DailyScheduler struct {
	job    *services.ReminderJobService
	hour   int
	minute int
	loc    *time.Location

	running atomic.Bool
	stop    chan struct{}
}

func New(job *services.ReminderJobService) *DailyScheduler {
	hour, minute := scheduleFromEnv()
	return &DailyScheduler{
		job:    job,
		hour:   hour,
		minute: minute,
		loc:    services.ReminderLocation(),
		stop:   make(chan struct{}),
	}
}

func scheduleFromEnv() (hour, minute int) {
	hour, minute = defaultHour, defaultMinute
	if h, err := strconv.Atoi(os.Getenv("REMINDER_HOUR")); err == nil && h >= 0 && h <= 23 {
		hour = h
	}
	if m, err := strconv.Atoi(os.Getenv("REMINDER_MINUTE")); err == nil && m >= 0 && m <= 59 {
		minute = m
	}
	return hour, minute
}

// NextFireTime returns the next occurrence of hour:minute strictly after now.
func NextFireTime(now time.Time, hour, minute int, loc *time.Location) time.Time {
	now = now.In(loc)
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, loc)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func (s *DailyScheduler) Start() {
	log.Printf("Daily deadline check scheduled for %02d:%02d (%s)", s.hour, s.minute, s.loc)
	go s.loop()
}

func (s *DailyScheduler) Stop() {
	close(s.stop)
	log.Println("Deadline reminder scheduler stopped")
}

func (s *DailyScheduler) loop() {
	for {
		next := NextFireTime(time.Now(), s.hour, s.minute, s.loc)
		timer := time.NewTimer(time.Until(next))
		select {
		case <-s.stop:
			timer.Stop()
			return
		case <-timer.C:
			s.fire("schedule")
		}
	}
}

func (s *DailyScheduler) fire(trigger string) {
	if !s.running.CompareAndSwap(false, true) {
		log.Println("Previous reminder run still active, skipping this firing")
		return
	}
	defer s.running.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	_, err := s.job.RunDaily(ctx, &services.ReminderJobInput{
		TriggerSource: trigger,
		LockName:      services.ReminderJobLockName,
		RecordRun:     true,
	})
	if err != nil {
		if errors.Is(err, services.ErrReminderJobAlreadyRunning) {
			log.Println("Reminder job already running elsewhere, skipping")
			return
		}
		log.Printf("Daily deadline check error: %v", err)
	}
}

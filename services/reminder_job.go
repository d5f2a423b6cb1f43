package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"cpms-admin-api/config"
	"cpms-admin-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrReminderJobAlreadyRunning = errors.New("reminder job already running")
)

// ReminderJobLockName is the MySQL named lock that keeps scheduled and
// manual invocations from overlapping; overlap would race on the ledger
// and could double-send.
const ReminderJobLockName = "deadline_reminder_job"

type ReminderRunSummary struct {
	SchemesScanned      int `json:"schemes_scanned"`
	SchemesFailed       int `json:"schemes_failed"`
	DeadlinesFound      int `json:"deadlines_found"`
	ProjectsChecked     int `json:"projects_checked"`
	EmailsSent          int `json:"emails_sent"`
	SendFailures        int `json:"send_failures"`
	SkippedAlreadySent  int `json:"skipped_already_sent"`
	SkippedNoRecipients int `json:"skipped_no_recipients"`
}

type ReminderJobInput struct {
	TriggerSource string
	LockName      string
	RecordRun     bool
}

// ReminderJobService runs the daily deadline scan: verify the mail
// transport, find reviews due today, resolve recipients, dedup against the
// ledger, and dispatch reminder batches.
type ReminderJobService struct {
	db         *gorm.DB
	ledger     ReminderLedger
	dispatcher *Dispatcher
	runService *ReminderRunService
	loc        *time.Location

	verifyFunc func() error
	nowFunc    func() time.Time
}

func NewReminderJobService(db *gorm.DB, ledger ReminderLedger) *ReminderJobService {
	if db == nil {
		db = config.DB
	}
	if ledger == nil {
		ledger = LedgerFromEnv(db)
	}
	return &ReminderJobService{
		db:         db,
		ledger:     ledger,
		dispatcher: NewDispatcher(),
		runService: NewReminderRunService(db),
		loc:        ReminderLocation(),
		verifyFunc: config.VerifyMailer,
		nowFunc:    time.Now,
	}
}

// LedgerFromEnv selects the ledger implementation. REMINDER_LEDGER=db keeps
// dedup state in MySQL so a mid-day restart cannot re-send; the default
// in-memory ledger matches the reference behavior.
func LedgerFromEnv(db *gorm.DB) ReminderLedger {
	if strings.EqualFold(os.Getenv("REMINDER_LEDGER"), "db") {
		return NewDBLedger(db)
	}
	return NewMemoryLedger()
}

// RunDaily executes one scan invocation. Failures never propagate past
// their granularity: a transport-verification failure aborts the whole
// invocation, a data-access failure skips only that scheme, and a send
// failure skips only that recipient.
func (s *ReminderJobService) RunDaily(ctx context.Context, input *ReminderJobInput) (*ReminderRunSummary, error) {
	if input == nil {
		return nil, errors.New("input is nil")
	}
	summary := &ReminderRunSummary{}

	release, err := s.acquireLock(ctx, input.LockName)
	if err != nil {
		return nil, err
	}
	if release != nil {
		defer func() {
			if relErr := release(); relErr != nil {
				log.Printf("failed to release reminder job lock: %v", relErr)
			}
		}()
	}

	invocationID := uuid.NewString()

	var run *models.ReminderRun
	if input.RecordRun {
		run, err = s.runService.Start(invocationID, input.TriggerSource)
		if err != nil {
			return nil, err
		}
	}

	var finalErr error
	if run != nil {
		defer func() {
			if finalErr != nil {
				if err := s.runService.MarkFailure(run.ID, summary, finalErr); err != nil {
					log.Printf("failed to mark reminder run failure: %v", err)
				}
			} else {
				if err := s.runService.MarkSuccess(run.ID, summary); err != nil {
					log.Printf("failed to mark reminder run success: %v", err)
				}
			}
		}()
	}

	log.Printf("=== DAILY DEADLINE CHECK (%s, trigger=%s) ===", invocationID, input.TriggerSource)

	// Abort before any scanning if the transport is down; the next trigger
	// retries independently.
	if err := s.verifyFunc(); err != nil {
		finalErr = fmt.Errorf("mail transport verification failed: %w", err)
		return nil, finalErr
	}
	log.Println("Mail transport verified")

	var schemes []models.MarkingScheme
	if err := s.db.WithContext(ctx).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Order("scheme_id ASC").
		Find(&schemes).Error; err != nil {
		finalErr = err
		return nil, err
	}
	log.Printf("Found %d marking schemes", len(schemes))

	now := s.nowFunc()
	today := CalendarDay(now, s.loc)

	for _, scheme := range schemes {
		summary.SchemesScanned++
		if err := s.processScheme(ctx, scheme, today, summary); err != nil {
			summary.SchemesFailed++
			log.Printf("reminder scan failed for %s/%s: %v", scheme.School, scheme.Department, err)
			continue
		}
	}

	cutoff := CalendarDay(now.AddDate(0, 0, -2), s.loc)
	if err := s.ledger.Prune(cutoff); err != nil {
		log.Printf("failed to prune reminder ledger: %v", err)
	}

	log.Printf("DAILY SUMMARY: deadlines found today: %d", summary.DeadlinesFound)
	log.Printf("DAILY SUMMARY: total emails sent: %d (failures: %d)", summary.EmailsSent, summary.SendFailures)
	log.Println("=== DAILY DEADLINE CHECK COMPLETED ===")

	return summary, nil
}

func (s *ReminderJobService) processScheme(ctx context.Context, scheme models.MarkingScheme, today string, summary *ReminderRunSummary) error {
	log.Printf("Checking %s - %s", scheme.School, scheme.Department)

	for _, review := range scheme.Reviews {
		// A review without a deadline is not configured yet, not an error.
		if review.DeadlineTo == nil {
			continue
		}
		if !IsDueToday(*review.DeadlineTo, s.nowFunc(), s.loc) {
			continue
		}

		summary.DeadlinesFound++
		log.Printf("DEADLINE TODAY: %s (%s)", review.ReviewName, review.Label())

		var projects []models.Project
		if err := s.db.WithContext(ctx).
			Preload("GuideFaculty").
			// The association query selects from faculties only, so the
			// deterministic send order has to come from a faculties column.
			Preload("Panel.Members", func(db *gorm.DB) *gorm.DB {
				return db.Order("faculties.faculty_id ASC")
			}).
			Where("school = ? AND department = ?", scheme.School, scheme.Department).
			Order("project_id ASC").
			Find(&projects).Error; err != nil {
			return err
		}
		log.Printf("Found %d projects", len(projects))

		for _, project := range projects {
			summary.ProjectsChecked++

			notified, err := s.ledger.AlreadyNotified(project.ProjectID, review.ReviewName, today)
			if err != nil {
				// Skip rather than risk a duplicate batch.
				log.Printf("ledger lookup failed for %s: %v", project.Name, err)
				continue
			}
			if notified {
				summary.SkippedAlreadySent++
				log.Printf("Reminder already sent today for %s", project.Name)
				continue
			}

			recipients, recipientName := ResolveRecipients(review, project)
			if len(recipients) == 0 {
				// Not marked: a later run the same day can still notify
				// once the missing address is corrected.
				summary.SkippedNoRecipients++
				log.Printf("No recipients for %s", project.Name)
				continue
			}

			batch := ReminderBatch{
				ProjectName:   project.Name,
				ReviewLabel:   review.Label(),
				School:        scheme.School,
				Department:    scheme.Department,
				Deadline:      review.DeadlineTo.In(s.loc),
				TimeRemaining: TimeRemaining(*review.DeadlineTo, s.nowFunc()),
				Recipients:    recipients,
				RecipientName: recipientName,
			}

			sent := s.dispatcher.DispatchBatch(batch)
			summary.EmailsSent += sent
			summary.SendFailures += len(recipients) - sent

			// The batch was initiated, so the key is spent for today even
			// when some sends failed; retrying would spam the successes.
			if err := s.ledger.MarkNotified(project.ProjectID, review.ReviewName, today, sent); err != nil {
				log.Printf("failed to mark reminder ledger for %s: %v", project.Name, err)
			}
		}
	}

	return nil
}

func (s *ReminderJobService) acquireLock(ctx context.Context, lockName string) (func() error, error) {
	if strings.TrimSpace(lockName) == "" {
		return nil, nil
	}

	var ok int
	if err := s.db.WithContext(ctx).Raw("SELECT GET_LOCK(?, 0)", lockName).Scan(&ok).Error; err != nil {
		return nil, err
	}
	if ok != 1 {
		return nil, ErrReminderJobAlreadyRunning
	}

	return func() error {
		var released int
		if err := s.db.WithContext(ctx).Raw("SELECT RELEASE_LOCK(?)", lockName).Scan(&released).Error; err != nil {
			return err
		}
		return nil
	}, nil
}

// SendSampleReminder sends one rendered reminder to the given address so
// operators can see the live format. Called at startup when SMTP_SAMPLE_TO
// is set; failures are logged, never fatal.
func (s *ReminderJobService) SendSampleReminder(to string) {
	now := s.nowFunc()
	deadline := now.Add(8 * time.Hour)
	batch := ReminderBatch{
		ProjectName:   "AI-Based Healthcare Management System (Sample)",
		ReviewLabel:   "Project Report Submission (Sample)",
		School:        "SCOPE",
		Department:    "BTech",
		Deadline:      deadline.In(s.loc),
		TimeRemaining: TimeRemaining(deadline, now),
		Recipients:    []string{to},
		RecipientName: "Dr. Faculty Name",
	}
	if sent := s.dispatcher.DispatchBatch(batch); sent == 1 {
		log.Printf("Sample reminder sent to %s", to)
	}
}

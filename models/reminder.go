package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ReminderRunStatusRunning = "running"
	ReminderRunStatusSuccess = "success"
	ReminderRunStatusFailed  = "failed"
)

// ReminderRecord is one ledger row: a reminder batch was dispatched for this
// (project, review, calendar day). Rows are inserted exactly once per key and
// never updated; a new day yields a new key.
type ReminderRecord struct {
	RecordID       uint      `gorm:"primaryKey;column:record_id" json:"record_id"`
	ProjectID      uint      `gorm:"column:project_id;uniqueIndex:idx_reminder_key" json:"project_id"`
	ReviewName     string    `gorm:"column:review_name;type:varchar(128);uniqueIndex:idx_reminder_key" json:"review_name"`
	CalendarDay    string    `gorm:"column:calendar_day;type:varchar(10);uniqueIndex:idx_reminder_key" json:"calendar_day"` // YYYY-MM-DD
	SentAt         time.Time `gorm:"column:sent_at" json:"sent_at"`
	RecipientCount int       `gorm:"column:recipient_count;not null;default:0" json:"recipient_count"`
}

// TableName overrides the table name for ReminderRecord
func (ReminderRecord) TableName() string { return "reminder_records" }

// ReminderRun records one invocation of the daily deadline scan.
type ReminderRun struct {
	ID uint `json:"id" gorm:"primaryKey;autoIncrement"`

	InvocationID  string     `json:"invocation_id" gorm:"type:varchar(36);not null"`
	TriggerSource string     `json:"trigger_source" gorm:"type:varchar(64);not null"`
	Status        string     `json:"status" gorm:"type:enum('running','success','failed');not null;default:'running'"`
	ErrorMessage  *string    `json:"error_message" gorm:"type:text"`
	StartedAt     time.Time  `json:"started_at" gorm:"column:started_at;autoCreateTime"`
	FinishedAt    *time.Time `json:"finished_at" gorm:"column:finished_at"`

	SchemesScanned      uint `json:"schemes_scanned" gorm:"column:schemes_scanned;not null;default:0"`
	SchemesFailed       uint `json:"schemes_failed" gorm:"column:schemes_failed;not null;default:0"`
	DeadlinesFound      uint `json:"deadlines_found" gorm:"column:deadlines_found;not null;default:0"`
	ProjectsChecked     uint `json:"projects_checked" gorm:"column:projects_checked;not null;default:0"`
	EmailsSent          uint `json:"emails_sent" gorm:"column:emails_sent;not null;default:0"`
	SendFailures        uint `json:"send_failures" gorm:"column:send_failures;not null;default:0"`
	SkippedAlreadySent  uint `json:"skipped_already_sent" gorm:"column:skipped_already_sent;not null;default:0"`
	SkippedNoRecipients uint `json:"skipped_no_recipients" gorm:"column:skipped_no_recipients;not null;default:0"`

	CreatedAt time.Time      `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"column:deleted_at;index"`
}

// TableName overrides the table name for ReminderRun
func (ReminderRun) TableName() string { return "reminder_runs" }

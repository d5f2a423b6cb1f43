package models

import "time"

// Audience selectors for a review deadline.
const (
	FacultyTypeGuide = "guide"
	FacultyTypePanel = "panel"
)

// MarkingScheme represents the marking_schemes table. One row per
// (school, department) tenant; owns the ordered review definitions.
type MarkingScheme struct {
	SchemeID   uint       `gorm:"primaryKey;column:scheme_id" json:"scheme_id"`
	School     string     `gorm:"column:school" json:"school"`
	Department string     `gorm:"column:department" json:"department"`
	CreatedAt  time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  *time.Time `gorm:"column:updated_at" json:"updated_at"`

	Reviews []ReviewDefinition `gorm:"foreignKey:SchemeID;references:SchemeID" json:"reviews"`
}

// TableName overrides the table name for MarkingScheme
func (MarkingScheme) TableName() string {
	return "marking_schemes"
}

// ReviewDefinition represents the review_definitions table. DeadlineTo is
// authoritative for due-date checks; a NULL DeadlineTo means the review is
// not configured yet and is skipped by the reminder job.
type ReviewDefinition struct {
	ReviewID     uint       `gorm:"primaryKey;column:review_id" json:"review_id"`
	SchemeID     uint       `gorm:"column:scheme_id" json:"scheme_id"`
	ReviewName   string     `gorm:"column:review_name" json:"review_name"`
	DisplayName  string     `gorm:"column:display_name" json:"display_name"`
	DeadlineFrom *time.Time `gorm:"column:deadline_from" json:"deadline_from"`
	DeadlineTo   *time.Time `gorm:"column:deadline_to" json:"deadline_to"`
	FacultyType  string     `gorm:"column:faculty_type" json:"faculty_type"` // guide|panel
	DisplayOrder int        `gorm:"column:display_order" json:"display_order"`
}

// TableName overrides the table name for ReviewDefinition
func (ReviewDefinition) TableName() string {
	return "review_definitions"
}

// Label returns the human label for the review, falling back to the stable key.
func (r ReviewDefinition) Label() string {
	if r.DisplayName != "" {
		return r.DisplayName
	}
	return r.ReviewName
}

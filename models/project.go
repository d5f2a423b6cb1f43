package models

import "time"

// Faculty represents the faculties table. Email may be NULL for records
// imported before the address was known.
type Faculty struct {
	FacultyID uint       `gorm:"primaryKey;column:faculty_id" json:"faculty_id"`
	Name      string     `gorm:"column:name" json:"name"`
	Email     *string    `gorm:"column:email" json:"email"`
	Password  string     `gorm:"column:password" json:"-"`
	CreateAt  time.Time  `gorm:"column:create_at" json:"created_at"`
	UpdateAt  *time.Time `gorm:"column:update_at" json:"-"`
	DeleteAt  *time.Time `gorm:"column:delete_at" json:"-"`
}

// TableName overrides the table name for Faculty
func (Faculty) TableName() string {
	return "faculties"
}

// Panel represents the panels table.
type Panel struct {
	PanelID   uint      `gorm:"primaryKey;column:panel_id" json:"panel_id"`
	Name      string    `gorm:"column:name" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`

	Members []Faculty `gorm:"many2many:panel_members;foreignKey:PanelID;joinForeignKey:PanelID;references:FacultyID;joinReferences:FacultyID" json:"members"`
}

// TableName overrides the table name for Panel
func (Panel) TableName() string {
	return "panels"
}

// PanelMember represents the panel_members join table. DisplayOrder keeps
// the committee listing order for display surfaces; it does not affect
// reminder delivery.
type PanelMember struct {
	PanelID      uint `gorm:"primaryKey;column:panel_id" json:"panel_id"`
	FacultyID    uint `gorm:"primaryKey;column:faculty_id" json:"faculty_id"`
	DisplayOrder int  `gorm:"column:display_order" json:"display_order"`
}

// TableName overrides the table name for PanelMember
func (PanelMember) TableName() string {
	return "panel_members"
}

// Project represents the projects table. GuideFaculty is always assigned in
// practice but modeled as optional; Panel is assigned only after panel
// allocation runs, so both references are nullable.
type Project struct {
	ProjectID  uint       `gorm:"primaryKey;column:project_id" json:"project_id"`
	Name       string     `gorm:"column:name" json:"name"`
	School     string     `gorm:"column:school" json:"school"`
	Department string     `gorm:"column:department" json:"department"`
	GuideID    *uint      `gorm:"column:guide_id" json:"guide_id"`
	PanelID    *uint      `gorm:"column:panel_id" json:"panel_id"`
	CreatedAt  time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  *time.Time `gorm:"column:updated_at" json:"updated_at"`

	GuideFaculty *Faculty `gorm:"foreignKey:GuideID;references:FacultyID" json:"guide_faculty"`
	Panel        *Panel   `gorm:"foreignKey:PanelID;references:PanelID" json:"panel"`
}

// TableName overrides the table name for Project
func (Project) TableName() string {
	return "projects"
}

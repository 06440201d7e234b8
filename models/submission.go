package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SurveySubmission archives one completed questionnaire when a Postgres DSN
// is configured. The spreadsheet stays the canonical store; this table is
// ops-side redundancy and feeds the admin listing.
type SurveySubmission struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Hotel           string         `gorm:"column:hotel;not null"        json:"hotel"`
	Department      string         `gorm:"column:department"            json:"department"`
	Position        string         `gorm:"column:position"              json:"position"`
	ParticipantName string         `gorm:"column:participant_name"      json:"participantName"`
	SurveyDate      string         `gorm:"column:survey_date"           json:"surveyDate"`
	SurveyVersion   string         `gorm:"column:survey_version;not null" json:"surveyVersion"`
	Rows            datatypes.JSON `gorm:"column:rows;type:jsonb;not null" json:"rows"`
	RowCount        int            `gorm:"column:row_count;not null"    json:"rowCount"`
	ExportStatus    string         `gorm:"column:export_status;not null" json:"exportStatus"`
	SubmittedAt     JSONTime       `gorm:"column:submitted_at;not null" json:"submittedAt"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index"          json:"-"`
}

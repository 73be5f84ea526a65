package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type AnalysisStatus string

const (
	StatusQueued     AnalysisStatus = "queued"
	StatusProcessing AnalysisStatus = "processing"
	StatusCompleted  AnalysisStatus = "completed"
	StatusFailed     AnalysisStatus = "failed"
)

// SkillScore is one axis of the skill comparison. Scores are taken from the
// model response as-is (nominally 0-100, not validated).
type SkillScore struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// SkillScoreList persists as a JSON text column. A slice rather than a map:
// the radar chart axes must follow the order the skills appeared in the
// response.
type SkillScoreList []SkillScore

func (s SkillScoreList) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal skill scores: %w", err)
	}
	return string(b), nil
}

func (s *SkillScoreList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported skill scores column type %T", value)
	}
	return json.Unmarshal(b, s)
}

// StringList persists as a JSON text column. Used for non-fatal warnings
// collected while a response is parsed.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal string list: %w", err)
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported string list column type %T", value)
	}
	return json.Unmarshal(b, l)
}

type Analysis struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ResumeDocumentID uuid.UUID      `gorm:"type:uuid;not null" json:"resume_document_id"`
	JobDescription   string         `gorm:"type:text;not null" json:"job_description"`
	Status           AnalysisStatus `gorm:"not null;default:'queued'" json:"status"`
	RawAnalysis      *string        `gorm:"type:text" json:"raw_analysis,omitempty"`
	MatchScore       *int           `gorm:"type:int" json:"match_score,omitempty"`
	SkillScores      SkillScoreList `gorm:"type:text" json:"skill_scores,omitempty"`
	CoverLetter      *string        `gorm:"type:text" json:"cover_letter,omitempty"`
	Warnings         StringList     `gorm:"type:text" json:"warnings,omitempty"`
	ErrorMessage     *string        `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt        time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	ResumeDocument Document `gorm:"foreignKey:ResumeDocumentID" json:"-"`
}

func (Analysis) TableName() string {
	return "analyses"
}

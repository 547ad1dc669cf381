package models

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisRecord is a persisted analysis, kept for the history API.
type AnalysisRecord struct {
	ID             uuid.UUID      `db:"id"              json:"id"`
	InputType      string         `db:"input_type"      json:"input_type"`
	Source         string         `db:"source"          json:"source"`
	Summary        string         `db:"summary"         json:"summary"`
	EstimatedTotal string         `db:"estimated_total" json:"estimated_total"`
	Result         AnalysisResult `db:"result"          json:"result"`
	MailSent       bool           `db:"mail_sent"       json:"mail_sent"`
	CreatedAt      time.Time      `db:"created_at"      json:"created_at"`
}

package models

import (
	"time"

	"masterylog/internal/validation"
)

// MaterialStatus is the lifecycle state of a learning material
type MaterialStatus string

const (
	StatusNotStarted MaterialStatus = "Not Started"
	StatusLearning   MaterialStatus = "Learning"
	StatusPracticing MaterialStatus = "Practicing"
	StatusMastered   MaterialStatus = "Mastered"
	StatusPaused     MaterialStatus = "Paused"
)

// MaterialStatuses lists every status in lifecycle order
var MaterialStatuses = []MaterialStatus{
	StatusNotStarted,
	StatusLearning,
	StatusPracticing,
	StatusMastered,
	StatusPaused,
}

// Material is the current mastery state of a learning unit, keyed by MaterialID
type Material struct {
	ID                   int64          `db:"id"`
	Subject              string         `db:"subject"`
	MaterialID           string         `db:"material_id"`
	MaterialNameEN       string         `db:"material_name_en"`
	Status               MaterialStatus `db:"status"`
	TotalProblems        int            `db:"total_problems"`
	ProblemsSolved       int            `db:"problems_solved"`
	AvgAttemptsLastBatch float64        `db:"avg_attempts_last_batch"`
	Commentary           string         `db:"commentary"`
	ResourcesList        string         `db:"resources_list"`
	LastReviewedAt       *time.Time     `db:"last_reviewed_at"`
	ForcedStop           bool           `db:"forced_stop"`
}

// Validate checks identity, name and status
func (m *Material) Validate() error {
	allowed := make([]string, len(MaterialStatuses))
	for i, s := range MaterialStatuses {
		allowed[i] = string(s)
	}
	return validation.First(
		validation.Required("material_id", m.MaterialID),
		validation.Required("material_name_en", m.MaterialNameEN),
		validation.OneOf("status", string(m.Status), allowed),
	)
}

// SubjectStats summarises the materials of one subject
type SubjectStats struct {
	Subject        string
	Materials      int
	TotalProblems  int
	ProblemsSolved int
	AvgAttempts    float64
	LastActivity   *time.Time
}

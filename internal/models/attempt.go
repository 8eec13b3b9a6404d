package models

import (
	"time"

	"masterylog/internal/validation"
)

// DefaultStatusTag is applied to attempts logged without one
const DefaultStatusTag = "In Progress"

// Attempt is one logged try at solving a problem
type Attempt struct {
	ID                 int64     `db:"id"`
	Subject            string    `db:"subject"`
	MaterialNameEN     string    `db:"material_name_en"`
	MaterialNameRU     string    `db:"material_name_ru"`
	ProblemID          string    `db:"problem_id"`
	ProblemTitle       string    `db:"problem_title"`
	BatchID            string    `db:"batch_id"`
	BatchAttemptIndex  int       `db:"batch_attempt_index"`
	AttemptNumber      int       `db:"attempt_number"`
	UsedResources      string    `db:"used_resources"`
	Successful         bool      `db:"successful"`
	TimeSpentMinutes   int       `db:"time_spent_minutes"`
	ErrorsDescription  string    `db:"errors_description"`
	ResolutionStrategy string    `db:"resolution_strategy"`
	Annotation         string    `db:"annotation"`
	Commentary         string    `db:"commentary"`
	StatusTag          string    `db:"status_tag"`
	RelatedMaterial    string    `db:"related_material"`
	AttemptedAt        time.Time `db:"attempted_at"`
}

// Validate checks the fields a caller must supply before an attempt is numbered and stored
func (a *Attempt) Validate() error {
	return validation.First(
		validation.ValidateProblemID(a.ProblemID),
		validation.ValidateMinutes("time_spent_minutes", a.TimeSpentMinutes),
	)
}

// AttemptEdit holds the fields that may change after an attempt is logged.
// Nil fields are left as they are.
type AttemptEdit struct {
	ProblemID          *string
	ErrorsDescription  *string
	ResolutionStrategy *string
	Commentary         *string
	TimeSpentMinutes   *int
	Successful         *bool
}

// Apply copies the set fields of e onto a
func (e AttemptEdit) Apply(a *Attempt) {
	if e.ProblemID != nil {
		a.ProblemID = *e.ProblemID
	}
	if e.ErrorsDescription != nil {
		a.ErrorsDescription = *e.ErrorsDescription
	}
	if e.ResolutionStrategy != nil {
		a.ResolutionStrategy = *e.ResolutionStrategy
	}
	if e.Commentary != nil {
		a.Commentary = *e.Commentary
	}
	if e.TimeSpentMinutes != nil {
		a.TimeSpentMinutes = *e.TimeSpentMinutes
	}
	if e.Successful != nil {
		a.Successful = *e.Successful
	}
}

// AttemptFilter narrows attempt listings. Zero values match everything.
type AttemptFilter struct {
	Subject   string
	ProblemID string
	Since     time.Time
	Limit     int
}

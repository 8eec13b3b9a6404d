package models

import (
	"time"

	"masterylog/internal/validation"
)

// DrillingLog records one Russian-language drilling session on a material
type DrillingLog struct {
	ID                   int64     `db:"id"`
	Subject              string    `db:"subject"`
	MaterialID           string    `db:"material_id"`
	MaterialNameEN       string    `db:"material_name_en"`
	MaterialNameRU       string    `db:"material_name_ru"`
	AttemptNumber        int       `db:"attempt_number"`
	Status               string    `db:"status"`
	ErrorsRU             string    `db:"errors_ru"`
	ResolutionStrategyRU string    `db:"resolution_strategy_ru"`
	CommentaryRU         string    `db:"commentary_ru"`
	UsedKeywords         string    `db:"used_keywords"`
	DrilledAt            time.Time `db:"drilled_at"`
}

// Validate requires the material the session belongs to
func (d *DrillingLog) Validate() error {
	return validation.Required("material_id", d.MaterialID)
}

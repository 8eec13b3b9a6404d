// Package mastery numbers logged attempts and summarises them.
package mastery

import (
	"fmt"

	"masterylog/internal/models"
)

// BatchSize is the number of consecutive attempts grouped into one batch
const BatchSize = 5

// AttemptMeta is the numbering assigned to a new attempt before it is stored
type AttemptMeta struct {
	AttemptNumber     int
	BatchNumber       int
	BatchID           string
	BatchAttemptIndex int
}

// NextAttemptMeta numbers the next attempt at problemID given every attempt already stored for it:
//
//	attemptNumber     = len(existing) + 1
//	batchNumber       = ceil(attemptNumber / 5)
//	batchAttemptIndex = ((attemptNumber - 1) mod 5) + 1
//
// After a deletion the count falls behind the highest stored number; numbering then
// continues from that number so it is never handed out twice.
func NextAttemptMeta(problemID string, existing []models.Attempt) AttemptMeta {
	n := len(existing)
	for _, a := range existing {
		if a.AttemptNumber > n {
			n = a.AttemptNumber
		}
	}
	n++
	batch := BatchNumber(n)
	return AttemptMeta{
		AttemptNumber:     n,
		BatchNumber:       batch,
		BatchID:           BatchID(problemID, batch),
		BatchAttemptIndex: (n-1)%BatchSize + 1,
	}
}

// BatchNumber returns the 1-based batch an attempt number falls in
func BatchNumber(attemptNumber int) int {
	if attemptNumber <= 0 {
		return 0
	}
	return (attemptNumber + BatchSize - 1) / BatchSize
}

// BatchID formats the batch identifier, e.g. "LC-42-Batch-3"
func BatchID(problemID string, batchNumber int) string {
	return fmt.Sprintf("%s-Batch-%d", problemID, batchNumber)
}

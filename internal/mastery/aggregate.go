package mastery

import (
	"math"
	"time"

	"masterylog/internal/models"
)

// Analytics is the summary computed over every logged attempt and material
type Analytics struct {
	ProblemStats    []ProblemStats  `json:"problemStats"`
	OverallStats    OverallStats    `json:"overallStats"`
	MaterialSummary MaterialSummary `json:"materialSummary"`
}

// ProblemStats summarises the attempts at a single problem
type ProblemStats struct {
	ProblemID           string    `json:"problemId"`
	Subject             string    `json:"subject"`
	Material            string    `json:"material"`
	TotalAttempts       int       `json:"totalAttempts"`
	SuccessfulAttempts  int       `json:"successfulAttempts"`
	TotalTimeMinutes    int       `json:"totalTimeMinutes"`
	Batches             []Batch   `json:"batches"`
	FirstAttempt        time.Time `json:"firstAttempt"`
	LastAttempt         time.Time `json:"lastAttempt"`
	SuccessRate         float64   `json:"successRate"`
	AvgTimePerAttempt   float64   `json:"avgTimePerAttempt"`
	DaysToProficiency   *int      `json:"daysToProficiency"`
	BatchCount          int       `json:"batchCount"`
	AvgAttemptsPerBatch float64   `json:"avgAttemptsPerBatch"`
}

// Batch groups the attempts sharing a batch id
type Batch struct {
	BatchID     string         `json:"batchId"`
	BatchNumber int            `json:"batchNumber"`
	Attempts    []BatchAttempt `json:"attempts"`
}

type BatchAttempt struct {
	AttemptNumber int       `json:"attemptNumber"`
	Successful    bool      `json:"successful"`
	TimeMinutes   int       `json:"timeMinutes"`
	Timestamp     time.Time `json:"timestamp"`
}

// OverallStats covers every attempt regardless of problem
type OverallStats struct {
	TotalProblems           int      `json:"totalProblems"`
	TotalAttempts           int      `json:"totalAttempts"`
	TotalSuccessfulAttempts int      `json:"totalSuccessfulAttempts"`
	OverallSuccessRate      float64  `json:"overallSuccessRate"`
	TotalTimeMinutes        int      `json:"totalTimeMinutes"`
	UniqueSubjects          []string `json:"uniqueSubjects"`
	UniqueMaterials         []string `json:"uniqueMaterials"`
}

// MaterialSummary counts materials by lifecycle status
type MaterialSummary struct {
	TotalMaterials int            `json:"totalMaterials"`
	ByStatus       map[string]int `json:"byStatus"`
	ForcedStops    int            `json:"forcedStops"`
}

// Aggregate computes per-problem and overall statistics.
// Problems, batches, subjects and materials keep the order in which they first appear in attempts.
func Aggregate(attempts []models.Attempt, materials []models.Material) Analytics {
	problems := make([]*ProblemStats, 0)
	byID := make(map[string]*ProblemStats)

	overall := OverallStats{
		TotalAttempts:   len(attempts),
		UniqueSubjects:  make([]string, 0),
		UniqueMaterials: make([]string, 0),
	}
	seenSubjects := make(map[string]bool)
	seenMaterials := make(map[string]bool)

	for _, a := range attempts {
		stats, ok := byID[a.ProblemID]
		if !ok {
			stats = &ProblemStats{
				ProblemID:    a.ProblemID,
				Subject:      a.Subject,
				Material:     a.MaterialNameEN,
				Batches:      make([]Batch, 0),
				FirstAttempt: a.AttemptedAt,
				LastAttempt:  a.AttemptedAt,
			}
			byID[a.ProblemID] = stats
			problems = append(problems, stats)
		}

		stats.TotalAttempts++
		stats.TotalTimeMinutes += a.TimeSpentMinutes
		stats.LastAttempt = a.AttemptedAt
		if a.Successful {
			stats.SuccessfulAttempts++
			overall.TotalSuccessfulAttempts++
		}
		overall.TotalTimeMinutes += a.TimeSpentMinutes

		batch := findBatch(stats, a.BatchID)
		if batch == nil {
			stats.Batches = append(stats.Batches, Batch{
				BatchID:     a.BatchID,
				BatchNumber: BatchNumber(a.AttemptNumber),
				Attempts:    make([]BatchAttempt, 0, BatchSize),
			})
			batch = &stats.Batches[len(stats.Batches)-1]
		}
		batch.Attempts = append(batch.Attempts, BatchAttempt{
			AttemptNumber: a.AttemptNumber,
			Successful:    a.Successful,
			TimeMinutes:   a.TimeSpentMinutes,
			Timestamp:     a.AttemptedAt,
		})

		if !seenSubjects[a.Subject] {
			seenSubjects[a.Subject] = true
			overall.UniqueSubjects = append(overall.UniqueSubjects, a.Subject)
		}
		if !seenMaterials[a.MaterialNameEN] {
			seenMaterials[a.MaterialNameEN] = true
			overall.UniqueMaterials = append(overall.UniqueMaterials, a.MaterialNameEN)
		}
	}

	summary := make([]ProblemStats, 0, len(problems))
	for _, stats := range problems {
		summary = append(summary, derive(*stats))
	}

	overall.TotalProblems = len(problems)
	overall.OverallSuccessRate = Round(ratio(float64(overall.TotalSuccessfulAttempts), float64(overall.TotalAttempts)), 3)

	return Analytics{
		ProblemStats:    summary,
		OverallStats:    overall,
		MaterialSummary: summarizeMaterials(materials),
	}
}

func findBatch(stats *ProblemStats, batchID string) *Batch {
	for i := range stats.Batches {
		if stats.Batches[i].BatchID == batchID {
			return &stats.Batches[i]
		}
	}
	return nil
}

func derive(stats ProblemStats) ProblemStats {
	total := float64(stats.TotalAttempts)

	stats.SuccessRate = Round(ratio(float64(stats.SuccessfulAttempts), total), 3)
	stats.AvgTimePerAttempt = Round(ratio(float64(stats.TotalTimeMinutes), total), 2)
	stats.BatchCount = len(stats.Batches)
	stats.AvgAttemptsPerBatch = Round(ratio(total, float64(stats.BatchCount)), 2)

	// Same-day proficiency yields 0, not nil
	if stats.SuccessfulAttempts > 0 {
		days := int(math.Ceil(stats.LastAttempt.Sub(stats.FirstAttempt).Hours() / 24))
		stats.DaysToProficiency = &days
	}

	return stats
}

func summarizeMaterials(materials []models.Material) MaterialSummary {
	summary := MaterialSummary{
		TotalMaterials: len(materials),
		ByStatus:       make(map[string]int, len(models.MaterialStatuses)),
	}
	for _, s := range models.MaterialStatuses {
		summary.ByStatus[string(s)] = 0
	}
	for _, m := range materials {
		summary.ByStatus[string(m.Status)]++
		if m.ForcedStop {
			summary.ForcedStops++
		}
	}
	return summary
}

package models

import (
	"errors"
	"testing"

	"masterylog/internal/validation"
)

func TestAttemptValidation(t *testing.T) {
	tests := []struct {
		name      string
		attempt   Attempt
		wantField string
	}{
		{
			name:    "valid attempt",
			attempt: Attempt{ProblemID: "LC-1", TimeSpentMinutes: 12},
		},
		{
			name:      "missing problem id",
			attempt:   Attempt{TimeSpentMinutes: 12},
			wantField: "problem_id",
		},
		{
			name:      "negative minutes",
			attempt:   Attempt{ProblemID: "LC-1", TimeSpentMinutes: -3},
			wantField: "time_spent_minutes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.attempt.Validate()
			assertField(t, err, tt.wantField)
		})
	}
}

func TestAttemptEditApply(t *testing.T) {
	a := Attempt{ProblemID: "LC-1", Commentary: "old", TimeSpentMinutes: 5}
	problem := "LC-2"
	minutes := 0
	success := true

	AttemptEdit{ProblemID: &problem, TimeSpentMinutes: &minutes, Successful: &success}.Apply(&a)

	if a.ProblemID != "LC-2" {
		t.Errorf("ProblemID = %q, want LC-2", a.ProblemID)
	}
	if a.TimeSpentMinutes != 0 {
		t.Errorf("TimeSpentMinutes = %d, want 0", a.TimeSpentMinutes)
	}
	if !a.Successful {
		t.Error("Successful = false, want true")
	}
	if a.Commentary != "old" {
		t.Errorf("Commentary = %q, want unchanged", a.Commentary)
	}
}

func TestMaterialValidation(t *testing.T) {
	tests := []struct {
		name      string
		material  Material
		wantField string
	}{
		{
			name:     "valid material",
			material: Material{MaterialID: "calc-1", MaterialNameEN: "Limits", Status: StatusLearning},
		},
		{
			name:      "missing id",
			material:  Material{MaterialNameEN: "Limits", Status: StatusLearning},
			wantField: "material_id",
		},
		{
			name:      "missing name",
			material:  Material{MaterialID: "calc-1", Status: StatusLearning},
			wantField: "material_name_en",
		},
		{
			name:      "unknown status",
			material:  Material{MaterialID: "calc-1", MaterialNameEN: "Limits", Status: "Done"},
			wantField: "status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertField(t, tt.material.Validate(), tt.wantField)
		})
	}
}

func TestTaskValidationDefaultsPriority(t *testing.T) {
	task := Task{Text: "read chapter 2"}
	if err := task.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if task.Priority != PriorityMedium {
		t.Errorf("Priority = %q, want medium", task.Priority)
	}

	bad := Task{Text: "x", Priority: "urgent"}
	assertField(t, bad.Validate(), "priority")

	empty := Task{}
	assertField(t, empty.Validate(), "task")
}

func TestVocabularyValidation(t *testing.T) {
	assertField(t, (&VocabularyEntry{RussianWord: "дом", EnglishTranslation: "house"}).Validate(), "")
	assertField(t, (&VocabularyEntry{EnglishTranslation: "house"}).Validate(), "russian_word")
	assertField(t, (&VocabularyEntry{RussianWord: "дом"}).Validate(), "english_translation")
}

func assertField(t *testing.T, err error, field string) {
	t.Helper()
	if field == "" {
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		return
	}
	var verr validation.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError on %s, got %v", field, err)
	}
	if verr.Field != field {
		t.Errorf("error field = %q, want %q", verr.Field, field)
	}
}

package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"masterylog/internal/models"
	"masterylog/internal/validation"
)

// ImportResult holds the result of a vocabulary import
type ImportResult struct {
	TotalProcessed int
	Imported       int
	Skipped        int
	Errors         []string
}

// Column layout of an import file: russian word, translation, subject, material id.
// A first row whose first cell is a known header label is skipped.
var vocabularyHeaders = map[string]bool{
	"russian":      true,
	"russian word": true,
	"russian_word": true,
	"russianword":  true,
	"word":         true,
	"слово":        true,
}

// ImportFile upserts every row of an .xlsx or .csv file
func (s *VocabularyService) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSVRows(path)
	case ".xlsx", ".xlsm":
		rows, err = readExcelRows(path)
	default:
		return nil, fmt.Errorf("unsupported import file type: %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Errors: make([]string, 0)}
	for i, row := range rows {
		if i == 0 && len(row) > 0 && vocabularyHeaders[strings.ToLower(strings.TrimSpace(row[0]))] {
			continue
		}
		if isBlankRow(row) {
			continue
		}

		result.TotalProcessed++
		entry := models.VocabularyEntry{
			RussianWord:        cell(row, 0),
			EnglishTranslation: cell(row, 1),
			Subject:            cell(row, 2),
			MaterialID:         cell(row, 3),
		}

		if err := s.Upsert(ctx, &entry); err != nil {
			var verr validation.ValidationError
			if !errors.As(err, &verr) {
				return result, fmt.Errorf("row %d: %w", i+1, err)
			}
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
			continue
		}
		result.Imported++
	}

	s.logger.Info("vocabulary imported",
		zap.String("file", path),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

func readExcelRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return rows, nil
}

func readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

package utils

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/models"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/repositories"
)

// ImportResult summarises a CSV import
type ImportResult struct {
	TotalRows  int      `json:"totalRows"`
	Created    int      `json:"created"`
	Duplicates int      `json:"duplicates"`
	Errors     []string `json:"errors"`
}

// SpinCSVImporter loads spin history into a SpinRepository
type SpinCSVImporter struct {
	spinRepo repositories.SpinRepository
}

// NewSpinCSVImporter creates a new SpinCSVImporter
func NewSpinCSVImporter(spinRepo repositories.SpinRepository) *SpinCSVImporter {
	return &SpinCSVImporter{spinRepo: spinRepo}
}

// Import reads rows with name, email, phone, prize and date columns. Header names are matched
// case-insensitively and an id column is ignored. A row whose (email, date) is already stored counts as a duplicate.
// Malformed rows are reported and skipped; any other read error stops the import.
func (i *SpinCSVImporter) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	// Map column indices
	nameIdx := findColumnIndex(header, []string{"name", "full name"})
	emailIdx := findColumnIndex(header, []string{"email", "e-mail"})
	phoneIdx := findColumnIndex(header, []string{"phone", "phone number", "mobile"})
	prizeIdx := findColumnIndex(header, []string{"prize"})
	dateIdx := findColumnIndex(header, []string{"date", "spin date"})
	for col, idx := range map[string]int{"name": nameIdx, "email": emailIdx, "phone": phoneIdx, "prize": prizeIdx, "date": dateIdx} {
		if idx == -1 {
			return nil, fmt.Errorf("%s column not found in CSV", col)
		}
	}

	result := &ImportResult{Errors: []string{}}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		result.TotalRows++
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return result, fmt.Errorf("row %d: failed to read csv: %w", result.TotalRows, err)
			}
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", result.TotalRows, err))
			continue
		}

		field := func(idx int) string {
			if idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}
		spin := &models.SpinRecord{
			Name:      field(nameIdx),
			Email:     field(emailIdx),
			Phone:     field(phoneIdx),
			Prize:     field(prizeIdx),
			Date:      field(dateIdx),
			CreatedAt: time.Now().UTC(),
		}
		if spin.Name == "" || spin.Email == "" || spin.Phone == "" || spin.Prize == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: missing field", result.TotalRows))
			continue
		}
		if !IsValidDay(spin.Date) {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: invalid date: %s", result.TotalRows, spin.Date))
			continue
		}

		if err := i.spinRepo.Create(ctx, spin); err != nil {
			if errors.Is(err, repositories.ErrSpinAlreadyClaimed) {
				result.Duplicates++
				continue
			}
			return result, fmt.Errorf("row %d: failed to save spin: %w", result.TotalRows, err)
		}
		result.Created++
	}

	return result, nil
}

// findColumnIndex returns the index of the first header matching one of possibleNames, or -1
func findColumnIndex(header []string, possibleNames []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, name := range possibleNames {
			if strings.ToLower(name) == h {
				return i
			}
		}
	}
	return -1
}

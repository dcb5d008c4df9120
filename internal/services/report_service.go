package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/models"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/repositories"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/utils"
)

// Compile-time check to ensure ReportServiceImpl implements ReportService
var _ ReportService = (*ReportServiceImpl)(nil)

// csvHeader is the column order of ExportCSV
var csvHeader = []string{"id", "name", "email", "phone", "prize", "date"}

// ReportServiceImpl implements ReportService
type ReportServiceImpl struct {
	spinRepo repositories.SpinRepository
	prizes   *PrizeTable
}

// NewReportService creates a new ReportServiceImpl
func NewReportService(spinRepo repositories.SpinRepository, prizes *PrizeTable) *ReportServiceImpl {
	return &ReportServiceImpl{
		spinRepo: spinRepo,
		prizes:   prizes,
	}
}

// Prizes returns the configured prize table
func (s *ReportServiceImpl) Prizes() []models.Prize {
	return s.prizes.Prizes()
}

// ListSpins returns the spins of a day ordered by ID
func (s *ReportServiceImpl) ListSpins(ctx context.Context, date string) ([]*models.SpinRecord, error) {
	if !utils.IsValidDay(date) {
		return nil, ErrInvalidDate
	}
	spins, err := s.spinRepo.FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list spins: %w", err)
	}
	return spins, nil
}

// DailyStats counts a day's spins per prize. Prizes follow table order; names no longer in the table are appended.
func (s *ReportServiceImpl) DailyStats(ctx context.Context, date string) (*models.DailyStats, error) {
	spins, err := s.ListSpins(ctx, date)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(spins))
	var unknown []string
	known := make(map[string]bool)
	for _, p := range s.prizes.Prizes() {
		known[p.Name] = true
	}
	for _, spin := range spins {
		if !known[spin.Prize] && counts[spin.Prize] == 0 {
			unknown = append(unknown, spin.Prize)
		}
		counts[spin.Prize]++
	}

	stats := &models.DailyStats{Date: date, Total: len(spins)}
	for _, p := range s.prizes.Prizes() {
		stats.Prizes = append(stats.Prizes, models.PrizeCount{Prize: p.Name, Count: counts[p.Name]})
	}
	for _, name := range unknown {
		stats.Prizes = append(stats.Prizes, models.PrizeCount{Prize: name, Count: counts[name]})
	}
	return stats, nil
}

// ExportCSV writes a day's spins as CSV
func (s *ReportServiceImpl) ExportCSV(ctx context.Context, date string, w io.Writer) error {
	spins, err := s.ListSpins(ctx, date)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, spin := range spins {
		id := ""
		if spin.ID != 0 {
			id = strconv.FormatInt(spin.ID, 10)
		}
		record := []string{id, spin.Name, spin.Email, spin.Phone, spin.Prize, spin.Date}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

package calendar

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/username/vacation-planner/internal/planner"
	"github.com/username/vacation-planner/pkg/dateutil"
)

// HolidaySource provides the holidays a fresh planner starts with
type HolidaySource interface {
	Holidays() (planner.Holidays, error)
}

// FileHolidays implements HolidaySource using a local text file
type FileHolidays struct {
	filePath string
	logger   *zap.Logger
}

// NewFileHolidays creates a new FileHolidays instance
func NewFileHolidays(filePath string, logger *zap.Logger) *FileHolidays {
	return &FileHolidays{
		filePath: filePath,
		logger:   logger,
	}
}

// Holidays loads the holiday file
func (fh *FileHolidays) Holidays() (planner.Holidays, error) {
	return LoadHolidayFile(fh.filePath, fh.logger)
}

// LoadHolidayFile reads holidays from a text file.
//
// Format: YYYY-MM-DD type [note], where type is national, regional, local or
// convenio. Blank lines and lines starting with # are ignored; malformed lines
// are logged and skipped. A later line for the same date wins.
func LoadHolidayFile(filePath string, logger *zap.Logger) (planner.Holidays, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open holiday file: %w", err)
	}
	defer file.Close()

	holidays := planner.Holidays{}
	scanner := bufio.NewScanner(file)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Example: 2026-03-19 regional San José
		parts := strings.Fields(line)
		if len(parts) < 2 {
			logger.Warn("Invalid line format", zap.Int("line", lineNo), zap.String("content", line))
			continue
		}

		dateStr := parts[0]
		if !dateutil.IsValidDate(dateStr) {
			logger.Warn("Failed to parse date", zap.Int("line", lineNo), zap.String("date", dateStr))
			continue
		}

		holidayType, ok := parseHolidayType(parts[1])
		if !ok {
			logger.Warn("Unknown holiday type", zap.Int("line", lineNo), zap.String("type", parts[1]))
			continue
		}

		holidays[dateStr] = holidayType
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading holiday file: %w", err)
	}

	logger.Info("Holiday file loaded",
		zap.String("file", filePath),
		zap.Int("holidays", len(holidays)))

	return holidays, nil
}

func parseHolidayType(s string) (planner.HolidayType, bool) {
	switch strings.ToLower(s) {
	case "national":
		return planner.HolidayTypeNational, true
	case "regional":
		return planner.HolidayTypeRegional, true
	case "local":
		return planner.HolidayTypeLocal, true
	case "convenio":
		return planner.HolidayTypeConvenio, true
	}
	return "", false
}

// BundledHolidays serves the built-in national holidays
type BundledHolidays struct{}

// Holidays returns the built-in national holidays
func (BundledHolidays) Holidays() (planner.Holidays, error) {
	return planner.DefaultHolidays(), nil
}

package calendar

import (
	"go.uber.org/zap"

	"github.com/username/vacation-planner/internal/planner"
)

// CompositeHolidays implements HolidaySource with fallback strategy
// Primary: FileHolidays (seed file)
// Fallback: BundledHolidays
type CompositeHolidays struct {
	primary  HolidaySource
	fallback HolidaySource
	logger   *zap.Logger
}

// NewCompositeHolidays creates a new CompositeHolidays
func NewCompositeHolidays(primary, fallback HolidaySource, logger *zap.Logger) *CompositeHolidays {
	return &CompositeHolidays{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Holidays returns the primary holidays, or the fallback's when the primary fails
func (ch *CompositeHolidays) Holidays() (planner.Holidays, error) {
	holidays, err := ch.primary.Holidays()
	if err == nil {
		return holidays, nil
	}

	ch.logger.Warn("Primary holiday source failed, falling back",
		zap.Error(err))

	return ch.fallback.Holidays()
}

// NewHolidaySource returns the holiday source for an optional seed file
func NewHolidaySource(seedFile string, logger *zap.Logger) HolidaySource {
	if seedFile == "" {
		return BundledHolidays{}
	}
	return NewCompositeHolidays(NewFileHolidays(seedFile, logger), BundledHolidays{}, logger)
}

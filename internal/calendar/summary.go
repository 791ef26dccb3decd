package calendar

import (
	"fmt"
	"time"

	"github.com/username/vacation-planner/internal/planner"
	"github.com/username/vacation-planner/pkg/dateutil"
)

// SummaryMonths is the number of pages of the monthly summary:
// index 0 is December of the previous year, 1..12 are January..December
const SummaryMonths = 13

// SummaryDay is a column header of the monthly summary
type SummaryDay struct {
	Day     int    `json:"day"`
	Date    string `json:"date"`
	Initial string `json:"initial"`
	Weekend bool   `json:"weekend"`
}

// SummaryCell is one user's day in the monthly summary
type SummaryCell struct {
	Date  string  `json:"date"`
	Type  DayType `json:"type"`
	Short string  `json:"short,omitempty"`
	Label string  `json:"label"`
}

// SummaryRow holds one user's cells for the month
type SummaryRow struct {
	User  string        `json:"user"`
	Cells []SummaryCell `json:"cells"`
}

// Summary is the month-by-user table
type Summary struct {
	Index int          `json:"index"`
	Year  int          `json:"year"`
	Month time.Month   `json:"month"`
	Title string       `json:"title"`
	Days  []SummaryDay `json:"days"`
	Rows  []SummaryRow `json:"rows"`
}

// SummaryPeriod maps a summary index to its year and month
func SummaryPeriod(index int) (int, time.Month, error) {
	if index < 0 || index >= SummaryMonths {
		return 0, 0, fmt.Errorf("summary month index out of range: %d", index)
	}
	if index == 0 {
		return planner.TargetYear - 1, time.December, nil
	}
	return planner.TargetYear, time.Month(index), nil
}

// MonthlySummary builds the table for the month at index. Unlike the
// per-user calendar it always shows whole months, including all of the
// previous December. Rows follow the order of data.Users.
func MonthlySummary(data planner.AppData, index int) (*Summary, error) {
	year, month, err := SummaryPeriod(index)
	if err != nil {
		return nil, err
	}

	daysInMonth := dateutil.DaysInMonth(year, month)
	summary := &Summary{
		Index: index,
		Year:  year,
		Month: month,
		Title: Title(year, month),
		Days:  make([]SummaryDay, 0, daysInMonth),
		Rows:  make([]SummaryRow, 0, len(data.Users)),
	}

	dates := make([]time.Time, 0, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		date := dateutil.Date(year, month, day)
		dates = append(dates, date)
		summary.Days = append(summary.Days, SummaryDay{
			Day:     day,
			Date:    dateutil.FormatDate(date),
			Initial: string([]rune(WeekdayName(date.Weekday()))[0]),
			Weekend: dateutil.IsWeekend(date),
		})
	}

	for _, user := range data.Users {
		uc := &UserCalendar{data: data, user: user, year: planner.TargetYear}
		row := SummaryRow{User: user, Cells: make([]SummaryCell, 0, daysInMonth)}
		for _, date := range dates {
			info := uc.classify(date)
			row.Cells = append(row.Cells, SummaryCell{
				Date:  info.Key,
				Type:  info.Type,
				Short: info.Marking.ShortLabel(),
				Label: info.Label,
			})
		}
		summary.Rows = append(summary.Rows, row)
	}

	return summary, nil
}

package calendar

import (
	"fmt"
	"time"

	"github.com/username/vacation-planner/internal/planner"
	"github.com/username/vacation-planner/pkg/dateutil"
)

// DayType is the resolved classification of a calendar cell
type DayType int

const (
	DayTypeWorkday DayType = iota + 1
	DayTypeWeekend
	DayTypeHoliday
	DayTypeVacation
	DayTypePersonal
)

func (t DayType) String() string {
	switch t {
	case DayTypeWorkday:
		return "workday"
	case DayTypeWeekend:
		return "weekend"
	case DayTypeHoliday:
		return "holiday"
	case DayTypeVacation:
		return "vacation"
	case DayTypePersonal:
		return "personal"
	default:
		return "unknown"
	}
}

// MarshalText encodes the day type by name
func (t DayType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a day type name
func (t *DayType) UnmarshalText(text []byte) error {
	for candidate := DayTypeWorkday; candidate <= DayTypePersonal; candidate++ {
		if candidate.String() == string(text) {
			*t = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown day type %q", text)
}

// DayInfo represents information about a specific day
type DayInfo struct {
	Date    time.Time           `json:"-"`
	Key     string              `json:"date"`
	Weekday string              `json:"weekday"`
	Type    DayType             `json:"type"`
	Holiday planner.HolidayType `json:"holiday,omitempty"`
	Marking planner.DayType     `json:"marking,omitempty"`
	Label   string              `json:"label"`
}

// MonthInfo represents calendar information for a month
type MonthInfo struct {
	Year         int        `json:"year"`
	Month        time.Month `json:"month"`
	Title        string     `json:"title"`
	Offset       int        `json:"offset"` // blank cells before the first day in a Monday-first grid
	WorkDays     int        `json:"workDays"`
	Weekends     int        `json:"weekends"`
	Holidays     int        `json:"holidays"`
	VacationDays int        `json:"vacationDays"`
	PersonalDays int        `json:"personalDays"`
	Days         []DayInfo  `json:"days"`
}

// Calendar resolves days and months of the planning window
type Calendar interface {
	// GetMonthInfo returns calendar info for the entire month
	GetMonthInfo(year int, month time.Month) (*MonthInfo, error)

	// GetDayInfo returns detailed info for a specific day
	GetDayInfo(date time.Time) (*DayInfo, error)
}

// Period is one month of the planning window. The first period only covers
// the tail of the previous December.
type Period struct {
	Year     int
	Month    time.Month
	FirstDay int
	LastDay  int
}

// tailStartDay is where the previous December starts being shown
const tailStartDay = 15

// Months returns the planning window for year: December 15-31 of year-1
// followed by every month of year
func Months(year int) []Period {
	periods := make([]Period, 0, 13)
	periods = append(periods, Period{
		Year:     year - 1,
		Month:    time.December,
		FirstDay: tailStartDay,
		LastDay:  31,
	})
	for m := time.January; m <= time.December; m++ {
		periods = append(periods, Period{
			Year:     year,
			Month:    m,
			FirstDay: 1,
			LastDay:  dateutil.DaysInMonth(year, m),
		})
	}
	return periods
}

var _ Calendar = (*UserCalendar)(nil)

// UserCalendar classifies the planning window for one user.
// Precedence is holiday, then the user's marking, then weekend.
type UserCalendar struct {
	data planner.AppData
	user string
	year int
}

// NewUserCalendar creates a calendar view of data for user. An empty user
// yields a calendar with holidays and weekends only.
func NewUserCalendar(data planner.AppData, user string) *UserCalendar {
	return &UserCalendar{
		data: data,
		user: user,
		year: planner.TargetYear,
	}
}

// GetMonthInfo returns calendar info for the entire month
func (uc *UserCalendar) GetMonthInfo(year int, month time.Month) (*MonthInfo, error) {
	period, ok := uc.period(year, month)
	if !ok {
		return nil, fmt.Errorf("month not in planning window: %d-%02d", year, month)
	}

	first := dateutil.Date(period.Year, period.Month, period.FirstDay)
	monthInfo := &MonthInfo{
		Year:   period.Year,
		Month:  period.Month,
		Title:  Title(period.Year, period.Month),
		Offset: dateutil.MondayOffset(first),
		Days:   make([]DayInfo, 0, period.LastDay-period.FirstDay+1),
	}

	for day := period.FirstDay; day <= period.LastDay; day++ {
		dayInfo := uc.classify(dateutil.Date(period.Year, period.Month, day))
		monthInfo.Days = append(monthInfo.Days, dayInfo)

		switch dayInfo.Type {
		case DayTypeWorkday:
			monthInfo.WorkDays++
		case DayTypeWeekend:
			monthInfo.Weekends++
		case DayTypeHoliday:
			monthInfo.Holidays++
		case DayTypeVacation:
			monthInfo.VacationDays++
		case DayTypePersonal:
			monthInfo.PersonalDays++
		}
	}

	return monthInfo, nil
}

// GetDayInfo returns detailed info for a specific day
func (uc *UserCalendar) GetDayInfo(date time.Time) (*DayInfo, error) {
	period, ok := uc.period(date.Year(), date.Month())
	if !ok || date.Day() < period.FirstDay || date.Day() > period.LastDay {
		return nil, fmt.Errorf("day not in planning window: %s", dateutil.FormatDate(date))
	}

	dayInfo := uc.classify(dateutil.StartOfDay(date))
	return &dayInfo, nil
}

// Window returns every month of the planning window in order
func (uc *UserCalendar) Window() ([]MonthInfo, error) {
	periods := Months(uc.year)
	months := make([]MonthInfo, 0, len(periods))
	for _, p := range periods {
		monthInfo, err := uc.GetMonthInfo(p.Year, p.Month)
		if err != nil {
			return nil, err
		}
		months = append(months, *monthInfo)
	}
	return months, nil
}

func (uc *UserCalendar) period(year int, month time.Month) (Period, bool) {
	for _, p := range Months(uc.year) {
		if p.Year == year && p.Month == month {
			return p, true
		}
	}
	return Period{}, false
}

func (uc *UserCalendar) classify(date time.Time) DayInfo {
	key := dateutil.FormatDate(date)
	dayInfo := DayInfo{
		Date:    date,
		Key:     key,
		Weekday: WeekdayName(date.Weekday()),
	}

	if holiday, ok := uc.data.Holidays[key]; ok {
		dayInfo.Type = DayTypeHoliday
		dayInfo.Holiday = holiday
		dayInfo.Label = holiday.Label()
		return dayInfo
	}

	if marking, ok := uc.data.Schedule[uc.user][key]; ok && uc.user != "" {
		dayInfo.Marking = marking
		dayInfo.Label = marking.Label()
		if marking == planner.DayTypePersonal {
			dayInfo.Type = DayTypePersonal
		} else {
			dayInfo.Type = DayTypeVacation
		}
		return dayInfo
	}

	if dateutil.IsWeekend(date) {
		dayInfo.Type = DayTypeWeekend
		dayInfo.Label = LabelWeekend
		return dayInfo
	}

	dayInfo.Type = DayTypeWorkday
	dayInfo.Label = LabelWorkday
	return dayInfo
}

package planner

// PlaceholderUser is the sole user of the state recovered from corrupt storage
const PlaceholderUser = "Usuario de Ejemplo"

// DefaultUsers is the team shown on first run
var DefaultUsers = []string{
	"Ana García",
	"Carlos Rodriguez",
	"Luisa Martinez",
	"David Fernández",
	"Sofía López",
}

// DefaultSchedule returns the example bookings shown on first run
func DefaultSchedule() Schedule {
	return Schedule{
		"Ana García": vacationDays(
			"2026-07-13", "2026-07-14", "2026-07-15", "2026-07-16", "2026-07-17",
			"2026-07-20", "2026-07-21", "2026-07-22", "2026-07-23", "2026-07-24",
		),
		"Carlos Rodriguez": merge(
			personalDays("2026-03-03", "2026-03-04"),
			vacationDays(
				"2026-08-04", "2026-08-05", "2026-08-06", "2026-08-07",
				"2026-08-10", "2026-08-11", "2026-08-12", "2026-08-13", "2026-08-14",
			),
		),
		"Luisa Martinez": vacationDays(
			"2026-12-22", "2026-12-23", "2026-12-24",
			"2026-12-28", "2026-12-29", "2026-12-30", "2026-12-31",
		),
		"David Fernández": vacationDays(
			"2026-06-01", "2026-06-02", "2026-06-03", "2026-06-04", "2026-06-05",
			"2026-06-08", "2026-06-09", "2026-06-10", "2026-06-11", "2026-06-12",
		),
		"Sofía López": personalDays("2026-10-13", "2026-10-14"),
	}
}

// DefaultHolidays returns the national holidays of 2026
func DefaultHolidays() Holidays {
	return Holidays{
		"2026-01-01": HolidayTypeNational,
		"2026-01-06": HolidayTypeNational,
		"2026-04-17": HolidayTypeNational,
		"2026-05-01": HolidayTypeNational,
		"2026-08-15": HolidayTypeNational,
		"2026-11-01": HolidayTypeNational,
		"2026-12-06": HolidayTypeNational,
		"2026-12-08": HolidayTypeNational,
		"2026-12-25": HolidayTypeNational,
	}
}

// DefaultAppData is the first-run state. A nil holidays map selects the
// bundled national holidays.
func DefaultAppData(holidays Holidays) AppData {
	if holidays == nil {
		holidays = DefaultHolidays()
	}
	users := make([]string, len(DefaultUsers))
	copy(users, DefaultUsers)
	return AppData{
		Users:    users,
		Schedule: DefaultSchedule(),
		Holidays: holidays.Clone(),
	}
}

// PlaceholderAppData is the state used when stored data cannot be read
func PlaceholderAppData() AppData {
	return AppData{
		Users:    []string{PlaceholderUser},
		Schedule: Schedule{},
		Holidays: DefaultHolidays(),
	}
}

// Normalize fills missing fields the way a partially written document is read
// back: no users, an empty schedule and the default holidays
func Normalize(data AppData) AppData {
	if data.Users == nil {
		data.Users = []string{}
	}
	if data.Schedule == nil {
		data.Schedule = Schedule{}
	}
	if data.Holidays == nil {
		data.Holidays = DefaultHolidays()
	}
	return data
}

func vacationDays(dates ...string) UserSchedule {
	return markDays(DayTypeVacation, dates)
}

func personalDays(dates ...string) UserSchedule {
	return markDays(DayTypePersonal, dates)
}

func markDays(t DayType, dates []string) UserSchedule {
	us := make(UserSchedule, len(dates))
	for _, d := range dates {
		us[d] = t
	}
	return us
}

func merge(schedules ...UserSchedule) UserSchedule {
	out := UserSchedule{}
	for _, us := range schedules {
		for d, t := range us {
			out[d] = t
		}
	}
	return out
}

package planner

import (
	"sort"
	"strings"
	"time"

	"github.com/username/vacation-planner/pkg/dateutil"
)

// ToggleUserDay toggles dayType for userName on date.
//
// The call is a no-op when userName is empty, the date is malformed, the date
// already holds a holiday, or the date falls on a weekend. Clicking the same
// category twice removes it; a different category overwrites it. The input
// schedule is never modified.
func ToggleUserDay(schedule Schedule, holidays Holidays, userName, date string, dayType DayType) Schedule {
	if userName == "" || !dayType.Valid() {
		return schedule
	}
	if !CanMark(DayMarking{Type: dayType}, holidays, date) {
		return schedule
	}

	next := schedule.Clone()
	userSchedule := next[userName]
	if userSchedule == nil {
		userSchedule = UserSchedule{}
	}

	if userSchedule[date] == dayType {
		delete(userSchedule, date)
	} else {
		userSchedule[date] = dayType
	}

	next[userName] = userSchedule
	return next
}

// ToggleHoliday toggles holidayType on date and clears every user's marking on
// that date. The clearing happens both when the holiday is set and when it is
// removed.
func ToggleHoliday(schedule Schedule, holidays Holidays, date string, holidayType HolidayType) (Schedule, Holidays) {
	if !holidayType.Valid() || !dateutil.IsValidDate(date) {
		return schedule, holidays
	}

	nextHolidays := holidays.Clone()
	if nextHolidays[date] == holidayType {
		delete(nextHolidays, date)
	} else {
		nextHolidays[date] = holidayType
	}

	nextSchedule := schedule.Clone()
	for _, userSchedule := range nextSchedule {
		delete(userSchedule, date)
	}

	return nextSchedule, nextHolidays
}

// AddUser appends userName to users. Blank names and exact duplicates are ignored.
func AddUser(users []string, userName string) []string {
	if strings.TrimSpace(userName) == "" {
		return users
	}
	for _, u := range users {
		if u == userName {
			return users
		}
	}

	next := make([]string, 0, len(users)+1)
	next = append(next, users...)
	return append(next, userName)
}

// RemoveUser drops userName from users together with its schedule.
// Unknown names are a no-op.
func RemoveUser(users []string, schedule Schedule, userName string) ([]string, Schedule) {
	nextUsers := make([]string, 0, len(users))
	for _, u := range users {
		if u != userName {
			nextUsers = append(nextUsers, u)
		}
	}

	nextSchedule := schedule.Clone()
	delete(nextSchedule, userName)

	return nextUsers, nextSchedule
}

// Overlap is a date on which two or more users are on vacation
type Overlap struct {
	Date  string   `json:"date"`
	Users []string `json:"users"`
}

// ComputeOverlaps reports every date where at least two users hold a Vacation
// marking, sorted chronologically. Personal days never count.
//
// Users named in order are visited first, in that order; remaining schedule
// keys follow in lexical order.
func ComputeOverlaps(schedule Schedule, order ...string) []Overlap {
	byDate := make(map[string][]string)
	for _, user := range visitOrder(schedule, order) {
		for date, dayType := range schedule[user] {
			if dayType == DayTypeVacation {
				byDate[date] = append(byDate[date], user)
			}
		}
	}

	overlaps := make([]Overlap, 0)
	for date, users := range byDate {
		if len(users) > 1 {
			overlaps = append(overlaps, Overlap{Date: date, Users: users})
		}
	}

	sort.SliceStable(overlaps, func(i, j int) bool {
		return dateBefore(overlaps[i].Date, overlaps[j].Date)
	})

	return overlaps
}

// UserTotals summarizes the eligible days one user has taken
type UserTotals struct {
	User         string `json:"user"`
	VacationDays int    `json:"vacationDays"`
	PersonalDays int    `json:"personalDays"`
	Total        int    `json:"total"`
}

var (
	// Vacation days on or before this date belong to the previous year's allowance
	vacationCutoff = dateutil.Date(TargetYear, time.January, 31)
	// Personal days on or before this date belong to the previous year's allowance
	personalCutoff = dateutil.Date(TargetYear, time.February, 15)
)

// ComputeUserTotals counts eligible Vacation and Personal days per user, in the
// order of users. Vacation counts only after January 31 and Personal only after
// February 15 of the target year.
func ComputeUserTotals(users []string, schedule Schedule) []UserTotals {
	totals := make([]UserTotals, 0, len(users))
	for _, user := range users {
		t := UserTotals{User: user}
		for date, dayType := range schedule[user] {
			d, err := dateutil.ParseDate(date)
			if err != nil {
				continue
			}
			switch dayType {
			case DayTypeVacation:
				if d.After(vacationCutoff) {
					t.VacationDays++
				}
			case DayTypePersonal:
				if d.After(personalCutoff) {
					t.PersonalDays++
				}
			}
		}
		t.Total = t.VacationDays + t.PersonalDays
		totals = append(totals, t)
	}
	return totals
}

func visitOrder(schedule Schedule, order []string) []string {
	seen := make(map[string]bool, len(schedule))
	visit := make([]string, 0, len(schedule))
	for _, user := range order {
		if _, ok := schedule[user]; ok && !seen[user] {
			seen[user] = true
			visit = append(visit, user)
		}
	}

	rest := make([]string, 0)
	for user := range schedule {
		if !seen[user] {
			rest = append(rest, user)
		}
	}
	sort.Strings(rest)

	return append(visit, rest...)
}

// dateBefore orders by calendar date; malformed keys sort last, lexically
func dateBefore(a, b string) bool {
	da, errA := dateutil.ParseDate(a)
	db, errB := dateutil.ParseDate(b)
	switch {
	case errA == nil && errB == nil:
		return da.Before(db)
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}

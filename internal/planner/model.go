package planner

// TargetYear is the calendar year the planner is built for
const TargetYear = 2026

// DayType is a per-user day marking
type DayType string

const (
	DayTypeVacation DayType = "VACATION"
	DayTypePersonal DayType = "PERSONAL"
)

// DayTypes lists every day marking in display order
var DayTypes = []DayType{DayTypeVacation, DayTypePersonal}

// Valid reports whether t is a known day marking
func (t DayType) Valid() bool {
	return t == DayTypeVacation || t == DayTypePersonal
}

// Label returns the display name of the marking
func (t DayType) Label() string {
	switch t {
	case DayTypeVacation:
		return "Vacaciones"
	case DayTypePersonal:
		return "Asuntos Propios"
	default:
		return string(t)
	}
}

// ShortLabel returns the cell abbreviation used in the monthly summary
func (t DayType) ShortLabel() string {
	switch t {
	case DayTypeVacation:
		return "V"
	case DayTypePersonal:
		return "AP"
	default:
		return ""
	}
}

// HolidayType is a shared, company-wide holiday designation
type HolidayType string

const (
	HolidayTypeNational HolidayType = "NATIONAL_HOLIDAY"
	HolidayTypeRegional HolidayType = "REGIONAL_HOLIDAY"
	HolidayTypeLocal    HolidayType = "LOCAL_HOLIDAY"
	HolidayTypeConvenio HolidayType = "CONVENIO_HOLIDAY"
)

// HolidayTypes lists every holiday category in display order
var HolidayTypes = []HolidayType{
	HolidayTypeNational,
	HolidayTypeRegional,
	HolidayTypeLocal,
	HolidayTypeConvenio,
}

// Valid reports whether t is a known holiday category
func (t HolidayType) Valid() bool {
	switch t {
	case HolidayTypeNational, HolidayTypeRegional, HolidayTypeLocal, HolidayTypeConvenio:
		return true
	}
	return false
}

// Label returns the display name of the holiday category
func (t HolidayType) Label() string {
	switch t {
	case HolidayTypeNational:
		return "Festivo Nacional"
	case HolidayTypeRegional:
		return "Festivo Autonómico"
	case HolidayTypeLocal:
		return "Festivo Local"
	case HolidayTypeConvenio:
		return "Festivo por Convenio"
	default:
		return string(t)
	}
}

// UserSchedule maps a YYYY-MM-DD date to a user's marking
type UserSchedule map[string]DayType

// Schedule maps a user name to that user's markings
type Schedule map[string]UserSchedule

// Holidays maps a YYYY-MM-DD date to its holiday category
type Holidays map[string]HolidayType

// AppData is the persisted aggregate: the unit of save, load, export and import
type AppData struct {
	Users    []string `json:"users" validate:"unique,dive,required"`
	Schedule Schedule `json:"schedule" validate:"dive,keys,required,endkeys,dive,keys,isodate,endkeys,oneof=VACATION PERSONAL"`
	Holidays Holidays `json:"holidays" validate:"dive,keys,isodate,endkeys,oneof=NATIONAL_HOLIDAY REGIONAL_HOLIDAY LOCAL_HOLIDAY CONVENIO_HOLIDAY"`
}

// Clone returns a deep copy of the user schedule
func (us UserSchedule) Clone() UserSchedule {
	if us == nil {
		return nil
	}
	out := make(UserSchedule, len(us))
	for date, t := range us {
		out[date] = t
	}
	return out
}

// Clone returns a deep copy of the schedule
func (s Schedule) Clone() Schedule {
	out := make(Schedule, len(s))
	for user, us := range s {
		out[user] = us.Clone()
	}
	return out
}

// Clone returns a copy of the holiday map
func (h Holidays) Clone() Holidays {
	out := make(Holidays, len(h))
	for date, t := range h {
		out[date] = t
	}
	return out
}

// Clone returns a deep copy of the aggregate
func (d AppData) Clone() AppData {
	users := make([]string, len(d.Users))
	copy(users, d.Users)
	return AppData{
		Users:    users,
		Schedule: d.Schedule.Clone(),
		Holidays: d.Holidays.Clone(),
	}
}

// HasUser reports whether name is in the ordered user list (exact match)
func (d AppData) HasUser(name string) bool {
	for _, u := range d.Users {
		if u == name {
			return true
		}
	}
	return false
}

package planner

import (
	"fmt"
	"strings"

	"github.com/username/vacation-planner/pkg/dateutil"
)

// Tool is the active marking tool. It is either a DayMarking or a HolidayMarking;
// the variant is fixed when the tool is selected.
type Tool interface {
	// Value returns the wire value of the category the tool applies
	Value() string
	Label() string
	isTool()
}

// DayMarking marks days in the current user's schedule
type DayMarking struct {
	Type DayType
}

func (t DayMarking) Value() string { return string(t.Type) }
func (t DayMarking) Label() string { return t.Type.Label() }
func (DayMarking) isTool() {}

// HolidayMarking marks shared holidays for every user
type HolidayMarking struct {
	Type HolidayType
}

func (t HolidayMarking) Value() string { return string(t.Type) }
func (t HolidayMarking) Label() string { return t.Type.Label() }
func (HolidayMarking) isTool() {}

// DefaultTool is the tool selected when a session starts
var DefaultTool Tool = DayMarking{Type: DayTypeVacation}

// ParseTool resolves a wire value (VACATION, NATIONAL_HOLIDAY, ...) or a short
// alias (vacation, personal, national, regional, local, convenio) into a Tool
func ParseTool(value string) (Tool, error) {
	v := strings.ToUpper(strings.TrimSpace(value))

	if dt := DayType(v); dt.Valid() {
		return DayMarking{Type: dt}, nil
	}
	if ht := HolidayType(v); ht.Valid() {
		return HolidayMarking{Type: ht}, nil
	}
	if ht := HolidayType(v + "_HOLIDAY"); ht.Valid() {
		return HolidayMarking{Type: ht}, nil
	}

	return nil, fmt.Errorf("unknown marking tool %q", value)
}

// CanMark reports whether date accepts a click with the given tool.
// Holiday tools can mark any date; day tools skip holidays and weekends.
func CanMark(tool Tool, holidays Holidays, date string) bool {
	if !dateutil.IsValidDate(date) {
		return false
	}

	switch tool.(type) {
	case HolidayMarking:
		return true
	case DayMarking:
		if _, isHoliday := holidays[date]; isHoliday {
			return false
		}
		return !dateutil.IsWeekendKey(date)
	default:
		return false
	}
}

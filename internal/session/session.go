package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/username/vacation-planner/internal/calendar"
	"github.com/username/vacation-planner/internal/persistence"
	"github.com/username/vacation-planner/internal/planner"
	"github.com/username/vacation-planner/pkg/dateutil"
)

var (
	ErrNoUserSelected  = errors.New("select a user before marking days")
	ErrEmptyUserName   = errors.New("user name cannot be empty")
	ErrUserExists      = errors.New("user already exists")
	ErrUnknownUser     = errors.New("unknown user")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidView     = errors.New("invalid view")
	ErrImportCancelled = errors.New("import cancelled")
)

// View is the main panel being shown
type View string

const (
	ViewCalendar View = "calendar"
	ViewSummary  View = "summary"
)

// ConfirmFunc asks the user to confirm replacing the current state
type ConfirmFunc func() bool

// Session owns the planner state for one user of the application.
// It is not safe for concurrent use.
type Session struct {
	gateway *persistence.Gateway
	logger  *zap.Logger

	data        planner.AppData
	source      persistence.LoadSource
	currentUser string
	tool        planner.Tool
	view        View
	monthIndex  int
	unsaved     bool
}

// New loads the initial state through gateway
func New(ctx context.Context, gateway *persistence.Gateway, logger *zap.Logger) *Session {
	data, source := gateway.LoadInitialState(ctx)

	s := &Session{
		gateway: gateway,
		logger:  logger,
		data:    data,
		source:  source,
		tool:    planner.DefaultTool,
		view:    ViewCalendar,
	}
	s.currentUser = firstUser(data.Users)

	logger.Info("Session started",
		zap.Stringer("source", source),
		zap.Int("users", len(data.Users)),
		zap.String("current_user", s.currentUser))

	return s
}

// Data returns a copy of the current state
func (s *Session) Data() planner.AppData {
	return s.data.Clone()
}

// Source reports where the initial state came from
func (s *Session) Source() persistence.LoadSource {
	return s.source
}

func (s *Session) CurrentUser() string { return s.currentUser }
func (s *Session) Tool() planner.Tool  { return s.tool }
func (s *Session) View() View          { return s.view }
func (s *Session) MonthIndex() int     { return s.monthIndex }

// SelectUser makes name the current user
func (s *Session) SelectUser(name string) error {
	if !s.data.HasUser(name) {
		return fmt.Errorf("%w: %q", ErrUnknownUser, name)
	}
	s.currentUser = name
	return nil
}

// SelectTool sets the active marking tool
func (s *Session) SelectTool(tool planner.Tool) {
	if tool == nil {
		tool = planner.DefaultTool
	}
	s.tool = tool
}

// SetView switches between the calendar and the monthly summary
func (s *Session) SetView(v View) error {
	switch v {
	case ViewCalendar, ViewSummary:
		s.view = v
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidView, v)
}

// NextMonth advances the summary month, wrapping from the last month to the first
func (s *Session) NextMonth() int {
	s.monthIndex = (s.monthIndex + 1) % calendar.SummaryMonths
	return s.monthIndex
}

// PrevMonth moves the summary month back, wrapping from the first month to the last
func (s *Session) PrevMonth() int {
	s.monthIndex = (s.monthIndex + calendar.SummaryMonths - 1) % calendar.SummaryMonths
	return s.monthIndex
}

// ClickDay applies the active tool to date and reports whether anything changed.
// Day tools need a current user and leave holidays and weekends alone.
func (s *Session) ClickDay(date string) (bool, error) {
	if !dateutil.IsValidDate(date) {
		return false, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	switch tool := s.tool.(type) {
	case planner.HolidayMarking:
		s.data.Schedule, s.data.Holidays = planner.ToggleHoliday(s.data.Schedule, s.data.Holidays, date, tool.Type)
		s.markChanged("holiday_toggled", zap.String("date", date), zap.String("type", tool.Value()))
		return true, nil

	case planner.DayMarking:
		if s.currentUser == "" {
			return false, ErrNoUserSelected
		}
		if !planner.CanMark(tool, s.data.Holidays, date) {
			return false, nil
		}
		s.data.Schedule = planner.ToggleUserDay(s.data.Schedule, s.data.Holidays, s.currentUser, date, tool.Type)
		s.markChanged("day_toggled",
			zap.String("user", s.currentUser),
			zap.String("date", date),
			zap.String("type", tool.Value()))
		return true, nil
	}

	return false, nil
}

// AddUser trims name and appends it. Names that differ only by case are
// treated as duplicates. The new user becomes current when nobody is selected.
func (s *Session) AddUser(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyUserName
	}
	for _, u := range s.data.Users {
		if strings.EqualFold(u, name) {
			return "", fmt.Errorf("%w: %q", ErrUserExists, u)
		}
	}

	s.data.Users = planner.AddUser(s.data.Users, name)
	if s.currentUser == "" {
		s.currentUser = name
	}
	s.markChanged("user_added", zap.String("user", name))

	return name, nil
}

// RemoveUser deletes name and all of its markings. When the current user is
// removed the first remaining user takes over.
func (s *Session) RemoveUser(name string) error {
	if !s.data.HasUser(name) {
		return fmt.Errorf("%w: %q", ErrUnknownUser, name)
	}

	s.data.Users, s.data.Schedule = planner.RemoveUser(s.data.Users, s.data.Schedule, name)
	if s.currentUser == name {
		s.currentUser = firstUser(s.data.Users)
	}
	s.markChanged("user_removed", zap.String("user", name))

	return nil
}

// Save persists the current state and clears the unsaved flag
func (s *Session) Save(ctx context.Context) error {
	if err := s.gateway.SaveProgress(ctx, s.data); err != nil {
		s.logger.Error("Failed to save progress", zap.Error(err))
		return err
	}
	s.unsaved = false
	return nil
}

// Export writes the current state through saver, saving first when there are
// unsaved changes. A failed save aborts the export.
func (s *Session) Export(ctx context.Context, saver persistence.FileSaver) error {
	if s.unsaved {
		if err := s.Save(ctx); err != nil {
			return fmt.Errorf("export aborted: %w", err)
		}
	}
	return s.gateway.ExportToFile(ctx, s.data, saver)
}

// Import reads a document from source and, once confirm agrees, replaces the
// whole state with it and persists it right away. Nothing changes when the
// document is rejected or confirm declines.
//
// If the replaced state cannot be persisted the import still stands, the
// unsaved flag stays set and the storage error is returned.
func (s *Session) Import(ctx context.Context, source persistence.DocumentSource, confirm ConfirmFunc) error {
	data, err := s.gateway.ImportFromFile(ctx, source)
	if err != nil {
		return err
	}

	if confirm != nil && !confirm() {
		s.logger.Info("Import cancelled")
		return ErrImportCancelled
	}

	s.data = data
	s.currentUser = firstUser(data.Users)
	s.unsaved = true
	s.logger.Info("State replaced by import",
		zap.Int("users", len(data.Users)),
		zap.String("current_user", s.currentUser))

	if err := s.Save(ctx); err != nil {
		return fmt.Errorf("import applied but not saved: %w", err)
	}
	return nil
}

// Overlaps lists shared vacation dates, users in team order
func (s *Session) Overlaps() []planner.Overlap {
	return planner.ComputeOverlaps(s.data.Schedule, s.data.Users...)
}

// Totals lists eligible days per user in team order
func (s *Session) Totals() []planner.UserTotals {
	return planner.ComputeUserTotals(s.data.Users, s.data.Schedule)
}

// MonthlySummary builds the summary table for the selected month
func (s *Session) MonthlySummary() (*calendar.Summary, error) {
	return calendar.MonthlySummary(s.data, s.monthIndex)
}

// UserCalendar returns the calendar of user, or of the current user when user is empty
func (s *Session) UserCalendar(user string) (*calendar.UserCalendar, error) {
	if user == "" {
		user = s.currentUser
	}
	if user != "" && !s.data.HasUser(user) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUser, user)
	}
	return calendar.NewUserCalendar(s.data.Clone(), user), nil
}

// HasUnsavedChanges reports whether the state differs from what was last saved
func (s *Session) HasUnsavedChanges() bool {
	return s.unsaved
}

// ConfirmUnload reports whether leaving now must be warned about
func (s *Session) ConfirmUnload() bool {
	return s.unsaved
}

func (s *Session) markChanged(event string, fields ...zap.Field) {
	s.unsaved = true
	s.logger.Debug("State changed", append([]zap.Field{zap.String("event", event)}, fields...)...)
}

func firstUser(users []string) string {
	if len(users) == 0 {
		return ""
	}
	return users[0]
}

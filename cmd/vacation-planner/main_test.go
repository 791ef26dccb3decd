package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/username/vacation-planner/internal/calendar"
	"github.com/username/vacation-planner/internal/persistence"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	content := "storage:\n" +
		"  backend: file\n" +
		"  path: " + filepath.Join(dir, "data") + "\n" +
		"export:\n" +
		"  dir: " + dir + "\n" +
		"log:\n" +
		"  level: error\n"

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func runCLI(t *testing.T, cfgPath string, input string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestUsersAddAndMark(t *testing.T) {
	cfgPath := writeTestConfig(t)

	if _, err := runCLI(t, cfgPath, "", "users", "add", "  Marta  "); err != nil {
		t.Fatalf("users add error = %v", err)
	}

	out, err := runCLI(t, cfgPath, "", "users", "list")
	if err != nil {
		t.Fatalf("users list error = %v", err)
	}
	if !strings.Contains(out, ". Marta\n") {
		t.Errorf("users list output missing Marta:\n%s", out)
	}

	out, err = runCLI(t, cfgPath, "", "mark", "Marta", "2026-07-15", "vacation")
	if err != nil {
		t.Fatalf("mark error = %v", err)
	}
	if !strings.Contains(out, "Vacaciones") {
		t.Errorf("mark output = %q, want the vacation label", out)
	}

	out, err = runCLI(t, cfgPath, "", "totals")
	if err != nil {
		t.Fatalf("totals error = %v", err)
	}
	if !strings.Contains(out, "Marta") {
		t.Errorf("totals output missing Marta:\n%s", out)
	}
}

func TestUsersAddDuplicate(t *testing.T) {
	cfgPath := writeTestConfig(t)

	if _, err := runCLI(t, cfgPath, "", "users", "add", "Marta"); err != nil {
		t.Fatalf("users add error = %v", err)
	}
	if _, err := runCLI(t, cfgPath, "", "users", "add", "marta"); err == nil {
		t.Error("adding a case-insensitive duplicate should fail")
	}
}

func TestDryRunDoesNotSave(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := runCLI(t, cfgPath, "", "users", "add", "Marta", "--dry-run")
	if err != nil {
		t.Fatalf("users add error = %v", err)
	}
	if !strings.Contains(out, "DRY RUN") {
		t.Errorf("output = %q, want dry run notice", out)
	}

	out, err = runCLI(t, cfgPath, "", "users", "list")
	if err != nil {
		t.Fatalf("users list error = %v", err)
	}
	if strings.Contains(out, "Marta") {
		t.Errorf("dry run change was persisted:\n%s", out)
	}
}

func TestMarkRejectsHolidayCategory(t *testing.T) {
	cfgPath := writeTestConfig(t)

	if _, err := runCLI(t, cfgPath, "", "mark", "Marta", "2026-07-15", "national"); err == nil {
		t.Error("mark with a holiday category should fail")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	cfgPath := writeTestConfig(t)
	exportDir := t.TempDir()

	if _, err := runCLI(t, cfgPath, "", "users", "add", "Marta"); err != nil {
		t.Fatalf("users add error = %v", err)
	}
	if _, err := runCLI(t, cfgPath, "", "export", "--dir", exportDir); err != nil {
		t.Fatalf("export error = %v", err)
	}

	exported := filepath.Join(exportDir, persistence.ExportFileName)
	if _, err := os.Stat(exported); err != nil {
		t.Fatalf("exported file missing: %v", err)
	}

	otherCfg := writeTestConfig(t)

	// Declined prompt leaves the state alone
	if _, err := runCLI(t, otherCfg, "n\n", "import", exported); err == nil {
		t.Error("declined import should return an error")
	}
	out, _ := runCLI(t, otherCfg, "", "users", "list")
	if strings.Contains(out, "Marta") {
		t.Errorf("declined import changed the state:\n%s", out)
	}

	if _, err := runCLI(t, otherCfg, "s\n", "import", exported); err != nil {
		t.Fatalf("import error = %v", err)
	}
	out, _ = runCLI(t, otherCfg, "", "users", "list")
	if !strings.Contains(out, "Marta") {
		t.Errorf("imported state missing Marta:\n%s", out)
	}
}

func TestPromptConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"s\n", true},
		{"Sí\n", true},
		{"yes\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		if got := promptConfirm(strings.NewReader(tt.input), &out)(); got != tt.want {
			t.Errorf("promptConfirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

type fixedCalendar struct {
	month calendar.MonthInfo
}

func (c fixedCalendar) GetMonthInfo(year int, month time.Month) (*calendar.MonthInfo, error) {
	if year != c.month.Year || month != c.month.Month {
		return nil, errors.New("month not available")
	}
	info := c.month
	return &info, nil
}

func (c fixedCalendar) GetDayInfo(date time.Time) (*calendar.DayInfo, error) {
	return nil, errors.New("not implemented")
}

func TestPrintMonth(t *testing.T) {
	cal := fixedCalendar{month: calendar.MonthInfo{
		Year:         2026,
		Month:        time.March,
		Title:        "Marzo 2026",
		WorkDays:     1,
		VacationDays: 1,
		Days: []calendar.DayInfo{
			{Key: "2026-03-02", Weekday: "Lunes", Label: "Laborable"},
			{Key: "2026-03-03", Weekday: "Martes", Label: "Vacaciones"},
		},
	}}

	var out bytes.Buffer
	if err := printMonth(&out, cal, 2026, time.March); err != nil {
		t.Fatalf("printMonth() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{"Marzo 2026\n", "2026-03-03 Martes     Vacaciones\n", "Workdays: 1,", "vacation: 1,"} {
		if !strings.Contains(got, want) {
			t.Errorf("printMonth() output missing %q:\n%s", want, got)
		}
	}

	if err := printMonth(&out, cal, 2026, time.April); err == nil {
		t.Error("printMonth() for an unavailable month should fail")
	}
}

func TestCalendarCommand(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := runCLI(t, cfgPath, "", "calendar", "Carlos Rodriguez", "--month", "5")
	if err != nil {
		t.Fatalf("calendar error = %v", err)
	}
	if !strings.Contains(out, "Mayo 2026") {
		t.Errorf("calendar output missing title:\n%s", out)
	}
	if !strings.Contains(out, "2026-05-01") {
		t.Errorf("calendar output missing May 1:\n%s", out)
	}

	if _, err := runCLI(t, cfgPath, "", "calendar", "Nobody"); err == nil {
		t.Error("calendar for an unknown user should fail")
	}
}

func TestUserColumnWidth(t *testing.T) {
	tests := []struct {
		name  string
		users []string
		want  int
	}{
		{"no rows", nil, 4},
		{"ascii names", []string{"Ana", "Carlos"}, 6},
		{"accented names count runes", []string{"Sofía López", "David Fernández"}, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := make([]calendar.SummaryRow, 0, len(tt.users))
			for _, u := range tt.users {
				rows = append(rows, calendar.SummaryRow{User: u})
			}
			if got := userColumnWidth(rows); got != tt.want {
				t.Errorf("userColumnWidth(%v) = %d, want %d", tt.users, got, tt.want)
			}
		})
	}
}

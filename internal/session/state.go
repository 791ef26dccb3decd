package session

import (
	"github.com/username/vacation-planner/internal/planner"
)

// State is a read-only snapshot of the session
type State struct {
	Users       []string         `json:"users"`
	Schedule    planner.Schedule `json:"schedule"`
	Holidays    planner.Holidays `json:"holidays"`
	CurrentUser string           `json:"currentUser"`
	Tool        string           `json:"tool"`
	ToolLabel   string           `json:"toolLabel"`
	View        View             `json:"view"`
	MonthIndex  int              `json:"monthIndex"`
	Unsaved     bool             `json:"hasUnsavedChanges"`
	LoadedFrom  string           `json:"loadedFrom"`
}

// Snapshot copies the session into a State
func (s *Session) Snapshot() State {
	data := s.data.Clone()
	return State{
		Users:       data.Users,
		Schedule:    data.Schedule,
		Holidays:    data.Holidays,
		CurrentUser: s.currentUser,
		Tool:        s.tool.Value(),
		ToolLabel:   s.tool.Label(),
		View:        s.view,
		MonthIndex:  s.monthIndex,
		Unsaved:     s.unsaved,
		LoadedFrom:  s.source.String(),
	}
}

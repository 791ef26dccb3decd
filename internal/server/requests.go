package server

import (
	"encoding/json"
	"net/http"

	"github.com/username/vacation-planner/internal/planner"
)

const maxRequestBytes = 1 << 20

// SelectUserRequest selects the current user
type SelectUserRequest struct {
	User string `json:"user" validate:"required"`
}

// SelectToolRequest selects the marking tool
type SelectToolRequest struct {
	Tool string `json:"tool" validate:"required"`
}

// SelectViewRequest switches the main view
type SelectViewRequest struct {
	View string `json:"view" validate:"required,oneof=calendar summary"`
}

// ClickDayRequest applies the active tool to a date
type ClickDayRequest struct {
	Date string `json:"date" validate:"required,isodate"`
}

// AddUserRequest adds a team member
type AddUserRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// decodeAndValidate decodes the request body into v and validates it
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	return planner.Validator().Struct(v)
}

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/username/vacation-planner/internal/calendar"
	"github.com/username/vacation-planner/internal/persistence"
	"github.com/username/vacation-planner/internal/planner"
	"github.com/username/vacation-planner/internal/session"
)

// GetState handles GET /api/state
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.respondJSON(w, http.StatusOK, h.session.Snapshot())
}

// SelectUser handles PUT /api/selection/user
func (h *Handler) SelectUser(w http.ResponseWriter, r *http.Request) {
	var req SelectUserRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.session.SelectUser(req.User); err != nil {
		h.respondWithErr(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, h.session.Snapshot())
}

// SelectTool handles PUT /api/selection/tool
func (h *Handler) SelectTool(w http.ResponseWriter, r *http.Request) {
	var req SelectToolRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	tool, err := planner.ParseTool(req.Tool)
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.session.SelectTool(tool)
	h.respondJSON(w, http.StatusOK, h.session.Snapshot())
}

// SelectView handles PUT /api/selection/view
func (h *Handler) SelectView(w http.ResponseWriter, r *http.Request) {
	var req SelectViewRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.session.SetView(session.View(req.View)); err != nil {
		h.respondWithErr(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, h.session.Snapshot())
}

type monthResponse struct {
	MonthIndex int    `json:"monthIndex"`
	Title      string `json:"title"`
}

// NextMonth handles POST /api/selection/month/next
func (h *Handler) NextMonth(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.respondMonth(w, r, h.session.NextMonth())
}

// PrevMonth handles POST /api/selection/month/prev
func (h *Handler) PrevMonth(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.respondMonth(w, r, h.session.PrevMonth())
}

func (h *Handler) respondMonth(w http.ResponseWriter, r *http.Request, index int) {
	year, month, err := calendar.SummaryPeriod(index)
	if err != nil {
		h.respondWithErr(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, monthResponse{MonthIndex: index, Title: calendar.Title(year, month)})
}

type clickDayResponse struct {
	Changed           bool `json:"changed"`
	HasUnsavedChanges bool `json:"hasUnsavedChanges"`
}

// ClickDay handles POST /api/days/click
func (h *Handler) ClickDay(w http.ResponseWriter, r *http.Request) {
	var req ClickDayRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	changed, err := h.session.ClickDay(req.Date)
	if err != nil {
		h.respondWithErr(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, clickDayResponse{
		Changed:           changed,
		HasUnsavedChanges: h.session.HasUnsavedChanges(),
	})
}

type userResponse struct {
	Name string `json:"name"`
}

// AddUser handles POST /api/users
func (h *Handler) AddUser(w http.ResponseWriter, r *http.Request) {
	var req AddUserRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		h.respondError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	name, err := h.session.AddUser(req.Name)
	if err != nil {
		h.respondWithErr(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, userResponse{Name: name})
}

// RemoveUser handles DELETE /api/users/{name}
func (h *Handler) RemoveUser(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.session.RemoveUser(name); err != nil {
		h.respondWithErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetOverlaps handles GET /api/overlaps
func (h *Handler) GetOverlaps(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.respondJSON(w, http.StatusOK, h.session.Overlaps())
}

// GetTotals handles GET /api/totals
func (h *Handler) GetTotals(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.respondJSON(w, http.StatusOK, h.session.Totals())
}

// GetSummary handles GET /api/summary. The optional month query parameter
// (0..12) picks a month without moving the session's selection.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	monthParam := r.URL.Query().Get("month")
	if monthParam == "" {
		summary, err := h.session.MonthlySummary()
		if err != nil {
			h.respondWithErr(w, r, err)
			return
		}
		h.respondJSON(w, http.StatusOK, summary)
		return
	}

	index, err := strconv.Atoi(monthParam)
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid month %q", monthParam))
		return
	}
	summary, err := calendar.MonthlySummary(h.session.Data(), index)
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, summary)
}

// GetCalendar handles GET /api/calendar/{user}
func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	user := pathParam(r, "user")

	h.mu.Lock()
	defer h.mu.Unlock()

	cal, err := h.session.UserCalendar(user)
	if err != nil {
		h.respondWithErr(w, r, err)
		return
	}
	months, err := cal.Window()
	if err != nil {
		h.respondWithErr(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, months)
}

type saveResponse struct {
	HasUnsavedChanges bool `json:"hasUnsavedChanges"`
}

// Save handles POST /api/save
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.session.Save(r.Context()); err != nil {
		h.respondWithErr(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, saveResponse{HasUnsavedChanges: false})
}

// errResponseStarted marks a failure after the status line was sent
var errResponseStarted = errors.New("response already started")

// attachmentSaver delivers an export as a file download
type attachmentSaver struct {
	w http.ResponseWriter
}

func (a attachmentSaver) SaveFile(_ context.Context, name string, content []byte) error {
	a.w.Header().Set("Content-Type", "application/json")
	a.w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", name))
	a.w.WriteHeader(http.StatusOK)
	if _, err := a.w.Write(content); err != nil {
		return fmt.Errorf("%w: %w", errResponseStarted, err)
	}
	return nil
}

// Export handles GET /api/export
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	err := h.session.Export(r.Context(), attachmentSaver{w: w})
	if errors.Is(err, errResponseStarted) {
		h.logger.Error("Failed to write export",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err))
		return
	}
	if err != nil {
		h.respondWithErr(w, r, err)
	}
}

// Import handles POST /api/import. The body is an exported document; the
// replacement only happens with confirm=true.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	confirmed := r.URL.Query().Get("confirm") == "true"
	source := persistence.ReaderSource{R: r.Body}

	h.mu.Lock()
	defer h.mu.Unlock()

	err := h.session.Import(r.Context(), source, func() bool { return confirmed })
	if err != nil {
		h.logger.Warn("Import failed", zap.Error(err))
		h.respondWithErr(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, h.session.Snapshot())
}

type unloadResponse struct {
	Confirm bool `json:"confirm"`
}

// GetUnload handles GET /api/unload: whether leaving now loses changes
func (h *Handler) GetUnload(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.respondJSON(w, http.StatusOK, unloadResponse{Confirm: h.session.ConfirmUnload()})
}

func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

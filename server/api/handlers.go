// Package api implements the owner-scoped task REST handlers.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/GoCodeAlone/taskbook/task"
)

// Handlers bundles the REST API handler dependencies.
type Handlers struct {
	Tasks   task.Store
	Logger  *slog.Logger
	Version string
}

// RegisterRoutes registers all task routes on the given mux. The mux is
// mounted behind the auth middleware, so every request already carries an
// authenticated subject.
func (h *Handlers) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/users/{user_id}/tasks", h.createTask)
	mux.HandleFunc("GET /api/users/{user_id}/tasks", h.listTasks)
	mux.HandleFunc("GET /api/users/{user_id}/tasks/{id}", h.getTask)
	mux.HandleFunc("PUT /api/users/{user_id}/tasks/{id}", h.updateTask)
	mux.HandleFunc("DELETE /api/users/{user_id}/tasks/{id}", h.deleteTask)
	mux.HandleFunc("PATCH /api/users/{user_id}/tasks/{id}/complete", h.toggleTask)
}

// owner verifies that the authenticated subject matches the user_id path
// segment, before any resource is touched. On mismatch it writes 403 and
// returns ok=false; the response never reveals whether the target exists.
func (h *Handlers) owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	subject, ok := SubjectFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return "", false
	}
	if subject != r.PathValue("user_id") {
		writeError(w, http.StatusForbidden, "user id mismatch")
		return "", false
	}
	return subject, true
}

// taskID parses the {id} path segment. A non-numeric id cannot name any
// task, so it reports the same not-found as a missing row.
func taskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusNotFound, "task not found")
		return 0, false
	}
	return id, true
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeStoreError maps task store errors onto HTTP statuses.
func (h *Handlers) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case task.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, task.ErrNotFound):
		writeError(w, http.StatusNotFound, "task not found")
	default:
		h.Logger.Error("task store", slog.Any("err", err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// --- Task handlers ---

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (h *Handlers) createTask(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.owner(w, r)
	if !ok {
		return
	}
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	t, err := h.Tasks.Create(r.Context(), uid, req.Title, req.Description)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *Handlers) listTasks(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.owner(w, r)
	if !ok {
		return
	}
	filter := task.Filter{}
	if s := r.URL.Query().Get("status"); s != "" {
		st := task.Status(s)
		if st != task.StatusIncomplete && st != task.StatusComplete {
			writeError(w, http.StatusBadRequest, "status must be incomplete or complete")
			return
		}
		filter.Status = &st
	}

	tasks, err := h.Tasks.List(r.Context(), uid, filter)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	if tasks == nil {
		tasks = []*task.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *Handlers) getTask(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	t, err := h.Tasks.Get(r.Context(), uid, id)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (h *Handlers) updateTask(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	t, err := h.Tasks.Update(r.Context(), uid, id, req.Title, req.Description)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *Handlers) deleteTask(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	removed, err := h.Tasks.Delete(r.Context(), uid, id)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) toggleTask(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	t, err := h.Tasks.Toggle(r.Context(), uid, id)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// --- Status ---

func (h *Handlers) status(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.Version,
	})
}

// StatusHandler returns the status handler function for external registration.
func (h *Handlers) StatusHandler() http.HandlerFunc {
	return h.status
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gatelogic/gatelogic-core/internal/passcode"
	"github.com/go-chi/chi/v5"
)

// updatePasscodeRequest is the body for PUT /api/passcodes/{id}. Both
// fields are optional; omitted fields keep their current value.
type updatePasscodeRequest struct {
	Passcode *string `json:"passcode"`
	Name     *string `json:"name"`
}

// updateNameRequest is the body for PUT /api/passcodes/{id}/name.
type updateNameRequest struct {
	Name string `json:"name"`
}

// handleListPasscodes returns all records, newest first. The frontend
// expects a bare JSON array.
func (s *Server) handleListPasscodes(w http.ResponseWriter, r *http.Request) {
	records, err := s.repo.List(r.Context())
	if err != nil {
		s.logger.Error("listing passcodes", "error", err)
		writeInternalError(w, "failed to list passcodes")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// handleUpdatePasscode applies a partial update to a record. Only fields
// that actually differ are written; a body that changes nothing is a 400.
func (s *Server) handleUpdatePasscode(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req updatePasscodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Passcode != nil && *req.Passcode == "" {
		writeBadRequest(w, "passcode cannot be empty")
		return
	}

	_, err := s.repo.UpdateFields(r.Context(), id, req.Passcode, req.Name)
	switch {
	case errors.Is(err, passcode.ErrNotFound):
		writeNotFound(w, "not found")
	case errors.Is(err, passcode.ErrNoChanges):
		writeBadRequest(w, "no changes provided")
	case err != nil:
		s.logger.Error("updating passcode", "id", id, "error", err)
		writeInternalError(w, "update failed")
	default:
		writeSuccess(w, "passcode updated")
	}
}

// handleUpdateName sets the display name for a record. An empty or
// whitespace-only name is rejected.
func (s *Server) handleUpdateName(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req updateNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeBadRequest(w, "name is required")
		return
	}

	_, err := s.repo.UpdateFields(r.Context(), id, nil, &name)
	switch {
	case errors.Is(err, passcode.ErrNotFound):
		writeNotFound(w, "passcode not found")
	case errors.Is(err, passcode.ErrNoChanges):
		// Same name resubmitted; the frontend treats this as success.
		writeSuccess(w, "name updated successfully")
	case err != nil:
		s.logger.Error("updating passcode name", "id", id, "error", err)
		writeInternalError(w, "update failed")
	default:
		writeSuccess(w, "name updated successfully")
	}
}

// handleDeletePasscode removes a record.
func (s *Server) handleDeletePasscode(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	removed, err := s.repo.Delete(r.Context(), id)
	if err != nil {
		s.logger.Error("deleting passcode", "id", id, "error", err)
		writeInternalError(w, "delete failed")
		return
	}
	if !removed {
		writeNotFound(w, "passcode not found")
		return
	}
	writeSuccess(w, "passcode "+strconv.FormatInt(id, 10)+" deleted")
}

// parseID extracts the {id} URL parameter. On failure it writes a 400 and
// returns ok = false.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		writeBadRequest(w, "invalid passcode id")
		return 0, false
	}
	return id, true
}

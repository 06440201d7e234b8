package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"p9e.in/hotelflex/pkg/session"
	"p9e.in/hotelflex/pkg/sheets"
)

// Wired by main at startup.
var (
	Sessions   *session.Manager
	SheetStore sheets.Store
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// sessionFromRequest resolves the {id} path variable to a live session and
// writes the error response itself when that fails.
func sessionFromRequest(w http.ResponseWriter, r *http.Request) *session.Session {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid session id", http.StatusBadRequest)
		return nil
	}
	s, ok := Sessions.Get(id)
	if !ok {
		http.Error(w, "session not found or expired", http.StatusNotFound)
		return nil
	}
	return s
}

// writeTransitionError maps a rejected wizard event to 409 and everything
// else to 400.
func writeTransitionError(w http.ResponseWriter, err error) {
	var na *session.ErrNotAllowed
	if errors.As(err, &na) {
		http.Error(w, na.Error(), http.StatusConflict)
		return
	}
	http.Error(w, err.Error(), http.StatusBadRequest)
}

package handlers

import (
	"encoding/json"
	"net/http"

	"p9e.in/hotelflex/models"
	"p9e.in/hotelflex/pkg/session"
)

type deviceView struct {
	Section string                 `json:"section"`
	Device  string                 `json:"device"`
	Index   int                    `json:"index"`
	Total   int                    `json:"total"`
	Saved   *models.DeviceResponse `json:"saved,omitempty"`
}

type sessionView struct {
	SessionID     string                `json:"sessionId"`
	State         string                `json:"state"`
	Metadata      models.SurveyMetadata `json:"metadata"`
	CurrentDevice *deviceView           `json:"currentDevice,omitempty"`
	Answered      int                   `json:"answered"`
	Missing       []string              `json:"missing,omitempty"`
	Status        string                `json:"status,omitempty"`
}

func viewOf(s *session.Session) sessionView {
	v := sessionView{
		SessionID: s.ID.String(),
		State:     s.State(),
		Metadata:  s.Metadata(),
		Answered:  len(s.ResponsesInOrder()),
		Status:    s.LastStatus(),
	}
	switch v.State {
	case session.StateQuestionnaire:
		if entry, saved, index, total, ok := s.Current(); ok {
			v.CurrentDevice = &deviceView{
				Section: entry.Section,
				Device:  entry.Device,
				Index:   index,
				Total:   total,
				Saved:   saved,
			}
		}
	case session.StateReview:
		v.Missing = s.Missing()
	}
	return v
}

// CreateSession opens a new questionnaire run on the intro screen.
func CreateSession(w http.ResponseWriter, r *http.Request) {
	s, err := Sessions.Create()
	if err != nil {
		http.Error(w, "could not create session: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, viewOf(s))
}

// GetSession returns the wizard view for the current state.
func GetSession(w http.ResponseWriter, r *http.Request) {
	s := sessionFromRequest(w, r)
	if s == nil {
		return
	}
	writeJSON(w, http.StatusOK, viewOf(s))
}

// ContinueIntro leaves the intro screen for the consent/metadata form.
func ContinueIntro(w http.ResponseWriter, r *http.Request) {
	s := sessionFromRequest(w, r)
	if s == nil {
		return
	}
	if err := s.Continue(); err != nil {
		writeTransitionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(s))
}

// PutMetadata stores the consent + metadata form values.
func PutMetadata(w http.ResponseWriter, r *http.Request) {
	s := sessionFromRequest(w, r)
	if s == nil {
		return
	}
	var meta models.SurveyMetadata
	if err := json.NewDecoder(r.Body).Decode(&meta); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := s.SetMetadata(meta); err != nil {
		writeTransitionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(s))
}

// StartQuestionnaire is the guarded transition into the first device page.
// A failed gate answers 422 with the missing field names; nothing is lost.
func StartQuestionnaire(w http.ResponseWriter, r *http.Request) {
	s := sessionFromRequest(w, r)
	if s == nil {
		return
	}
	missing, err := s.Start()
	if err != nil {
		if len(missing) > 0 {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":   "please complete the following before starting",
				"missing": missing,
			})
			return
		}
		writeTransitionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(s))
}

// DeleteSession drops the session entirely; a new one must be created to
// participate again.
func DeleteSession(w http.ResponseWriter, r *http.Request) {
	s := sessionFromRequest(w, r)
	if s == nil {
		return
	}
	Sessions.Remove(s.ID)
	w.WriteHeader(http.StatusNoContent)
}

// ResetSession discards everything and returns to the intro screen.
func ResetSession(w http.ResponseWriter, r *http.Request) {
	s := sessionFromRequest(w, r)
	if s == nil {
		return
	}
	if err := s.Reset(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(s))
}

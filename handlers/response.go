package handlers

import (
	"encoding/json"
	"net/http"

	"p9e.in/hotelflex/models"
)

// answerRequest carries one device's answers. Ordinals may arrive as
// integers or as the full option labels the UI renders ("3 – well
// adjustable"); labels win only when the integer field is absent.
type answerRequest struct {
	Section string   `json:"section"`
	Device  string   `json:"device"`
	Present bool     `json:"present"`
	PowerKW *float64 `json:"powerKw"`

	Modulation      *int `json:"modulation"`
	Duration        *int `json:"duration"`
	Rebound         *int `json:"rebound"`
	OperatingWindow *int `json:"operatingWindow"`

	ModulationLabel      string `json:"modulationLabel"`
	DurationLabel        string `json:"durationLabel"`
	ReboundLabel         string `json:"reboundLabel"`
	OperatingWindowLabel string `json:"operatingWindowLabel"`
}

func (a answerRequest) toResponse() (models.DeviceResponse, error) {
	resp := models.DeviceResponse{
		Section:         a.Section,
		Device:          a.Device,
		Present:         a.Present,
		PowerKW:         a.PowerKW,
		Modulation:      a.Modulation,
		Duration:        a.Duration,
		Rebound:         a.Rebound,
		OperatingWindow: a.OperatingWindow,
	}
	for _, f := range []struct {
		label string
		dst   **int
	}{
		{a.ModulationLabel, &resp.Modulation},
		{a.DurationLabel, &resp.Duration},
		{a.ReboundLabel, &resp.Rebound},
		{a.OperatingWindowLabel, &resp.OperatingWindow},
	} {
		if *f.dst != nil || f.label == "" {
			continue
		}
		n, err := models.ParseChoiceLabel(f.label)
		if err != nil {
			return models.DeviceResponse{}, err
		}
		if n != 0 {
			v := n
			*f.dst = &v
		}
	}
	return resp, nil
}

// AnswerDevice saves the answers for the device under the cursor and moves
// on ("save & next").
func AnswerDevice(w http.ResponseWriter, r *http.Request) {
	s := sessionFromRequest(w, r)
	if s == nil {
		return
	}
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	resp, err := req.toResponse()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.SaveAndNext(resp); err != nil {
		writeTransitionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(s))
}

// SkipDevice drops any record for the current device and moves on. Skipped
// devices do not appear in the export.
func SkipDevice(w http.ResponseWriter, r *http.Request) {
	s := sessionFromRequest(w, r)
	if s == nil {
		return
	}
	if err := s.Skip(); err != nil {
		writeTransitionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(s))
}

// BackDevice moves the cursor one device backwards without losing anything.
func BackDevice(w http.ResponseWriter, r *http.Request) {
	s := sessionFromRequest(w, r)
	if s == nil {
		return
	}
	if err := s.Back(); err != nil {
		writeTransitionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(s))
}

// UpsertResponse re-edits any device by (section, device), replacing the
// earlier record instead of duplicating its row.
func UpsertResponse(w http.ResponseWriter, r *http.Request) {
	s := sessionFromRequest(w, r)
	if s == nil {
		return
	}
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	resp, err := req.toResponse()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.Upsert(resp); err != nil {
		writeTransitionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(s))
}

// RemoveResponse deletes a committed record by key (query params section,
// device); the device is then simply omitted from the export.
func RemoveResponse(w http.ResponseWriter, r *http.Request) {
	s := sessionFromRequest(w, r)
	if s == nil {
		return
	}
	section := r.URL.Query().Get("section")
	device := r.URL.Query().Get("device")
	if section == "" || device == "" {
		http.Error(w, "section and device query parameters are required", http.StatusBadRequest)
		return
	}
	if err := s.Remove(section, device); err != nil {
		writeTransitionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(s))
}

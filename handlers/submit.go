package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"p9e.in/hotelflex/config"
	"p9e.in/hotelflex/models"
	"p9e.in/hotelflex/pkg/session"
	"p9e.in/hotelflex/pkg/sheets"
)

// FinishQuestionnaire closes the device pages and returns the advisory list
// of devices not marked present. The respondent may still submit anyway.
func FinishQuestionnaire(w http.ResponseWriter, r *http.Request) {
	s := sessionFromRequest(w, r)
	if s == nil {
		return
	}
	missing, err := s.Finish()
	if err != nil {
		writeTransitionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"state":   s.State(),
		"missing": missing,
	})
}

// EditQuestionnaire reopens the device pages from the review screen.
func EditQuestionnaire(w http.ResponseWriter, r *http.Request) {
	s := sessionFromRequest(w, r)
	if s == nil {
		return
	}
	if err := s.Edit(); err != nil {
		writeTransitionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(s))
}

// SubmitSession runs the submission pipeline: claim the submission slot,
// build the export rows, append them to the workbook, archive when a
// database is configured, and land in the terminal state whatever the
// append outcome was. The status string tells the respondent what happened.
func SubmitSession(w http.ResponseWriter, r *http.Request) {
	s := sessionFromRequest(w, r)
	if s == nil {
		return
	}
	if err := s.BeginSubmit(); err != nil {
		writeTransitionError(w, err)
		return
	}

	submittedAt := time.Now().UTC()
	rows := models.BuildExportRows(s.ResponsesInOrder(), s.Metadata(), config.App.SurveyVersion, submittedAt)
	result := sheets.Submit(r.Context(), SheetStore, models.ExportHeader, rows)
	if result.Kind != sheets.Success {
		config.Log.Warnw("spreadsheet append did not succeed",
			"session", s.ID, "outcome", result.Message())
	} else {
		config.Log.Infow("responses appended",
			"session", s.ID, "target", result.Target, "rows", result.RowCount)
	}

	archiveSubmission(s, rows, result, submittedAt)

	if err := s.CompleteSubmit(result.Message(), result.Failed()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"state":    s.State(),
		"status":   result.Message(),
		"rowCount": len(rows),
		"retry":    result.Failed(),
	})
}

// archiveSubmission writes the ops-side copy when DB_DSN is configured.
// Failures here are logged and never shown to the respondent.
func archiveSubmission(s *session.Session, rows [][]string, result sheets.Result, submittedAt time.Time) {
	if config.DB == nil {
		return
	}
	payload, err := json.Marshal(rows)
	if err != nil {
		config.Log.Errorw("could not encode rows for archive", "session", s.ID, "error", err)
		return
	}
	meta := s.Metadata()
	rec := models.SurveySubmission{
		ID:              uuid.New(),
		Hotel:           meta.Hotel,
		Department:      meta.Department,
		Position:        meta.Position,
		ParticipantName: meta.ParticipantName,
		SurveyDate:      meta.Date,
		SurveyVersion:   config.App.SurveyVersion,
		Rows:            datatypes.JSON(payload),
		RowCount:        len(rows),
		ExportStatus:    result.Message(),
		SubmittedAt:     models.JSONTime(submittedAt),
	}
	if err := config.DB.Create(&rec).Error; err != nil {
		config.Log.Errorw("could not archive submission", "session", s.ID, "error", err)
	}
}

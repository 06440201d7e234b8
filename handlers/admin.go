package handlers

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"

	"p9e.in/hotelflex/config"
	"p9e.in/hotelflex/middleware"
	"p9e.in/hotelflex/models"
	"p9e.in/hotelflex/pkg/sheets"
	"p9e.in/hotelflex/utils"
)

type adminLoginReq struct {
	Passphrase string `json:"passphrase"`
}

type adminLoginResp struct {
	Token string `json:"token"`
}

// AdminLogin exchanges the shared admin passphrase for a bearer token.
func AdminLogin(w http.ResponseWriter, r *http.Request) {
	if config.App.AdminPassHash == "" || config.App.JWTSecret == "" {
		http.Error(w, "admin access is not configured", http.StatusServiceUnavailable)
		return
	}
	var req adminLoginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(config.App.AdminPassHash), []byte(req.Passphrase)); err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	token, err := middleware.GenerateToken("survey-admin", "admin")
	if err != nil {
		http.Error(w, "could not issue token", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, adminLoginResp{Token: token})
}

// ExportWorkbookXLSX downloads a snapshot of the collected responses as an
// Excel file.
func ExportWorkbookXLSX(w http.ResponseWriter, r *http.Request) {
	rows, ok := collectedRows(w, r)
	if !ok {
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	if _, err := f.NewSheet(sheets.WorksheetName); err != nil {
		http.Error(w, "failed to generate Excel file", http.StatusInternalServerError)
		return
	}
	f.DeleteSheet("Sheet1")
	for i, row := range rows {
		cells := row
		if err := f.SetSheetRow(sheets.WorksheetName, fmt.Sprintf("A%d", i+1), &cells); err != nil {
			http.Error(w, "failed to generate Excel file", http.StatusInternalServerError)
			return
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		http.Error(w, "failed to write Excel file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("%s_%s.xlsx", utils.SanitizeFilename("hotel flex responses"), time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

// ExportWorkbookCSV downloads the same snapshot as CSV.
func ExportWorkbookCSV(w http.ResponseWriter, r *http.Request) {
	rows, ok := collectedRows(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	for _, row := range rows {
		writer.Write(row)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		http.Error(w, "failed to generate CSV file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("%s_%s.csv", utils.SanitizeFilename("hotel flex responses"), time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// ListSubmissions returns the archived submissions, newest first. Requires
// the optional archive database.
func ListSubmissions(w http.ResponseWriter, r *http.Request) {
	if config.DB == nil {
		http.Error(w, "submission archive is not configured", http.StatusNotImplemented)
		return
	}
	var subs []models.SurveySubmission
	if err := config.DB.Order("submitted_at DESC").Limit(200).Find(&subs).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

func collectedRows(w http.ResponseWriter, r *http.Request) ([][]string, bool) {
	if SheetStore == nil {
		http.Error(w, "spreadsheet export is not configured", http.StatusNotImplemented)
		return nil, false
	}
	rows, err := SheetStore.Rows(r.Context())
	if err != nil {
		http.Error(w, "could not read workbook: "+err.Error(), http.StatusBadGateway)
		return nil, false
	}
	if len(rows) == 0 {
		rows = [][]string{models.ExportHeader}
	}
	return rows, true
}

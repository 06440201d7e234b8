package models

import (
	"strconv"
	"time"
)

// SurveyVersion is the fixed build literal stamped onto every export row.
// Deployments may override it via config.
const SurveyVersion = "2026-09-go-v1"

// ExportHeader is the fixed column order of the "responses" worksheet. It
// must stay stable for the lifetime of a spreadsheet or appended rows
// misalign with the header already written.
var ExportHeader = []string{
	"timestamp",
	"date",
	"hotel",
	"department",
	"position",
	"participant_name",
	"survey_version",
	"section",
	"device",
	"present",
	"power_kw",
	"modulation",
	"duration",
	"rebound",
	"operating_window",
}

// Sentinel cell values used when a submission carries no device responses.
// The export is never a zero-row table.
const (
	sentinelSection = "(none)"
	sentinelDevice  = "(no data)"
)

// BuildExportRows flattens metadata × responses into string-only rows in
// ExportHeader order. submittedAt is stamped as UTC RFC3339; missing values
// become empty strings so the spreadsheet treats every cell uniformly as
// text. Responses are emitted in the order given, one row per response.
func BuildExportRows(responses []DeviceResponse, meta SurveyMetadata, version string, submittedAt time.Time) [][]string {
	if version == "" {
		version = SurveyVersion
	}
	stamp := submittedAt.UTC().Format(time.RFC3339)

	prefix := []string{
		stamp,
		meta.Date,
		meta.Hotel,
		meta.Department,
		meta.Position,
		meta.ParticipantName,
		version,
	}

	if len(responses) == 0 {
		row := append(append([]string{}, prefix...),
			sentinelSection, sentinelDevice, "", "", "", "", "", "")
		return [][]string{row}
	}

	rows := make([][]string, 0, len(responses))
	for _, r := range responses {
		row := append(append([]string{}, prefix...),
			r.Section,
			r.Device,
			strconv.FormatBool(r.Present),
			floatCell(r.PowerKW),
			ordinalCell(r.Modulation),
			ordinalCell(r.Duration),
			ordinalCell(r.Rebound),
			ordinalCell(r.OperatingWindow),
		)
		rows = append(rows, row)
	}
	return rows
}

func floatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func ordinalCell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

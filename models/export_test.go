package models

import (
	"testing"
	"time"
)

func intp(v int) *int          { return &v }
func floatp(v float64) *float64 { return &v }

var testMeta = SurveyMetadata{
	Hotel:             "Hotel Mustermann",
	Department:        "Kitchen",
	Position:          "Head chef",
	Date:              "2026-09-01",
	ParticipantName:   "A. Person",
	ConsentGiven:      true,
	ConfirmationGiven: true,
}

func TestBuildExportRowsPresentDevice(t *testing.T) {
	resp := DeviceResponse{
		Section:         "Kitchen",
		Device:          "Fridge",
		Present:         true,
		PowerKW:         floatp(12.5),
		Modulation:      intp(3),
		Duration:        intp(2),
		OperatingWindow: intp(4),
	}
	submittedAt := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)

	rows := BuildExportRows([]DeviceResponse{resp}, testMeta, "v-test", submittedAt)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if len(row) != len(ExportHeader) {
		t.Fatalf("row has %d cells, header has %d", len(row), len(ExportHeader))
	}

	want := map[string]string{
		"timestamp":        "2026-09-01T10:30:00Z",
		"date":             "2026-09-01",
		"hotel":            "Hotel Mustermann",
		"department":       "Kitchen",
		"position":         "Head chef",
		"participant_name": "A. Person",
		"survey_version":   "v-test",
		"section":          "Kitchen",
		"device":           "Fridge",
		"present":          "true",
		"power_kw":         "12.5",
		"modulation":       "3",
		"duration":         "2",
		"rebound":          "",
		"operating_window": "4",
	}
	for i, col := range ExportHeader {
		if row[i] != want[col] {
			t.Errorf("column %s = %q, expected %q", col, row[i], want[col])
		}
	}
}

func TestBuildExportRowsNotPresentDeviceHasEmptyFields(t *testing.T) {
	resp := DeviceResponse{Section: "Kitchen", Device: "Fridge", Present: false}
	resp.Normalize()

	rows := BuildExportRows([]DeviceResponse{resp}, testMeta, "v-test", time.Now())
	row := rows[0]
	cols := map[string]string{}
	for i, col := range ExportHeader {
		cols[col] = row[i]
	}
	if cols["present"] != "false" {
		t.Errorf("present = %q, expected %q", cols["present"], "false")
	}
	for _, col := range []string{"power_kw", "modulation", "duration", "rebound", "operating_window"} {
		if cols[col] != "" {
			t.Errorf("column %s = %q, expected empty", col, cols[col])
		}
	}
}

// An earlier Present=true edit must not leak values into a later
// Present=false save on the same key.
func TestNormalizeClearsStaleValues(t *testing.T) {
	resp := DeviceResponse{
		Section:         "Kitchen",
		Device:          "Fridge",
		Present:         true,
		PowerKW:         floatp(7),
		Modulation:      intp(3),
		Duration:        intp(2),
		Rebound:         intp(1),
		OperatingWindow: intp(4),
	}
	resp.Present = false
	resp.Normalize()

	if resp.PowerKW != nil || resp.Modulation != nil || resp.Duration != nil ||
		resp.Rebound != nil || resp.OperatingWindow != nil {
		t.Errorf("Normalize() left stale values: %+v", resp)
	}
}

func TestBuildExportRowsSentinel(t *testing.T) {
	rows := BuildExportRows(nil, testMeta, "v-test", time.Now())
	if len(rows) != 1 {
		t.Fatalf("expected the sentinel row, got %d rows", len(rows))
	}
	row := rows[0]
	cols := map[string]string{}
	for i, col := range ExportHeader {
		cols[col] = row[i]
	}
	if cols["section"] != "(none)" || cols["device"] != "(no data)" {
		t.Errorf("sentinel identity = (%q, %q)", cols["section"], cols["device"])
	}
	if cols["present"] != "" {
		t.Errorf("sentinel present = %q, expected empty", cols["present"])
	}
	if cols["hotel"] != testMeta.Hotel {
		t.Errorf("sentinel still carries metadata, hotel = %q", cols["hotel"])
	}
}

func TestBuildExportRowsRowCountMatchesResponses(t *testing.T) {
	responses := []DeviceResponse{
		{Section: "Kitchen", Device: "Fridge", Present: true},
		{Section: "Kitchen", Device: "Dishwasher", Present: false},
		{Section: "Rooms & Common Areas", Device: "Elevators", Present: true},
	}
	rows := BuildExportRows(responses, testMeta, "", time.Now())
	if len(rows) != len(responses) {
		t.Fatalf("expected %d rows, got %d", len(responses), len(rows))
	}
	// Default version literal fills in when none is configured.
	for _, row := range rows {
		if row[6] != SurveyVersion {
			t.Errorf("survey_version = %q, expected %q", row[6], SurveyVersion)
		}
	}
}

func TestValidateOrdinalRange(t *testing.T) {
	tests := []struct {
		name    string
		resp    DeviceResponse
		wantErr bool
	}{
		{"valid full", DeviceResponse{Section: "K", Device: "D", Present: true, Modulation: intp(1), Duration: intp(4)}, false},
		{"ordinal too high", DeviceResponse{Section: "K", Device: "D", Present: true, Modulation: intp(5)}, true},
		{"ordinal zero", DeviceResponse{Section: "K", Device: "D", Present: true, Duration: intp(0)}, true},
		{"negative power", DeviceResponse{Section: "K", Device: "D", Present: true, PowerKW: floatp(-1)}, true},
		{"missing identity", DeviceResponse{Present: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.resp.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"p9e.in/hotelflex/config"
	"p9e.in/hotelflex/handlers"
	"p9e.in/hotelflex/models"
	"p9e.in/hotelflex/pkg/session"
	"p9e.in/hotelflex/pkg/sheets"
	"p9e.in/hotelflex/routes"
)

// newServer wires the handler globals the way main does and serves the full
// route table. The store may be nil to exercise the not-configured path.
func newServer(t *testing.T, store sheets.Store) *httptest.Server {
	t.Helper()
	config.App = config.Settings{SurveyVersion: "v-test", IncludeRebound: true}
	config.Log = zap.NewNop().Sugar()
	handlers.Sessions = session.NewManager(models.DefaultCatalog(), true)
	handlers.SheetStore = store
	srv := httptest.NewServer(routes.RegisterRoutes())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var payload map[string]any
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		payload = nil
	}
	return res, payload
}

var completeMetadata = map[string]any{
	"hotel":             "Hotel Mustermann",
	"department":        "Kitchen",
	"position":          "Head chef",
	"date":              "2026-09-01",
	"participantName":   "A. Person",
	"consentGiven":      true,
	"confirmationGiven": true,
}

// createAndStart walks a fresh session to the first device page and returns
// its base URL.
func createAndStart(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	res, payload := doJSON(t, "POST", srv.URL+"/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	base := fmt.Sprintf("%s/api/v1/sessions/%s", srv.URL, payload["sessionId"])

	res, _ = doJSON(t, "POST", base+"/continue", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	res, _ = doJSON(t, "PUT", base+"/metadata", completeMetadata)
	require.Equal(t, http.StatusOK, res.StatusCode)
	res, payload = doJSON(t, "POST", base+"/start", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "questionnaire", payload["state"])
	return base
}

// skipToReview skips every remaining device and finishes the questionnaire.
func skipToReview(t *testing.T, base string) {
	t.Helper()
	total := len(models.DefaultCatalog().Flatten())
	for i := 0; i < total; i++ {
		res, payload := doJSON(t, "POST", base+"/skip", nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
		if payload["currentDevice"] == nil {
			break
		}
	}
	res, payload := doJSON(t, "POST", base+"/finish", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "review", payload["state"])
}

func TestStartWithoutConsentIs422(t *testing.T) {
	srv := newServer(t, sheets.NewFake())

	res, payload := doJSON(t, "POST", srv.URL+"/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	base := fmt.Sprintf("%s/api/v1/sessions/%s", srv.URL, payload["sessionId"])

	doJSON(t, "POST", base+"/continue", nil)
	incomplete := map[string]any{"hotel": "Hotel Mustermann", "department": "Kitchen", "confirmationGiven": true}
	doJSON(t, "PUT", base+"/metadata", incomplete)

	res, payload = doJSON(t, "POST", base+"/start", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	missing, _ := payload["missing"].([]any)
	require.NotEmpty(t, missing)
	assert.Contains(t, missing, "consent declaration")

	// Nothing is lost: completing the form lets the same session through.
	doJSON(t, "PUT", base+"/metadata", completeMetadata)
	res, payload = doJSON(t, "POST", base+"/start", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "questionnaire", payload["state"])
}

func TestUnknownSessionIs404(t *testing.T) {
	srv := newServer(t, nil)
	res, _ := doJSON(t, "GET", srv.URL+"/api/v1/sessions/2a9b8f0e-9a3e-4a57-9a51-0dfb0ab9e6c1", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

// A re-edit of an already answered device replaces its record, so the export
// carries exactly one row for that device with the corrected value.
func TestReEditYieldsSingleCorrectedRow(t *testing.T) {
	fake := sheets.NewFake()
	srv := newServer(t, fake)
	base := createAndStart(t, srv)

	res, _ := doJSON(t, "POST", base+"/answer", map[string]any{
		"present": true, "powerKw": 12.5, "modulation": 3,
	})
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = doJSON(t, "POST", base+"/back", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	res, _ = doJSON(t, "POST", base+"/answer", map[string]any{
		"present": true, "powerKw": 12.5, "modulation": 1,
	})
	require.Equal(t, http.StatusOK, res.StatusCode)

	skipToReview(t, base)
	res, payload := doJSON(t, "POST", base+"/submit", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "submitted", payload["state"])
	assert.Equal(t, false, payload["retry"])

	rows := fake.DataRows()
	require.Len(t, rows, 1)
	cols := map[string]string{}
	for i, col := range models.ExportHeader {
		cols[col] = rows[0][i]
	}
	assert.Equal(t, "1", cols["modulation"])
	assert.Equal(t, "12.5", cols["power_kw"])
	assert.Equal(t, "v-test", cols["survey_version"])
	assert.Equal(t, "Hotel Mustermann", cols["hotel"])
}

func TestAnswerAcceptsOptionLabels(t *testing.T) {
	fake := sheets.NewFake()
	srv := newServer(t, fake)
	base := createAndStart(t, srv)

	res, _ := doJSON(t, "POST", base+"/answer", map[string]any{
		"present":         true,
		"modulationLabel": models.ModulationOptions[1],
		"durationLabel":   models.DurationOptions[3],
	})
	require.Equal(t, http.StatusOK, res.StatusCode)

	skipToReview(t, base)
	res, _ = doJSON(t, "POST", base+"/submit", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	rows := fake.DataRows()
	require.Len(t, rows, 1)
	cols := map[string]string{}
	for i, col := range models.ExportHeader {
		cols[col] = rows[0][i]
	}
	assert.Equal(t, "2", cols["modulation"])
	assert.Equal(t, "4", cols["duration"])
}

// Without a configured workbook the submission still completes, carrying the
// warning status, and is not retryable.
func TestSubmitWithoutStoreCompletesWithWarning(t *testing.T) {
	srv := newServer(t, nil)
	base := createAndStart(t, srv)
	skipToReview(t, base)

	res, payload := doJSON(t, "POST", base+"/submit", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "submitted", payload["state"])
	assert.Equal(t, false, payload["retry"])
	status, _ := payload["status"].(string)
	assert.True(t, strings.HasPrefix(status, "⚠️"), "status = %q", status)
	assert.Contains(t, status, "not configured")

	// The terminal state is final; a second press is rejected.
	res, _ = doJSON(t, "POST", base+"/submit", nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
}

// A failing append lands in submitted with a retryable warning; the retry
// runs the pipeline again and succeeds once the store recovers.
func TestSubmitFailureThenRetry(t *testing.T) {
	fake := sheets.NewFake()
	fake.Fail = errors.New("bucket unreachable")
	srv := newServer(t, fake)
	base := createAndStart(t, srv)

	res, _ := doJSON(t, "POST", base+"/answer", map[string]any{"present": true, "modulation": 2})
	require.Equal(t, http.StatusOK, res.StatusCode)
	skipToReview(t, base)

	res, payload := doJSON(t, "POST", base+"/submit", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "submitted", payload["state"])
	assert.Equal(t, true, payload["retry"])
	status, _ := payload["status"].(string)
	assert.Contains(t, status, "bucket unreachable")

	fake.Fail = nil
	res, payload = doJSON(t, "POST", base+"/submit", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "submitted", payload["state"])
	assert.Equal(t, false, payload["retry"])
	require.Len(t, fake.DataRows(), 1)

	// After a success there is nothing left to retry.
	res, _ = doJSON(t, "POST", base+"/submit", nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
}

// A session with every device skipped still submits: the export carries the
// sentinel row so the participation itself is recorded.
func TestSubmitAllSkippedWritesSentinelRow(t *testing.T) {
	fake := sheets.NewFake()
	srv := newServer(t, fake)
	base := createAndStart(t, srv)
	skipToReview(t, base)

	res, payload := doJSON(t, "POST", base+"/submit", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, float64(1), payload["rowCount"])

	rows := fake.DataRows()
	require.Len(t, rows, 1)
	cols := map[string]string{}
	for i, col := range models.ExportHeader {
		cols[col] = rows[0][i]
	}
	assert.Equal(t, "(none)", cols["section"])
	assert.Equal(t, "(no data)", cols["device"])
	assert.Equal(t, "Hotel Mustermann", cols["hotel"])
}

func TestCatalogEndpoint(t *testing.T) {
	srv := newServer(t, nil)
	res, payload := doJSON(t, "GET", srv.URL+"/api/v1/catalog", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NotNil(t, payload["catalog"])
	require.NotNil(t, payload["flattened"])
	options, ok := payload["options"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"modulation", "duration", "rebound", "operatingWindow"} {
		set, ok := options[key].([]any)
		require.True(t, ok, "options.%s missing", key)
		assert.Len(t, set, 4)
	}
}

func TestDeleteSession(t *testing.T) {
	srv := newServer(t, nil)
	res, payload := doJSON(t, "POST", srv.URL+"/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	base := fmt.Sprintf("%s/api/v1/sessions/%s", srv.URL, payload["sessionId"])

	res, _ = doJSON(t, "DELETE", base, nil)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	res, _ = doJSON(t, "GET", base, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	srv := newServer(t, sheets.NewFake())
	res, _ := doJSON(t, "GET", srv.URL+"/api/v1/admin/export.csv", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifeline-ai/backend/internal/triage"
)

func testServer(t *testing.T) (*Server, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conditions := []triage.Condition{
		{
			ID:               "heart-attack",
			Title:            "Possible Heart Attack",
			Keywords:         []string{"chest pain", "heart attack"},
			Severity:         triage.SeverityCritical,
			BaseAccuracy:     94,
			Assessment:       "Consistent with a cardiac event.",
			ImmediateActions: []string{"Call emergency services now"},
		},
		{
			ID:           "headache",
			Title:        "Headache",
			Keywords:     []string{"headache"},
			Severity:     triage.SeverityMedium,
			BaseAccuracy: 78,
			Assessment:   "Usually benign.",
		},
	}
	data, err := json.Marshal(conditions)
	require.NoError(t, err)
	catalogPath := filepath.Join(t.TempDir(), "conditions.json")
	require.NoError(t, writeFile(catalogPath, data))

	server, err := NewServer(Config{
		DBPath:      filepath.Join(t.TempDir(), "api.db"),
		CatalogPath: catalogPath,
		SilentDB:    true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = server.Close() })

	router, err := server.Router()
	require.NoError(t, err)
	return server, router
}

func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealthz(t *testing.T) {
	_, router := testServer(t)
	rec := doJSON(t, router, http.MethodGet, "/api/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTriageEscalatesCritical(t *testing.T) {
	server, router := testServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/triage", TriageRequest{Text: "I have chest pain"})
	require.Equal(t, http.StatusOK, rec.Code)

	out := decode[TriageResponse](t, rec)
	assert.True(t, out.Matched)
	assert.Equal(t, triage.SeverityCritical, out.Severity)
	assert.Equal(t, triage.EscalationDirective, out.Escalation)
	assert.Equal(t, 15, out.Score)

	// The call leaves an audit row behind.
	rows, total, err := server.db.ListAssessments(0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "heart-attack", rows[0].ConditionID)
}

func TestTriageGenericResponseWithoutEscalation(t *testing.T) {
	_, router := testServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/triage", TriageRequest{Text: "I feel perfectly fine"})
	require.Equal(t, http.StatusOK, rec.Code)

	out := decode[TriageResponse](t, rec)
	assert.False(t, out.Matched)
	assert.Equal(t, triage.SeverityMedium, out.Severity)
	assert.Empty(t, out.Escalation)
}

func TestTriageRequiresText(t *testing.T) {
	_, router := testServer(t)
	rec := doJSON(t, router, http.MethodPost, "/api/triage", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTriageAppendsConversationMessages(t *testing.T) {
	server, router := testServer(t)

	patient := decode[PatientDTO](t, doJSON(t, router, http.MethodPost, "/api/patients",
		PatientRequest{FullName: "P", Phone: "10"}))
	doctor := decode[DoctorDTO](t, doJSON(t, router, http.MethodPost, "/api/doctors",
		DoctorRequest{FullName: "D", Phone: "20"}))
	conv := decode[ConversationDTO](t, doJSON(t, router, http.MethodPost, "/api/conversations",
		ConversationRequest{PatientID: patient.ID, DoctorID: doctor.ID}))

	rec := doJSON(t, router, http.MethodPost, "/api/triage",
		TriageRequest{Text: "I have chest pain", ConversationID: conv.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	messages, total, err := server.db.ListMessages(conv.ID, 0, 0)
	require.NoError(t, err)
	// Patient text, escalation, then the assessment summary.
	require.EqualValues(t, 3, total)
	assert.Equal(t, "patient", messages[0].SenderRole)
	assert.Equal(t, triage.EscalationDirective, messages[1].Body)
	assert.Equal(t, "system", messages[2].SenderRole)
}

func TestRoutesCriticalVitals(t *testing.T) {
	_, router := testServer(t)

	rec := doJSON(t, router, http.MethodPost, "/api/routes", map[string]any{
		"vitals":    map[string]float64{"heart_rate": 130, "spo2": 98, "temperature": 37},
		"situation": "normal",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	out := decode[RouteResponse](t, rec)
	assert.True(t, out.Vitals.Critical)
	require.NotEmpty(t, out.Candidates)
	assert.EqualValues(t, "ambulance", out.Candidates[0].Kind)
	assert.Equal(t, 1, out.Candidates[0].Priority)
	assert.LessOrEqual(t, len(out.Candidates), 3)
}

func TestRoutesRejectsUnknownSituation(t *testing.T) {
	_, router := testServer(t)
	rec := doJSON(t, router, http.MethodPost, "/api/routes", map[string]any{
		"situation": "flood",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVitalsSample(t *testing.T) {
	_, router := testServer(t)
	rec := doJSON(t, router, http.MethodGet, "/api/vitals", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode[VitalsResponse](t, rec)
	assert.Greater(t, out.Vitals.HeartRate, 0.0)
}

func TestPatientNotFound(t *testing.T) {
	_, router := testServer(t)
	rec := doJSON(t, router, http.MethodGet, "/api/patients/42", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBroadcastLifecycleOverHTTP(t *testing.T) {
	_, router := testServer(t)

	created := decode[BroadcastDTO](t, doJSON(t, router, http.MethodPost, "/api/broadcasts", BroadcastRequest{
		Situation: "medical",
		Severity:  triage.SeverityCritical,
		Message:   "SOS, need help now",
		Recipients: []BroadcastContact{
			{Name: "A", Phone: "1"},
			{Name: "B", Phone: "2", Channel: "call"},
		},
	}))
	require.NotEmpty(t, created.PublicID)
	assert.Equal(t, "active", created.Status)
	assert.Len(t, created.Recipients, 2)
	assert.Equal(t, "sms", created.Recipients[0].Channel)

	fetched := decode[BroadcastDTO](t, doJSON(t, router, http.MethodGet, "/api/broadcasts/"+created.PublicID, nil))
	assert.Equal(t, "SOS, need help now", fetched.Message)
	assert.Len(t, fetched.Recipients, 2)

	resolved := decode[BroadcastDTO](t, doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/broadcasts/%s/resolve", created.PublicID), nil))
	assert.Equal(t, "resolved", resolved.Status)

	list := decode[BroadcastsResponse](t, doJSON(t, router, http.MethodGet, "/api/broadcasts?active=true", nil))
	assert.EqualValues(t, 0, list.Total)
}

func TestBroadcastRejectsUnknownSituation(t *testing.T) {
	_, router := testServer(t)
	rec := doJSON(t, router, http.MethodPost, "/api/broadcasts", BroadcastRequest{
		Situation: "flood",
		Message:   "help",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

package server_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"scamshield/internal/api/server"
	"scamshield/internal/app/analyzer"
	"scamshield/internal/app/engine"
	"scamshield/internal/app/testutil"
)

func newTestServer(t *testing.T, eng *testutil.MockEngine) (*server.Server, *testutil.MockVerdictDAO) {
	t.Helper()

	cache := engine.NewAvailabilityCache(time.Minute, time.Second)
	orch := engine.NewOrchestrator([]engine.Engine{eng}, []string{eng.Name()}, cache, time.Minute, zap.NewNop())
	store := &testutil.MockVerdictDAO{}
	a := analyzer.New(orch, analyzer.NewHistory(5), store, zap.NewNop())

	return server.NewServer(server.Config{Addr: ":0"}, a, zap.NewNop()), store
}

func doJSON(t *testing.T, s *server.Server, method, path string, body interface{}) *httptest.ResponseRecorder {
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
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t, testutil.NewMockEngine("mock", "hello"))

	w := doJSON(t, s, http.MethodGet, "/healthz", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestAnalyzeTextHighRisk(t *testing.T) {
	s, store := newTestServer(t, testutil.NewMockEngine("mock", "hello"))

	w := doJSON(t, s, http.MethodPost, "/api/v1/analyze", map[string]string{
		"text": "URGENT: verify your account, click here to confirm, enter your OTP",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		RiskLevel      string   `json:"risk_level"`
		AggregateScore int      `json:"aggregate_score"`
		Flags          []string `json:"flags"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.GreaterOrEqual(t, resp.AggregateScore, 70)
	assert.Contains(t, []string{"high", "critical"}, resp.RiskLevel)
	assert.NotEmpty(t, resp.Flags)
	assert.Equal(t, 1, store.SavedCount())
}

func TestAnalyzeTextBenign(t *testing.T) {
	s, _ := newTestServer(t, testutil.NewMockEngine("mock", "hello"))

	w := doJSON(t, s, http.MethodPost, "/api/v1/analyze", map[string]string{
		"text": "Hi, just checking if you got my email about lunch tomorrow",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		RiskLevel      string `json:"risk_level"`
		AggregateScore int    `json:"aggregate_score"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.AggregateScore)
	assert.Equal(t, "low", resp.RiskLevel)
}

func TestAnalyzeTextMissingField(t *testing.T) {
	s, _ := newTestServer(t, testutil.NewMockEngine("mock", "hello"))

	w := doJSON(t, s, http.MethodPost, "/api/v1/analyze", map[string]string{})

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Kind    string            `json:"kind"`
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation", resp.Kind)
	assert.Equal(t, "is required", resp.Details["text"])
}

func TestAnalyzeAudioManualTranscript(t *testing.T) {
	eng := testutil.NewMockEngine("mock", "should not be used")
	s, _ := newTestServer(t, eng)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("audio", "call.wav")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte{0x01}, 2048))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("manual_transcript", "congratulations you are the lottery winner"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze/audio", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		EngineUsed string `json:"engine_used"`
		ScamType   string `json:"scam_type"`
		Transcript string `json:"transcript"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "manual", resp.EngineUsed)
	assert.Equal(t, "lottery", resp.ScamType)
	assert.Contains(t, resp.Transcript, "lottery winner")

	probes, transcribes := eng.Calls()
	assert.Zero(t, probes)
	assert.Zero(t, transcribes)
}

func TestAnalyzeAudioMissingFile(t *testing.T) {
	s, _ := newTestServer(t, testutil.NewMockEngine("mock", "hello"))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("language", "en"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze/audio", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "missing multipart field")
}

func TestHistoryReflectsAnalyses(t *testing.T) {
	s, _ := newTestServer(t, testutil.NewMockEngine("mock", "hello"))

	for _, text := range []string{"first message", "second message"} {
		w := doJSON(t, s, http.MethodPost, "/api/v1/analyze", map[string]string{"text": text})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(t, s, http.MethodGet, "/api/v1/history", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Entries []struct {
			Preview string `json:"preview"`
		} `json:"entries"`
		Capacity int `json:"capacity"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, 5, resp.Capacity)
	assert.True(t, strings.HasPrefix(resp.Entries[0].Preview, "second"))
}

func TestHistoryArchiveLimitValidation(t *testing.T) {
	s, _ := newTestServer(t, testutil.NewMockEngine("mock", "hello"))

	w := doJSON(t, s, http.MethodGet, "/api/v1/history/archive?limit=9999", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "limit must be between")
}

func TestEnginesEndpoint(t *testing.T) {
	s, _ := newTestServer(t, testutil.NewMockEngine("mock", "hello"))

	w := doJSON(t, s, http.MethodGet, "/api/v1/engines", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Engines []struct {
			Name      string `json:"name"`
			Available bool   `json:"available"`
		} `json:"engines"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Engines, 1)
	assert.Equal(t, "mock", resp.Engines[0].Name)
	assert.True(t, resp.Engines[0].Available)
}

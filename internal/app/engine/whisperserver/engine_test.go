package whisperserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scamshield/internal/app/audio"
	"scamshield/internal/app/engine"
)

func testSource(t *testing.T) *audio.Source {
	t.Helper()
	src, err := audio.NewSource(bytes.Repeat([]byte{0x01}, 2048), "audio/wav", "call.wav")
	require.NoError(t, err)
	return src
}

func TestProbeHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":        "healthy",
			"model":         "large-v3",
			"device":        "cuda",
			"gpu_available": true,
		})
	}))
	defer srv.Close()

	eng := New(Config{BaseURL: srv.URL})
	status := eng.Probe(context.Background())

	assert.True(t, status.Available)
	assert.True(t, status.Accelerated)
	assert.Contains(t, status.Detail, "large-v3")
}

func TestProbeUnhealthyStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "loading"})
	}))
	defer srv.Close()

	eng := New(Config{BaseURL: srv.URL})
	status := eng.Probe(context.Background())

	assert.False(t, status.Available)
	assert.Contains(t, status.Detail, "loading")
}

func TestProbeUnreachable(t *testing.T) {
	eng := New(Config{BaseURL: "http://127.0.0.1:1"})
	status := eng.Probe(context.Background())

	assert.False(t, status.Available)
	assert.Contains(t, status.Detail, "unreachable")
}

func TestTranscribeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/transcribe", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "call.wav", header.Filename)
		assert.Equal(t, "en", r.FormValue("language"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"transcript": "hello world",
			"confidence": 92.5,
			"device":     "cuda",
		})
	}))
	defer srv.Close()

	eng := New(Config{BaseURL: srv.URL})
	var percents []int
	res, err := eng.Transcribe(context.Background(), &engine.Request{
		Source:   testSource(t),
		Language: "en",
	}, func(p int, _ string) { percents = append(percents, p) })

	require.NoError(t, err)
	assert.Equal(t, "hello world", res.Text)
	// Percentage confidences are normalized to [0,1].
	assert.InDelta(t, 0.925, res.Confidence, 0.001)
	assert.Equal(t, EngineName, res.EngineUsed)
	assert.NotEmpty(t, percents)
}

func TestTranscribeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{
			"error":   "inference failed",
			"details": "model crashed",
		})
	}))
	defer srv.Close()

	eng := New(Config{BaseURL: srv.URL})
	_, err := eng.Transcribe(context.Background(), &engine.Request{Source: testSource(t)},
		func(int, string) {})

	require.Error(t, err)
	engErr, ok := engine.AsEngineError(err)
	require.True(t, ok)
	assert.Equal(t, engine.CodeTranscriptionFailed, engErr.Code)
	assert.True(t, engErr.Retryable)
	assert.Contains(t, engErr.Message, "model crashed")
}

func TestNewFromSettings(t *testing.T) {
	eng, err := NewFromSettings(map[string]interface{}{
		"base_url": "http://example.test:9000",
	})
	require.NoError(t, err)
	assert.Equal(t, EngineName, eng.Name())
}

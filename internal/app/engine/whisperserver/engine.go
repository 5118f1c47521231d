// Package whisperserver talks to a locally hosted Whisper HTTP server, the
// high-accuracy transcription path.
package whisperserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"scamshield/internal/app/engine"
)

// EngineName identifies this adapter in results, errors and configuration.
const EngineName = "whisper-server"

// Config holds the HTTP endpoint settings.
type Config struct {
	BaseURL       string        `yaml:"base_url"`
	HealthPath    string        `yaml:"health_path"`
	InferencePath string        `yaml:"inference_path"`
	Timeout       time.Duration `yaml:"timeout"`
}

// healthResponse mirrors the server's /health payload.
type healthResponse struct {
	Status       string `json:"status"`
	Model        string `json:"model"`
	Device       string `json:"device"`
	GPUAvailable bool   `json:"gpu_available"`
}

// transcribeResponse mirrors the server's /api/transcribe payload.
type transcribeResponse struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
	Device     string  `json:"device"`
	Error      string  `json:"error"`
	Details    string  `json:"details"`
}

// WhisperServer is the networked high-accuracy engine.
type WhisperServer struct {
	config Config
	client *http.Client
}

// New creates an engine against config, filling in endpoint defaults.
func New(config Config) *WhisperServer {
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:5000"
	}
	if config.HealthPath == "" {
		config.HealthPath = "/health"
	}
	if config.InferencePath == "" {
		config.InferencePath = "/api/transcribe"
	}
	if config.Timeout == 0 {
		config.Timeout = 5 * time.Minute
	}
	return &WhisperServer{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

// NewFromSettings creates an engine from a generic settings map, as loaded
// from the engines YAML file.
func NewFromSettings(settings map[string]interface{}) (engine.Engine, error) {
	config := Config{}
	if v, ok := settings["base_url"].(string); ok {
		config.BaseURL = v
	}
	if v, ok := settings["health_path"].(string); ok {
		config.HealthPath = v
	}
	if v, ok := settings["inference_path"].(string); ok {
		config.InferencePath = v
	}
	if v, ok := settings["timeout_sec"].(int); ok {
		config.Timeout = time.Duration(v) * time.Second
	}
	return New(config), nil
}

func (w *WhisperServer) Name() string { return EngineName }

// Probe checks the server's health endpoint. Any transport error, timeout or
// non-healthy status is reported as unavailable, never as an error.
func (w *WhisperServer) Probe(ctx context.Context) engine.ProbeStatus {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.config.BaseURL+w.config.HealthPath, nil)
	if err != nil {
		return engine.ProbeStatus{Detail: err.Error()}
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return engine.ProbeStatus{Detail: "whisper server unreachable: " + err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return engine.ProbeStatus{Detail: fmt.Sprintf("health check returned %d", resp.StatusCode)}
	}

	var health healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return engine.ProbeStatus{Detail: "malformed health response: " + err.Error()}
	}
	if health.Status != "healthy" {
		return engine.ProbeStatus{Detail: "server reports status " + health.Status}
	}

	return engine.ProbeStatus{
		Available:   true,
		Accelerated: health.GPUAvailable,
		Detail:      fmt.Sprintf("model %s on %s", health.Model, health.Device),
	}
}

// Transcribe uploads the audio as a multipart form and returns the server's
// transcript.
func (w *WhisperServer) Transcribe(ctx context.Context, req *engine.Request, report engine.ProgressFunc) (*engine.Result, error) {
	report(5, "uploading audio to whisper server")

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	filename := req.Source.Filename()
	if filename == "" {
		filename = "audio.wav"
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, &engine.EngineError{
			Code:    engine.CodeTranscriptionFailed,
			Message: "failed to build multipart form: " + err.Error(),
			Engine:  EngineName,
		}
	}
	if _, err := part.Write(req.Source.Bytes()); err != nil {
		return nil, &engine.EngineError{
			Code:    engine.CodeTranscriptionFailed,
			Message: "failed to write audio payload: " + err.Error(),
			Engine:  EngineName,
		}
	}
	if req.Language != "" {
		_ = writer.WriteField("language", req.Language)
	}
	if err := writer.Close(); err != nil {
		return nil, &engine.EngineError{
			Code:    engine.CodeTranscriptionFailed,
			Message: "failed to finalize multipart form: " + err.Error(),
			Engine:  EngineName,
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, w.config.BaseURL+w.config.InferencePath, &body)
	if err != nil {
		return nil, &engine.EngineError{
			Code:    engine.CodeTranscriptionFailed,
			Message: "failed to create request: " + err.Error(),
			Engine:  EngineName,
		}
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	report(30, "waiting for whisper inference")

	resp, err := w.client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &engine.EngineError{
			Code:      engine.CodeTranscriptionFailed,
			Message:   "inference request failed: " + err.Error(),
			Engine:    EngineName,
			Retryable: true,
		}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &engine.EngineError{
			Code:      engine.CodeTranscriptionFailed,
			Message:   "failed to read inference response: " + err.Error(),
			Engine:    EngineName,
			Retryable: true,
		}
	}

	var parsed transcribeResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &engine.EngineError{
			Code:    engine.CodeTranscriptionFailed,
			Message: fmt.Sprintf("malformed inference response (%d): %s", resp.StatusCode, err),
			Engine:  EngineName,
		}
	}
	if resp.StatusCode != http.StatusOK {
		detail := parsed.Details
		if detail == "" {
			detail = parsed.Error
		}
		if detail == "" {
			detail = http.StatusText(resp.StatusCode)
		}
		return nil, &engine.EngineError{
			Code:      engine.CodeTranscriptionFailed,
			Message:   "whisper server error: " + detail,
			Engine:    EngineName,
			Retryable: resp.StatusCode >= 500,
		}
	}

	report(95, "whisper inference complete")

	confidence := parsed.Confidence
	if confidence > 1 {
		confidence /= 100
	}
	if confidence == 0 {
		confidence = 0.95
	}

	return &engine.Result{
		Text:       parsed.Transcript,
		Confidence: confidence,
		EngineUsed: EngineName,
	}, nil
}

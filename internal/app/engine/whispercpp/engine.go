// Package whispercpp runs transcription in-process by execing a local
// whisper.cpp binary, the runtime-native fallback path.
package whispercpp

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"scamshield/internal/app/engine"
	apprt "scamshield/internal/app/runtime"
)

// EngineName identifies this adapter in results, errors and configuration.
const EngineName = "whisper-cpp"

// WhisperCpp shells out to a whisper.cpp build. Availability is a pure
// capability question, so Probe never touches the network.
type WhisperCpp struct {
	caps apprt.Capabilities
}

// New creates the engine over a capability snapshot.
func New(caps apprt.Capabilities) *WhisperCpp {
	return &WhisperCpp{caps: caps}
}

// NewFromSettings creates the engine from a generic settings map.
func NewFromSettings(settings map[string]interface{}) (engine.Engine, error) {
	binary, _ := settings["binary_path"].(string)
	model, _ := settings["model_path"].(string)
	return New(apprt.Detect(binary, model, os.Getenv("OPENAI_API_KEY"))), nil
}

func (w *WhisperCpp) Name() string { return EngineName }

// Probe reports whether the binary and model resolve locally.
func (w *WhisperCpp) Probe(_ context.Context) engine.ProbeStatus {
	if !w.caps.SupportsWhisperCpp() {
		return engine.ProbeStatus{
			Detail: "whisper.cpp binary or model not found; set SCAMSHIELD_WHISPER_CPP_BINARY and SCAMSHIELD_WHISPER_CPP_MODEL",
		}
	}
	return engine.ProbeStatus{
		Available: true,
		Detail:    "binary " + w.caps.WhisperCppBinary,
	}
}

// Transcribe writes the audio to a temp file, runs the binary with text
// output, and reads the transcript back.
func (w *WhisperCpp) Transcribe(ctx context.Context, req *engine.Request, report engine.ProgressFunc) (*engine.Result, error) {
	if !w.caps.SupportsWhisperCpp() {
		return nil, &engine.EngineError{
			Code:    engine.CodeEngineUnavailable,
			Message: "whisper.cpp is not available in this environment",
			Engine:  EngineName,
		}
	}

	report(5, "preparing audio for whisper.cpp")

	workDir, err := os.MkdirTemp("", "scamshield-whispercpp-")
	if err != nil {
		return nil, &engine.EngineError{
			Code:    engine.CodeTranscriptionFailed,
			Message: "failed to create work directory: " + err.Error(),
			Engine:  EngineName,
		}
	}
	defer os.RemoveAll(workDir)

	ext := filepath.Ext(req.Source.Filename())
	if ext == "" {
		ext = ".wav"
	}
	inputPath := filepath.Join(workDir, "input"+ext)
	if err := os.WriteFile(inputPath, req.Source.Bytes(), 0o600); err != nil {
		return nil, &engine.EngineError{
			Code:    engine.CodeTranscriptionFailed,
			Message: "failed to stage audio file: " + err.Error(),
			Engine:  EngineName,
		}
	}

	outputPrefix := filepath.Join(workDir, "transcript")
	args := []string{
		"-m", w.caps.WhisperCppModel,
		"-f", inputPath,
		"-otxt",
		"-of", outputPrefix,
	}
	if req.Language != "" {
		args = append(args, "-l", shortLanguage(req.Language))
	}

	report(20, "running whisper.cpp inference")

	cmd := exec.CommandContext(ctx, w.caps.WhisperCppBinary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &engine.EngineError{
			Code:    engine.CodeTranscriptionFailed,
			Message: fmt.Sprintf("whisper.cpp failed: %v, stderr: %s", err, stderr.String()),
			Engine:  EngineName,
		}
	}

	report(90, "reading whisper.cpp output")

	transcript, err := os.ReadFile(outputPrefix + ".txt")
	if err != nil {
		return nil, &engine.EngineError{
			Code:    engine.CodeTranscriptionFailed,
			Message: "failed to read transcript output: " + err.Error(),
			Engine:  EngineName,
		}
	}

	return &engine.Result{
		Text: strings.TrimSpace(string(transcript)),
		// whisper.cpp emits no utterance confidence; a fixed estimate keeps
		// the result comparable with the other engines.
		Confidence: 0.85,
		EngineUsed: EngineName,
	}, nil
}

// shortLanguage maps BCP 47 hints like "en-US" onto whisper.cpp's two-letter
// codes.
func shortLanguage(lang string) string {
	if i := strings.Index(lang, "-"); i > 0 {
		return lang[:i]
	}
	return lang
}

package engine

import (
	"errors"
	"fmt"
	"time"

	"scamshield/internal/app/audio"
)

// Preference selects how the orchestrator resolves candidate engines.
// PreferenceAuto walks the configured chain; any other value names one engine
// that must be used with no fallback.
type Preference string

// PreferenceAuto probes the chain in order and uses the first available
// engine.
const PreferenceAuto Preference = "auto"

// ManualEngineName is reported as the engine when a caller-supplied
// transcript bypassed transcription entirely.
const ManualEngineName = "manual"

// Request describes one transcription job.
type Request struct {
	Source           *audio.Source
	Language         string
	ManualTranscript string
	Preference       Preference
}

// Result is produced exactly once per successful job and never mutated.
type Result struct {
	Text       string
	Confidence float64
	EngineUsed string
	Duration   time.Duration
}

// ProgressEvent is one milestone on a job's progress stream. Percent is in
// [0,100] and strictly non-decreasing within a job.
type ProgressEvent struct {
	Percent int
	Stage   string
	Engine  string
}

// ProgressFunc is how adapters report engine-local progress in [0,100].
// The orchestrator clamps and orders the values before publishing.
type ProgressFunc func(percent int, stage string)

// ProbeStatus is the outcome of an availability probe. Probes never fail;
// any error or timeout is reported as Available=false.
type ProbeStatus struct {
	Available   bool
	Accelerated bool
	Detail      string
	CheckedAt   time.Time
}

// Error codes carried by EngineError.
const (
	CodeEngineUnavailable        = "engine_unavailable"
	CodeTranscriptionUnavailable = "transcription_unavailable"
	CodeTranscriptionTimeout     = "transcription_timeout"
	CodeTranscriptionFailed      = "transcription_failed"
	CodeEmptyTranscript          = "empty_transcript"
	CodeInvalidInput             = "invalid_input"
	CodeRequestActive            = "request_active"
)

// EngineError is the typed failure surfaced by engines and the orchestrator.
// Suggestions carry remediation hints for the caller.
type EngineError struct {
	Code        string
	Message     string
	Engine      string
	Retryable   bool
	Suggestions []string
}

func (e *EngineError) Error() string {
	if e.Engine == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Engine, e.Message)
}

// AsEngineError unwraps err into an *EngineError if it is one.
func AsEngineError(err error) (*EngineError, bool) {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee, true
	}
	return nil, false
}

// HasCode reports whether err is an EngineError carrying code.
func HasCode(err error, code string) bool {
	ee, ok := AsEngineError(err)
	return ok && ee.Code == code
}

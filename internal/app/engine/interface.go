package engine

import (
	"context"
)

// Engine is the contract shared by all transcription strategies. The set of
// implementations is closed; the orchestrator selects among them by an
// explicit preference value, never by structural inspection.
type Engine interface {
	// Name returns the stable identifier reported in results and errors.
	Name() string

	// Probe is a cheap, timeout-bounded availability check. It never returns
	// an error; failures of any kind yield Available=false.
	Probe(ctx context.Context) ProbeStatus

	// Transcribe converts the request's audio to text, reporting progress in
	// [0,100] through report. It must honor ctx cancellation.
	Transcribe(ctx context.Context, req *Request, report ProgressFunc) (*Result, error)
}

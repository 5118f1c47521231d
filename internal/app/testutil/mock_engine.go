package testutil

import (
	"context"
	"sync"
	"time"

	"scamshield/internal/app/engine"
)

// MockEngine is a configurable engine implementation for tests.
// It records probe and transcribe invocations and can be scripted
// with fixed results, errors, and progress sequences.
type MockEngine struct {
	mu sync.Mutex

	EngineName     string
	Available      bool
	Accelerated    bool
	ProbeErrDetail string

	Transcript  string
	Confidence  float64
	Err         error
	ProgressSeq []int
	Latency     time.Duration

	ProbeCalls      int
	TranscribeCalls int
	LastRequest     *engine.Request
}

// NewMockEngine creates an available engine returning the given transcript.
func NewMockEngine(name, transcript string) *MockEngine {
	return &MockEngine{
		EngineName: name,
		Available:  true,
		Transcript: transcript,
		Confidence: 0.9,
	}
}

func (m *MockEngine) Name() string {
	return m.EngineName
}

func (m *MockEngine) Probe(ctx context.Context) engine.ProbeStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProbeCalls++
	return engine.ProbeStatus{
		Available:   m.Available,
		Accelerated: m.Accelerated,
		Detail:      m.ProbeErrDetail,
		CheckedAt:   time.Now(),
	}
}

func (m *MockEngine) Transcribe(ctx context.Context, req *engine.Request, progress engine.ProgressFunc) (*engine.Result, error) {
	m.mu.Lock()
	m.TranscribeCalls++
	m.LastRequest = req
	seq := m.ProgressSeq
	latency := m.Latency
	m.mu.Unlock()

	if latency > 0 {
		select {
		case <-time.After(latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if progress != nil {
		for _, p := range seq {
			progress(p, "transcribing")
		}
	}

	if m.Err != nil {
		return nil, m.Err
	}
	return &engine.Result{
		Text:       m.Transcript,
		Confidence: m.Confidence,
		EngineUsed: m.EngineName,
	}, nil
}

// Calls returns the probe and transcribe call counts.
func (m *MockEngine) Calls() (probes, transcribes int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ProbeCalls, m.TranscribeCalls
}

var _ engine.Engine = (*MockEngine)(nil)

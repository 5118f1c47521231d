package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// State is a job's position in its lifecycle.
type State int32

const (
	StateIdle State = iota
	StateProbingEngines
	StateTranscribing
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateProbingEngines:
		return "probing-engines"
	case StateTranscribing:
		return "transcribing"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Remediation hints attached to terminal transcription failures.
var unavailableSuggestions = []string{
	"start the local whisper server and retry",
	"choose a different engine with --engine",
	"supply a manual transcript instead",
}

// Orchestrator selects and sequences transcription engines. It is safe for
// concurrent use; each transcription runs as its own Job.
type Orchestrator struct {
	engines map[string]Engine
	chain   []string
	cache   *AvailabilityCache
	timeout time.Duration
	logger  *zap.Logger
}

// NewOrchestrator builds an orchestrator over a closed engine set. chain is
// the candidate order used under PreferenceAuto; engines absent from the map
// are skipped. timeout bounds a whole transcription when the caller's context
// carries no deadline; zero disables the bound.
func NewOrchestrator(engines []Engine, chain []string, cache *AvailabilityCache, timeout time.Duration, logger *zap.Logger) *Orchestrator {
	if cache == nil {
		cache = NewAvailabilityCache(0, 0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	byName := make(map[string]Engine, len(engines))
	for _, eng := range engines {
		byName[eng.Name()] = eng
	}
	return &Orchestrator{
		engines: byName,
		chain:   chain,
		cache:   cache,
		timeout: timeout,
		logger:  logger,
	}
}

// EngineNames returns the configured auto-candidate order.
func (o *Orchestrator) EngineNames() []string {
	names := make([]string, 0, len(o.chain))
	for _, name := range o.chain {
		if _, ok := o.engines[name]; ok {
			names = append(names, name)
		}
	}
	return names
}

// ProbeAll probes every configured engine through the cache and returns the
// statuses keyed by engine name.
func (o *Orchestrator) ProbeAll(ctx context.Context) map[string]ProbeStatus {
	out := make(map[string]ProbeStatus, len(o.engines))
	for name, eng := range o.engines {
		out[name] = o.cache.Probe(ctx, eng)
	}
	return out
}

// NewJob wraps a request into a runnable job with its own progress stream.
func (o *Orchestrator) NewJob(req *Request) *Job {
	return &Job{
		orch:   o,
		req:    req,
		events: make(chan ProgressEvent, 16),
	}
}

// Transcribe is the one-shot convenience wrapper: it runs a fresh job and
// discards progress events.
func (o *Orchestrator) Transcribe(ctx context.Context, req *Request) (*Result, error) {
	job := o.NewJob(req)
	go func() {
		for range job.Progress() {
		}
	}()
	return job.Run(ctx)
}

// Job is one logical transcription request. At most one Run is accepted per
// Job; progress events are published to a stream the caller may subscribe to
// before calling Run.
type Job struct {
	orch   *Orchestrator
	req    *Request
	events chan ProgressEvent

	started   atomic.Bool
	state     atomic.Int32
	last      int
	stopped   atomic.Bool
	closeOnce sync.Once
}

// Progress returns the job's event stream. It is closed when the job settles
// or is cancelled; no event is ever published after cancellation.
func (j *Job) Progress() <-chan ProgressEvent {
	return j.events
}

// State reports the job's current lifecycle state.
func (j *Job) State() State {
	return State(j.state.Load())
}

// Run executes the job. A second call on the same Job is rejected, not
// queued. On cancellation the progress stream is closed and partial engine
// work is abandoned.
func (j *Job) Run(ctx context.Context) (*Result, error) {
	if !j.started.CompareAndSwap(false, true) {
		return nil, &EngineError{
			Code:    CodeRequestActive,
			Message: "transcription already started for this request",
		}
	}
	defer j.closeProgress()

	if j.orch.timeout > 0 {
		if _, hasDeadline := ctx.Deadline(); !hasDeadline {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, j.orch.timeout)
			defer cancel()
		}
	}

	res, err := j.run(ctx)
	if err != nil {
		j.state.Store(int32(StateFailed))
		return nil, err
	}
	j.state.Store(int32(StateSucceeded))
	return res, nil
}

func (j *Job) run(ctx context.Context) (*Result, error) {
	req := j.req

	// A caller-supplied transcript bypasses all engine logic.
	if strings.TrimSpace(req.ManualTranscript) != "" {
		j.publish(ctx, 100, "manual transcript supplied", ManualEngineName)
		return &Result{
			Text:       strings.TrimSpace(req.ManualTranscript),
			Confidence: 1.0,
			EngineUsed: ManualEngineName,
		}, nil
	}

	if req.Source == nil {
		return nil, &EngineError{
			Code:    CodeInvalidInput,
			Message: "no audio source and no manual transcript supplied",
		}
	}

	explicit := req.Preference != "" && req.Preference != PreferenceAuto
	candidates, err := j.orch.resolveCandidates(req.Preference)
	if err != nil {
		return nil, err
	}

	j.state.Store(int32(StateProbingEngines))

	var lastErr error
	for _, eng := range candidates {
		if ctx.Err() != nil {
			return nil, wrapContextErr(ctx.Err(), "")
		}

		status := j.orch.cache.Probe(ctx, eng)
		if !status.Available {
			if explicit {
				return nil, &EngineError{
					Code:        CodeEngineUnavailable,
					Message:     fmt.Sprintf("engine %q is not available: %s", eng.Name(), status.Detail),
					Engine:      eng.Name(),
					Suggestions: unavailableSuggestions,
				}
			}
			j.orch.logger.Debug("engine unavailable, trying next",
				zap.String("engine", eng.Name()),
				zap.String("detail", status.Detail))
			lastErr = &EngineError{
				Code:    CodeEngineUnavailable,
				Message: status.Detail,
				Engine:  eng.Name(),
			}
			continue
		}

		res, err := j.invoke(ctx, eng)
		if err == nil {
			return res, nil
		}
		if ctx.Err() != nil {
			return nil, wrapContextErr(ctx.Err(), eng.Name())
		}
		if explicit {
			return nil, err
		}
		j.orch.logger.Warn("engine failed, trying next",
			zap.String("engine", eng.Name()), zap.Error(err))
		lastErr = err
	}

	msg := "no transcription engine could process the audio"
	if lastErr != nil {
		msg = fmt.Sprintf("%s: %v", msg, lastErr)
	}
	return nil, &EngineError{
		Code:        CodeTranscriptionUnavailable,
		Message:     msg,
		Suggestions: unavailableSuggestions,
	}
}

// invoke runs a single engine, mapping its local progress into the job's
// 10..90 band and publishing the terminal milestone on success.
func (j *Job) invoke(ctx context.Context, eng Engine) (*Result, error) {
	j.state.Store(int32(StateTranscribing))
	j.publish(ctx, 10, "engine start", eng.Name())

	start := time.Now()
	res, err := eng.Transcribe(ctx, j.req, func(percent int, stage string) {
		if percent < 0 {
			percent = 0
		}
		if percent > 100 {
			percent = 100
		}
		j.publish(ctx, 10+percent*80/100, stage, eng.Name())
	})
	elapsed := time.Since(start)

	if err != nil {
		observeTranscription(eng.Name(), "failure", elapsed)
		return nil, err
	}
	if strings.TrimSpace(res.Text) == "" {
		observeTranscription(eng.Name(), "empty", elapsed)
		return nil, &EngineError{
			Code:        CodeEmptyTranscript,
			Message:     "engine produced an empty transcript",
			Engine:      eng.Name(),
			Retryable:   true,
			Suggestions: []string{"supply a manual transcript instead"},
		}
	}

	observeTranscription(eng.Name(), "success", elapsed)
	res.EngineUsed = eng.Name()
	res.Duration = elapsed
	j.publish(ctx, 100, "transcription complete", eng.Name())
	return res, nil
}

// publish emits a progress event, enforcing monotonically non-decreasing
// percentages and silence after cancellation. Events are dropped rather than
// blocking a slow subscriber.
func (j *Job) publish(ctx context.Context, percent int, stage, engineName string) {
	if j.stopped.Load() || ctx.Err() != nil {
		return
	}
	if percent < j.last {
		percent = j.last
	}
	j.last = percent

	select {
	case j.events <- ProgressEvent{Percent: percent, Stage: stage, Engine: engineName}:
	default:
	}
}

func (j *Job) closeProgress() {
	j.closeOnce.Do(func() {
		j.stopped.Store(true)
		close(j.events)
	})
}

func (o *Orchestrator) resolveCandidates(pref Preference) ([]Engine, error) {
	if pref == "" || pref == PreferenceAuto {
		var out []Engine
		for _, name := range o.chain {
			if eng, ok := o.engines[name]; ok {
				out = append(out, eng)
			}
		}
		if len(out) == 0 {
			return nil, &EngineError{
				Code:        CodeTranscriptionUnavailable,
				Message:     "no transcription engines configured",
				Suggestions: unavailableSuggestions,
			}
		}
		return out, nil
	}

	eng, ok := o.engines[string(pref)]
	if !ok {
		return nil, &EngineError{
			Code:    CodeEngineUnavailable,
			Message: fmt.Sprintf("unknown engine %q", pref),
			Engine:  string(pref),
			Suggestions: []string{
				fmt.Sprintf("configured engines: %s", strings.Join(o.EngineNames(), ", ")),
			},
		}
	}
	return []Engine{eng}, nil
}

func wrapContextErr(err error, engineName string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &EngineError{
			Code:        CodeTranscriptionTimeout,
			Message:     "transcription deadline exceeded",
			Engine:      engineName,
			Retryable:   true,
			Suggestions: []string{"retry with a longer timeout or a shorter recording"},
		}
	}
	return err
}

package engine_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scamshield/internal/app/audio"
	"scamshield/internal/app/engine"
	"scamshield/internal/app/testutil"
)

func testSource(t *testing.T) *audio.Source {
	t.Helper()
	src, err := audio.NewSource(bytes.Repeat([]byte{0x01}, 2048), "audio/wav", "call.wav")
	require.NoError(t, err)
	return src
}

func newOrchestrator(engines ...engine.Engine) *engine.Orchestrator {
	names := make([]string, 0, len(engines))
	for _, eng := range engines {
		names = append(names, eng.Name())
	}
	cache := engine.NewAvailabilityCache(time.Minute, time.Second)
	return engine.NewOrchestrator(engines, names, cache, 0, nil)
}

func TestManualTranscriptBypassesEngines(t *testing.T) {
	primary := testutil.NewMockEngine("primary", "never used")
	orch := newOrchestrator(primary)

	res, err := orch.Transcribe(context.Background(), &engine.Request{
		ManualTranscript: "  I typed this myself  ",
	})
	require.NoError(t, err)

	assert.Equal(t, "I typed this myself", res.Text)
	assert.Equal(t, 1.0, res.Confidence)
	assert.Equal(t, engine.ManualEngineName, res.EngineUsed)

	probes, transcribes := primary.Calls()
	assert.Zero(t, probes)
	assert.Zero(t, transcribes)
}

func TestAutoFallsBackToNextEngine(t *testing.T) {
	down := testutil.NewMockEngine("down", "")
	down.Available = false
	down.ProbeErrDetail = "connection refused"
	up := testutil.NewMockEngine("up", "hello from fallback")

	orch := newOrchestrator(down, up)
	res, err := orch.Transcribe(context.Background(), &engine.Request{Source: testSource(t)})
	require.NoError(t, err)

	assert.Equal(t, "up", res.EngineUsed)
	assert.Equal(t, "hello from fallback", res.Text)

	_, downCalls := down.Calls()
	assert.Zero(t, downCalls)
}

func TestExplicitPreferenceNeverFallsBack(t *testing.T) {
	down := testutil.NewMockEngine("down", "")
	down.Available = false
	up := testutil.NewMockEngine("up", "should not run")

	orch := newOrchestrator(down, up)
	_, err := orch.Transcribe(context.Background(), &engine.Request{
		Source:     testSource(t),
		Preference: "down",
	})

	require.Error(t, err)
	assert.True(t, engine.HasCode(err, engine.CodeEngineUnavailable))

	_, upCalls := up.Calls()
	assert.Zero(t, upCalls)
}

func TestExplicitPreferenceSurfacesEngineFailure(t *testing.T) {
	flaky := testutil.NewMockEngine("flaky", "")
	flaky.Err = &engine.EngineError{
		Code:    engine.CodeTranscriptionFailed,
		Message: "inference crashed",
		Engine:  "flaky",
	}
	backup := testutil.NewMockEngine("backup", "unused")

	orch := newOrchestrator(flaky, backup)
	_, err := orch.Transcribe(context.Background(), &engine.Request{
		Source:     testSource(t),
		Preference: "flaky",
	})

	require.Error(t, err)
	assert.True(t, engine.HasCode(err, engine.CodeTranscriptionFailed))

	_, backupCalls := backup.Calls()
	assert.Zero(t, backupCalls)
}

func TestEmptyTranscriptRetriesUnderAuto(t *testing.T) {
	empty := testutil.NewMockEngine("empty", "")
	full := testutil.NewMockEngine("full", "actual words")

	orch := newOrchestrator(empty, full)
	res, err := orch.Transcribe(context.Background(), &engine.Request{Source: testSource(t)})
	require.NoError(t, err)

	assert.Equal(t, "full", res.EngineUsed)

	_, emptyCalls := empty.Calls()
	assert.Equal(t, 1, emptyCalls)
}

func TestUnknownExplicitEngine(t *testing.T) {
	orch := newOrchestrator(testutil.NewMockEngine("known", "text"))

	_, err := orch.Transcribe(context.Background(), &engine.Request{
		Source:     testSource(t),
		Preference: "missing",
	})

	require.Error(t, err)
	assert.True(t, engine.HasCode(err, engine.CodeEngineUnavailable))
}

func TestAllEnginesUnavailable(t *testing.T) {
	a := testutil.NewMockEngine("a", "")
	a.Available = false
	b := testutil.NewMockEngine("b", "")
	b.Available = false

	orch := newOrchestrator(a, b)
	_, err := orch.Transcribe(context.Background(), &engine.Request{Source: testSource(t)})

	require.Error(t, err)
	assert.True(t, engine.HasCode(err, engine.CodeTranscriptionUnavailable))

	engErr, ok := engine.AsEngineError(err)
	require.True(t, ok)
	assert.NotEmpty(t, engErr.Suggestions)
}

func TestMissingSourceAndTranscript(t *testing.T) {
	orch := newOrchestrator(testutil.NewMockEngine("a", "text"))

	_, err := orch.Transcribe(context.Background(), &engine.Request{})

	require.Error(t, err)
	assert.True(t, engine.HasCode(err, engine.CodeInvalidInput))
}

func TestJobRejectsSecondRun(t *testing.T) {
	orch := newOrchestrator(testutil.NewMockEngine("a", "text"))
	job := orch.NewJob(&engine.Request{Source: testSource(t)})
	go func() {
		for range job.Progress() {
		}
	}()

	_, err := job.Run(context.Background())
	require.NoError(t, err)

	_, err = job.Run(context.Background())
	require.Error(t, err)
	assert.True(t, engine.HasCode(err, engine.CodeRequestActive))
}

func TestProgressMonotonicAndTerminal(t *testing.T) {
	eng := testutil.NewMockEngine("a", "text")
	eng.ProgressSeq = []int{5, 40, 40, 90}

	orch := newOrchestrator(eng)
	job := orch.NewJob(&engine.Request{Source: testSource(t)})

	var events []engine.ProgressEvent
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range job.Progress() {
			events = append(events, ev)
		}
	}()

	_, err := job.Run(context.Background())
	require.NoError(t, err)
	<-done

	require.NotEmpty(t, events)
	last := -1
	for _, ev := range events {
		assert.GreaterOrEqual(t, ev.Percent, last)
		last = ev.Percent
	}
	assert.Equal(t, 100, events[len(events)-1].Percent)
	assert.Equal(t, engine.StateSucceeded, job.State())
}

func TestTimeoutMapsToTypedError(t *testing.T) {
	slow := testutil.NewMockEngine("slow", "text")
	slow.Latency = 200 * time.Millisecond

	cache := engine.NewAvailabilityCache(time.Minute, time.Second)
	orch := engine.NewOrchestrator(
		[]engine.Engine{slow}, []string{"slow"}, cache, 20*time.Millisecond, nil)

	_, err := orch.Transcribe(context.Background(), &engine.Request{Source: testSource(t)})

	require.Error(t, err)
	assert.True(t, engine.HasCode(err, engine.CodeTranscriptionTimeout))
}

func TestCancelledContext(t *testing.T) {
	eng := testutil.NewMockEngine("a", "text")
	orch := newOrchestrator(eng)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := orch.Transcribe(ctx, &engine.Request{Source: testSource(t)})
	require.Error(t, err)
}

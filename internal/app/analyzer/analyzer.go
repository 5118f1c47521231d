// Package analyzer joins transcription, acoustic features and pattern
// scoring into a single risk verdict.
package analyzer

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"scamshield/internal/app/audio"
	"scamshield/internal/app/engine"
	"scamshield/internal/app/model"
	"scamshield/internal/app/repository"
	"scamshield/internal/app/scoring"
)

var analysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "scamshield_analyses_total",
	Help: "Completed analyses by input kind and risk level.",
}, []string{"kind", "risk_level"})

// AudioOptions tunes one audio analysis.
type AudioOptions struct {
	Language         string
	ManualTranscript string
	Preference       engine.Preference
	// Progress receives the transcription job's event stream when non-nil.
	Progress func(<-chan engine.ProgressEvent)
}

// Analyzer is the verdict aggregator. The scoring engine and the feature
// extractor are pure, so a single Analyzer is safe for concurrent use;
// history appends are serialized by the ring itself.
type Analyzer struct {
	orchestrator *engine.Orchestrator
	history      *History
	store        repository.VerdictDAO
	logger       *zap.Logger
}

// New builds an analyzer. store may be nil to disable persistence.
func New(orchestrator *engine.Orchestrator, history *History, store repository.VerdictDAO, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if history == nil {
		history = NewHistory(0)
	}
	return &Analyzer{
		orchestrator: orchestrator,
		history:      history,
		store:        store,
		logger:       logger,
	}
}

// History exposes the bounded most-recent-first verdict history.
func (a *Analyzer) History() *History {
	return a.history
}

// Orchestrator exposes the transcription orchestrator, for engine probing
// surfaces.
func (a *Analyzer) Orchestrator() *engine.Orchestrator {
	return a.orchestrator
}

// Store exposes the persistent verdict archive.
func (a *Analyzer) Store() repository.VerdictDAO {
	return a.store
}

// AnalyzeText scores free-form text and records the verdict.
func (a *Analyzer) AnalyzeText(_ context.Context, text string) (*model.RiskVerdict, error) {
	verdict := a.buildVerdict(text, "", "", nil)
	a.record("text", text, verdict)
	return verdict, nil
}

// AnalyzeAudio transcribes src and scores the transcript. Feature extraction
// runs concurrently with transcription and is best-effort: on failure the
// verdict simply carries no audio features. Transcription failure fails the
// whole call.
func (a *Analyzer) AnalyzeAudio(ctx context.Context, src *audio.Source, opts AudioOptions) (*model.RiskVerdict, error) {
	featuresCh := make(chan *model.AudioFeatures, 1)
	go func() {
		features, err := audio.ExtractFeatures(src)
		if err != nil {
			a.logger.Debug("feature extraction failed, continuing without features",
				zap.Error(err))
			featuresCh <- nil
			return
		}
		featuresCh <- features
	}()

	job := a.orchestrator.NewJob(&engine.Request{
		Source:           src,
		Language:         opts.Language,
		ManualTranscript: opts.ManualTranscript,
		Preference:       opts.Preference,
	})
	if opts.Progress != nil {
		go opts.Progress(job.Progress())
	} else {
		go func() {
			for range job.Progress() {
			}
		}()
	}

	result, err := job.Run(ctx)
	// Feature extraction is pure and prompt; always join it so the goroutine
	// never leaks, then decide on the transcription error.
	features := <-featuresCh
	if err != nil {
		return nil, err
	}

	verdict := a.buildVerdict(result.Text, result.Text, result.EngineUsed, features)
	a.record("audio", result.Text, verdict)
	return verdict, nil
}

func (a *Analyzer) buildVerdict(text, transcript, engineUsed string, features *model.AudioFeatures) *model.RiskVerdict {
	scored := scoring.Score(text)

	return &model.RiskVerdict{
		RiskLevel:       scored.RiskLevel,
		AggregateScore:  scored.AggregateScore,
		ScamType:        scored.ScamType,
		Flags:           scored.Flags,
		Recommendations: scoring.Recommendations(scored.AggregateScore),
		CategoryScores:  scored.CategoryScores,
		Advisories:      scoring.Advisories(features, scored.CategoryScores),
		Transcript:      transcript,
		AudioFeatures:   features,
		EngineUsed:      engineUsed,
		CreatedAt:       time.Now(),
	}
}

func (a *Analyzer) record(kind, input string, verdict *model.RiskVerdict) {
	analysesTotal.WithLabelValues(kind, string(verdict.RiskLevel)).Inc()

	entry := a.history.Append(input, *verdict)
	if a.store == nil {
		return
	}
	if err := a.store.SaveVerdict(entry); err != nil {
		a.logger.Warn("failed to persist verdict", zap.Error(err))
	}
}

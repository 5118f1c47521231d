package model

import (
	"time"
)

// RiskLevel is the bucketed severity derived from the aggregate score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Risk band boundaries. RiskLevelFor in the scoring package is the only
// place allowed to interpret them.
const (
	CriticalThreshold = 80
	HighThreshold     = 50
	MediumThreshold   = 25
)

// AudioFeatures holds acoustic measurements derived from a decoded audio
// source. Computed independently from transcription; an analysis can carry a
// nil AudioFeatures when extraction failed or the input was plain text.
type AudioFeatures struct {
	DurationSeconds    float64 `json:"duration_seconds"`
	AverageAmplitude   float64 `json:"average_amplitude"`
	SilenceRatio       float64 `json:"silence_ratio"`
	HasBackgroundNoise bool    `json:"has_background_noise"`
}

// CategoryScore is the sub-score of one heuristic category, with the matched
// triggers kept for transparency.
type CategoryScore struct {
	Category string   `json:"category"`
	Score    int      `json:"score"`
	Matches  []string `json:"matches"`
	Reason   string   `json:"reason"`
}

// RiskVerdict is the terminal, immutable record of one analysis.
type RiskVerdict struct {
	RiskLevel       RiskLevel       `json:"risk_level"`
	AggregateScore  int             `json:"aggregate_score"`
	ScamType        string          `json:"scam_type"`
	Flags           []string        `json:"flags"`
	Recommendations []string        `json:"recommendations"`
	CategoryScores  []CategoryScore `json:"category_scores"`
	Advisories      []string        `json:"advisories,omitempty"`
	Transcript      string          `json:"transcript,omitempty"`
	AudioFeatures   *AudioFeatures  `json:"audio_features,omitempty"`
	EngineUsed      string          `json:"engine_used,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// HistoryEntry is one retained analysis in the bounded history.
type HistoryEntry struct {
	ID        string      `json:"id"`
	Preview   string      `json:"preview"`
	Verdict   RiskVerdict `json:"verdict"`
	Timestamp time.Time   `json:"timestamp"`
}

package dto

import (
	"time"

	"scamshield/internal/app/model"
)

// AnalyzeTextRequest is the body of POST /api/v1/analyze.
type AnalyzeTextRequest struct {
	Text string `json:"text" binding:"required,min=1,max=100000"`
}

// CategoryScore is one pattern category's contribution to the verdict.
type CategoryScore struct {
	Category string   `json:"category"`
	Score    int      `json:"score"`
	Matches  []string `json:"matches"`
	Reason   string   `json:"reason,omitempty"`
}

// AudioFeatures carries the advisory acoustic measurements.
type AudioFeatures struct {
	DurationSeconds    float64 `json:"duration_seconds"`
	AverageAmplitude   float64 `json:"average_amplitude"`
	SilenceRatio       float64 `json:"silence_ratio"`
	HasBackgroundNoise bool    `json:"has_background_noise"`
}

// AnalysisResponse is the verdict returned by the analyze endpoints.
type AnalysisResponse struct {
	RiskLevel       string          `json:"risk_level"`
	AggregateScore  int             `json:"aggregate_score"`
	ScamType        string          `json:"scam_type"`
	Flags           []string        `json:"flags"`
	Recommendations []string        `json:"recommendations"`
	CategoryScores  []CategoryScore `json:"category_scores"`
	Advisories      []string        `json:"advisories,omitempty"`
	Transcript      string          `json:"transcript"`
	AudioFeatures   *AudioFeatures  `json:"audio_features,omitempty"`
	EngineUsed      string          `json:"engine_used,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// HistoryEntryResponse is one bounded-history record.
type HistoryEntryResponse struct {
	ID        string           `json:"id"`
	Preview   string           `json:"preview"`
	Verdict   AnalysisResponse `json:"verdict"`
	Timestamp time.Time        `json:"timestamp"`
}

// EngineStatusResponse reports one engine's probed availability.
type EngineStatusResponse struct {
	Name        string    `json:"name"`
	Available   bool      `json:"available"`
	Accelerated bool      `json:"accelerated"`
	Detail      string    `json:"detail,omitempty"`
	CheckedAt   time.Time `json:"checked_at"`
}

// FromVerdict maps a domain verdict into its API representation.
func FromVerdict(v model.RiskVerdict) AnalysisResponse {
	resp := AnalysisResponse{
		RiskLevel:       string(v.RiskLevel),
		AggregateScore:  v.AggregateScore,
		ScamType:        v.ScamType,
		Flags:           v.Flags,
		Recommendations: v.Recommendations,
		Advisories:      v.Advisories,
		Transcript:      v.Transcript,
		EngineUsed:      v.EngineUsed,
		CreatedAt:       v.CreatedAt,
	}
	for _, cs := range v.CategoryScores {
		resp.CategoryScores = append(resp.CategoryScores, CategoryScore{
			Category: cs.Category,
			Score:    cs.Score,
			Matches:  cs.Matches,
			Reason:   cs.Reason,
		})
	}
	if v.AudioFeatures != nil {
		resp.AudioFeatures = &AudioFeatures{
			DurationSeconds:    v.AudioFeatures.DurationSeconds,
			AverageAmplitude:   v.AudioFeatures.AverageAmplitude,
			SilenceRatio:       v.AudioFeatures.SilenceRatio,
			HasBackgroundNoise: v.AudioFeatures.HasBackgroundNoise,
		}
	}
	return resp
}

// FromHistoryEntry maps a domain history entry into its API representation.
func FromHistoryEntry(e model.HistoryEntry) HistoryEntryResponse {
	return HistoryEntryResponse{
		ID:        e.ID,
		Preview:   e.Preview,
		Verdict:   FromVerdict(e.Verdict),
		Timestamp: e.Timestamp,
	}
}

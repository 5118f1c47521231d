package scoring

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"scamshield/internal/app/model"
)

// Result is the scoring engine's output tuple. It carries everything the
// aggregator needs to build a verdict.
type Result struct {
	AggregateScore int
	RiskLevel      model.RiskLevel
	ScamType       string
	Flags          []string
	CategoryScores []model.CategoryScore
}

// Score evaluates the fixed category tables against text. It is a pure
// function: no I/O, no randomness, identical output for identical input.
// Empty or whitespace-only text scores 0 / low / unknown with no flags.
func Score(text string) Result {
	normalized := strings.ToLower(text)

	result := Result{
		ScamType:       ScamTypeUnknown,
		Flags:          []string{},
		CategoryScores: []model.CategoryScore{},
	}

	total := 0
	for _, p := range patterns {
		matches := lo.Filter(p.triggers, func(trigger string, _ int) bool {
			return strings.Contains(normalized, trigger)
		})
		if len(matches) == 0 {
			continue
		}

		subScore := min(100, len(matches)*p.weight)
		total += subScore

		flag := fmt.Sprintf(p.flagTemplate, strings.Join(matches, ", "))
		result.Flags = append(result.Flags, flag)
		result.CategoryScores = append(result.CategoryScores, model.CategoryScore{
			Category: p.category,
			Score:    subScore,
			Matches:  matches,
			Reason:   flag,
		})
	}

	result.AggregateScore = min(100, total)
	result.RiskLevel = RiskLevelFor(result.AggregateScore)
	result.ScamType = classify(normalized)
	return result
}

// RiskLevelFor maps an aggregate score onto the fixed, monotonic risk bands.
func RiskLevelFor(score int) model.RiskLevel {
	switch {
	case score >= model.CriticalThreshold:
		return model.RiskCritical
	case score >= model.HighThreshold:
		return model.RiskHigh
	case score >= model.MediumThreshold:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}

// classify returns the first archetype, in declaration order, with at least
// one matched trigger. Declaration order is the documented tie-break.
func classify(normalized string) string {
	for _, a := range archetypes {
		for _, trigger := range a.triggers {
			if strings.Contains(normalized, trigger) {
				return a.name
			}
		}
	}
	return ScamTypeUnknown
}

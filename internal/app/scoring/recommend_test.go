package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"scamshield/internal/app/model"
)

func TestRecommendationsByBand(t *testing.T) {
	low := Recommendations(10)
	assert.Contains(t, low, "Verify the sender through an independent, official channel")
	assert.Contains(t, low, "No strong fraud signals found, but stay vigilant with unsolicited messages")

	medium := Recommendations(30)
	assert.Contains(t, medium, "Do not click any links or share personal data")
	assert.NotContains(t, medium, "Block the sender and report the incident to cybercrime authorities")

	high := Recommendations(60)
	assert.Contains(t, high, "Do not click any links or share personal data")
	assert.Contains(t, high, "Block the sender and report the incident to cybercrime authorities")
}

func TestAdvisoriesNilFeatures(t *testing.T) {
	assert.Nil(t, Advisories(nil, nil))
}

func TestAdvisoriesNoisyQuietCall(t *testing.T) {
	features := &model.AudioFeatures{
		DurationSeconds:    45,
		AverageAmplitude:   0.15,
		SilenceRatio:       0.2,
		HasBackgroundNoise: true,
	}
	notes := Advisories(features, nil)
	assert.Len(t, notes, 1)
	assert.Contains(t, notes[0], "background noise")
}

func TestAdvisoriesScriptedDelivery(t *testing.T) {
	features := &model.AudioFeatures{
		DurationSeconds:    45,
		AverageAmplitude:   0.5,
		SilenceRatio:       0.7,
		HasBackgroundNoise: false,
	}
	notes := Advisories(features, nil)
	assert.Len(t, notes, 1)
	assert.Contains(t, notes[0], "scripted")
}

func TestAdvisoriesShortUrgentCall(t *testing.T) {
	features := &model.AudioFeatures{
		DurationSeconds: 6,
	}
	categories := []model.CategoryScore{
		{Category: CategoryUrgency, Score: 30},
	}
	notes := Advisories(features, categories)
	assert.Len(t, notes, 1)
	assert.Contains(t, notes[0], "pressure tactic")

	// Without an urgency category the short duration alone says nothing.
	assert.Empty(t, Advisories(features, nil))
}

package scoring

import "scamshield/internal/app/model"

// Recommendations returns the fixed remediation templates for a score band.
// The output is deterministic given the score.
func Recommendations(score int) []string {
	recs := []string{
		"Verify the sender through an independent, official channel",
	}

	if score >= model.MediumThreshold {
		recs = append(recs, "Do not click any links or share personal data")
	}
	if score >= model.HighThreshold {
		recs = append(recs,
			"Block the sender and report the incident to cybercrime authorities",
		)
	}
	if score < model.MediumThreshold {
		recs = append(recs,
			"No strong fraud signals found, but stay vigilant with unsolicited messages",
		)
	}
	return recs
}

// Advisories derives advisory notes from acoustic measurements. These are
// attached to the verdict as metadata and never change the aggregate score.
func Advisories(features *model.AudioFeatures, categories []model.CategoryScore) []string {
	if features == nil {
		return nil
	}

	var notes []string

	if features.HasBackgroundNoise && features.AverageAmplitude < 0.3 {
		notes = append(notes,
			"Poor call quality with persistent background noise, common in scam call centers",
		)
	}
	if features.SilenceRatio > 0.5 && !features.HasBackgroundNoise {
		notes = append(notes,
			"Long silences over a clean line suggest a scripted or robotic delivery",
		)
	}
	if features.DurationSeconds > 0 && features.DurationSeconds < 10 {
		for _, c := range categories {
			if c.Category == CategoryUrgency {
				notes = append(notes,
					"Very short call combined with urgent language is a pressure tactic",
				)
				break
			}
		}
	}
	return notes
}

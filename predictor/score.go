package predictor

import (
	"math"

	"studentscore/ml"
)

const (
	MinScore = 0.0
	MaxScore = 100.0

	ExcellentThreshold = 85.0
	GoodThreshold      = 70.0
)

// Clamp saturates score to [MinScore, MaxScore]. NaN maps to MinScore.
func Clamp(score float64) float64 {
	if math.IsNaN(score) || score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

// FallbackScore is used when no model artefact could be loaded.
func FallbackScore(f ml.FeatureVector) float64 {
	score := 2*f.StudyHours +
		0.5*f.AttendancePct +
		1.5*float64(f.MentalHealth) +
		1*f.SleepHours
	if f.PartTimeJob {
		score -= 5
	}
	return score
}

type Tier string

const (
	TierExcellent      Tier = "excellent"
	TierGood           Tier = "good"
	TierNeedsAttention Tier = "needs_attention"
)

// Tone drives the colour of the result banner.
type Tone string

const (
	ToneSuccess Tone = "success"
	ToneInfo    Tone = "info"
	ToneWarning Tone = "warning"
)

// Classify bands are closed at the lower end.
func Classify(score float64) Tier {
	switch {
	case score >= ExcellentThreshold:
		return TierExcellent
	case score >= GoodThreshold:
		return TierGood
	default:
		return TierNeedsAttention
	}
}

func (t Tier) Tone() Tone {
	switch t {
	case TierExcellent:
		return ToneSuccess
	case TierGood:
		return ToneInfo
	default:
		return ToneWarning
	}
}

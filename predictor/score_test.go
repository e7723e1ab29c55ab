package predictor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"studentscore/ml"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-12.5))
	assert.Equal(t, 100.0, Clamp(130))
	assert.Equal(t, 42.25, Clamp(42.25))
	assert.Equal(t, 0.0, Clamp(math.NaN()))
	assert.Equal(t, 100.0, Clamp(math.Inf(1)))
}

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  Tier
	}{
		{100, TierExcellent},
		{85, TierExcellent},
		{84.999, TierGood},
		{70, TierGood},
		{69.999, TierNeedsAttention},
		{0, TierNeedsAttention},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.score), "score %v", tc.score)
	}
	assert.Equal(t, ToneSuccess, TierExcellent.Tone())
	assert.Equal(t, ToneInfo, TierGood.Tone())
	assert.Equal(t, ToneWarning, TierNeedsAttention.Tone())
}

func TestFallbackScore(t *testing.T) {
	features := ml.FeatureVector{StudyHours: 3, AttendancePct: 90, MentalHealth: 7, SleepHours: 7}
	assert.InDelta(t, 68.5, FallbackScore(features), 1e-9)

	features.PartTimeJob = true
	assert.InDelta(t, 63.5, FallbackScore(features), 1e-9)

	maxed := ml.FeatureVector{StudyHours: 12, AttendancePct: 100, MentalHealth: 10, SleepHours: 12}
	assert.Greater(t, FallbackScore(maxed), MaxScore)
	assert.Equal(t, MaxScore, Clamp(FallbackScore(maxed)))
}

func TestBuildAdviceIndependentRules(t *testing.T) {
	in := Input{SleepHours: 4, StudyHours: 1, AttendancePct: 50, MentalHealth: 3}
	advice := BuildAdvice(in, 40)

	kinds := make([]AdviceKind, 0, len(advice))
	for _, a := range advice {
		kinds = append(kinds, a.Kind)
	}
	assert.ElementsMatch(t, []AdviceKind{AdviceSleep, AdviceStudy, AdviceAttendance, AdviceMentalHealth}, kinds)
}

func TestBuildAdvicePraise(t *testing.T) {
	in := Input{SleepHours: 8, StudyHours: 6, AttendancePct: 95, MentalHealth: 8}
	advice := BuildAdvice(in, 90)
	if assert.Len(t, advice, 1) {
		assert.Equal(t, AdvicePraise, advice[0].Kind)
		assert.True(t, advice[0].Positive)
	}

	assert.Empty(t, BuildAdvice(in, 85), "praise needs a score strictly above 85")

	in.SleepHours = 6
	assert.Empty(t, BuildAdvice(in, 95), "praise needs sleep strictly above 6")
}

package predictor

import (
	"sort"

	"studentscore/ml"
)

// RadarAxis names, in chart order.
var RadarAxes = []string{"study_hours", "attendance_pct", "mental_health", "sleep_hours"}

// RadarProfile holds the four normalized radar values, each in [0, 1] for
// in-domain input.
type RadarProfile struct {
	Study        float64 `json:"study"`
	Attendance   float64 `json:"attendance"`
	MentalHealth float64 `json:"mental_health"`
	Sleep        float64 `json:"sleep"`
}

func (p RadarProfile) Values() []float64 {
	return []float64{p.Study, p.Attendance, p.MentalHealth, p.Sleep}
}

// IdealInput is the benchmark student drawn next to the user on the radar.
var IdealInput = Input{
	Name:          "Ideal",
	StudyHours:    6,
	AttendancePct: 95,
	MentalHealth:  8,
	SleepHours:    8,
}

func NormalizeProfile(in Input) RadarProfile {
	return RadarProfile{
		Study:        capAtOne(in.StudyHours / 10),
		Attendance:   in.AttendancePct / 100,
		MentalHealth: float64(in.MentalHealth) / 10,
		Sleep:        capAtOne(in.SleepHours / 9),
	}
}

func IdealProfile() RadarProfile {
	return NormalizeProfile(IdealInput)
}

func capAtOne(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}

type FeatureWeight struct {
	Feature     string  `json:"feature"`
	Coefficient float64 `json:"coefficient"`
}

// Importance is the coefficient view of a linear model.
type Importance struct {
	// Weights are sorted ascending by coefficient.
	Weights         []FeatureWeight `json:"weights"`
	MostInfluential string          `json:"most_influential"`
}

// ImportanceOf returns nil when the model does not expose coefficients.
func ImportanceOf(model ml.Regressor) *Importance {
	linear, ok := ml.AsLinear(model)
	if !ok {
		return nil
	}
	coefficients := linear.Coefficients()
	names := ml.FeatureNames()
	if len(coefficients) != len(names) {
		return nil
	}
	weights := make([]FeatureWeight, len(names))
	for i, name := range names {
		weights[i] = FeatureWeight{Feature: name, Coefficient: coefficients[i]}
	}
	sort.SliceStable(weights, func(i, j int) bool {
		return weights[i].Coefficient < weights[j].Coefficient
	})
	return &Importance{
		Weights:         weights,
		MostInfluential: weights[len(weights)-1].Feature,
	}
}

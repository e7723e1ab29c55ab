package ml

import "strings"

// Feature order the artefacts were trained on. Changing it silently breaks
// every saved model, so FeatureVector.Values and FeatureNames must move together.
const (
	FeatureStudyHours = iota
	FeatureAttendance
	FeatureMentalHealth
	FeatureSleepHours
	FeaturePartTimeJob

	FeatureCount
)

// FeatureVector is the model input for one student.
type FeatureVector struct {
	StudyHours    float64 `json:"study_hours"`
	AttendancePct float64 `json:"attendance_pct"`
	MentalHealth  int     `json:"mental_health"`
	SleepHours    float64 `json:"sleep_hours"`
	PartTimeJob   bool    `json:"part_time_job"`
}

// Values encodes the vector in training order.
func (f FeatureVector) Values() []float64 {
	values := make([]float64, FeatureCount)
	values[FeatureStudyHours] = f.StudyHours
	values[FeatureAttendance] = f.AttendancePct
	values[FeatureMentalHealth] = float64(f.MentalHealth)
	values[FeatureSleepHours] = f.SleepHours
	values[FeaturePartTimeJob] = EncodePartTimeJob(f.PartTimeJob)
	return values
}

func FeatureNames() []string {
	return []string{
		"study_hours",
		"attendance_pct",
		"mental_health",
		"sleep_hours",
		"part_time_job",
	}
}

// ParsePartTimeJob maps the form value "yes" to true and anything else to false.
func ParsePartTimeJob(value string) bool {
	return strings.TrimSpace(value) == "yes"
}

func EncodePartTimeJob(hasJob bool) float64 {
	if hasJob {
		return 1
	}
	return 0
}

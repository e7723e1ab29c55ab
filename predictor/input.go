// Package predictor turns form input into a scored, annotated prediction.
package predictor

import (
	"fmt"
	"math"

	"studentscore/ml"
)

// Widget domains.
const (
	MinStudyHours   = 0.0
	MaxStudyHours   = 12.0
	MinAttendance   = 0.0
	MaxAttendance   = 100.0
	MinMentalHealth = 1
	MaxMentalHealth = 10
	MinSleepHours   = 0.0
	MaxSleepHours   = 12.0

	DefaultName = "Student"
)

// Input is one form submission.
type Input struct {
	Name          string  `json:"name"`
	StudyHours    float64 `json:"study_hours"`
	AttendancePct float64 `json:"attendance_pct"`
	MentalHealth  int     `json:"mental_health"`
	SleepHours    float64 `json:"sleep_hours"`
	PartTimeJob   bool    `json:"part_time_job"`
}

// DefaultInput mirrors the initial slider positions.
func DefaultInput() Input {
	return Input{
		Name:          DefaultName,
		StudyHours:    2,
		AttendancePct: 80,
		MentalHealth:  5,
		SleepHours:    7,
	}
}

func (in Input) Features() ml.FeatureVector {
	return ml.FeatureVector{
		StudyHours:    in.StudyHours,
		AttendancePct: in.AttendancePct,
		MentalHealth:  in.MentalHealth,
		SleepHours:    in.SleepHours,
		PartTimeJob:   in.PartTimeJob,
	}
}

// Validate checks every value against its widget domain.
func (in Input) Validate() error {
	if err := checkRange("study hours", in.StudyHours, MinStudyHours, MaxStudyHours); err != nil {
		return err
	}
	if err := checkRange("attendance", in.AttendancePct, MinAttendance, MaxAttendance); err != nil {
		return err
	}
	if in.MentalHealth < MinMentalHealth || in.MentalHealth > MaxMentalHealth {
		return fmt.Errorf("mental health must be between %d and %d, got %d", MinMentalHealth, MaxMentalHealth, in.MentalHealth)
	}
	return checkRange("sleep hours", in.SleepHours, MinSleepHours, MaxSleepHours)
}

func checkRange(field string, value, low, high float64) error {
	if math.IsNaN(value) || value < low || value > high {
		return fmt.Errorf("%s must be between %g and %g, got %g", field, low, high, value)
	}
	return nil
}

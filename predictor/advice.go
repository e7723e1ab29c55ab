package predictor

type AdviceKind string

const (
	AdviceSleep        AdviceKind = "sleep"
	AdviceStudy        AdviceKind = "study"
	AdviceAttendance   AdviceKind = "attendance"
	AdviceMentalHealth AdviceKind = "mental_health"
	AdvicePraise       AdviceKind = "praise"
)

// Advice thresholds. Each rule fires on its own; several may apply at once.
const (
	lowSleepHours    = 6.0
	lowStudyHours    = 2.0
	lowAttendance    = 80.0
	lowMentalHealth  = 5
	praiseScore      = 85.0
	praiseSleepHours = 6.0
)

type Advice struct {
	Kind     AdviceKind `json:"kind"`
	Positive bool       `json:"positive"`
}

// BuildAdvice evaluates the rules against the raw inputs. Only the praise rule
// reads the score.
func BuildAdvice(in Input, score float64) []Advice {
	advice := make([]Advice, 0, 5)
	if in.SleepHours < lowSleepHours {
		advice = append(advice, Advice{Kind: AdviceSleep})
	}
	if in.StudyHours < lowStudyHours {
		advice = append(advice, Advice{Kind: AdviceStudy})
	}
	if in.AttendancePct < lowAttendance {
		advice = append(advice, Advice{Kind: AdviceAttendance})
	}
	if in.MentalHealth < lowMentalHealth {
		advice = append(advice, Advice{Kind: AdviceMentalHealth})
	}
	if score > praiseScore && in.SleepHours > praiseSleepHours {
		advice = append(advice, Advice{Kind: AdvicePraise, Positive: true})
	}
	return advice
}

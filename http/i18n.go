package http

import (
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"studentscore/predictor"
)

// Messages is the UI copy for one language.
type Messages struct {
	Title           string
	NameLabel       string
	StudyLabel      string
	AttendanceLabel string
	MentalLabel     string
	SleepLabel      string
	JobLabel        string
	Yes             string
	No              string
	Submit          string
	ResultFor       string
	RadarTitle      string
	You             string
	Ideal           string
	ImportanceTitle string
	MostInfluential string
	BeforeSubmit    string
	NoModel         string
	NotLinear       string
	FallbackNotice  string
	Tiers           map[predictor.Tier]string
	Advice          map[predictor.AdviceKind]string
	AxisLabels      []string
	FeatureLabels   map[string]string
}

var english = &Messages{
	Title:           "Student Score Prediction",
	NameLabel:       "Student name",
	StudyLabel:      "Study hours per day",
	AttendanceLabel: "Attendance (%)",
	MentalLabel:     "Mental health score (1-10)",
	SleepLabel:      "Sleep hours per night",
	JobLabel:        "Has a part-time job?",
	Yes:             "Yes",
	No:              "No",
	Submit:          "Predict score",
	ResultFor:       "Predicted score for",
	RadarTitle:      "Your habits vs. the ideal profile",
	You:             "You",
	Ideal:           "Ideal",
	ImportanceTitle: "Feature importance",
	MostInfluential: "Most influential factor: %s",
	BeforeSubmit:    "Fill in the form and press \"Predict score\" to see the dashboard.",
	NoModel:         "The model could not be loaded, so feature importance is unavailable.",
	NotLinear:       "The loaded model does not expose coefficients, so feature importance is unavailable.",
	FallbackNotice:  "No trained model was found; the score comes from the built-in estimate.",
	Tiers: map[predictor.Tier]string{
		predictor.TierExcellent:      "Excellent",
		predictor.TierGood:           "Good",
		predictor.TierNeedsAttention: "Needs attention",
	},
	Advice: map[predictor.AdviceKind]string{
		predictor.AdviceSleep:        "Try to sleep at least 6 hours a night.",
		predictor.AdviceStudy:        "Add more study time; under 2 hours a day is low.",
		predictor.AdviceAttendance:   "Attendance below 80% tends to pull scores down.",
		predictor.AdviceMentalHealth: "Your mental health score is low; consider talking to a counsellor.",
		predictor.AdvicePraise:       "Great balance of results and rest. Keep it up!",
	},
	AxisLabels: []string{"Study", "Attendance", "Mental health", "Sleep"},
	FeatureLabels: map[string]string{
		"study_hours":    "Study hours",
		"attendance_pct": "Attendance",
		"mental_health":  "Mental health",
		"sleep_hours":    "Sleep hours",
		"part_time_job":  "Part-time job",
	},
}

var indonesian = &Messages{
	Title:           "Aplikasi Prediksi Nilai Siswa",
	NameLabel:       "Nama siswa",
	StudyLabel:      "Jam Belajar per Hari",
	AttendanceLabel: "Persentase Kehadiran (%)",
	MentalLabel:     "Skor Kesehatan Mental (1-10)",
	SleepLabel:      "Jam Tidur per Malam",
	JobLabel:        "Apakah Memiliki Pekerjaan Paruh Waktu?",
	Yes:             "Ya",
	No:              "Tidak",
	Submit:          "Prediksi Nilai",
	ResultFor:       "Prediksi Nilai Siswa untuk",
	RadarTitle:      "Kebiasaan Anda dibandingkan profil ideal",
	You:             "Anda",
	Ideal:           "Ideal",
	ImportanceTitle: "Pengaruh fitur",
	MostInfluential: "Faktor paling berpengaruh: %s",
	BeforeSubmit:    "Isi formulir lalu tekan \"Prediksi Nilai\" untuk melihat dasbor.",
	NoModel:         "Model gagal dimuat, pengaruh fitur tidak tersedia.",
	NotLinear:       "Model yang dimuat tidak memiliki koefisien, pengaruh fitur tidak tersedia.",
	FallbackNotice:  "Model tidak ditemukan; nilai dihitung dengan rumus bawaan.",
	Tiers: map[predictor.Tier]string{
		predictor.TierExcellent:      "Sangat baik",
		predictor.TierGood:           "Baik",
		predictor.TierNeedsAttention: "Perlu perhatian",
	},
	Advice: map[predictor.AdviceKind]string{
		predictor.AdviceSleep:        "Usahakan tidur minimal 6 jam setiap malam.",
		predictor.AdviceStudy:        "Tambah waktu belajar; kurang dari 2 jam sehari tergolong rendah.",
		predictor.AdviceAttendance:   "Kehadiran di bawah 80% cenderung menurunkan nilai.",
		predictor.AdviceMentalHealth: "Skor kesehatan mental rendah; pertimbangkan berbicara dengan konselor.",
		predictor.AdvicePraise:       "Keseimbangan nilai dan istirahat yang bagus. Pertahankan!",
	},
	AxisLabels: []string{"Belajar", "Kehadiran", "Kesehatan mental", "Tidur"},
	FeatureLabels: map[string]string{
		"study_hours":    "Jam belajar",
		"attendance_pct": "Kehadiran",
		"mental_health":  "Kesehatan mental",
		"sleep_hours":    "Jam tidur",
		"part_time_job":  "Kerja paruh waktu",
	},
}

var catalog = map[language.Tag]*Messages{
	language.English:    english,
	language.Indonesian: indonesian,
}

// localizer picks UI copy from Accept-Language, falling back to the
// configured default.
type localizer struct {
	supported []language.Tag
	matcher   language.Matcher
}

func newLocalizer(defaultLang string) *localizer {
	fallback := language.English
	if tag, err := language.Parse(defaultLang); err == nil {
		base, _ := tag.Base()
		if idBase, _ := language.Indonesian.Base(); base == idBase {
			fallback = language.Indonesian
		}
	}
	supported := []language.Tag{fallback}
	for tag := range catalog {
		if tag != fallback {
			supported = append(supported, tag)
		}
	}
	return &localizer{supported: supported, matcher: language.NewMatcher(supported)}
}

func (l *localizer) negotiate(r *http.Request) language.Tag {
	_, index := language.MatchStrings(l.matcher, r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
	return l.supported[index]
}

func messagesFor(tag language.Tag) *Messages {
	if m, ok := catalog[tag]; ok {
		return m
	}
	return english
}

func formatScore(tag language.Tag, score float64) string {
	return message.NewPrinter(tag).Sprintf("%.2f", score)
}

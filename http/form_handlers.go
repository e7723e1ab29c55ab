package http

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"studentscore/chart"
	"studentscore/db"
	"studentscore/ml"
	"studentscore/monitoring"
	"studentscore/predictor"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// formValues echoes what the user typed back into the form.
type formValues struct {
	Name          string
	StudyHours    string
	AttendancePct string
	MentalHealth  string
	SleepHours    string
	PartTimeJob   bool
}

type adviceLine struct {
	Text     string
	Positive bool
}

type resultView struct {
	Name         string
	ScoreText    string
	TierLabel    string
	Tone         predictor.Tone
	UsedFallback bool
	Advice       []adviceLine
	RadarSVG     template.HTML
}

type pageData struct {
	Lang              string
	T                 *Messages
	Form              formValues
	Error             string
	Result            *resultView
	ImportanceSVG     template.HTML
	ImportanceCaption string
	ImportanceNote    string
}

func formFromInput(in predictor.Input) formValues {
	return formValues{
		Name:          in.Name,
		StudyHours:    strconv.FormatFloat(in.StudyHours, 'f', -1, 64),
		AttendancePct: strconv.FormatFloat(in.AttendancePct, 'f', -1, 64),
		MentalHealth:  strconv.Itoa(in.MentalHealth),
		SleepHours:    strconv.FormatFloat(in.SleepHours, 'f', -1, 64),
		PartTimeJob:   in.PartTimeJob,
	}
}

func (h *handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := h.newPage(h.i18n.negotiate(r), formFromInput(predictor.DefaultInput()))
	h.render(w, http.StatusOK, data)
}

func (h *handlers) handleSubmit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	tag := h.i18n.negotiate(r)

	if err := r.ParseForm(); err != nil {
		h.renderFailure(w, r, tag, formValues{}, http.StatusBadRequest, err)
		return
	}
	form := formValues{
		Name:          r.PostFormValue("name"),
		StudyHours:    r.PostFormValue("study_hours"),
		AttendancePct: r.PostFormValue("attendance"),
		MentalHealth:  r.PostFormValue("mental_health"),
		SleepHours:    r.PostFormValue("sleep_hours"),
		PartTimeJob:   ml.ParsePartTimeJob(r.PostFormValue("part_time_job")),
	}
	in, err := parseForm(form)
	if err != nil {
		h.renderFailure(w, r, tag, form, http.StatusBadRequest, err)
		return
	}
	if h.Predictor == nil {
		h.renderFailure(w, r, tag, form, http.StatusInternalServerError, fmt.Errorf("predictor not configured"))
		return
	}

	result, err := h.Predictor.Predict(in)
	if err != nil {
		code := http.StatusInternalServerError
		if in.Validate() != nil {
			code = http.StatusBadRequest
		}
		h.renderFailure(w, r, tag, form, code, err)
		return
	}

	data := h.newPage(tag, form)
	view, err := h.buildResultView(tag, data.T, result)
	if err != nil {
		h.renderFailure(w, r, tag, form, http.StatusInternalServerError, err)
		return
	}
	data.Result = view

	h.Metrics.RecordPrediction(result.Score, string(result.Tier), result.UsedFallback, time.Since(start))
	h.record(r.Context(), result)
	h.render(w, http.StatusOK, data)
}

// parseForm converts the raw fields; range checks are left to the predictor.
func parseForm(form formValues) (predictor.Input, error) {
	in := predictor.Input{Name: form.Name, PartTimeJob: form.PartTimeJob}
	var err error
	if in.StudyHours, err = parseFloatField("study_hours", form.StudyHours); err != nil {
		return in, err
	}
	if in.AttendancePct, err = parseFloatField("attendance", form.AttendancePct); err != nil {
		return in, err
	}
	if in.SleepHours, err = parseFloatField("sleep_hours", form.SleepHours); err != nil {
		return in, err
	}
	mental, err := strconv.Atoi(strings.TrimSpace(form.MentalHealth))
	if err != nil {
		return in, fmt.Errorf("mental_health must be an integer")
	}
	in.MentalHealth = mental
	return in, nil
}

func parseFloatField(field, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", field)
	}
	return v, nil
}

// newPage fills the parts shared by every render, including the importance
// chart which depends only on the loaded model.
func (h *handlers) newPage(tag language.Tag, form formValues) pageData {
	t := messagesFor(tag)
	data := pageData{Lang: tag.String(), T: t, Form: form}
	if h.Predictor == nil || !h.Predictor.ModelLoaded() {
		data.ImportanceNote = t.NoModel
		return data
	}
	importance := h.Predictor.Importance()
	if importance == nil {
		data.ImportanceNote = t.NotLinear
		return data
	}
	svg, err := importanceChart(t, importance)
	if err != nil {
		h.Logger.Warn("render importance chart", zap.Error(err))
		data.ImportanceNote = t.NotLinear
		return data
	}
	data.ImportanceSVG = svg
	data.ImportanceCaption = fmt.Sprintf(t.MostInfluential, featureLabel(t, importance.MostInfluential))
	return data
}

func (h *handlers) buildResultView(tag language.Tag, t *Messages, result *predictor.Result) (*resultView, error) {
	var buf bytes.Buffer
	err := chart.Radar(&buf, t.AxisLabels, []chart.Series{
		{Name: t.You, Values: result.Radar.Values(), Color: chart.UserColor},
		{Name: t.Ideal, Values: result.Ideal.Values(), Color: chart.IdealColor},
	})
	if err != nil {
		return nil, fmt.Errorf("render radar chart: %w", err)
	}

	advice := make([]adviceLine, 0, len(result.Advice))
	for _, a := range result.Advice {
		advice = append(advice, adviceLine{Text: t.Advice[a.Kind], Positive: a.Positive})
	}
	return &resultView{
		Name:         result.Input.Name,
		ScoreText:    formatScore(tag, result.Score),
		TierLabel:    t.Tiers[result.Tier],
		Tone:         result.Tier.Tone(),
		UsedFallback: result.UsedFallback,
		Advice:       advice,
		RadarSVG:     template.HTML(buf.String()),
	}, nil
}

// importanceChart draws the strongest coefficient on top.
func importanceChart(t *Messages, importance *predictor.Importance) (template.HTML, error) {
	bars := make([]chart.Bar, 0, len(importance.Weights))
	for i := len(importance.Weights) - 1; i >= 0; i-- {
		w := importance.Weights[i]
		bars = append(bars, chart.Bar{Label: featureLabel(t, w.Feature), Value: w.Coefficient})
	}
	var buf bytes.Buffer
	if err := chart.HorizontalBars(&buf, bars); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func featureLabel(t *Messages, feature string) string {
	if label, ok := t.FeatureLabels[feature]; ok {
		return label
	}
	return feature
}

// record persists and broadcasts a prediction. Failures are logged only so
// the user still sees their result.
func (h *handlers) record(ctx context.Context, result *predictor.Result) {
	if h.Store != nil {
		_, err := h.Store.SavePrediction(ctx, db.PredictionRecord{
			Name:          result.Input.Name,
			StudyHours:    result.Input.StudyHours,
			AttendancePct: result.Input.AttendancePct,
			MentalHealth:  result.Input.MentalHealth,
			SleepHours:    result.Input.SleepHours,
			PartTimeJob:   result.Input.PartTimeJob,
			Score:         result.Score,
			Tier:          string(result.Tier),
			UsedFallback:  result.UsedFallback,
		})
		if err != nil {
			h.Logger.Error("save prediction", zap.Error(err))
		}
	}
	if h.Hub != nil {
		if err := h.Hub.Publish(monitoring.PredictionEvent, result); err != nil {
			h.Logger.Error("publish prediction", zap.Error(err))
		}
	}
}

func (h *handlers) renderFailure(w http.ResponseWriter, r *http.Request, tag language.Tag, form formValues, code int, err error) {
	h.Metrics.RecordFailure()
	h.Logger.Warn("form submission failed",
		zap.String("request_id", GetRequestID(r.Context())),
		zap.Int("status", code),
		zap.Error(err),
	)
	data := h.newPage(tag, form)
	data.Error = err.Error()
	h.render(w, code, data)
}

func (h *handlers) render(w http.ResponseWriter, code int, data pageData) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		h.Logger.Error("render page", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	w.Write(buf.Bytes())
}

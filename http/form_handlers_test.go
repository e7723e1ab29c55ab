package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"studentscore/db"
	"studentscore/ml"
	"studentscore/monitoring"
	"studentscore/predictor"
)

func newTestService(t *testing.T, artifact *ml.Artifact) *predictor.Service {
	t.Helper()
	svc, err := predictor.NewService(artifact, 16, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func missingArtifact(t *testing.T) *ml.Artifact {
	return ml.NewArtifact(filepath.Join(t.TempDir(), "best_model.json"))
}

func linearArtifact(t *testing.T) *ml.Artifact {
	t.Helper()
	model, err := ml.NewLinearRegression(0, []float64{2, 0.5, 1.5, 1, -5})
	if err != nil {
		t.Fatalf("linear: %v", err)
	}
	return ml.NewStaticArtifact(model)
}

func formBody(study, attendance, mental, sleep, job string) string {
	return url.Values{
		"name":          {"Ayu"},
		"study_hours":   {study},
		"attendance":    {attendance},
		"mental_health": {mental},
		"sleep_hours":   {sleep},
		"part_time_job": {job},
	}.Encode()
}

func submit(t *testing.T, mux http.Handler, target, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestHandleIndex(t *testing.T) {
	artifact := linearArtifact(t)
	mux := NewUIMux(Dependencies{Artifact: artifact, Predictor: newTestService(t, artifact)})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{`name="study_hours"`, `name="attendance"`, `name="mental_health"`, `name="sleep_hours"`, `name="part_time_job"`, "<svg", "Most influential factor: Study hours"} {
		if !strings.Contains(body, want) {
			t.Fatalf("index page missing %q", want)
		}
	}
	if strings.Contains(body, `class="banner`) {
		t.Fatalf("index page should not show a result before submission")
	}
}

func TestHandleIndexWithoutModel(t *testing.T) {
	artifact := missingArtifact(t)
	mux := NewUIMux(Dependencies{Artifact: artifact, Predictor: newTestService(t, artifact)})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if !strings.Contains(w.Body.String(), english.NoModel) {
		t.Fatalf("expected no-model placeholder")
	}
}

func TestHandleIndexWithOpaqueModel(t *testing.T) {
	artifact := ml.NewStaticArtifact(&fakeModel{score: 50})
	mux := NewUIMux(Dependencies{Artifact: artifact, Predictor: newTestService(t, artifact)})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if !strings.Contains(w.Body.String(), english.NotLinear) {
		t.Fatalf("expected not-linear placeholder")
	}
}

func TestHandleSubmitFallback(t *testing.T) {
	artifact := missingArtifact(t)
	metrics := monitoring.NewMetrics()
	mux := NewUIMux(Dependencies{Artifact: artifact, Predictor: newTestService(t, artifact), Metrics: metrics})

	// 2*3 + 0.5*90 + 1.5*7 + 7 = 68.5
	w := submit(t, mux, "/", formBody("3", "90", "7", "7", "no"), nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	for _, want := range []string{"68.50", "Needs attention", "banner warning", "built-in estimate", "Ayu"} {
		if !strings.Contains(body, want) {
			t.Fatalf("result page missing %q", want)
		}
	}
	if snap := metrics.Snapshot(); snap.Predictions != 1 || snap.Fallbacks != 1 {
		t.Fatalf("unexpected metrics: %+v", snap)
	}
}

func TestHandleSubmitWithModel(t *testing.T) {
	artifact := ml.NewStaticArtifact(&fakeModel{score: 91})
	mux := NewUIMux(Dependencies{Artifact: artifact, Predictor: newTestService(t, artifact)})

	w := submit(t, mux, "/", formBody("6", "95", "8", "8", "no"), nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"91.00", "Excellent", "banner success", english.Advice[predictor.AdvicePraise], "Ideal"} {
		if !strings.Contains(body, want) {
			t.Fatalf("result page missing %q", want)
		}
	}
	if strings.Contains(body, "built-in estimate") {
		t.Fatalf("fallback notice shown for a model prediction")
	}
}

func TestHandleSubmitClampsAndAdvises(t *testing.T) {
	artifact := ml.NewStaticArtifact(&fakeModel{score: -12})
	mux := NewUIMux(Dependencies{Artifact: artifact, Predictor: newTestService(t, artifact)})

	w := submit(t, mux, "/", formBody("1", "50", "3", "4", "yes"), nil)

	body := w.Body.String()
	if !strings.Contains(body, "0.00") {
		t.Fatalf("expected clamped score in page")
	}
	for _, kind := range []predictor.AdviceKind{predictor.AdviceSleep, predictor.AdviceStudy, predictor.AdviceAttendance, predictor.AdviceMentalHealth} {
		if !strings.Contains(body, english.Advice[kind]) {
			t.Fatalf("missing %s advice", kind)
		}
	}
}

func TestHandleSubmitValidation(t *testing.T) {
	artifact := missingArtifact(t)
	mux := NewUIMux(Dependencies{Artifact: artifact, Predictor: newTestService(t, artifact)})

	tests := []struct {
		name string
		body string
	}{
		{name: "not a number", body: formBody("abc", "90", "7", "7", "no")},
		{name: "attendance out of range", body: formBody("3", "140", "7", "7", "no")},
		{name: "mental health below range", body: formBody("3", "90", "0", "7", "no")},
		{name: "fractional mental health", body: formBody("3", "90", "7.5", "7", "no")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := submit(t, mux, "/", tt.body, nil)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			if !strings.Contains(w.Body.String(), `role="alert"`) {
				t.Fatalf("expected error message in page")
			}
		})
	}
}

func TestHandleSubmitModelError(t *testing.T) {
	artifact := ml.NewStaticArtifact(&fakeModel{err: context.DeadlineExceeded})
	mux := NewUIMux(Dependencies{Artifact: artifact, Predictor: newTestService(t, artifact)})

	w := submit(t, mux, "/", formBody("3", "90", "7", "7", "no"), nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestHandleSubmitIndonesian(t *testing.T) {
	artifact := missingArtifact(t)
	mux := NewUIMux(Dependencies{Artifact: artifact, Predictor: newTestService(t, artifact)})

	w := submit(t, mux, "/", formBody("1", "90", "7", "7", "no"), map[string]string{"Accept-Language": "id-ID,id;q=0.9"})
	body := w.Body.String()
	for _, want := range []string{`lang="id"`, "Prediksi Nilai Siswa untuk", indonesian.Advice[predictor.AdviceStudy], "Kehadiran"} {
		if !strings.Contains(body, want) {
			t.Fatalf("indonesian page missing %q", want)
		}
	}

	w = submit(t, mux, "/?lang=en", formBody("1", "90", "7", "7", "no"), map[string]string{"Accept-Language": "id"})
	if !strings.Contains(w.Body.String(), "Predicted score for") {
		t.Fatalf("lang query should override Accept-Language")
	}
}

func TestSubmissionsAreStoredAndServed(t *testing.T) {
	store, err := db.Open(filepath.Join(t.TempDir(), "predictions.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	artifact := missingArtifact(t)
	mux := NewUIMux(Dependencies{Artifact: artifact, Predictor: newTestService(t, artifact), Store: store})

	submit(t, mux, "/", formBody("3", "90", "7", "7", "no"), nil)
	submit(t, mux, "/", formBody("5", "95", "8", "8", "yes"), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/history?limit=1", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var payload struct {
		Predictions []db.PredictionRecord `json:"predictions"`
		Count       int                   `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if payload.Count != 1 || !payload.Predictions[0].PartTimeJob || payload.Predictions[0].Name != "Ayu" {
		t.Fatalf("unexpected history: %+v", payload)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/history?limit=zero", nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", w.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	tests := []struct {
		name     string
		artifact *ml.Artifact
		loaded   bool
	}{
		{name: "loaded", artifact: linearArtifact(t), loaded: true},
		{name: "missing", artifact: missingArtifact(t), loaded: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := NewAPIMux(Dependencies{Artifact: tt.artifact})
			req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			payload := decodeBody(t, w)
			if payload["status"] != "ok" || payload["model_loaded"] != tt.loaded {
				t.Fatalf("unexpected health: %v", payload)
			}
		})
	}
}

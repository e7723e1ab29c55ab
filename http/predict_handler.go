package http

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const dataKey = "data"

// handlePredict forwards the caller's matrix to the model untouched and
// returns the first prediction. Output is not clamped here, unlike the form.
func (h *handlers) handlePredict(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var payload map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.predictFailed(w, r, http.StatusInternalServerError, fmt.Errorf("decode request body: %w", err))
		return
	}
	raw, ok := payload[dataKey]
	if !ok {
		h.predictFailed(w, r, http.StatusBadRequest, fmt.Errorf("JSON payload must contain a %q key", dataKey))
		return
	}

	var rows [][]float64
	if err := json.Unmarshal(raw, &rows); err != nil {
		h.predictFailed(w, r, http.StatusInternalServerError, fmt.Errorf("decode %q: %w", dataKey, err))
		return
	}

	if h.Artifact == nil {
		h.predictFailed(w, r, http.StatusInternalServerError, fmt.Errorf("model not configured"))
		return
	}
	model, err := h.Artifact.Load()
	if err != nil {
		h.predictFailed(w, r, http.StatusInternalServerError, fmt.Errorf("model not loaded: %w", err))
		return
	}
	predictions, err := model.Predict(rows)
	if err != nil {
		h.predictFailed(w, r, http.StatusInternalServerError, err)
		return
	}
	if len(predictions) == 0 {
		h.predictFailed(w, r, http.StatusInternalServerError, fmt.Errorf("model returned no predictions"))
		return
	}
	prediction := predictions[0]
	if math.IsNaN(prediction) || math.IsInf(prediction, 0) {
		h.predictFailed(w, r, http.StatusInternalServerError, fmt.Errorf("prediction is not a finite number"))
		return
	}

	h.Metrics.RecordPrediction(prediction, "", false, time.Since(start))
	writeJSON(w, http.StatusOK, map[string]float64{"prediction": prediction})
}

func (h *handlers) predictFailed(w http.ResponseWriter, r *http.Request, code int, err error) {
	h.Metrics.RecordFailure()
	h.Logger.Warn("prediction failed",
		zap.String("request_id", GetRequestID(r.Context())),
		zap.Int("status", code),
		zap.Error(err),
	)
	writeError(w, code, err.Error())
}

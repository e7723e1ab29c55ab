package http

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"studentscore/db"
	"studentscore/ml"
	"studentscore/monitoring"
	"studentscore/predictor"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 500
)

// Dependencies are shared by both front-ends. Store and Hub are optional.
type Dependencies struct {
	Artifact  *ml.Artifact
	Predictor *predictor.Service
	Store     *db.Store
	Hub       *monitoring.Hub
	Metrics   *monitoring.Metrics
	Logger    *zap.Logger
	Language  string
}

type handlers struct {
	Dependencies
	i18n *localizer
}

func newHandlers(deps Dependencies) *handlers {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Metrics == nil {
		deps.Metrics = monitoring.NewMetrics()
	}
	return &handlers{Dependencies: deps, i18n: newLocalizer(deps.Language)}
}

// NewUIMux serves the form dashboard and its JSON side routes.
func NewUIMux(deps Dependencies) *http.ServeMux {
	h := newHandlers(deps)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("POST /{$}", h.handleSubmit)
	registerCommon(mux, h)
	if h.Store != nil {
		mux.HandleFunc("GET /api/history", h.handleHistory)
	}
	if h.Hub != nil {
		mux.HandleFunc("GET /ws/predictions", h.Hub.HandleWebSocket)
	}
	return mux
}

// NewAPIMux serves the raw prediction endpoint.
func NewAPIMux(deps Dependencies) *http.ServeMux {
	h := newHandlers(deps)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /predict", h.handlePredict)
	registerCommon(mux, h)
	return mux
}

func registerCommon(mux *http.ServeMux, h *handlers) {
	mux.HandleFunc("GET /api/health", h.handleHealth)
	mux.HandleFunc("GET /api/metrics", h.handleMetrics)
}

func (h *handlers) modelLoaded() bool {
	if h.Artifact == nil {
		return false
	}
	_, ok := h.Artifact.Model()
	return ok
}

func (h *handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "ok",
		"model_loaded": h.modelLoaded(),
	})
}

func (h *handlers) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Metrics.Snapshot())
}

func (h *handlers) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(l, maxHistoryLimit)
	}

	records, err := h.Store.RecentPredictions(r.Context(), limit)
	if err != nil {
		h.Logger.Error("query history", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"predictions": records,
		"count":       len(records),
	})
}

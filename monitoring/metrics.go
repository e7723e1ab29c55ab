package monitoring

import (
	"sync"
	"time"
)

// Metrics counts predictions served by both front-ends.
type Metrics struct {
	mu sync.RWMutex

	startTime     time.Time
	predictions   int64
	fallbacks     int64
	failures      int64
	totalDuration time.Duration
	lastScore     float64
	lastAt        time.Time
	tiers         map[string]int64
}

type MetricsSnapshot struct {
	Uptime           time.Duration    `json:"uptime"`
	Predictions      int64            `json:"predictions"`
	Fallbacks        int64            `json:"fallbacks"`
	Failures         int64            `json:"failures"`
	AvgLatencyMillis float64          `json:"avg_latency_ms"`
	LastScore        float64          `json:"last_score"`
	LastPredictionAt time.Time        `json:"last_prediction_at,omitempty"`
	Tiers            map[string]int64 `json:"tiers"`
}

func NewMetrics() *Metrics {
	return &Metrics{
		startTime: time.Now(),
		tiers:     make(map[string]int64),
	}
}

// RecordPrediction counts a successful prediction. tier is empty for
// endpoint predictions, which are not tiered.
func (m *Metrics) RecordPrediction(score float64, tier string, fallback bool, took time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.predictions++
	if fallback {
		m.fallbacks++
	}
	if tier != "" {
		m.tiers[tier]++
	}
	m.totalDuration += took
	m.lastScore = score
	m.lastAt = time.Now()
}

func (m *Metrics) RecordFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures++
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tiers := make(map[string]int64, len(m.tiers))
	for k, v := range m.tiers {
		tiers[k] = v
	}
	var avg float64
	if m.predictions > 0 {
		avg = float64(m.totalDuration.Microseconds()) / float64(m.predictions) / 1000
	}
	return MetricsSnapshot{
		Uptime:           time.Since(m.startTime),
		Predictions:      m.predictions,
		Fallbacks:        m.fallbacks,
		Failures:         m.failures,
		AvgLatencyMillis: avg,
		LastScore:        m.lastScore,
		LastPredictionAt: m.lastAt,
		Tiers:            tiers,
	}
}

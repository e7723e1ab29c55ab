package predictor

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"studentscore/ml"
)

// Result is everything the dashboard renders for one submission.
type Result struct {
	Input        Input        `json:"input"`
	RawScore     float64      `json:"raw_score"`
	Score        float64      `json:"score"`
	Tier         Tier         `json:"tier"`
	Advice       []Advice     `json:"advice"`
	Radar        RadarProfile `json:"radar"`
	Ideal        RadarProfile `json:"ideal"`
	Importance   *Importance  `json:"importance,omitempty"`
	UsedFallback bool         `json:"used_fallback"`
}

type Service struct {
	artifact *ml.Artifact
	cache    *lru.Cache[ml.FeatureVector, float64]
	logger   *zap.Logger
}

// NewService builds a predictor over the artefact. A cacheSize of zero
// disables memoization of model outputs.
func NewService(artifact *ml.Artifact, cacheSize int, logger *zap.Logger) (*Service, error) {
	if artifact == nil {
		return nil, fmt.Errorf("artifact is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{artifact: artifact, logger: logger}
	if cacheSize > 0 {
		cache, err := lru.New[ml.FeatureVector, float64](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("create prediction cache: %w", err)
		}
		s.cache = cache
	}
	return s, nil
}

// ModelLoaded reports whether predictions come from the artefact.
func (s *Service) ModelLoaded() bool {
	_, ok := s.artifact.Model()
	return ok
}

// Importance is nil when the model is absent or not linear.
func (s *Service) Importance() *Importance {
	model, ok := s.artifact.Model()
	if !ok {
		return nil
	}
	return ImportanceOf(model)
}

func (s *Service) Predict(in Input) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		in.Name = DefaultName
	}

	features := in.Features()
	raw, fallback, err := s.score(features)
	if err != nil {
		return nil, err
	}
	score := Clamp(raw)

	result := &Result{
		Input:        in,
		RawScore:     raw,
		Score:        score,
		Tier:         Classify(score),
		Advice:       BuildAdvice(in, score),
		Radar:        NormalizeProfile(in),
		Ideal:        IdealProfile(),
		Importance:   s.Importance(),
		UsedFallback: fallback,
	}
	s.logger.Debug("prediction",
		zap.Float64("raw_score", raw),
		zap.Float64("score", score),
		zap.String("tier", string(result.Tier)),
		zap.Bool("fallback", fallback),
	)
	return result, nil
}

func (s *Service) score(features ml.FeatureVector) (float64, bool, error) {
	model, ok := s.artifact.Model()
	if !ok {
		return FallbackScore(features), true, nil
	}
	if s.cache != nil {
		if cached, hit := s.cache.Get(features); hit {
			return cached, false, nil
		}
	}
	out, err := model.Predict([][]float64{features.Values()})
	if err != nil {
		return 0, false, fmt.Errorf("model prediction: %w", err)
	}
	if len(out) == 0 {
		return 0, false, fmt.Errorf("model prediction: empty output")
	}
	if s.cache != nil {
		s.cache.Add(features, out[0])
	}
	return out[0], false, nil
}

package ml

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

const (
	ModelTypeLinear           = "linear"
	ModelTypeGradientBoosting = "gradient_boosting"
)

// artifactFile is the on-disk JSON layout of an exported model.
type artifactFile struct {
	Type     string   `json:"type"`
	Features []string `json:"features"`

	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`

	Init         float64      `json:"init"`
	LearningRate float64      `json:"learning_rate"`
	Trees        [][]TreeNode `json:"trees"`
}

func LoadModel(path string) (Regressor, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file artifactFile
	if err := json.Unmarshal(payload, &file); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := checkFeatureNames(file.Features); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	switch file.Type {
	case ModelTypeLinear:
		if len(file.Coefficients) != FeatureCount {
			return nil, fmt.Errorf("%s: expected %d coefficients, got %d", path, FeatureCount, len(file.Coefficients))
		}
		return NewLinearRegression(file.Intercept, file.Coefficients)
	case ModelTypeGradientBoosting:
		trees := make([]*RegressionTree, len(file.Trees))
		for i, nodes := range file.Trees {
			tree, err := NewRegressionTree(nodes)
			if err != nil {
				return nil, fmt.Errorf("%s: tree %d: %w", path, i, err)
			}
			trees[i] = tree
		}
		return NewGradientBoosting(file.Init, file.LearningRate, FeatureCount, trees)
	default:
		return nil, fmt.Errorf("%s: unsupported model type %q", path, file.Type)
	}
}

// checkFeatureNames accepts artefacts that omit the feature list; a listed
// order must match FeatureNames exactly.
func checkFeatureNames(names []string) error {
	if len(names) == 0 {
		return nil
	}
	expected := FeatureNames()
	if len(names) != len(expected) {
		return fmt.Errorf("artefact lists %d features, expected %d", len(names), len(expected))
	}
	for i, name := range names {
		if name != expected[i] {
			return fmt.Errorf("feature %d is %q, expected %q", i, name, expected[i])
		}
	}
	return nil
}

// Artifact loads a model from disk on first use and caches the outcome for the
// lifetime of the value, including a failed load.
type Artifact struct {
	path   string
	loader func(string) (Regressor, error)

	once  sync.Once
	model Regressor
	err   error
}

func NewArtifact(path string) *Artifact {
	return &Artifact{path: path, loader: LoadModel}
}

// NewStaticArtifact wraps an already restored model.
func NewStaticArtifact(model Regressor) *Artifact {
	a := &Artifact{model: model}
	a.once.Do(func() {})
	return a
}

func (a *Artifact) Path() string {
	return a.path
}

func (a *Artifact) Load() (Regressor, error) {
	a.once.Do(func() {
		a.model, a.err = a.loader(a.path)
	})
	return a.model, a.err
}

// Model returns the restored model, or false when loading failed.
func (a *Artifact) Model() (Regressor, bool) {
	model, err := a.Load()
	if err != nil || model == nil {
		return nil, false
	}
	return model, true
}

package ml

import (
	"errors"
	"fmt"
)

// GradientBoosting is an additive ensemble of regression trees:
// init + learningRate * sum(tree(x)).
type GradientBoosting struct {
	init         float64
	learningRate float64
	numFeatures  int
	trees        []*RegressionTree
}

func NewGradientBoosting(init, learningRate float64, numFeatures int, trees []*RegressionTree) (*GradientBoosting, error) {
	if len(trees) == 0 {
		return nil, errors.New("ensemble has no trees")
	}
	if learningRate <= 0 {
		return nil, fmt.Errorf("learning rate must be positive, got %g", learningRate)
	}
	if numFeatures <= 0 {
		return nil, errors.New("feature count must be positive")
	}
	for i, tree := range trees {
		if tree.maxFeatureIdx() >= numFeatures {
			return nil, fmt.Errorf("tree %d splits on feature %d of %d", i, tree.maxFeatureIdx(), numFeatures)
		}
	}
	return &GradientBoosting{
		init:         init,
		learningRate: learningRate,
		numFeatures:  numFeatures,
		trees:        trees,
	}, nil
}

func (gb *GradientBoosting) Predict(rows [][]float64) ([]float64, error) {
	if err := checkRows(rows, gb.numFeatures); err != nil {
		return nil, err
	}
	out := make([]float64, len(rows))
	for i, row := range rows {
		sum := 0.0
		for _, tree := range gb.trees {
			value, err := tree.Evaluate(row)
			if err != nil {
				return nil, err
			}
			sum += value
		}
		out[i] = gb.init + gb.learningRate*sum
	}
	return out, nil
}

func (gb *GradientBoosting) NumFeatures() int {
	return gb.numFeatures
}

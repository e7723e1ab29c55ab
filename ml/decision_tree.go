package ml

import (
	"errors"
	"fmt"
)

// RegressionTree is a fitted tree stored as a flat node array; node 0 is the root.
type RegressionTree struct {
	nodes []TreeNode
}

type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	Value      float64 `json:"value"`
	IsLeaf     bool    `json:"is_leaf"`
}

func NewRegressionTree(nodes []TreeNode) (*RegressionTree, error) {
	if len(nodes) == 0 {
		return nil, errors.New("tree has no nodes")
	}
	for i, node := range nodes {
		if node.IsLeaf {
			continue
		}
		if node.LeftChild <= i || node.LeftChild >= len(nodes) || node.RightChild <= i || node.RightChild >= len(nodes) {
			return nil, fmt.Errorf("node %d: invalid children %d/%d", i, node.LeftChild, node.RightChild)
		}
		if node.FeatureIdx < 0 {
			return nil, fmt.Errorf("node %d: negative feature index", i)
		}
	}
	return &RegressionTree{nodes: append([]TreeNode(nil), nodes...)}, nil
}

// Evaluate walks the tree for a single row.
func (rt *RegressionTree) Evaluate(features []float64) (float64, error) {
	idx := 0
	for {
		node := rt.nodes[idx]
		if node.IsLeaf {
			return node.Value, nil
		}
		if node.FeatureIdx >= len(features) {
			return 0, errors.New("feature index out of range")
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
	}
}

// maxFeatureIdx is the highest feature index any split reads, or -1 for a stump.
func (rt *RegressionTree) maxFeatureIdx() int {
	highest := -1
	for _, node := range rt.nodes {
		if !node.IsLeaf && node.FeatureIdx > highest {
			highest = node.FeatureIdx
		}
	}
	return highest
}

package ml

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// LinearRegression predicts intercept + coefficients·x.
type LinearRegression struct {
	intercept    float64
	coefficients *mat.VecDense
}

func NewLinearRegression(intercept float64, coefficients []float64) (*LinearRegression, error) {
	if len(coefficients) == 0 {
		return nil, errors.New("coefficients empty")
	}
	weights := append([]float64(nil), coefficients...)
	return &LinearRegression{
		intercept:    intercept,
		coefficients: mat.NewVecDense(len(weights), weights),
	}, nil
}

func (lr *LinearRegression) Predict(rows [][]float64) ([]float64, error) {
	if err := checkRows(rows, lr.NumFeatures()); err != nil {
		return nil, err
	}
	out := make([]float64, len(rows))
	for i, row := range rows {
		x := mat.NewVecDense(len(row), append([]float64(nil), row...))
		out[i] = lr.intercept + mat.Dot(lr.coefficients, x)
	}
	return out, nil
}

func (lr *LinearRegression) NumFeatures() int {
	return lr.coefficients.Len()
}

func (lr *LinearRegression) Intercept() float64 {
	return lr.intercept
}

func (lr *LinearRegression) Coefficients() []float64 {
	out := make([]float64, lr.coefficients.Len())
	for i := range out {
		out[i] = lr.coefficients.AtVec(i)
	}
	return out
}

func checkRows(rows [][]float64, expected int) error {
	if len(rows) == 0 {
		return errors.New("input matrix is empty")
	}
	for _, row := range rows {
		if len(row) != expected {
			return fmt.Errorf("X has %d features, but model is expecting %d features as input", len(row), expected)
		}
	}
	return nil
}

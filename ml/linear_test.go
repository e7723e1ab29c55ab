package ml

import (
	"math"
	"testing"
)

func TestLinearRegressionPredict(t *testing.T) {
	model, err := NewLinearRegression(1, []float64{2, 0.5, 1.5, 1, -5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := model.Predict([][]float64{{3, 90, 7, 7, 0}, {3, 90, 7, 7, 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got[0]-69.5) > 1e-9 {
		t.Fatalf("expected 69.5, got %v", got[0])
	}
	if math.Abs(got[1]-64.5) > 1e-9 {
		t.Fatalf("expected 64.5, got %v", got[1])
	}

	linear, ok := AsLinear(model)
	if !ok {
		t.Fatal("expected linear capability")
	}
	coefficients := linear.Coefficients()
	coefficients[0] = 100
	if model.Coefficients()[0] != 2 {
		t.Fatal("coefficients must be returned as a copy")
	}
}

func TestLinearRegressionErrors(t *testing.T) {
	if _, err := NewLinearRegression(0, nil); err == nil {
		t.Fatal("expected error for empty coefficients")
	}
	model, _ := NewLinearRegression(0, []float64{1, 1, 1, 1, 1})
	if _, err := model.Predict(nil); err == nil {
		t.Fatal("expected error for empty matrix")
	}
	if _, err := model.Predict([][]float64{{1, 2, 3, 4, 5, 6}}); err == nil {
		t.Fatal("expected error for wide row")
	}
}

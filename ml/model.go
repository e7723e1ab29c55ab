package ml

// Regressor is a restored, read-only regression model.
type Regressor interface {
	// Predict scores every row of the matrix. Rows must be in FeatureNames order.
	Predict(rows [][]float64) ([]float64, error)
	NumFeatures() int
}

// LinearModel is implemented by regressors whose prediction is a weighted sum
// of the inputs. Coefficients are in FeatureNames order.
type LinearModel interface {
	Regressor
	Coefficients() []float64
}

// AsLinear reports whether the model exposes per-feature coefficients.
func AsLinear(model Regressor) (LinearModel, bool) {
	if model == nil {
		return nil, false
	}
	linear, ok := model.(LinearModel)
	return linear, ok
}

package predictor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentscore/ml"
)

func TestNormalizeProfile(t *testing.T) {
	profile := NormalizeProfile(Input{StudyHours: 10, AttendancePct: 50, MentalHealth: 7, SleepHours: 9})
	assert.Equal(t, 1.0, profile.Study)
	assert.Equal(t, 0.5, profile.Attendance)
	assert.InDelta(t, 0.7, profile.MentalHealth, 1e-9)
	assert.Equal(t, 1.0, profile.Sleep)

	capped := NormalizeProfile(Input{StudyHours: 12, SleepHours: 12, MentalHealth: 1})
	assert.Equal(t, 1.0, capped.Study)
	assert.Equal(t, 1.0, capped.Sleep)

	assert.Len(t, profile.Values(), len(RadarAxes))
	for _, v := range IdealProfile().Values() {
		assert.True(t, v >= 0 && v <= 1)
	}
}

func TestImportanceOfLinearModel(t *testing.T) {
	model, err := ml.NewLinearRegression(0, []float64{2, 0.5, 1.5, 1, -5})
	require.NoError(t, err)

	importance := ImportanceOf(model)
	require.NotNil(t, importance)
	require.Len(t, importance.Weights, ml.FeatureCount)

	for i := 1; i < len(importance.Weights); i++ {
		assert.LessOrEqual(t, importance.Weights[i-1].Coefficient, importance.Weights[i].Coefficient)
	}
	assert.Equal(t, "part_time_job", importance.Weights[0].Feature)
	assert.Equal(t, "study_hours", importance.MostInfluential)
}

type opaqueModel struct{}

func (opaqueModel) Predict(rows [][]float64) ([]float64, error) { return []float64{50}, nil }
func (opaqueModel) NumFeatures() int                             { return ml.FeatureCount }

func TestImportanceOfOpaqueModel(t *testing.T) {
	assert.Nil(t, ImportanceOf(opaqueModel{}))
	assert.Nil(t, ImportanceOf(nil))
}

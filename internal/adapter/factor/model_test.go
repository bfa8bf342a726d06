package factor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"reco-orchestrator/internal/adapter/factor"
	"reco-orchestrator/internal/domain"
)

func testParams() *domain.FactorModelParams {
	return &domain.FactorModelParams{
		GlobalMean: 3.5,
		MinRating:  1,
		MaxRating:  5,
		UserBias:   map[string]float64{"u1": 0.4},
		ItemBias:   map[string]float64{"i1": -0.2},
		UserFactors: map[string][]float64{
			"u1": {0.5, -0.5},
		},
		ItemFactors: map[string][]float64{
			"i1": {1.0, 0.5},
		},
	}
}

func TestModel_Predict_FullPair(t *testing.T) {
	model := factor.NewModel(testParams())

	// 3.5 + 0.4 - 0.2 + (0.5*1.0 - 0.5*0.5)
	assert.InDelta(t, 3.95, model.Predict("u1", "i1"), 1e-9)
}

func TestModel_Predict_UnknownUserFallsBackToItemBaseline(t *testing.T) {
	model := factor.NewModel(testParams())

	assert.InDelta(t, 3.3, model.Predict("stranger", "i1"), 1e-9)
}

func TestModel_Predict_FullyColdPairReturnsGlobalMean(t *testing.T) {
	model := factor.NewModel(testParams())

	assert.InDelta(t, 3.5, model.Predict("stranger", "nowhere"), 1e-9)
}

func TestModel_Predict_ClampsToRatingScale(t *testing.T) {
	params := testParams()
	params.UserBias["enthusiast"] = 10
	params.UserBias["hater"] = -10
	model := factor.NewModel(params)

	assert.Equal(t, 5.0, model.Predict("enthusiast", "i1"))
	assert.Equal(t, 1.0, model.Predict("hater", "i1"))
}

func TestModel_Predict_MismatchedFactorLengthsSkipDotProduct(t *testing.T) {
	params := testParams()
	params.UserFactors["u1"] = []float64{0.5}
	model := factor.NewModel(params)

	// Only the bias terms survive.
	assert.InDelta(t, 3.7, model.Predict("u1", "i1"), 1e-9)
}

package factor

import (
	"reco-orchestrator/internal/domain"
)

// Model is a read-only biased matrix-factorization predictor. It implements
// domain.RatingOracle over parameters trained elsewhere: prediction is
// global mean + user bias + item bias + dot(user factors, item factors),
// clamped to the rating scale. Unknown users or items simply lose the
// corresponding terms, so a fully cold pair degrades to the global mean.
type Model struct {
	params *domain.FactorModelParams
}

// NewModel wraps trained factor parameters as a rating oracle.
func NewModel(params *domain.FactorModelParams) *Model {
	return &Model{params: params}
}

// Predict estimates the user's rating for an item. It never fails: missing
// users, items or factors fall back to the baseline terms that are known.
func (m *Model) Predict(userID, itemID string) float64 {
	p := m.params
	estimate := p.GlobalMean

	if bias, ok := p.UserBias[userID]; ok {
		estimate += bias
	}
	if bias, ok := p.ItemBias[itemID]; ok {
		estimate += bias
	}

	userFactors, userOK := p.UserFactors[userID]
	itemFactors, itemOK := p.ItemFactors[itemID]
	if userOK && itemOK && len(userFactors) == len(itemFactors) {
		var dot float64
		for i := range userFactors {
			dot += userFactors[i] * itemFactors[i]
		}
		estimate += dot
	}

	if p.MaxRating > p.MinRating {
		if estimate < p.MinRating {
			estimate = p.MinRating
		}
		if estimate > p.MaxRating {
			estimate = p.MaxRating
		}
	}
	return estimate
}

// GlobalMean exposes the model baseline, used by callers that report why a
// cold-start user received uniform predictions.
func (m *Model) GlobalMean() float64 {
	return m.params.GlobalMean
}

var _ domain.RatingOracle = (*Model)(nil)

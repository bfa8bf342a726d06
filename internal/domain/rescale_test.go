package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRescaleRatings_MapsOntoTargetScale(t *testing.T) {
	ratings := []Rating{
		{UserID: "u1", ItemID: "a", Value: 1},
		{UserID: "u1", ItemID: "b", Value: 10},
		{UserID: "u2", ItemID: "a", Value: 5.5},
	}

	out := RescaleRatings(ratings, RatingScale{Min: 1, Max: 10}, RatingScale{Min: 1, Max: 5})

	assert.Equal(t, 1.0, out[0].Value)
	assert.Equal(t, 5.0, out[1].Value)
	assert.InDelta(t, 3.0, out[2].Value, 1e-9)
}

func TestRescaleRatings_ImplicitZeroPassesThrough(t *testing.T) {
	ratings := []Rating{
		{UserID: "u1", ItemID: "a", Value: 0},
		{UserID: "u1", ItemID: "b", Value: 10},
	}

	out := RescaleRatings(ratings, RatingScale{Min: 1, Max: 10}, RatingScale{Min: 1, Max: 5})

	assert.Equal(t, 0.0, out[0].Value, "implicit feedback must stay zero")
	assert.Equal(t, 5.0, out[1].Value)
}

func TestRescaleRatings_SameScaleIsIdentity(t *testing.T) {
	ratings := []Rating{{UserID: "u1", ItemID: "a", Value: 4}}

	out := RescaleRatings(ratings, RatingScale{Min: 1, Max: 5}, RatingScale{Min: 1, Max: 5})

	assert.Equal(t, ratings, out)
}

func TestRescaleRatings_DegenerateScaleLeavesValues(t *testing.T) {
	ratings := []Rating{{UserID: "u1", ItemID: "a", Value: 4}}

	out := RescaleRatings(ratings, RatingScale{Min: 3, Max: 3}, RatingScale{Min: 1, Max: 5})

	assert.Equal(t, 4.0, out[0].Value)
}

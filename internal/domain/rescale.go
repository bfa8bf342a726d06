package domain

// RatingScale describes the closed interval a rating dataset uses for
// explicit feedback.
type RatingScale struct {
	Min float64
	Max float64
}

// RescaleRatings linearly maps explicit rating values from one scale onto
// another. It is applied once when a dataset is loaded, never inside the
// scoring path. Implicit zero values mark unrated items and pass through
// unchanged, as do all values when either scale is degenerate.
func RescaleRatings(ratings []Rating, from, to RatingScale) []Rating {
	if from.Max <= from.Min || to.Max <= to.Min {
		return ratings
	}
	if from == to {
		return ratings
	}
	out := make([]Rating, len(ratings))
	for i, r := range ratings {
		out[i] = r
		if !r.IsExplicit() {
			continue
		}
		unit := (r.Value - from.Min) / (from.Max - from.Min)
		out[i].Value = to.Min + unit*(to.Max-to.Min)
	}
	return out
}

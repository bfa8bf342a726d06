package recommend

// MinMaxNormalize scales values into [0,1]. A constant or empty input is
// degenerate and normalizes to all zeros; the function never divides by
// zero and never produces NaN.
func MinMaxNormalize(values []float64) []float64 {
	normalized := make([]float64, len(values))
	if len(values) == 0 {
		return normalized
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max == min {
		return normalized
	}

	span := max - min
	for i, v := range values {
		normalized[i] = (v - min) / span
	}
	return normalized
}

package smoothing

import "math"

// DefaultBandwidth is the fixed Gaussian bandwidth, in weeks. Two weeks
// tracks the seasonal curve without flattening the peak; the upstream
// workflow does not tune this.
const DefaultBandwidth = 2.0

// FitKernel returns the Nadaraya-Watson estimate of y at each x using a
// Gaussian kernel with the given bandwidth. A bandwidth <= 0 falls back to
// DefaultBandwidth. Points with no kernel mass (cannot happen with a
// Gaussian unless the series is empty of finite weights) fall back to the
// observed value.
func FitKernel(x, y []float64, bandwidth float64) []float64 {
	if bandwidth <= 0 {
		bandwidth = DefaultBandwidth
	}

	fitted := make([]float64, len(x))
	for i, xi := range x {
		var num, den float64
		for j, xj := range x {
			d := (xi - xj) / bandwidth
			w := math.Exp(-0.5 * d * d)
			num += w * y[j]
			den += w
		}
		if den == 0 {
			fitted[i] = y[i]
			continue
		}
		fitted[i] = num / den
	}
	return fitted
}

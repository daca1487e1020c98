package smoothing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weeks(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i + 1)
	}
	return x
}

func TestFitSpline_ReproducesLinearData(t *testing.T) {
	// A straight line has zero roughness, so any penalty reproduces it.
	x := weeks(12)
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = 3*xi + 7
	}

	fitted, err := FitSpline(x, y)
	require.NoError(t, err)
	require.Len(t, fitted, len(x))
	for i := range fitted {
		assert.InDelta(t, y[i], fitted[i], 1e-6, "week %g", x[i])
	}
}

func TestFitSpline_ReproducesConstantData(t *testing.T) {
	x := weeks(8)
	y := []float64{40, 40, 40, 40, 40, 40, 40, 40}

	fitted, err := FitSpline(x, y)
	require.NoError(t, err)
	for i := range fitted {
		assert.InDelta(t, 40, fitted[i], 1e-6)
	}
}

func TestFitSpline_SmoothsNoise(t *testing.T) {
	// A seasonal curve with fixed sawtooth noise: the fit must be less
	// rough than the data while staying close to it.
	x := weeks(26)
	y := make([]float64, len(x))
	for i, xi := range x {
		noise := 6.0
		if i%2 == 0 {
			noise = -6.0
		}
		y[i] = 50*math.Exp(-math.Pow(xi-13, 2)/32) + noise
	}

	fitted, err := FitSpline(x, y)
	require.NoError(t, err)

	assert.Less(t, roughness(fitted), roughness(y))
	for i := range fitted {
		assert.InDelta(t, y[i], fitted[i], 20)
	}
}

func TestFitSpline_HandlesIrregularSpacing(t *testing.T) {
	// Reporting gaps leave missing weeks; abscissae are still increasing.
	x := []float64{1, 2, 3, 5, 6, 9, 10, 11}
	y := []float64{0, 4, 10, 35, 50, 30, 12, 5}

	fitted, err := FitSpline(x, y)
	require.NoError(t, err)
	for _, v := range fitted {
		assert.False(t, math.IsNaN(v))
		assert.False(t, math.IsInf(v, 0))
	}
}

func TestFitSpline_Errors(t *testing.T) {
	t.Run("too few points", func(t *testing.T) {
		_, err := FitSpline([]float64{1, 2}, []float64{5, 6})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least")
	})

	t.Run("mismatched lengths", func(t *testing.T) {
		_, err := FitSpline([]float64{1, 2, 3}, []float64{5, 6})
		require.Error(t, err)
	})

	t.Run("non-increasing abscissae", func(t *testing.T) {
		_, err := FitSpline([]float64{1, 3, 3, 4}, []float64{1, 2, 3, 4})
		require.ErrorIs(t, err, errNotIncreasing)
	})
}

func TestFitSpline_Deterministic(t *testing.T) {
	x := weeks(15)
	y := []float64{2, 5, 9, 20, 38, 61, 80, 94, 100, 88, 64, 41, 22, 10, 4}

	a, err := FitSpline(x, y)
	require.NoError(t, err)
	b, err := FitSpline(x, y)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

// roughness is the sum of squared second differences.
func roughness(v []float64) float64 {
	var sum float64
	for i := 1; i < len(v)-1; i++ {
		d := v[i+1] - 2*v[i] + v[i-1]
		sum += d * d
	}
	return sum
}

package smoothing

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// MinSplinePoints is the smallest series a smoothing spline can be fitted
// to: below three points there are no interior knots and the penalized
// system is empty.
const MinSplinePoints = 3

// GCV grid: log-spaced penalties from 1e-4 to 1e4. Series are short (one
// season, ~52 weeks) with x spaced in whole weeks and y on a 0-100 scale,
// so a fixed grid brackets the useful range.
const gcvGridPoints = 41

var errNotIncreasing = errors.New("smoothing: x must be strictly increasing")

// FitSpline fits a cubic smoothing spline to (x, y) and returns the fitted
// value at each x. The roughness penalty is selected automatically by
// minimizing the generalized cross-validation score over a log-spaced grid
// (Reinsch formulation: solve (R + λQᵀQ)γ = Qᵀy, fitted = y − λQγ).
func FitSpline(x, y []float64) ([]float64, error) {
	n := len(x)
	if len(y) != n {
		return nil, fmt.Errorf("smoothing: mismatched series lengths %d and %d", n, len(y))
	}
	if n < MinSplinePoints {
		return nil, fmt.Errorf("smoothing: need at least %d points, got %d", MinSplinePoints, n)
	}
	for i := 1; i < n; i++ {
		if x[i] <= x[i-1] {
			return nil, errNotIncreasing
		}
	}

	sys := newSplineSystem(x, y)

	var (
		best    []float64
		bestGCV = math.Inf(1)
	)
	for k := 0; k < gcvGridPoints; k++ {
		lambda := math.Pow(10, -4+8*float64(k)/float64(gcvGridPoints-1))
		fitted, gcv, ok := sys.fit(lambda)
		if ok && gcv < bestGCV {
			best, bestGCV = fitted, gcv
		}
	}
	if best == nil {
		return nil, errors.New("smoothing: penalized system not solvable at any grid penalty")
	}
	return best, nil
}

// splineSystem holds the penalty matrices shared across the GCV grid.
type splineSystem struct {
	n   int
	y   *mat.VecDense
	q   *mat.Dense    // n x (n-2) second-difference operator
	r   *mat.SymDense // (n-2) x (n-2) roughness Gram matrix
	qtq *mat.SymDense // QᵀQ
	qty *mat.VecDense // Qᵀy
}

func newSplineSystem(x, y []float64) *splineSystem {
	n := len(x)
	m := n - 2

	h := make([]float64, n-1)
	for i := range h {
		h[i] = x[i+1] - x[i]
	}

	q := mat.NewDense(n, m, nil)
	for j := 0; j < m; j++ {
		i := j + 1 // interior point this column penalizes
		q.Set(i-1, j, 1/h[i-1])
		q.Set(i, j, -1/h[i-1]-1/h[i])
		q.Set(i+1, j, 1/h[i])
	}

	r := mat.NewSymDense(m, nil)
	for j := 0; j < m; j++ {
		r.SetSym(j, j, (h[j]+h[j+1])/3)
		if j+1 < m {
			r.SetSym(j, j+1, h[j+1]/6)
		}
	}

	var dense mat.Dense
	dense.Mul(q.T(), q)
	qtq := mat.NewSymDense(m, nil)
	for i := 0; i < m; i++ {
		for j := i; j < m; j++ {
			qtq.SetSym(i, j, dense.At(i, j))
		}
	}

	yVec := mat.NewVecDense(n, nil)
	for i, v := range y {
		yVec.SetVec(i, v)
	}
	qty := mat.NewVecDense(m, nil)
	qty.MulVec(q.T(), yVec)

	return &splineSystem{n: n, y: yVec, q: q, r: r, qtq: qtq, qty: qty}
}

// fit solves the penalized system for one λ and scores it by GCV:
// n·RSS/(n − df)², where df = tr(S) = n − λ·tr((R+λQᵀQ)⁻¹QᵀQ).
func (s *splineSystem) fit(lambda float64) (fitted []float64, gcv float64, ok bool) {
	m := s.n - 2

	a := mat.NewSymDense(m, nil)
	for i := 0; i < m; i++ {
		for j := i; j < m; j++ {
			a.SetSym(i, j, s.r.At(i, j)+lambda*s.qtq.At(i, j))
		}
	}

	var chol mat.Cholesky
	if !chol.Factorize(a) {
		return nil, 0, false
	}

	gamma := mat.NewVecDense(m, nil)
	if err := chol.SolveVecTo(gamma, s.qty); err != nil {
		return nil, 0, false
	}

	var qGamma mat.VecDense
	qGamma.MulVec(s.q, gamma)

	fitted = make([]float64, s.n)
	var rss float64
	for i := 0; i < s.n; i++ {
		fitted[i] = s.y.AtVec(i) - lambda*qGamma.AtVec(i)
		resid := s.y.AtVec(i) - fitted[i]
		rss += resid * resid
	}

	var inv mat.SymDense
	if err := chol.InverseTo(&inv); err != nil {
		return nil, 0, false
	}
	var trace float64
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			trace += inv.At(i, j) * s.qtq.At(i, j)
		}
	}
	df := float64(s.n) - lambda*trace

	denom := float64(s.n) - df
	if denom < 1e-10 {
		return nil, 0, false
	}
	gcv = float64(s.n) * rss / (denom * denom)
	return fitted, gcv, true
}

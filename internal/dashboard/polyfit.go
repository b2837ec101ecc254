package dashboard

// trendLine fits a least-squares polynomial of the given degree to the
// points and evaluates it at the same x positions. Times are rescaled to
// [0,1] before fitting; epoch-nanosecond magnitudes make the normal
// equations hopelessly ill-conditioned otherwise.
func trendLine(points []Point, degree int) []Point {
	n := len(points)
	if n <= degree {
		return nil
	}

	t0 := points[0].Time
	span := points[n-1].Time.Sub(t0)
	if span <= 0 {
		return nil
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, p := range points {
		xs[i] = float64(p.Time.Sub(t0)) / float64(span)
		ys[i] = p.Value
	}

	coeffs, ok := polyfit(xs, ys, degree)
	if !ok {
		return nil
	}

	trend := make([]Point, n)
	for i, p := range points {
		trend[i] = Point{Time: p.Time, Value: polyeval(coeffs, xs[i])}
	}
	return trend
}

// polyfit solves the normal equations of a polynomial least-squares fit
// via Gaussian elimination with partial pivoting. coeffs[k] is the
// coefficient of x^k.
func polyfit(xs, ys []float64, degree int) ([]float64, bool) {
	m := degree + 1

	// Accumulate the moments sum(x^k) for k up to 2*degree and the
	// right-hand side sum(y*x^k).
	moments := make([]float64, 2*degree+1)
	rhs := make([]float64, m)
	for i, x := range xs {
		xp := 1.0
		for k := 0; k <= 2*degree; k++ {
			moments[k] += xp
			if k < m {
				rhs[k] += ys[i] * xp
			}
			xp *= x
		}
	}

	// Build the augmented normal matrix.
	a := make([][]float64, m)
	for r := 0; r < m; r++ {
		a[r] = make([]float64, m+1)
		for c := 0; c < m; c++ {
			a[r][c] = moments[r+c]
		}
		a[r][m] = rhs[r]
	}

	// Gaussian elimination with partial pivoting.
	for col := 0; col < m; col++ {
		pivot := col
		for r := col + 1; r < m; r++ {
			if abs(a[r][col]) > abs(a[pivot][col]) {
				pivot = r
			}
		}
		if abs(a[pivot][col]) < 1e-12 {
			return nil, false
		}
		a[col], a[pivot] = a[pivot], a[col]

		for r := col + 1; r < m; r++ {
			factor := a[r][col] / a[col][col]
			for c := col; c <= m; c++ {
				a[r][c] -= factor * a[col][c]
			}
		}
	}

	coeffs := make([]float64, m)
	for r := m - 1; r >= 0; r-- {
		sum := a[r][m]
		for c := r + 1; c < m; c++ {
			sum -= a[r][c] * coeffs[c]
		}
		coeffs[r] = sum / a[r][r]
	}
	return coeffs, true
}

func polyeval(coeffs []float64, x float64) float64 {
	v := 0.0
	for k := len(coeffs) - 1; k >= 0; k-- {
		v = v*x + coeffs[k]
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

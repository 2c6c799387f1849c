package core

import (
	"math"
	"sort"
)

// mean returns the arithmetic mean of values, or 0 for an empty slice.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// populationStdDev returns the population (not sample) standard
// deviation. The divisor is n rather than n-1 so that statistics stay
// byte-identical with what existing consumers expect.
func populationStdDev(values []float64, m float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sq float64
	for _, v := range values {
		d := v - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}

// nearestRankQuantile returns the q-quantile of sorted values using the
// nearest-rank rule index = floor(n*q). No interpolation happens; this
// replicates the estimator existing consumers were built against.
func nearestRankQuantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	idx := int(math.Floor(float64(n) * q))
	if idx >= n {
		idx = n - 1
	}
	return sorted[idx]
}

// sortedCopy returns an ascending copy of values.
func sortedCopy(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	sort.Float64s(out)
	return out
}

// clamp restricts v to the [lo, hi] interval.
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// pearson computes the Pearson correlation coefficient between two
// equal-length samples. Returns 0 when either side has no variance or
// fewer than two points.
func pearson(xs, ys []float64) float64 {
	n := len(xs)
	if n < 2 || n != len(ys) {
		return 0
	}
	mx, my := mean(xs), mean(ys)
	var sxy, sxx, syy float64
	for i := range n {
		dx := xs[i] - mx
		dy := ys[i] - my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return 0
	}
	return sxy / math.Sqrt(sxx*syy)
}

// pearsonPValue approximates the two-sided p-value for a Pearson r over
// n pairs via the t statistic and a normal tail approximation. Good
// enough for threshold bucketing; not a substitute for a real CDF.
func pearsonPValue(r float64, n int) float64 {
	if n < 3 {
		return 1
	}
	den := 1 - r*r
	if den <= 0 {
		return 0
	}
	t := math.Abs(r) * math.Sqrt(float64(n-2)/den)
	return math.Erfc(t / math.Sqrt2)
}

// linearFit fits y = a + b*x by least squares and reports the slope and
// R-squared goodness of fit.
func linearFit(xs, ys []float64) (slope, rsq float64) {
	n := len(xs)
	if n < 2 || n != len(ys) {
		return 0, 0
	}
	mx, my := mean(xs), mean(ys)
	var sxy, sxx, syy float64
	for i := range n {
		dx := xs[i] - mx
		dy := ys[i] - my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 {
		return 0, 0
	}
	slope = sxy / sxx
	if syy == 0 {
		return slope, 0
	}
	r := sxy / math.Sqrt(sxx*syy)
	return slope, r * r
}

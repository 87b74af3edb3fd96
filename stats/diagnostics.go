package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DurbinWatsonResult holds the Durbin-Watson statistic of a set of
// regression residuals taken in row order. It lies in [0, 4]; values near 2
// mean neighbouring rows carry unrelated errors, values towards 0 or 4 mean
// positive or negative serial correlation.
type DurbinWatsonResult struct {
	Statistic float64
}

// DurbinWatson returns the statistic sum((e[i]-e[i-1])²) / sum(e[i]²), or
// nil for fewer than two residuals or an exact fit.
func DurbinWatson(residuals []float64) *DurbinWatsonResult {
	if len(residuals) < 2 {
		return nil
	}
	ssr := floats.Dot(residuals, residuals)
	if ssr == 0 {
		return nil
	}
	step := floats.Distance(residuals[1:], residuals[:len(residuals)-1], 2)
	return &DurbinWatsonResult{Statistic: step * step / ssr}
}

// JarqueBeraResult represents the result of a Jarque-Bera normality test.
type JarqueBeraResult struct {
	Statistic float64
	PValue    float64
	Skew      float64
	Kurtosis  float64 // not excess: 3 for a normal sample
}

// JarqueBera tests whether residuals have the skewness and kurtosis of a
// normal distribution. The null hypothesis is normality.
func JarqueBera(residuals []float64) *JarqueBeraResult {
	n := len(residuals)
	if n < 3 {
		return nil
	}

	mean := stat.Mean(residuals, nil)
	m2, m3, m4 := 0.0, 0.0, 0.0
	for _, r := range residuals {
		d := r - mean
		d2 := d * d
		m2 += d2
		m3 += d2 * d
		m4 += d2 * d2
	}
	nf := float64(n)
	m2 /= nf
	m3 /= nf
	m4 /= nf
	if m2 == 0 {
		return nil
	}

	skew := m3 / math.Pow(m2, 1.5)
	kurt := m4 / (m2 * m2)
	jb := nf / 6 * (skew*skew + (kurt-3)*(kurt-3)/4)

	return &JarqueBeraResult{
		Statistic: jb,
		PValue:    distuv.ChiSquared{K: 2}.Survival(jb),
		Skew:      skew,
		Kurtosis:  kurt,
	}
}

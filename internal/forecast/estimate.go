package forecast

import (
	"math"

	"github.com/calebmorris/pacer/internal/domain"
)

// defaultWeight is the uncertainty weight used when the caller supplies no
// usable value.
const defaultWeight = 3

// spreadTable maps an uncertainty weight (1..5) to the fraction of the
// most-likely estimate used as the optimistic/pessimistic spread.
var spreadTable = map[int]float64{
	1: 0.30,
	2: 0.50,
	3: 0.80,
	4: 1.10,
	5: 1.50,
}

// ExpectedDuration computes the weighted three-point expected duration
// (O + w*M + P) / (w + 2). The weight defaults to 3 when non-finite or
// non-positive. Inputs are best-effort estimates, so nothing is rejected.
func ExpectedDuration(o, m, p, w float64) float64 {
	w = domain.FiniteOr(w, defaultWeight)
	if w <= 0 {
		w = defaultWeight
	}
	o = domain.NonNegativeOr(o, 0)
	m = domain.NonNegativeOr(m, 0)
	p = domain.NonNegativeOr(p, 0)
	return (o + w*m + p) / (w + 2)
}

// Sigma returns the three-point standard deviation (P - O) / 6.
func Sigma(o, p float64) float64 {
	return (domain.FiniteOr(p, 0) - domain.FiniteOr(o, 0)) / 6
}

// Bounds holds derived optimistic/pessimistic estimates for a task the user
// sized with a single most-likely value.
type Bounds struct {
	OptimisticMin  int
	PessimisticMin int
	Sigma          float64
}

// DeriveBounds derives O and P from the most-likely estimate and the
// uncertainty weight. The split is asymmetric: 40% of the spread below M,
// 60% above, so pessimism dominates. Guarantees O >= 1 and P > O.
func DeriveBounds(estimatedMin, weight int) Bounds {
	w := clampInt(weight, 1, 5)
	spread := spreadTable[w] * float64(estimatedMin)

	o := estimatedMin - int(math.Round(0.4*spread))
	if o < 1 {
		o = 1
	}
	p := estimatedMin + int(math.Round(0.6*spread))
	if p <= o {
		p = o + 1
	}

	return Bounds{
		OptimisticMin:  o,
		PessimisticMin: p,
		Sigma:          Sigma(float64(o), float64(p)),
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

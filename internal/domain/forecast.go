package domain

import (
	"math"
	"time"
)

// floatTolerance is the threshold below which two derived float fields are
// considered unchanged, so that recomputing an identical forecast does not
// trigger a write.
const floatTolerance = 1e-6

// Forecast holds the derived pace/risk fields written back onto a task
// after each progress computation. Every field is recomputed from the logs
// on each run; the stored values are a cache, not inputs.
type Forecast struct {
	Pace7d          float64
	PaceExp         float64
	RequiredPace    float64
	RequiredPaceAdj float64
	SPI             float64
	SPIExp          float64
	SPIAdj          float64
	EACDate         *time.Time
	Risk            RiskLevel
	IdealProgress   float64
	ActualProgress  float64
}

// Equal reports whether two forecasts are numerically identical: float
// fields within 1e-6, risk exact, EAC dates by calendar day. The EAC is
// persisted as a bare YYYY-MM-DD and comes back in a different location
// than it was computed in, so comparing instants would see a phantom
// change on every refresh. Used to skip redundant write-backs.
func (f Forecast) Equal(other Forecast) bool {
	if f.Risk != other.Risk {
		return false
	}
	if (f.EACDate == nil) != (other.EACDate == nil) {
		return false
	}
	if f.EACDate != nil && f.EACDate.Format(DayLayout) != other.EACDate.Format(DayLayout) {
		return false
	}
	pairs := [][2]float64{
		{f.Pace7d, other.Pace7d},
		{f.PaceExp, other.PaceExp},
		{f.RequiredPace, other.RequiredPace},
		{f.RequiredPaceAdj, other.RequiredPaceAdj},
		{f.SPI, other.SPI},
		{f.SPIExp, other.SPIExp},
		{f.SPIAdj, other.SPIAdj},
		{f.IdealProgress, other.IdealProgress},
		{f.ActualProgress, other.ActualProgress},
	}
	for _, p := range pairs {
		if math.Abs(p[0]-p[1]) > floatTolerance {
			return false
		}
	}
	return true
}

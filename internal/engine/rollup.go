package engine

import (
	"math"

	"pumpjack_simulator/internal/models"
)

const (
	nominalQuality  = 0.98
	degradedQuality = 0.85 // while the low-production alarm is active
)

// computePerformance returns st with availability, performance, quality and OEE
// recomputed as of the given tick.
func computePerformance(st models.PumpState, tick uint64) models.PumpState {
	elapsedHours := float64(tick) / TicksPerHour
	if elapsedHours > 0 {
		st.Availability = clamp(st.Runtime/elapsedHours, 0, 1)
	} else {
		st.Availability = 0
	}

	// over-performance above 1.0 is kept
	if st.TargetProduction > 0 {
		st.Performance = math.Max(0, st.ProductionRate/st.TargetProduction)
	} else {
		st.Performance = 0
	}

	st.Quality = nominalQuality
	if st.LowProduction {
		st.Quality = degradedQuality
	}

	st.OEE = clamp(st.Availability*st.Performance*st.Quality, 0, 1)
	return st
}

package engine

import (
	"log/slog"

	"github.com/jwebster45206/ascent-engine/pkg/roll"
)

// Roll is the outcome of the success roll for one action.
type Roll struct {
	Probability float64 // as rated by the oracle
	TotalRate   float64 // probability * luck * 2
	Sample      float64
	Success     bool
}

// ResolveOutcome applies luck to the rated probability and rolls.
// Success is strict: the sample must be below the total rate.
func ResolveOutcome(probability, luck float64, src roll.Source, logger *slog.Logger) Roll {
	r := Roll{
		Probability: probability,
		TotalRate:   probability * luck * 2,
		Sample:      src.Sample(),
	}
	r.Success = r.Sample < r.TotalRate
	logger.Debug("Outcome roll",
		"probability", r.Probability,
		"total_rate", r.TotalRate,
		"sample", r.Sample,
		"success", r.Success)
	return r
}

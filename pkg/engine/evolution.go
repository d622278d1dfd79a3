package engine

import (
	"fmt"
	"log/slog"

	"github.com/jwebster45206/ascent-engine/pkg/roll"
	"github.com/jwebster45206/ascent-engine/pkg/world"
)

// Evolve rolls once for a tier advance. The tier rises by exactly one when
// the sample reaches 1 - luck*0.1 and the player is alive and below the top
// tier. It returns the level-up note, or "" when nothing changed.
func Evolve(p *world.Player, src roll.Source, logger *slog.Logger) string {
	if p.Health <= 0 {
		return ""
	}
	sample := src.Sample()
	threshold := 1 - p.Luck*0.1
	passed := sample >= threshold
	logger.Debug("Evolution roll", "threshold", threshold, "sample", sample, "passed", passed, "tier", p.Tier)
	if !passed || p.Tier >= world.MaxTier {
		return ""
	}
	old := p.Tier
	p.Tier++
	return fmt.Sprintf("Player leveled up! Life form from level %d to %d", old, p.Tier)
}

package engine

import (
	"fmt"
	"log/slog"

	"github.com/jwebster45206/ascent-engine/pkg/roll"
	"github.com/jwebster45206/ascent-engine/pkg/world"
)

// luckEpsilon stands in for zero luck in the enemy score.
const luckEpsilon = 1e-6

const noCreaturesNote = "No interactive creatures present"

// Discovery is the result of one discovery pass.
type Discovery struct {
	Activated []world.Creature
	Notes     []string
}

// discoveryScore returns the activation score for a creature, or false when
// its type takes no part in discovery.
func discoveryScore(c world.Creature, luck float64) (float64, bool) {
	switch c.Type {
	case world.CreatureNPC:
		return c.Fate * luck * 2, true
	case world.CreatureEnemy:
		if luck <= 0 {
			luck = luckEpsilon
		}
		return c.Fate / (luck * 2), true
	case world.CreatureUnknown:
		return c.Fate, true
	}
	return 0, false
}

// Discover rolls once for every creature of the scene that is not yet
// active. A creature activates when its score beats the sample; activated
// creatures are appended to the scene's active list.
func Discover(scene *world.Scene, luck float64, src roll.Source, logger *slog.Logger) Discovery {
	var d Discovery
	if len(scene.InteractiveCreatures) == 0 {
		d.Notes = append(d.Notes, noCreaturesNote)
		return d
	}

	for _, c := range scene.InteractiveCreatures {
		if scene.IsActive(c) {
			continue
		}
		score, ok := discoveryScore(c, luck)
		if !ok {
			logger.Debug("Skipping creature with unknown type", "creature", c.Name, "type", c.Type)
			continue
		}
		sample := src.Sample()
		activated := score > sample
		logger.Debug("Discovery roll",
			"creature", c.Name,
			"type", c.Type,
			"score", score,
			"sample", sample,
			"activated", activated)
		if !activated {
			continue
		}
		scene.ActiveCreatures = append(scene.ActiveCreatures, c)
		d.Activated = append(d.Activated, c)
		d.Notes = append(d.Notes, fmt.Sprintf("You discovered %s", c.Name))
	}
	return d
}

package engine

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jwebster45206/ascent-engine/pkg/world"
)

const collapseNote = "You collapsed. Story ends..."

// Merge folds a scene delta into the game state: ids, rewards, penalties,
// tags, then the scene itself, the history entry and the plot record.
// Notes already produced this turn (discoveries, level-up) lead the outcome
// text. It returns the outcome text written to history.
func Merge(gs *world.GameState, delta *world.SceneDelta, input string, notes []string, next IDFunc, logger *slog.Logger) string {
	var out strings.Builder
	for _, n := range notes {
		out.WriteString("\n" + n)
	}

	assignSceneIDs(&delta.Scene, next)

	for _, r := range delta.RewardPool {
		switch {
		case r.Type.Holdable():
			if r.ItemID == "" {
				r.ItemID = next()
			}
			r.Amount = nil
			gs.Equipment = append(gs.Equipment, r)
			fmt.Fprintf(&out, "\n(You gained: %s, %s)", r.Name, r.Description)
		case r.Type == world.ItemHealth && gs.GameOver:
			logger.Warn("Ignoring health reward after collapse", "name", r.Name)
		case r.Type == world.ItemHealth:
			amount := r.AmountValue()
			if amount < 0 {
				logger.Warn("Health reward with negative amount", "name", r.Name, "amount", amount)
			}
			gs.Player.AdjustHealth(amount)
			fmt.Fprintf(&out, "\n(Your health increased by %d, now %d)", amount, gs.Player.Health)
			checkCollapse(gs, &out)
		case r.Type == world.ItemInformation:
			fmt.Fprintf(&out, "\n(You knew: %s, %s)", r.Name, r.Description)
		default:
			logger.Warn("Ignoring reward of unknown type", "name", r.Name, "type", r.Type)
		}
	}

	for _, p := range delta.PenaltyPool {
		if p.Type != world.ItemHealth && !p.Type.Holdable() {
			logger.Warn("Ignoring penalty of unknown type", "name", p.Name, "type", p.Type)
			continue
		}
		fmt.Fprintf(&out, "\n(You suffered loss: %s)", p.Description)

		switch p.Type {
		case world.ItemHealth:
			gs.Player.AdjustHealth(-p.AmountValue())
			checkCollapse(gs, &out)
		case world.ItemEquipment, world.ItemStory, world.ItemConsumable:
			if removed, ok := removeEquipment(gs, p.Name); ok {
				fmt.Fprintf(&out, "\n「%s」was lost.", removed.Name)
			}
		}
	}

	gs.Player.Tags = delta.NewTag
	if gs.Player.Tags == nil {
		gs.Player.Tags = make([]string, 0)
	}

	scene := delta.StoredScene()
	scene.ActiveCreatures = nil
	if want := gs.NextSceneID(); scene.SceneID != want {
		logger.Warn("Correcting scene id", "proposed", scene.SceneID, "assigned", want)
		scene.SceneID = want
	}
	gs.Scenes = append(gs.Scenes, scene)

	outcome := out.String()
	gs.History = append(gs.History, fmt.Sprintf("> %s \n%s ", input, outcome))
	gs.PlotRecords = append(gs.PlotRecords, scene.Plot)
	return outcome
}

// checkCollapse ends the game once health reaches zero, whichever pool
// caused it. The collapse is narrated once.
func checkCollapse(gs *world.GameState, out *strings.Builder) {
	if gs.Player.Health <= 0 && !gs.GameOver {
		gs.GameOver = true
		out.WriteString("\n" + collapseNote)
	}
}

// removeEquipment removes the first equipment entry with the given name.
func removeEquipment(gs *world.GameState, name string) (world.Item, bool) {
	for i, item := range gs.Equipment {
		if item.Name == name {
			gs.Equipment = append(gs.Equipment[:i], gs.Equipment[i+1:]...)
			return item, true
		}
	}
	return world.Item{}, false
}

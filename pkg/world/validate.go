package world

import (
	"errors"
	"fmt"
)

// Validate checks the invariants every committed game state must hold and
// returns all violations joined together.
func (gs *GameState) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	p := gs.Player
	if p.Health < 0 || p.Health > MaxHealth {
		add("player health %d outside [0, %d]", p.Health, MaxHealth)
	}
	if p.Health == 0 && !gs.GameOver {
		add("player health is 0 but the game is not over")
	}
	if gs.GameOver && p.Health > 0 {
		add("game is over but player health is %d", p.Health)
	}
	if p.Tier < 0 || p.Tier > MaxTier {
		add("player tier %d outside [0, %d]", p.Tier, MaxTier)
	}
	if p.Luck < 0 || p.Luck > 1 {
		add("player luck %.3f outside [0, 1]", p.Luck)
	}

	if len(gs.Scenes) == 0 {
		add("game has no scenes")
	}
	for i, s := range gs.Scenes {
		if s.SceneID != i {
			add("scene at index %d has sceneId %d", i, s.SceneID)
		}
		for _, item := range s.InteractiveItems {
			if item.ItemID == "" {
				add("scene %d item %q has no itemId", i, item.Name)
			}
		}
		for _, c := range s.InteractiveCreatures {
			if c.CreatureID == "" {
				add("scene %d creature %q has no creatureId", i, c.Name)
			}
		}
	}
	if len(gs.Scenes) > 0 {
		if turns := len(gs.Scenes) - 1; len(gs.History) != turns {
			add("%d history entries for %d turns", len(gs.History), turns)
		}
		if len(gs.PlotRecords) != len(gs.Scenes) {
			add("%d plot records for %d scenes", len(gs.PlotRecords), len(gs.Scenes))
		}
	}

	seen := make(map[string]bool, len(gs.Equipment))
	for _, item := range gs.Equipment {
		switch {
		case item.ItemID == "":
			add("equipment %q has no itemId", item.Name)
		case seen[item.ItemID]:
			add("equipment itemId %s is not unique", item.ItemID)
		}
		seen[item.ItemID] = true
		if !item.Type.Holdable() {
			add("equipment %q has type %s", item.Name, item.Type)
		}
	}

	return errors.Join(errs...)
}

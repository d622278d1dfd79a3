package engine

import (
	"github.com/jwebster45206/ascent-engine/pkg/world"
	"github.com/oklog/ulid/v2"
)

// IDFunc generates a fresh, never reused identifier.
type IDFunc func() string

// NewULID is the default IDFunc.
func NewULID() string {
	return ulid.Make().String()
}

// assignItemIDs gives an id to every item that lacks one and returns how
// many were assigned. Existing ids are never replaced.
func assignItemIDs(items []world.Item, next IDFunc) int {
	n := 0
	for i := range items {
		if items[i].ItemID == "" {
			items[i].ItemID = next()
			n++
		}
	}
	return n
}

// assignCreatureIDs is assignItemIDs for creatures.
func assignCreatureIDs(creatures []world.Creature, next IDFunc) int {
	n := 0
	for i := range creatures {
		if creatures[i].CreatureID == "" {
			creatures[i].CreatureID = next()
			n++
		}
	}
	return n
}

// assignSceneIDs assigns ids to the items and creatures of a scene.
func assignSceneIDs(s *world.Scene, next IDFunc) int {
	return assignItemIDs(s.InteractiveItems, next) + assignCreatureIDs(s.InteractiveCreatures, next)
}

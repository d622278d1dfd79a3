package world

import "fmt"

// LifeTier is one rung of the power ladder that ranks every being in a world.
type LifeTier struct {
	Level       int    `json:"level"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DefaultLifeTiers is the fixed ladder handed to the oracle at initialization.
// The oracle may reinterpret descriptions for a setting but not the levels.
var DefaultLifeTiers = []LifeTier{
	{Level: 0, Name: "Fragile Life", Description: "Barely conscious or critically unstable lifeforms, including newborns, the mortally wounded, or shut-down machines."},
	{Level: 1, Name: "Common Entity", Description: "Ordinary individuals or organisms with basic awareness and minimal threat potential. Civilians, small animals, or simple drones."},
	{Level: 2, Name: "Trained Operative", Description: "Beings with trained skills or enhanced instinct, capable of handling moderate threats. Soldiers, predators, scout drones."},
	{Level: 3, Name: "Elite Organic", Description: "Individuals at peak organic performance: top athletes, enhanced animals, or specialized units with refined capabilities."},
	{Level: 4, Name: "Supernatural Threshold", Description: "Lifeforms who surpass natural limits through mutation, magic, or advanced technology. Low-tier superhumans, mutants, spellcasters."},
	{Level: 5, Name: "Area Influencer", Description: "Capable of changing the dynamics of a battlefield or controlling large-scale zones. City-scale threats or high-level operatives."},
	{Level: 6, Name: "Domain Controller", Description: "Powerful entities able to manipulate ecosystems, manipulate energy, or command armies. Hive queens, high mages, tactical AI cores."},
	{Level: 7, Name: "Planet-Level Being", Description: "Beings whose actions affect planetary systems, political powers, or ecological balance. Warlords, planetary AI, titanic beasts."},
	{Level: 8, Name: "Stellar Entity", Description: "Entities wielding star-level energy, moving freely between worlds. Star gods, solar forgers, deep space overlords."},
	{Level: 9, Name: "Galactic Architect", Description: "Capable of constructing, reshaping, or erasing galactic-scale structures or civilizations. Galaxy minds, ancient precursors."},
	{Level: 10, Name: "Conceptual God", Description: "Abstract-level existence that manipulates reality, laws of nature, or metaphysical constructs. Time gods, cosmic consciousness, embodiment of entropy."},
}

// TierName returns the ladder name for a level, e.g. "Common Entity".
func TierName(level int) string {
	if level < 0 || level >= len(DefaultLifeTiers) {
		return fmt.Sprintf("Level %d", level)
	}
	return DefaultLifeTiers[level].Name
}

// TierLabel formats a level for display, e.g. "Level 1: Common Entity".
func TierLabel(level int) string {
	return fmt.Sprintf("Level %d: %s", level, TierName(level))
}

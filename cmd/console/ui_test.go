package main

import (
	"strings"
	"testing"

	"github.com/jwebster45206/ascent-engine/pkg/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitHistory(t *testing.T) {
	input, outcome := splitHistory("> open the door \nThe hinges scream. ")
	assert.Equal(t, "open the door", input)
	assert.Equal(t, "The hinges scream.", outcome)

	input, outcome = splitHistory("a note without input")
	assert.Empty(t, input)
	assert.Equal(t, "a note without input", outcome)
}

func TestBuildLog(t *testing.T) {
	assert.Nil(t, buildLog(nil))

	gs := world.NewGameState()
	gs.Scenes = []world.Scene{
		{SceneID: 0, Plot: "You wake in the clinic."},
		{SceneID: 1, Plot: "The corridor is dark."},
	}
	gs.History = []string{"> leave the room \nYou slip out. "}

	entries := buildLog(gs)
	require.Len(t, entries, 2)
	assert.Equal(t, logEntry{Text: "You wake in the clinic."}, entries[0])
	assert.Equal(t, "leave the room", entries[1].Input)
	assert.Equal(t, "You slip out.\n\nThe corridor is dark.", entries[1].Text)
	assert.Equal(t, "> leave the room\nYou slip out.\n\nThe corridor is dark.", entries[1].plain())
}

func TestWriteStatus(t *testing.T) {
	gs := world.NewGameState()
	gs.Player = world.Player{Name: "Mara", Health: 35, Tier: 2, Luck: 0.5, Tags: []string{"wounded"}}
	gs.Equipment = []world.Item{{Name: "Flashlight", Type: world.ItemEquipment}}
	gs.Scenes = []world.Scene{{
		Location: "abandoned clinic",
		InteractiveCreatures: []world.Creature{
			{Name: "Nurse Clara", Type: world.CreatureNPC, VisibleToPlayer: true},
			{Name: "Zombie A", Type: world.CreatureEnemy},
		},
	}}

	out := writeStatus(gs, 40)
	assert.Contains(t, out, "35/100")
	assert.Contains(t, out, "Level 2: Trained Operative")
	assert.Contains(t, out, "Flashlight (Equipment)")
	assert.Contains(t, out, "Abandoned Clinic")
	assert.Contains(t, out, "Nurse Clara")
	assert.NotContains(t, out, "Zombie A")
	assert.Contains(t, out, "wounded")
}

func TestHealthBar(t *testing.T) {
	assert.Equal(t, strings.Repeat("░", 10), healthBar(0, 10))
	assert.Equal(t, "█"+strings.Repeat("░", 9), healthBar(3, 10))
	assert.Equal(t, strings.Repeat("█", 10), healthBar(100, 10))
}

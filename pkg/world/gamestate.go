package world

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	MaxHealth = 100
	MaxTier   = 10

	// PromptPlotLimit is how many plot records are handed to the oracle.
	PromptPlotLimit = 10
)

// World is the refined setting produced at initialization.
type World struct {
	Setting          string     `json:"setting"`
	LifeTiers        []LifeTier `json:"lifeTiers"`
	PlayerBackground string     `json:"playerBackground,omitempty"`
}

// Player is the single player character of a session.
type Player struct {
	Name       string   `json:"name"`
	Gender     string   `json:"gender,omitempty"`
	Age        int      `json:"age,omitempty"`
	Background string   `json:"background,omitempty"`
	Appearance string   `json:"appearance,omitempty"`
	Health     int      `json:"health"`
	Tier       int      `json:"tier"`
	Tags       []string `json:"tags"`
	Luck       float64  `json:"luck"` // 0.5 = average, fixed at creation
}

// AdjustHealth applies a health delta, clamped to [0, MaxHealth].
// Returns the resulting health.
func (p *Player) AdjustHealth(delta int) int {
	p.Health += delta
	if p.Health > MaxHealth {
		p.Health = MaxHealth
	}
	if p.Health < 0 {
		p.Health = 0
	}
	return p.Health
}

// GameState is the authoritative document for a play session.
// It is written whole after every turn.
type GameState struct {
	ID          uuid.UUID `json:"id"`
	World       World     `json:"world"`
	Player      Player    `json:"player"`
	Equipment   []Item    `json:"equipment"`
	Scenes      []Scene   `json:"scenes"`
	History     []string  `json:"history"`
	PlotRecords []string  `json:"plotRecords"`
	GameOver    bool      `json:"gameOver"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewGameState() *GameState {
	now := time.Now()
	return &GameState{
		ID:          uuid.New(),
		Equipment:   make([]Item, 0),
		Scenes:      make([]Scene, 0),
		History:     make([]string, 0),
		PlotRecords: make([]string, 0),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CurrentScene returns the in-progress scene, or nil before initialization.
func (gs *GameState) CurrentScene() *Scene {
	if len(gs.Scenes) == 0 {
		return nil
	}
	return &gs.Scenes[len(gs.Scenes)-1]
}

// NextSceneID is the id the next appended scene must carry.
func (gs *GameState) NextSceneID() int {
	return len(gs.Scenes)
}

// RecentPlot returns up to n of the latest plot records, oldest first.
func (gs *GameState) RecentPlot(n int) []string {
	if n <= 0 || len(gs.PlotRecords) <= n {
		return gs.PlotRecords
	}
	return gs.PlotRecords[len(gs.PlotRecords)-n:]
}

// Clone returns a deep copy of the game state.
func (gs *GameState) Clone() (*GameState, error) {
	data, err := json.Marshal(gs)
	if err != nil {
		return nil, err
	}
	var out GameState
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PlayerView returns a copy of the state with every creature the player
// has not seen removed from every scene.
func (gs *GameState) PlayerView() (*GameState, error) {
	view, err := gs.Clone()
	if err != nil {
		return nil, err
	}
	for i := range view.Scenes {
		view.Scenes[i].InteractiveCreatures = VisibleCreatures(view.Scenes[i].InteractiveCreatures)
		view.Scenes[i].ActiveCreatures = VisibleCreatures(view.Scenes[i].ActiveCreatures)
	}
	return view, nil
}

// VisibleCreatures filters to creatures the player can see.
// It always returns a non-nil slice.
func VisibleCreatures(creatures []Creature) []Creature {
	out := make([]Creature, 0, len(creatures))
	for _, c := range creatures {
		if c.VisibleToPlayer {
			out = append(out, c)
		}
	}
	return out
}

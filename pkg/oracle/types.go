// Package oracle asks a language model for world content, action
// probabilities and scene deltas, and decodes its JSON replies into
// game types.
package oracle

import (
	"github.com/jwebster45206/ascent-engine/pkg/world"
)

// WorldResult is the refined world returned at initialization.
type WorldResult struct {
	WorldSet         string           `json:"worldSet"`
	WorldLife        []world.LifeTier `json:"worldLife"`
	PlayerBackground string           `json:"playerBackground"`
}

// CastPlayer is the player character as the oracle writes it.
type CastPlayer struct {
	Name          string   `json:"name"`
	Gender        string   `json:"gender"`
	Age           int      `json:"age"`
	Background    string   `json:"background"`
	Appearance    string   `json:"appearance"`
	Health        int      `json:"health"`
	LifeFormLevel int      `json:"lifeFormLevel"`
	Tag           []string `json:"tag"`
	Luck          float64  `json:"luck"`
}

// Player converts the cast to a world.Player. Health outside (0, 100] is
// reset to full, tier is clamped to the ladder and luck to [0,1].
func (c CastPlayer) Player() world.Player {
	p := world.Player{
		Name:       c.Name,
		Gender:     c.Gender,
		Age:        c.Age,
		Background: c.Background,
		Appearance: c.Appearance,
		Health:     c.Health,
		Tier:       c.LifeFormLevel,
		Tags:       c.Tag,
		Luck:       c.Luck,
	}
	if p.Health <= 0 || p.Health > world.MaxHealth {
		p.Health = world.MaxHealth
	}
	p.Tier = min(max(p.Tier, 0), world.MaxTier)
	p.Luck = min(max(p.Luck, 0), 1)
	if p.Tags == nil {
		p.Tags = make([]string, 0)
	}
	return p
}

// CastResult is the player, starting equipment and opening scene.
// The opening scene may arrive as "scene" or as the first entry of "scenes".
type CastResult struct {
	PlayerInfo      CastPlayer    `json:"playerInfo"`
	PlayerEquipment []world.Item  `json:"playerEquipment"`
	Scene           *world.Scene  `json:"scene,omitempty"`
	Scenes          []world.Scene `json:"scenes,omitempty"`
}

// OpeningScene returns the first scene of the cast, if any.
func (c *CastResult) OpeningScene() (world.Scene, bool) {
	if c.Scene != nil {
		return *c.Scene, true
	}
	if len(c.Scenes) > 0 {
		return c.Scenes[0], true
	}
	return world.Scene{}, false
}

// ProbabilityContext is everything the oracle sees when rating an action.
type ProbabilityContext struct {
	WorldSet        string           `json:"worldSet"`
	LifeTiers       []world.LifeTier `json:"lifeTiers"`
	PlayerInfo      world.Player     `json:"playerInfo"`
	PlayerEquipment []world.Item     `json:"playerEquipment"`
	PlayerTags      []string         `json:"playerTags"`
	LastItems       []world.Item     `json:"lastItems"`
	PlotRecords     []string         `json:"plotRecords"`
	PlayerAction    string           `json:"playerAction"`
}

// ProbabilityResult is the oracle's rating of an action. Explanation is
// set when a mandatory gate failed.
type ProbabilityResult struct {
	SuccessProbability float64 `json:"successProbability"`
	Explanation        string  `json:"explanation,omitempty"`
}

// SceneContext extends the probability context with the rolled outcome and
// the turn's discovery and evolution results.
type SceneContext struct {
	ProbabilityContext
	RandomEvents  []world.Creature  `json:"randomEvents"`
	LastCreatures []world.Creature  `json:"lastCreatures"`
	LevelUpInfo   string            `json:"levelUpInfo"`
	PreviousScene world.Environment `json:"previousScene"`
	StoryLine     bool              `json:"storyLine"`
	SceneID       int               `json:"sceneId"`
}

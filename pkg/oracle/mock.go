package oracle

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/jwebster45206/ascent-engine/pkg/world"
)

// Mock is a deterministic oracle. Each method uses its Func field when set
// and otherwise returns canned content that is enough to play a short game.
type Mock struct {
	WorldFunc       func(ctx context.Context, worldSetting, characterDescription string, tiers []world.LifeTier) (*WorldResult, error)
	CastFunc        func(ctx context.Context, w *WorldResult) (*CastResult, error)
	ProbabilityFunc func(ctx context.Context, pc *ProbabilityContext) (*ProbabilityResult, error)
	SceneFunc       func(ctx context.Context, sc *SceneContext) (*world.SceneDelta, error)

	// Track calls for testing
	WorldCalls       int
	CastCalls        int
	ProbabilityCalls []ProbabilityContext
	SceneCalls       []SceneContext

	mu sync.Mutex // protects all fields above
}

// NewMock creates a mock oracle with the canned defaults.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) World(ctx context.Context, worldSetting, characterDescription string, tiers []world.LifeTier) (*WorldResult, error) {
	m.mu.Lock()
	m.WorldCalls++
	fn := m.WorldFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, worldSetting, characterDescription, tiers)
	}
	return &WorldResult{
		WorldSet:         worldSetting,
		WorldLife:        tiers,
		PlayerBackground: characterDescription,
	}, nil
}

func (m *Mock) Cast(ctx context.Context, w *WorldResult) (*CastResult, error) {
	m.mu.Lock()
	m.CastCalls++
	fn := m.CastFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, w)
	}
	return &CastResult{
		PlayerInfo: CastPlayer{
			Name:          "Wanderer",
			Background:    w.PlayerBackground,
			Health:        world.MaxHealth,
			LifeFormLevel: 1,
			Tag:           []string{"observant"},
			Luck:          0.5,
		},
		PlayerEquipment: []world.Item{
			{Name: "Flashlight", Type: world.ItemEquipment, Description: "Lights up dark corners."},
		},
		Scene: &world.Scene{
			SceneID:     0,
			Location:    "Abandoned Clinic",
			Description: "Dust hangs over overturned gurneys.",
			Time:        "Dusk",
			Weather:     "Overcast",
			Terrain:     "Urban",
			Plot:        "You wake on a cold floor. Something shuffles in the next room.",
			InteractiveItems: []world.Item{
				{Name: "Bandage Roll", Type: world.ItemConsumable, Description: "Stops minor bleeding."},
			},
			InteractiveCreatures: []world.Creature{
				{Name: "Nurse Clara", Type: world.CreatureNPC, Fate: 0.6, Behavior: "Friendly", LifeFormLevel: 1, Health: 70, VisibleToPlayer: true},
				{Name: "Zombie A", Type: world.CreatureEnemy, Fate: 0.3, Behavior: "Hostile", LifeFormLevel: 1, Health: 100, VisibleToPlayer: false},
			},
		},
	}, nil
}

func (m *Mock) Probability(ctx context.Context, pc *ProbabilityContext) (*ProbabilityResult, error) {
	m.mu.Lock()
	m.ProbabilityCalls = append(m.ProbabilityCalls, *pc)
	fn := m.ProbabilityFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, pc)
	}
	return &ProbabilityResult{SuccessProbability: 0.5}, nil
}

func (m *Mock) Scene(ctx context.Context, sc *SceneContext) (*world.SceneDelta, error) {
	m.mu.Lock()
	m.SceneCalls = append(m.SceneCalls, *sc)
	fn := m.SceneFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, sc)
	}

	delta := &world.SceneDelta{
		Scene: world.Scene{
			SceneID:              sc.SceneID,
			Location:             sc.PreviousScene.Location,
			Description:          sc.PreviousScene.Description,
			Time:                 sc.PreviousScene.Time,
			Weather:              sc.PreviousScene.Weather,
			Terrain:              sc.PreviousScene.Terrain,
			InteractiveItems:     slices.Clone(sc.LastItems),
			InteractiveCreatures: slices.Clone(sc.LastCreatures),
		},
		NewTag:      slices.Clone(sc.PlayerTags),
		RewardPool:  make([]world.Item, 0),
		PenaltyPool: make([]world.Item, 0),
	}
	amount := 10
	if sc.StoryLine {
		delta.Plot = fmt.Sprintf("You %s. It works.", sc.PlayerAction)
		delta.RewardPool = append(delta.RewardPool, world.Item{Name: "Second Wind", Type: world.ItemHealth, Description: "You catch your breath.", Amount: &amount})
	} else {
		delta.Plot = fmt.Sprintf("You try to %s, but it goes wrong.", sc.PlayerAction)
		delta.PenaltyPool = append(delta.PenaltyPool, world.Item{Name: "Bruise", Type: world.ItemHealth, Description: "You take a hard knock.", Amount: &amount})
	}
	return delta, nil
}

// GetCalls returns copies of the tracked probability and scene contexts.
func (m *Mock) GetCalls() ([]ProbabilityContext, []SceneContext) {
	m.mu.Lock()
	defer m.mu.Unlock()

	probCalls := make([]ProbabilityContext, len(m.ProbabilityCalls))
	copy(probCalls, m.ProbabilityCalls)

	sceneCalls := make([]SceneContext, len(m.SceneCalls))
	copy(sceneCalls, m.SceneCalls)

	return probCalls, sceneCalls
}

package world

// ItemType classifies items and pool entries.
type ItemType string

const (
	ItemStory       ItemType = "StoryItem"
	ItemEquipment   ItemType = "Equipment"
	ItemConsumable  ItemType = "Consumable"
	ItemJunk        ItemType = "Junk"
	ItemInformation ItemType = "Information"
	ItemHealth      ItemType = "Health"
)

// Holdable reports whether items of this type can sit in the player's equipment.
func (t ItemType) Holdable() bool {
	switch t {
	case ItemStory, ItemEquipment, ItemConsumable, ItemJunk:
		return true
	}
	return false
}

// CreatureType drives how a creature is discovered.
type CreatureType string

const (
	CreatureNPC     CreatureType = "NPC"     // neutral or friendly
	CreatureEnemy   CreatureType = "Enemy"   // hostile
	CreatureUnknown CreatureType = "Unknown" // unclear intent
)

type Item struct {
	ItemID      string   `json:"itemId,omitempty"`
	Name        string   `json:"name"`
	Type        ItemType `json:"type"`
	Description string   `json:"description,omitempty"`
	Amount      *int     `json:"amount,omitempty"` // Health entries only
}

// AmountValue returns the amount, treating a missing amount as zero.
func (i Item) AmountValue() int {
	if i.Amount == nil {
		return 0
	}
	return *i.Amount
}

type Creature struct {
	CreatureID      string       `json:"creatureId,omitempty"`
	Name            string       `json:"name"`
	Gender          string       `json:"gender,omitempty"`
	Age             int          `json:"age,omitempty"`
	Type            CreatureType `json:"type"`
	Fate            float64      `json:"fate"` // likelihood of interacting with the player this scene
	Appearance      string       `json:"appearance,omitempty"`
	Behavior        string       `json:"behavior,omitempty"`
	Description     string       `json:"description,omitempty"`
	LifeFormLevel   int          `json:"lifeFormLevel"`
	Health          int          `json:"health"`
	VisibleToPlayer bool         `json:"visibleToPlayer"`
}

// Scene is one step of the story. Only the last scene of a GameState is
// still in progress.
type Scene struct {
	SceneID              int        `json:"sceneId"`
	Location             string     `json:"location"`
	Description          string     `json:"description,omitempty"`
	Time                 string     `json:"time,omitempty"`
	Weather              string     `json:"weather,omitempty"`
	Terrain              string     `json:"terrain,omitempty"`
	Plot                 string     `json:"plot"`
	InteractiveItems     []Item     `json:"interactiveItems"`
	InteractiveCreatures []Creature `json:"interactiveCreatures"`
	ActiveCreatures      []Creature `json:"activeCreatures,omitempty"`
}

// Environment is the scene minus its plot and its contents; it is what the
// oracle is asked to keep continuous.
type Environment struct {
	SceneID     int    `json:"sceneId"`
	Location    string `json:"location"`
	Description string `json:"description,omitempty"`
	Time        string `json:"time,omitempty"`
	Weather     string `json:"weather,omitempty"`
	Terrain     string `json:"terrain,omitempty"`
}

func (s *Scene) Environment() Environment {
	return Environment{
		SceneID:     s.SceneID,
		Location:    s.Location,
		Description: s.Description,
		Time:        s.Time,
		Weather:     s.Weather,
		Terrain:     s.Terrain,
	}
}

// IsActive reports whether c has already triggered in this scene.
func (s *Scene) IsActive(c Creature) bool {
	for _, a := range s.ActiveCreatures {
		if c.CreatureID != "" && a.CreatureID == c.CreatureID {
			return true
		}
		if c.CreatureID == "" && a.Name == c.Name {
			return true
		}
	}
	return false
}

// SceneDelta is a scene as the oracle generates it, carrying the
// generation-only fields that are folded into the game state and then dropped.
type SceneDelta struct {
	Scene
	NewTag      []string `json:"newTag"`
	RewardPool  []Item   `json:"rewardPool"`
	PenaltyPool []Item   `json:"penaltyPool"`
}

// StoredScene returns the storable scene without the generation-only fields.
func (d *SceneDelta) StoredScene() Scene {
	s := d.Scene
	if s.InteractiveItems == nil {
		s.InteractiveItems = make([]Item, 0)
	}
	if s.InteractiveCreatures == nil {
		s.InteractiveCreatures = make([]Creature, 0)
	}
	return s
}

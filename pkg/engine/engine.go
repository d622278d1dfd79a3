// Package engine resolves player actions into the next scene and keeps the
// persisted game state consistent across turns.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/ascent-engine/pkg/oracle"
	"github.com/jwebster45206/ascent-engine/pkg/roll"
	"github.com/jwebster45206/ascent-engine/pkg/storage"
	"github.com/jwebster45206/ascent-engine/pkg/world"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/jwebster45206/ascent-engine/pkg/engine"

// Oracle generates world content. Implementations must return decoded
// payloads or an error; the engine trusts the values it receives.
type Oracle interface {
	World(ctx context.Context, worldSetting, characterDescription string, tiers []world.LifeTier) (*oracle.WorldResult, error)
	Cast(ctx context.Context, w *oracle.WorldResult) (*oracle.CastResult, error)
	Probability(ctx context.Context, pc *oracle.ProbabilityContext) (*oracle.ProbabilityResult, error)
	Scene(ctx context.Context, sc *oracle.SceneContext) (*world.SceneDelta, error)
}

// Publisher receives notifications after a state change is committed.
type Publisher interface {
	PublishGameStarted(ctx context.Context, gameID uuid.UUID, location string) error
	PublishTurnCompleted(ctx context.Context, gameID uuid.UUID, sceneID int, success bool, outcome string) error
	PublishGameOver(ctx context.Context, gameID uuid.UUID, sceneID int) error
}

// Deps are the collaborators of an Engine. Store and Oracle are required.
type Deps struct {
	Store         storage.Storage
	Oracle        Oracle
	Rand          roll.Source   // defaults to a clock-seeded source
	IDs           IDFunc        // defaults to NewULID
	Publisher     Publisher     // optional
	OracleTimeout time.Duration // per oracle call; 0 disables
	Logger        *slog.Logger
}

// Engine runs initialization and turns against the single persisted game.
// Every operation that writes holds mu for its whole read-compute-write.
type Engine struct {
	mu            sync.Mutex
	store         storage.Storage
	oracle        Oracle
	rand          roll.Source
	ids           IDFunc
	publisher     Publisher
	oracleTimeout time.Duration
	logger        *slog.Logger
	tracer        trace.Tracer
}

func New(deps Deps) *Engine {
	e := &Engine{
		store:         deps.Store,
		oracle:        deps.Oracle,
		rand:          deps.Rand,
		ids:           deps.IDs,
		publisher:     deps.Publisher,
		oracleTimeout: deps.OracleTimeout,
		logger:        deps.Logger,
		tracer:        otel.Tracer(tracerName),
	}
	if e.rand == nil {
		e.rand = roll.NewRandom()
	}
	if e.ids == nil {
		e.ids = NewULID
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// InitRequest starts a new game.
type InitRequest struct {
	WorldSetting         string `json:"worldSetting"`
	CharacterDescription string `json:"characterDescription"`
}

// TurnResult is the caller-visible result of one action.
type TurnResult struct {
	State   *world.GameState // hidden creatures removed
	Outcome string
	LevelUp string
	Roll    Roll
}

// callOracle bounds one oracle call by the configured timeout and wraps
// any failure in a GenerationError.
func callOracle[T any](ctx context.Context, e *Engine, step string, fn func(context.Context) (T, error)) (T, error) {
	ctx, span := e.tracer.Start(ctx, "oracle."+step)
	defer span.End()

	if e.oracleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.oracleTimeout)
		defer cancel()
	}

	start := time.Now()
	v, err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.logger.Error("Oracle call failed", "step", step, "duration", time.Since(start), "error", err)
		var zero T
		return zero, &GenerationError{Step: step, Err: err}
	}
	e.logger.Debug("Oracle call finished", "step", step, "duration", time.Since(start))
	return v, nil
}

// Init builds a new world, player and opening scene, replacing any game in
// progress. It returns the player view of the new state.
func (e *Engine) Init(ctx context.Context, req InitRequest) (*world.GameState, error) {
	req.WorldSetting = strings.TrimSpace(req.WorldSetting)
	req.CharacterDescription = strings.TrimSpace(req.CharacterDescription)
	if req.WorldSetting == "" || req.CharacterDescription == "" {
		return nil, fmt.Errorf("%w: worldSetting and characterDescription are required", ErrInvalidInput)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	ctx, span := e.tracer.Start(ctx, "engine.Init")
	defer span.End()

	w, err := callOracle(ctx, e, "world", func(ctx context.Context) (*oracle.WorldResult, error) {
		return e.oracle.World(ctx, req.WorldSetting, req.CharacterDescription, world.DefaultLifeTiers)
	})
	if err != nil {
		return nil, err
	}
	cast, err := callOracle(ctx, e, "cast", func(ctx context.Context) (*oracle.CastResult, error) {
		return e.oracle.Cast(ctx, w)
	})
	if err != nil {
		return nil, err
	}
	opening, ok := cast.OpeningScene()
	if !ok {
		return nil, &GenerationError{Step: "cast", Err: fmt.Errorf("%w: no opening scene", oracle.ErrMalformedResponse)}
	}

	gs := world.NewGameState()
	gs.World = world.World{
		Setting:          w.WorldSet,
		LifeTiers:        w.WorldLife,
		PlayerBackground: w.PlayerBackground,
	}
	gs.Player = cast.PlayerInfo.Player()
	for _, item := range cast.PlayerEquipment {
		if !item.Type.Holdable() {
			e.logger.Warn("Ignoring starting equipment of unholdable type", "name", item.Name, "type", item.Type)
			continue
		}
		item.Amount = nil
		gs.Equipment = append(gs.Equipment, item)
	}
	assignItemIDs(gs.Equipment, e.ids)

	delta := world.SceneDelta{Scene: opening}
	scene := delta.StoredScene()
	scene.SceneID = 0
	scene.ActiveCreatures = nil
	assignSceneIDs(&scene, e.ids)
	gs.Scenes = append(gs.Scenes, scene)
	gs.PlotRecords = append(gs.PlotRecords, scene.Plot)

	if err := e.store.SaveGameState(ctx, gs); err != nil {
		return nil, fmt.Errorf("failed to save gamestate: %w", err)
	}
	span.SetAttributes(attribute.String("game.id", gs.ID.String()))
	e.logger.Info("Game initialized",
		"game_id", gs.ID,
		"player", gs.Player.Name,
		"tier", gs.Player.Tier,
		"luck", gs.Player.Luck,
		"location", scene.Location)

	if e.publisher != nil {
		if err := e.publisher.PublishGameStarted(ctx, gs.ID, scene.Location); err != nil {
			e.logger.Warn("Failed to publish game start", "game_id", gs.ID, "error", err)
		}
	}

	return gs.PlayerView()
}

// Act resolves one player action. Nothing is persisted unless the whole
// turn succeeds.
func (e *Engine) Act(ctx context.Context, input string) (*TurnResult, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("%w: input is required", ErrInvalidInput)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	ctx, span := e.tracer.Start(ctx, "engine.Act")
	defer span.End()

	current, err := e.store.LoadGameState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load gamestate: %w", err)
	}
	if current == nil {
		return nil, ErrNoGame
	}
	if current.GameOver {
		return nil, ErrGameOver
	}
	span.SetAttributes(attribute.String("game.id", current.ID.String()))

	gs, err := current.Clone()
	if err != nil {
		return nil, fmt.Errorf("failed to copy gamestate: %w", err)
	}
	scene := gs.CurrentScene()
	if scene == nil {
		return nil, fmt.Errorf("gamestate %s has no scenes", gs.ID)
	}

	disc := Discover(scene, gs.Player.Luck, e.rand, e.logger)
	levelUp := Evolve(&gs.Player, e.rand, e.logger)

	pc := probabilityContext(gs, input)
	prob, err := callOracle(ctx, e, "probability", func(ctx context.Context) (*oracle.ProbabilityResult, error) {
		return e.oracle.Probability(ctx, pc)
	})
	if err != nil {
		return nil, err
	}

	result := ResolveOutcome(prob.SuccessProbability, gs.Player.Luck, e.rand, e.logger)
	span.SetAttributes(
		attribute.Float64("turn.total_rate", result.TotalRate),
		attribute.Bool("turn.success", result.Success))

	sc := sceneContext(gs, pc, levelUp, result.Success)
	delta, err := callOracle(ctx, e, "scene", func(ctx context.Context) (*world.SceneDelta, error) {
		return e.oracle.Scene(ctx, sc)
	})
	if err != nil {
		return nil, err
	}

	notes := disc.Notes
	if levelUp != "" {
		notes = append(notes, levelUp)
	}
	if prob.Explanation != "" {
		notes = append(notes, prob.Explanation)
	}
	outcome := Merge(gs, delta, input, notes, e.ids, e.logger)
	gs.UpdatedAt = time.Now()

	if err := e.store.SaveGameState(ctx, gs); err != nil {
		return nil, fmt.Errorf("failed to save gamestate: %w", err)
	}

	sceneID := gs.CurrentScene().SceneID
	e.logger.Info("Turn completed",
		"game_id", gs.ID,
		"scene_id", sceneID,
		"success", result.Success,
		"health", gs.Player.Health,
		"tier", gs.Player.Tier,
		"game_over", gs.GameOver)
	e.publishTurn(ctx, gs, sceneID, result.Success, outcome)

	view, err := gs.PlayerView()
	if err != nil {
		return nil, fmt.Errorf("failed to build player view: %w", err)
	}
	return &TurnResult{
		State:   view,
		Outcome: outcome,
		LevelUp: levelUp,
		Roll:    result,
	}, nil
}

func (e *Engine) publishTurn(ctx context.Context, gs *world.GameState, sceneID int, success bool, outcome string) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.PublishTurnCompleted(ctx, gs.ID, sceneID, success, outcome); err != nil {
		e.logger.Warn("Failed to publish turn", "game_id", gs.ID, "error", err)
	}
	if gs.GameOver {
		if err := e.publisher.PublishGameOver(ctx, gs.ID, sceneID); err != nil {
			e.logger.Warn("Failed to publish game over", "game_id", gs.ID, "error", err)
		}
	}
}

// State returns the full persisted document, hidden creatures included.
func (e *Engine) State(ctx context.Context) (*world.GameState, error) {
	gs, err := e.store.LoadGameState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load gamestate: %w", err)
	}
	if gs == nil {
		return nil, ErrNoGame
	}
	return gs, nil
}

// Reset deletes the persisted game.
func (e *Engine) Reset(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.DeleteGameState(ctx); err != nil {
		return fmt.Errorf("failed to delete gamestate: %w", err)
	}
	e.logger.Info("Game reset")
	return nil
}

func probabilityContext(gs *world.GameState, input string) *oracle.ProbabilityContext {
	return &oracle.ProbabilityContext{
		WorldSet:        gs.World.Setting,
		LifeTiers:       gs.World.LifeTiers,
		PlayerInfo:      gs.Player,
		PlayerEquipment: gs.Equipment,
		PlayerTags:      gs.Player.Tags,
		LastItems:       gs.CurrentScene().InteractiveItems,
		PlotRecords:     gs.RecentPlot(world.PromptPlotLimit),
		PlayerAction:    input,
	}
}

func sceneContext(gs *world.GameState, pc *oracle.ProbabilityContext, levelUp string, success bool) *oracle.SceneContext {
	scene := gs.CurrentScene()
	if levelUp == "" {
		levelUp = "None"
	}
	randomEvents := scene.ActiveCreatures
	if randomEvents == nil {
		randomEvents = make([]world.Creature, 0)
	}
	return &oracle.SceneContext{
		ProbabilityContext: *pc,
		RandomEvents:       randomEvents,
		LastCreatures:      scene.InteractiveCreatures,
		LevelUpInfo:        levelUp,
		PreviousScene:      scene.Environment(),
		StoryLine:          success,
		SceneID:            gs.NextSceneID(),
	}
}

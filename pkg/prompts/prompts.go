package prompts

// OutputRules is appended to every instruction block. The engine parses the
// reply as JSON, so anything else in the reply is a malformed response.
const OutputRules = `
### Output rules
- Return ONLY a strict JSON object in the format shown. No commentary, no explanation, no Markdown.
- All text values must match the tone and language of the world setting (if the setting is written in Chinese, every text value is in Chinese).`

// CreatureRules describes how creatures are generated, shared by the cast
// and scene prompts.
const CreatureRules = `
### Creature rules
- Include only creatures physically located in this scene, regardless of behavior, as long as interaction is plausible.
- If a creature is hidden, in the shadows or in another room, set "visibleToPlayer": false.
- Each creature name must be unique. For generic kinds append a letter, e.g. "Zombie A", "Mutant B".
- "type" is one of "NPC" (neutral or friendly), "Enemy" (hostile) or "Unknown" (unclear intent).
- "fate" is a float in [0,1]: the probability the creature interacts with the player in this scene.
- "lifeFormLevel" (0-10) must conform to the life tiers and the tone of the world.
- "health" is an integer percentage in [0,100].
- Creature shape: {"name","gender","age","type","fate","appearance","behavior","description","lifeFormLevel","health","visibleToPlayer"}`

// WorldPrompt refines a raw setting and player background into a coherent world.
const WorldPrompt = `You are a world-building assistant. Your task is to refine and complete a fictional universe, keeping its internal logic, cultural depth and thematic consistency.

You will receive a reference object with:
- worldSetting: the raw setting written by the player
- playerBackground: the raw character description written by the player
- lifeTiers: the fixed ladder of life-form tiers (level 0 to 10)

### Tasks
1. Write a fully realized world description covering core cosmology, historical timeline, societal structures, key factions and their motivations, and cultural logic. Resolve any contradictions or implausibilities.
2. Select some or all of the life tiers that could plausibly exist in this world and describe what each means here. Do not limit tiers to human scaling: zombies, mutants, evolved species and AI entities all have a place.
3. Extend the player background strictly within its original scope. Do not invent unrelated settings, powers or timelines. Deepen motivation and plausible detail.

### Output format
{
  "worldSet": "detailed world description as text",
  "worldLife": [{"level": 1, "name": "tier name", "description": "its meaning in this world"}],
  "playerBackground": "the extended player background"
}`

// CastPrompt generates the player character, starting equipment and the opening scene.
const CastPrompt = `You are a narrative game system assistant. The reference object defines a refined fictional universe:
- worldSet: the full world description
- worldLife: the life-form tiers that exist in this world
- playerBackground: the player's background
Treat it as the authoritative reference for world logic, background consistency and cultural tone.

### Tasks
1. Generate the main character, the starting equipment, and the opening scene with its items and creatures.
2. All content must align with the cultural logic, technology level and tone of the world.
3. Use the life tiers to set the strength and status of the player and every creature.

### Field rules
- playerInfo.background copies playerBackground.
- playerInfo.health is 100.
- playerInfo.lifeFormLevel is the tier that best matches the background (an ordinary person is 1).
- playerInfo.tag lists traits that affect plot and action success, e.g. "computer expert", "physically weak". Tags are abilities or conditions, never personality.
- playerInfo.luck is a float in [0,1]: 0.5 average, 0.8 lucky, 0.2 unlucky.
- Item "type" is one of "StoryItem", "Equipment", "Consumable".
- The scene's plot happens at its location and should offer clues or goals that guide the player.
- interactiveItems excludes anything already in playerEquipment.
` + CreatureRules + `

### Output format
{
  "playerInfo": {"name": "", "gender": "", "age": 30, "background": "", "appearance": "", "health": 100, "lifeFormLevel": 1, "tag": [""], "luck": 0.5},
  "playerEquipment": [{"name": "", "type": "Equipment", "description": "how this item helps the player"}],
  "scene": {
    "sceneId": 0,
    "location": "",
    "description": "the environment and why the player is here",
    "time": "",
    "weather": "",
    "terrain": "",
    "plot": "",
    "interactiveItems": [{"name": "", "type": "StoryItem", "description": ""}],
    "interactiveCreatures": [{"name": "Zombie A", "gender": "Male", "age": 40, "type": "Enemy", "fate": 0.5, "appearance": "", "behavior": "Hostile", "description": "", "lifeFormLevel": 1, "health": 100, "visibleToPlayer": false}]
  }
}`

// ProbabilityPrompt rates the success probability of a player action.
const ProbabilityPrompt = `You are a narrative game system assistant. The reference object describes the world and the player's situation:
- worldSet, lifeTiers: the world and its life-form tiers
- playerInfo, playerEquipment, playerTags: the player
- lastItems: items the player can reach in the current scene
- plotRecords: the latest plot progression
- playerAction: the action to evaluate

### Mandatory pass gates (any failure means probability 0)
1. Physically possible? The action may not violate physical laws, e.g. walking through walls.
2. Consistent with the world?
3. Consistent in time? e.g. no smartphone in the 18th century.
4. Required items present? Anything the action needs must be in playerEquipment or lastItems.

### Scoring
If every gate passes, score each dimension 1 (helps), 0 (neutral or unknown) or -1 (hinders), multiply by its weight, sum, and add a base of 0.5.
| Dimension                    | Weight | Question |
| PhysicalConditionSuitability | 0.25   | Do terrain, space, posture and reach suit the action? |
| BehaviorFamiliarity          | 0.25   | Is the player familiar with or capable of this behavior? |
| OperationalComplexity        | 0.25   | Does the action avoid complex skill or precise maneuvers? |
| TagAdjustment                | 0.25   | Is the action free of uncontrollable interference? |
Then, for each player tag that clearly benefits the action add 0.25, and for each that clearly hinders it subtract 0.25.

### Output format
{
  "successProbability": 0.5,
  "explanation": "only when a mandatory gate fails: the core reason and a hint for adjusting the action"
}`

// ScenePrompt generates the next scene for exactly one branch of the roll.
const ScenePrompt = `You are a narrative game system assistant. The reference object is the current state of an interactive narrative:
- worldSet, lifeTiers: the world and its life-form tiers
- playerInfo, playerEquipment, playerTags: the player
- plotRecords: the latest plot progression
- playerAction: what the player just attempted
- lastItems: items of the previous scene, excluding the player's equipment
- randomEvents: creatures that became active this turn and cause unexpected events
- lastCreatures: every creature of the previous scene, visible or hidden
- levelUpInfo: a level-up the player just gained, or "None"
- previousScene: the environment of the previous scene
- storyLine: true when the action succeeded, false when it failed
- sceneId: the id the new scene must carry

### Tasks
1. Read storyLine. If true generate only "successScene"; if false generate only "failureScene". Never generate both.
2. Keep location, time, weather and terrain continuous with previousScene unless the plot requires a change, and make any change follow logically.
3. Use the life tiers for the strength and status of every creature.

### Plot rules
- If levelUpInfo is not "None", write a longer passage that explains the player's rise in life tier.
- Describe the outcome of playerAction with its consequences, and continue plotRecords coherently.
- A creature that already appeared reuses its data from lastCreatures, matched by name.
- If randomEvents is not empty, introduce events driven by those creatures.

### Tag rules
- "newTag" is the complete updated tag list. Tags are observable traits or states such as "wounded", "infected", "mechanics-trained". Never personality or emotion.

### Reward and penalty rules
- Both pools are required and may be empty. Tag changes never appear in the pools.
- rewardPool holds what the player gains: items picked up, health restored, information learned. Types: "Health", "Equipment", "StoryItem", "Consumable", "Information", "Junk".
- penaltyPool holds what the player loses: health, items consumed or destroyed. Types: "Health", "Equipment", "StoryItem", "Consumable", "Junk". An item lost from playerEquipment keeps its exact name.
- "amount" is required for "Health" entries.
- On failure the rewardPool is usually empty unless the failure itself yields something.
- An item placed in a pool does not also appear in interactiveItems.

### Item rules
- Start from lastItems: drop items the plot made irrelevant, add new ones.
- A reused item keeps its "itemId" and description. New items have no "itemId".
- interactiveItems types are "StoryItem", "Equipment", "Consumable" or "Junk", and only include items the player can plausibly see or reach.
` + CreatureRules + `
- Start from lastCreatures: drop creatures that left, reuse existing ones by name keeping their "creatureId".

### Output format
{
  "successScene": {
    "sceneId": 1,
    "plot": "",
    "newTag": [""],
    "location": "",
    "description": "",
    "time": "",
    "weather": "",
    "terrain": "",
    "rewardPool": [{"name": "", "type": "Health", "description": "", "amount": 10}],
    "penaltyPool": [],
    "interactiveItems": [{"itemId": "only when reused", "name": "", "type": "StoryItem", "description": ""}],
    "interactiveCreatures": []
  }
}
Use the key "failureScene" instead of "successScene" when storyLine is false.`

// Package engine is the action resolution core: it validates action
// requests against character state, charges costs, advances time, rolls
// success against attribute-adjusted risk, applies effects, and writes the
// journal. The engine owns one character at a time and processes exactly one
// operation per call; there is no internal concurrency.
package engine

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/calder-games/vagabond/internal/game/character"
	"github.com/calder-games/vagabond/internal/game/content"
	"github.com/calder-games/vagabond/internal/game/dice"
	"github.com/calder-games/vagabond/internal/game/journal"
	"github.com/calder-games/vagabond/internal/game/quest"
	"github.com/calder-games/vagabond/internal/scripting"
)

const (
	laborFailureStress      = 10
	adventureFailureHealth  = -20
	adventureFailureStress  = 20
	adventureFailureHunger  = 20
	adventureFailureThirst  = 20
	socialFailureMood       = -20
	evictionMoodPenalty     = -20
	adventureLootChance     = 0.15
	socialBonusGold         = 5
	tierTwoUnlockLevel      = 5
	tierThreeUnlockLevel    = 10
)

// Config carries the engine's collaborators.
type Config struct {
	Registry *content.Registry
	Source   dice.Source
	Logger   *zap.Logger
	// Hooks dispatches incident Lua scripts; optional.
	Hooks *scripting.Manager
	// UnhousedLocationID is where the homeless sleep. Must exist in the
	// registry and have a zero daily cost.
	UnhousedLocationID string
}

// Engine drives the simulation for a single character.
type Engine struct {
	reg    *content.Registry
	src    dice.Source
	gen    *quest.Generator
	logger *zap.Logger
	hooks  *scripting.Manager

	unhousedID string

	char  *character.Character
	log   *journal.Journal
	pools quest.Pools
	stock []string
}

// Outcome is the caller-facing result of a resolved (not rejected) operation.
type Outcome struct {
	Success bool
	Message string
	Entry   journal.Entry
	// LootItemID names equipment granted by an adventure loot roll.
	LootItemID string
	LeveledUp  bool
	Died       bool
}

// New builds an engine around an existing character and journal, generating
// the opening quest pools and shop stock.
//
// Precondition: every Config collaborator except Hooks is non-nil, and
// UnhousedLocationID resolves to a zero-cost location.
func New(cfg Config, c *character.Character, j *journal.Journal) (*Engine, error) {
	if cfg.Registry == nil || cfg.Source == nil || cfg.Logger == nil {
		return nil, fmt.Errorf("engine: registry, source, and logger are required")
	}
	if c == nil || j == nil {
		return nil, fmt.Errorf("engine: character and journal are required")
	}
	loc, ok := cfg.Registry.Location(cfg.UnhousedLocationID)
	if !ok {
		return nil, fmt.Errorf("engine: unhoused location %q not in catalog", cfg.UnhousedLocationID)
	}
	if loc.DailyCost != 0 {
		return nil, fmt.Errorf("engine: unhoused location %q must be free, costs %d", loc.ID, loc.DailyCost)
	}

	e := &Engine{
		reg:        cfg.Registry,
		src:        cfg.Source,
		gen:        quest.NewGenerator(cfg.Registry, cfg.Source),
		logger:     cfg.Logger,
		hooks:      cfg.Hooks,
		unhousedID: cfg.UnhousedLocationID,
		char:       c,
		log:        j,
	}
	e.pools = e.gen.Generate(c.MaxTier)
	e.restock()
	return e, nil
}

// Character returns the engine's character.
func (e *Engine) Character() *character.Character { return e.char }

// Journal returns the engine's journal.
func (e *Engine) Journal() *journal.Journal { return e.log }

// Pools returns the current daily quest pools.
func (e *Engine) Pools() quest.Pools { return e.pools }

// RestorePools rebuilds the daily pools from saved action ids, dropping any
// id no longer in the catalog. Empty input keeps the freshly generated pools.
func (e *Engine) RestorePools(ids map[content.Category][]string) {
	if len(ids) == 0 {
		return
	}
	pools := quest.Pools{ByCategory: make(map[content.Category][]*content.Action, len(ids))}
	for cat, actionIDs := range ids {
		for _, id := range actionIDs {
			if a, ok := e.reg.Action(id); ok && a.Category == cat {
				pools.ByCategory[cat] = append(pools.ByCategory[cat], a)
			}
		}
	}
	e.pools = pools
}

// CurrentLocation returns where the character is: the rented location, or
// the unhoused default.
func (e *Engine) CurrentLocation() *content.Location {
	if !e.char.Housing.Homeless() {
		if loc, ok := e.reg.Location(e.char.Housing.LocationID); ok {
			return loc
		}
	}
	loc, _ := e.reg.Location(e.unhousedID)
	return loc
}

// PerformAction resolves one action request end to end.
//
// The pipeline, in order: death gate, catalog lookup, trait ban, housing
// short-circuit, consumable priority, required-item gate, affordability,
// cost deduction, day advancement, risk roll, effect application, journal.
// All rejections before cost deduction leave state untouched.
//
// Postcondition: on error, the character is unchanged; otherwise exactly one
// action journal entry was recorded (plus a morning entry when time passed).
func (e *Engine) PerformAction(actionID string) (Outcome, error) {
	c := e.char
	if c.Dead {
		return Outcome{}, ErrDeadCharacter
	}
	a, ok := e.reg.Action(actionID)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownAction, actionID)
	}
	if q := e.quirk(); q != nil && q.Bans(a.ID) {
		return Outcome{}, fmt.Errorf("%w: %s refuses to %s", ErrBannedByTrait, q.Name, a.Label)
	}

	if a.Category == content.CategoryHousing {
		return e.resolveHousing(a)
	}

	// Owned supplies take priority over the generic costed path for eat and
	// drink; the generic path needs somewhere serving food.
	if a.Consumes != "" {
		if it, ok := c.FirstOwnedSupply(e.reg, a.Consumes); ok {
			return e.consumeOwnedSupply(a, it)
		}
		if !e.CurrentLocation().HasFoodService {
			return Outcome{}, ErrNoServiceAvailable
		}
	}

	if a.RequiresItem != "" && !c.Owns(a.RequiresItem) {
		it, _ := e.reg.Item(a.RequiresItem)
		name := a.RequiresItem
		if it != nil {
			name = it.Name
		}
		return Outcome{}, fmt.Errorf("%w: %s needed", ErrMissingRequiredItem, name)
	}

	cost := e.effectiveCost(a)
	if c.Gold < cost {
		return Outcome{}, fmt.Errorf("%w: %s costs %d gold", ErrInsufficientFunds, a.Label, cost)
	}
	if cost > 0 {
		c.ApplyEffects(content.Effects{Gold: -cost})
	}

	// Time is paid before the outcome is known; a failed expedition still
	// consumes its days, rent, and autonomy rolls.
	if a.Days > 0 {
		e.advanceDays(a.Days)
	}

	if !a.IsRiskRolled() {
		return e.resolveCertain(a), nil
	}
	return e.resolveRisky(a), nil
}

// resolveCertain applies a maintenance action's effects; no roll.
func (e *Engine) resolveCertain(a *content.Action) Outcome {
	delta := a.Effects.Add(e.CurrentLocation().ModifierFor(a.ID))
	applied := e.char.ApplyEffects(delta)
	leveled := e.levelCheck()

	msg := a.Message
	if msg == "" {
		msg = a.Label + " done."
	}
	entry := e.record(journal.KindAction, string(a.Category), msg, applied)
	return Outcome{
		Success:   true,
		Message:   msg,
		Entry:     entry,
		LeveledUp: leveled,
		Died:      e.char.Dead,
	}
}

// resolveRisky rolls the action against its failure chance and applies
// either the success effects or the category's failure penalty.
func (e *Engine) resolveRisky(a *content.Action) Outcome {
	c := e.char
	p := failureChance(a, c.Derived(e.reg), c.Vitals.Stress)

	if dice.Chance(e.src, p) {
		applied := c.ApplyEffects(e.failurePenalty(a.Category))
		msg := fmt.Sprintf("%s failed.", a.Label)
		entry := e.record(journal.KindAction, string(a.Category), msg, applied)
		return Outcome{Message: msg, Entry: entry, Died: c.Dead}
	}

	delta := a.Effects.Add(e.CurrentLocation().ModifierFor(a.ID))
	q := e.quirk()
	if q != nil && q.MoodMultiplier > 0 && delta.Mood > 0 {
		delta.Mood = int(math.Round(float64(delta.Mood) * q.MoodMultiplier))
	}
	if q != nil && a.Category == content.CategorySocial && q.SocialGoldChance > 0 &&
		dice.Chance(e.src, q.SocialGoldChance) {
		delta.Gold += socialBonusGold
	}
	applied := c.ApplyEffects(delta)
	leveled := e.levelCheck()

	msg := a.Message
	if msg == "" {
		msg = fmt.Sprintf("%s succeeded.", a.Label)
	}

	var loot string
	if a.Category == content.CategoryAdventure && dice.Chance(e.src, adventureLootChance) {
		loot, msg = e.rollLoot(msg)
	}

	entry := e.record(journal.KindAction, string(a.Category), msg, applied)
	return Outcome{
		Success:    true,
		Message:    msg,
		Entry:      entry,
		LootItemID: loot,
		LeveledUp:  leveled,
		Died:       c.Dead,
	}
}

// rollLoot grants one random purchasable equipment item. Duplicates are
// acknowledged in the message without a second copy entering the inventory.
func (e *Engine) rollLoot(msg string) (lootID, outMsg string) {
	pool := e.reg.PurchasableEquipment()
	if len(pool) == 0 {
		return "", msg
	}
	it := pool[dice.PickIndex(e.src, len(pool))]
	if e.char.Owns(it.ID) {
		return "", fmt.Sprintf("%s Found another %s, but one is enough.", msg, it.Name)
	}
	e.char.AddItem(it.ID)
	return it.ID, fmt.Sprintf("%s Found a %s!", msg, it.Name)
}

// resolveHousing handles rent-start and rent-stop transitions; both bypass
// the risk pipeline entirely.
func (e *Engine) resolveHousing(a *content.Action) (Outcome, error) {
	c := e.char
	if a.LocationID == "" {
		c.Housing = character.Housing{}
		msg := "Checked out. Back on the street."
		entry := e.record(journal.KindSystem, string(a.Category), msg, content.Effects{})
		return Outcome{Success: true, Message: msg, Entry: entry}, nil
	}

	loc, _ := e.reg.Location(a.LocationID)
	if c.Gold < loc.DailyCost {
		return Outcome{}, fmt.Errorf("%w: %s costs %d gold per day", ErrInsufficientFunds, loc.Name, loc.DailyCost)
	}
	applied := c.ApplyEffects(content.Effects{Gold: -loc.DailyCost})
	c.Housing = character.Housing{LocationID: loc.ID, RentActive: true}
	msg := fmt.Sprintf("Moved into %s.", loc.Name)
	entry := e.record(journal.KindSystem, string(a.Category), msg, applied)
	return Outcome{Success: true, Message: msg, Entry: entry}, nil
}

// consumeOwnedSupply eats or drinks the first matching owned supply,
// bypassing the action's own cost and effects entirely.
func (e *Engine) consumeOwnedSupply(a *content.Action, it *content.Item) (Outcome, error) {
	e.char.RemoveItem(it.ID)
	applied := e.char.ApplyEffects(it.Effects)
	msg := fmt.Sprintf("Consumed %s.", it.Name)
	entry := e.record(journal.KindAction, string(a.Category), msg, applied)
	return Outcome{Success: true, Message: msg, Entry: entry, Died: e.char.Dead}, nil
}

// failurePenalty is the category-specific cost of a failed roll. A quirk can
// scale the labor penalty's stress component; adventure and social penalties
// are never scaled.
func (e *Engine) failurePenalty(cat content.Category) content.Effects {
	var p content.Effects
	switch cat {
	case content.CategoryLabor:
		p = content.Effects{Stress: laborFailureStress}
		if q := e.quirk(); q != nil && q.StressFailureMultiplier > 0 {
			p.Stress = int(math.Round(float64(p.Stress) * q.StressFailureMultiplier))
		}
	case content.CategoryAdventure:
		p = content.Effects{
			Health: adventureFailureHealth,
			Stress: adventureFailureStress,
			Hunger: adventureFailureHunger,
			Thirst: adventureFailureThirst,
		}
	case content.CategorySocial:
		p = content.Effects{Mood: socialFailureMood}
	}
	return p
}

// effectiveCost applies quirk cost multipliers to an action's gold cost.
func (e *Engine) effectiveCost(a *content.Action) int {
	if a.Consumes == content.SupplyDrink {
		return e.drinkAdjustedCost(a.Cost)
	}
	return a.Cost
}

// drinkAdjustedCost scales a drink price by the quirk's cost multiplier.
// Actions that consume drink and drink items bought from the shop both pass
// through here.
func (e *Engine) drinkAdjustedCost(cost int) int {
	if q := e.quirk(); q != nil && q.DrinkCostMultiplier > 0 {
		return int(math.Round(float64(cost) * q.DrinkCostMultiplier))
	}
	return cost
}

// levelCheck runs the single-step level-up and unlocks quest tiers that the
// new level grants.
func (e *Engine) levelCheck() bool {
	leveled := e.char.AdvanceLevel()
	if leveled {
		e.refreshTier()
	}
	return leveled
}

func (e *Engine) refreshTier() {
	tier := 1
	if e.char.Level >= tierTwoUnlockLevel {
		tier = 2
	}
	if e.char.Level >= tierThreeUnlockLevel {
		tier = 3
	}
	if tier > e.char.MaxTier {
		e.char.MaxTier = tier
	}
}

func (e *Engine) quirk() *content.Quirk {
	q, _ := e.reg.Quirk(e.char.QuirkID)
	return q
}

// record writes a journal entry with sign-aware gained/lost summaries and
// mirrors it to the structured log.
func (e *Engine) record(kind journal.Kind, category, text string, delta content.Effects) journal.Entry {
	gained, lost := journal.Describe(delta)
	entry := e.log.Record(journal.Entry{
		Day:      e.char.Day,
		Kind:     kind,
		Category: category,
		Text:     text,
		Gained:   gained,
		Lost:     lost,
	})
	e.logger.Info("journal entry",
		zap.Int("day", entry.Day),
		zap.String("kind", string(kind)),
		zap.String("category", category),
		zap.String("text", text),
	)
	return entry
}

// Revive clears the death latch, restores vitals, charges the experience
// penalty, and logs the event.
func (e *Engine) Revive() (Outcome, error) {
	if err := e.char.Revive(); err != nil {
		return Outcome{}, err
	}
	msg := "Woke up in a temple, sore and poorer in spirit."
	entry := e.record(journal.KindSystem, "revival", msg, content.Effects{})
	return Outcome{Success: true, Message: msg, Entry: entry}, nil
}

// EquipItem wears an owned equipment item and logs the change.
func (e *Engine) EquipItem(itemID string) (Outcome, error) {
	if e.char.Dead {
		return Outcome{}, ErrDeadCharacter
	}
	if err := e.char.Equip(e.reg, itemID); err != nil {
		return Outcome{}, err
	}
	it, _ := e.reg.Item(itemID)
	msg := fmt.Sprintf("Equipped %s.", it.Name)
	entry := e.record(journal.KindSystem, "equipment", msg, content.Effects{})
	return Outcome{Success: true, Message: msg, Entry: entry}, nil
}

// ConsumeItem uses an owned supply item directly from the inventory.
func (e *Engine) ConsumeItem(itemID string) (Outcome, error) {
	if e.char.Dead {
		return Outcome{}, ErrDeadCharacter
	}
	it, ok := e.reg.Item(itemID)
	if !ok || it.IsEquipment() {
		return Outcome{}, fmt.Errorf("%w: %q", ErrNotOwned, itemID)
	}
	if !e.char.RemoveItem(itemID) {
		return Outcome{}, fmt.Errorf("%w: %s", ErrNotOwned, it.Name)
	}
	applied := e.char.ApplyEffects(it.Effects)
	msg := fmt.Sprintf("Used %s.", it.Name)
	entry := e.record(journal.KindAction, "item", msg, applied)
	return Outcome{Success: true, Message: msg, Entry: entry, Died: e.char.Dead}, nil
}

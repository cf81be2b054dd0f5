// Package content defines the static game content catalogs: items, actions,
// quests, locations, quirks, and autonomy incidents. Content is authored as
// YAML and loaded into a validated Registry; the engine never hardcodes
// gameplay data, so new content can ship without engine changes.
package content

// Slot identifies an equipment slot.
type Slot string

const (
	// SlotHead is the head equipment slot.
	SlotHead Slot = "head"
	// SlotBody is the body equipment slot.
	SlotBody Slot = "body"
	// SlotMainHand is the main-hand equipment slot.
	SlotMainHand Slot = "mainHand"
	// SlotOffHand is the off-hand equipment slot.
	SlotOffHand Slot = "offHand"
)

// EquipSlots lists every equippable slot in canonical order.
var EquipSlots = []Slot{SlotHead, SlotBody, SlotMainHand, SlotOffHand}

// SupplyType classifies a consumable item.
type SupplyType string

const (
	// SupplyFood satisfies the eat action.
	SupplyFood SupplyType = "food"
	// SupplyDrink satisfies the drink action.
	SupplyDrink SupplyType = "drink"
	// SupplyPotion is consumed directly from the inventory.
	SupplyPotion SupplyType = "potion"
)

// Category classifies an action.
type Category string

const (
	// CategoryMaintenance actions always succeed (eat, drink, rest, train...).
	CategoryMaintenance Category = "maintenance"
	// CategoryLabor actions are risk-rolled daily jobs.
	CategoryLabor Category = "labor"
	// CategoryAdventure actions are risk-rolled multi-day expeditions.
	CategoryAdventure Category = "adventure"
	// CategorySocial actions are risk-rolled charisma plays.
	CategorySocial Category = "social"
	// CategoryHousing actions toggle the rent state.
	CategoryHousing Category = "housing"
)

// QuestCategories lists the risk-rolled categories that fill daily pools.
var QuestCategories = []Category{CategoryLabor, CategoryAdventure, CategorySocial}

// MaxTier is the highest quest content tier that exists.
const MaxTier = 3

// Effects is a bundle of vital and resource deltas carried by content.
// Zero-valued fields mean "no change"; negative hunger/thirst/stress deltas
// are beneficial.
type Effects struct {
	Health int `yaml:"health"`
	Mood   int `yaml:"mood"`
	Hunger int `yaml:"hunger"`
	Thirst int `yaml:"thirst"`
	Stress int `yaml:"stress"`
	Gold   int `yaml:"gold"`
	XP     int `yaml:"xp"`
}

// IsZero reports whether the bundle carries no deltas at all.
func (e Effects) IsZero() bool {
	return e == Effects{}
}

// Add returns the field-wise sum of e and other.
func (e Effects) Add(other Effects) Effects {
	return Effects{
		Health: e.Health + other.Health,
		Mood:   e.Mood + other.Mood,
		Hunger: e.Hunger + other.Hunger,
		Thirst: e.Thirst + other.Thirst,
		Stress: e.Stress + other.Stress,
		Gold:   e.Gold + other.Gold,
		XP:     e.XP + other.XP,
	}
}

// AttributeBonus holds flat derived-attribute bonuses granted by equipment
// or a quirk.
type AttributeBonus struct {
	AC  int `yaml:"ac"`
	Str int `yaml:"str"`
	Dex int `yaml:"dex"`
	Con int `yaml:"con"`
	Int int `yaml:"int"`
	Cha int `yaml:"cha"`
}

// Add returns the field-wise sum of b and other.
func (b AttributeBonus) Add(other AttributeBonus) AttributeBonus {
	return AttributeBonus{
		AC:  b.AC + other.AC,
		Str: b.Str + other.Str,
		Dex: b.Dex + other.Dex,
		Con: b.Con + other.Con,
		Int: b.Int + other.Int,
		Cha: b.Cha + other.Cha,
	}
}

// Item is a static content entity referenced from inventories by id.
// Exactly one of Slot or Supply is set: equipment occupies a slot and grants
// attribute bonuses; supplies have a SupplyType and consumption effects.
type Item struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Slot        Slot           `yaml:"slot"`
	Supply      SupplyType     `yaml:"supply"`
	Cost        int            `yaml:"cost"`
	Bonuses     AttributeBonus `yaml:"bonuses"`
	Effects     Effects        `yaml:"effects"`
	Description string         `yaml:"description"`
}

// IsEquipment reports whether the item occupies an equipment slot.
func (i *Item) IsEquipment() bool {
	return i.Slot != ""
}

// Purchasable reports whether the item can be bought or sold. Cost 0 marks
// starting gear and free supplies that never enter the shop.
func (i *Item) Purchasable() bool {
	return i.Cost > 0
}

// Action is a static content entity describing a player-triggerable operation.
type Action struct {
	ID           string   `yaml:"id"`
	Label        string   `yaml:"label"`
	Category     Category `yaml:"category"`
	Cost         int      `yaml:"cost"`
	Days         int      `yaml:"days"`
	Tier         int      `yaml:"tier"`
	Risk         float64  `yaml:"risk"`
	RequiresItem string   `yaml:"requires_item"`
	// Consumes marks an action that prefers an owned supply of this type
	// (eat, drink) over its generic location-service path.
	Consumes SupplyType `yaml:"consumes"`
	// LocationID targets a housing action at a rentable location. A housing
	// action without a location ends the current lease instead.
	LocationID  string  `yaml:"location"`
	Effects     Effects `yaml:"effects"`
	Message     string  `yaml:"message"`
	Description string  `yaml:"description"`
}

// IsRiskRolled reports whether resolving the action draws a success roll.
// Maintenance and housing actions always succeed.
func (a *Action) IsRiskRolled() bool {
	switch a.Category {
	case CategoryLabor, CategoryAdventure, CategorySocial:
		return true
	}
	return false
}

// Location is a static content entity describing somewhere the character
// can sleep and act.
type Location struct {
	ID              string             `yaml:"id"`
	Name            string             `yaml:"name"`
	DailyCost       int                `yaml:"daily_cost"`
	HasFoodService  bool               `yaml:"has_food_service"`
	Description     string             `yaml:"description"`
	Rest            Effects            `yaml:"rest"`
	ActionModifiers map[string]Effects `yaml:"action_modifiers"`
}

// ModifierFor returns the location's additive delta for the given action id.
// Unknown action ids yield a zero bundle.
func (l *Location) ModifierFor(actionID string) Effects {
	if l.ActionModifiers == nil {
		return Effects{}
	}
	return l.ActionModifiers[actionID]
}

// Quirk is a permanent character trait assigned once at creation.
// All modifier fields are optional; zero values mean the quirk does not
// touch that mechanic.
type Quirk struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Bonuses     AttributeBonus `yaml:"bonuses"`
	// BannedActions lists action ids the character refuses or cannot grasp.
	BannedActions []string `yaml:"banned_actions"`
	// SocialGoldChance is the probability of a 5-gold bonus on social success.
	SocialGoldChance float64 `yaml:"social_gold_chance"`
	// DrinkCostMultiplier scales drink-related costs (0 = unmodified).
	DrinkCostMultiplier float64 `yaml:"drink_cost_multiplier"`
	// MoodMultiplier scales positive mood gains on success (0 = unmodified).
	MoodMultiplier float64 `yaml:"mood_multiplier"`
	// StressFailureMultiplier scales the labor failure stress penalty (0 = unmodified).
	StressFailureMultiplier float64 `yaml:"stress_failure_multiplier"`
	// JunkChance is the nightly probability of finding worthless junk.
	JunkChance float64 `yaml:"junk_chance"`
}

// Bans reports whether the quirk forbids the given action id.
func (q *Quirk) Bans(actionID string) bool {
	for _, id := range q.BannedActions {
		if id == actionID {
			return true
		}
	}
	return false
}

// Severity classifies an autonomy incident pool.
type Severity string

const (
	// SeverityMinor incidents fire in the safe and risk zones.
	SeverityMinor Severity = "minor"
	// SeverityMajor incidents fire in the crisis zone.
	SeverityMajor Severity = "major"
)

// Incident is an unprompted narrative event triggered during day advancement.
type Incident struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Text     string   `yaml:"text"`
	Severity Severity `yaml:"severity"`
	Effects  Effects  `yaml:"effects"`
	// Eviction forces the character back onto the street.
	Eviction bool `yaml:"eviction"`
	// EquipmentLoss strips one random non-default equipped item.
	EquipmentLoss bool `yaml:"equipment_loss"`
	// Script names an optional Lua hook that contributes extra deltas.
	Script string `yaml:"script"`
}

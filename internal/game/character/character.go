// Package character holds the single mutable aggregate the simulation runs
// against: base attributes, clamped vitals, resources, inventory, equipment,
// housing, and the death latch. All rule arithmetic that depends only on
// character state lives here; content-driven resolution lives in the engine.
package character

import (
	"fmt"

	"github.com/calder-games/vagabond/internal/game/content"
)

// StartingGold is the purse every new character begins with.
const StartingGold = 50

// ReviveXPPenalty is deducted from experience on revival, floored at zero.
const ReviveXPPenalty = 50

// Attributes are the five base scores allocated at creation. They never
// change after creation; effective scores come from Derived.
type Attributes struct {
	Str int `json:"str"`
	Dex int `json:"dex"`
	Con int `json:"con"`
	Int int `json:"int"`
	Cha int `json:"cha"`
}

// Appearance is cosmetic only. The simulation carries it untouched so
// renderers and saves round-trip it.
type Appearance struct {
	Gender    string `json:"gender"`
	SkinTone  string `json:"skinTone"`
	HairColor string `json:"hairColor"`
	HairStyle string `json:"hairStyle"`
	EyeColor  string `json:"eyeColor"`
}

// Housing tracks where the character sleeps. A zero LocationID means
// homeless; RentActive gates automatic rent charges on day advancement.
type Housing struct {
	LocationID string `json:"locationId"`
	RentActive bool   `json:"rentActive"`
}

// Homeless reports whether the character has no lodging.
func (h Housing) Homeless() bool {
	return h.LocationID == ""
}

// Character is the simulation aggregate. It is not safe for concurrent use;
// the engine processes exactly one operation at a time against it.
//
// Invariant: Gold >= 0, XP >= 0, Level >= 1, and every equipped slot maps to
// an item id valid for that slot.
type Character struct {
	Name       string                  `json:"name"`
	Attributes Attributes              `json:"attributes"`
	Vitals     Vitals                  `json:"vitals"`
	Gold       int                     `json:"gold"`
	XP         int                     `json:"xp"`
	Level      int                     `json:"level"`
	Inventory  []string                `json:"inventory"`
	Equipped   map[content.Slot]string `json:"equipped"`
	Appearance Appearance              `json:"appearance"`
	Housing    Housing                 `json:"housing"`
	QuirkID    string                  `json:"quirk"`
	Day        int                     `json:"day"`
	MaxTier    int                     `json:"maxTier"`

	// Dead latches true when vitals turn lethal and stays true until Revive.
	Dead bool `json:"dead"`
}

// Maxima returns the current vital upper bounds.
func (c *Character) Maxima() Maxima {
	return MaximaFor(c.Level, c.Attributes.Con)
}

// ApplyEffects applies a delta bundle to vitals, gold, and experience and
// returns the change that actually landed after clamping. Gold and XP are
// floored at zero. The death latch is refreshed afterwards.
//
// Postcondition: the returned Effects are the exact field-wise differences
// between the post and pre states.
func (c *Character) ApplyEffects(delta content.Effects) content.Effects {
	bounds := c.Maxima()
	before := c.Vitals
	goldBefore, xpBefore := c.Gold, c.XP

	c.Vitals = c.Vitals.Apply(delta, bounds)
	c.Gold = max(0, c.Gold+delta.Gold)
	c.XP = max(0, c.XP+delta.XP)

	if !c.Dead && c.Vitals.lethal(bounds) {
		c.Dead = true
	}

	return content.Effects{
		Health: c.Vitals.Health - before.Health,
		Mood:   c.Vitals.Mood - before.Mood,
		Hunger: c.Vitals.Hunger - before.Hunger,
		Thirst: c.Vitals.Thirst - before.Thirst,
		Stress: c.Vitals.Stress - before.Stress,
		Gold:   c.Gold - goldBefore,
		XP:     c.XP - xpBefore,
	}
}

// AdvanceLevel performs a single level-up check: if XP has reached
// level*100, the level increases by exactly one. A grant that crosses two
// thresholds still advances one level per resolution.
func (c *Character) AdvanceLevel() bool {
	if c.XP >= c.Level*100 {
		c.Level++
		return true
	}
	return false
}

// Revive clears the death latch and resets the character to a survivable
// state: full health and mood, zero hunger, thirst, and stress. Costs
// ReviveXPPenalty experience (floored at zero) and forfeits any lodging.
//
// Precondition: Dead is true. Calling Revive on a living character is a
// programming error and returns an error without mutating state.
func (c *Character) Revive() error {
	if !c.Dead {
		return fmt.Errorf("character %s is not dead", c.Name)
	}
	bounds := c.Maxima()
	c.Vitals = Vitals{Health: bounds.Health, Mood: bounds.Mood}
	c.XP = max(0, c.XP-ReviveXPPenalty)
	c.Housing = Housing{}
	c.Dead = false
	return nil
}

// Owns reports whether the inventory contains at least one copy of the item.
func (c *Character) Owns(itemID string) bool {
	for _, id := range c.Inventory {
		if id == itemID {
			return true
		}
	}
	return false
}

// AddItem appends one copy of the item to the inventory. Duplicates are
// allowed; the inventory is a multiset.
func (c *Character) AddItem(itemID string) {
	c.Inventory = append(c.Inventory, itemID)
}

// RemoveItem removes the first occurrence of the item from the inventory and
// reports whether a copy was found.
func (c *Character) RemoveItem(itemID string) bool {
	for i, id := range c.Inventory {
		if id == itemID {
			c.Inventory = append(c.Inventory[:i], c.Inventory[i+1:]...)
			return true
		}
	}
	return false
}

// FirstOwnedSupply returns the first inventory item of the given supply type,
// scanning in inventory order.
func (c *Character) FirstOwnedSupply(reg *content.Registry, supply content.SupplyType) (*content.Item, bool) {
	for _, id := range c.Inventory {
		it, ok := reg.Item(id)
		if ok && it.Supply == supply {
			return it, true
		}
	}
	return nil, false
}

// Equip places the item into its slot. Equipped gear stays in the inventory;
// the slot only references it. Equipping an already-equipped item is a no-op.
//
// Precondition: itemID must name an equipment item the character owns, or a
// zero-cost default for the slot.
func (c *Character) Equip(reg *content.Registry, itemID string) error {
	it, ok := reg.Item(itemID)
	if !ok {
		return fmt.Errorf("unknown item %q", itemID)
	}
	if !it.IsEquipment() {
		return fmt.Errorf("item %q is not equipment", itemID)
	}
	if it.Purchasable() && !c.Owns(itemID) {
		return fmt.Errorf("item %q is not in the inventory", itemID)
	}
	c.Equipped[it.Slot] = itemID
	return nil
}

// IsEquipped reports whether any slot currently references the item.
func (c *Character) IsEquipped(itemID string) bool {
	for _, id := range c.Equipped {
		if id == itemID {
			return true
		}
	}
	return false
}

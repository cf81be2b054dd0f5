package character

import "github.com/calder-games/vagabond/internal/game/content"

// Derived are the effective scores used by risk formulas: base attributes
// plus equipment bonuses plus quirk bonuses, seeded with a flat armor class
// of 10. Recomputed on every read; never stored.
type Derived struct {
	AC  int
	Str int
	Dex int
	Con int
	Int int
	Cha int
}

const baseArmorClass = 10

// Derived computes the effective attribute view from the character's base
// scores, every equipped item's bonuses, and the quirk's bonuses.
//
// Postcondition: the result reflects the current Attributes, Equipped, and
// QuirkID; callers must not cache it across mutations of those inputs.
func (c *Character) Derived(reg *content.Registry) Derived {
	bonus := content.AttributeBonus{}
	for _, slot := range content.EquipSlots {
		if it, ok := reg.Item(c.Equipped[slot]); ok {
			bonus = bonus.Add(it.Bonuses)
		}
	}
	if q, ok := reg.Quirk(c.QuirkID); ok {
		bonus = bonus.Add(q.Bonuses)
	}
	return Derived{
		AC:  baseArmorClass + bonus.AC,
		Str: c.Attributes.Str + bonus.Str,
		Dex: c.Attributes.Dex + bonus.Dex,
		Con: c.Attributes.Con + bonus.Con,
		Int: c.Attributes.Int + bonus.Int,
		Cha: c.Attributes.Cha + bonus.Cha,
	}
}

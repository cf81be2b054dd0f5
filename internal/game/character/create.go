package character

import (
	"fmt"

	"github.com/calder-games/vagabond/internal/game/content"
)

const (
	// BaseAttributeScore is the starting value of every attribute before
	// bonus points are spent.
	BaseAttributeScore = 10
	// AttributePointPool is the number of bonus points distributable at
	// creation.
	AttributePointPool = 10
)

// CreationParams describe a new character. Bonus holds the creation points
// spent on top of the base score per attribute.
type CreationParams struct {
	Name       string
	Bonus      Attributes
	Appearance Appearance
	QuirkID    string
}

// New builds a level-1 character from creation parameters, equipping the
// zero-cost default item in every slot the catalog defines.
//
// Precondition: every Bonus field is >= 0 and their sum is <= AttributePointPool.
// Postcondition: the character is alive, homeless, holds StartingGold, and
// every populated slot references a valid default item.
func New(p CreationParams, reg *content.Registry) (*Character, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("character name must not be empty")
	}
	if err := validateBonus(p.Bonus); err != nil {
		return nil, err
	}
	if p.QuirkID != "" {
		if _, ok := reg.Quirk(p.QuirkID); !ok {
			return nil, fmt.Errorf("unknown quirk %q", p.QuirkID)
		}
	}

	c := &Character{
		Name: p.Name,
		Attributes: Attributes{
			Str: BaseAttributeScore + p.Bonus.Str,
			Dex: BaseAttributeScore + p.Bonus.Dex,
			Con: BaseAttributeScore + p.Bonus.Con,
			Int: BaseAttributeScore + p.Bonus.Int,
			Cha: BaseAttributeScore + p.Bonus.Cha,
		},
		Gold:       StartingGold,
		Level:      1,
		Equipped:   make(map[content.Slot]string, len(content.EquipSlots)),
		Appearance: p.Appearance,
		QuirkID:    p.QuirkID,
		Day:        1,
		MaxTier:    1,
	}

	max := c.Maxima()
	c.Vitals = Vitals{Health: max.Health, Mood: 50}

	for _, slot := range content.EquipSlots {
		for _, it := range reg.EquipmentForSlot(slot) {
			if it.Cost == 0 {
				c.Equipped[slot] = it.ID
				break
			}
		}
	}
	return c, nil
}

func validateBonus(b Attributes) error {
	for _, v := range []int{b.Str, b.Dex, b.Con, b.Int, b.Cha} {
		if v < 0 {
			return fmt.Errorf("attribute bonus must not be negative")
		}
	}
	spent := b.Str + b.Dex + b.Con + b.Int + b.Cha
	if spent > AttributePointPool {
		return fmt.Errorf("attribute bonus total %d exceeds the pool of %d", spent, AttributePointPool)
	}
	return nil
}

// Package save defines the serializable snapshot of a running game and the
// merge-with-defaults restore path: a partial or field-stripped save never
// fails to load, it silently backfills each missing field from a fresh
// character's defaults.
package save

import (
	"encoding/json"
	"fmt"

	"github.com/calder-games/vagabond/internal/game/character"
	"github.com/calder-games/vagabond/internal/game/content"
	"github.com/calder-games/vagabond/internal/game/journal"
	"github.com/calder-games/vagabond/internal/game/quest"
)

// Snapshot is the persisted shape of a session. Pointer and nil-able fields
// distinguish "absent from the save" from zero values so restore can
// backfill defaults per field.
type Snapshot struct {
	Name        string                        `json:"name,omitempty"`
	Attributes  *character.Attributes         `json:"attributes,omitempty"`
	Vitals      *character.Vitals             `json:"vitals,omitempty"`
	Gold        *int                          `json:"gold,omitempty"`
	XP          *int                          `json:"xp,omitempty"`
	Level       *int                          `json:"level,omitempty"`
	Inventory   []string                      `json:"inventory,omitempty"`
	Equipped    map[content.Slot]string       `json:"equipped,omitempty"`
	Appearance  *character.Appearance         `json:"appearance,omitempty"`
	Housing     *character.Housing            `json:"housing,omitempty"`
	Day         *int                          `json:"day,omitempty"`
	MaxTier     *int                          `json:"maxTier,omitempty"`
	QuirkID     *string                       `json:"quirk,omitempty"`
	Dead        *bool                         `json:"dead,omitempty"`
	DailyQuests map[content.Category][]string `json:"dailyQuests,omitempty"`
	ShopStock   []string                      `json:"shopStock,omitempty"`
	Log         []journal.Entry               `json:"log,omitempty"`
}

// Capture snapshots a live session.
func Capture(c *character.Character, j *journal.Journal, pools quest.Pools, stock []string) Snapshot {
	quests := make(map[content.Category][]string, len(pools.ByCategory))
	for cat, actions := range pools.ByCategory {
		ids := make([]string, len(actions))
		for i, a := range actions {
			ids[i] = a.ID
		}
		quests[cat] = ids
	}
	return Snapshot{
		Name:        c.Name,
		Attributes:  &c.Attributes,
		Vitals:      &c.Vitals,
		Gold:        &c.Gold,
		XP:          &c.XP,
		Level:       &c.Level,
		Inventory:   c.Inventory,
		Equipped:    c.Equipped,
		Appearance:  &c.Appearance,
		Housing:     &c.Housing,
		Day:         &c.Day,
		MaxTier:     &c.MaxTier,
		QuirkID:     &c.QuirkID,
		Dead:        &c.Dead,
		DailyQuests: quests,
		ShopStock:   append([]string(nil), stock...),
		Log:         j.Entries(),
	}
}

// Encode marshals the snapshot for storage.
func (s Snapshot) Encode() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding save: %w", err)
	}
	return data, nil
}

// Decode parses a stored snapshot. Unknown fields are ignored; missing
// fields stay nil for Restore to backfill. Only malformed JSON fails.
func Decode(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decoding save: %w", err)
	}
	return s, nil
}

// Restore rebuilds a character and journal from the snapshot, backfilling
// every absent field from a fresh character's defaults. References that no
// longer resolve against the catalog (quirk, equipped gear) fall back to
// defaults rather than failing.
//
// Postcondition: the returned character satisfies the aggregate's
// invariants regardless of which snapshot fields were present.
func (s Snapshot) Restore(reg *content.Registry) (*character.Character, *journal.Journal, error) {
	name := s.Name
	if name == "" {
		name = "Vagabond"
	}
	c, err := character.New(character.CreationParams{Name: name}, reg)
	if err != nil {
		return nil, nil, fmt.Errorf("restoring save: %w", err)
	}

	if s.Attributes != nil {
		c.Attributes = *s.Attributes
	}
	if s.Level != nil && *s.Level >= 1 {
		c.Level = *s.Level
	}
	if s.Vitals != nil {
		// Re-clamp against the restored level and constitution.
		c.Vitals = character.Vitals{}.Apply(content.Effects{
			Health: s.Vitals.Health,
			Mood:   s.Vitals.Mood,
			Hunger: s.Vitals.Hunger,
			Thirst: s.Vitals.Thirst,
			Stress: s.Vitals.Stress,
		}, c.Maxima())
	} else {
		c.Vitals = character.Vitals{Health: c.Maxima().Health, Mood: 50}
	}
	if s.Gold != nil && *s.Gold >= 0 {
		c.Gold = *s.Gold
	}
	if s.XP != nil && *s.XP >= 0 {
		c.XP = *s.XP
	}
	if s.Inventory != nil {
		c.Inventory = append([]string(nil), s.Inventory...)
	}
	for slot, id := range s.Equipped {
		if it, ok := reg.Item(id); ok && it.Slot == slot {
			c.Equipped[slot] = id
		}
	}
	if s.Appearance != nil {
		c.Appearance = *s.Appearance
	}
	if s.Housing != nil {
		if _, ok := reg.Location(s.Housing.LocationID); ok || s.Housing.LocationID == "" {
			c.Housing = *s.Housing
		}
	}
	if s.Day != nil && *s.Day >= 1 {
		c.Day = *s.Day
	}
	if s.MaxTier != nil && *s.MaxTier >= 1 && *s.MaxTier <= content.MaxTier {
		c.MaxTier = *s.MaxTier
	}
	if s.QuirkID != nil {
		if _, ok := reg.Quirk(*s.QuirkID); ok {
			c.QuirkID = *s.QuirkID
		}
	}
	if s.Dead != nil {
		c.Dead = *s.Dead
	}

	return c, journal.Restore(s.Log), nil
}

// QuestIDs returns the saved daily pools, or nil when the save predates them.
func (s Snapshot) QuestIDs() map[content.Category][]string {
	return s.DailyQuests
}

// StockIDs returns the saved shop stock, or nil when the save predates it.
func (s Snapshot) StockIDs() []string {
	return s.ShopStock
}

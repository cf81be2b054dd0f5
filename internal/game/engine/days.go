package engine

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/calder-games/vagabond/internal/game/character"
	"github.com/calder-games/vagabond/internal/game/content"
	"github.com/calder-games/vagabond/internal/game/dice"
	"github.com/calder-games/vagabond/internal/game/journal"
)

// Zone classifies mood/stress into an autonomy band that sets the nightly
// incident probability.
type Zone string

const (
	// ZoneSafe is content and rested: mood > 40 and stress < 60.
	ZoneSafe Zone = "safe"
	// ZoneCrisis is desperate: mood < 10 or stress > 90.
	ZoneCrisis Zone = "crisis"
	// ZoneRisk is everything in between.
	ZoneRisk Zone = "risk"
)

var zoneTriggerChance = map[Zone]float64{
	ZoneSafe:   0.05,
	ZoneRisk:   0.30,
	ZoneCrisis: 0.70,
}

// ZoneOf classifies vitals into an autonomy zone.
func ZoneOf(v character.Vitals) Zone {
	if v.Mood < 10 || v.Stress > 90 {
		return ZoneCrisis
	}
	if v.Mood > 40 && v.Stress < 60 {
		return ZoneSafe
	}
	return ZoneRisk
}

// DayReport summarizes one day-advancement resolution.
type DayReport struct {
	Entry    journal.Entry
	Evicted  bool
	Incident *content.Incident
	// RareOpportunity is set when the regenerated pools carry a bonus
	// higher-tier action.
	RareOpportunity bool
	JunkFound       bool
}

// AdvanceDays advances time outside of an action, for rent-cycle flows.
//
// Precondition: n >= 1 and the character is alive.
func (e *Engine) AdvanceDays(n int) (DayReport, error) {
	if e.char.Dead {
		return DayReport{}, ErrDeadCharacter
	}
	if n < 1 {
		return DayReport{}, fmt.Errorf("engine: cannot advance %d days", n)
	}
	return e.advanceDays(n), nil
}

// advanceDays collapses an n-day span into one resolution: rent or unhoused
// rest settles once, one autonomy roll fires, the day counter moves, and the
// shop and quest pools regenerate.
//
// Ordering: rent settlement, then the autonomy roll against post-settlement
// vitals, then the day increment, then regeneration. The morning report
// carries the day that ended, not the day beginning.
func (e *Engine) advanceDays(n int) DayReport {
	c := e.char
	endingDay := c.Day

	var rep DayReport
	var total content.Effects
	var parts []string

	if c.Housing.RentActive {
		loc, _ := e.reg.Location(c.Housing.LocationID)
		rent := n * loc.DailyCost
		if c.Gold >= rent {
			applied := c.ApplyEffects(loc.Rest.Add(content.Effects{Gold: -rent}))
			total = total.Add(applied)
			parts = append(parts, fmt.Sprintf("Slept at %s, paid %d gold rent.", loc.Name, rent))
		} else {
			// Rent is never charged when unaffordable; eviction is the price.
			applied := c.ApplyEffects(content.Effects{Mood: evictionMoodPenalty})
			total = total.Add(applied)
			c.Housing = character.Housing{}
			rep.Evicted = true
			parts = append(parts, fmt.Sprintf("Could not cover the %d gold rent at %s. Evicted.", rent, loc.Name))
		}
	} else {
		loc, _ := e.reg.Location(e.unhousedID)
		applied := c.ApplyEffects(loc.Rest)
		total = total.Add(applied)
		parts = append(parts, fmt.Sprintf("Slept rough at %s.", loc.Name))
	}

	zone := ZoneOf(c.Vitals)
	if dice.Chance(e.src, zoneTriggerChance[zone]) {
		if applied, incident, msgs := e.triggerIncident(zone); incident != nil {
			total = total.Add(applied)
			rep.Incident = incident
			parts = append(parts, msgs...)
			if incident.Eviction && c.Housing.RentActive {
				rep.Evicted = true
			}
		}
	}

	if q := e.quirk(); q != nil && q.JunkChance > 0 && dice.Chance(e.src, q.JunkChance) {
		rep.JunkFound = true
		parts = append(parts, "Woke up clutching a handful of worthless junk.")
	}

	c.Day += n
	e.refreshTier()
	e.restock()
	e.pools = e.gen.Generate(c.MaxTier)
	if e.pools.Bonus != "" {
		rep.RareOpportunity = true
		parts = append(parts, "A rare opportunity is on the board today.")
	}

	gained, lost := journal.Describe(total)
	rep.Entry = e.log.Record(journal.Entry{
		Day:      endingDay,
		Kind:     journal.KindMorning,
		Category: "morning",
		Text:     strings.Join(parts, " "),
		Gained:   gained,
		Lost:     lost,
	})
	e.logger.Info("day advanced",
		zap.Int("from", endingDay),
		zap.Int("to", c.Day),
		zap.String("zone", string(zone)),
	)
	return rep
}

// triggerIncident draws one incident from the zone-appropriate pool and
// applies its effects, script contribution, and forced losses.
func (e *Engine) triggerIncident(zone Zone) (content.Effects, *content.Incident, []string) {
	c := e.char
	sev := content.SeverityMinor
	if zone == ZoneCrisis {
		sev = content.SeverityMajor
	}
	pool := e.reg.Incidents(sev)
	if len(pool) == 0 {
		return content.Effects{}, nil, nil
	}
	in := pool[dice.PickIndex(e.src, len(pool))]

	delta := in.Effects
	if in.Script != "" && e.hooks != nil {
		if out, err := e.hooks.CallHook(in.Script, e.hookState()); err == nil && out != nil {
			delta = delta.Add(effectsFromMap(out))
		}
	}
	applied := c.ApplyEffects(delta)
	msgs := []string{in.Text}

	if in.Eviction && c.Housing.RentActive {
		loc, _ := e.reg.Location(c.Housing.LocationID)
		c.Housing = character.Housing{}
		msgs = append(msgs, fmt.Sprintf("Thrown out of %s.", loc.Name))
	}
	if in.EquipmentLoss {
		if lost := e.loseRandomEquipment(); lost != "" {
			msgs = append(msgs, fmt.Sprintf("The %s is gone.", lost))
		}
	}
	return applied, in, msgs
}

// loseRandomEquipment strips one random equipped non-default item, reverting
// the slot to its zero-cost default, and returns the lost item's name.
func (e *Engine) loseRandomEquipment() string {
	c := e.char
	var slots []content.Slot
	for _, slot := range content.EquipSlots {
		if it, ok := e.reg.Item(c.Equipped[slot]); ok && it.Purchasable() {
			slots = append(slots, slot)
		}
	}
	if len(slots) == 0 {
		return ""
	}
	slot := slots[dice.PickIndex(e.src, len(slots))]
	it, _ := e.reg.Item(c.Equipped[slot])
	c.RemoveItem(it.ID)
	c.Equipped[slot] = ""
	for _, def := range e.reg.EquipmentForSlot(slot) {
		if def.Cost == 0 {
			c.Equipped[slot] = def.ID
			break
		}
	}
	return it.Name
}

// hookState snapshots the fields incident scripts may read.
func (e *Engine) hookState() map[string]int {
	c := e.char
	return map[string]int{
		"health": c.Vitals.Health,
		"mood":   c.Vitals.Mood,
		"hunger": c.Vitals.Hunger,
		"thirst": c.Vitals.Thirst,
		"stress": c.Vitals.Stress,
		"gold":   c.Gold,
		"xp":     c.XP,
		"level":  c.Level,
		"day":    c.Day,
	}
}

// effectsFromMap converts a script's returned delta table.
func effectsFromMap(m map[string]int) content.Effects {
	return content.Effects{
		Health: m["health"],
		Mood:   m["mood"],
		Hunger: m["hunger"],
		Thirst: m["thirst"],
		Stress: m["stress"],
		Gold:   m["gold"],
		XP:     m["xp"],
	}
}

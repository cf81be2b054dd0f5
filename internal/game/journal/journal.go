// Package journal keeps the character's narrative log: one entry per
// resolved action, morning report, or system event, newest first, with
// human-readable gained/lost summaries of every stat change.
package journal

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/calder-games/vagabond/internal/game/content"
)

// MaxEntries caps the journal; the oldest entries fall off the end.
const MaxEntries = 200

// Kind classifies a journal entry.
type Kind string

const (
	// KindAction records a resolved player action, success or failure.
	KindAction Kind = "action"
	// KindMorning records the day-advancement morning report.
	KindMorning Kind = "morning"
	// KindIncident records an unprompted autonomy incident.
	KindIncident Kind = "incident"
	// KindSystem records deaths, revivals, purchases, and housing changes.
	KindSystem Kind = "system"
)

// Entry is a single journal record.
type Entry struct {
	ID       string `json:"id"`
	Day      int    `json:"day"`
	Kind     Kind   `json:"kind"`
	Category string `json:"category"`
	Text     string `json:"text"`
	Gained   string `json:"gained,omitempty"`
	Lost     string `json:"lost,omitempty"`
}

// Journal is an ordered, newest-first log. The zero value is ready to use.
type Journal struct {
	entries []Entry
}

// New returns an empty journal.
func New() *Journal {
	return &Journal{}
}

// Restore rebuilds a journal from saved entries (newest first). Entries past
// MaxEntries are dropped.
func Restore(entries []Entry) *Journal {
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	j := &Journal{entries: make([]Entry, len(entries))}
	copy(j.entries, entries)
	return j
}

// Record assigns the entry an id, prepends it, and trims to MaxEntries.
//
// Postcondition: Entries()[0] is the recorded entry and len(Entries()) is at
// most MaxEntries.
func (j *Journal) Record(e Entry) Entry {
	e.ID = uuid.NewString()
	j.entries = append([]Entry{e}, j.entries...)
	if len(j.entries) > MaxEntries {
		j.entries = j.entries[:MaxEntries]
	}
	return e
}

// Entries returns the log newest first. Callers must not mutate the slice.
func (j *Journal) Entries() []Entry {
	return j.entries
}

// Latest returns the most recent entry.
func (j *Journal) Latest() (Entry, bool) {
	if len(j.entries) == 0 {
		return Entry{}, false
	}
	return j.entries[0], true
}

// Len returns the number of entries.
func (j *Journal) Len() int {
	return len(j.entries)
}

// Describe renders a delta bundle as gained and lost summaries. Direction is
// sign-aware per stat: health, mood, gold, and XP count as gains when they
// increase; hunger, thirst, and stress count as gains when they decrease.
func Describe(delta content.Effects) (gained, lost string) {
	var gains, losses []string
	higherIsBetter := func(label string, v int) {
		switch {
		case v > 0:
			gains = append(gains, fmt.Sprintf("%d %s", v, label))
		case v < 0:
			losses = append(losses, fmt.Sprintf("%d %s", -v, label))
		}
	}
	lowerIsBetter := func(label string, v int) {
		switch {
		case v < 0:
			gains = append(gains, fmt.Sprintf("%d %s", -v, label))
		case v > 0:
			losses = append(losses, fmt.Sprintf("%d %s", v, label))
		}
	}

	higherIsBetter("health", delta.Health)
	higherIsBetter("mood", delta.Mood)
	lowerIsBetter("hunger", delta.Hunger)
	lowerIsBetter("thirst", delta.Thirst)
	lowerIsBetter("stress", delta.Stress)
	higherIsBetter("gold", delta.Gold)
	higherIsBetter("XP", delta.XP)

	return strings.Join(gains, ", "), strings.Join(losses, ", ")
}

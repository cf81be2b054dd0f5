package journal_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calder-games/vagabond/internal/game/content"
	"github.com/calder-games/vagabond/internal/game/journal"
)

func TestRecord_PrependsNewestFirst(t *testing.T) {
	j := journal.New()
	j.Record(journal.Entry{Day: 1, Kind: journal.KindAction, Text: "first"})
	j.Record(journal.Entry{Day: 2, Kind: journal.KindMorning, Text: "second"})

	entries := j.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[0].Text)
	assert.Equal(t, "first", entries[1].Text)

	latest, ok := j.Latest()
	require.True(t, ok)
	assert.Equal(t, "second", latest.Text)
}

func TestRecord_AssignsUniqueIDs(t *testing.T) {
	j := journal.New()
	a := j.Record(journal.Entry{Text: "a"})
	b := j.Record(journal.Entry{Text: "b"})
	assert.NotEmpty(t, a.ID)
	assert.NotEmpty(t, b.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestRecord_CapsAtMaxEntries(t *testing.T) {
	j := journal.New()
	for i := 0; i < journal.MaxEntries+25; i++ {
		j.Record(journal.Entry{Text: fmt.Sprintf("entry %d", i)})
	}
	require.Equal(t, journal.MaxEntries, j.Len())

	// The newest entry survives; the oldest fell off.
	latest, _ := j.Latest()
	assert.Equal(t, fmt.Sprintf("entry %d", journal.MaxEntries+24), latest.Text)
	entries := j.Entries()
	assert.Equal(t, "entry 25", entries[len(entries)-1].Text)
}

func TestRestore_TrimsOversizedSaves(t *testing.T) {
	saved := make([]journal.Entry, journal.MaxEntries+10)
	for i := range saved {
		saved[i] = journal.Entry{Text: fmt.Sprintf("entry %d", i)}
	}
	j := journal.Restore(saved)
	assert.Equal(t, journal.MaxEntries, j.Len())
	latest, _ := j.Latest()
	assert.Equal(t, "entry 0", latest.Text, "restore keeps the newest-first head")
}

func TestDescribe_SignAware(t *testing.T) {
	gained, lost := journal.Describe(content.Effects{
		Health: 2,
		Mood:   -5,
		Hunger: -30,
		Stress: 10,
		Gold:   15,
		XP:     20,
	})

	// Hunger decrease counts as a gain; stress increase as a loss.
	assert.Equal(t, "2 health, 30 hunger, 15 gold, 20 XP", gained)
	assert.Equal(t, "5 mood, 10 stress", lost)
}

func TestDescribe_ZeroDelta(t *testing.T) {
	gained, lost := journal.Describe(content.Effects{})
	assert.Empty(t, gained)
	assert.Empty(t, lost)
}

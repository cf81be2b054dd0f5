package save_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calder-games/vagabond/internal/game/character"
	"github.com/calder-games/vagabond/internal/game/content"
	"github.com/calder-games/vagabond/internal/game/journal"
	"github.com/calder-games/vagabond/internal/game/quest"
	"github.com/calder-games/vagabond/internal/game/save"
)

func testRegistry(t *testing.T) *content.Registry {
	t.Helper()
	reg, err := content.NewRegistry(content.Catalogs{
		Items: []*content.Item{
			{ID: "fist", Name: "Fist", Slot: content.SlotMainHand, Cost: 0},
			{ID: "sword", Name: "Short Sword", Slot: content.SlotMainHand, Cost: 30},
			{ID: "apple", Name: "Apple", Supply: content.SupplyFood, Cost: 3},
		},
		Actions: []*content.Action{
			{ID: "chop_wood", Label: "Chop Wood", Category: content.CategoryLabor, Days: 1, Tier: 1, Risk: 0.40},
		},
		Locations: []*content.Location{
			{ID: "inn_room", Name: "the Inn", DailyCost: 10},
		},
		Quirks: []*content.Quirk{
			{ID: "coward", Name: "Coward"},
		},
	})
	require.NoError(t, err)
	return reg
}

func TestCaptureEncodeDecodeRestore_RoundTrip(t *testing.T) {
	reg := testRegistry(t)
	c, err := character.New(character.CreationParams{Name: "Wren", QuirkID: "coward"}, reg)
	require.NoError(t, err)
	c.Gold = 123
	c.XP = 250
	c.Level = 3
	c.Day = 14
	c.MaxTier = 2
	c.AddItem("sword")
	c.AddItem("apple")
	require.NoError(t, c.Equip(reg, "sword"))
	c.Housing = character.Housing{LocationID: "inn_room", RentActive: true}
	c.Vitals = character.Vitals{Health: 20, Mood: 35, Hunger: 10, Thirst: 5, Stress: 40}

	j := journal.New()
	j.Record(journal.Entry{Day: 14, Kind: journal.KindAction, Text: "chopped wood"})

	a, _ := reg.Action("chop_wood")
	pools := quest.Pools{ByCategory: map[content.Category][]*content.Action{
		content.CategoryLabor: {a},
	}}

	data, err := save.Capture(c, j, pools, []string{"sword", "apple"}).Encode()
	require.NoError(t, err)

	snap, err := save.Decode(data)
	require.NoError(t, err)
	restored, rj, err := snap.Restore(reg)
	require.NoError(t, err)

	assert.Equal(t, c.Name, restored.Name)
	assert.Equal(t, c.Gold, restored.Gold)
	assert.Equal(t, c.XP, restored.XP)
	assert.Equal(t, c.Level, restored.Level)
	assert.Equal(t, c.Day, restored.Day)
	assert.Equal(t, c.MaxTier, restored.MaxTier)
	assert.Equal(t, c.Vitals, restored.Vitals)
	assert.Equal(t, c.Inventory, restored.Inventory)
	assert.Equal(t, "sword", restored.Equipped[content.SlotMainHand])
	assert.Equal(t, c.Housing, restored.Housing)
	assert.Equal(t, "coward", restored.QuirkID)
	require.Equal(t, 1, rj.Len())
	assert.Equal(t, map[content.Category][]string{content.CategoryLabor: {"chop_wood"}}, snap.QuestIDs())
	assert.Equal(t, []string{"sword", "apple"}, snap.StockIDs())
}

func TestRestore_EmptySaveBackfillsDefaults(t *testing.T) {
	reg := testRegistry(t)
	snap, err := save.Decode([]byte(`{}`))
	require.NoError(t, err)

	c, j, err := snap.Restore(reg)
	require.NoError(t, err)

	assert.Equal(t, "Vagabond", c.Name)
	assert.Equal(t, character.StartingGold, c.Gold)
	assert.Equal(t, 1, c.Level)
	assert.Equal(t, 1, c.Day)
	assert.Equal(t, c.Maxima().Health, c.Vitals.Health)
	assert.Equal(t, "fist", c.Equipped[content.SlotMainHand])
	assert.False(t, c.Dead)
	assert.Equal(t, 0, j.Len())
}

func TestRestore_PartialSaveKeepsPresentFields(t *testing.T) {
	reg := testRegistry(t)
	snap, err := save.Decode([]byte(`{"name":"Ash","gold":7,"day":9}`))
	require.NoError(t, err)

	c, _, err := snap.Restore(reg)
	require.NoError(t, err)
	assert.Equal(t, "Ash", c.Name)
	assert.Equal(t, 7, c.Gold)
	assert.Equal(t, 9, c.Day)
	assert.Equal(t, 1, c.Level, "absent fields backfill defaults")
}

func TestRestore_ReclampsVitalsAgainstRestoredMaxima(t *testing.T) {
	reg := testRegistry(t)
	snap, err := save.Decode([]byte(`{"vitals":{"health":9999,"mood":-5}}`))
	require.NoError(t, err)

	c, _, err := snap.Restore(reg)
	require.NoError(t, err)
	assert.Equal(t, c.Maxima().Health, c.Vitals.Health)
	assert.Equal(t, 0, c.Vitals.Mood)
}

func TestRestore_DropsDanglingReferences(t *testing.T) {
	reg := testRegistry(t)
	snap, err := save.Decode([]byte(`{
		"quirk": "deleted_quirk",
		"equipped": {"mainHand": "deleted_item"},
		"housing": {"locationId": "burned_down", "rentActive": true}
	}`))
	require.NoError(t, err)

	c, _, err := snap.Restore(reg)
	require.NoError(t, err)
	assert.Empty(t, c.QuirkID)
	assert.Equal(t, "fist", c.Equipped[content.SlotMainHand])
	assert.True(t, c.Housing.Homeless())
}

func TestDecode_MalformedJSONFails(t *testing.T) {
	_, err := save.Decode([]byte(`{"gold": `))
	assert.Error(t, err)
}

func TestDecode_UnknownFieldsIgnored(t *testing.T) {
	snap, err := save.Decode([]byte(`{"gold": 5, "someFutureField": {"a": 1}}`))
	require.NoError(t, err)
	require.NotNil(t, snap.Gold)
	assert.Equal(t, 5, *snap.Gold)
}

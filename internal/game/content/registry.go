package content

import (
	"fmt"
	"sort"
)

// Registry indexes every content catalog and answers engine lookups.
//
// Invariant: a Registry returned by NewRegistry has passed Validate; all
// cross-references between catalogs resolve.
type Registry struct {
	items     map[string]*Item
	bySlot    map[Slot][]*Item
	supplies  []*Item
	actions   map[string]*Action
	pools     map[Category]map[int][]*Action
	locations map[string]*Location
	quirks    []*Quirk
	quirkByID map[string]*Quirk
	incidents map[Severity][]*Incident
}

// Catalogs bundles raw parsed content handed to NewRegistry.
type Catalogs struct {
	Items     []*Item
	Actions   []*Action
	Locations []*Location
	Quirks    []*Quirk
	Incidents []*Incident
}

// NewRegistry indexes and validates the given catalogs.
//
// Postcondition: Returns a fully cross-checked Registry or a non-nil error
// naming the first violation.
func NewRegistry(c Catalogs) (*Registry, error) {
	r := &Registry{
		items:     make(map[string]*Item, len(c.Items)),
		bySlot:    make(map[Slot][]*Item),
		actions:   make(map[string]*Action, len(c.Actions)),
		pools:     make(map[Category]map[int][]*Action),
		locations: make(map[string]*Location, len(c.Locations)),
		quirkByID: make(map[string]*Quirk, len(c.Quirks)),
		incidents: make(map[Severity][]*Incident),
	}

	for _, it := range c.Items {
		if err := validateItem(it); err != nil {
			return nil, err
		}
		if _, dup := r.items[it.ID]; dup {
			return nil, fmt.Errorf("content: duplicate item id %q", it.ID)
		}
		r.items[it.ID] = it
		if it.IsEquipment() {
			r.bySlot[it.Slot] = append(r.bySlot[it.Slot], it)
		} else {
			r.supplies = append(r.supplies, it)
		}
	}

	for _, a := range c.Actions {
		if err := validateAction(a); err != nil {
			return nil, err
		}
		if _, dup := r.actions[a.ID]; dup {
			return nil, fmt.Errorf("content: duplicate action id %q", a.ID)
		}
		r.actions[a.ID] = a
		if a.IsRiskRolled() {
			tiers := r.pools[a.Category]
			if tiers == nil {
				tiers = make(map[int][]*Action)
				r.pools[a.Category] = tiers
			}
			tiers[a.Tier] = append(tiers[a.Tier], a)
		}
	}

	for _, l := range c.Locations {
		if l.ID == "" {
			return nil, fmt.Errorf("content: location must have a non-empty id")
		}
		if l.DailyCost < 0 {
			return nil, fmt.Errorf("content: location %q daily_cost must be >= 0, got %d", l.ID, l.DailyCost)
		}
		if _, dup := r.locations[l.ID]; dup {
			return nil, fmt.Errorf("content: duplicate location id %q", l.ID)
		}
		r.locations[l.ID] = l
	}

	for _, q := range c.Quirks {
		if q.ID == "" {
			return nil, fmt.Errorf("content: quirk must have a non-empty id")
		}
		if _, dup := r.quirkByID[q.ID]; dup {
			return nil, fmt.Errorf("content: duplicate quirk id %q", q.ID)
		}
		r.quirkByID[q.ID] = q
		r.quirks = append(r.quirks, q)
	}

	for _, in := range c.Incidents {
		if err := validateIncident(in); err != nil {
			return nil, err
		}
		r.incidents[in.Severity] = append(r.incidents[in.Severity], in)
	}

	if err := r.crossCheck(); err != nil {
		return nil, err
	}
	return r, nil
}

func validateItem(it *Item) error {
	if it.ID == "" {
		return fmt.Errorf("content: item must have a non-empty id")
	}
	if it.Cost < 0 {
		return fmt.Errorf("content: item %q cost must be >= 0, got %d", it.ID, it.Cost)
	}
	equip := it.Slot != ""
	supply := it.Supply != ""
	if equip == supply {
		return fmt.Errorf("content: item %q must set exactly one of slot or supply", it.ID)
	}
	if equip {
		switch it.Slot {
		case SlotHead, SlotBody, SlotMainHand, SlotOffHand:
		default:
			return fmt.Errorf("content: item %q has unknown slot %q", it.ID, it.Slot)
		}
	} else {
		switch it.Supply {
		case SupplyFood, SupplyDrink, SupplyPotion:
		default:
			return fmt.Errorf("content: item %q has unknown supply type %q", it.ID, it.Supply)
		}
	}
	return nil
}

func validateAction(a *Action) error {
	if a.ID == "" {
		return fmt.Errorf("content: action must have a non-empty id")
	}
	switch a.Category {
	case CategoryMaintenance, CategoryLabor, CategoryAdventure, CategorySocial, CategoryHousing:
	default:
		return fmt.Errorf("content: action %q has unknown category %q", a.ID, a.Category)
	}
	if a.Days < 0 {
		return fmt.Errorf("content: action %q days must be >= 0, got %d", a.ID, a.Days)
	}
	if a.Cost < 0 {
		return fmt.Errorf("content: action %q cost must be >= 0, got %d", a.ID, a.Cost)
	}
	if a.IsRiskRolled() {
		if a.Risk < 0 || a.Risk > 1 {
			return fmt.Errorf("content: action %q risk must be in [0, 1], got %f", a.ID, a.Risk)
		}
		if a.Tier < 1 || a.Tier > MaxTier {
			return fmt.Errorf("content: action %q tier must be in [1, %d], got %d", a.ID, MaxTier, a.Tier)
		}
	}
	return nil
}

func validateIncident(in *Incident) error {
	if in.ID == "" {
		return fmt.Errorf("content: incident must have a non-empty id")
	}
	if in.Severity != SeverityMinor && in.Severity != SeverityMajor {
		return fmt.Errorf("content: incident %q has unknown severity %q", in.ID, in.Severity)
	}
	return nil
}

// crossCheck verifies references between catalogs resolve.
func (r *Registry) crossCheck() error {
	for _, slot := range EquipSlots {
		hasDefault := false
		for _, it := range r.bySlot[slot] {
			if it.Cost == 0 {
				hasDefault = true
				break
			}
		}
		if len(r.bySlot[slot]) > 0 && !hasDefault {
			return fmt.Errorf("content: slot %q has no zero-cost default item", slot)
		}
	}
	for _, a := range r.actions {
		if a.RequiresItem != "" {
			if _, ok := r.items[a.RequiresItem]; !ok {
				return fmt.Errorf("content: action %q requires unknown item %q", a.ID, a.RequiresItem)
			}
		}
		if a.LocationID != "" {
			if _, ok := r.locations[a.LocationID]; !ok {
				return fmt.Errorf("content: action %q targets unknown location %q", a.ID, a.LocationID)
			}
		}
	}
	for _, q := range r.quirks {
		for _, banned := range q.BannedActions {
			if _, ok := r.actions[banned]; !ok {
				return fmt.Errorf("content: quirk %q bans unknown action %q", q.ID, banned)
			}
		}
	}
	for _, l := range r.locations {
		for actionID := range l.ActionModifiers {
			if _, ok := r.actions[actionID]; !ok {
				return fmt.Errorf("content: location %q modifies unknown action %q", l.ID, actionID)
			}
		}
	}
	return nil
}

// Item returns the item with the given id.
func (r *Registry) Item(id string) (*Item, bool) {
	it, ok := r.items[id]
	return it, ok
}

// Action returns the action with the given id.
func (r *Registry) Action(id string) (*Action, bool) {
	a, ok := r.actions[id]
	return a, ok
}

// ActionIDs returns every action id in sorted order.
func (r *Registry) ActionIDs() []string {
	ids := make([]string, 0, len(r.actions))
	for id := range r.actions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Location returns the location with the given id.
func (r *Registry) Location(id string) (*Location, bool) {
	l, ok := r.locations[id]
	return l, ok
}

// Quirk returns the quirk with the given id.
func (r *Registry) Quirk(id string) (*Quirk, bool) {
	q, ok := r.quirkByID[id]
	return q, ok
}

// Quirks returns all quirks in load order.
func (r *Registry) Quirks() []*Quirk {
	return r.quirks
}

// EquipmentForSlot returns all items occupying the given slot.
func (r *Registry) EquipmentForSlot(slot Slot) []*Item {
	return r.bySlot[slot]
}

// Supplies returns all supply items in load order.
func (r *Registry) Supplies() []*Item {
	return r.supplies
}

// PurchasableItems returns every item with cost > 0, equipment and supplies alike.
func (r *Registry) PurchasableItems() []*Item {
	var out []*Item
	for _, slot := range EquipSlots {
		for _, it := range r.bySlot[slot] {
			if it.Purchasable() {
				out = append(out, it)
			}
		}
	}
	for _, it := range r.supplies {
		if it.Purchasable() {
			out = append(out, it)
		}
	}
	return out
}

// PurchasableEquipment returns every equipment item with cost > 0 (the
// adventure loot pool).
func (r *Registry) PurchasableEquipment() []*Item {
	var out []*Item
	for _, slot := range EquipSlots {
		for _, it := range r.bySlot[slot] {
			if it.Purchasable() {
				out = append(out, it)
			}
		}
	}
	return out
}

// QuestPool returns the actions of the given category and exact tier.
func (r *Registry) QuestPool(cat Category, tier int) []*Action {
	tiers := r.pools[cat]
	if tiers == nil {
		return nil
	}
	return tiers[tier]
}

// Incidents returns the incident pool of the given severity.
func (r *Registry) Incidents(sev Severity) []*Incident {
	return r.incidents[sev]
}

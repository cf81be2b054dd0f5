package engine

import (
	"fmt"

	"github.com/calder-games/vagabond/internal/game/content"
	"github.com/calder-games/vagabond/internal/game/dice"
	"github.com/calder-games/vagabond/internal/game/journal"
)

// ShopStockSize is how many distinct items the shop carries per day.
const ShopStockSize = 6

// restock draws a fresh day's stock from every purchasable item.
func (e *Engine) restock() {
	pool := e.reg.PurchasableItems()
	if len(pool) <= ShopStockSize {
		ids := make([]string, len(pool))
		for i, it := range pool {
			ids[i] = it.ID
		}
		e.stock = ids
		return
	}
	scratch := make([]*content.Item, len(pool))
	copy(scratch, pool)
	ids := make([]string, 0, ShopStockSize)
	for i := 0; i < ShopStockSize; i++ {
		j := i + dice.PickIndex(e.src, len(scratch)-i)
		scratch[i], scratch[j] = scratch[j], scratch[i]
		ids = append(ids, scratch[i].ID)
	}
	e.stock = ids
}

// RestoreStock rebuilds today's stock from saved item ids, dropping any id
// that is no longer purchasable. Empty input keeps the fresh stock.
func (e *Engine) RestoreStock(ids []string) {
	if len(ids) == 0 {
		return
	}
	stock := make([]string, 0, len(ids))
	for _, id := range ids {
		if it, ok := e.reg.Item(id); ok && it.Purchasable() {
			stock = append(stock, id)
		}
	}
	e.stock = stock
}

// Stock returns today's shop inventory.
func (e *Engine) Stock() []*content.Item {
	out := make([]*content.Item, 0, len(e.stock))
	for _, id := range e.stock {
		if it, ok := e.reg.Item(id); ok {
			out = append(out, it)
		}
	}
	return out
}

// Buy purchases one copy of a stocked item. Drink items pass through the
// quirk's drink cost multiplier, same as the drink action.
//
// Precondition: the item is in today's stock and gold covers its cost.
func (e *Engine) Buy(itemID string) (Outcome, error) {
	if e.char.Dead {
		return Outcome{}, ErrDeadCharacter
	}
	var it *content.Item
	for _, id := range e.stock {
		if id == itemID {
			it, _ = e.reg.Item(id)
			break
		}
	}
	if it == nil {
		return Outcome{}, fmt.Errorf("%w: %q", ErrNotInStock, itemID)
	}
	cost := it.Cost
	if it.Supply == content.SupplyDrink {
		cost = e.drinkAdjustedCost(cost)
	}
	if e.char.Gold < cost {
		return Outcome{}, fmt.Errorf("%w: %s costs %d gold", ErrInsufficientFunds, it.Name, cost)
	}
	applied := e.char.ApplyEffects(content.Effects{Gold: -cost})
	e.char.AddItem(it.ID)
	msg := fmt.Sprintf("Bought %s for %d gold.", it.Name, cost)
	entry := e.record(journal.KindSystem, "shop", msg, applied)
	return Outcome{Success: true, Message: msg, Entry: entry}, nil
}

// Sell trades an owned, unequipped item for half its cost, rounded down.
func (e *Engine) Sell(itemID string) (Outcome, error) {
	if e.char.Dead {
		return Outcome{}, ErrDeadCharacter
	}
	it, ok := e.reg.Item(itemID)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %q", ErrNotOwned, itemID)
	}
	if !it.Purchasable() {
		return Outcome{}, fmt.Errorf("%w: %s", ErrNotSellable, it.Name)
	}
	if e.char.IsEquipped(it.ID) {
		return Outcome{}, fmt.Errorf("%w: %s", ErrItemEquipped, it.Name)
	}
	if !e.char.RemoveItem(it.ID) {
		return Outcome{}, fmt.Errorf("%w: %s", ErrNotOwned, it.Name)
	}
	price := it.Cost / 2
	applied := e.char.ApplyEffects(content.Effects{Gold: price})
	msg := fmt.Sprintf("Sold %s for %d gold.", it.Name, price)
	entry := e.record(journal.KindSystem, "shop", msg, applied)
	return Outcome{Success: true, Message: msg, Entry: entry}, nil
}

// Package main provides the interactive game binary: it loads content and
// configuration, restores the save slot from PostgreSQL, and drives the
// simulation engine from a line-oriented prompt.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"go.uber.org/zap"

	"github.com/calder-games/vagabond/internal/config"
	"github.com/calder-games/vagabond/internal/game/character"
	"github.com/calder-games/vagabond/internal/game/content"
	"github.com/calder-games/vagabond/internal/game/dice"
	"github.com/calder-games/vagabond/internal/game/engine"
	"github.com/calder-games/vagabond/internal/game/journal"
	"github.com/calder-games/vagabond/internal/game/save"
	"github.com/calder-games/vagabond/internal/observability"
	"github.com/calder-games/vagabond/internal/scripting"
	"github.com/calder-games/vagabond/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	slotOverride := flag.String("slot", "", "save slot to play (overrides config)")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *slotOverride != "" {
		cfg.Game.SaveSlot = *slotOverride
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	reg, err := content.LoadRegistry(cfg.Game.ContentDir)
	if err != nil {
		logger.Fatal("loading content", zap.Error(err))
	}

	src := dice.NewLoggedSource(dice.NewCryptoSource(), logger)

	var hooks *scripting.Manager
	if cfg.Game.ScriptsDir != "" {
		if _, statErr := os.Stat(cfg.Game.ScriptsDir); statErr == nil {
			hooks = scripting.NewManager(src, logger)
			limit := cfg.Game.ScriptInstructionLimit
			if limit == 0 {
				limit = scripting.DefaultInstructionLimit
			}
			if err := hooks.Load(cfg.Game.ScriptsDir, limit); err != nil {
				logger.Fatal("loading scripts", zap.Error(err))
			}
			defer hooks.Close()
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("connecting to database", zap.Error(err))
	}
	defer pool.Close()
	repo := postgres.NewSaveRepository(pool.DB())

	in := bufio.NewScanner(os.Stdin)

	c, j, snap, err := loadOrCreate(ctx, repo, reg, src, cfg.Game.SaveSlot, in)
	if err != nil {
		logger.Fatal("opening save slot", zap.Error(err))
	}

	eng, err := engine.New(engine.Config{
		Registry:           reg,
		Source:             src,
		Logger:             logger,
		Hooks:              hooks,
		UnhousedLocationID: cfg.Game.UnhousedLocation,
	}, c, j)
	if err != nil {
		logger.Fatal("starting engine", zap.Error(err))
	}
	if snap != nil {
		eng.RestorePools(snap.QuestIDs())
		eng.RestoreStock(snap.StockIDs())
	}

	g := &game{
		eng:      eng,
		reg:      reg,
		repo:     repo,
		slot:     cfg.Game.SaveSlot,
		autosave: cfg.Game.Autosave,
		logger:   logger,
	}
	g.run(ctx, in)
}

// loadOrCreate restores the slot's snapshot, or walks the player through
// character creation when the slot is empty.
func loadOrCreate(
	ctx context.Context,
	repo *postgres.SaveRepository,
	reg *content.Registry,
	src dice.Source,
	slot string,
	in *bufio.Scanner,
) (*character.Character, *journal.Journal, *save.Snapshot, error) {
	rec, err := repo.Get(ctx, slot)
	if errors.Is(err, postgres.ErrSaveNotFound) {
		c, err := createCharacter(reg, src, in)
		if err != nil {
			return nil, nil, nil, err
		}
		return c, journal.New(), nil, nil
	}
	if err != nil {
		return nil, nil, nil, err
	}

	snap, err := save.Decode(rec.Data)
	if err != nil {
		return nil, nil, nil, err
	}
	c, j, err := snap.Restore(reg)
	if err != nil {
		return nil, nil, nil, err
	}
	fmt.Printf("Welcome back, %s. Day %d.\n", c.Name, c.Day)
	return c, j, &snap, nil
}

// createCharacter prompts for a name, a quirk, and the creation point spread.
// An empty quirk answer draws one at random.
func createCharacter(reg *content.Registry, src dice.Source, in *bufio.Scanner) (*character.Character, error) {
	fmt.Println("No save found. A new life begins.")

	name := ""
	for name == "" {
		name = prompt(in, "Name: ")
	}

	quirks := reg.Quirks()
	fmt.Println("Pick a quirk:")
	for i, q := range quirks {
		fmt.Printf("  %d. %s - %s\n", i+1, q.Name, q.Description)
	}
	var quirkID string
	for quirkID == "" {
		raw := prompt(in, fmt.Sprintf("Quirk [1-%d, blank for random]: ", len(quirks)))
		if raw == "" {
			q := quirks[dice.PickIndex(src, len(quirks))]
			fmt.Printf("Fate deals you: %s.\n", q.Name)
			quirkID = q.ID
			break
		}
		n, err := strconv.Atoi(raw)
		if err == nil && n >= 1 && n <= len(quirks) {
			quirkID = quirks[n-1].ID
		}
	}

	fmt.Printf("Spend up to %d points across str, dex, con, int, cha.\n", character.AttributePointPool)
	var bonus character.Attributes
	remaining := character.AttributePointPool
	for _, attr := range []struct {
		label string
		dst   *int
	}{
		{"str", &bonus.Str},
		{"dex", &bonus.Dex},
		{"con", &bonus.Con},
		{"int", &bonus.Int},
		{"cha", &bonus.Cha},
	} {
		if remaining == 0 {
			break
		}
		for {
			raw := prompt(in, fmt.Sprintf("%s (+0-%d): ", attr.label, remaining))
			if raw == "" {
				break
			}
			n, err := strconv.Atoi(raw)
			if err == nil && n >= 0 && n <= remaining {
				*attr.dst = n
				remaining -= n
				break
			}
		}
	}

	c, err := character.New(character.CreationParams{
		Name:    name,
		Bonus:   bonus,
		QuirkID: quirkID,
	}, reg)
	if err != nil {
		return nil, err
	}
	fmt.Printf("%s steps onto the road with %d gold.\n", c.Name, c.Gold)
	return c, nil
}

func prompt(in *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !in.Scan() {
		os.Exit(0)
	}
	return strings.TrimSpace(in.Text())
}

// game binds the engine to the prompt loop and the save slot.
type game struct {
	eng      *engine.Engine
	reg      *content.Registry
	repo     *postgres.SaveRepository
	slot     string
	autosave bool
	logger   *zap.Logger
}

func (g *game) run(ctx context.Context, in *bufio.Scanner) {
	fmt.Println(`Type "help" for commands.`)
	for {
		line := prompt(in, "> ")
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "quit", "exit":
			g.persist(ctx, true)
			return
		case "help":
			printHelp()
		case "status":
			g.printStatus()
		case "quests":
			g.printQuests()
		case "actions":
			for _, id := range g.reg.ActionIDs() {
				a, _ := g.reg.Action(id)
				fmt.Printf("  %-22s %s\n", id, a.Label)
			}
		case "do":
			if len(args) != 1 {
				fmt.Println("usage: do <action>")
				continue
			}
			g.perform(ctx, args[0])
		case "wait":
			days := 1
			if len(args) == 1 {
				if n, err := strconv.Atoi(args[0]); err == nil && n >= 1 {
					days = n
				}
			}
			g.report(g.waitDays(days))
			g.persist(ctx, false)
		case "journal":
			g.printJournal(args)
		case "inventory":
			g.printInventory()
		case "shop":
			for _, it := range g.eng.Stock() {
				fmt.Printf("  %-18s %3d gold  %s\n", it.ID, it.Cost, it.Name)
			}
		case "buy":
			if len(args) != 1 {
				fmt.Println("usage: buy <item>")
				continue
			}
			g.report(g.eng.Buy(args[0]))
			g.persist(ctx, false)
		case "sell":
			if len(args) != 1 {
				fmt.Println("usage: sell <item>")
				continue
			}
			g.report(g.eng.Sell(args[0]))
			g.persist(ctx, false)
		case "equip":
			if len(args) != 1 {
				fmt.Println("usage: equip <item>")
				continue
			}
			g.report(g.eng.EquipItem(args[0]))
			g.persist(ctx, false)
		case "use":
			if len(args) != 1 {
				fmt.Println("usage: use <item>")
				continue
			}
			g.report(g.eng.ConsumeItem(args[0]))
			g.persist(ctx, false)
		case "revive":
			g.report(g.eng.Revive())
			g.persist(ctx, false)
		case "save":
			g.persist(ctx, true)
		default:
			fmt.Printf("Unknown command %q. Type \"help\".\n", cmd)
		}
	}
}

func (g *game) perform(ctx context.Context, actionID string) {
	out, err := g.eng.PerformAction(actionID)
	if errors.Is(err, engine.ErrUnknownAction) {
		if s := suggest(actionID, g.reg.ActionIDs()); s != "" {
			fmt.Printf("Unknown action %q. Did you mean %q?\n", actionID, s)
			return
		}
	}
	g.report(out, err)
	g.persist(ctx, false)
}

func (g *game) waitDays(n int) (engine.Outcome, error) {
	rep, err := g.eng.AdvanceDays(n)
	if err != nil {
		return engine.Outcome{}, err
	}
	return engine.Outcome{Success: true, Message: rep.Entry.Text, Entry: rep.Entry}, nil
}

func (g *game) report(out engine.Outcome, err error) {
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(out.Message)
	if out.Entry.Gained != "" {
		fmt.Println("  gained:", out.Entry.Gained)
	}
	if out.Entry.Lost != "" {
		fmt.Println("  lost:", out.Entry.Lost)
	}
	if out.LeveledUp {
		fmt.Printf("  Level up! Now level %d.\n", g.eng.Character().Level)
	}
	if out.Died {
		fmt.Println(`  You have died. Type "revive" to continue.`)
	}
}

func (g *game) persist(ctx context.Context, always bool) {
	if !always && !g.autosave {
		return
	}
	stock := g.eng.Stock()
	stockIDs := make([]string, len(stock))
	for i, it := range stock {
		stockIDs[i] = it.ID
	}
	data, err := save.Capture(g.eng.Character(), g.eng.Journal(), g.eng.Pools(), stockIDs).Encode()
	if err != nil {
		g.logger.Error("encoding save", zap.Error(err))
		return
	}
	if err := g.repo.Put(ctx, g.slot, data); err != nil {
		g.logger.Error("writing save", zap.Error(err))
		return
	}
	if always {
		fmt.Printf("Saved to slot %q.\n", g.slot)
	}
}

func (g *game) printStatus() {
	c := g.eng.Character()
	max := c.Maxima()
	d := c.Derived(g.reg)
	loc := g.eng.CurrentLocation()

	fmt.Printf("%s, level %d (%d xp), day %d\n", c.Name, c.Level, c.XP, c.Day)
	if c.Dead {
		fmt.Println("  DEAD")
	}
	fmt.Printf("  health %d/%d  mood %d/%d  hunger %d/%d  thirst %d/%d  stress %d/%d\n",
		c.Vitals.Health, max.Health, c.Vitals.Mood, max.Mood,
		c.Vitals.Hunger, max.Hunger, c.Vitals.Thirst, max.Thirst,
		c.Vitals.Stress, max.Stress)
	fmt.Printf("  gold %d  ac %d  str %d  dex %d  con %d  int %d  cha %d\n",
		c.Gold, d.AC, d.Str, d.Dex, d.Con, d.Int, d.Cha)
	fmt.Printf("  staying at %s", loc.Name)
	if c.Housing.RentActive {
		fmt.Printf(" (%d gold/day)", loc.DailyCost)
	}
	fmt.Println()
	if q, ok := g.reg.Quirk(c.QuirkID); ok {
		fmt.Printf("  quirk: %s\n", q.Name)
	}
}

func (g *game) printQuests() {
	pools := g.eng.Pools()
	for _, cat := range content.QuestCategories {
		fmt.Printf("%s:\n", cat)
		for _, a := range pools.Actions(cat) {
			marker := ""
			if pools.Bonus == cat && a.Tier > g.eng.Character().MaxTier {
				marker = "  (rare opportunity)"
			}
			fmt.Printf("  %-22s tier %d, %d day(s), %s%s\n", a.ID, a.Tier, a.Days, a.Label, marker)
		}
	}
}

func (g *game) printInventory() {
	c := g.eng.Character()
	fmt.Println("equipped:")
	for _, slot := range content.EquipSlots {
		if id := c.Equipped[slot]; id != "" {
			it, _ := g.reg.Item(id)
			fmt.Printf("  %-9s %s\n", slot, it.Name)
		}
	}
	fmt.Println("carried:")
	for _, id := range c.Inventory {
		it, ok := g.reg.Item(id)
		if !ok {
			continue
		}
		note := ""
		if c.IsEquipped(id) {
			note = "  (equipped)"
		}
		fmt.Printf("  %-18s %s%s\n", id, it.Name, note)
	}
}

func (g *game) printJournal(args []string) {
	n := 10
	if len(args) == 1 {
		if parsed, err := strconv.Atoi(args[0]); err == nil && parsed > 0 {
			n = parsed
		}
	}
	entries := g.eng.Journal().Entries()
	if len(entries) > n {
		entries = entries[:n]
	}
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		fmt.Printf("[day %d] %s\n", e.Day, e.Text)
	}
}

// suggest returns the closest action id within an edit distance of 3.
func suggest(input string, ids []string) string {
	best, bestDist := "", 4
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	for _, id := range sorted {
		if d := levenshtein.ComputeDistance(input, id); d < bestDist {
			best, bestDist = id, d
		}
	}
	return best
}

func printHelp() {
	fmt.Print(`  status            character sheet
  quests            today's quest board
  actions           every known action
  do <action>       perform an action
  wait [n]          let n days pass (default 1)
  inventory         equipment and carried items
  equip <item>      wear an owned item
  use <item>        consume an owned supply
  shop              today's shop stock
  buy <item>        buy from the shop
  sell <item>       sell an unequipped item for half price
  journal [n]       latest n journal entries (default 10)
  revive            return from death
  save              write the save slot
  quit              save and exit
`)
}

package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/calder-games/vagabond/internal/game/dice"
)

// RegisterModules registers the game.* Lua table into L:
//   - game.chance(p): draws from the manager's randomness source, true with
//     probability p
//   - game.log(msg): emits msg at Info level through the manager's logger
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: the game global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	game := L.NewTable()

	L.SetField(game, "chance", L.NewFunction(func(ls *lua.LState) int {
		p := float64(ls.CheckNumber(1))
		ls.Push(lua.LBool(dice.Chance(m.src, p)))
		return 1
	}))

	L.SetField(game, "log", L.NewFunction(func(ls *lua.LState) int {
		m.logger.Info("script message", zap.String("message", ls.CheckString(1)))
		return 0
	}))

	L.SetGlobal("game", game)
}

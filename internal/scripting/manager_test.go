package scripting_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/calder-games/vagabond/internal/game/dice"
	"github.com/calder-games/vagabond/internal/scripting"
)

func writeScript(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func loadedManager(t *testing.T, src dice.Source, scripts map[string]string) *scripting.Manager {
	t.Helper()
	dir := t.TempDir()
	for name, body := range scripts {
		writeScript(t, dir, name, body)
	}
	m := scripting.NewManager(src, zaptest.NewLogger(t))
	require.NoError(t, m.Load(dir, 0))
	t.Cleanup(m.Close)
	return m
}

func TestCallHook_ReturnsDeltaTable(t *testing.T) {
	m := loadedManager(t, dice.NewCryptoSource(), map[string]string{
		"robbery.lua": `
function on_robbery(state)
  local taken = math.min(state.gold, 20)
  return { gold = -taken, stress = 10 }
end`,
	})

	out, err := m.CallHook("on_robbery", map[string]int{"gold": 12, "stress": 30})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"gold": -12, "stress": 10}, out)
}

func TestCallHook_UndefinedHookIsNil(t *testing.T) {
	m := loadedManager(t, dice.NewCryptoSource(), map[string]string{
		"noop.lua": `x = 1`,
	})
	out, err := m.CallHook("no_such_hook", nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestCallHook_NoVMLoadedIsNil(t *testing.T) {
	m := scripting.NewManager(dice.NewCryptoSource(), zaptest.NewLogger(t))
	out, err := m.CallHook("anything", nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestCallHook_RuntimeErrorSwallowed(t *testing.T) {
	m := loadedManager(t, dice.NewCryptoSource(), map[string]string{
		"bad.lua": `
function on_bad(state)
  error("boom")
end`,
	})
	out, err := m.CallHook("on_bad", map[string]int{})
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestCallHook_GameChanceModule(t *testing.T) {
	src := &dice.StubSource{Floats: []float64{0.10}}
	m := loadedManager(t, src, map[string]string{
		"windfall.lua": `
function on_windfall(state)
  if game.chance(0.5) then
    return { gold = 5 }
  end
  return { }
end`,
	})
	out, err := m.CallHook("on_windfall", map[string]int{})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"gold": 5}, out)
}

func TestLoad_InstructionLimitTerminatesRunaway(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "loop.lua", `while true do end`)
	m := scripting.NewManager(dice.NewCryptoSource(), zaptest.NewLogger(t))
	err := m.Load(dir, 10_000)
	require.Error(t, err, "a top-level infinite loop must hit the opcode limit")
}

func TestLoad_InvalidLuaFails(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "broken.lua", `function (`)
	m := scripting.NewManager(dice.NewCryptoSource(), zaptest.NewLogger(t))
	assert.Error(t, m.Load(dir, 0))
}

func TestCallHook_NonTableReturnIsNil(t *testing.T) {
	m := loadedManager(t, dice.NewCryptoSource(), map[string]string{
		"scalar.lua": `
function on_scalar(state)
  return 42
end`,
	})
	out, err := m.CallHook("on_scalar", nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}

package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/calder-games/vagabond/internal/game/dice"
)

// Manager owns a single sandboxed LState holding every loaded incident hook
// and dispatches calls into it.
//
// Manager serializes hook calls with a mutex; the LState itself is
// single-threaded.
type Manager struct {
	mu     sync.Mutex
	state  *lua.LState
	cancel func()
	src    dice.Source
	logger *zap.Logger
}

// NewManager creates a Manager.
//
// Precondition: src and logger must be non-nil.
func NewManager(src dice.Source, logger *zap.Logger) *Manager {
	return &Manager{src: src, logger: logger}
}

// Load creates a sandboxed VM, registers the game.* modules, then executes
// every *.lua file in scriptDir in lexicographic order. Calling Load again
// replaces the previous VM.
//
// Precondition: scriptDir must be a readable directory.
// Postcondition: the VM is ready for CallHook; returns error on Lua load failure.
func (m *Manager) Load(scriptDir string, instLimit int) error {
	L, cancel := NewSandboxedState(instLimit)
	m.RegisterModules(L)

	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		cancel()
		L.Close()
		return fmt.Errorf("scripting: reading script dir %q: %w", scriptDir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	for _, path := range luaFiles {
		if err := L.DoFile(path); err != nil {
			cancel()
			L.Close()
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}

	m.mu.Lock()
	if m.state != nil {
		if m.cancel != nil {
			m.cancel()
		}
		m.state.Close()
	}
	m.state = L
	m.cancel = cancel
	m.mu.Unlock()
	return nil
}

// Close releases the VM. Safe to call multiple times.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != nil {
		if m.cancel != nil {
			m.cancel()
		}
		m.state.Close()
		m.state = nil
	}
}

// CallHook calls the named Lua global function with a table built from
// fields and returns the table it yields as an integer map. Returns
// (nil, nil) if no VM is loaded or the hook is not defined. Lua runtime
// errors are logged at Warn level and never propagated; the hook then
// contributes nothing.
//
// Postcondition: the returned map holds only integer-valued fields of the
// hook's return table; a non-table return yields nil.
func (m *Manager) CallHook(hook string, fields map[string]int) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == nil {
		return nil, nil
	}
	L := m.state

	fn := L.GetGlobal(hook)
	if fn == lua.LNil {
		return nil, nil
	}

	arg := L.NewTable()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		arg.RawSetString(k, lua.LNumber(fields[k]))
	}

	if err := L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, arg); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", hook),
			zap.Error(err),
		)
		return nil, nil
	}

	ret := L.Get(-1)
	L.Pop(1)

	table, ok := ret.(*lua.LTable)
	if !ok {
		return nil, nil
	}
	out := make(map[string]int)
	table.ForEach(func(k, v lua.LValue) {
		key, kok := k.(lua.LString)
		num, vok := v.(lua.LNumber)
		if kok && vok {
			out[string(key)] = int(num)
		}
	})
	return out, nil
}

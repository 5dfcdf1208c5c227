package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for keeper rules (rations, checkups).
// Single-goroutine access only.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	// Load core scripts first, then the care rules that build on them
	for _, sub := range []string{"core", "care"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// Has reports whether a global Lua function of that name is defined.
func (e *Engine) Has(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// RationContext holds pre-packed data for a daily ration calculation.
type RationContext struct {
	Kind      string
	Species   string
	Weight    float64 // kg
	Age       int
	Healthy   bool
	BaseRatio float64 // share of body weight from the kind table
}

// DailyRation calls the Lua calc_daily_ration function. ok is false when the
// function is missing or fails; the caller then uses its own formula.
func (e *Engine) DailyRation(ctx RationContext) (kg float64, ok bool) {
	fn := e.vm.GetGlobal("calc_daily_ration")
	if fn == lua.LNil {
		return 0, false
	}

	t := e.vm.NewTable()
	t.RawSetString("kind", lua.LString(ctx.Kind))
	t.RawSetString("species", lua.LString(ctx.Species))
	t.RawSetString("weight", lua.LNumber(ctx.Weight))
	t.RawSetString("age", lua.LNumber(ctx.Age))
	t.RawSetString("healthy", lua.LBool(ctx.Healthy))
	t.RawSetString("base_ratio", lua.LNumber(ctx.BaseRatio))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua calc_daily_ration error", zap.Error(err))
		return 0, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, isNum := result.(lua.LNumber)
	if !isNum || n < 0 {
		e.log.Error("lua calc_daily_ration returned invalid value", zap.String("value", result.String()))
		return 0, false
	}
	return float64(n), true
}

// CheckupContext holds pre-packed data for a checkup verdict.
type CheckupContext struct {
	Kind    string
	Name    string
	Weight  float64
	Age     int
	Variety string
}

// CheckupVerdict is returned by the Lua checkup_verdict function.
type CheckupVerdict struct {
	Healthy bool
	Note    string
}

// Checkup calls the Lua checkup_verdict function. ok is false when the
// function is missing, fails, or returns nil (no opinion).
func (e *Engine) Checkup(ctx CheckupContext) (CheckupVerdict, bool) {
	fn := e.vm.GetGlobal("checkup_verdict")
	if fn == lua.LNil {
		return CheckupVerdict{}, false
	}

	t := e.vm.NewTable()
	t.RawSetString("kind", lua.LString(ctx.Kind))
	t.RawSetString("name", lua.LString(ctx.Name))
	t.RawSetString("weight", lua.LNumber(ctx.Weight))
	t.RawSetString("age", lua.LNumber(ctx.Age))
	t.RawSetString("variety", lua.LString(ctx.Variety))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua checkup_verdict error", zap.Error(err))
		return CheckupVerdict{}, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, isTable := result.(*lua.LTable)
	if !isTable {
		return CheckupVerdict{}, false
	}
	return CheckupVerdict{
		Healthy: rt.RawGetString("healthy") == lua.LTrue,
		Note:    lStr(rt, "note"),
	}, true
}

// lStr reads a string field from a Lua table.
func lStr(t *lua.LTable, key string) string {
	v := t.RawGetString(key)
	if v == lua.LNil {
		return ""
	}
	return lua.LVAsString(v)
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}

package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func writeScript(t *testing.T, dir, sub, name, src string) {
	t.Helper()
	p := filepath.Join(dir, sub)
	require.NoError(t, os.MkdirAll(p, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(p, name), []byte(src), 0o644))
}

func newEngine(t *testing.T, dir string) *Engine {
	t.Helper()
	e, err := NewEngine(dir, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func TestEmptyDirHasNoRules(t *testing.T) {
	e := newEngine(t, t.TempDir())
	assert.False(t, e.Has("calc_daily_ration"))

	_, ok := e.DailyRation(RationContext{Weight: 100, BaseRatio: 0.05})
	assert.False(t, ok)
	_, ok = e.Checkup(CheckupContext{Kind: "Lion"})
	assert.False(t, ok)
}

func TestDailyRation(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "core", "ration.lua", `
function calc_daily_ration(ctx)
  if ctx.kind == "Lion" and not ctx.healthy then return ctx.weight * ctx.base_ratio * 2 end
  return ctx.weight * ctx.base_ratio
end`)
	e := newEngine(t, dir)
	assert.True(t, e.Has("calc_daily_ration"))

	kg, ok := e.DailyRation(RationContext{Kind: "Lion", Weight: 200, BaseRatio: 0.05, Healthy: true})
	require.True(t, ok)
	assert.InDelta(t, 10.0, kg, 1e-9)

	kg, ok = e.DailyRation(RationContext{Kind: "Lion", Weight: 200, BaseRatio: 0.05})
	require.True(t, ok)
	assert.InDelta(t, 20.0, kg, 1e-9)
}

func TestDailyRationRejectsBadResults(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "core", "ration.lua", `
function calc_daily_ration(ctx)
  if ctx.kind == "Eagle" then error("boom") end
  if ctx.kind == "Parrot" then return "lots" end
  return -1
end`)
	e := newEngine(t, dir)
	for _, kind := range []string{"Eagle", "Parrot", "Lion"} {
		_, ok := e.DailyRation(RationContext{Kind: kind, Weight: 1})
		assert.False(t, ok, kind)
	}
}

func TestCheckup(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "care", "checkup.lua", `
function checkup_verdict(ctx)
  if ctx.kind == "Penguin" and ctx.weight < 10 then
    return { healthy = false, note = ctx.name .. " is underweight" }
  end
  return nil
end`)
	e := newEngine(t, dir)

	v, ok := e.Checkup(CheckupContext{Kind: "Penguin", Name: "Pingu", Weight: 8})
	require.True(t, ok)
	assert.False(t, v.Healthy)
	assert.Equal(t, "Pingu is underweight", v.Note)

	_, ok = e.Checkup(CheckupContext{Kind: "Penguin", Name: "Skipper", Weight: 25})
	assert.False(t, ok, "nil means no opinion")
}

func TestLoadErrorsAreReported(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "core", "broken.lua", "function (")
	_, err := NewEngine(dir, nil)
	assert.ErrorContains(t, err, "load core scripts")
}

func TestShippedScripts(t *testing.T) {
	e := newEngine(t, filepath.Join("..", "..", "scripts"))

	kg, ok := e.DailyRation(RationContext{Kind: "Lion", Weight: 190, Age: 5, Healthy: true, BaseRatio: 0.05})
	require.True(t, ok)
	assert.InDelta(t, 9.5, kg, 1e-9)

	kg, ok = e.DailyRation(RationContext{Kind: "Monkey", Weight: 10, Age: 1, Healthy: true, BaseRatio: 0.03})
	require.True(t, ok)
	assert.InDelta(t, 0.36, kg, 1e-9)

	v, ok := e.Checkup(CheckupContext{Kind: "Penguin", Name: "Pingu", Weight: 8})
	require.True(t, ok)
	assert.False(t, v.Healthy)
	assert.Equal(t, "Pingu needs vitamin supplements!", v.Note)

	v, ok = e.Checkup(CheckupContext{Kind: "Elephant", Name: "Ellie", Weight: 4000, Age: 61})
	require.True(t, ok)
	assert.True(t, v.Healthy)

	_, ok = e.Checkup(CheckupContext{Kind: "Lion", Name: "Simba", Weight: 190, Age: 5})
	assert.False(t, ok)
}

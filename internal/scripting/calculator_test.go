package scripting_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/skirmish/internal/game/damage"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/scripting"
)

// stubDice returns f from Float64 and n from Intn.
type stubDice struct {
	f float64
	n int
}

func (s stubDice) Float64() float64 { return s.f }
func (s stubDice) Intn(int) int     { return s.n }

const linearScript = `
function calculate(base, atk, def)
	return base + (atk - def) * 2
end
`

// repoRoot walks up from the test's working directory to find the module root.
func repoRoot(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	root := wd
	for {
		if _, err := os.Stat(filepath.Join(root, "go.mod")); err == nil {
			return root
		}
		parent := filepath.Dir(root)
		if parent == root {
			t.Fatalf("could not find repo root from %s", wd)
		}
		root = parent
	}
}

func TestCalculator_UsesScriptResult(t *testing.T) {
	c, err := scripting.NewCalculator("linear", linearScript, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, "linear", c.Name())

	got, err := c.Eval(50, 5, 2)
	require.NoError(t, err)
	assert.Equal(t, 56, got)
	assert.Equal(t, 56, c.Calculate(50, 5, 2))
}

func TestCalculator_FloorsAndClampsToMinimum(t *testing.T) {
	c, err := scripting.NewCalculator("frac", `function calculate(b, a, d) return b / 3 end`, 0, nil)
	require.NoError(t, err)
	got, err := c.Eval(10, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	neg, err := scripting.NewCalculator("neg", `function calculate(b, a, d) return -50 end`, 0, nil)
	require.NoError(t, err)
	got, err = neg.Eval(10, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, damage.MinDamage, got)
}

func TestNewCalculator_MissingEntryPoint(t *testing.T) {
	_, err := scripting.NewCalculator("empty", `local x = 1`, 0, nil)
	assert.ErrorIs(t, err, scripting.ErrNoEntryPoint)
}

func TestNewCalculator_SyntaxError(t *testing.T) {
	_, err := scripting.NewCalculator("broken", `function calculate(`, 0, nil)
	assert.Error(t, err)
}

func TestCalculator_RunawayScriptRejected(t *testing.T) {
	c, err := scripting.NewCalculator("spin", `
		function calculate(b, a, d)
			while true do end
		end
	`, 1000, nil)
	require.NoError(t, err)
	_, err = c.Eval(10, 1, 1)
	assert.Error(t, err)
}

func TestCalculator_NonNumberIsError(t *testing.T) {
	c, err := scripting.NewCalculator("str", `function calculate(b, a, d) return "lots" end`, 0, nil)
	require.NoError(t, err)
	_, err = c.Eval(10, 1, 1)
	assert.ErrorContains(t, err, "want number")
}

func TestCalculator_FallbackOnError(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	c, err := scripting.NewCalculator("boom", `function calculate(b, a, d) error("boom") end`, 0, zap.New(core))
	require.NoError(t, err)

	got := c.Calculate(50, 3, 3)
	assert.Equal(t, damage.NewStandard().Calculate(50, 3, 3), got)
	assert.Equal(t, 1, logs.FilterMessage("scripting: damage script failed, using standard formula").Len())
}

func TestCalculator_EvaluationsDoNotShareGlobals(t *testing.T) {
	c, err := scripting.NewCalculator("counter", `
		hits = 0
		function calculate(b, a, d)
			hits = hits + 1
			return hits
		end
	`, 0, nil)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		got, err := c.Eval(10, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, got)
	}
}

func TestCalculator_EngineRandom(t *testing.T) {
	c, err := scripting.NewCalculator("rand", `
		function calculate(b, a, d)
			if engine.random() < 0.5 then return b * 2 end
			return b
		end
	`, 0, nil)
	require.NoError(t, err)

	got, err := c.Eval(10, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 20, got, "unset Dice draws 0")

	c.Dice = stubDice{f: 0.9}
	got, err = c.Eval(10, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, got)
}

func TestCalculator_EngineRoll(t *testing.T) {
	c, err := scripting.NewCalculator("roll", `
		function calculate(b, a, d)
			return b + engine.roll(6)
		end
	`, 0, nil)
	require.NoError(t, err)

	got, err := c.Eval(10, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 11, got, "unset Dice rolls 1")

	c.Dice = stubDice{n: 5}
	got, err = c.Eval(10, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 16, got)
}

func TestCalculator_EngineRoll_SeededInRange(t *testing.T) {
	c, err := scripting.NewCalculator("d20", `function calculate(b, a, d) return engine.roll(20) end`, 0, nil)
	require.NoError(t, err)
	c.Dice = dice.NewSeededSource(3)
	for i := 0; i < 100; i++ {
		got, err := c.Eval(0, 1, 1)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, 1)
		assert.LessOrEqual(t, got, 20)
	}
}

func TestCalculator_EngineRoll_RejectsZeroSides(t *testing.T) {
	c, err := scripting.NewCalculator("d0", `function calculate(b, a, d) return engine.roll(0) end`, 0, nil)
	require.NoError(t, err)
	_, err = c.Eval(10, 1, 1)
	assert.ErrorContains(t, err, "sides must be >= 1")
}

func TestCalculator_EngineLog(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	c, err := scripting.NewCalculator("chatty", `
		function calculate(b, a, d)
			engine.log("rolling")
			return b
		end
	`, 0, zap.New(core))
	require.NoError(t, err)
	_, err = c.Eval(10, 1, 1)
	require.NoError(t, err)
	entries := logs.FilterMessage("lua").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "rolling", entries[0].ContextMap()["msg"])
}

func TestLoadCalculator_ShippedScript(t *testing.T) {
	c, err := scripting.LoadCalculator(filepath.Join(repoRoot(t), "content", "scripts", "damage.lua"), 0, nil)
	require.NoError(t, err)
	got, err := c.Eval(50, 5, 5)
	require.NoError(t, err)
	assert.Equal(t, 50, got)
}

func TestLoadCalculator_MissingFile(t *testing.T) {
	_, err := scripting.LoadCalculator(filepath.Join(t.TempDir(), "nope.lua"), 0, nil)
	assert.ErrorContains(t, err, "cannot read file")
}

func TestProperty_ScriptedResultAtLeastMinimum(t *testing.T) {
	c, err := scripting.NewCalculator("linear", linearScript, 0, nil)
	require.NoError(t, err)
	rapid.Check(t, func(rt *rapid.T) {
		base := rapid.IntRange(0, 500).Draw(rt, "base")
		atk := rapid.IntRange(0, 100).Draw(rt, "atk")
		def := rapid.IntRange(0, 100).Draw(rt, "def")
		assert.GreaterOrEqual(rt, c.Calculate(base, atk, def), damage.MinDamage)
	})
}

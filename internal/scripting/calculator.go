package scripting

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/damage"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// EntryPoint is the Lua global every damage script must define:
//
//	function calculate(base, attacker_level, defender_level) return n end
const EntryPoint = "calculate"

// ErrNoEntryPoint is returned when a script does not define EntryPoint.
var ErrNoEntryPoint = errors.New("scripting: script does not define function " + EntryPoint)

var _ damage.Calculator = (*Calculator)(nil)

// Calculator is a damage.Calculator whose formula is a Lua script.
//
// The script is compiled once; every evaluation runs in a fresh sandboxed
// state, so evaluations share no Lua globals and a runaway script only
// poisons its own state. Calculator is safe for concurrent use when Dice is.
type Calculator struct {
	name      string
	proto     *lua.FunctionProto
	instLimit int
	fallback  damage.Standard
	logger    *zap.Logger

	// Injected after construction. nil = engine.random() returns 0 and
	// engine.roll(n) returns 1.
	Dice dice.Source
}

// NewCalculator compiles source and checks that it defines EntryPoint.
//
// Precondition: instLimit >= 0; 0 uses DefaultInstructionLimit. A nil logger
// disables logging.
// Postcondition: Returns a ready Calculator or an error describing the
// compile or load failure.
func NewCalculator(name, source string, instLimit int, logger *zap.Logger) (*Calculator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	chunk, err := parse.Parse(strings.NewReader(source), name)
	if err != nil {
		return nil, fmt.Errorf("scripting: parsing %q: %w", name, err)
	}
	proto, err := lua.Compile(chunk, name)
	if err != nil {
		return nil, fmt.Errorf("scripting: compiling %q: %w", name, err)
	}
	c := &Calculator{
		name:      name,
		proto:     proto,
		instLimit: instLimit,
		fallback:  damage.NewStandard(),
		logger:    logger,
	}

	L, cancel, err := c.load()
	if err != nil {
		return nil, err
	}
	defer L.Close()
	defer cancel()
	if _, ok := L.GetGlobal(EntryPoint).(*lua.LFunction); !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoEntryPoint, name)
	}
	return c, nil
}

// LoadCalculator reads the script at path and calls NewCalculator.
func LoadCalculator(path string, instLimit int, logger *zap.Logger) (*Calculator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadCalculator: cannot read file %q: %w", path, err)
	}
	return NewCalculator(path, string(data), instLimit, logger)
}

// Name returns the script name given at construction.
func (c *Calculator) Name() string { return c.name }

// load creates a sandboxed state and runs the compiled chunk in it.
func (c *Calculator) load() (*lua.LState, func(), error) {
	L, cancel := NewSandboxedState(c.instLimit)
	c.registerModules(L)
	L.Push(L.NewFunctionFromProto(c.proto))
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		cancel()
		L.Close()
		return nil, nil, fmt.Errorf("scripting: loading %q: %w", c.name, err)
	}
	return L, cancel, nil
}

// Eval runs the script's calculate function.
//
// Postcondition: On success returns max(damage.MinDamage, floor(result)).
// Returns an error when the script raises, exceeds the instruction limit, or
// returns a non-number.
func (c *Calculator) Eval(baseDamage, attackerLevel, defenderLevel int) (int, error) {
	L, cancel, err := c.load()
	if err != nil {
		return 0, err
	}
	defer L.Close()
	defer cancel()

	if err := L.CallByParam(lua.P{
		Fn:      L.GetGlobal(EntryPoint),
		NRet:    1,
		Protect: true,
	}, lua.LNumber(baseDamage), lua.LNumber(attackerLevel), lua.LNumber(defenderLevel)); err != nil {
		return 0, fmt.Errorf("scripting: %s(%d, %d, %d) in %q: %w",
			EntryPoint, baseDamage, attackerLevel, defenderLevel, c.name, err)
	}
	ret := L.Get(-1)
	L.Pop(1)

	n, ok := ret.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("scripting: %s in %q returned %s, want number", EntryPoint, c.name, ret.Type())
	}
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("scripting: %s in %q returned non-finite %v", EntryPoint, c.name, f)
	}
	return max(damage.MinDamage, int(math.Floor(min(f, math.MaxInt32)))), nil
}

// Calculate implements damage.Calculator. Script failures are logged at warn
// level and the Standard formula is used instead.
func (c *Calculator) Calculate(baseDamage, attackerLevel, defenderLevel int) int {
	dmg, err := c.Eval(baseDamage, attackerLevel, defenderLevel)
	if err != nil {
		c.logger.Warn("scripting: damage script failed, using standard formula",
			zap.String("script", c.name),
			zap.Error(err),
		)
		return c.fallback.Calculate(baseDamage, attackerLevel, defenderLevel)
	}
	return dmg
}

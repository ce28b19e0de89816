package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// registerModules installs the engine table into L:
//
//	engine.random()   uniform draw in [0,1) from Calculator.Dice, 0 when unset
//	engine.roll(n)    die roll in [1,n] from Calculator.Dice, 1 when unset
//	engine.log(msg)   debug log line tagged with the script name
//
// Precondition: L must be from NewSandboxedState.
func (c *Calculator) registerModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetField(engine, "random", L.NewFunction(func(L *lua.LState) int {
		v := 0.0
		if c.Dice != nil {
			v = c.Dice.Float64()
		}
		L.Push(lua.LNumber(v))
		return 1
	}))
	L.SetField(engine, "roll", L.NewFunction(func(L *lua.LState) int {
		n := L.CheckInt(1)
		if n < 1 {
			L.ArgError(1, "sides must be >= 1")
			return 0
		}
		v := 1
		if c.Dice != nil {
			v = c.Dice.Intn(n) + 1
		}
		L.Push(lua.LNumber(v))
		return 1
	}))
	L.SetField(engine, "log", L.NewFunction(func(L *lua.LState) int {
		c.logger.Debug("lua",
			zap.String("script", c.name),
			zap.String("msg", L.CheckString(1)),
		)
		return 0
	}))
	L.SetGlobal("engine", engine)
}

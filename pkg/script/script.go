// Package script provides an embedded Lua scripting convenience for
// generating parametric Orc kernel programs — loops that emit repeated
// instruction patterns without hand-writing every OIL line. It mirrors
// the teacher's LuaEvaluator (pkg/meta/lua_evaluator.go): a small Lua
// module ("orc" here, "minz" there) whose functions append lines of
// textual source, later handed to the real front-end parser rather than
// built as Go structs directly from Lua.
package script

import (
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/orc-lang/orc/pkg/ir"
	"github.com/orc-lang/orc/pkg/oil"
)

// Evaluator runs Lua scripts against the "orc" module and accumulates the
// OIL source text they emit. Not safe for concurrent use — like the
// teacher's LuaEvaluator, one *lua.LState per Evaluator.
type Evaluator struct {
	L    *lua.LState
	text strings.Builder
}

// NewEvaluator constructs a fresh Lua state with the "orc" module
// installed.
func NewEvaluator() *Evaluator {
	e := &Evaluator{L: lua.NewState()}
	e.setupOrcAPI()
	return e
}

// Close releases the underlying Lua state.
func (e *Evaluator) Close() {
	e.L.Close()
}

func (e *Evaluator) setupOrcAPI() {
	module := e.L.NewTable()
	e.L.SetField(module, "program", e.L.NewFunction(e.luaProgram))
	e.L.SetField(module, "var", e.L.NewFunction(e.luaVar))
	e.L.SetField(module, "insn", e.L.NewFunction(e.luaInsn))
	e.L.SetGlobal("orc", module)
}

func (e *Evaluator) luaProgram(L *lua.LState) int {
	name := L.CheckString(1)
	fmt.Fprintf(&e.text, "program %s\n", name)
	return 0
}

// luaVar implements orc.var(kind, name, size [, value]) — one variable
// declaration line. value is only meaningful (and only read) for "const".
func (e *Evaluator) luaVar(L *lua.LState) int {
	kind := L.CheckString(1)
	name := L.CheckString(2)
	size := L.CheckString(3)

	if L.GetTop() < 4 {
		fmt.Fprintf(&e.text, "%s %s %s\n", kind, name, size)
		return 0
	}

	value := valueToken(L.Get(4))
	fmt.Fprintf(&e.text, "%s %s %s %s\n", kind, name, size, value)
	return 0
}

// luaInsn implements orc.insn(opname, operand, operand, ...) — one
// instruction line, destinations before sources exactly as the caller
// passes them (the front end resolves arity against the opcode table).
func (e *Evaluator) luaInsn(L *lua.LState) int {
	op := L.CheckString(1)
	operands := make([]string, 0, L.GetTop()-1)
	for i := 2; i <= L.GetTop(); i++ {
		operands = append(operands, L.CheckString(i))
	}
	fmt.Fprintf(&e.text, "%s %s\n", op, strings.Join(operands, ", "))
	return 0
}

func valueToken(v lua.LValue) string {
	switch n := v.(type) {
	case lua.LNumber:
		return fmt.Sprintf("%d", int64(n))
	default:
		return n.String()
	}
}

// Run executes a Lua generator script against the "orc" module and parses
// the OIL text it produced into a program.
func (e *Evaluator) Run(script string) (*ir.Program, error) {
	src, err := e.GenerateSource(script)
	if err != nil {
		return nil, err
	}
	program, err := oil.ParseString(src)
	if err != nil {
		return nil, fmt.Errorf("script: generated source did not parse: %w", err)
	}
	return program, nil
}

// GenerateSource executes script and returns the accumulated OIL text
// without parsing it — useful for inspecting what a generator emitted.
func (e *Evaluator) GenerateSource(script string) (string, error) {
	if err := e.L.DoString(script); err != nil {
		return "", fmt.Errorf("script: %w", err)
	}
	return e.text.String(), nil
}

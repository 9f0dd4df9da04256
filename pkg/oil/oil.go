// Package oil implements Orc's textual program-construction front end — a
// small line-oriented assembly format that declares a program's variable
// table and instruction stream directly in terms of the core's own types.
// It is a hand-rolled scanner/parser in the style of the teacher's
// SimpleParser (pkg/parser/simple_parser.go): no grammar-generator
// dependency, because OIL's grammar is flat enough (one declaration or one
// instruction per line) that a recursive-descent-over-tokens parser buys
// nothing a field-splitting line scanner doesn't already give for free.
package oil

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/orc-lang/orc/pkg/ir"
)

var kindKeywords = map[string]ir.VarKind{
	"dest":  ir.Dest,
	"src":   ir.Src,
	"temp":  ir.Temp,
	"const": ir.Const,
	"param": ir.Param,
	"accum": ir.Accumulator,
}

var sizeKeywords = map[string]int{
	"byte": 1,
	"word": 2,
	"long": 4,
}

// Parser holds the scanner state for one OIL source. Parser is not
// reusable across sources — construct a fresh one per Parse call.
type Parser struct {
	name  string
	vars  []ir.Variable
	index map[string]int
	temps int
	insns []ir.Instruction
	line  int
}

// Parse reads a complete OIL source and returns the program it describes,
// or the first error encountered (annotated with its source line).
func Parse(r io.Reader) (*ir.Program, error) {
	p := &Parser{index: make(map[string]int)}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		p.line++
		if err := p.parseLine(scanner.Text()); err != nil {
			return nil, fmt.Errorf("oil:%d: %w", p.line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("oil: reading source: %w", err)
	}
	if p.name == "" {
		return nil, fmt.Errorf("oil: source has no \"program <name>\" declaration")
	}

	return &ir.Program{
		Name:      p.name,
		Vars:      p.vars,
		Insns:     p.insns,
		NTempVars: p.temps,
	}, nil
}

// ParseString is a convenience wrapper around Parse for in-memory OIL
// text, used throughout the test suite and by pkg/script.
func ParseString(src string) (*ir.Program, error) {
	return Parse(strings.NewReader(src))
}

func (p *Parser) parseLine(raw string) error {
	line := stripComment(raw)
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	fields := strings.Fields(line)
	switch fields[0] {
	case "program":
		return p.parseProgramDecl(fields)
	case "dest", "src", "temp", "const", "param", "accum":
		return p.parseVarDecl(fields)
	default:
		return p.parseInstruction(line)
	}
}

func stripComment(line string) string {
	if i := strings.Index(line, ";"); i >= 0 {
		line = line[:i]
	}
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}
	return line
}

func (p *Parser) parseProgramDecl(fields []string) error {
	if len(fields) != 2 {
		return fmt.Errorf("\"program\" wants exactly one name, got %d fields", len(fields)-1)
	}
	if p.name != "" {
		return fmt.Errorf("program name already set to %q", p.name)
	}
	p.name = fields[1]
	return nil
}

func (p *Parser) parseVarDecl(fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("variable declaration wants at least a kind, name and size")
	}
	kind := kindKeywords[fields[0]]
	name := fields[1]
	size, ok := sizeKeywords[fields[2]]
	if !ok {
		return fmt.Errorf("unknown size %q (want byte, word or long)", fields[2])
	}
	if _, exists := p.index[name]; exists {
		return fmt.Errorf("variable %q already declared", name)
	}

	v := ir.NewVariable(name, size, kind)
	if kind == ir.Const {
		if len(fields) < 4 {
			return fmt.Errorf("const %q needs a literal value", name)
		}
		value, err := strconv.ParseUint(fields[3], 0, 32)
		if err != nil {
			return fmt.Errorf("const %q: %w", name, err)
		}
		v.Value = uint32(value)
	}

	p.index[name] = len(p.vars)
	p.vars = append(p.vars, v)
	if kind == ir.Temp {
		p.temps++
	}
	return nil
}

func (p *Parser) parseInstruction(line string) error {
	head, rest, _ := strings.Cut(line, " ")
	op := ir.LookupOpcode(head)
	if op == nil {
		return fmt.Errorf("unknown opcode %q", head)
	}

	var operands []string
	if rest = strings.TrimSpace(rest); rest != "" {
		for _, tok := range strings.Split(rest, ",") {
			operands = append(operands, strings.TrimSpace(tok))
		}
	}

	nDest := slotCount(op.DestSizes[:])
	nSrc := slotCount(op.SrcSizes[:])
	if len(operands) != nDest+nSrc {
		return fmt.Errorf("%s wants %d destination and %d source operand(s), got %d",
			op.Name, nDest, nSrc, len(operands))
	}

	inst := ir.NewInstruction(op)
	for i := 0; i < nDest; i++ {
		idx, err := p.resolve(operands[i])
		if err != nil {
			return err
		}
		inst.Dest[i] = idx
	}
	for i := 0; i < nSrc; i++ {
		idx, err := p.resolve(operands[nDest+i])
		if err != nil {
			return err
		}
		inst.Src[i] = idx
	}

	p.insns = append(p.insns, inst)
	return nil
}

func (p *Parser) resolve(name string) (int, error) {
	idx, ok := p.index[name]
	if !ok {
		return 0, fmt.Errorf("undeclared variable %q", name)
	}
	return idx, nil
}

func slotCount(sizes []int) int {
	n := 0
	for _, s := range sizes {
		if s != 0 {
			n++
		}
	}
	return n
}

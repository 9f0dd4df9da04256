package ir

import "fmt"

// AppendCode formats a line of target assembly text and appends it to the
// context's buffer, followed by a newline. The reference implementation
// bounds each call's formatted chunk to a fixed-size C buffer and grows
// the heap allocation on every append; Go's fmt.Sprintf has no such fixed
// bound, so the only behavior worth preserving here is "the buffer may
// start empty and grows one formatted line at a time" — which it does.
func (c *Context) AppendCode(format string, args ...interface{}) {
	line := fmt.Sprintf(format, args...)
	c.AsmCode = append(c.AsmCode, []byte(line)...)
	c.AsmCode = append(c.AsmCode, '\n')
}

// EmitByte appends a single raw code byte.
func (c *Context) EmitByte(b byte) {
	c.Code = append(c.Code, b)
}

// EmitBytes appends raw code bytes.
func (c *Context) EmitBytes(b ...byte) {
	c.Code = append(c.Code, b...)
}

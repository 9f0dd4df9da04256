package ir

// ResultCode is the outcome of a compilation attempt. Severity is totally
// ordered: a later constant is never "less fatal" than an earlier one.
type ResultCode int

const (
	// ResultOK means executable code was generated for the target.
	ResultOK ResultCode = iota

	// ResultEmulateOnly marks a program that only the interpreter can
	// run. Not an error. Compile never returns it: a nil target and a
	// missing rule both yield ResultUnknownCompile.
	ResultEmulateOnly

	// ResultUnknownCompile is recoverable: the program is well-formed but
	// this target could not compile it (missing rule, register
	// exhaustion, compilation disabled). The interpreter can still run it.
	ResultUnknownCompile

	// ResultUnknownParse is fatal: the program itself is malformed
	// (size mismatch, illegal operand kind, use-before-def). Neither the
	// target nor the interpreter can run it.
	ResultUnknownParse
)

func (r ResultCode) String() string {
	switch r {
	case ResultOK:
		return "ok"
	case ResultEmulateOnly:
		return "emulate-only"
	case ResultUnknownCompile:
		return "unknown-compile"
	case ResultUnknownParse:
		return "unknown-parse"
	default:
		return "invalid-result"
	}
}

// Successful reports whether executable code was generated.
func (r ResultCode) Successful() bool {
	return r == ResultOK
}

// Fatal reports whether the program itself is invalid — the interpreter
// will also reject it.
func (r ResultCode) Fatal() bool {
	return r == ResultUnknownParse
}

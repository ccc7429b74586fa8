package disasm

import (
	"github.com/wippyai/luadump/chunk"
)

// Render returns the listing of p followed, depth first, by the listings of
// every nested prototype. p is rendered as the main function and all nested
// prototypes as functions. Listings are separated by an empty line.
func Render(p *chunk.Prototype) []string {
	var out []string
	Walk(p, func(path []int, fn *chunk.Prototype) bool {
		if len(path) > 0 {
			out = append(out, "")
		}
		out = append(out, RenderPrototype(fn, len(path) == 0)...)
		return true
	})
	return out
}

// RenderPrototype returns the listing of p alone: header, summary, code,
// constants, locals and upvalues. Nested prototypes are not included.
func RenderPrototype(p *chunk.Prototype, main bool) []string {
	out := make([]string, 0, 5+len(p.Code)+len(p.Constants)+len(p.LocVars)+len(p.Upvalues))
	out = append(out, Header(p, main), Summary(p))
	for pc := range p.Code {
		out = append(out, InstructionLine(p, pc))
	}
	out = append(out, Constants(p)...)
	out = append(out, Locals(p)...)
	out = append(out, Upvalues(p)...)
	return out
}

// Walk calls fn for p and each nested prototype in depth-first pre-order.
// path holds the child indexes leading from p to the visited prototype and
// is empty for p itself; it must not be retained. Returning false from fn
// skips the children of that prototype.
func Walk(p *chunk.Prototype, fn func(path []int, p *chunk.Prototype) bool) {
	walk(p, nil, fn)
}

func walk(p *chunk.Prototype, path []int, fn func([]int, *chunk.Prototype) bool) {
	if !fn(path, p) {
		return
	}
	for i := range p.Protos {
		walk(&p.Protos[i], append(path, i), fn)
	}
}

package disasm

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/luadump/bytecode"
	"github.com/wippyai/luadump/chunk"
)

// NoLine is shown in place of a missing line number or upvalue name.
const NoLine = "-"

// sourceName converts a chunk source name the way luac displays it.
func sourceName(s string) string {
	switch {
	case s == "":
		return "?"
	case s[0] == '@' || s[0] == '=':
		return s[1:]
	case s[0] == chunk.Signature[0]:
		return "(bstring)"
	default:
		return "(string)"
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// Header returns the first line of a prototype's listing.
func Header(p *chunk.Prototype, main bool) string {
	kind := "function"
	if main {
		kind = "main"
	}
	n := len(p.Code)
	return fmt.Sprintf("%s <%s:%d,%d> (%d instruction%s)",
		kind, sourceName(p.Source), p.LineDefined, p.LastLineDefined, n, plural(n))
}

// Summary returns the counts line that follows the header.
func Summary(p *chunk.Prototype) string {
	vararg := ""
	if p.IsVararg != 0 {
		vararg = "+"
	}
	np, slots := int(p.NumParams), int(p.MaxStackSize)
	nu, nl, nk, nf := len(p.Upvalues), len(p.LocVars), len(p.Constants), len(p.Protos)
	return fmt.Sprintf("%d%s param%s, %d slot%s, %d upvalue%s, %d local%s, %d constant%s, %d function%s",
		np, vararg, plural(np),
		slots, plural(slots),
		nu, plural(nu),
		nl, plural(nl),
		nk, plural(nk),
		nf, plural(nf))
}

// InstructionLine renders instruction pc of p.
func InstructionLine(p *chunk.Prototype, pc int) string {
	i := p.Code[pc]
	line := NoLine
	if l, ok := p.Line(pc); ok {
		line = strconv.FormatUint(uint64(l), 10)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\t%d\t[%s]\t%08X\t%-9s\t", pc+1, line, uint32(i), i.Name())
	d, ok := i.Descriptor()
	if !ok {
		Logger().Debug("unknown opcode", zap.Int("pc", pc), zap.Uint8("opcode", uint8(i.Opcode())))
		return strings.TrimRight(b.String(), " \t")
	}
	b.WriteString(operands(i, d))
	if c := comment(p, pc, i); c != "" {
		b.WriteString("\t; ")
		b.WriteString(c)
	}
	return b.String()
}

// rk renders an RK operand, constants as -1-index.
func rk(x int) int {
	if bytecode.IsK(x) {
		return -1 - bytecode.IndexK(x)
	}
	return x
}

func operands(i bytecode.Instruction, d bytecode.Descriptor) string {
	switch o := i.Fields(d.Mode).(type) {
	case bytecode.ABC:
		s := strconv.Itoa(o.A)
		if d.B != bytecode.ArgN {
			s += " " + strconv.Itoa(rk(o.B))
		}
		if d.C != bytecode.ArgN {
			s += " " + strconv.Itoa(rk(o.C))
		}
		return s
	case bytecode.ABx:
		s := strconv.Itoa(o.A)
		switch d.B {
		case bytecode.ArgK:
			s += " " + strconv.Itoa(-1-o.Bx)
		case bytecode.ArgU:
			s += " " + strconv.Itoa(o.Bx)
		}
		return s
	case bytecode.AsBx:
		return strconv.Itoa(o.A) + " " + strconv.Itoa(o.SBx)
	case bytecode.Ax:
		if d.B == bytecode.ArgN {
			return ""
		}
		return strconv.Itoa(-1 - o.Ax)
	}
	return ""
}

// constantValue renders constant k for an instruction comment, or "?" when
// the index is outside the pool.
func constantValue(p *chunk.Prototype, k int) string {
	if k < 0 || k >= len(p.Constants) {
		return "?"
	}
	switch c := p.Constants[k].(type) {
	case chunk.Nil:
		return "nil"
	case chunk.Boolean:
		return strconv.FormatBool(bool(c))
	case chunk.Integer:
		return strconv.FormatInt(int64(c), 10)
	case chunk.Float:
		return strconv.FormatFloat(float64(c), 'g', 14, 64)
	default:
		s, _ := chunk.StringValue(c)
		return strconv.Quote(s)
	}
}

func upvalueName(p *chunk.Prototype, i int) string {
	if n := p.UpvalueName(i); n != "" {
		return n
	}
	return NoLine
}

func rkComment(p *chunk.Prototype, x int) string {
	if bytecode.IsK(x) {
		return constantValue(p, bytecode.IndexK(x))
	}
	return NoLine
}

// comment returns the luac-style annotation of an instruction, if any.
func comment(p *chunk.Prototype, pc int, i bytecode.Instruction) string {
	op := i.Opcode()
	switch op {
	case bytecode.OpLoadK:
		return constantValue(p, i.Fields(bytecode.ModeABx).(bytecode.ABx).Bx)
	case bytecode.OpGetUpval, bytecode.OpSetUpval:
		return upvalueName(p, i.Fields(bytecode.ModeABC).(bytecode.ABC).B)
	case bytecode.OpGetTabUp:
		o := i.Fields(bytecode.ModeABC).(bytecode.ABC)
		s := upvalueName(p, o.B)
		if bytecode.IsK(o.C) {
			s += " " + constantValue(p, bytecode.IndexK(o.C))
		}
		return s
	case bytecode.OpSetTabUp:
		o := i.Fields(bytecode.ModeABC).(bytecode.ABC)
		s := upvalueName(p, o.A)
		if bytecode.IsK(o.B) {
			s += " " + constantValue(p, bytecode.IndexK(o.B))
		}
		if bytecode.IsK(o.C) {
			s += " " + constantValue(p, bytecode.IndexK(o.C))
		}
		return s
	case bytecode.OpGetTable, bytecode.OpSelf:
		if o := i.Fields(bytecode.ModeABC).(bytecode.ABC); bytecode.IsK(o.C) {
			return constantValue(p, bytecode.IndexK(o.C))
		}
	case bytecode.OpSetTable, bytecode.OpAdd, bytecode.OpSub, bytecode.OpMul, bytecode.OpMod,
		bytecode.OpPow, bytecode.OpDiv, bytecode.OpIDiv, bytecode.OpBAnd, bytecode.OpBOr,
		bytecode.OpBXor, bytecode.OpShl, bytecode.OpShr, bytecode.OpEq, bytecode.OpLt, bytecode.OpLe:
		if o := i.Fields(bytecode.ModeABC).(bytecode.ABC); bytecode.IsK(o.B) || bytecode.IsK(o.C) {
			return rkComment(p, o.B) + " " + rkComment(p, o.C)
		}
	case bytecode.OpJmp, bytecode.OpForLoop, bytecode.OpForPrep, bytecode.OpTForLoop:
		return "to " + strconv.Itoa(i.Fields(bytecode.ModeAsBx).(bytecode.AsBx).SBx+pc+2)
	case bytecode.OpSetList:
		o := i.Fields(bytecode.ModeABC).(bytecode.ABC)
		if o.C != 0 {
			return strconv.Itoa(o.C)
		}
		if pc+1 < len(p.Code) {
			return strconv.Itoa(p.Code[pc+1].Fields(bytecode.ModeAx).(bytecode.Ax).Ax)
		}
	}
	return ""
}

// Constants renders the constants table of p.
func Constants(p *chunk.Prototype) []string {
	out := make([]string, 0, len(p.Constants)+1)
	out = append(out, fmt.Sprintf("constants (%d):", len(p.Constants)))
	for i, c := range p.Constants {
		out = append(out, fmt.Sprintf("\t%d\t%s", i+1, c))
	}
	return out
}

// Locals renders the local variable table of p.
func Locals(p *chunk.Prototype) []string {
	out := make([]string, 0, len(p.LocVars)+1)
	out = append(out, fmt.Sprintf("locals (%d):", len(p.LocVars)))
	for i, v := range p.LocVars {
		out = append(out, fmt.Sprintf("\t%d\t%s\t%d\t%d", i, v.Name, v.StartPC+1, v.EndPC+1))
	}
	return out
}

// Upvalues renders the upvalue table of p.
func Upvalues(p *chunk.Prototype) []string {
	out := make([]string, 0, len(p.Upvalues)+1)
	out = append(out, fmt.Sprintf("upvalues (%d):", len(p.Upvalues)))
	for i, u := range p.Upvalues {
		out = append(out, fmt.Sprintf("\t%d\t%s\t%d\t%d", i, upvalueName(p, i), u.InStack, u.Idx))
	}
	return out
}

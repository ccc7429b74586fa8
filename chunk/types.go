package chunk

import (
	"fmt"
	"strconv"

	"github.com/wippyai/luadump/bytecode"
	"github.com/wippyai/luadump/errors"
)

// Header is the fixed-format prefix of a chunk.
type Header struct {
	Signature       [4]byte
	Version         byte
	Format          byte
	Data            [6]byte
	IntSize         byte
	SizetSize       byte
	InstructionSize byte
	IntegerSize     byte
	NumberSize      byte
	Int             int64
	Num             float64
}

// Chunk is a decoded binary chunk: the header and the main function.
type Chunk struct {
	Header       Header
	UpvalueCount byte // upvalues of the main closure
	Main         Prototype
}

// Prototype is the compiled form of one function. Nested functions are
// owned by value by their parent.
type Prototype struct {
	Source          string
	LineDefined     uint32
	LastLineDefined uint32
	NumParams       byte
	IsVararg        byte
	MaxStackSize    byte
	Code            []bytecode.Instruction
	Constants       []Constant
	Upvalues        []Upvalue
	Protos          []Prototype
	LineInfo        []uint32 // per instruction, optional
	LocVars         []LocalVar
	UpvalueNames    []string // per upvalue, optional
}

// Upvalue describes where a closure captures one upvalue from.
type Upvalue struct {
	InStack byte // 1: enclosing function's register, 0: enclosing upvalue
	Idx     byte
}

// LocalVar is the debug record of a local variable's live range.
type LocalVar struct {
	Name    string
	StartPC uint32
	EndPC   uint32
}

// Line returns the source line of instruction pc and whether line info is present.
func (p *Prototype) Line(pc int) (uint32, bool) {
	if pc < 0 || pc >= len(p.LineInfo) {
		return 0, false
	}
	return p.LineInfo[pc], true
}

// UpvalueName returns the debug name of upvalue i, or "" when absent.
func (p *Prototype) UpvalueName(i int) string {
	if i < 0 || i >= len(p.UpvalueNames) {
		return ""
	}
	return p.UpvalueNames[i]
}

// Validate checks the parallel-array invariants of p and its children.
func (p *Prototype) Validate() error {
	return p.validate(nil)
}

func (p *Prototype) validate(path []string) error {
	if len(p.LineInfo) != 0 && len(p.LineInfo) != len(p.Code) {
		return errors.InvalidData(errors.PhaseDecode, append(path, "lineinfo"),
			fmt.Sprintf("%d line entries for %d instructions", len(p.LineInfo), len(p.Code)))
	}
	if len(p.UpvalueNames) != 0 && len(p.UpvalueNames) != len(p.Upvalues) {
		return errors.InvalidData(errors.PhaseDecode, append(path, "upvalue_names"),
			fmt.Sprintf("%d names for %d upvalues", len(p.UpvalueNames), len(p.Upvalues)))
	}
	for i := range p.Protos {
		if err := p.Protos[i].validate(append(path, "protos", strconv.Itoa(i))); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of prototypes in the tree rooted at p.
func (p *Prototype) Count() int {
	n := 1
	for i := range p.Protos {
		n += p.Protos[i].Count()
	}
	return n
}

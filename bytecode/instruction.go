package bytecode

import (
	"fmt"

	"github.com/wippyai/luadump/errors"
)

// Field widths and positions of the instruction encoding.
const (
	SizeOp = 6
	SizeA  = 8
	SizeB  = 9
	SizeC  = 9
	SizeBx = SizeB + SizeC
	SizeAx = SizeA + SizeBx

	PosOp = 0
	PosA  = PosOp + SizeOp
	PosB  = PosA + SizeA
	PosC  = PosB + SizeB
	PosBx = PosB
	PosAx = PosA

	MaxArgA   = 1<<SizeA - 1
	MaxArgB   = 1<<SizeB - 1
	MaxArgC   = 1<<SizeC - 1
	MaxArgBx  = 1<<SizeBx - 1
	MaxArgSBx = MaxArgBx >> 1 // 131071, the sBx bias
	MaxArgAx  = 1<<SizeAx - 1
)

// BitRK marks a B or C operand of an ArgK argument as a constant index.
const BitRK = 1 << (SizeB - 1)

// IsK reports whether an RK operand refers to a constant.
func IsK(x int) bool {
	return x&BitRK != 0
}

// IndexK returns the constant index of an RK operand.
func IndexK(x int) int {
	return x &^ BitRK
}

// ErrUnknownOpcode is returned when an instruction's opcode has no descriptor.
var ErrUnknownOpcode = &errors.Error{Phase: errors.PhaseRender, Kind: errors.KindUnknownOpcode}

// Instruction is a raw 32-bit instruction word.
type Instruction uint32

// Opcode returns the low 6 bits of the instruction.
func (i Instruction) Opcode() Opcode {
	return Opcode(i >> PosOp & (1<<SizeOp - 1))
}

// Descriptor returns the descriptor of the instruction's opcode.
func (i Instruction) Descriptor() (Descriptor, bool) {
	return i.Opcode().Descriptor()
}

// Name returns the opcode name.
func (i Instruction) Name() string {
	return i.Opcode().String()
}

// Operands decodes the operand fields using the layout of the instruction's
// opcode. The concrete type of the result names the layout.
func (i Instruction) Operands() (Operands, error) {
	d, ok := i.Descriptor()
	if !ok {
		return nil, errors.UnknownOpcode(errors.PhaseRender, uint8(i.Opcode()))
	}
	return i.Fields(d.Mode), nil
}

// Fields decodes the operand fields under an explicit layout, regardless of
// the opcode. Use Operands to decode with the opcode's own layout.
func (i Instruction) Fields(m Mode) Operands {
	switch m {
	case ModeABx:
		return ABx{A: i.a(), Bx: i.bx()}
	case ModeAsBx:
		return AsBx{A: i.a(), SBx: i.bx() - MaxArgSBx}
	case ModeAx:
		return Ax{Ax: int(i >> PosAx & MaxArgAx)}
	default:
		return ABC{A: i.a(), B: int(i >> PosB & MaxArgB), C: int(i >> PosC & MaxArgC)}
	}
}

func (i Instruction) a() int {
	return int(i >> PosA & MaxArgA)
}

func (i Instruction) bx() int {
	return int(i >> PosBx & MaxArgBx)
}

func (i Instruction) String() string {
	ops, err := i.Operands()
	if err != nil {
		return fmt.Sprintf("%s %08X", i.Name(), uint32(i))
	}
	return i.Name() + " " + ops.String()
}

// Operands is the decoded operand set of one instruction. It is implemented
// by ABC, ABx, AsBx and Ax.
type Operands interface {
	Mode() Mode
	String() string
	isOperands()
}

// ABC holds the operands of an iABC instruction.
type ABC struct {
	A, B, C int
}

// ABx holds the operands of an iABx instruction.
type ABx struct {
	A, Bx int
}

// AsBx holds the operands of an iAsBx instruction. SBx is already unbiased.
type AsBx struct {
	A, SBx int
}

// Ax holds the operand of an iAx instruction.
type Ax struct {
	Ax int
}

func (ABC) Mode() Mode  { return ModeABC }
func (ABx) Mode() Mode  { return ModeABx }
func (AsBx) Mode() Mode { return ModeAsBx }
func (Ax) Mode() Mode   { return ModeAx }

func (o ABC) String() string  { return fmt.Sprintf("%d %d %d", o.A, o.B, o.C) }
func (o ABx) String() string  { return fmt.Sprintf("%d %d", o.A, o.Bx) }
func (o AsBx) String() string { return fmt.Sprintf("%d %d", o.A, o.SBx) }
func (o Ax) String() string   { return fmt.Sprintf("%d", o.Ax) }

func (ABC) isOperands()  {}
func (ABx) isOperands()  {}
func (AsBx) isOperands() {}
func (Ax) isOperands()   {}

package bytecode

import "strconv"

// Mode is the bit layout of an instruction's operand fields.
type Mode uint8

const (
	ModeABC  Mode = iota // A:8 B:9 C:9
	ModeABx              // A:8 Bx:18
	ModeAsBx             // A:8 sBx:18 (biased)
	ModeAx               // Ax:26
)

func (m Mode) String() string {
	switch m {
	case ModeABC:
		return "iABC"
	case ModeABx:
		return "iABx"
	case ModeAsBx:
		return "iAsBx"
	case ModeAx:
		return "iAx"
	default:
		return "iUnknown"
	}
}

// ArgMode describes how an opcode uses its B or C operand.
type ArgMode uint8

const (
	ArgN ArgMode = iota // argument is not used
	ArgU                // argument is used
	ArgR                // argument is a register or a jump offset
	ArgK                // argument is a constant or register/constant
)

func (m ArgMode) String() string {
	switch m {
	case ArgN:
		return "N"
	case ArgU:
		return "U"
	case ArgR:
		return "R"
	case ArgK:
		return "K"
	default:
		return "?"
	}
}

// Opcode is a Lua 5.3 virtual machine opcode number.
type Opcode uint8

// Lua 5.3 opcodes in encoding order.
const (
	OpMove Opcode = iota
	OpLoadK
	OpLoadKX
	OpLoadBool
	OpLoadNil
	OpGetUpval
	OpGetTabUp
	OpGetTable
	OpSetTabUp
	OpSetUpval
	OpSetTable
	OpNewTable
	OpSelf
	OpAdd
	OpSub
	OpMul
	OpMod
	OpPow
	OpDiv
	OpIDiv
	OpBAnd
	OpBOr
	OpBXor
	OpShl
	OpShr
	OpUnm
	OpBNot
	OpNot
	OpLen
	OpConcat
	OpJmp
	OpEq
	OpLt
	OpLe
	OpTest
	OpTestSet
	OpCall
	OpTailCall
	OpReturn
	OpForLoop
	OpForPrep
	OpTForCall
	OpTForLoop
	OpSetList
	OpClosure
	OpVararg
	OpExtraArg
)

// NumOpcodes is the number of defined opcodes.
const NumOpcodes = int(OpExtraArg) + 1

// Descriptor is the static description of one opcode.
type Descriptor struct {
	Name  string
	Test  bool // next instruction is a jump skipped on a failed test
	SetsA bool // instruction writes register A
	B     ArgMode
	C     ArgMode
	Mode  Mode
}

func (d Descriptor) String() string {
	return d.Name + " " + d.Mode.String() + " B=" + d.B.String() + " C=" + d.C.String()
}

func op(test, setA bool, b, c ArgMode, mode Mode, name string) Descriptor {
	return Descriptor{Name: name, Test: test, SetsA: setA, B: b, C: c, Mode: mode}
}

var opcodes = [NumOpcodes]Descriptor{
	//  T      A      B     C     mode      name
	op(false, true, ArgR, ArgN, ModeABC, "MOVE"),
	op(false, true, ArgK, ArgN, ModeABx, "LOADK"),
	op(false, true, ArgN, ArgN, ModeABx, "LOADKX"),
	op(false, true, ArgU, ArgU, ModeABC, "LOADBOOL"),
	op(false, true, ArgU, ArgN, ModeABC, "LOADNIL"),
	op(false, true, ArgU, ArgN, ModeABC, "GETUPVAL"),
	op(false, true, ArgU, ArgK, ModeABC, "GETTABUP"),
	op(false, true, ArgR, ArgK, ModeABC, "GETTABLE"),
	op(false, false, ArgK, ArgK, ModeABC, "SETTABUP"),
	op(false, false, ArgU, ArgN, ModeABC, "SETUPVAL"),
	op(false, false, ArgK, ArgK, ModeABC, "SETTABLE"),
	op(false, true, ArgU, ArgU, ModeABC, "NEWTABLE"),
	op(false, true, ArgR, ArgK, ModeABC, "SELF"),
	op(false, true, ArgK, ArgK, ModeABC, "ADD"),
	op(false, true, ArgK, ArgK, ModeABC, "SUB"),
	op(false, true, ArgK, ArgK, ModeABC, "MUL"),
	op(false, true, ArgK, ArgK, ModeABC, "MOD"),
	op(false, true, ArgK, ArgK, ModeABC, "POW"),
	op(false, true, ArgK, ArgK, ModeABC, "DIV"),
	op(false, true, ArgK, ArgK, ModeABC, "IDIV"),
	op(false, true, ArgK, ArgK, ModeABC, "BAND"),
	op(false, true, ArgK, ArgK, ModeABC, "BOR"),
	op(false, true, ArgK, ArgK, ModeABC, "BXOR"),
	op(false, true, ArgK, ArgK, ModeABC, "SHL"),
	op(false, true, ArgK, ArgK, ModeABC, "SHR"),
	op(false, true, ArgR, ArgN, ModeABC, "UNM"),
	op(false, true, ArgR, ArgN, ModeABC, "BNOT"),
	op(false, true, ArgR, ArgN, ModeABC, "NOT"),
	op(false, true, ArgR, ArgN, ModeABC, "LEN"),
	op(false, true, ArgR, ArgR, ModeABC, "CONCAT"),
	op(false, false, ArgR, ArgN, ModeAsBx, "JMP"),
	op(true, false, ArgK, ArgK, ModeABC, "EQ"),
	op(true, false, ArgK, ArgK, ModeABC, "LT"),
	op(true, false, ArgK, ArgK, ModeABC, "LE"),
	op(true, false, ArgN, ArgU, ModeABC, "TEST"),
	op(true, true, ArgR, ArgU, ModeABC, "TESTSET"),
	op(false, true, ArgU, ArgU, ModeABC, "CALL"),
	op(false, true, ArgU, ArgU, ModeABC, "TAILCALL"),
	op(false, false, ArgU, ArgN, ModeABC, "RETURN"),
	op(false, true, ArgR, ArgN, ModeAsBx, "FORLOOP"),
	op(false, true, ArgR, ArgN, ModeAsBx, "FORPREP"),
	op(false, false, ArgN, ArgU, ModeABC, "TFORCALL"),
	op(false, true, ArgR, ArgN, ModeAsBx, "TFORLOOP"),
	op(false, false, ArgU, ArgU, ModeABC, "SETLIST"),
	op(false, true, ArgU, ArgN, ModeABx, "CLOSURE"),
	op(false, true, ArgU, ArgN, ModeABC, "VARARG"),
	op(false, false, ArgU, ArgU, ModeAx, "EXTRAARG"),
}

// Valid reports whether op is a defined opcode.
func (op Opcode) Valid() bool {
	return int(op) < NumOpcodes
}

// Descriptor returns the static description of op.
func (op Opcode) Descriptor() (Descriptor, bool) {
	if !op.Valid() {
		return Descriptor{}, false
	}
	return opcodes[op], true
}

// String returns the opcode name, or OP_<n> for undefined opcodes.
func (op Opcode) String() string {
	if !op.Valid() {
		return "OP_" + strconv.Itoa(int(op))
	}
	return opcodes[op].Name
}

// Lookup finds an opcode by its name.
func Lookup(name string) (Opcode, bool) {
	for i := range opcodes {
		if opcodes[i].Name == name {
			return Opcode(i), true
		}
	}
	return 0, false
}

package bytecode_test

import (
	"errors"
	"testing"

	"github.com/wippyai/luadump/bytecode"
)

func abc(op bytecode.Opcode, a, b, c uint32) bytecode.Instruction {
	return bytecode.Instruction(uint32(op) | a<<6 | b<<14 | c<<23)
}

func abx(op bytecode.Opcode, a, bx uint32) bytecode.Instruction {
	return bytecode.Instruction(uint32(op) | a<<6 | bx<<14)
}

func TestInstructionOpcode(t *testing.T) {
	tests := []struct {
		word uint32
		want bytecode.Opcode
	}{
		{0x00000000, bytecode.OpMove},
		{0x00000001, bytecode.OpLoadK},
		{0xFFFFFFC0 | 30, bytecode.OpJmp},
		{46, bytecode.OpExtraArg},
		{0x3F, bytecode.Opcode(63)},
	}
	for _, tt := range tests {
		if got := bytecode.Instruction(tt.word).Opcode(); got != tt.want {
			t.Errorf("Opcode(%08X) = %d, want %d", tt.word, got, tt.want)
		}
	}
}

func TestFieldsABC(t *testing.T) {
	i := abc(0, 5, 3, 7)
	ops := i.Fields(bytecode.ModeABC)
	got, ok := ops.(bytecode.ABC)
	if !ok {
		t.Fatalf("Fields(ModeABC) returned %T", ops)
	}
	if got != (bytecode.ABC{A: 5, B: 3, C: 7}) {
		t.Errorf("ABC = %+v, want A=5 B=3 C=7", got)
	}
	if ops.Mode() != bytecode.ModeABC {
		t.Errorf("Mode = %v", ops.Mode())
	}
}

func TestFieldsABCExtremes(t *testing.T) {
	i := abc(bytecode.OpSetTable, bytecode.MaxArgA, bytecode.MaxArgB, bytecode.MaxArgC)
	got := i.Fields(bytecode.ModeABC).(bytecode.ABC)
	if got.A != 255 || got.B != 511 || got.C != 511 {
		t.Errorf("ABC = %+v, want 255/511/511", got)
	}
	if i.Opcode() != bytecode.OpSetTable {
		t.Errorf("Opcode = %v, want SETTABLE", i.Opcode())
	}
}

func TestFieldsABxAndAsBx(t *testing.T) {
	tests := []struct {
		bx  uint32
		sbx int
	}{
		{0, -131071},
		{131071, 0},
		{131072, 1},
		{131070, -1},
		{bytecode.MaxArgBx, 131072},
	}
	for _, tt := range tests {
		i := abx(bytecode.OpJmp, 9, tt.bx)
		u := i.Fields(bytecode.ModeABx).(bytecode.ABx)
		s := i.Fields(bytecode.ModeAsBx).(bytecode.AsBx)
		if u.A != 9 || s.A != 9 {
			t.Errorf("bx=%d: A = %d/%d, want 9", tt.bx, u.A, s.A)
		}
		if u.Bx != int(tt.bx) {
			t.Errorf("bx=%d: Bx = %d", tt.bx, u.Bx)
		}
		if s.SBx != tt.sbx {
			t.Errorf("bx=%d: sBx = %d, want %d", tt.bx, s.SBx, tt.sbx)
		}
		if u.Bx-s.SBx != bytecode.MaxArgSBx {
			t.Errorf("bx=%d: Bx-sBx = %d, want bias %d", tt.bx, u.Bx-s.SBx, bytecode.MaxArgSBx)
		}
	}
}

func TestFieldsSameBitsDifferentLayouts(t *testing.T) {
	i := abc(0, 5, 3, 7)
	bc := i.Fields(bytecode.ModeABC).(bytecode.ABC)
	bx := i.Fields(bytecode.ModeABx).(bytecode.ABx)
	if bx.Bx != bc.B|bc.C<<9 {
		t.Errorf("Bx = %d, want B | C<<9 = %d", bx.Bx, bc.B|bc.C<<9)
	}
}

func TestFieldsAx(t *testing.T) {
	i := bytecode.Instruction(uint32(bytecode.OpExtraArg) | 0x3FFFFFF<<6)
	got := i.Fields(bytecode.ModeAx).(bytecode.Ax)
	if got.Ax != bytecode.MaxArgAx {
		t.Errorf("Ax = %d, want %d", got.Ax, bytecode.MaxArgAx)
	}
	i = bytecode.Instruction(uint32(bytecode.OpExtraArg) | 1234<<6)
	if got := i.Fields(bytecode.ModeAx).(bytecode.Ax); got.Ax != 1234 {
		t.Errorf("Ax = %d, want 1234", got.Ax)
	}
}

func TestOperandsUsesOpcodeMode(t *testing.T) {
	tests := []struct {
		name string
		i    bytecode.Instruction
		want bytecode.Operands
	}{
		{"MOVE", abc(bytecode.OpMove, 1, 2, 0), bytecode.ABC{A: 1, B: 2}},
		{"LOADK", abx(bytecode.OpLoadK, 0, 4), bytecode.ABx{A: 0, Bx: 4}},
		{"JMP", abx(bytecode.OpJmp, 0, bytecode.MaxArgSBx+3), bytecode.AsBx{A: 0, SBx: 3}},
		{"FORPREP", abx(bytecode.OpForPrep, 2, bytecode.MaxArgSBx-2), bytecode.AsBx{A: 2, SBx: -2}},
		{"CLOSURE", abx(bytecode.OpClosure, 3, 1), bytecode.ABx{A: 3, Bx: 1}},
		{"EXTRAARG", bytecode.Instruction(uint32(bytecode.OpExtraArg) | 77<<6), bytecode.Ax{Ax: 77}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.i.Operands()
			if err != nil {
				t.Fatalf("Operands: %v", err)
			}
			if got != tt.want {
				t.Errorf("Operands = %#v, want %#v", got, tt.want)
			}
			if tt.i.Name() != tt.name {
				t.Errorf("Name = %q, want %q", tt.i.Name(), tt.name)
			}
		})
	}
}

func TestOperandsUnknownOpcode(t *testing.T) {
	i := bytecode.Instruction(50)
	_, err := i.Operands()
	if err == nil {
		t.Fatal("expected error for undefined opcode")
	}
	if !errors.Is(err, bytecode.ErrUnknownOpcode) {
		t.Errorf("expected ErrUnknownOpcode, got %v", err)
	}
	if i.Name() != "OP_50" {
		t.Errorf("Name = %q, want OP_50", i.Name())
	}
}

func TestInstructionString(t *testing.T) {
	if got := abc(bytecode.OpAdd, 1, 2, 3).String(); got != "ADD 1 2 3" {
		t.Errorf("String = %q", got)
	}
	if got := bytecode.Instruction(0x3F).String(); got != "OP_63 0000003F" {
		t.Errorf("String = %q", got)
	}
}

func TestRK(t *testing.T) {
	if bytecode.IsK(255) {
		t.Error("255 is a register")
	}
	if !bytecode.IsK(256) {
		t.Error("256 is constant 0")
	}
	if got := bytecode.IndexK(256 + 17); got != 17 {
		t.Errorf("IndexK = %d, want 17", got)
	}
}

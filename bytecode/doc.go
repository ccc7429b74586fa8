// Package bytecode describes Lua 5.3 virtual machine instructions.
//
// An Instruction is a raw 32-bit word. The low 6 bits select the opcode, and
// the opcode's Descriptor selects one of four operand layouts:
//
//	iABC   C:9 B:9 A:8 Op:6
//	iABx   Bx:18   A:8 Op:6
//	iAsBx  sBx:18  A:8 Op:6   (sBx = Bx - 131071)
//	iAx    Ax:26       Op:6
//
// Operand fields are only reachable through Operands, which consults the
// opcode table first, or Fields, which takes the layout explicitly. Both
// return a concrete ABC, ABx, AsBx or Ax value:
//
//	ops, err := inst.Operands()
//	switch o := ops.(type) {
//	case bytecode.ABC:
//	    fmt.Println(o.A, o.B, o.C)
//	case bytecode.AsBx:
//	    fmt.Println(o.A, o.SBx)
//	}
//
// The opcode table is a package-level array with no mutation API and is safe
// for concurrent use.
package bytecode

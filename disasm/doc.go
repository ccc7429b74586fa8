// Package disasm renders decoded prototypes as luac-style listings.
//
// Each prototype produces a header and a summary line, one line per
// instruction, and the constants, locals and upvalues tables:
//
//	main <hello.lua:0,0> (6 instructions)
//	0+ params, 4 slots, 1 upvalue, 2 locals, 2 constants, 1 function
//		1	[1]	00000001	LOADK    	0 -1	; 42
//		...
//	constants (2):
//		1	<integer>(42)
//		2	<string>("lua")
//
// Instruction columns are the 1-based pc, the source line or "-", the raw
// word in hex, the opcode name and its operands. RK operands that refer to
// constants are shown as -1-index. Rendering is pure: the same prototype
// always yields the same lines.
package disasm

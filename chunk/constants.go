package chunk

import "math/bits"

// Header constants of a Lua 5.3 binary chunk produced on this host.
const (
	Signature       = "\x1bLua"
	LuacVersion     = 0x53
	LuacFormat      = 0
	LuacData        = "\x19\x93\r\n\x1a\n"
	CIntSize        = 4
	CSizetSize      = bits.UintSize / 8
	InstructionSize = 4
	LuaIntegerSize  = 8
	LuaNumberSize   = 8
	LuacInt         = 0x5678
	LuacNum         = 370.5
)

// Constant tags in the dump format.
const (
	TagNil         = 0x00
	TagBoolean     = 0x01
	TagNumber      = 0x03
	TagInteger     = 0x13
	TagShortString = 0x04
	TagLongString  = 0x14
)

// HeaderSize is the encoded size of the header, not counting the upvalue
// count byte that follows it.
const HeaderSize = 4 + 1 + 1 + 6 + 5 + 8 + 8

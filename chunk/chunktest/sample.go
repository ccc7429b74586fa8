package chunktest

import (
	"github.com/wippyai/luadump/bytecode"
	"github.com/wippyai/luadump/chunk"
)

// Hello returns the prototype tree luac 5.3 produces for
//
//	local x = 42
//	local function greet(name)
//	  print("hi", name, x)
//	end
//	greet("lua")
//
// with the source set to "@hello.lua". The nested function has an empty
// source and inherits its parent's when decoded.
func Hello() *chunk.Prototype {
	greet := chunk.Prototype{
		LineDefined:     2,
		LastLineDefined: 4,
		NumParams:       1,
		MaxStackSize:    5,
		Code: []bytecode.Instruction{
			ABC(bytecode.OpGetTabUp, 1, 0, RK(0)),
			ABx(bytecode.OpLoadK, 2, 1),
			ABC(bytecode.OpMove, 3, 0, 0),
			ABC(bytecode.OpGetUpval, 4, 1, 0),
			ABC(bytecode.OpCall, 1, 4, 1),
			ABC(bytecode.OpReturn, 0, 1, 0),
		},
		Constants: []chunk.Constant{
			chunk.ShortString("print"),
			chunk.ShortString("hi"),
		},
		Upvalues:     []chunk.Upvalue{{InStack: 0, Idx: 0}, {InStack: 1, Idx: 0}},
		LineInfo:     []uint32{3, 3, 3, 3, 3, 4},
		LocVars:      []chunk.LocalVar{{Name: "name", StartPC: 0, EndPC: 6}},
		UpvalueNames: []string{"_ENV", "x"},
	}
	return &chunk.Prototype{
		Source:       "@hello.lua",
		IsVararg:     1,
		MaxStackSize: 4,
		Code: []bytecode.Instruction{
			ABx(bytecode.OpLoadK, 0, 0),
			ABx(bytecode.OpClosure, 1, 0),
			ABC(bytecode.OpMove, 2, 1, 0),
			ABx(bytecode.OpLoadK, 3, 1),
			ABC(bytecode.OpCall, 2, 2, 1),
			ABC(bytecode.OpReturn, 0, 1, 0),
		},
		Constants: []chunk.Constant{
			chunk.Integer(42),
			chunk.ShortString("lua"),
		},
		Upvalues: []chunk.Upvalue{{InStack: 1, Idx: 0}},
		Protos:   []chunk.Prototype{greet},
		LineInfo: []uint32{1, 4, 5, 5, 5, 5},
		LocVars: []chunk.LocalVar{
			{Name: "x", StartPC: 1, EndPC: 6},
			{Name: "greet", StartPC: 2, EndPC: 6},
		},
		UpvalueNames: []string{"_ENV"},
	}
}

// HelloChunk returns Hello encoded as a complete chunk.
func HelloChunk() []byte {
	return Encode(1, Hello())
}

// Package chunktest encodes chunk fixtures for tests. It writes the same
// layout chunk.Decode reads, for the host it runs on.
package chunktest

import (
	"github.com/wippyai/luadump/bytecode"
	"github.com/wippyai/luadump/chunk"
	"github.com/wippyai/luadump/chunk/internal/binary"
)

// FieldOffsets maps each header field to its byte offset in an encoded chunk.
var FieldOffsets = map[chunk.HeaderField]int{
	chunk.FieldSignature:       0,
	chunk.FieldVersion:         4,
	chunk.FieldFormat:          5,
	chunk.FieldData:            6,
	chunk.FieldIntSize:         12,
	chunk.FieldSizetSize:       13,
	chunk.FieldInstructionSize: 14,
	chunk.FieldIntegerSize:     15,
	chunk.FieldNumberSize:      16,
	chunk.FieldIntSentinel:     17,
	chunk.FieldNumSentinel:     25,
}

// ABC encodes an iABC instruction.
func ABC(op bytecode.Opcode, a, b, c int) bytecode.Instruction {
	return bytecode.Instruction(uint32(op) |
		uint32(a)<<bytecode.PosA |
		uint32(b)<<bytecode.PosB |
		uint32(c)<<bytecode.PosC)
}

// ABx encodes an iABx instruction.
func ABx(op bytecode.Opcode, a, bx int) bytecode.Instruction {
	return bytecode.Instruction(uint32(op) | uint32(a)<<bytecode.PosA | uint32(bx)<<bytecode.PosBx)
}

// AsBx encodes an iAsBx instruction with an unbiased sBx.
func AsBx(op bytecode.Opcode, a, sbx int) bytecode.Instruction {
	return ABx(op, a, sbx+bytecode.MaxArgSBx)
}

// Ax encodes an iAx instruction.
func Ax(op bytecode.Opcode, ax int) bytecode.Instruction {
	return bytecode.Instruction(uint32(op) | uint32(ax)<<bytecode.PosAx)
}

// RK marks constant index k as an RK operand.
func RK(k int) int {
	return k | bytecode.BitRK
}

// Header returns the encoded header this host expects.
func Header() []byte {
	w := binary.NewWriter()
	writeHeader(w)
	return w.Bytes()
}

// Encode serializes a chunk whose main function is p and whose main closure
// has upvals upvalues.
func Encode(upvals byte, p *chunk.Prototype) []byte {
	w := binary.NewWriter()
	writeHeader(w)
	w.Byte(upvals)
	writePrototype(w, p)
	return w.Bytes()
}

// EncodePrototype serializes a single prototype without a header.
func EncodePrototype(p *chunk.Prototype) []byte {
	w := binary.NewWriter()
	writePrototype(w, p)
	return w.Bytes()
}

// EncodeConstant serializes one tagged constant.
func EncodeConstant(c chunk.Constant) []byte {
	w := binary.NewWriter()
	writeConstant(w, c)
	return w.Bytes()
}

// String serializes a dump string.
func String(s string) []byte {
	w := binary.NewWriter()
	w.WriteString(s)
	return w.Bytes()
}

// LongFormString serializes s with the 0xFF explicit-size prefix even when
// it would fit the one-byte form.
func LongFormString(s string) []byte {
	w := binary.NewWriter()
	w.Byte(0xFF)
	if s == "" {
		w.WriteU64(0)
	} else {
		w.WriteU64(uint64(len(s)) + 1)
	}
	w.WriteBytes([]byte(s))
	return w.Bytes()
}

func writeHeader(w *binary.Writer) {
	w.WriteBytes([]byte(chunk.Signature))
	w.Byte(chunk.LuacVersion)
	w.Byte(chunk.LuacFormat)
	w.WriteBytes([]byte(chunk.LuacData))
	w.Byte(chunk.CIntSize)
	w.Byte(chunk.CSizetSize)
	w.Byte(chunk.InstructionSize)
	w.Byte(chunk.LuaIntegerSize)
	w.Byte(chunk.LuaNumberSize)
	w.WriteU64(chunk.LuacInt)
	w.WriteF64(chunk.LuacNum)
}

func writePrototype(w *binary.Writer, p *chunk.Prototype) {
	w.WriteString(p.Source)
	w.WriteU32(p.LineDefined)
	w.WriteU32(p.LastLineDefined)
	w.Byte(p.NumParams)
	w.Byte(p.IsVararg)
	w.Byte(p.MaxStackSize)

	w.WriteU32(uint32(len(p.Code)))
	for _, i := range p.Code {
		w.WriteU32(uint32(i))
	}

	w.WriteU32(uint32(len(p.Constants)))
	for _, c := range p.Constants {
		writeConstant(w, c)
	}

	w.WriteU32(uint32(len(p.Upvalues)))
	for _, u := range p.Upvalues {
		w.Byte(u.InStack)
		w.Byte(u.Idx)
	}

	w.WriteU32(uint32(len(p.Protos)))
	for i := range p.Protos {
		writePrototype(w, &p.Protos[i])
	}

	w.WriteU32(uint32(len(p.LineInfo)))
	for _, l := range p.LineInfo {
		w.WriteU32(l)
	}

	w.WriteU32(uint32(len(p.LocVars)))
	for _, v := range p.LocVars {
		w.WriteString(v.Name)
		w.WriteU32(v.StartPC)
		w.WriteU32(v.EndPC)
	}

	w.WriteU32(uint32(len(p.UpvalueNames)))
	for _, n := range p.UpvalueNames {
		w.WriteString(n)
	}
}

func writeConstant(w *binary.Writer, c chunk.Constant) {
	switch v := c.(type) {
	case chunk.Nil:
		w.Byte(chunk.TagNil)
	case chunk.Boolean:
		w.Byte(chunk.TagBoolean)
		if v {
			w.Byte(1)
		} else {
			w.Byte(0)
		}
	case chunk.Integer:
		w.Byte(chunk.TagInteger)
		w.WriteU64(uint64(v))
	case chunk.Float:
		w.Byte(chunk.TagNumber)
		w.WriteF64(float64(v))
	case chunk.ShortString:
		w.Byte(chunk.TagShortString)
		w.WriteString(string(v))
	case chunk.LongString:
		w.Byte(chunk.TagLongString)
		w.WriteString(string(v))
	default:
		panic("chunktest: unknown constant type")
	}
}

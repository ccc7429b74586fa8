package chunk

import (
	"bytes"
	stderrors "errors"
	"fmt"

	"github.com/wippyai/luadump/errors"
)

// HeaderField names one checked field of the chunk header.
type HeaderField string

// Header fields in the order they are checked.
const (
	FieldSignature       HeaderField = "signature"
	FieldVersion         HeaderField = "version"
	FieldFormat          HeaderField = "format"
	FieldData            HeaderField = "luac_data"
	FieldIntSize         HeaderField = "int_size"
	FieldSizetSize       HeaderField = "size_t_size"
	FieldInstructionSize HeaderField = "instruction_size"
	FieldIntegerSize     HeaderField = "lua_integer_size"
	FieldNumberSize      HeaderField = "lua_number_size"
	FieldIntSentinel     HeaderField = "luac_int"
	FieldNumSentinel     HeaderField = "luac_num"
)

// HeaderFields lists the header fields in check order.
var HeaderFields = []HeaderField{
	FieldSignature, FieldVersion, FieldFormat, FieldData,
	FieldIntSize, FieldSizetSize, FieldInstructionSize, FieldIntegerSize, FieldNumberSize,
	FieldIntSentinel, FieldNumSentinel,
}

// MismatchedField returns the header field a HeaderMismatch error names.
func MismatchedField(err error) (HeaderField, bool) {
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindHeaderMismatch {
		return "", false
	}
	return HeaderField(e.Field()), true
}

func mismatch(f HeaderField, got, want any) error {
	return errors.HeaderMismatch(string(f), got, want)
}

func (d *decoder) checkByte(f HeaderField, dst *byte, want byte) error {
	b, err := d.readByte()
	if err != nil {
		return err
	}
	*dst = b
	if b != want {
		return mismatch(f, fmt.Sprintf("%#04x", b), fmt.Sprintf("%#04x", want))
	}
	return nil
}

func (d *decoder) checkBytes(f HeaderField, dst []byte, want string) error {
	b, err := d.readBytes(len(want))
	if err != nil {
		return err
	}
	copy(dst, b)
	if !bytes.Equal(b, []byte(want)) {
		return mismatch(f, fmt.Sprintf("% x", b), fmt.Sprintf("% x", want))
	}
	return nil
}

// readHeader reads and validates the header, failing on the first field
// that differs from what this host would produce.
func (d *decoder) readHeader() (Header, error) {
	d.push("header")
	defer d.pop()

	var h Header
	if err := d.checkBytes(FieldSignature, h.Signature[:], Signature); err != nil {
		return h, err
	}
	if err := d.checkByte(FieldVersion, &h.Version, LuacVersion); err != nil {
		return h, err
	}
	if err := d.checkByte(FieldFormat, &h.Format, LuacFormat); err != nil {
		return h, err
	}
	if err := d.checkBytes(FieldData, h.Data[:], LuacData); err != nil {
		return h, err
	}
	sizes := []struct {
		field HeaderField
		dst   *byte
		want  byte
	}{
		{FieldIntSize, &h.IntSize, CIntSize},
		{FieldSizetSize, &h.SizetSize, CSizetSize},
		{FieldInstructionSize, &h.InstructionSize, InstructionSize},
		{FieldIntegerSize, &h.IntegerSize, LuaIntegerSize},
		{FieldNumberSize, &h.NumberSize, LuaNumberSize},
	}
	for _, s := range sizes {
		if err := d.checkByte(s.field, s.dst, s.want); err != nil {
			return h, err
		}
	}

	i, err := d.readU64()
	if err != nil {
		return h, err
	}
	h.Int = int64(i)
	if h.Int != LuacInt {
		return h, mismatch(FieldIntSentinel, fmt.Sprintf("%#x", h.Int), fmt.Sprintf("%#x", LuacInt))
	}

	if h.Num, err = d.readF64(); err != nil {
		return h, err
	}
	if h.Num != LuacNum {
		return h, mismatch(FieldNumSentinel, h.Num, LuacNum)
	}
	return h, nil
}

package chunk

import (
	"strconv"

	"github.com/wippyai/luadump/chunk/internal/binary"
	"github.com/wippyai/luadump/errors"
)

// ConstantKind identifies the variant of a Constant.
type ConstantKind uint8

const (
	KindNil ConstantKind = iota
	KindBoolean
	KindInteger
	KindFloat
	KindShortString
	KindLongString
)

func (k ConstantKind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBoolean:
		return "boolean"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "number"
	case KindShortString, KindLongString:
		return "string"
	default:
		return "unknown"
	}
}

// Constant is one entry of a prototype's constant pool. It is implemented by
// Nil, Boolean, Integer, Float, ShortString and LongString only.
type Constant interface {
	Kind() ConstantKind
	// String renders the constant as <kind>(value).
	String() string
	isConstant()
}

type (
	Nil         struct{}
	Boolean     bool
	Integer     int64
	Float       float64
	ShortString string
	LongString  string
)

func (Nil) Kind() ConstantKind         { return KindNil }
func (Boolean) Kind() ConstantKind     { return KindBoolean }
func (Integer) Kind() ConstantKind     { return KindInteger }
func (Float) Kind() ConstantKind       { return KindFloat }
func (ShortString) Kind() ConstantKind { return KindShortString }
func (LongString) Kind() ConstantKind  { return KindLongString }

func (Nil) String() string { return "<nil>" }

func (b Boolean) String() string {
	return "<boolean>(" + strconv.FormatBool(bool(b)) + ")"
}

func (i Integer) String() string {
	return "<integer>(" + strconv.FormatInt(int64(i), 10) + ")"
}

func (f Float) String() string {
	return "<number>(" + strconv.FormatFloat(float64(f), 'f', 6, 64) + ")"
}

func (s ShortString) String() string { return "<string>(" + strconv.Quote(string(s)) + ")" }
func (s LongString) String() string  { return "<string>(" + strconv.Quote(string(s)) + ")" }

func (Nil) isConstant()         {}
func (Boolean) isConstant()     {}
func (Integer) isConstant()     {}
func (Float) isConstant()       {}
func (ShortString) isConstant() {}
func (LongString) isConstant()  {}

// StringValue returns the text of a string constant.
func StringValue(c Constant) (string, bool) {
	switch s := c.(type) {
	case ShortString:
		return string(s), true
	case LongString:
		return string(s), true
	}
	return "", false
}

func (d *decoder) readConstant() (Constant, error) {
	at := d.r.Position()
	tag, err := d.readByte()
	if err != nil {
		return nil, err
	}
	switch tag {
	case TagNil:
		return Nil{}, nil
	case TagBoolean:
		b, err := d.readByte()
		if err != nil {
			return nil, err
		}
		return Boolean(b != 0), nil
	case TagInteger:
		v, err := d.readU64()
		if err != nil {
			return nil, err
		}
		return Integer(int64(v)), nil
	case TagNumber:
		v, err := d.readF64()
		if err != nil {
			return nil, err
		}
		return Float(v), nil
	case TagShortString:
		s, err := d.readString()
		if err != nil {
			return nil, err
		}
		return ShortString(s), nil
	case TagLongString:
		s, err := d.readString()
		if err != nil {
			return nil, err
		}
		return LongString(s), nil
	default:
		return nil, errors.MalformedConstant(errors.PhaseDecode, d.path(), tag, at)
	}
}

// readString reads a dump string: one size byte, or 0xFF and an explicit
// 8-byte size; size 0 is the empty string, otherwise size-1 bytes follow.
func (d *decoder) readString() (string, error) {
	b, err := d.readByte()
	if err != nil {
		return "", err
	}
	size := uint64(b)
	if b == 0xFF {
		if size, err = d.readU64(); err != nil {
			return "", err
		}
	}
	if size == 0 {
		return "", nil
	}
	n := size - 1
	if limit := uint64(d.opt.EffectiveMaxStringLen()); n > limit {
		return "", errors.LimitExceeded(errors.PhaseDecode, d.path(), "string length", n, limit)
	}
	if n > uint64(d.r.Len()) {
		return "", d.outOfBounds(binary.ErrOutOfBounds, n)
	}
	data, err := d.r.ReadBytes(int(n))
	if err != nil {
		return "", d.convert(err)
	}
	return string(data), nil
}

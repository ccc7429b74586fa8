package chunk

import (
	stderrors "errors"
	"math"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/luadump/bytecode"
	"github.com/wippyai/luadump/chunk/internal/binary"
	"github.com/wippyai/luadump/errors"
)

// Decode errors, for use with errors.Is.
var (
	ErrOutOfBounds       = &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindOutOfBounds}
	ErrHeaderMismatch    = &errors.Error{Phase: errors.PhaseHeader, Kind: errors.KindHeaderMismatch}
	ErrMalformedConstant = &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindMalformedConstant}
	ErrLimitExceeded     = &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindLimitExceeded}
)

// Decode parses a binary chunk with default limits.
func Decode(data []byte) (*Chunk, error) {
	return DecodeOpt(data, DefaultOptions())
}

// DecodeOpt parses a binary chunk. Any malformed input fails the whole
// decode; no partial tree is returned.
func DecodeOpt(data []byte, opt Options) (*Chunk, error) {
	d := newDecoder(data, opt)

	header, err := d.readHeader()
	if err != nil {
		return nil, d.fail(err)
	}
	nup, err := d.readByte()
	if err != nil {
		return nil, d.fail(err)
	}

	c := &Chunk{Header: header, UpvalueCount: nup}
	if err := d.readPrototype(&c.Main, ""); err != nil {
		return nil, d.fail(err)
	}

	if rest := d.r.Len(); rest > 0 {
		Logger().Debug("trailing bytes after main function", zap.Int("bytes", rest))
	}
	return c, nil
}

// DecodeHeader parses and validates only the chunk header.
func DecodeHeader(data []byte) (Header, error) {
	d := newDecoder(data, DefaultOptions())
	return d.readHeader()
}

// DecodeFile reads a chunk file fully into memory and decodes it.
func DecodeFile(path string, opt Options) (*Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load("read "+path, err)
	}
	return DecodeOpt(data, opt)
}

type decoder struct {
	r     *binary.Reader
	opt   Options
	depth int
	stack []string
}

func newDecoder(data []byte, opt Options) *decoder {
	return &decoder{r: binary.NewReader(data), opt: opt}
}

func (d *decoder) push(elem ...string) {
	d.stack = append(d.stack, elem...)
}

func (d *decoder) pop() {
	d.stack = d.stack[:len(d.stack)-1]
}

func (d *decoder) path() []string {
	return append([]string(nil), d.stack...)
}

func (d *decoder) fail(err error) error {
	Logger().Debug("chunk decode failed", zap.Int("offset", d.r.Position()), zap.Error(err))
	return err
}

// convert turns a reader error into the package's OutOfBounds error.
func (d *decoder) convert(err error) error {
	var pe *binary.ParseError
	if stderrors.As(err, &pe) && stderrors.Is(err, binary.ErrOutOfBounds) {
		e := errors.OutOfBounds(errors.PhaseDecode, d.path(), pe.Position, pe.Need, pe.Remaining)
		e.Cause = err
		return e
	}
	return errors.Wrap(errors.PhaseDecode, errors.KindInvalidData, err, "read")
}

func (d *decoder) outOfBounds(cause error, need uint64) error {
	e := errors.OutOfBounds(errors.PhaseDecode, d.path(), d.r.Position(), int(min(need, math.MaxInt)), d.r.Len())
	e.Cause = cause
	return e
}

func (d *decoder) readByte() (byte, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return 0, d.convert(err)
	}
	return b, nil
}

func (d *decoder) readBytes(n int) ([]byte, error) {
	b, err := d.r.ReadBytes(n)
	if err != nil {
		return nil, d.convert(err)
	}
	return b, nil
}

func (d *decoder) readU32() (uint32, error) {
	v, err := d.r.ReadU32()
	if err != nil {
		return 0, d.convert(err)
	}
	return v, nil
}

func (d *decoder) readU64() (uint64, error) {
	v, err := d.r.ReadU64()
	if err != nil {
		return 0, d.convert(err)
	}
	return v, nil
}

func (d *decoder) readF64() (float64, error) {
	v, err := d.r.ReadF64()
	if err != nil {
		return 0, d.convert(err)
	}
	return v, nil
}

// readCount reads the uint32 count of a count+entries block. A count above
// the configured cap, or one whose entries cannot fit in the remaining input
// at minSize bytes each, fails before anything is allocated.
func (d *decoder) readCount(minSize int) (int, error) {
	n, err := d.readU32()
	if err != nil {
		return 0, err
	}
	if limit := d.opt.EffectiveMaxCount(); uint64(n) > uint64(limit) {
		return 0, errors.LimitExceeded(errors.PhaseDecode, d.path(), "count", uint64(n), uint64(limit))
	}
	if need := uint64(n) * uint64(minSize); need > uint64(d.r.Len()) {
		return 0, d.outOfBounds(binary.ErrOutOfBounds, need)
	}
	return int(n), nil
}

// makeSlice leaves empty blocks nil so a decoded tree compares equal to a
// literal one.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, n)
}

// readPrototype decodes one function and, recursively, its children into p.
// The field order is fixed by the dump format.
func (d *decoder) readPrototype(p *Prototype, parentSource string) error {
	d.depth++
	defer func() { d.depth-- }()
	if limit := d.opt.EffectiveMaxDepth(); d.depth > limit {
		return errors.LimitExceeded(errors.PhaseDecode, d.path(), "nesting depth", uint64(d.depth), uint64(limit))
	}
	start := d.r.Position()

	source, err := d.readString()
	if err != nil {
		return err
	}
	if source == "" {
		source = parentSource
	}
	p.Source = source

	if p.LineDefined, err = d.readU32(); err != nil {
		return err
	}
	if p.LastLineDefined, err = d.readU32(); err != nil {
		return err
	}
	if p.NumParams, err = d.readByte(); err != nil {
		return err
	}
	if p.IsVararg, err = d.readByte(); err != nil {
		return err
	}
	if p.MaxStackSize, err = d.readByte(); err != nil {
		return err
	}

	steps := []struct {
		name string
		read func(*Prototype) error
	}{
		{"code", d.readCode},
		{"constants", d.readConstants},
		{"upvalues", d.readUpvalues},
		{"protos", d.readProtos},
		{"lineinfo", d.readLineInfo},
		{"locvars", d.readLocVars},
		{"upvalue_names", d.readUpvalueNames},
	}
	for _, s := range steps {
		d.push(s.name)
		err := s.read(p)
		d.pop()
		if err != nil {
			return err
		}
	}

	if ce := Logger().Check(zap.DebugLevel, "prototype decoded"); ce != nil {
		ce.Write(
			zap.String("source", p.Source),
			zap.Int("depth", d.depth),
			zap.Int("offset", start),
			zap.Int("instructions", len(p.Code)),
			zap.Int("constants", len(p.Constants)),
			zap.Int("protos", len(p.Protos)),
		)
	}
	return nil
}

func (d *decoder) readCode(p *Prototype) error {
	n, err := d.readCount(InstructionSize)
	if err != nil {
		return err
	}
	p.Code = makeSlice[bytecode.Instruction](n)
	for i := range p.Code {
		w, err := d.readU32()
		if err != nil {
			return err
		}
		p.Code[i] = bytecode.Instruction(w)
	}
	return nil
}

func (d *decoder) readConstants(p *Prototype) error {
	n, err := d.readCount(1)
	if err != nil {
		return err
	}
	p.Constants = makeSlice[Constant](n)
	for i := range p.Constants {
		d.push(strconv.Itoa(i))
		p.Constants[i], err = d.readConstant()
		d.pop()
		if err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) readUpvalues(p *Prototype) error {
	n, err := d.readCount(2)
	if err != nil {
		return err
	}
	p.Upvalues = makeSlice[Upvalue](n)
	for i := range p.Upvalues {
		b, err := d.readBytes(2)
		if err != nil {
			return err
		}
		p.Upvalues[i] = Upvalue{InStack: b[0], Idx: b[1]}
	}
	return nil
}

func (d *decoder) readProtos(p *Prototype) error {
	// smallest function: empty source, two lines, three bytes, seven counts
	const minProto = 1 + 4 + 4 + 3 + 7*4
	n, err := d.readCount(minProto)
	if err != nil {
		return err
	}
	p.Protos = makeSlice[Prototype](n)
	for i := range p.Protos {
		d.push(strconv.Itoa(i))
		err := d.readPrototype(&p.Protos[i], p.Source)
		d.pop()
		if err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) readLineInfo(p *Prototype) error {
	n, err := d.readCount(4)
	if err != nil {
		return err
	}
	p.LineInfo = makeSlice[uint32](n)
	for i := range p.LineInfo {
		if p.LineInfo[i], err = d.readU32(); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) readLocVars(p *Prototype) error {
	n, err := d.readCount(1 + 4 + 4)
	if err != nil {
		return err
	}
	p.LocVars = makeSlice[LocalVar](n)
	for i := range p.LocVars {
		v := &p.LocVars[i]
		if v.Name, err = d.readString(); err != nil {
			return err
		}
		if v.StartPC, err = d.readU32(); err != nil {
			return err
		}
		if v.EndPC, err = d.readU32(); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) readUpvalueNames(p *Prototype) error {
	n, err := d.readCount(1)
	if err != nil {
		return err
	}
	p.UpvalueNames = makeSlice[string](n)
	for i := range p.UpvalueNames {
		if p.UpvalueNames[i], err = d.readString(); err != nil {
			return err
		}
	}
	return nil
}

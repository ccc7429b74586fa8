package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrOutOfBounds is returned when a read needs more bytes than remain.
var ErrOutOfBounds = errors.New("read past end of input")

// ByteOrder is the order multi-byte values are read and written in. Chunks
// are stored in the producing host's order, so this is the native one.
var ByteOrder binary.ByteOrder = binary.NativeEndian

// Reader is a bounds-checked forward-only cursor over a byte slice.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a new Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Position returns the current byte position.
func (r *Reader) Position() int {
	return r.pos
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.data) - r.pos
}

// ReadByte reads a single byte and advances the position.
func (r *Reader) ReadByte() (byte, error) {
	if r.Len() < 1 {
		return 0, r.short(1)
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadBytes returns the next n bytes. The result aliases the input and must
// not be modified.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, r.wrapError(fmt.Errorf("negative length %d", n))
	}
	if r.Len() < n {
		return nil, r.short(n)
	}
	b := r.data[r.pos : r.pos+n : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadU32 reads a fixed 4-byte unsigned integer.
func (r *Reader) ReadU32() (uint32, error) {
	buf, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return ByteOrder.Uint32(buf), nil
}

// ReadU64 reads a fixed 8-byte unsigned integer.
func (r *Reader) ReadU64() (uint64, error) {
	buf, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return ByteOrder.Uint64(buf), nil
}

// ReadF64 reads an 8-byte IEEE 754 double.
func (r *Reader) ReadF64() (float64, error) {
	bits, err := r.ReadU64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

func (r *Reader) short(need int) error {
	return &ParseError{
		Err:       ErrOutOfBounds,
		Position:  r.pos,
		Need:      need,
		Remaining: r.Len(),
	}
}

func (r *Reader) wrapError(err error) error {
	return &ParseError{Err: err, Position: r.pos, Remaining: r.Len()}
}

// ParseError represents an error during binary reading with position information.
type ParseError struct {
	Err       error
	Position  int
	Need      int
	Remaining int
}

func (e *ParseError) Error() string {
	if e.Need > 0 {
		return fmt.Sprintf("at position %d: need %d bytes, %d remaining: %v", e.Position, e.Need, e.Remaining, e.Err)
	}
	return fmt.Sprintf("at position %d: %v", e.Position, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

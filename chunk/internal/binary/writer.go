package binary

import (
	"bytes"
	"math"
)

// Writer provides buffered writing utilities for chunk fixtures. It emits
// values in ByteOrder, mirroring what Reader consumes.
type Writer struct {
	buf *bytes.Buffer
}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{buf: &bytes.Buffer{}}
}

// Bytes returns the written bytes.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Byte writes a single byte.
func (w *Writer) Byte(b byte) {
	w.buf.WriteByte(b)
}

// WriteBytes writes a byte slice.
func (w *Writer) WriteBytes(data []byte) {
	w.buf.Write(data)
}

// WriteU32 writes a fixed 4-byte unsigned integer.
func (w *Writer) WriteU32(v uint32) {
	var buf [4]byte
	ByteOrder.PutUint32(buf[:], v)
	w.buf.Write(buf[:])
}

// WriteU64 writes a fixed 8-byte unsigned integer.
func (w *Writer) WriteU64(v uint64) {
	var buf [8]byte
	ByteOrder.PutUint64(buf[:], v)
	w.buf.Write(buf[:])
}

// WriteF64 writes an 8-byte IEEE 754 double.
func (w *Writer) WriteF64(v float64) {
	w.WriteU64(math.Float64bits(v))
}

// WriteString writes a Lua dump string: a zero byte for the empty string,
// otherwise len+1 as one byte, or 0xFF followed by an 8-byte len+1 when
// len+1 does not fit below 0xFF, then the raw bytes.
func (w *Writer) WriteString(s string) {
	if len(s) == 0 {
		w.Byte(0)
		return
	}
	size := uint64(len(s)) + 1
	if size < 0xFF {
		w.Byte(byte(size))
	} else {
		w.Byte(0xFF)
		w.WriteU64(size)
	}
	w.buf.WriteString(s)
}

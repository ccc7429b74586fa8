package binary

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestReaderReadByte(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03}
	r := NewReader(data)

	for i, want := range data {
		if r.Position() != i {
			t.Errorf("position before read %d: got %d, want %d", i, r.Position(), i)
		}
		b, err := r.ReadByte()
		if err != nil {
			t.Fatalf("ReadByte %d: %v", i, err)
		}
		if b != want {
			t.Errorf("ReadByte %d: got 0x%02x, want 0x%02x", i, b, want)
		}
	}

	if r.Position() != 3 {
		t.Errorf("final position: got %d, want 3", r.Position())
	}

	_, err := r.ReadByte()
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
	if r.Position() != 3 {
		t.Errorf("failed read moved position to %d", r.Position())
	}
}

func TestReaderReadBytes(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	r := NewReader(data)

	got, err := r.ReadBytes(3)
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if !bytes.Equal(got, []byte{0x01, 0x02, 0x03}) {
		t.Errorf("ReadBytes: got %v, want [1 2 3]", got)
	}
	if r.Position() != 3 {
		t.Errorf("position: got %d, want 3", r.Position())
	}
	if r.Len() != 2 {
		t.Errorf("Len: got %d, want 2", r.Len())
	}

	_, err = r.ReadBytes(10)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Position != 3 || pe.Need != 10 || pe.Remaining != 2 {
		t.Errorf("ParseError = %+v", pe)
	}

	empty, err := r.ReadBytes(0)
	if err != nil || len(empty) != 0 {
		t.Errorf("ReadBytes(0) = %v, %v", empty, err)
	}
}

func TestReaderReadBytesNegative(t *testing.T) {
	r := NewReader([]byte{1, 2, 3})
	_, err := r.ReadBytes(-1)
	if err == nil {
		t.Fatal("expected error for negative byte count")
	}
	if errors.Is(err, ErrOutOfBounds) {
		t.Error("negative length should not report out of bounds")
	}
}

func TestReaderReadBytesDoesNotGrowIntoInput(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	r := NewReader(data)
	b, err := r.ReadBytes(2)
	if err != nil {
		t.Fatal(err)
	}
	_ = append(b, 0xEE)
	if data[2] != 3 {
		t.Errorf("append through returned slice modified input: %v", data)
	}
}

func TestReaderFixedWidth(t *testing.T) {
	w := NewWriter()
	w.WriteU32(0xDEADBEEF)
	w.WriteU64(0x0123456789ABCDEF)
	w.WriteF64(370.5)

	r := NewReader(w.Bytes())
	u32, err := r.ReadU32()
	if err != nil || u32 != 0xDEADBEEF {
		t.Errorf("ReadU32 = %#x, %v", u32, err)
	}
	u64, err := r.ReadU64()
	if err != nil || u64 != 0x0123456789ABCDEF {
		t.Errorf("ReadU64 = %#x, %v", u64, err)
	}
	f, err := r.ReadF64()
	if err != nil || f != 370.5 {
		t.Errorf("ReadF64 = %v, %v", f, err)
	}
	if r.Len() != 0 {
		t.Errorf("Len = %d, want 0", r.Len())
	}
}

func TestReaderTruncatedFixedWidth(t *testing.T) {
	tests := []struct {
		name string
		read func(r *Reader) error
		size int
	}{
		{"u32", func(r *Reader) error { _, err := r.ReadU32(); return err }, 4},
		{"u64", func(r *Reader) error { _, err := r.ReadU64(); return err }, 8},
		{"f64", func(r *Reader) error { _, err := r.ReadF64(); return err }, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for n := 0; n < tt.size; n++ {
				r := NewReader(make([]byte, n))
				if err := tt.read(r); !errors.Is(err, ErrOutOfBounds) {
					t.Errorf("%d bytes: expected ErrOutOfBounds, got %v", n, err)
				}
				if r.Position() != 0 {
					t.Errorf("%d bytes: position moved to %d", n, r.Position())
				}
			}
		})
	}
}

func TestWriterString(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		prefix []byte
	}{
		{"empty", "", []byte{0x00}},
		{"short", "abc", []byte{0x04}},
		{"max short", strings.Repeat("x", 253), []byte{0xFE}},
		{"long", strings.Repeat("x", 254), []byte{0xFF}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWriter()
			w.WriteString(tt.s)
			got := w.Bytes()
			if !bytes.HasPrefix(got, tt.prefix) {
				t.Fatalf("prefix = % x, want % x", got[:len(tt.prefix)], tt.prefix)
			}
			if tt.prefix[0] == 0xFF {
				r := NewReader(got[1:])
				size, err := r.ReadU64()
				if err != nil {
					t.Fatal(err)
				}
				if size != uint64(len(tt.s))+1 {
					t.Errorf("explicit size = %d, want %d", size, len(tt.s)+1)
				}
			}
			if !strings.HasSuffix(string(got), tt.s) {
				t.Error("payload missing")
			}
		})
	}
}

func TestWriterLen(t *testing.T) {
	w := NewWriter()
	w.Byte(1)
	w.WriteBytes([]byte{2, 3})
	w.WriteU32(4)
	w.WriteF64(math.Pi)
	if w.Len() != 15 {
		t.Errorf("Len = %d, want 15", w.Len())
	}
}

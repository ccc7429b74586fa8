package chunk_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/wippyai/luadump/bytecode"
	"github.com/wippyai/luadump/chunk"
	lderrors "github.com/wippyai/luadump/errors"
)

func TestPrototypeValidate(t *testing.T) {
	code := []bytecode.Instruction{0, 0}
	tests := []struct {
		name string
		p    chunk.Prototype
		path string
	}{
		{"empty", chunk.Prototype{}, ""},
		{"no debug info", chunk.Prototype{Code: code, Upvalues: make([]chunk.Upvalue, 1)}, ""},
		{"matching debug info", chunk.Prototype{
			Code: code, LineInfo: []uint32{1, 2},
			Upvalues: make([]chunk.Upvalue, 1), UpvalueNames: []string{"_ENV"},
		}, ""},
		{"short lineinfo", chunk.Prototype{Code: code, LineInfo: []uint32{1}}, "lineinfo"},
		{"extra upvalue names", chunk.Prototype{UpvalueNames: []string{"a"}}, "upvalue_names"},
		{"nested", chunk.Prototype{Protos: []chunk.Prototype{{}, {Code: code, LineInfo: []uint32{1, 2, 3}}}},
			"protos.1.lineinfo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.path == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var e *lderrors.Error
			if !errors.As(err, &e) || e.Kind != lderrors.KindInvalidData {
				t.Fatalf("expected invalid data, got %v", err)
			}
			if got := strings.Join(e.Path, "."); got != tt.path {
				t.Errorf("Path = %q, want %q", got, tt.path)
			}
		})
	}
}

func TestPrototypeLineAndUpvalueName(t *testing.T) {
	p := chunk.Prototype{
		Code:         []bytecode.Instruction{0, 0},
		LineInfo:     []uint32{7, 9},
		Upvalues:     make([]chunk.Upvalue, 2),
		UpvalueNames: []string{"_ENV"},
	}
	if l, ok := p.Line(1); !ok || l != 9 {
		t.Errorf("Line(1) = %d, %v", l, ok)
	}
	if _, ok := p.Line(2); ok {
		t.Error("Line(2) should be absent")
	}
	if _, ok := p.Line(-1); ok {
		t.Error("Line(-1) should be absent")
	}
	if p.UpvalueName(0) != "_ENV" || p.UpvalueName(1) != "" {
		t.Errorf("UpvalueName = %q, %q", p.UpvalueName(0), p.UpvalueName(1))
	}
}

func TestPrototypeCount(t *testing.T) {
	p := chunk.Prototype{Protos: []chunk.Prototype{
		{Protos: []chunk.Prototype{{}, {}}},
		{},
	}}
	if p.Count() != 5 {
		t.Errorf("Count = %d, want 5", p.Count())
	}
}

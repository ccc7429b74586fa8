package chunk_test

import (
	"math"
	"testing"

	"github.com/wippyai/luadump/chunk"
	"github.com/wippyai/luadump/chunk/chunktest"
)

func TestConstantString(t *testing.T) {
	tests := []struct {
		c    chunk.Constant
		kind chunk.ConstantKind
		want string
	}{
		{chunk.Nil{}, chunk.KindNil, "<nil>"},
		{chunk.Boolean(true), chunk.KindBoolean, "<boolean>(true)"},
		{chunk.Boolean(false), chunk.KindBoolean, "<boolean>(false)"},
		{chunk.Integer(42), chunk.KindInteger, "<integer>(42)"},
		{chunk.Integer(math.MinInt64), chunk.KindInteger, "<integer>(-9223372036854775808)"},
		{chunk.Float(370.5), chunk.KindFloat, "<number>(370.500000)"},
		{chunk.Float(-0.25), chunk.KindFloat, "<number>(-0.250000)"},
		{chunk.ShortString("hi"), chunk.KindShortString, `<string>("hi")`},
		{chunk.LongString("a\nb"), chunk.KindLongString, `<string>("a\nb")`},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if tt.c.Kind() != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.c.Kind(), tt.kind)
			}
			if tt.c.String() != tt.want {
				t.Errorf("String = %q, want %q", tt.c.String(), tt.want)
			}
		})
	}
}

func TestConstantKindString(t *testing.T) {
	kinds := map[chunk.ConstantKind]string{
		chunk.KindNil:          "nil",
		chunk.KindBoolean:      "boolean",
		chunk.KindInteger:      "integer",
		chunk.KindFloat:        "number",
		chunk.KindShortString:  "string",
		chunk.KindLongString:   "string",
		chunk.ConstantKind(99): "unknown",
	}
	for k, want := range kinds {
		if k.String() != want {
			t.Errorf("ConstantKind(%d) = %q, want %q", k, k.String(), want)
		}
	}
}

func TestStringValue(t *testing.T) {
	if s, ok := chunk.StringValue(chunk.ShortString("x")); !ok || s != "x" {
		t.Errorf("short: %q, %v", s, ok)
	}
	if s, ok := chunk.StringValue(chunk.LongString("y")); !ok || s != "y" {
		t.Errorf("long: %q, %v", s, ok)
	}
	if _, ok := chunk.StringValue(chunk.Integer(1)); ok {
		t.Error("integer is not a string")
	}
}

func TestConstantTags(t *testing.T) {
	tests := []struct {
		c    chunk.Constant
		tag  byte
		size int
	}{
		{chunk.Nil{}, chunk.TagNil, 1},
		{chunk.Boolean(true), chunk.TagBoolean, 2},
		{chunk.Integer(42), chunk.TagInteger, 9},
		{chunk.Float(1), chunk.TagNumber, 9},
		{chunk.ShortString("ab"), chunk.TagShortString, 4},
		{chunk.LongString("ab"), chunk.TagLongString, 4},
	}
	for _, tt := range tests {
		enc := chunktest.EncodeConstant(tt.c)
		if enc[0] != tt.tag || len(enc) != tt.size {
			t.Errorf("%v: encoded % x, want tag %#x and %d bytes", tt.c, enc, tt.tag, tt.size)
		}
	}
}

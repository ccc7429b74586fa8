package luadump

import (
	"io"
	"strings"

	"github.com/wippyai/luadump/chunk"
	"github.com/wippyai/luadump/disasm"
	"github.com/wippyai/luadump/errors"
)

// Disassemble decodes a binary chunk and returns its listing.
func Disassemble(data []byte) ([]string, error) {
	return DisassembleOpt(data, chunk.DefaultOptions())
}

// DisassembleOpt decodes a binary chunk under opt and returns its listing.
func DisassembleOpt(data []byte, opt chunk.Options) ([]string, error) {
	c, err := chunk.DecodeOpt(data, opt)
	if err != nil {
		return nil, err
	}
	return disasm.Render(&c.Main), nil
}

// DisassembleFile reads, decodes and renders the chunk at path.
func DisassembleFile(path string, opt chunk.Options) ([]string, error) {
	c, err := chunk.DecodeFile(path, opt)
	if err != nil {
		return nil, err
	}
	return disasm.Render(&c.Main), nil
}

// WriteListing writes lines to w, one per line.
func WriteListing(w io.Writer, lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, strings.Join(lines, "\n")+"\n"); err != nil {
		return errors.Wrap(errors.PhaseRender, errors.KindInvalidInput, err, "write listing")
	}
	return nil
}

// Package luadump decodes precompiled Lua 5.3 bytecode chunks and renders
// them as luac-style disassembly listings.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	luadump/             Root package with one-call disassembly helpers
//	├── chunk/           Header validation and prototype tree decoding
//	│   └── chunktest/   Fixture encoder for tests
//	├── bytecode/        Opcode table and instruction field extraction
//	├── disasm/          Listing renderer
//	├── errors/          Structured error types for debugging
//	└── cmd/luadump/     Command line tool and interactive browser
//
// # Quick Start
//
//	lines, err := luadump.Disassemble(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, l := range lines {
//	    fmt.Println(l)
//	}
//
// Working with the decoded tree directly:
//
//	c, err := chunk.Decode(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for pc, ins := range c.Main.Code {
//	    ops, _ := ins.Operands()
//	    fmt.Println(pc, ins.Name(), ops)
//	}
//
// # Supported Input
//
// Only chunks with the layout of a Lua 5.3 build on the running host are
// accepted: 4-byte C int, native pointer-width size_t, 4-byte instructions,
// 8-byte integers and doubles, native byte order. Anything else fails the
// header check.
//
// # Error Handling
//
// All errors are *errors.Error values carrying the phase, kind and field path
// where decoding stopped:
//
//	_, err := chunk.Decode(data)
//	if errors.Is(err, chunk.ErrOutOfBounds) {
//	    // input is truncated
//	}
package luadump

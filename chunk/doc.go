// Package chunk decodes precompiled Lua 5.3 binary chunks.
//
// A chunk is a fixed header followed by the byte count of the main
// closure's upvalues and the recursively serialized main function:
//
//	c, err := chunk.Decode(data)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(c.Main.Source, len(c.Main.Code))
//
// The header is checked field by field against what a Lua 5.3 build on the
// current host would write. Chunks produced for a different word size or byte
// order are rejected with ErrHeaderMismatch; MismatchedField names the field.
//
// Decoding never returns a partial tree. Truncated input fails with
// ErrOutOfBounds, an unknown constant tag with ErrMalformedConstant, and
// input beyond the configured Options with ErrLimitExceeded.
package chunk

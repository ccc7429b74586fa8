package chunk

// Default decode limits.
const (
	// DefaultMaxDepth matches Lua's LUAI_MAXCCALLS nesting limit.
	DefaultMaxDepth = 200
	// DefaultMaxCount caps the declared count of any count+entries block.
	DefaultMaxCount = 1 << 24
	// DefaultMaxStringLen caps a single string constant or debug name.
	DefaultMaxStringLen = 1 << 30
)

// Options configures decode limits. Zero values select the defaults.
type Options struct {
	// MaxDepth is the deepest allowed function nesting; the main function is depth 1.
	MaxDepth int

	// MaxCount caps any declared element count (instructions, constants,
	// upvalues, nested functions, debug entries).
	MaxCount int

	// MaxStringLen caps the byte length of any single string.
	MaxStringLen int
}

// DefaultOptions returns the default decode limits.
func DefaultOptions() Options {
	return Options{}
}

// EffectiveMaxDepth returns the effective nesting limit.
func (o Options) EffectiveMaxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

// EffectiveMaxCount returns the effective per-block count limit.
func (o Options) EffectiveMaxCount() int {
	if o.MaxCount <= 0 {
		return DefaultMaxCount
	}
	return o.MaxCount
}

// EffectiveMaxStringLen returns the effective string length limit.
func (o Options) EffectiveMaxStringLen() int {
	if o.MaxStringLen <= 0 {
		return DefaultMaxStringLen
	}
	return o.MaxStringLen
}

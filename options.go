package star

// Mode selects how strictly structural shortcuts in the input are
// policed. The zero Mode accepts unterminated saveframes and loops,
// rejects incomplete loops, and rejects square-bracket values.
type Mode struct {
	// EnforceSaveFrameStop rejects saveframes that are not terminated by
	// a bare save_ before the next construct begins.
	EnforceSaveFrameStop bool

	// EnforceLoopStop rejects loops that are not terminated by stop_.
	// When unset, a data name, saveframe, or data block marker closes an
	// open loop implicitly.
	EnforceLoopStop bool

	// PadIncompleteLoops pads a final loop row that is short of values
	// with the null value instead of rejecting the loop.
	PadIncompleteLoops bool

	// AllowSquareBracketStrings accepts values starting with [ or ] as
	// unquoted strings. The IUCr standard reserves them.
	AllowSquareBracketStrings bool
}

// The standard strictness profiles. Standard is the default: it follows
// the IUCr specification but tolerates square-bracket values.
var (
	Lenient = Mode{
		PadIncompleteLoops:        true,
		AllowSquareBracketStrings: true,
	}
	Standard = Mode{
		EnforceSaveFrameStop:      true,
		AllowSquareBracketStrings: true,
	}
	Strict = Mode{
		EnforceSaveFrameStop: true,
		EnforceLoopStop:      true,
	}
	IUCr = Mode{
		EnforceSaveFrameStop: true,
	}
)

// Option configures a parse.
type Option func(*parser)

// WithMode returns an Option that sets the strictness profile.
func WithMode(m Mode) Option {
	return func(p *parser) { p.mode = m }
}

// WithKeepCase returns an Option that preserves the case of data block
// names, saveframe names, and tags. By default they are lowercased.
func WithKeepCase() Option {
	return func(p *parser) { p.lowerCaseTags = false }
}

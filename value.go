package star

// UnquotedValue marks a string that was not quoted in the source, or that
// must be written without quoting. Only UnquotedValue strings carry STAR
// special values: a bare true is a boolean to the dialect layer, while a
// quoted 'true' is always the four-letter string.
//
// UnquotedValue strings are written exactly as they are. Callers building
// trees by hand must not put whitespace or reserved constructs in them.
type UnquotedValue string

// Special values, read and written as unquoted strings.
const (
	NullValue          UnquotedValue = "."
	UnknownValue       UnquotedValue = "?"
	TrueValue          UnquotedValue = "true"
	FalseValue         UnquotedValue = "false"
	NaNValue           UnquotedValue = "NaN"
	InfinityValue      UnquotedValue = "Infinity"
	MinusInfinityValue UnquotedValue = "-Infinity"
)

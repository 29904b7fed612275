package token

// Type is the type of a token.
type Type string

// Token represents a lexical token.
type Token struct {
	Type    Type
	Literal string
	Line    int
	Column  int
}

const (
	EOF Type = "EOF" // End of input

	// Structural markers
	GLOBAL    Type = "GLOBAL"    // global_
	SAVEFRAME Type = "SAVEFRAME" // save_name or bare save_
	STOP      Type = "STOP"      // stop_
	DATABLOCK Type = "DATABLOCK" // data_name
	LOOP      Type = "LOOP"      // loop_
	DATANAME  Type = "DATANAME"  // _tag

	// Values
	MULTILINE    Type = "MULTILINE"    // ;-delimited text block
	SAVEFRAMEREF Type = "SAVEFRAMEREF" // $framecode
	SQUOTESTRING Type = "SQUOTESTRING" // 'text'
	DQUOTESTRING Type = "DQUOTESTRING" // "text"
	NULL         Type = "NULL"         // .
	UNKNOWN      Type = "UNKNOWN"      // ?
	BRACKET      Type = "BRACKET"      // [text or ]text
	STRING       Type = "STRING"       // bare value

	COMMENT Type = "COMMENT" // # a comment

	// Malformed input
	BADCONSTRUCT Type = "BADCONSTRUCT" // stop_x, loop_x, global_x, bare data_
	BADTOKEN     Type = "BADTOKEN"     // anything else
)

// IsValue reports whether tokens of this type carry a data value.
func (t Type) IsValue() bool {
	switch t {
	case MULTILINE, SAVEFRAMEREF, SQUOTESTRING, DQUOTESTRING, NULL, UNKNOWN, BRACKET, STRING:
		return true
	}
	return false
}

// IsQuoted reports whether tokens of this type carry a value that was
// quoted in the source. Quoted values are never eligible for sentinel or
// number interpretation.
func (t Type) IsQuoted() bool {
	switch t {
	case MULTILINE, SQUOTESTRING, DQUOTESTRING:
		return true
	}
	return false
}

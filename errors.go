package star

import "fmt"

// A SyntaxError reports STAR input that does not parse under the active
// Mode. Context holds the names of the enclosing elements at the point of
// failure, outermost first, and Token is the offending token text.
type SyntaxError struct {
	Msg     string
	Context []string
	Token   string
	Line    int
	Column  int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("star: line %d column %d: %s (context %v, token %q)",
		e.Line, e.Column, e.Msg, e.Context, e.Token)
}

package star

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
)

const (
	defaultIndent    = "   "
	defaultSeparator = "  "
	floatFormat      = "%.10g"
)

// Literals that must be quoted to keep their string identity, and name
// prefixes that would read as structure or quoting if written bare.
var (
	reservedLiterals = []string{"true", "false", "NaN", "Infinity", "-Infinity", ""}
	reservedPrefixes = []string{"_", "[", "]", "$", `"`, "'", "save_", "loop_", "stop_", "data_", "global_"}
)

// FormatValue converts a value to its quoted STAR string form. nil,
// booleans, NaN and infinities become the unquoted special values;
// UnquotedValue strings pass through verbatim; anything that is not a
// number or a string is rendered with fmt.Sprint first.
func FormatValue(value any) string {
	return formatValue(value, false)
}

func formatValue(value any, quoteNumbers bool) string {
	switch v := value.(type) {
	case nil:
		return string(NullValue)
	case bool:
		if v {
			return string(TrueValue)
		}
		return string(FalseValue)
	case UnquotedValue:
		return string(v)
	case float64:
		return formatFloat(v)
	case float32:
		return formatFloat(float64(v))
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case string:
		return quoteString(v, quoteNumbers)
	default:
		return quoteString(fmt.Sprint(value), quoteNumbers)
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return string(NaNValue)
	case math.IsInf(f, 1):
		return string(InfinityValue)
	case math.IsInf(f, -1):
		return string(MinusInfinityValue)
	}
	return fmt.Sprintf(floatFormat, f)
}

// quoteString wraps a plain string in whatever quoting its content
// requires: none, single quotes, double quotes, or a multiline block.
func quoteString(value string, quoteNumbers bool) string {
	if !strings.Contains(value, "\n") {
		if !needsQuoting(value, quoteNumbers) {
			return value
		}
		switch {
		case !strings.Contains(value, "'"):
			return "'" + value + "'"
		case !strings.Contains(value, `"`):
			return `"` + value + `"`
		case !containsEndQuote(value, '\''):
			// A quote only closes when followed by whitespace, so e.g.
			// `"say" 'what'?` still fits in single quotes.
			return "'" + value + "'"
		case !containsEndQuote(value, '"'):
			return `"` + value + `"`
		}
		// Both quote kinds would close early; write a multiline block.
		value += "\n"
	}
	return multilineString(value)
}

func needsQuoting(value string, quoteNumbers bool) bool {
	if containsWhitespace(value) || strings.ContainsRune(value, '#') {
		return true
	}
	if quoteNumbers {
		if _, err := strconv.ParseFloat(value, 64); err == nil {
			return true
		}
	}
	if slices.Contains(reservedLiterals, value) {
		return true
	}
	lower := strings.ToLower(value)
	for _, prefix := range reservedPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// multilineString wraps a value holding newlines as a ;-delimited block.
// A line starting with ; would close the block early, so when any line
// does, every line gets a leading space (dropping a trailing newline,
// which the closing form then restores).
func multilineString(value string) string {
	if strings.Contains(value, ";") {
		lines := strings.Split(value, "\n")
		if len(lines) > 0 && lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
		if slices.ContainsFunc(lines, func(line string) bool { return strings.HasPrefix(line, ";") }) {
			for i := range lines {
				lines[i] = " " + lines[i]
			}
			value = strings.Join(lines, "\n")
		}
	}
	if strings.HasSuffix(value, "\n") {
		return "\n;" + value + "; "
	}
	return "\n;" + value + "\n; "
}

// containsEndQuote reports whether the value contains the quote
// character immediately followed by whitespace, which would terminate a
// quoted string of that kind.
func containsEndQuote(value string, quote byte) bool {
	for i := 0; i+1 < len(value); i++ {
		if value[i] == quote && isWhitespace(value[i+1]) {
			return true
		}
	}
	return false
}

func containsWhitespace(value string) bool {
	for i := 0; i < len(value); i++ {
		if isWhitespace(value[i]) {
			return true
		}
	}
	return false
}

func isWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// contentString renders the items, loops, and saveframes of a block or
// frame. The tag column is sized to the longest tag with a string value;
// loops are emitted once, at their first-column key.
func (c *container) contentString(indent, separator, tagPrefix string) string {
	tagwidth := 1
	for _, key := range c.keys {
		switch c.items[key].(type) {
		case string, UnquotedValue:
			if len(key) > tagwidth {
				tagwidth = len(key)
			}
		}
	}

	var b strings.Builder
	for _, key := range c.keys {
		switch v := c.items[key].(type) {
		case *SaveFrame:
			b.WriteString(v.render(indent+defaultIndent, separator))
		case *Loop:
			if key == v.name {
				b.WriteString(v.render(indent, separator))
			}
		default:
			fmt.Fprintf(&b, "%s%s%-*s%s%s\n",
				indent, tagPrefix, tagwidth, key, separator, formatValue(v, false))
		}
	}
	return b.String()
}

// String converts the whole tree to STAR text, data blocks separated by
// three blank lines.
func (e *DataExtent) String() string {
	parts := make([]string, 0, len(e.keys))
	for _, key := range e.keys {
		if block, ok := e.items[key].(*DataBlock); ok {
			parts = append(parts, block.render("", defaultSeparator))
		}
	}
	return strings.Join(parts, "\n\n\n\n")
}

// WriteTo writes the tree as STAR text.
func (e *DataExtent) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, e.String())
	return int64(n), err
}

// String converts the block to STAR text. The data_ prefix is added to
// the block name if it is not already there.
func (b *DataBlock) String() string { return b.render("", defaultSeparator) }

func (b *DataBlock) render(indent, separator string) string {
	name := b.name
	if !strings.HasPrefix(name, "data_") {
		name = "data_" + name
	}
	return fmt.Sprintf("%s\n\n%s\n# End of %s\n",
		name, b.contentString(indent, separator, b.TagPrefix), name)
}

// String converts the saveframe to STAR text. The save_ prefix is added
// to the frame name if it is not already there.
func (f *SaveFrame) String() string { return f.render(defaultIndent, defaultSeparator) }

func (f *SaveFrame) render(indent, separator string) string {
	name := f.name
	if !strings.HasPrefix(name, "save_") {
		name = "save_" + name
	}
	return fmt.Sprintf("\n%s%s\n\n%s%ssave_\n\n",
		indent, name, f.contentString(indent+defaultIndent, separator, f.TagPrefix), indent)
}

// String converts the loop to STAR text: header lines, a blank line,
// rows aligned per column, and the stop_ terminator.
func (l *Loop) String() string { return l.render(defaultIndent, defaultSeparator) }

func (l *Loop) render(indent, separator string) string {
	lineIndent := indent + defaultIndent

	var b strings.Builder
	b.WriteString("\n" + indent + "loop_\n")
	for _, col := range l.columns {
		b.WriteString(lineIndent + l.TagPrefix + col + "\n")
	}
	b.WriteString("\n")

	if len(l.Rows) > 0 {
		cells := make([][]string, len(l.Rows))
		widths := make([]int, len(l.columns))
		for i, row := range l.Rows {
			cells[i] = make([]string, len(l.columns))
			for j, col := range l.columns {
				s := formatValue(row[col], false)
				cells[i][j] = s
				if len(s) > widths[j] {
					widths[j] = len(s)
				}
			}
		}
		for _, row := range cells {
			parts := make([]string, len(row))
			for j, s := range row {
				if j == len(row)-1 {
					// No padding after the last column.
					parts[j] = strings.TrimRight(s, " \t\n\r\f\v")
				} else {
					parts[j] = fmt.Sprintf("%-*s", widths[j], s)
				}
			}
			b.WriteString(lineIndent + strings.Join(parts, separator) + "\n")
		}
	}

	b.WriteString(indent + "stop_\n")
	return b.String()
}

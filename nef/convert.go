package nef

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	star "github.com/nefkit/go-star"
)

const (
	fileTypeStar = "star"
	fileTypeNef  = "nef"

	// Name given to a converted block whose data_ header had no name.
	missingBlockName = "__MissingDataBlockName"
)

// converter turns a generically parsed tree into the restricted
// NEF/NMR-STAR form. It assumes the tree came from a parse with default
// tag lowercasing and does not re-check that. preValidate runs the
// structural checks without mutating anything; convert builds the new
// tree. The stack carries the element trail for error context.
type converter struct {
	fileType      string
	renameColumns bool
	stack         []string
}

func (c *converter) push(name string) { c.stack = append(c.stack, name) }
func (c *converter) pop()             { c.stack = c.stack[:len(c.stack)-1] }

func (c *converter) validationError(format string, args ...any) *ValidationError {
	return &ValidationError{
		Msg:     fmt.Sprintf(format, args...),
		Context: slices.Clone(c.stack),
	}
}

// preValidate checks the dialect rules on every block, frame, and loop,
// reporting the first violation without touching the tree.
func (c *converter) preValidate(extent *star.DataExtent) error {
	c.stack = c.stack[:0]
	for _, block := range extent.Blocks() {
		if err := c.preValidateBlock(block); err != nil {
			return err
		}
	}
	return nil
}

func (c *converter) preValidateBlock(block *star.DataBlock) error {
	c.push(block.Name())
	defer c.pop()

	if name := block.Name(); name != "global_" && !strings.HasPrefix(name, "data_") {
		return c.validationError("data block name must be global_ or start with data_")
	}
	for _, key := range block.Keys() {
		frame, ok := block.Item(key).(*star.SaveFrame)
		if !ok {
			return c.validationError("%s file data block contains non-saveframe element %s (%T)",
				c.fileType, key, block.Item(key))
		}
		if err := c.preValidateFrame(frame); err != nil {
			return err
		}
	}
	return nil
}

func (c *converter) preValidateFrame(frame *star.SaveFrame) error {
	c.push(frame.Name())
	defer c.pop()

	prefix, err := c.framePrefix(frame)
	if err != nil {
		return err
	}

	category, ok := frame.Get(prefix + "sf_category")
	if !ok {
		return c.validationError("saveframe lacks .sf_category item")
	}
	framecode, ok := frame.Get(prefix + "sf_framecode")
	if !ok {
		return c.validationError("saveframe lacks .sf_framecode item")
	}

	name := strings.TrimPrefix(frame.Name(), "save_")
	if name != strings.ToLower(stringValue(framecode)) {
		return c.validationError("saveframe name %s does not match sf_framecode %s",
			name, stringValue(framecode))
	}

	if c.fileType == fileTypeNef {
		if !strings.HasPrefix(stringValue(framecode), stringValue(category)) {
			return c.validationError("NEF sf_framecode %s does not start with the sf_category %s",
				stringValue(framecode), stringValue(category))
		}
		if prefix[1:len(prefix)-1] != stringValue(category) {
			return c.validationError("NEF sf_category %s does not match tag prefix %s",
				stringValue(category), prefix)
		}
	}

	for _, tag := range frame.Keys() {
		if err := c.preValidateItem(tag, frame.Item(tag)); err != nil {
			return err
		}
	}
	return nil
}

func (c *converter) preValidateItem(tag string, value any) error {
	c.push(tag)
	defer c.pop()

	switch v := value.(type) {
	case *star.Loop:
		if tag == v.Name() {
			return c.preValidateLoop(v)
		}
	case string, star.UnquotedValue:
	default:
		return c.validationError("saveframe contains item value of wrong type: %T", v)
	}
	return nil
}

func (c *converter) preValidateLoop(loop *star.Loop) error {
	c.push(loop.Name())
	defer c.pop()

	columns := loop.Columns()
	if !strings.Contains(commonPrefix(columns), ".") {
		return c.validationError("column names of loop %s do not start with a common dot-separated prefix: %v",
			loop.Name(), columns)
	}
	return nil
}

// convert builds the restricted tree. It must run after preValidate and
// relies on the invariants preValidate established.
func (c *converter) convert(extent *star.DataExtent) (*star.DataExtent, error) {
	out := star.NewDataExtent()
	c.stack = c.stack[:0]
	for _, block := range extent.Blocks() {
		converted, err := c.convertBlock(block)
		if err != nil {
			return nil, err
		}
		if err := out.AddItem(converted.Name(), converted); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c *converter) convertBlock(block *star.DataBlock) (*star.DataBlock, error) {
	c.push(block.Name())
	defer c.pop()

	name := block.Name()
	if strings.HasPrefix(name, "data_") {
		name = name[len("data_"):]
		if name == "" {
			name = missingBlockName
		}
	} else if name == "global_" {
		name = "global"
	}

	out := star.NewDataBlock(name)
	for _, key := range block.Keys() {
		// preValidate established every child is a saveframe.
		frame := block.Item(key).(*star.SaveFrame)
		converted, err := c.convertFrame(frame)
		if err != nil {
			return nil, err
		}
		if err := out.AddItem(converted.Name(), converted); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c *converter) convertFrame(frame *star.SaveFrame) (*star.SaveFrame, error) {
	c.push(frame.Name())
	defer c.pop()

	prefix, err := c.framePrefix(frame)
	if err != nil {
		return nil, err
	}

	var framecode, category string
	for _, tag := range frame.Keys() {
		if strings.HasSuffix(tag, ".sf_framecode") {
			framecode = stringValue(frame.Item(tag))
			break
		}
	}
	for _, tag := range frame.Keys() {
		if strings.HasSuffix(tag, ".sf_category") {
			category = stringValue(frame.Item(tag))
			break
		}
	}

	out := star.NewSaveFrame(framecode)
	out.Category = category
	out.TagPrefix = "_" + category + "."

	for _, tag := range frame.Keys() {
		if err := c.convertFrameItem(out, prefix, tag, frame.Item(tag)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c *converter) convertFrameItem(out *star.SaveFrame, prefix, tag string, value any) error {
	c.push(tag)
	defer c.pop()

	switch v := value.(type) {
	case star.UnquotedValue:
		return out.AddItem(tag[len(prefix):], c.convertValue(v, tag))
	case string:
		return out.AddItem(tag[len(prefix):], v)
	case *star.Loop:
		// A loop sits in the frame once per column; convert it at its
		// first column only.
		if tag == v.Columns()[0] {
			converted, err := c.convertLoop(v)
			if err != nil {
				return err
			}
			return out.AddItem(converted.Name(), converted)
		}
	}
	return nil
}

func (c *converter) convertLoop(loop *star.Loop) (*star.Loop, error) {
	c.push(loop.Name())
	defer c.pop()

	oldColumns := loop.Columns()
	common := commonPrefix(oldColumns)
	dot := strings.IndexByte(common, '.')
	if dot < 0 {
		return nil, c.validationError("column names of loop %s do not start with a common dot-separated prefix: %v",
			loop.Name(), oldColumns)
	}
	category := common[:dot]
	lenPrefix := len(category) + 1
	category = strings.TrimPrefix(category, "_")

	columns := make([]string, len(oldColumns))
	for i, col := range oldColumns {
		tag := col[lenPrefix:]
		if tag != "" && !isAlpha(tag) {
			if !c.renameColumns {
				return nil, c.validationError("invalid column name: %s", col)
			}
			tag = slugifyColumn(tag)
		}
		if tag == "" {
			return nil, c.validationError("invalid column name: %s", col)
		}
		columns[i] = tag
	}

	out := star.NewLoop(category, columns...)
	out.TagPrefix = "_" + category + "."
	for _, row := range loop.Rows {
		values := make([]any, len(oldColumns))
		for i, col := range oldColumns {
			if uv, ok := row[col].(star.UnquotedValue); ok {
				values[i] = c.convertValue(uv, columns[i])
			} else {
				values[i] = row[col]
			}
		}
		if _, err := out.NewRow(values); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// convertValue coerces an unquoted value: the special strings become
// nil or booleans, a $code saveframe reference loses its $, and anything
// else is tried as an integer, then a float. Items are judged by their
// full prefixed tag, loop cells by their converted column name.
func (c *converter) convertValue(value star.UnquotedValue, tag string) any {
	switch value {
	case star.NullValue, star.UnknownValue:
		return nil
	case star.TrueValue:
		return true
	case star.FalseValue:
		return false
	}
	if strings.HasPrefix(string(value), "$") {
		return string(value)[1:]
	}
	if stringTypedTag(tag) {
		return value
	}
	if n, ok := parseNumber(string(value)); ok {
		return n
	}
	return value
}

// Tags named like sequence_code or atom_name hold strings that often
// look numeric; their values are never coerced.
func stringTypedTag(tag string) bool {
	return strings.HasSuffix(tag, "_code") || strings.HasSuffix(tag, "_name") ||
		strings.Contains(tag, "_code_") || strings.Contains(tag, "_name_")
}

func parseNumber(s string) (any, bool) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	// strconv reads 0x… as a hex float; a bare value never means that.
	rest := strings.TrimLeft(s, "+-")
	if len(rest) > 1 && rest[0] == '0' && (rest[1] == 'x' || rest[1] == 'X') {
		return nil, false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, true
	}
	return nil, false
}

// framePrefix returns the common prefix of the frame's string-valued
// item tags, cut after the first dot.
func (c *converter) framePrefix(frame *star.SaveFrame) (string, error) {
	var tags []string
	for _, tag := range frame.Keys() {
		switch frame.Item(tag).(type) {
		case string, star.UnquotedValue:
			tags = append(tags, tag)
		}
	}
	common := commonPrefix(tags)
	dot := strings.IndexByte(common, '.')
	if dot < 0 {
		return "", c.validationError("saveframe tags do not start with a common dot-separated prefix: %v", tags)
	}
	return common[:dot+1], nil
}

// commonPrefix returns the longest common leading string of ss, empty
// for an empty slice.
func commonPrefix(ss []string) string {
	if len(ss) == 0 {
		return ""
	}
	prefix := ss[0]
	for _, s := range ss[1:] {
		for !strings.HasPrefix(s, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// slugifyColumn rewrites a column name to letters, numbers, and
// underscores, dropping any leading non-letters.
func slugifyColumn(tag string) string {
	var b strings.Builder
	b.Grow(len(tag))
	for _, r := range tag {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	s := b.String()
	for s != "" {
		r, size := utf8.DecodeRuneInString(s)
		if unicode.IsLetter(r) {
			break
		}
		s = s[size:]
	}
	return s
}

func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case star.UnquotedValue:
		return string(s)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

// FramecodeString maps text to the character set allowed in saveframe
// codes: printable ASCII except quotes and the comment mark. Control
// characters become _, everything else becomes ?.
func FramecodeString(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '"' || r == '#' || r == '\'':
			b.WriteByte('?')
		case r <= 32 || r == 127:
			b.WriteByte('_')
		case r < 127:
			b.WriteRune(r)
		default:
			b.WriteByte('?')
		}
	}
	return b.String()
}

// NewSaveFrame adds a frame of the given category to the block and fills
// in the mandatory identification items. The name is passed through
// FramecodeString first.
func NewSaveFrame(block *star.DataBlock, name, category string) (*star.SaveFrame, error) {
	name = FramecodeString(name)
	frame := star.NewSaveFrame(name)
	frame.Category = category
	frame.TagPrefix = "_" + category + "."
	if err := block.AddItem(name, frame); err != nil {
		return nil, err
	}
	frame.Set("sf_category", category)
	frame.Set("sf_framecode", name)
	return frame, nil
}

// AddSaveFrame adds an existing frame to the block, keyed by its
// sf_framecode item.
func AddSaveFrame(block *star.DataBlock, frame *star.SaveFrame) error {
	code, ok := frame.Get("sf_framecode")
	if !ok {
		return fmt.Errorf("saveframe %s lacks an sf_framecode item", frame.Name())
	}
	return block.AddItem(stringValue(code), frame)
}

// NewLoop adds a loop with the given columns to the frame, registered
// once under its name, with the write prefix derived from the name.
func NewLoop(frame *star.SaveFrame, name string, columns ...string) (*star.Loop, error) {
	loop := star.NewLoop(name, columns...)
	loop.TagPrefix = "_" + name + "."
	if err := frame.AddItem(name, loop); err != nil {
		return nil, err
	}
	return loop, nil
}

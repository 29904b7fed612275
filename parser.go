package star

import (
	"fmt"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/nefkit/go-star/internal/lexer"
	"github.com/nefkit/go-star/internal/token"
)

var log = commonlog.GetLogger("star.parser")

// stackEntry is one frame of the parse stack: the root, an open block or
// saveframe, an item tag waiting for its value, or an open loop.
type stackEntry interface {
	contextName() string
}

// pendingTag is an item tag whose value has not been read yet.
type pendingTag string

func (t pendingTag) contextName() string { return string(t) }

// openLoop is a loop_ whose columns and values are still being read.
// Values are buffered flat and cut into rows when the loop closes.
type openLoop struct {
	loop   *Loop
	values []any
}

func (o *openLoop) contextName() string { return o.loop.name }

// itemContainer is the part of the container API the parser needs from
// whatever is below a tag or loop on the stack.
type itemContainer interface {
	stackEntry
	AddItem(tag string, value any) error
}

// parser turns the token stream into a DataExtent tree. One parser
// serves one input; all state is per-instance.
type parser struct {
	lex           *lexer.Lexer
	mode          Mode
	lowerCaseTags bool

	stack          []stackEntry
	globalsCounter int
	tok            token.Token
}

func newParser(text string) *parser {
	return &parser{
		lex:           lexer.New(text),
		mode:          Standard,
		lowerCaseTags: true,
	}
}

func (p *parser) top() stackEntry { return p.stack[len(p.stack)-1] }

func (p *parser) push(e stackEntry) { p.stack = append(p.stack, e) }

func (p *parser) pop() stackEntry {
	e := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	return e
}

// syntaxError builds a SyntaxError at the current token, with the names
// of the open elements as context.
func (p *parser) syntaxError(format string, args ...any) error {
	var context []string
	for _, e := range p.stack[1:] {
		context = append(context, e.contextName())
	}
	return &SyntaxError{
		Msg:     fmt.Sprintf(format, args...),
		Context: context,
		Token:   p.tok.Literal,
		Line:    p.tok.Line,
		Column:  p.tok.Column,
	}
}

func (p *parser) parse() (*DataExtent, error) {
	result := NewDataExtent()
	p.push(result)

	for {
		tok := p.lex.Next()
		if tok.Type == token.EOF {
			break
		}
		p.tok = tok
		if err := p.process(tok); err != nil {
			return nil, err
		}
	}

	// End of input: close whatever is still open. Structural strictness
	// does not apply here; only incomplete loop data can still fail.
	if tag, ok := p.top().(pendingTag); ok {
		return nil, p.syntaxError("input ends with item name %s", string(tag))
	}
	if _, ok := p.top().(*openLoop); ok {
		if err := p.closeLoop(); err != nil {
			return nil, err
		}
	}
	if _, ok := p.top().(*SaveFrame); ok {
		p.pop()
	}
	if _, ok := p.top().(*DataBlock); ok {
		p.pop()
	}
	return result, nil
}

func (p *parser) process(tok token.Token) error {
	switch tok.Type {
	case token.COMMENT:
		return nil
	case token.STRING, token.NULL, token.UNKNOWN, token.SAVEFRAMEREF:
		return p.processValue(UnquotedValue(tok.Literal))
	case token.SQUOTESTRING, token.DQUOTESTRING, token.MULTILINE:
		return p.processValue(tok.Literal)
	case token.BRACKET:
		if p.mode.AllowSquareBracketStrings {
			return p.processValue(UnquotedValue(tok.Literal))
		}
		return p.syntaxError("illegal token of type %s: %s", tok.Type, tok.Literal)
	case token.DATANAME:
		return p.processDataName(tok.Literal)
	case token.LOOP:
		return p.startLoop(tok.Literal)
	case token.STOP:
		return p.closeLoop()
	case token.SAVEFRAME:
		return p.processSaveFrame(tok.Literal)
	case token.DATABLOCK:
		return p.processDataBlock(tok.Literal)
	case token.GLOBAL:
		return p.processGlobal()
	case token.BADCONSTRUCT, token.BADTOKEN:
		return p.syntaxError("illegal token of type %s: %s", tok.Type, tok.Literal)
	default:
		return p.syntaxError("unknown token type %s", tok.Type)
	}
}

// processValue stores a value: as the value half of a pending item, or
// appended to the open loop's buffer.
func (p *parser) processValue(value any) error {
	switch top := p.top().(type) {
	case pendingTag:
		p.pop()
		parent, ok := p.top().(itemContainer)
		if !ok {
			return p.syntaxError("item %s outside data block or saveframe", string(top))
		}
		return parent.AddItem(string(top), value)
	case *openLoop:
		top.values = append(top.values, value)
		return nil
	default:
		return p.syntaxError("data value %s must be in item or loop_", value)
	}
}

// processDataName handles a _tag: inside a container it starts an item,
// inside a loop header it adds a column, and after loop values it closes
// the loop implicitly (or fails when stop_ is enforced).
func (p *parser) processDataName(value string) error {
	if p.lowerCaseTags {
		value = strings.ToLower(value)
	}
	switch top := p.top().(type) {
	case *DataBlock, *SaveFrame:
		p.push(pendingTag(value))
		return nil
	case *openLoop:
		return p.addLoopField(top, value)
	default:
		return p.syntaxError("item name %s must be in a data block, saveframe, or loop header", value)
	}
}

func (p *parser) addLoopField(frame *openLoop, value string) error {
	if len(frame.values) > 0 {
		if p.mode.EnforceLoopStop {
			return p.syntaxError("illegal token %s in unclosed loop", value)
		}
		// A tag among loop values closes the loop and starts an item.
		if err := p.closeLoop(); err != nil {
			return err
		}
		p.push(pendingTag(value))
		return nil
	}
	if len(frame.loop.columns) == 0 {
		// The loop takes the name of its first column.
		frame.loop.name = value
	}
	if err := frame.loop.AddColumn(value); err != nil {
		return err
	}
	parent, ok := p.stack[len(p.stack)-2].(itemContainer)
	if !ok {
		return p.syntaxError("loop column %s outside data block or saveframe", value)
	}
	// The loop is registered under every one of its column names.
	return parent.AddItem(value, frame.loop)
}

// closeLoop pops the open loop and cuts its value buffer into rows.
func (p *parser) closeLoop() error {
	frame, ok := p.top().(*openLoop)
	if !ok {
		return p.syntaxError("stop_ outside loop")
	}
	p.pop()
	loop, data := frame.loop, frame.values

	ncol := len(loop.columns)
	if ncol == 0 {
		return p.syntaxError("loop lacks column names")
	}
	if len(data) == 0 {
		// Empty loops are allowed.
		return nil
	}
	if rem := len(data) % ncol; rem != 0 {
		missing := ncol - rem
		if !p.mode.PadIncompleteLoops {
			return p.syntaxError("loop %s is missing %d values", loop.name, missing)
		}
		log.Warningf("line %d: loop %s in %s is missing %d values, padding with null",
			p.tok.Line, loop.name, p.top().contextName(), missing)
		for i := 0; i < missing; i++ {
			data = append(data, NullValue)
		}
	}
	for i := 0; i < len(data); i += ncol {
		if _, err := loop.NewRow(data[i : i+ncol]); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) startLoop(value string) error {
	if frame, ok := p.top().(*openLoop); ok {
		// Nested loops are not supported; after values, loop_ can close
		// the open loop when stop_ is not enforced.
		if len(frame.values) == 0 || p.mode.EnforceLoopStop {
			return p.syntaxError("loop terminated by %s instead of stop_", value)
		}
		if err := p.closeLoop(); err != nil {
			return err
		}
	}
	switch p.top().(type) {
	case *DataBlock, *SaveFrame:
		p.push(&openLoop{loop: NewLoop("loop_")})
		return nil
	default:
		return p.syntaxError("loop_ out of context")
	}
}

// processSaveFrame handles every save_ token: the terminator half first,
// then a new frame when the token carries a name.
func (p *parser) processSaveFrame(value string) error {
	if err := p.closeSaveFrame(value); err != nil {
		return err
	}
	if len(value) > len("save_") {
		return p.openSaveFrame(value)
	}
	return nil
}

func (p *parser) closeSaveFrame(value string) error {
	terminator := strings.EqualFold(value, "save_")

	if _, ok := p.top().(*openLoop); ok {
		if p.mode.EnforceLoopStop {
			return p.syntaxError("loop terminated by %s instead of stop_", value)
		}
		if err := p.closeLoop(); err != nil {
			return err
		}
	}
	if _, ok := p.top().(*SaveFrame); ok {
		switch {
		case terminator:
			p.pop()
		case p.mode.EnforceSaveFrameStop:
			return p.syntaxError("saveframe terminated by %s instead of save_", value)
		default:
			// Missing terminator tolerated: close and continue.
			p.pop()
		}
	}
	if _, ok := p.top().(*DataBlock); !ok && terminator {
		return p.syntaxError("%s found out of context", value)
	}
	return nil
}

func (p *parser) openSaveFrame(value string) error {
	if p.lowerCaseTags {
		value = strings.ToLower(value)
	}
	block, ok := p.top().(*DataBlock)
	if !ok {
		return p.syntaxError("saveframe start out of context: %s", value)
	}
	frame := NewSaveFrame(value)
	if err := block.AddItem(value, frame); err != nil {
		return err
	}
	p.push(frame)
	return nil
}

func (p *parser) processDataBlock(value string) error {
	if p.globalsCounter == 0 {
		// The name global_ is reserved for a leading global block.
		p.globalsCounter = 1
	}
	if _, ok := p.top().(*openLoop); ok {
		if p.mode.EnforceLoopStop {
			return p.syntaxError("loop terminated by %s instead of stop_", value)
		}
		if err := p.closeLoop(); err != nil {
			return err
		}
	}
	if _, ok := p.top().(*SaveFrame); ok {
		if p.mode.EnforceSaveFrameStop {
			return p.syntaxError("saveframe terminated by %s instead of save_", value)
		}
		p.pop()
	}
	if _, ok := p.top().(*DataBlock); ok {
		p.pop()
	}
	extent, ok := p.top().(*DataExtent)
	if !ok {
		return p.syntaxError("parser error at token %s", value)
	}
	if p.lowerCaseTags {
		value = strings.ToLower(value)
	}
	block := NewDataBlock(value)
	if err := extent.AddItem(value, block); err != nil {
		return err
	}
	p.push(block)
	return nil
}

// processGlobal treats a global block as a data block. A global leading
// the input is named global_; globals elsewhere are numbered.
func (p *parser) processGlobal() error {
	name := "global_"
	if p.globalsCounter > 0 {
		name = fmt.Sprintf("global_%d", p.globalsCounter)
		p.globalsCounter++
	}
	return p.processDataBlock(name)
}

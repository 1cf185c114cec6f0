package jsonevent

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"
)

// ErrUnexpectedEnd is returned by Finish when the root value was not closed.
var ErrUnexpectedEnd = errors.New("unexpected end of JSON input")

// MaxDepth limits container nesting.
const MaxDepth = 512

type scanState uint8

const (
	stateValue       scanState = iota // expecting a value
	stateArrayFirst                   // after '[': value or ']'
	stateObjectFirst                  // after '{': key or '}'
	stateKeyStart                     // after ',' inside an object
	stateKey                          // inside a member name
	stateColon                        // after a member name
	stateString                       // inside a string value
	stateNumber                       // inside a number
	stateLiteral                      // inside true/false/null
	stateAfterValue                   // expecting ',' or a closer
	stateDone                         // root value closed
)

// Scanner is a resumable push tokenizer. Each Feed call consumes the whole
// fragment and emits every event it completes; partial tokens are carried
// over to the next call. A Scanner is not safe for concurrent use.
type Scanner struct {
	handler Handler
	stack   []byte
	state   scanState
	offset  int64
	err     error

	key     []byte
	frag    []byte
	started bool

	inEscape      bool
	hexDigits     int
	hexValue      rune
	highSurrogate rune

	num        []byte
	literal    string
	literalPos int
}

// NewScanner creates a scanner that delivers its events to h.
func NewScanner(h Handler) *Scanner {
	return &Scanner{
		handler: h,
		stack:   make([]byte, 0, 16),
		key:     make([]byte, 0, 32),
		frag:    make([]byte, 0, 256),
		num:     make([]byte, 0, 32),
	}
}

// Offset returns the number of bytes consumed so far.
func (s *Scanner) Offset() int64 {
	return s.offset
}

// Depth returns the current container nesting depth.
func (s *Scanner) Depth() int {
	return len(s.stack)
}

// Reset clears all state so the scanner can be reused for a new input.
func (s *Scanner) Reset() {
	s.stack = s.stack[:0]
	s.state = stateValue
	s.offset = 0
	s.err = nil
	s.key = s.key[:0]
	s.frag = s.frag[:0]
	s.started = false
	s.inEscape = false
	s.hexDigits = 0
	s.hexValue = 0
	s.highSurrogate = 0
	s.num = s.num[:0]
	s.literal = ""
	s.literalPos = 0
}

// Feed consumes the next fragment of input.
// A string value still open at the end of the fragment is flushed as a
// StringStart or StringCont event carrying the bytes decoded so far.
func (s *Scanner) Feed(data []byte) (Status, error) {
	if s.err != nil {
		return NeedMore, s.err
	}
	for i := 0; i < len(data); {
		advance, err := s.step(data[i])
		if err != nil {
			s.err = err
			return NeedMore, err
		}
		if advance {
			i++
			s.offset++
		}
	}
	if s.state == stateString {
		if err := s.flushFragment(); err != nil {
			s.err = err
			return NeedMore, err
		}
	}
	if s.state == stateDone {
		return Complete, nil
	}
	return NeedMore, nil
}

// Finish signals the end of input. A number at the root is completed here;
// any other unclosed value yields ErrUnexpectedEnd.
func (s *Scanner) Finish() error {
	if s.err != nil {
		return s.err
	}
	if s.state == stateNumber && len(s.stack) == 0 {
		if err := s.endNumber(); err != nil {
			s.err = err
			return err
		}
	}
	if s.state != stateDone {
		s.err = ErrUnexpectedEnd
		return s.err
	}
	return nil
}

func (s *Scanner) step(c byte) (bool, error) {
	switch s.state {
	case stateString, stateKey:
		return true, s.stringByte(c)
	case stateNumber:
		if isNumberByte(c) {
			s.num = append(s.num, c)
			return true, nil
		}
		return false, s.endNumber()
	case stateLiteral:
		if c != s.literal[s.literalPos] {
			return false, s.syntaxError(fmt.Sprintf("invalid character %q in literal %q", c, s.literal))
		}
		s.literalPos++
		if s.literalPos == len(s.literal) {
			return true, s.endLiteral()
		}
		return true, nil
	}

	if isSpace(c) {
		return true, nil
	}

	switch s.state {
	case stateValue:
		return true, s.beginValue(c)
	case stateArrayFirst:
		if c == ']' {
			return true, s.closeContainer('[')
		}
		return true, s.beginValue(c)
	case stateObjectFirst:
		if c == '}' {
			return true, s.closeContainer('{')
		}
		fallthrough
	case stateKeyStart:
		if c != '"' {
			return false, s.syntaxError(fmt.Sprintf("expected member name, found %q", c))
		}
		s.key = s.key[:0]
		s.state = stateKey
		return true, nil
	case stateColon:
		if c != ':' {
			return false, s.syntaxError(fmt.Sprintf("expected ':', found %q", c))
		}
		s.state = stateValue
		return true, nil
	case stateAfterValue:
		top := s.stack[len(s.stack)-1]
		switch {
		case c == ',' && top == '[':
			s.state = stateValue
		case c == ',' && top == '{':
			s.state = stateKeyStart
		case c == ']' && top == '[':
			return true, s.closeContainer('[')
		case c == '}' && top == '{':
			return true, s.closeContainer('{')
		default:
			return false, s.syntaxError(fmt.Sprintf("unexpected %q after value", c))
		}
		return true, nil
	case stateDone:
		return false, s.syntaxError("unexpected data after root value")
	}
	return false, s.syntaxError("invalid scanner state")
}

func (s *Scanner) beginValue(c byte) error {
	switch {
	case c == '{':
		if err := s.push(c); err != nil {
			return err
		}
		s.state = stateObjectFirst
		return s.emit(Event{Kind: ObjectStart})
	case c == '[':
		if err := s.push(c); err != nil {
			return err
		}
		s.state = stateArrayFirst
		return s.emit(Event{Kind: ArrayStart})
	case c == '"':
		s.frag = s.frag[:0]
		s.started = false
		s.state = stateString
	case c == '-' || isDigit(c):
		s.num = append(s.num[:0], c)
		s.state = stateNumber
	case c == 't':
		s.beginLiteral("true")
	case c == 'f':
		s.beginLiteral("false")
	case c == 'n':
		s.beginLiteral("null")
	default:
		return s.syntaxError(fmt.Sprintf("invalid character %q looking for value", c))
	}
	return nil
}

func (s *Scanner) beginLiteral(word string) {
	s.literal = word
	s.literalPos = 1
	s.state = stateLiteral
}

func (s *Scanner) endLiteral() error {
	s.afterValue()
	switch s.literal {
	case "true":
		return s.emit(Event{Kind: Bool, Bool: true})
	case "false":
		return s.emit(Event{Kind: Bool, Bool: false})
	default:
		return s.emit(Event{Kind: Null})
	}
}

func (s *Scanner) endNumber() error {
	text := s.num
	if !validNumber(text) {
		return s.syntaxError(fmt.Sprintf("invalid number %q", text))
	}
	s.afterValue()
	if !bytes.ContainsAny(text, ".eE") {
		if v, err := strconv.ParseInt(string(text), 10, 64); err == nil {
			return s.emit(Event{Kind: Integer, Int: v})
		}
	}
	f, err := strconv.ParseFloat(string(text), 64)
	if err != nil {
		return s.syntaxError(fmt.Sprintf("number %q out of range", text))
	}
	return s.emit(Event{Kind: Float, Float: f})
}

func (s *Scanner) stringByte(c byte) error {
	dst := &s.frag
	if s.state == stateKey {
		dst = &s.key
	}
	switch {
	case s.hexDigits > 0:
		v, ok := hexDigit(c)
		if !ok {
			return s.syntaxError(fmt.Sprintf("invalid character %q in \\u escape", c))
		}
		s.hexValue = s.hexValue<<4 | v
		s.hexDigits--
		if s.hexDigits == 0 {
			s.appendEscapedRune(dst, s.hexValue)
		}
		return nil
	case s.inEscape:
		s.inEscape = false
		if c == 'u' {
			s.hexDigits = 4
			s.hexValue = 0
			return nil
		}
		s.flushSurrogate(dst)
		switch c {
		case '"', '\\', '/':
			*dst = append(*dst, c)
		case 'b':
			*dst = append(*dst, '\b')
		case 'f':
			*dst = append(*dst, '\f')
		case 'n':
			*dst = append(*dst, '\n')
		case 'r':
			*dst = append(*dst, '\r')
		case 't':
			*dst = append(*dst, '\t')
		default:
			return s.syntaxError(fmt.Sprintf("invalid escape character %q", c))
		}
		return nil
	case c == '\\':
		s.inEscape = true
		return nil
	case c == '"':
		s.flushSurrogate(dst)
		if s.state == stateKey {
			s.state = stateColon
			return s.emit(Event{Kind: Key, Text: s.key})
		}
		return s.endString()
	case c < 0x20:
		return s.syntaxError("control character in string")
	default:
		s.flushSurrogate(dst)
		*dst = append(*dst, c)
		return nil
	}
}

func (s *Scanner) appendEscapedRune(dst *[]byte, r rune) {
	switch {
	case r >= 0xD800 && r < 0xDC00:
		s.flushSurrogate(dst)
		s.highSurrogate = r
	case r >= 0xDC00 && r < 0xE000:
		if s.highSurrogate != 0 {
			*dst = utf8.AppendRune(*dst, utf16.DecodeRune(s.highSurrogate, r))
			s.highSurrogate = 0
			return
		}
		*dst = utf8.AppendRune(*dst, utf8.RuneError)
	default:
		s.flushSurrogate(dst)
		*dst = utf8.AppendRune(*dst, r)
	}
}

// flushSurrogate writes a replacement character for an unpaired high surrogate.
func (s *Scanner) flushSurrogate(dst *[]byte) {
	if s.highSurrogate != 0 {
		*dst = utf8.AppendRune(*dst, utf8.RuneError)
		s.highSurrogate = 0
	}
}

func (s *Scanner) flushFragment() error {
	if !s.started {
		s.started = true
		err := s.emit(Event{Kind: StringStart, Text: s.frag})
		s.frag = s.frag[:0]
		return err
	}
	if len(s.frag) == 0 {
		return nil
	}
	err := s.emit(Event{Kind: StringCont, Text: s.frag})
	s.frag = s.frag[:0]
	return err
}

func (s *Scanner) endString() error {
	s.afterValue()
	if !s.started {
		if err := s.emit(Event{Kind: StringStart, Text: s.frag}); err != nil {
			return err
		}
		s.frag = s.frag[:0]
	}
	err := s.emit(Event{Kind: StringEnd, Text: s.frag})
	s.frag = s.frag[:0]
	s.started = false
	return err
}

func (s *Scanner) push(c byte) error {
	if len(s.stack) >= MaxDepth {
		return s.syntaxError("maximum nesting depth exceeded")
	}
	s.stack = append(s.stack, c)
	return nil
}

func (s *Scanner) closeContainer(open byte) error {
	s.stack = s.stack[:len(s.stack)-1]
	s.afterValue()
	if open == '{' {
		return s.emit(Event{Kind: ObjectEnd})
	}
	return s.emit(Event{Kind: ArrayEnd})
}

func (s *Scanner) afterValue() {
	if len(s.stack) == 0 {
		s.state = stateDone
		return
	}
	s.state = stateAfterValue
}

func (s *Scanner) emit(ev Event) error {
	return s.handler.HandleEvent(ev)
}

func (s *Scanner) syntaxError(msg string) error {
	return &SyntaxError{Offset: s.offset, Msg: msg}
}

// --- Helper Functions ---

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNumberByte(c byte) bool {
	return isDigit(c) || c == '-' || c == '+' || c == '.' || c == 'e' || c == 'E'
}

func hexDigit(c byte) (rune, bool) {
	switch {
	case c >= '0' && c <= '9':
		return rune(c - '0'), true
	case c >= 'a' && c <= 'f':
		return rune(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return rune(c-'A') + 10, true
	}
	return 0, false
}

// validNumber checks the JSON number grammar:
// '-'? ('0' | [1-9][0-9]*) ('.' [0-9]+)? ([eE] [+-]? [0-9]+)?
func validNumber(b []byte) bool {
	i := 0
	if i < len(b) && b[i] == '-' {
		i++
	}
	switch {
	case i < len(b) && b[i] == '0':
		i++
	case i < len(b) && b[i] >= '1' && b[i] <= '9':
		for i < len(b) && isDigit(b[i]) {
			i++
		}
	default:
		return false
	}
	if i < len(b) && b[i] == '.' {
		i++
		start := i
		for i < len(b) && isDigit(b[i]) {
			i++
		}
		if i == start {
			return false
		}
	}
	if i < len(b) && (b[i] == 'e' || b[i] == 'E') {
		i++
		if i < len(b) && (b[i] == '+' || b[i] == '-') {
			i++
		}
		start := i
		for i < len(b) && isDigit(b[i]) {
			i++
		}
		if i == start {
			return false
		}
	}
	return i == len(b)
}

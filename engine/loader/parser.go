package loader

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-gltf/engine/document"
	"github.com/Carmen-Shannon/oxy-gltf/engine/jsonevent"
)

// Common errors returned by the parser and the container reader
var (
	ErrFormat            = errors.New("invalid container format")
	ErrTruncatedInput    = errors.New("truncated input")
	ErrTokenizer         = errors.New("malformed JSON")
	ErrUnresolvedKeyword = errors.New("unresolved keyword")
	ErrMissingJSONChunk  = errors.New("container missing JSON chunk")
	ErrAccessor          = errors.New("invalid accessor read")
	ErrNumberRange       = errors.New("number out of range")
)

// Status reports the progress of a Parser after a Feed.
type Status uint8

const (
	// StatusMoreInput means the document is not finished and more input is expected.
	StatusMoreInput Status = iota
	// StatusError means the parse failed; the document contents are unspecified.
	StatusError
	// StatusComplete means the root object closed and the document is fully populated.
	StatusComplete
)

func (s Status) String() string {
	switch s {
	case StatusMoreInput:
		return "MORE_INPUT"
	case StatusError:
		return "ERROR"
	case StatusComplete:
		return "COMPLETE"
	default:
		return fmt.Sprintf("STATUS(%d)", uint8(s))
	}
}

// Parser incrementally parses glTF JSON text into a document. Input may be
// split at any byte boundary; the resulting document does not depend on how
// it was split.
type Parser struct {
	mapper  *Mapper
	scanner *jsonevent.Scanner
	err     error
}

// NewParser creates a Parser that fills doc.
//
// Parameters:
//   - doc: the destination document, normally fresh from document.New
//   - options: a variadic list of ParserBuilderOption functions
//
// Returns:
//   - *Parser: a parser ready for the first fragment
func NewParser(doc *document.Document, options ...ParserBuilderOption) *Parser {
	m := NewMapper(doc, options...)
	return &Parser{
		mapper:  m,
		scanner: jsonevent.NewScanner(m),
	}
}

// Document returns the destination document.
func (p *Parser) Document() *document.Document {
	return p.mapper.Document()
}

// Feed consumes the next fragment of JSON text.
//
// Parameters:
//   - data: the next bytes of input, possibly empty
//
// Returns:
//   - Status: StatusMoreInput, StatusComplete, or StatusError
//   - error: ErrTokenizer wrapping a *jsonevent.SyntaxError, ErrUnresolvedKeyword
//     under KeywordStrict, or the error from an earlier failed call
func (p *Parser) Feed(data []byte) (Status, error) {
	if p.err != nil {
		return StatusError, p.err
	}

	st, err := p.scanner.Feed(data)
	if err != nil {
		p.err = classify(err)
		return StatusError, p.err
	}
	if st == jsonevent.Complete {
		return StatusComplete, nil
	}
	return StatusMoreInput, nil
}

// Finish signals the end of input. It fails with ErrTruncatedInput when the
// root value never closed.
//
// Returns:
//   - error: error if the document is incomplete or the parse already failed
func (p *Parser) Finish() error {
	if p.err != nil {
		return p.err
	}
	if err := p.scanner.Finish(); err != nil {
		p.err = classify(err)
		return p.err
	}
	return nil
}

// ParseBytes parses a complete JSON text into doc in a single feed.
//
// Parameters:
//   - doc: the destination document
//   - data: the whole JSON text
//   - options: a variadic list of ParserBuilderOption functions
//
// Returns:
//   - error: error if parsing fails
func ParseBytes(doc *document.Document, data []byte, options ...ParserBuilderOption) error {
	p := NewParser(doc, options...)
	if _, err := p.Feed(data); err != nil {
		return err
	}
	return p.Finish()
}

// classify maps scanner failures onto the parser's error kinds. Errors raised
// by the mapper already carry their kind and pass through unchanged.
func classify(err error) error {
	var syntaxErr *jsonevent.SyntaxError
	switch {
	case errors.Is(err, jsonevent.ErrUnexpectedEnd):
		return fmt.Errorf("%w: %w", ErrTruncatedInput, err)
	case errors.As(err, &syntaxErr):
		return fmt.Errorf("%w: %w", ErrTokenizer, err)
	default:
		return err
	}
}

package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gltf/engine/document"
	"github.com/Carmen-Shannon/oxy-gltf/engine/jsonevent"
)

// Mapper fills a document from a stream of JSON events. It tracks the current
// path on a stack, routes value events to the field assigner registered for
// that path, and commits a record whenever an array element object closes.
// Anything outside the route table is skipped with its whole subtree.
//
// A Mapper is single use and not safe for concurrent use. After it returns an
// error every later call returns the same error.
type Mapper struct {
	doc     *document.Document
	policy  KeywordPolicy
	root    *pathNode
	stack   []frame
	scratch scratch
	done    bool
	err     error
}

var _ jsonevent.Handler = &Mapper{}

// NewMapper creates a Mapper that appends into doc.
//
// Parameters:
//   - doc: the destination document, normally fresh from document.New
//   - options: a variadic list of ParserBuilderOption functions
//
// Returns:
//   - *Mapper: a mapper ready for the first event
func NewMapper(doc *document.Document, options ...ParserBuilderOption) *Mapper {
	m := &Mapper{
		doc:   doc,
		stack: make([]frame, 0, 16),
	}
	for _, option := range options {
		option(m)
	}

	m.scratch.reset()
	m.root = compileRoutes(m.routes())
	return m
}

// Document returns the destination document.
func (m *Mapper) Document() *document.Document {
	return m.doc
}

// Complete reports whether the root value has been closed.
func (m *Mapper) Complete() bool {
	return m.done
}

// Err returns the error that stopped the mapper, if any.
func (m *Mapper) Err() error {
	return m.err
}

// HandleEvent consumes one event.
//
// Parameters:
//   - ev: the next event in document order
//
// Returns:
//   - error: ErrUnresolvedKeyword under KeywordStrict, ErrTokenizer for an
//     event sequence that is not well nested, or the first error seen before
func (m *Mapper) HandleEvent(ev jsonevent.Event) error {
	if m.err != nil {
		return m.err
	}
	if err := m.dispatch(ev); err != nil {
		m.err = err
		return err
	}
	return nil
}

func (m *Mapper) dispatch(ev jsonevent.Event) error {
	if m.done {
		return fmt.Errorf("%w: %s after the root value", ErrTokenizer, ev.Kind)
	}

	switch ev.Kind {
	case jsonevent.ObjectStart:
		m.stack = append(m.stack, frame{node: m.valueNode()})

	case jsonevent.ArrayStart:
		n := m.valueNode()
		if n != nil {
			if a, ok := n.field.(arrayAssigner); ok {
				a.beginArray()
			}
		}
		m.stack = append(m.stack, frame{node: n, array: true})

	case jsonevent.Key:
		if len(m.stack) == 0 || m.stack[len(m.stack)-1].array {
			return fmt.Errorf("%w: key outside an object", ErrTokenizer)
		}
		top := &m.stack[len(m.stack)-1]
		top.member = nil
		if top.node == nil {
			return nil
		}
		if ma, ok := top.node.field.(memberAssigner); ok {
			return ma.beginMember(ev.Text)
		}
		top.member = top.node.members[string(ev.Text)]

	case jsonevent.ObjectEnd, jsonevent.ArrayEnd:
		if len(m.stack) == 0 || m.stack[len(m.stack)-1].array != (ev.Kind == jsonevent.ArrayEnd) {
			return fmt.Errorf("%w: unbalanced %s", ErrTokenizer, ev.Kind)
		}
		f := m.stack[len(m.stack)-1]
		m.stack = m.stack[:len(m.stack)-1]
		if ev.Kind == jsonevent.ObjectEnd && f.node != nil && f.node.commit != nil {
			f.node.commit()
		}
		m.done = len(m.stack) == 0

	default:
		if err := m.deliver(ev); err != nil {
			return err
		}
		if len(m.stack) == 0 && ev.Kind != jsonevent.StringStart && ev.Kind != jsonevent.StringCont {
			m.done = true
		}
	}
	return nil
}

// valueNode returns the route node of a value starting at the current position.
func (m *Mapper) valueNode() *pathNode {
	if len(m.stack) == 0 {
		return m.root
	}
	top := &m.stack[len(m.stack)-1]
	if top.node == nil {
		return nil
	}
	if top.array {
		return top.node.elem
	}
	return top.member
}

// deliver hands a value event to its field assigner. Elements of an array and
// members of an object go to the container's own assigner when it collects them.
func (m *Mapper) deliver(ev jsonevent.Event) error {
	if len(m.stack) > 0 {
		top := &m.stack[len(m.stack)-1]
		if top.node != nil {
			switch a := top.node.field.(type) {
			case arrayAssigner:
				if top.array {
					return a.assign(ev)
				}
			case memberAssigner:
				if !top.array {
					return a.assign(ev)
				}
			}
		}
	}

	n := m.valueNode()
	if n == nil || n.field == nil {
		return nil
	}
	return n.field.assign(ev)
}

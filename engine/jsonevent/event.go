// Package jsonevent defines the push-style JSON event vocabulary consumed by the
// document mapper, and a resumable scanner that produces it from arbitrarily
// split byte fragments.
package jsonevent

import "fmt"

// Kind identifies the type of a JSON event.
type Kind uint8

const (
	KindNone    Kind = iota
	ObjectStart      // {
	ObjectEnd        // }
	ArrayStart       // [
	ArrayEnd         // ]
	Key              // member name, always delivered whole
	StringStart      // first fragment of a string value
	StringCont       // middle fragment of a string value
	StringEnd        // last fragment of a string value
	Integer          // number without fraction or exponent
	Float            // any other number
	Bool             // true or false
	Null             // null
)

// String returns the event kind name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "NONE"
	case ObjectStart:
		return "OBJECT_START"
	case ObjectEnd:
		return "OBJECT_END"
	case ArrayStart:
		return "ARRAY_START"
	case ArrayEnd:
		return "ARRAY_END"
	case Key:
		return "KEY"
	case StringStart:
		return "STRING_START"
	case StringCont:
		return "STRING_CONT"
	case StringEnd:
		return "STRING_END"
	case Integer:
		return "INTEGER"
	case Float:
		return "FLOAT"
	case Bool:
		return "BOOL"
	case Null:
		return "NULL"
	default:
		return fmt.Sprintf("KIND(%d)", uint8(k))
	}
}

// IsString reports whether the kind is one of the string fragment kinds.
func (k Kind) IsString() bool {
	return k == StringStart || k == StringCont || k == StringEnd
}

// IsNumber reports whether the kind carries a numeric value.
func (k Kind) IsNumber() bool {
	return k == Integer || k == Float
}

// Event is a single structural or value event.
// Text is only valid for the duration of the HandleEvent call; handlers must copy what they keep.
type Event struct {
	Kind  Kind
	Text  []byte  // Key and string fragments
	Int   int64   // Integer
	Float float64 // Float
	Bool  bool    // Bool
}

// Number returns the numeric payload as float64 for Integer and Float events,
// the 0/1 value of a Bool event, and zero otherwise.
func (e Event) Number() float64 {
	switch e.Kind {
	case Integer:
		return float64(e.Int)
	case Float:
		return e.Float
	case Bool:
		if e.Bool {
			return 1
		}
	}
	return 0
}

// Handler receives events in document order.
// Returning an error stops the producer, which reports that error unchanged.
type Handler interface {
	HandleEvent(ev Event) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ev Event) error

// HandleEvent calls f(ev).
func (f HandlerFunc) HandleEvent(ev Event) error {
	return f(ev)
}

// Status reports the progress of a producer after consuming a fragment.
type Status uint8

const (
	// NeedMore means the root value is not yet closed.
	NeedMore Status = iota
	// Complete means the root value has been closed.
	Complete
)

func (s Status) String() string {
	if s == Complete {
		return "COMPLETE"
	}
	return "NEED_MORE"
}

// SyntaxError reports malformed JSON input.
type SyntaxError struct {
	Offset int64 // byte offset of the offending byte from the start of the input
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("json syntax error at offset %d: %s", e.Offset, e.Msg)
}

package loader

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-gltf/common"
	"github.com/Carmen-Shannon/oxy-gltf/engine/document"
	"github.com/Carmen-Shannon/oxy-gltf/engine/jsonevent"

	"golang.org/x/exp/constraints"
)

// number is the set of numeric field types a numeric event can be stored into.
type number interface {
	constraints.Integer | constraints.Float
}

// fieldAssigner stores value events into one destination slot of the current record.
// Events of a kind the field does not expect are ignored.
type fieldAssigner interface {
	assign(ev jsonevent.Event) error
}

// arrayAssigner is a fieldAssigner that receives the elements of an array value.
type arrayAssigner interface {
	fieldAssigner
	beginArray()
}

// memberAssigner is a fieldAssigner that receives the members of an object value,
// each key announced through beginMember before its value.
type memberAssigner interface {
	fieldAssigner
	beginMember(key []byte) error
}

var (
	_ fieldAssigner  = &numberField[uint32]{}
	_ fieldAssigner  = &boolField{}
	_ fieldAssigner  = &stringField{}
	_ arrayAssigner  = &vectorField{}
	_ arrayAssigner  = &listField[uint32]{}
	_ fieldAssigner  = &keywordField[document.AlphaMode]{}
	_ memberAssigner = &attributeField{}
)

// --- Scalars ---

// numberField converts integer and float events to T.
// A value T cannot hold fails with ErrNumberRange.
type numberField[T number] struct {
	dst *T
}

func newNumberField[T number](dst *T) *numberField[T] {
	return &numberField[T]{dst: dst}
}

func (f *numberField[T]) assign(ev jsonevent.Event) error {
	v, ok, err := toNumber[T](ev)
	if ok {
		*f.dst = v
	}
	return err
}

// boolField accepts booleans, and numbers as nonzero-is-true.
type boolField struct {
	dst *bool
}

func (f *boolField) assign(ev jsonevent.Event) error {
	switch ev.Kind {
	case jsonevent.Bool:
		*f.dst = ev.Bool
	case jsonevent.Integer, jsonevent.Float:
		*f.dst = ev.Number() != 0
	}
	return nil
}

// stringField concatenates string fragments and stores the result on StringEnd.
type stringField struct {
	dst *string
	buf []byte
}

func (f *stringField) assign(ev jsonevent.Event) error {
	switch ev.Kind {
	case jsonevent.StringStart:
		f.buf = append(f.buf[:0], ev.Text...)
	case jsonevent.StringCont:
		f.buf = append(f.buf, ev.Text...)
	case jsonevent.StringEnd:
		f.buf = append(f.buf, ev.Text...)
		*f.dst = string(f.buf)
		f.buf = f.buf[:0]
	}
	return nil
}

// --- Collections ---

// vectorField writes successive numbers into a fixed-size destination.
// The write position restarts at zero for every array and wraps once all
// components are written, so surplus values overwrite from the start.
type vectorField struct {
	dst  []float32
	idx  int
	seen *bool
}

func (f *vectorField) beginArray() {
	f.idx = 0
}

func (f *vectorField) assign(ev jsonevent.Event) error {
	if !ev.Kind.IsNumber() || len(f.dst) == 0 {
		return nil
	}
	f.dst[f.idx] = float32(ev.Number())
	f.idx = (f.idx + 1) % len(f.dst)
	if f.seen != nil {
		*f.seen = true
	}
	return nil
}

// listField appends every number of an array to a growable list.
type listField[T number] struct {
	dst *[]T
}

func newListField[T number](dst *[]T) *listField[T] {
	return &listField[T]{dst: dst}
}

func (f *listField[T]) beginArray() {
	*f.dst = (*f.dst)[:0]
}

func (f *listField[T]) assign(ev jsonevent.Event) error {
	v, ok, err := toNumber[T](ev)
	if ok {
		*f.dst = append(*f.dst, v)
	}
	return err
}

// --- Keywords ---

// keywordField classifies a string value against a keyword set and stores the index.
// An unresolved value leaves the destination at its default.
type keywordField[T ~uint8] struct {
	dst      *T
	resolver *KeywordResolver
	path     string
	policy   KeywordPolicy
}

func newKeywordField[T ~uint8](dst *T, path string, policy KeywordPolicy, words []string) *keywordField[T] {
	return &keywordField[T]{
		dst:      dst,
		resolver: NewKeywordResolver(words...),
		path:     path,
		policy:   policy,
	}
}

func (f *keywordField[T]) assign(ev jsonevent.Event) error {
	switch ev.Kind {
	case jsonevent.StringStart:
		f.resolver.Reset()
		f.resolver.Feed(ev.Text)
	case jsonevent.StringCont:
		f.resolver.Feed(ev.Text)
	case jsonevent.StringEnd:
		f.resolver.Feed(ev.Text)
		idx := f.resolver.Resolve()
		if idx == Unresolved {
			return unresolvedKeyword(f.policy, f.path)
		}
		*f.dst = T(idx)
	}
	return nil
}

// attributeField maps the members of a primitive's attributes object.
// Member names are classified as attribute kinds; each kind appears at most
// once and a repeated kind replaces the earlier accessor. Names starting with
// an underscore are skipped without consulting the keyword policy.
type attributeField struct {
	dst      *[]document.AttributeRef
	resolver *KeywordResolver
	path     string
	policy   KeywordPolicy
	pending  int
}

func newAttributeField(dst *[]document.AttributeRef, path string, policy KeywordPolicy) *attributeField {
	return &attributeField{
		dst:      dst,
		resolver: NewKeywordResolver(document.AttributeNames...),
		path:     path,
		policy:   policy,
		pending:  Unresolved,
	}
}

func (f *attributeField) beginMember(key []byte) error {
	f.pending = Unresolved
	if len(key) > 0 && key[0] == '_' {
		// application-specific semantic
		return nil
	}
	f.pending = f.resolver.Classify(key)
	if f.pending == Unresolved {
		return unresolvedKeyword(f.policy, fmt.Sprintf("%s.%s", f.path, key))
	}
	return nil
}

func (f *attributeField) assign(ev jsonevent.Event) error {
	if f.pending == Unresolved {
		return nil
	}
	accessor, ok, err := toNumber[uint32](ev)
	if err != nil || !ok {
		return err
	}
	ref := document.AttributeRef{
		Kind:     document.Attribute(f.pending),
		Accessor: accessor,
	}
	f.pending = Unresolved

	for i := range *f.dst {
		if (*f.dst)[i].Kind == ref.Kind {
			(*f.dst)[i] = ref
			return nil
		}
	}
	*f.dst = append(*f.dst, ref)
	return nil
}

// --- Helper Functions ---

// toNumber converts a numeric event to T. It reports false for any other event kind.
// Integer fields truncate fractions and reject values outside their range.
func toNumber[T number](ev jsonevent.Event) (T, bool, error) {
	var zero T
	if !ev.Kind.IsNumber() {
		return zero, false, nil
	}
	if isFloat[T]() {
		return T(ev.Number()), true, nil
	}

	i := ev.Int
	if ev.Kind == jsonevent.Float {
		if math.IsNaN(ev.Float) || ev.Float < math.MinInt64 || ev.Float >= math.MaxInt64 {
			return zero, false, fmt.Errorf("%w: %g", ErrNumberRange, ev.Float)
		}
		i = int64(ev.Float)
	}
	v := T(i)
	if int64(v) != i || (v < 0) != (i < 0) {
		return zero, false, fmt.Errorf("%w: %d", ErrNumberRange, i)
	}
	return v, true, nil
}

// isFloat reports whether T is a floating point type.
func isFloat[T number]() bool {
	half := 0.5
	return T(half) != 0
}

// unresolvedKeyword applies the keyword policy to a value that matched no keyword.
func unresolvedKeyword(policy KeywordPolicy, path string) error {
	if policy == KeywordStrict {
		return fmt.Errorf("%w: %s", ErrUnresolvedKeyword, path)
	}
	common.LogWarn("unresolved keyword at %s, keeping default", path)
	return nil
}

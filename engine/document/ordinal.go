package document

import "strconv"

// Ordinal is an optional index into one of the document's vectors.
// None marks an absent reference; on the wire it is the -1 sentinel.
type Ordinal int64

// None is the absent reference.
const None Ordinal = -1

// Some returns the ordinal for index i.
func Some(i int) Ordinal {
	return Ordinal(i)
}

// Valid reports whether the ordinal references an entry.
func (o Ordinal) Valid() bool {
	return o >= 0
}

// Get returns the index and whether it is set.
func (o Ordinal) Get() (int, bool) {
	if o < 0 {
		return 0, false
	}
	return int(o), true
}

// Int64 returns the wire value, -1 when absent.
func (o Ordinal) Int64() int64 {
	if o < 0 {
		return -1
	}
	return int64(o)
}

func (o Ordinal) String() string {
	if o < 0 {
		return "none"
	}
	return strconv.Itoa(int(o))
}

package loader

// Unresolved is the classification result when no keyword matched.
const Unresolved = -1

// deadCandidate marks a keyword that can no longer match the current value.
const deadCandidate = -1

// KeywordResolver classifies a string value against a fixed, ordered set of
// keywords while the string arrives in fragments. It keeps one matched-byte
// offset per candidate and never buffers the value itself.
type KeywordResolver struct {
	words   []string
	matched []int
}

// NewKeywordResolver creates a resolver over words. The index of a word is its classification.
//
// Parameters:
//   - words: the candidate keywords in declaration order
//
// Returns:
//   - *KeywordResolver: a resolver ready for the first value
func NewKeywordResolver(words ...string) *KeywordResolver {
	return &KeywordResolver{
		words:   words,
		matched: make([]int, len(words)),
	}
}

// Reset returns every candidate to zero progress.
func (k *KeywordResolver) Reset() {
	for i := range k.matched {
		k.matched[i] = 0
	}
}

// Feed advances every live candidate by one fragment of the current value.
// A candidate whose next bytes differ from the fragment, or that would run
// past its own length, is marked dead.
//
// Parameters:
//   - fragment: the next bytes of the string value, possibly empty
func (k *KeywordResolver) Feed(fragment []byte) {
	if len(fragment) == 0 {
		return
	}
	for i, word := range k.words {
		off := k.matched[i]
		if off == deadCandidate {
			continue
		}
		end := off + len(fragment)
		if end > len(word) || word[off:end] != string(fragment) {
			k.matched[i] = deadCandidate
			continue
		}
		k.matched[i] = end
	}
}

// Resolve returns the index of the first candidate whose whole text matched,
// or Unresolved, then resets the resolver for the next value.
//
// Returns:
//   - int: the keyword index or Unresolved
func (k *KeywordResolver) Resolve() int {
	result := Unresolved
	for i, word := range k.words {
		if k.matched[i] == len(word) {
			result = i
			break
		}
	}
	k.Reset()
	return result
}

// Classify resolves a complete value in one step.
//
// Parameters:
//   - value: the whole string value
//
// Returns:
//   - int: the keyword index or Unresolved
func (k *KeywordResolver) Classify(value []byte) int {
	k.Reset()
	k.Feed(value)
	return k.Resolve()
}

// Keyword returns the text of keyword i, or "" when i is out of range.
func (k *KeywordResolver) Keyword(i int) string {
	if i < 0 || i >= len(k.words) {
		return ""
	}
	return k.words[i]
}

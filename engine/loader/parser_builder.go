package loader

// KeywordPolicy decides what happens to an enumerated string field whose value matches no keyword.
type KeywordPolicy uint8

const (
	// KeywordLenient keeps the field's default and logs a warning.
	KeywordLenient KeywordPolicy = iota
	// KeywordStrict fails the parse with ErrUnresolvedKeyword.
	KeywordStrict
)

func (p KeywordPolicy) String() string {
	if p == KeywordStrict {
		return "strict"
	}
	return "lenient"
}

// ParserBuilderOption is a functional option for configuring a Mapper or Parser.
type ParserBuilderOption func(*Mapper)

// WithKeywordPolicy is an option builder that sets the unresolved keyword policy.
//
// The policy also covers primitive attribute names. Only POSITION, NORMAL,
// TANGENT, TEXCOORD_0, TEXCOORD_1, COLOR_0, JOINTS_0 and WEIGHTS_0 have a slot,
// so under KeywordStrict other valid names such as TEXCOORD_2 or JOINTS_1 fail
// the parse. Application-specific names starting with an underscore are
// always skipped.
//
// Parameters:
//   - policy: KeywordLenient or KeywordStrict
//
// Returns:
//   - ParserBuilderOption: a function that applies the policy to a mapper
func WithKeywordPolicy(policy KeywordPolicy) ParserBuilderOption {
	return func(m *Mapper) {
		m.policy = policy
	}
}

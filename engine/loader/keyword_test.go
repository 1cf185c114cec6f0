package loader

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gltf/engine/document"
	"github.com/stretchr/testify/assert"
)

func TestKeywordResolverFragments(t *testing.T) {
	k := NewKeywordResolver(document.InterpolationNames...)

	k.Feed([]byte("CUB"))
	k.Feed([]byte("ICSP"))
	k.Feed([]byte("LINE"))
	assert.Equal(t, int(document.InterpolationCubicSpline), k.Resolve())

	k.Feed([]byte("LIN"))
	k.Feed([]byte(""))
	k.Feed([]byte("EAR"))
	assert.Equal(t, int(document.InterpolationLinear), k.Resolve())
}

func TestKeywordResolverClassify(t *testing.T) {
	k := NewKeywordResolver(document.AccessorTypeNames...)

	tests := []struct {
		value string
		want  int
	}{
		{"SCALAR", int(document.AccessorScalar)},
		{"VEC3", int(document.AccessorVec3)},
		{"MAT4", int(document.AccessorMat4)},
		{"BOGUS", Unresolved},
		{"VEC", Unresolved},
		{"VEC33", Unresolved},
		{"vec3", Unresolved},
		{"", Unresolved},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, k.Classify([]byte(tt.value)))
		})
	}
}

func TestKeywordResolverEverySplit(t *testing.T) {
	k := NewKeywordResolver(document.AttributeNames...)
	for want, name := range document.AttributeNames {
		for i := 0; i <= len(name); i++ {
			k.Feed([]byte(name[:i]))
			k.Feed([]byte(name[i:]))
			assert.Equal(t, want, k.Resolve(), "%s split at %d", name, i)
		}
	}
}

func TestKeywordResolverResetsBetweenValues(t *testing.T) {
	k := NewKeywordResolver(document.PathTypeNames...)

	k.Feed([]byte("BOGUS"))
	assert.Equal(t, Unresolved, k.Resolve())

	// a dead candidate must not leak into the next value
	k.Feed([]byte("scale"))
	assert.Equal(t, int(document.PathScale), k.Resolve())
}

func TestKeywordResolverFirstMatchWins(t *testing.T) {
	k := NewKeywordResolver("A", "B", "A")
	assert.Equal(t, 0, k.Classify([]byte("A")))
	assert.Equal(t, "B", k.Keyword(1))
	assert.Equal(t, "", k.Keyword(3))
}

package document

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gltf/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdinal(t *testing.T) {
	idx, ok := None.Get()
	assert.False(t, ok)
	assert.Zero(t, idx)
	assert.False(t, None.Valid())
	assert.EqualValues(t, -1, None.Int64())
	assert.Equal(t, "none", None.String())

	idx, ok = Some(3).Get()
	assert.True(t, ok)
	assert.Equal(t, 3, idx)
	assert.Equal(t, "3", Some(3).String())
}

func TestBufferVariants(t *testing.T) {
	switch b := NewBuffer("", 64, "").(type) {
	case EmbeddedBuffer:
		assert.EqualValues(t, 64, b.ByteLength)
	default:
		t.Fatalf("expected EmbeddedBuffer, got %T", b)
	}

	switch b := NewBuffer("data", 128, "data.bin").(type) {
	case ExternalBuffer:
		assert.EqualValues(t, 128, b.Length())
		assert.Equal(t, "data.bin", b.URI)
	default:
		t.Fatalf("expected ExternalBuffer, got %T", b)
	}
}

func TestImageVariants(t *testing.T) {
	img := NewImage("albedo", "", "image/png", Some(2))
	require.IsType(t, EmbeddedImage{}, img)
	assert.EqualValues(t, 2, img.(EmbeddedImage).BufferView)
	assert.Equal(t, "albedo", img.ImageName())

	img = NewImage("normal", "normal.png", "", None)
	require.IsType(t, ExternalImage{}, img)
	assert.Equal(t, "normal.png", img.(ExternalImage).URI)
}

func TestAttributeFlags(t *testing.T) {
	assert.Equal(t, FlagPosition, AttributePosition.Flag())
	assert.Equal(t, AttributeFlag(1<<7), AttributeWeights0.Flag())

	f := FlagPosition | FlagNormal
	assert.True(t, f.Has(FlagPosition))
	assert.True(t, f.Has(FlagPosition|FlagNormal))
	assert.False(t, f.Has(FlagTangent))

	p := Primitive{Attributes: []AttributeRef{{Kind: AttributeNormal, Accessor: 4}}}
	acc, ok := p.Attribute(AttributeNormal)
	assert.True(t, ok)
	assert.EqualValues(t, 4, acc)
	_, ok = p.Attribute(AttributePosition)
	assert.False(t, ok)
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "VEC3", AccessorVec3.String())
	assert.Equal(t, 16, AccessorMat4.Components())
	assert.Equal(t, "FLOAT", ComponentFloat.String())
	assert.Equal(t, 4, ComponentFloat.Size())
	assert.Equal(t, "COMPONENT(1)", ComponentType(1).String())
	assert.Equal(t, "CUBICSPLINE", InterpolationCubicSpline.String())
	assert.Equal(t, "translation", PathTranslation.String())
	assert.Equal(t, "MASK", AlphaMask.String())
	assert.Equal(t, "TRIANGLES", ModeTriangles.String())
}

func TestLocalMatrix(t *testing.T) {
	n := Node{
		Rotation:    common.IdentityQuat(),
		Scale:       common.Vec3{2, 3, 4},
		Translation: common.Vec3{1, 2, 3},
	}
	m := n.LocalMatrix()
	assert.Equal(t, common.Mat4{
		2, 0, 0, 0,
		0, 3, 0, 0,
		0, 0, 4, 0,
		1, 2, 3, 1,
	}, m)

	n.HasMatrix = true
	n.Matrix = common.IdentityMat4()
	assert.Equal(t, common.IdentityMat4(), n.LocalMatrix())
}

func TestWorldMatrices(t *testing.T) {
	doc := New()
	doc.Nodes = []Node{
		{Rotation: common.IdentityQuat(), Scale: common.OneVec3(), Translation: common.Vec3{1, 0, 0}, Children: []uint32{1, 7}},
		{Rotation: common.IdentityQuat(), Scale: common.OneVec3(), Translation: common.Vec3{0, 2, 0}, Children: []uint32{0}},
	}
	doc.Scenes = []Scene{{Nodes: []uint32{0}}}

	world := doc.WorldMatrices()
	require.Len(t, world, 2)
	assert.Equal(t, common.Vec3{1, 0, 0}, common.Vec3{world[0][12], world[0][13], world[0][14]})
	assert.Equal(t, common.Vec3{1, 2, 0}, common.Vec3{world[1][12], world[1][13], world[1][14]})
}

func TestStats(t *testing.T) {
	doc := New()
	assert.Equal(t, None, doc.Scene)
	doc.Meshes = []Mesh{{Primitives: make([]Primitive, 2)}, {Primitives: make([]Primitive, 1)}}
	doc.Nodes = make([]Node, 4)

	s := doc.Stats()
	assert.Equal(t, 2, s.Meshes)
	assert.Equal(t, 3, s.Primitives)
	assert.Equal(t, 4, s.Nodes)
}

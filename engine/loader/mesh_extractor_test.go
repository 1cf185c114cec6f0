package loader

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gltf/common"
	"github.com/Carmen-Shannon/oxy-gltf/engine/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeshExtractorTriangle(t *testing.T) {
	meshes, err := NewMeshExtractor(loadTriangle(t)).ExtractAllMeshes()
	require.NoError(t, err)
	require.Len(t, meshes, 1)

	m := meshes[0]
	assert.Equal(t, "tri", m.Name)
	assert.Equal(t, document.ModeTriangles, m.Mode)
	assert.Equal(t, document.None, m.Material)
	assert.Equal(t, []uint32{0, 1, 2}, m.Indices)
	assert.Nil(t, m.TexCoords)
	assert.Nil(t, m.Colors)

	assert.True(t, m.GeneratedNormals)
	assert.Equal(t, []common.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}}, m.Normals)
	assert.Equal(t, common.Vec3{0, 0, 0}, m.BoundsMin)
	assert.Equal(t, common.Vec3{1, 1, 0}, m.BoundsMax)
}

func TestMeshExtractorColorsAndSequentialIndices(t *testing.T) {
	// two positions followed by two normalized unsigned byte RGB colors
	bin := make([]byte, 0, 32)
	for _, f := range []float32{0, 0, 0, 2, -1, 3} {
		bin = append(bin, float32Bytes(f)...)
	}
	bin = append(bin, 255, 0, 51, 0, 255, 0, 0, 0)

	doc := document.New()
	doc.Buffers = []document.Buffer{document.EmbeddedBuffer{ByteLength: uint32(len(bin))}}
	doc.BufferViews = []document.BufferView{{ByteLength: 24}, {ByteOffset: 24, ByteLength: 6}}
	doc.Accessors = []document.Accessor{
		{BufferView: document.Some(0), Count: 2, ComponentType: document.ComponentFloat, Type: document.AccessorVec3},
		{BufferView: document.Some(1), Count: 2, ComponentType: document.ComponentUnsignedByte, Type: document.AccessorVec3, Normalized: true},
	}
	doc.Meshes = []document.Mesh{{Primitives: []document.Primitive{
		{Mode: document.ModeTriangles},
		{
			Mode:     document.ModeLines,
			Indices:  document.None,
			Material: document.Some(3),
			Attributes: []document.AttributeRef{
				{Kind: document.AttributePosition, Accessor: 0},
				{Kind: document.AttributeColor0, Accessor: 1},
			},
		},
	}}}

	e := NewMeshExtractor(&Asset{Document: doc, Binary: [][]byte{bin}})

	_, err := e.ExtractMesh(0)
	assert.ErrorIs(t, err, ErrAccessor)
	assert.ErrorContains(t, err, "POSITION")

	_, err = e.ExtractMesh(5)
	assert.ErrorIs(t, err, ErrAccessor)

	doc.Meshes[0].Primitives = doc.Meshes[0].Primitives[1:]
	meshes, err := e.ExtractMesh(0)
	require.NoError(t, err)
	require.Len(t, meshes, 1)

	m := meshes[0]
	assert.Equal(t, "mesh_0", m.Name)
	assert.Equal(t, document.Some(3), m.Material)
	assert.Equal(t, []uint32{0, 1}, m.Indices)
	assert.Nil(t, m.Normals)
	assert.False(t, m.GeneratedNormals)
	assert.Equal(t, []common.Vec4{{1, 0, 0.2, 1}, {0, 1, 0, 1}}, m.Colors)
	assert.Equal(t, common.Vec3{0, -1, 0}, m.BoundsMin)
	assert.Equal(t, common.Vec3{2, 0, 3}, m.BoundsMax)
}

func TestGenerateNormalsDegenerate(t *testing.T) {
	positions := []common.Vec3{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}, {5, 5, 5}}
	normals := generateNormals(positions, []uint32{0, 1, 2, 0, 1, 9})
	assert.Equal(t, []common.Vec3{{0, 1, 0}, {0, 1, 0}, {0, 1, 0}, {0, 1, 0}}, normals)
}

package loader

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gltf/common"
	"github.com/Carmen-Shannon/oxy-gltf/engine/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skinnedAsset() *Asset {
	scaled := common.IdentityMat4()
	scaled[0], scaled[5], scaled[10] = 2, 2, 2

	var bin []byte
	for _, m := range []common.Mat4{scaled, common.IdentityMat4()} {
		for _, f := range m {
			bin = append(bin, float32Bytes(f)...)
		}
	}

	doc := parseTestDocument(`{
		"nodes": [
			{"name": "hips", "children": [1, 2]},
			{"name": "spine", "children": [3], "translation": [0, 1, 0]},
			{"name": "leg", "mesh": 0, "skin": 0},
			{"children": []}
		],
		"skins": [{"name": "rig", "joints": [3, 1, 0], "inverseBindMatrices": 0}, {"joints": [9]}]
	}`)
	doc.Buffers = []document.Buffer{document.EmbeddedBuffer{ByteLength: uint32(len(bin))}}
	doc.BufferViews = []document.BufferView{{ByteLength: uint32(len(bin))}}
	doc.Accessors = []document.Accessor{
		{BufferView: document.Some(0), Count: 2, ComponentType: document.ComponentFloat, Type: document.AccessorMat4},
	}
	return &Asset{Document: doc, Binary: [][]byte{bin}}
}

func parseTestDocument(text string) *document.Document {
	doc := document.New()
	if err := ParseBytes(doc, []byte(text)); err != nil {
		panic(err)
	}
	return doc
}

func TestSkeletonExtractor(t *testing.T) {
	e := NewSkeletonExtractor(skinnedAsset())
	assert.Equal(t, 0, e.FindSkinForMesh(0))
	assert.Equal(t, -1, e.FindSkinForMesh(1))

	sk, err := e.ExtractSkeleton(0)
	require.NoError(t, err)
	assert.Equal(t, "rig", sk.Name)
	require.Len(t, sk.Bones, 3)

	assert.Equal(t, []int{0}, sk.Roots)
	assert.Equal(t, "hips", sk.Bones[0].Name)
	assert.Equal(t, -1, sk.Bones[0].Parent)
	assert.Equal(t, "spine", sk.Bones[1].Name)
	assert.Equal(t, 0, sk.Bones[1].Parent)
	assert.Equal(t, "bone_0", sk.Bones[2].Name)
	assert.Equal(t, 1, sk.Bones[2].Parent)
	assert.Equal(t, map[int]int{0: 0, 1: 1, 3: 2}, sk.NodeToBone)

	// joint 3 came first in the skin and carries the first matrix
	assert.Equal(t, float32(2), sk.Bones[2].InverseBind[0])
	assert.Equal(t, common.IdentityMat4(), sk.Bones[1].InverseBind)
	assert.Equal(t, common.IdentityMat4(), sk.Bones[0].InverseBind)
	assert.Equal(t, float32(1), sk.Bones[1].Local[13])

	_, err = e.ExtractSkeleton(1)
	assert.ErrorIs(t, err, ErrAccessor)
	_, err = e.ExtractSkeleton(2)
	assert.ErrorIs(t, err, ErrAccessor)
}

func TestSortBonesCycle(t *testing.T) {
	bones := []Bone{{Name: "a", Parent: 1}, {Name: "b", Parent: 0}, {Name: "c", Parent: -1}}
	sorted, roots := sortBones(bones)

	require.Len(t, sorted, 3)
	assert.Equal(t, "c", sorted[0].Name)
	assert.Equal(t, []int{0, 1, 2}, roots)
	for _, b := range sorted {
		assert.Equal(t, -1, b.Parent)
	}
}

package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gltf/common"
)

// Bone is one joint of a skin.
type Bone struct {
	Name string
	// Node is the document node driving the bone.
	Node int
	// Parent is the index of the parent bone, -1 for a root.
	Parent      int
	InverseBind common.Mat4
	Local       common.Mat4
}

// Skeleton is a skin's joints ordered so that parents precede their children.
type Skeleton struct {
	Name  string
	Bones []Bone
	Roots []int
	// NodeToBone maps a joint's node index to its bone index.
	NodeToBone map[int]int
}

// skeletonExtractor is the implementation of the SkeletonExtractor interface.
type skeletonExtractor struct {
	asset  *Asset
	reader AccessorReader
}

// SkeletonExtractor builds bone hierarchies from the skins of a loaded asset.
type SkeletonExtractor interface {
	// ExtractSkeleton builds the skeleton of a skin.
	// Bones without inverse bind data get the identity matrix.
	//
	// Parameters:
	//   - skinIndex: the index of the skin
	//
	// Returns:
	//   - *Skeleton: the sorted skeleton
	//   - error: error if a joint or the inverse bind accessor is invalid
	ExtractSkeleton(skinIndex int) (*Skeleton, error)

	// FindSkinForMesh returns the skin of the first node instancing the mesh, or -1.
	//
	// Parameters:
	//   - meshIndex: the index of the mesh
	//
	// Returns:
	//   - int: the skin index or -1
	FindSkinForMesh(meshIndex int) int
}

var _ SkeletonExtractor = &skeletonExtractor{}

// NewSkeletonExtractor creates a skeleton extractor for a loaded asset.
//
// Parameters:
//   - asset: the asset whose binary chunks back its embedded buffers
//
// Returns:
//   - SkeletonExtractor: the skeleton extractor
func NewSkeletonExtractor(asset *Asset) SkeletonExtractor {
	return &skeletonExtractor{asset: asset, reader: NewAccessorReader(asset)}
}

func (e *skeletonExtractor) FindSkinForMesh(meshIndex int) int {
	for _, node := range e.asset.Document.Nodes {
		if mesh, ok := node.Mesh.Get(); ok && mesh == meshIndex {
			if skin, ok := node.Skin.Get(); ok {
				return skin
			}
		}
	}
	return -1
}

func (e *skeletonExtractor) ExtractSkeleton(skinIndex int) (*Skeleton, error) {
	doc := e.asset.Document
	if skinIndex < 0 || skinIndex >= len(doc.Skins) {
		return nil, fmt.Errorf("%w: skin index %d out of range", ErrAccessor, skinIndex)
	}
	skin := &doc.Skins[skinIndex]

	var inverseBind []common.Mat4
	if idx, ok := skin.InverseBindMatrices.Get(); ok {
		var err error
		if inverseBind, err = e.reader.ReadMat4(idx); err != nil {
			return nil, fmt.Errorf("failed to read inverse bind matrices: %w", err)
		}
	}

	bones := make([]Bone, len(skin.Joints))
	nodeToBone := make(map[int]int, len(skin.Joints))
	for i, joint := range skin.Joints {
		if int(joint) >= len(doc.Nodes) {
			return nil, fmt.Errorf("%w: joint %d: invalid node index %d", ErrAccessor, i, joint)
		}
		node := &doc.Nodes[joint]
		bones[i] = Bone{
			Name:        node.Name,
			Node:        int(joint),
			Parent:      -1,
			InverseBind: common.IdentityMat4(),
			Local:       node.LocalMatrix(),
		}
		if bones[i].Name == "" {
			bones[i].Name = fmt.Sprintf("bone_%d", i)
		}
		if i < len(inverseBind) {
			bones[i].InverseBind = inverseBind[i]
		}
		nodeToBone[int(joint)] = i
	}

	// a bone's parent is the joint whose node lists it as a child
	for nodeIdx := range doc.Nodes {
		parent, ok := nodeToBone[nodeIdx]
		if !ok {
			continue
		}
		for _, child := range doc.Nodes[nodeIdx].Children {
			if b, ok := nodeToBone[int(child)]; ok && b != parent {
				bones[b].Parent = parent
			}
		}
	}

	sorted, roots := sortBones(bones)
	for i, b := range sorted {
		nodeToBone[b.Node] = i
	}
	return &Skeleton{Name: skin.Name, Bones: sorted, Roots: roots, NodeToBone: nodeToBone}, nil
}

// sortBones orders bones breadth first from the roots and remaps parent indices.
// Bones unreachable from a root (a parent cycle) are appended as roots.
//
// Parameters:
//   - bones: bones with parent indices into the same slice
//
// Returns:
//   - []Bone: the sorted bones
//   - []int: indices of the root bones in the sorted slice
func sortBones(bones []Bone) ([]Bone, []int) {
	children := make([][]int, len(bones))
	var queue []int
	for i, b := range bones {
		if b.Parent < 0 {
			queue = append(queue, i)
		} else {
			children[b.Parent] = append(children[b.Parent], i)
		}
	}

	order := make([]int, 0, len(bones))
	visited := make([]bool, len(bones))
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		if visited[i] {
			continue
		}
		visited[i] = true
		order = append(order, i)
		queue = append(queue, children[i]...)
	}
	for i := range bones {
		if !visited[i] {
			bones[i].Parent = -1
			order = append(order, i)
		}
	}

	oldToNew := make([]int, len(bones))
	for newIdx, oldIdx := range order {
		oldToNew[oldIdx] = newIdx
	}

	sorted := make([]Bone, len(bones))
	var roots []int
	for newIdx, oldIdx := range order {
		b := bones[oldIdx]
		if b.Parent >= 0 {
			b.Parent = oldToNew[b.Parent]
		} else {
			roots = append(roots, newIdx)
		}
		sorted[newIdx] = b
	}
	return sorted, roots
}

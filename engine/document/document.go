package document

import "github.com/Carmen-Shannon/oxy-gltf/common"

// noCopy makes go vet's copylocks check flag copies of a Document.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Document is the root of a parsed glTF asset. It is filled in place by a
// single parser and must be passed by pointer; after a parse error its
// contents are unspecified and it should be discarded.
type Document struct {
	_ noCopy

	Asset Asset
	// Scene is the default scene.
	Scene Ordinal

	Scenes      []Scene
	Nodes       []Node
	Meshes      []Mesh
	Materials   []Material
	Accessors   []Accessor
	BufferViews []BufferView
	Buffers     []Buffer
	Skins       []Skin
	Images      []Image
	Samplers    []Sampler
	Textures    []Texture
	Animations  []Animation
}

// New returns an empty document.
func New() *Document {
	return &Document{Scene: None}
}

// Stats counts the entries of every section.
type Stats struct {
	Scenes      int
	Nodes       int
	Meshes      int
	Primitives  int
	Materials   int
	Accessors   int
	BufferViews int
	Buffers     int
	Skins       int
	Images      int
	Samplers    int
	Textures    int
	Animations  int
}

// Stats returns the number of entries per section.
func (d *Document) Stats() Stats {
	s := Stats{
		Scenes:      len(d.Scenes),
		Nodes:       len(d.Nodes),
		Meshes:      len(d.Meshes),
		Materials:   len(d.Materials),
		Accessors:   len(d.Accessors),
		BufferViews: len(d.BufferViews),
		Buffers:     len(d.Buffers),
		Skins:       len(d.Skins),
		Images:      len(d.Images),
		Samplers:    len(d.Samplers),
		Textures:    len(d.Textures),
		Animations:  len(d.Animations),
	}
	for i := range d.Meshes {
		s.Primitives += len(d.Meshes[i].Primitives)
	}
	return s
}

// WorldMatrices returns the world transform of every node, walking the
// hierarchy from each scene's roots. Nodes not reachable from a scene keep
// their local transform. Out of range child indices and cycles are skipped.
func (d *Document) WorldMatrices() []common.Mat4 {
	world := make([]common.Mat4, len(d.Nodes))
	visited := make([]bool, len(d.Nodes))
	for i := range d.Nodes {
		world[i] = d.Nodes[i].LocalMatrix()
	}

	type frame struct {
		node   uint32
		parent common.Mat4
	}
	var stack []frame
	for _, scene := range d.Scenes {
		for _, root := range scene.Nodes {
			stack = append(stack, frame{node: root, parent: common.IdentityMat4()})
		}
	}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if int(f.node) >= len(d.Nodes) || visited[f.node] {
			continue
		}
		visited[f.node] = true

		local := d.Nodes[f.node].LocalMatrix()
		common.Mul4(world[f.node][:], f.parent[:], local[:])
		for _, child := range d.Nodes[f.node].Children {
			stack = append(stack, frame{node: child, parent: world[f.node]})
		}
	}
	return world
}

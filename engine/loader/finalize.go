package loader

import "github.com/Carmen-Shannon/oxy-gltf/engine/document"

// Commit actions move a completed scratch record into its destination and
// restore the slot's defaults. Slices are handed over, never shared: the
// reset leaves the slot with nil slices so the next record allocates its own.

func (m *Mapper) commitScene() {
	m.doc.Scenes = append(m.doc.Scenes, m.scratch.scene)
	m.scratch.scene = document.Scene{}
}

func (m *Mapper) commitNode() {
	m.doc.Nodes = append(m.doc.Nodes, m.scratch.node)
	m.scratch.node = defaultNode()
}

func (m *Mapper) commitPrimitive() {
	p := m.scratch.primitive
	p.Flags = 0
	for _, a := range p.Attributes {
		p.Flags |= a.Kind.Flag()
	}
	m.scratch.mesh.Primitives = append(m.scratch.mesh.Primitives, p)
	m.scratch.primitive = defaultPrimitive()
}

func (m *Mapper) commitMesh() {
	m.doc.Meshes = append(m.doc.Meshes, m.scratch.mesh)
	m.scratch.mesh = document.Mesh{}
}

func (m *Mapper) commitMaterial() {
	m.doc.Materials = append(m.doc.Materials, m.scratch.material)
	m.scratch.material = defaultMaterial()
}

func (m *Mapper) commitAccessor() {
	m.doc.Accessors = append(m.doc.Accessors, m.scratch.accessor)
	m.scratch.accessor = defaultAccessor()
}

func (m *Mapper) commitChannel() {
	m.scratch.animation.Channels = append(m.scratch.animation.Channels, m.scratch.channel)
	m.scratch.channel = defaultChannel()
}

func (m *Mapper) commitAnimationSampler() {
	m.scratch.animation.Samplers = append(m.scratch.animation.Samplers, m.scratch.animSampler)
	m.scratch.animSampler = defaultAnimationSampler()
}

func (m *Mapper) commitAnimation() {
	m.doc.Animations = append(m.doc.Animations, m.scratch.animation)
	m.scratch.animation = document.Animation{}
}

func (m *Mapper) commitSkin() {
	m.doc.Skins = append(m.doc.Skins, m.scratch.skin)
	m.scratch.skin = defaultSkin()
}

func (m *Mapper) commitBuffer() {
	b := m.scratch.buffer
	m.doc.Buffers = append(m.doc.Buffers, document.NewBuffer(b.name, b.byteLength, b.uri))
	m.scratch.buffer = bufferScratch{}
}

func (m *Mapper) commitBufferView() {
	m.doc.BufferViews = append(m.doc.BufferViews, m.scratch.bufferView)
	m.scratch.bufferView = document.BufferView{}
}

func (m *Mapper) commitImage() {
	img := m.scratch.image
	m.doc.Images = append(m.doc.Images, document.NewImage(img.name, img.uri, img.mimeType, img.bufferView))
	m.scratch.image = imageScratch{bufferView: document.None}
}

func (m *Mapper) commitSampler() {
	m.doc.Samplers = append(m.doc.Samplers, m.scratch.sampler)
	m.scratch.sampler = defaultSampler()
}

func (m *Mapper) commitTexture() {
	m.doc.Textures = append(m.doc.Textures, m.scratch.texture)
	m.scratch.texture = defaultTexture()
}

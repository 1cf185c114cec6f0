// types.go contains the glTF 2.0 entities produced by the loader.
// Entities are appended once, in encounter order, and never mutated afterwards.
// Cross references are Ordinals into sibling vectors of the Document.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html
package document

import "github.com/Carmen-Shannon/oxy-gltf/common"

// --- Asset Metadata ---

// Asset contains metadata about the glTF asset.
type Asset struct {
	Version    string
	MinVersion string
	Generator  string
	Copyright  string
}

// --- Scene Graph ---

// Scene is a set of root nodes.
type Scene struct {
	Name  string
	Nodes []uint32
}

// Node is a node in the node hierarchy.
// Rotation, Scale and Translation default to identity, one and zero when absent.
type Node struct {
	Mesh        Ordinal
	Skin        Ordinal
	Camera      Ordinal
	Rotation    common.Quat
	Scale       common.Vec3
	Translation common.Vec3

	// Matrix is the explicit local transform; HasMatrix is false when the node uses TRS.
	Matrix    common.Mat4
	HasMatrix bool

	Children []uint32
	Weights  []float32
	Name     string
}

// LocalMatrix returns the node's local transform: Matrix when set, T * R * S otherwise.
func (n *Node) LocalMatrix() common.Mat4 {
	if n.HasMatrix {
		return n.Matrix
	}
	var m common.Mat4
	common.ComposeTRS(m[:], n.Translation, n.Rotation, n.Scale)
	return m
}

// --- Mesh Data ---

// Mesh is a set of primitives to be rendered.
type Mesh struct {
	Name       string
	Primitives []Primitive
	Weights    []float32
}

// AttributeRef binds an attribute kind to an accessor.
type AttributeRef struct {
	Kind     Attribute
	Accessor uint32
}

// Primitive is one drawable attribute and index set.
// Flags is derived from Attributes when the primitive is committed.
type Primitive struct {
	Attributes []AttributeRef
	Indices    Ordinal
	Material   Ordinal
	Mode       DrawMode
	Flags      AttributeFlag
}

// Attribute returns the accessor bound to kind.
func (p *Primitive) Attribute(kind Attribute) (uint32, bool) {
	for _, a := range p.Attributes {
		if a.Kind == kind {
			return a.Accessor, true
		}
	}
	return 0, false
}

// --- Buffer Data ---

// Accessor describes how to read a typed element sequence from a buffer view.
// Min and Max are kept as parsed; their arity is not checked against Type.
type Accessor struct {
	Name          string
	BufferView    Ordinal
	ByteOffset    uint32
	Count         uint32
	ComponentType ComponentType
	Type          AccessorType
	Normalized    bool
	Min           []float64
	Max           []float64
}

// ElementSize returns the packed byte size of one element.
func (a *Accessor) ElementSize() int {
	return a.ComponentType.Size() * a.Type.Components()
}

// BufferView is a byte range window into a buffer.
type BufferView struct {
	Name       string
	Buffer     uint32
	ByteLength uint32
	ByteOffset uint32
	ByteStride uint32
	Target     BufferTarget
}

// --- Materials and Textures ---

// TextureInfo references a texture and the UV set it samples.
type TextureInfo struct {
	Index    Ordinal
	TexCoord uint32
}

// NormalTextureInfo references a normal map.
type NormalTextureInfo struct {
	TextureInfo
	Scale float32
}

// OcclusionTextureInfo references an occlusion map.
type OcclusionTextureInfo struct {
	TextureInfo
	Strength float32
}

// PBRMetallicRoughness is the metallic-roughness material model.
type PBRMetallicRoughness struct {
	BaseColorFactor          common.Vec4
	BaseColorTexture         TextureInfo
	MetallicFactor           float32
	RoughnessFactor          float32
	MetallicRoughnessTexture TextureInfo
}

// Material defines the appearance of a primitive.
// AlphaCutoff is only meaningful when AlphaMode is AlphaMask.
type Material struct {
	Name                 string
	PBRMetallicRoughness PBRMetallicRoughness
	NormalTexture        NormalTextureInfo
	OcclusionTexture     OcclusionTextureInfo
	EmissiveTexture      TextureInfo
	EmissiveFactor       common.Vec3
	AlphaMode            AlphaMode
	AlphaCutoff          float32
	DoubleSided          bool
}

// Sampler defines texture filtering and wrapping.
type Sampler struct {
	Name      string
	MagFilter Filter
	MinFilter Filter
	WrapS     Wrap
	WrapT     Wrap
}

// Texture combines an image and a sampler.
type Texture struct {
	Sampler Ordinal
	Source  Ordinal
	Name    string
}

// --- Skeletal Animation ---

// Skin binds a mesh to a joint hierarchy.
type Skin struct {
	Name                string
	Skeleton            Ordinal
	InverseBindMatrices Ordinal
	Joints              []uint32
}

// Channel connects one of the animation's samplers to a node property.
type Channel struct {
	Sampler Ordinal
	Node    Ordinal
	Path    PathType
}

// AnimationSampler holds keyframe input and output accessors.
type AnimationSampler struct {
	Input         Ordinal
	Output        Ordinal
	Interpolation Interpolation
}

// Animation is a named set of channels and their samplers.
// Channel.Sampler indexes this animation's own Samplers.
type Animation struct {
	Name     string
	Channels []Channel
	Samplers []AnimationSampler
}

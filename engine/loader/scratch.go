package loader

import (
	"github.com/Carmen-Shannon/oxy-gltf/common"
	"github.com/Carmen-Shannon/oxy-gltf/engine/document"
)

// scratch holds the record under construction for every record type. Nested
// record types (primitives inside meshes, channels and samplers inside
// animations) have their own slot so a parent and its children can be open
// at the same time. Each slot is moved into the document on commit and then
// reset to its defaults.
type scratch struct {
	scene       document.Scene
	node        document.Node
	mesh        document.Mesh
	primitive   document.Primitive
	accessor    document.Accessor
	bufferView  document.BufferView
	buffer      bufferScratch
	image       imageScratch
	sampler     document.Sampler
	texture     document.Texture
	material    document.Material
	skin        document.Skin
	animation   document.Animation
	channel     document.Channel
	animSampler document.AnimationSampler
}

// bufferScratch collects the fields that select a document.Buffer variant.
type bufferScratch struct {
	name       string
	byteLength uint32
	uri        string
}

// imageScratch collects the fields that select a document.Image variant.
type imageScratch struct {
	name       string
	uri        string
	mimeType   string
	bufferView document.Ordinal
}

// reset restores every slot to the defaults of an absent field.
func (s *scratch) reset() {
	s.scene = document.Scene{}
	s.node = defaultNode()
	s.mesh = document.Mesh{}
	s.primitive = defaultPrimitive()
	s.accessor = defaultAccessor()
	s.bufferView = document.BufferView{}
	s.buffer = bufferScratch{}
	s.image = imageScratch{bufferView: document.None}
	s.sampler = defaultSampler()
	s.texture = defaultTexture()
	s.material = defaultMaterial()
	s.skin = defaultSkin()
	s.animation = document.Animation{}
	s.channel = defaultChannel()
	s.animSampler = defaultAnimationSampler()
}

// --- Defaults ---

func defaultNode() document.Node {
	return document.Node{
		Mesh:     document.None,
		Skin:     document.None,
		Camera:   document.None,
		Rotation: common.IdentityQuat(),
		Scale:    common.OneVec3(),
		Matrix:   common.IdentityMat4(),
	}
}

func defaultPrimitive() document.Primitive {
	return document.Primitive{
		Indices:  document.None,
		Material: document.None,
		Mode:     document.ModeTriangles,
	}
}

func defaultAccessor() document.Accessor {
	return document.Accessor{
		BufferView: document.None,
		Type:       document.AccessorScalar,
	}
}

func defaultSampler() document.Sampler {
	return document.Sampler{
		MagFilter: document.FilterUnset,
		MinFilter: document.FilterUnset,
		WrapS:     document.WrapRepeat,
		WrapT:     document.WrapRepeat,
	}
}

func defaultTextureInfo() document.TextureInfo {
	return document.TextureInfo{Index: document.None}
}

func defaultMaterial() document.Material {
	return document.Material{
		PBRMetallicRoughness: document.PBRMetallicRoughness{
			BaseColorFactor:          common.OneVec4(),
			BaseColorTexture:         defaultTextureInfo(),
			MetallicFactor:           1,
			RoughnessFactor:          1,
			MetallicRoughnessTexture: defaultTextureInfo(),
		},
		NormalTexture:    document.NormalTextureInfo{TextureInfo: defaultTextureInfo(), Scale: 1},
		OcclusionTexture: document.OcclusionTextureInfo{TextureInfo: defaultTextureInfo(), Strength: 1},
		EmissiveTexture:  defaultTextureInfo(),
		AlphaMode:        document.AlphaOpaque,
		AlphaCutoff:      0.5,
	}
}

func defaultTexture() document.Texture {
	return document.Texture{Sampler: document.None, Source: document.None}
}

func defaultSkin() document.Skin {
	return document.Skin{Skeleton: document.None, InverseBindMatrices: document.None}
}

func defaultChannel() document.Channel {
	return document.Channel{Sampler: document.None, Node: document.None}
}

func defaultAnimationSampler() document.AnimationSampler {
	return document.AnimationSampler{
		Input:         document.None,
		Output:        document.None,
		Interpolation: document.InterpolationLinear,
	}
}

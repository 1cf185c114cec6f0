package loader

import "github.com/Carmen-Shannon/oxy-gltf/engine/document"

// routes returns the route table binding glTF 2.0 paths to the mapper's scratch slots.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#properties-reference
func (m *Mapper) routes() []route {
	s := &m.scratch
	doc := m.doc

	str := func(dst *string) fieldAssigner { return &stringField{dst: dst} }
	flag := func(dst *bool) fieldAssigner { return &boolField{dst: dst} }
	ord := func(dst *document.Ordinal) fieldAssigner { return newNumberField(dst) }
	u32 := func(dst *uint32) fieldAssigner { return newNumberField(dst) }
	f32 := func(dst *float32) fieldAssigner { return newNumberField(dst) }
	vec := func(dst []float32) fieldAssigner { return &vectorField{dst: dst} }
	indices := func(dst *[]uint32) fieldAssigner { return newListField(dst) }
	floats := func(dst *[]float32) fieldAssigner { return newListField(dst) }

	textureInfo := func(prefix string, info *document.TextureInfo) []route {
		return []route{
			{path: prefix + ".index", field: ord(&info.Index)},
			{path: prefix + ".texCoord", field: u32(&info.TexCoord)},
		}
	}

	table := []route{
		// --- asset and default scene ---
		{path: "asset.version", field: str(&doc.Asset.Version)},
		{path: "asset.minVersion", field: str(&doc.Asset.MinVersion)},
		{path: "asset.generator", field: str(&doc.Asset.Generator)},
		{path: "asset.copyright", field: str(&doc.Asset.Copyright)},
		{path: "scene", field: ord(&doc.Scene)},

		// --- scenes ---
		{path: "scenes[]", commit: m.commitScene},
		{path: "scenes[].name", field: str(&s.scene.Name)},
		{path: "scenes[].nodes", field: indices(&s.scene.Nodes)},

		// --- nodes ---
		{path: "nodes[]", commit: m.commitNode},
		{path: "nodes[].name", field: str(&s.node.Name)},
		{path: "nodes[].mesh", field: ord(&s.node.Mesh)},
		{path: "nodes[].skin", field: ord(&s.node.Skin)},
		{path: "nodes[].camera", field: ord(&s.node.Camera)},
		{path: "nodes[].rotation", field: vec(s.node.Rotation[:])},
		{path: "nodes[].scale", field: vec(s.node.Scale[:])},
		{path: "nodes[].translation", field: vec(s.node.Translation[:])},
		{path: "nodes[].matrix", field: &vectorField{dst: s.node.Matrix[:], seen: &s.node.HasMatrix}},
		{path: "nodes[].children", field: indices(&s.node.Children)},
		{path: "nodes[].weights", field: floats(&s.node.Weights)},

		// --- meshes ---
		{path: "meshes[]", commit: m.commitMesh},
		{path: "meshes[].name", field: str(&s.mesh.Name)},
		{path: "meshes[].weights", field: floats(&s.mesh.Weights)},
		{path: "meshes[].primitives[]", commit: m.commitPrimitive},
		{path: "meshes[].primitives[].attributes", field: newAttributeField(&s.primitive.Attributes, "meshes[].primitives[].attributes", m.policy)},
		{path: "meshes[].primitives[].indices", field: ord(&s.primitive.Indices)},
		{path: "meshes[].primitives[].material", field: ord(&s.primitive.Material)},
		{path: "meshes[].primitives[].mode", field: newNumberField(&s.primitive.Mode)},

		// --- materials ---
		{path: "materials[]", commit: m.commitMaterial},
		{path: "materials[].name", field: str(&s.material.Name)},
		{path: "materials[].doubleSided", field: flag(&s.material.DoubleSided)},
		{path: "materials[].emissiveFactor", field: vec(s.material.EmissiveFactor[:])},
		{path: "materials[].alphaMode", field: newKeywordField(&s.material.AlphaMode, "materials[].alphaMode", m.policy, document.AlphaModeNames)},
		{path: "materials[].alphaCutoff", field: f32(&s.material.AlphaCutoff)},
		{path: "materials[].alphaCutOff", field: f32(&s.material.AlphaCutoff)},
		{path: "materials[].normalTexture.scale", field: f32(&s.material.NormalTexture.Scale)},
		{path: "materials[].occlusionTexture.strength", field: f32(&s.material.OcclusionTexture.Strength)},
		{path: "materials[].pbrMetallicRoughness.baseColorFactor", field: vec(s.material.PBRMetallicRoughness.BaseColorFactor[:])},
		{path: "materials[].pbrMetallicRoughness.metallicFactor", field: f32(&s.material.PBRMetallicRoughness.MetallicFactor)},
		{path: "materials[].pbrMetallicRoughness.roughnessFactor", field: f32(&s.material.PBRMetallicRoughness.RoughnessFactor)},

		// --- accessors ---
		{path: "accessors[]", commit: m.commitAccessor},
		{path: "accessors[].name", field: str(&s.accessor.Name)},
		{path: "accessors[].bufferView", field: ord(&s.accessor.BufferView)},
		{path: "accessors[].byteOffset", field: u32(&s.accessor.ByteOffset)},
		{path: "accessors[].count", field: u32(&s.accessor.Count)},
		{path: "accessors[].componentType", field: newNumberField(&s.accessor.ComponentType)},
		{path: "accessors[].type", field: newKeywordField(&s.accessor.Type, "accessors[].type", m.policy, document.AccessorTypeNames)},
		{path: "accessors[].normalized", field: flag(&s.accessor.Normalized)},
		{path: "accessors[].min", field: newListField(&s.accessor.Min)},
		{path: "accessors[].max", field: newListField(&s.accessor.Max)},

		// --- animations ---
		{path: "animations[]", commit: m.commitAnimation},
		{path: "animations[].name", field: str(&s.animation.Name)},
		{path: "animations[].channels[]", commit: m.commitChannel},
		{path: "animations[].channels[].sampler", field: ord(&s.channel.Sampler)},
		{path: "animations[].channels[].target.node", field: ord(&s.channel.Node)},
		{path: "animations[].channels[].target.path", field: newKeywordField(&s.channel.Path, "animations[].channels[].target.path", m.policy, document.PathTypeNames)},
		{path: "animations[].samplers[]", commit: m.commitAnimationSampler},
		{path: "animations[].samplers[].input", field: ord(&s.animSampler.Input)},
		{path: "animations[].samplers[].output", field: ord(&s.animSampler.Output)},
		{path: "animations[].samplers[].interpolation", field: newKeywordField(&s.animSampler.Interpolation, "animations[].samplers[].interpolation", m.policy, document.InterpolationNames)},

		// --- skins ---
		{path: "skins[]", commit: m.commitSkin},
		{path: "skins[].name", field: str(&s.skin.Name)},
		{path: "skins[].skeleton", field: ord(&s.skin.Skeleton)},
		{path: "skins[].inverseBindMatrices", field: ord(&s.skin.InverseBindMatrices)},
		{path: "skins[].inverseBindMaterials", field: ord(&s.skin.InverseBindMatrices)},
		{path: "skins[].joints", field: indices(&s.skin.Joints)},

		// --- buffers and buffer views ---
		{path: "buffers[]", commit: m.commitBuffer},
		{path: "buffers[].name", field: str(&s.buffer.name)},
		{path: "buffers[].byteLength", field: u32(&s.buffer.byteLength)},
		{path: "buffers[].uri", field: str(&s.buffer.uri)},
		{path: "bufferViews[]", commit: m.commitBufferView},
		{path: "bufferViews[].name", field: str(&s.bufferView.Name)},
		{path: "bufferViews[].buffer", field: u32(&s.bufferView.Buffer)},
		{path: "bufferViews[].byteLength", field: u32(&s.bufferView.ByteLength)},
		{path: "bufferViews[].byteOffset", field: u32(&s.bufferView.ByteOffset)},
		{path: "bufferViews[].byteStride", field: u32(&s.bufferView.ByteStride)},
		{path: "bufferViews[].target", field: newNumberField(&s.bufferView.Target)},

		// --- images, samplers and textures ---
		{path: "images[]", commit: m.commitImage},
		{path: "images[].name", field: str(&s.image.name)},
		{path: "images[].uri", field: str(&s.image.uri)},
		{path: "images[].mimeType", field: str(&s.image.mimeType)},
		{path: "images[].bufferView", field: ord(&s.image.bufferView)},
		{path: "samplers[]", commit: m.commitSampler},
		{path: "samplers[].name", field: str(&s.sampler.Name)},
		{path: "samplers[].magFilter", field: newNumberField(&s.sampler.MagFilter)},
		{path: "samplers[].minFilter", field: newNumberField(&s.sampler.MinFilter)},
		{path: "samplers[].wrapS", field: newNumberField(&s.sampler.WrapS)},
		{path: "samplers[].wrapT", field: newNumberField(&s.sampler.WrapT)},
		{path: "textures[]", commit: m.commitTexture},
		{path: "textures[].name", field: str(&s.texture.Name)},
		{path: "textures[].sampler", field: ord(&s.texture.Sampler)},
		{path: "textures[].source", field: ord(&s.texture.Source)},
	}

	pbr := &s.material.PBRMetallicRoughness
	table = append(table, textureInfo("materials[].pbrMetallicRoughness.baseColorTexture", &pbr.BaseColorTexture)...)
	table = append(table, textureInfo("materials[].pbrMetallicRoughness.metallicRoughnessTexture", &pbr.MetallicRoughnessTexture)...)
	table = append(table, textureInfo("materials[].normalTexture", &s.material.NormalTexture.TextureInfo)...)
	table = append(table, textureInfo("materials[].occlusionTexture", &s.material.OcclusionTexture.TextureInfo)...)
	table = append(table, textureInfo("materials[].emissiveTexture", &s.material.EmissiveTexture)...)
	return table
}

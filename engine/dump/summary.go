package dump

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/Carmen-Shannon/oxy-gltf/common"
	"github.com/Carmen-Shannon/oxy-gltf/engine/document"
	"github.com/Carmen-Shannon/oxy-gltf/engine/loader"
)

// WriteSummary writes a human readable summary of an asset.
//
// Parameters:
//   - w: the destination writer
//   - asset: the loaded asset
//   - enabled: reports whether a section from Sections should be printed
//
// Returns:
//   - error: the first write error
func WriteSummary(w io.Writer, asset *loader.Asset, enabled func(section string) bool) error {
	bw := bufio.NewWriter(w)
	doc := asset.Document

	if asset.IsContainer() {
		fmt.Fprintf(bw, "== %s (GLB v%d, %d binary chunks) ==\n", asset.Name, asset.Version, len(asset.Binary))
	} else {
		fmt.Fprintf(bw, "== %s (glTF) ==\n", asset.Name)
	}
	fmt.Fprintf(bw, "asset: version %q generator %q default scene %s\n", doc.Asset.Version, doc.Asset.Generator, doc.Scene)
	s := doc.Stats()
	fmt.Fprintf(bw, "stats: %d scenes, %d nodes, %d meshes (%d primitives), %d materials, %d accessors, %d animations\n",
		s.Scenes, s.Nodes, s.Meshes, s.Primitives, s.Materials, s.Accessors, s.Animations)

	for _, section := range Sections {
		if !enabled(section) {
			continue
		}
		switch section {
		case "scenes":
			writeScenes(bw, doc)
		case "nodes":
			writeNodes(bw, doc)
		case "meshes":
			writeMeshes(bw, asset)
		case "materials":
			writeMaterials(bw, doc)
		case "textures":
			writeTextures(bw, doc)
		case "images":
			writeImages(bw, asset)
		case "samplers":
			writeSamplers(bw, doc)
		case "animations":
			writeAnimations(bw, asset)
		case "skins":
			writeSkins(bw, asset)
		case "buffers":
			writeBuffers(bw, doc)
		case "bufferViews":
			writeBufferViews(bw, doc)
		case "accessors":
			writeAccessors(bw, doc)
		}
	}
	return bw.Flush()
}

// --- Sections ---

func writeScenes(w io.Writer, doc *document.Document) {
	fmt.Fprintf(w, "scenes: %d\n", len(doc.Scenes))
	for i, sc := range doc.Scenes {
		fmt.Fprintf(w, "  [%d] %q roots=%v\n", i, sc.Name, sc.Nodes)
	}
}

func writeNodes(w io.Writer, doc *document.Document) {
	fmt.Fprintf(w, "nodes: %d\n", len(doc.Nodes))
	world := doc.WorldMatrices()
	for i, n := range doc.Nodes {
		fmt.Fprintf(w, "  [%d] %q mesh=%s skin=%s children=%v world=(%g, %g, %g)\n",
			i, n.Name, n.Mesh, n.Skin, n.Children, world[i][12], world[i][13], world[i][14])
	}
}

// writeMeshes adds vertex counts and bounds for meshes whose data is inside the asset.
func writeMeshes(w io.Writer, asset *loader.Asset) {
	doc := asset.Document
	extractor := loader.NewMeshExtractor(asset)
	fmt.Fprintf(w, "meshes: %d\n", len(doc.Meshes))
	for i, m := range doc.Meshes {
		fmt.Fprintf(w, "  [%d] %q primitives=%d\n", i, m.Name, len(m.Primitives))
		geometry, err := extractor.ExtractMesh(i)
		if err != nil {
			common.LogDebug("no geometry for mesh %d: %s", i, err.Error())
		}
		for j, p := range m.Primitives {
			attrs := make([]string, 0, len(p.Attributes))
			for _, a := range p.Attributes {
				attrs = append(attrs, fmt.Sprintf("%s:%d", a.Kind, a.Accessor))
			}
			fmt.Fprintf(w, "    primitive %d: mode=%s indices=%s material=%s attributes=%s\n",
				j, p.Mode, p.Indices, p.Material, strings.Join(attrs, ","))
			if j < len(geometry) {
				g := geometry[j]
				fmt.Fprintf(w, "      vertices=%d indices=%d bounds=%v..%v\n", len(g.Positions), len(g.Indices), g.BoundsMin, g.BoundsMax)
			}
		}
	}
}

func writeMaterials(w io.Writer, doc *document.Document) {
	fmt.Fprintf(w, "materials: %d\n", len(doc.Materials))
	for i, m := range doc.Materials {
		pbr := m.PBRMetallicRoughness
		fmt.Fprintf(w, "  [%d] %q alpha=%s cutoff=%g baseColor=%v metallic=%g roughness=%g baseColorTexture=%s normalTexture=%s doubleSided=%t\n",
			i, m.Name, m.AlphaMode, m.AlphaCutoff, pbr.BaseColorFactor, pbr.MetallicFactor, pbr.RoughnessFactor,
			pbr.BaseColorTexture.Index, m.NormalTexture.Index, m.DoubleSided)
	}
}

func writeTextures(w io.Writer, doc *document.Document) {
	fmt.Fprintf(w, "textures: %d\n", len(doc.Textures))
	for i, t := range doc.Textures {
		fmt.Fprintf(w, "  [%d] %q sampler=%s source=%s\n", i, t.Name, t.Sampler, t.Source)
	}
}

func writeImages(w io.Writer, asset *loader.Asset) {
	doc := asset.Document
	reader := loader.NewAccessorReader(asset)
	fmt.Fprintf(w, "images: %d\n", len(doc.Images))
	for i, img := range doc.Images {
		switch v := img.(type) {
		case document.EmbeddedImage:
			fmt.Fprintf(w, "  [%d] %q embedded bufferView=%d mimeType=%q", i, v.Name, v.BufferView, v.MimeType)
		case document.ExternalImage:
			uri := v.URI
			if len(uri) > 48 {
				uri = uri[:48] + "..."
			}
			fmt.Fprintf(w, "  [%d] %q external uri=%q", i, v.Name, uri)
		}
		if data, mimeType, err := reader.ReadImage(i); err == nil {
			fmt.Fprintf(w, " bytes=%d (%s)", len(data), mimeType)
		}
		fmt.Fprintln(w)
	}
}

func writeSamplers(w io.Writer, doc *document.Document) {
	fmt.Fprintf(w, "samplers: %d\n", len(doc.Samplers))
	for i, s := range doc.Samplers {
		fmt.Fprintf(w, "  [%d] %q mag=%d min=%d wrapS=%d wrapT=%d\n", i, s.Name, s.MagFilter, s.MinFilter, s.WrapS, s.WrapT)
	}
}

func writeAnimations(w io.Writer, asset *loader.Asset) {
	doc := asset.Document
	extractor := loader.NewAnimationExtractor(asset)
	fmt.Fprintf(w, "animations: %d\n", len(doc.Animations))
	for i, a := range doc.Animations {
		fmt.Fprintf(w, "  [%d] %q channels=%d samplers=%d", i, a.Name, len(a.Channels), len(a.Samplers))
		if clip, err := extractor.ExtractAnimation(i); err == nil {
			fmt.Fprintf(w, " duration=%gs", clip.Duration)
		}
		fmt.Fprintln(w)
		for j, c := range a.Channels {
			fmt.Fprintf(w, "    channel %d: node=%s path=%s sampler=%s", j, c.Node, c.Path, c.Sampler)
			if idx, ok := c.Sampler.Get(); ok && idx < len(a.Samplers) {
				s := a.Samplers[idx]
				fmt.Fprintf(w, " (input=%s output=%s %s)", s.Input, s.Output, s.Interpolation)
			}
			fmt.Fprintln(w)
		}
	}
}

func writeSkins(w io.Writer, asset *loader.Asset) {
	doc := asset.Document
	extractor := loader.NewSkeletonExtractor(asset)
	fmt.Fprintf(w, "skins: %d\n", len(doc.Skins))
	for i, s := range doc.Skins {
		fmt.Fprintf(w, "  [%d] %q skeleton=%s inverseBindMatrices=%s joints=%d", i, s.Name, s.Skeleton, s.InverseBindMatrices, len(s.Joints))
		if sk, err := extractor.ExtractSkeleton(i); err == nil {
			roots := make([]string, len(sk.Roots))
			for j, r := range sk.Roots {
				roots[j] = sk.Bones[r].Name
			}
			fmt.Fprintf(w, " roots=%s", strings.Join(roots, ","))
		}
		fmt.Fprintln(w)
	}
}

func writeBuffers(w io.Writer, doc *document.Document) {
	fmt.Fprintf(w, "buffers: %d\n", len(doc.Buffers))
	for i, b := range doc.Buffers {
		switch v := b.(type) {
		case document.EmbeddedBuffer:
			fmt.Fprintf(w, "  [%d] %q embedded length=%d\n", i, v.Name, v.ByteLength)
		case document.ExternalBuffer:
			fmt.Fprintf(w, "  [%d] %q external length=%d uri=%q\n", i, v.Name, v.ByteLength, v.URI)
		}
	}
}

func writeBufferViews(w io.Writer, doc *document.Document) {
	fmt.Fprintf(w, "bufferViews: %d\n", len(doc.BufferViews))
	for i, bv := range doc.BufferViews {
		fmt.Fprintf(w, "  [%d] buffer=%d offset=%d length=%d stride=%d target=%d\n",
			i, bv.Buffer, bv.ByteOffset, bv.ByteLength, bv.ByteStride, bv.Target)
	}
}

func writeAccessors(w io.Writer, doc *document.Document) {
	fmt.Fprintf(w, "accessors: %d\n", len(doc.Accessors))
	for i, a := range doc.Accessors {
		fmt.Fprintf(w, "  [%d] %s %s count=%d bufferView=%s offset=%d normalized=%t min=%v max=%v\n",
			i, a.Type, a.ComponentType, a.Count, a.BufferView, a.ByteOffset, a.Normalized, a.Min, a.Max)
	}
}

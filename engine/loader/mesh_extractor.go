package loader

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-gltf/common"
	"github.com/Carmen-Shannon/oxy-gltf/engine/document"
)

// MeshData is one primitive flattened into parallel vertex streams.
// Optional streams are nil when the primitive has no such attribute.
type MeshData struct {
	Name      string
	Mode      document.DrawMode
	Material  document.Ordinal
	Positions []common.Vec3
	Normals   []common.Vec3
	Tangents  []common.Vec4
	TexCoords [][2]float32
	Colors    []common.Vec4
	Joints    [][4]uint32
	Weights   []common.Vec4
	Indices   []uint32

	// GeneratedNormals is set when Normals were computed from the triangles.
	GeneratedNormals bool
	BoundsMin        common.Vec3
	BoundsMax        common.Vec3
}

// meshExtractor is the implementation of the MeshExtractor interface.
type meshExtractor struct {
	asset  *Asset
	reader AccessorReader
}

// MeshExtractor converts the primitives of a loaded asset into vertex streams.
type MeshExtractor interface {
	// ExtractMesh extracts a single mesh by index.
	// Returns one MeshData per primitive.
	//
	// Parameters:
	//   - meshIndex: the index of the mesh to extract
	//
	// Returns:
	//   - []MeshData: one entry per primitive
	//   - error: error if extraction fails
	ExtractMesh(meshIndex int) ([]MeshData, error)

	// ExtractAllMeshes extracts every mesh of the document.
	//
	// Returns:
	//   - []MeshData: all primitives, flattened in mesh order
	//   - error: error if extraction fails
	ExtractAllMeshes() ([]MeshData, error)
}

var _ MeshExtractor = &meshExtractor{}

// NewMeshExtractor creates a mesh extractor for a loaded asset.
//
// Parameters:
//   - asset: the asset whose binary chunks back its embedded buffers
//
// Returns:
//   - MeshExtractor: the mesh extractor
func NewMeshExtractor(asset *Asset) MeshExtractor {
	return &meshExtractor{asset: asset, reader: NewAccessorReader(asset)}
}

func (e *meshExtractor) ExtractMesh(meshIndex int) ([]MeshData, error) {
	doc := e.asset.Document
	if meshIndex < 0 || meshIndex >= len(doc.Meshes) {
		return nil, fmt.Errorf("%w: mesh index %d out of range", ErrAccessor, meshIndex)
	}

	mesh := &doc.Meshes[meshIndex]
	result := make([]MeshData, 0, len(mesh.Primitives))
	for primIdx := range mesh.Primitives {
		data, err := e.extractPrimitive(&mesh.Primitives[primIdx], mesh.Name, primIdx)
		if err != nil {
			return nil, fmt.Errorf("mesh %d primitive %d: %w", meshIndex, primIdx, err)
		}
		result = append(result, *data)
	}
	return result, nil
}

func (e *meshExtractor) ExtractAllMeshes() ([]MeshData, error) {
	var all []MeshData
	for i := range e.asset.Document.Meshes {
		meshes, err := e.ExtractMesh(i)
		if err != nil {
			return nil, err
		}
		all = append(all, meshes...)
	}
	return all, nil
}

func (e *meshExtractor) extractPrimitive(prim *document.Primitive, meshName string, primIndex int) (*MeshData, error) {
	posAccessor, ok := prim.Attribute(document.AttributePosition)
	if !ok {
		return nil, fmt.Errorf("%w: primitive has no POSITION attribute", ErrAccessor)
	}

	out := &MeshData{
		Name:     meshName,
		Mode:     prim.Mode,
		Material: prim.Material,
	}
	if out.Name == "" {
		out.Name = fmt.Sprintf("mesh_%d", primIndex)
	}
	if primIndex > 0 {
		out.Name = fmt.Sprintf("%s_prim%d", out.Name, primIndex)
	}

	var err error
	if out.Positions, err = e.reader.ReadVec3(int(posAccessor)); err != nil {
		return nil, fmt.Errorf("failed to read positions: %w", err)
	}
	if idx, ok := prim.Attribute(document.AttributeNormal); ok {
		if out.Normals, err = e.reader.ReadVec3(int(idx)); err != nil {
			return nil, fmt.Errorf("failed to read normals: %w", err)
		}
	}
	if idx, ok := prim.Attribute(document.AttributeTangent); ok {
		if out.Tangents, err = e.reader.ReadVec4(int(idx)); err != nil {
			return nil, fmt.Errorf("failed to read tangents: %w", err)
		}
	}
	if idx, ok := prim.Attribute(document.AttributeTexCoord0); ok {
		if out.TexCoords, err = e.reader.ReadVec2(int(idx)); err != nil {
			return nil, fmt.Errorf("failed to read texcoords: %w", err)
		}
	}
	if idx, ok := prim.Attribute(document.AttributeColor0); ok {
		if out.Colors, err = e.readColors(int(idx)); err != nil {
			return nil, fmt.Errorf("failed to read colors: %w", err)
		}
	}
	if idx, ok := prim.Attribute(document.AttributeJoints0); ok {
		if out.Joints, err = e.reader.ReadJoints(int(idx)); err != nil {
			return nil, fmt.Errorf("failed to read joints: %w", err)
		}
	}
	if idx, ok := prim.Attribute(document.AttributeWeights0); ok {
		if out.Weights, err = e.reader.ReadVec4(int(idx)); err != nil {
			return nil, fmt.Errorf("failed to read weights: %w", err)
		}
	}

	if idx, ok := prim.Indices.Get(); ok {
		if out.Indices, err = e.reader.ReadIndices(idx); err != nil {
			return nil, fmt.Errorf("failed to read indices: %w", err)
		}
	} else {
		out.Indices = make([]uint32, len(out.Positions))
		for i := range out.Indices {
			out.Indices[i] = uint32(i)
		}
	}

	if out.Normals == nil && prim.Mode == document.ModeTriangles && len(out.Indices) >= 3 {
		out.Normals = generateNormals(out.Positions, out.Indices)
		out.GeneratedNormals = true
	}
	out.BoundsMin, out.BoundsMax = calculateBounds(out.Positions)
	return out, nil
}

// readColors widens VEC3 colors to opaque VEC4 and decodes normalized integers.
func (e *meshExtractor) readColors(index int) ([]common.Vec4, error) {
	acc := &e.asset.Document.Accessors[index]
	if acc.ComponentType == document.ComponentFloat {
		switch acc.Type {
		case document.AccessorVec4:
			return e.reader.ReadVec4(index)
		case document.AccessorVec3:
			rgb, err := e.reader.ReadVec3(index)
			if err != nil {
				return nil, err
			}
			colors := make([]common.Vec4, len(rgb))
			for i, c := range rgb {
				colors[i] = common.Vec4{c[0], c[1], c[2], 1}
			}
			return colors, nil
		}
	}

	var scale float32
	switch acc.ComponentType {
	case document.ComponentUnsignedByte:
		scale = 255
	case document.ComponentUnsignedShort:
		scale = 65535
	default:
		return nil, fmt.Errorf("%w: unsupported color format %s %s", ErrAccessor, acc.Type, acc.ComponentType)
	}
	comps := acc.Type.Components()
	if comps != 3 && comps != 4 {
		return nil, fmt.Errorf("%w: unsupported color format %s %s", ErrAccessor, acc.Type, acc.ComponentType)
	}

	data, err := e.reader.ReadAccessorData(index)
	if err != nil {
		return nil, err
	}
	size := acc.ComponentType.Size()
	colors := make([]common.Vec4, acc.Count)
	for i := range colors {
		colors[i][3] = 1
		for c := 0; c < comps; c++ {
			off := (i*comps + c) * size
			var v uint16
			if size == 1 {
				v = uint16(data[off])
			} else {
				v = uint16(data[off]) | uint16(data[off+1])<<8
			}
			colors[i][c] = float32(v) / scale
		}
	}
	return colors, nil
}

// calculateBounds computes the axis-aligned bounding box for positions.
func calculateBounds(positions []common.Vec3) (common.Vec3, common.Vec3) {
	if len(positions) == 0 {
		return common.Vec3{}, common.Vec3{}
	}
	bmin, bmax := positions[0], positions[0]
	for _, pos := range positions[1:] {
		for j := 0; j < 3; j++ {
			bmin[j] = min(bmin[j], pos[j])
			bmax[j] = max(bmax[j], pos[j])
		}
	}
	return bmin, bmax
}

// generateNormals computes smooth vertex normals from triangle geometry.
// Face normals are accumulated area-weighted onto each vertex, then normalized;
// vertices touched by no triangle get the up vector.
//
// Parameters:
//   - positions: the vertex positions
//   - indices: the triangle index list
//
// Returns:
//   - []common.Vec3: one unit normal per position
func generateNormals(positions []common.Vec3, indices []uint32) []common.Vec3 {
	n := len(positions)
	accum := make([]common.Vec3, n)

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		if int(i0) >= n || int(i1) >= n || int(i2) >= n {
			continue
		}
		p0, p1, p2 := positions[i0], positions[i1], positions[i2]
		edge1 := common.Vec3{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]}
		edge2 := common.Vec3{p2[0] - p0[0], p2[1] - p0[1], p2[2] - p0[2]}

		face := common.Vec3{
			edge1[1]*edge2[2] - edge1[2]*edge2[1],
			edge1[2]*edge2[0] - edge1[0]*edge2[2],
			edge1[0]*edge2[1] - edge1[1]*edge2[0],
		}
		for _, idx := range []uint32{i0, i1, i2} {
			accum[idx][0] += face[0]
			accum[idx][1] += face[1]
			accum[idx][2] += face[2]
		}
	}

	for i := range accum {
		a := accum[i]
		length := float32(math.Sqrt(float64(a[0]*a[0] + a[1]*a[1] + a[2]*a[2])))
		if length < 1e-6 {
			accum[i] = common.Vec3{0, 1, 0}
			continue
		}
		accum[i] = common.Vec3{a[0] / length, a[1] / length, a[2] / length}
	}
	return accum
}

package loader

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-gltf/common"
	"github.com/Carmen-Shannon/oxy-gltf/engine/document"
)

// accessorReader is the implementation of the AccessorReader interface.
type accessorReader struct {
	asset *Asset

	mu sync.Mutex
	// decoded caches data URI buffers by buffer index
	decoded map[uint32][]byte
}

// AccessorReader decodes accessor data from an asset's binary chunks.
// The n-th embedded buffer of the document is backed by the n-th binary chunk
// of the container. External buffers can be read only when their URI is an
// inline base64 data URI.
type AccessorReader interface {
	// ReadAccessorData reads the raw, tightly packed bytes of an accessor.
	// Interleaved buffer views are de-strided.
	//
	// Parameters:
	//   - index: the index of the accessor
	//
	// Returns:
	//   - []byte: count * element size bytes
	//   - error: ErrAccessor if the accessor or its data is out of range
	ReadAccessorData(index int) ([]byte, error)

	// ReadScalar reads a SCALAR FLOAT accessor.
	//
	// Parameters:
	//   - index: the index of the accessor
	//
	// Returns:
	//   - []float32: the scalar data
	//   - error: error if reading fails
	ReadScalar(index int) ([]float32, error)

	// ReadVec2 reads a VEC2 FLOAT accessor.
	//
	// Parameters:
	//   - index: the index of the accessor
	//
	// Returns:
	//   - [][2]float32: the vec2 data
	//   - error: error if reading fails
	ReadVec2(index int) ([][2]float32, error)

	// ReadVec3 reads a VEC3 FLOAT accessor.
	//
	// Parameters:
	//   - index: the index of the accessor
	//
	// Returns:
	//   - []common.Vec3: the vec3 data
	//   - error: error if reading fails
	ReadVec3(index int) ([]common.Vec3, error)

	// ReadVec4 reads a VEC4 FLOAT accessor.
	//
	// Parameters:
	//   - index: the index of the accessor
	//
	// Returns:
	//   - []common.Vec4: the vec4 data
	//   - error: error if reading fails
	ReadVec4(index int) ([]common.Vec4, error)

	// ReadMat4 reads a MAT4 FLOAT accessor.
	//
	// Parameters:
	//   - index: the index of the accessor
	//
	// Returns:
	//   - []common.Mat4: the column-major matrices
	//   - error: error if reading fails
	ReadMat4(index int) ([]common.Mat4, error)

	// ReadIndices reads a SCALAR accessor of unsigned byte, short or int components, widened to uint32.
	//
	// Parameters:
	//   - index: the index of the accessor
	//
	// Returns:
	//   - []uint32: the index data
	//   - error: error if reading fails
	ReadIndices(index int) ([]uint32, error)

	// ReadJoints reads a VEC4 accessor of unsigned byte or short components, widened to uint32.
	//
	// Parameters:
	//   - index: the index of the accessor
	//
	// Returns:
	//   - [][4]uint32: the joint index data
	//   - error: error if reading fails
	ReadJoints(index int) ([][4]uint32, error)

	// ReadBufferView reads the raw bytes of a buffer view, ignoring its stride.
	//
	// Parameters:
	//   - index: the index of the buffer view
	//
	// Returns:
	//   - []byte: a copy of the view's bytes
	//   - error: ErrAccessor if the view is out of range
	ReadBufferView(index int) ([]byte, error)

	// ReadImage reads the encoded bytes of an image stored in a buffer view or a data URI.
	// Images referencing external files yield ErrAccessor.
	//
	// Parameters:
	//   - index: the index of the image
	//
	// Returns:
	//   - []byte: the encoded image
	//   - string: the MIME type, from the image or the data URI
	//   - error: error if the image cannot be read
	ReadImage(index int) ([]byte, string, error)
}

var _ AccessorReader = &accessorReader{}

// NewAccessorReader creates an AccessorReader over a loaded asset.
//
// Parameters:
//   - asset: the asset whose document and binary chunks are read
//
// Returns:
//   - AccessorReader: the reader
func NewAccessorReader(asset *Asset) AccessorReader {
	return &accessorReader{asset: asset}
}

func (a *accessorReader) ReadAccessorData(index int) ([]byte, error) {
	acc, err := a.accessor(index)
	if err != nil {
		return nil, err
	}

	bvIndex, ok := acc.BufferView.Get()
	if !ok {
		return nil, fmt.Errorf("%w: accessor %d has no bufferView", ErrAccessor, index)
	}
	doc := a.asset.Document
	if bvIndex >= len(doc.BufferViews) {
		return nil, fmt.Errorf("%w: accessor %d references bufferView %d of %d", ErrAccessor, index, bvIndex, len(doc.BufferViews))
	}
	bv := &doc.BufferViews[bvIndex]

	data, err := a.bufferData(bv.Buffer)
	if err != nil {
		return nil, err
	}

	elementSize := acc.ElementSize()
	if elementSize == 0 {
		return nil, fmt.Errorf("%w: accessor %d has unknown layout %s/%s", ErrAccessor, index, acc.Type, acc.ComponentType)
	}
	stride := elementSize
	if bv.ByteStride > 0 {
		stride = int(bv.ByteStride)
	}

	count := int(acc.Count)
	bufferOffset := int(bv.ByteOffset) + int(acc.ByteOffset)
	if count > 0 {
		end := bufferOffset + (count-1)*stride + elementSize
		if end > len(data) || end > int(bv.ByteOffset)+int(bv.ByteLength) {
			return nil, fmt.Errorf("%w: accessor %d reads past its buffer view", ErrAccessor, index)
		}
	}

	result := make([]byte, count*elementSize)
	for i := 0; i < count; i++ {
		srcOffset := bufferOffset + i*stride
		dstOffset := i * elementSize
		copy(result[dstOffset:dstOffset+elementSize], data[srcOffset:srcOffset+elementSize])
	}

	return result, nil
}

func (a *accessorReader) ReadScalar(index int) ([]float32, error) {
	return readFloats[float32](a, index, document.AccessorScalar)
}

func (a *accessorReader) ReadVec2(index int) ([][2]float32, error) {
	return readFloats[[2]float32](a, index, document.AccessorVec2)
}

func (a *accessorReader) ReadVec3(index int) ([]common.Vec3, error) {
	return readFloats[common.Vec3](a, index, document.AccessorVec3)
}

func (a *accessorReader) ReadVec4(index int) ([]common.Vec4, error) {
	return readFloats[common.Vec4](a, index, document.AccessorVec4)
}

func (a *accessorReader) ReadMat4(index int) ([]common.Mat4, error) {
	return readFloats[common.Mat4](a, index, document.AccessorMat4)
}

func (a *accessorReader) ReadIndices(index int) ([]uint32, error) {
	acc, err := a.accessor(index)
	if err != nil {
		return nil, err
	}
	if acc.Type != document.AccessorScalar {
		return nil, fmt.Errorf("%w: index accessor %d is not SCALAR: type=%s", ErrAccessor, index, acc.Type)
	}

	data, err := a.ReadAccessorData(index)
	if err != nil {
		return nil, err
	}

	result := make([]uint32, acc.Count)
	switch acc.ComponentType {
	case document.ComponentUnsignedByte:
		for i := range result {
			result[i] = uint32(data[i])
		}
	case document.ComponentUnsignedShort:
		for i := range result {
			result[i] = uint32(binary.LittleEndian.Uint16(data[i*2:]))
		}
	case document.ComponentUnsignedInt:
		if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, result); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unsupported index component type: %s", ErrAccessor, acc.ComponentType)
	}

	return result, nil
}

func (a *accessorReader) ReadJoints(index int) ([][4]uint32, error) {
	acc, err := a.accessor(index)
	if err != nil {
		return nil, err
	}
	if acc.Type != document.AccessorVec4 {
		return nil, fmt.Errorf("%w: joints accessor %d is not VEC4: type=%s", ErrAccessor, index, acc.Type)
	}

	data, err := a.ReadAccessorData(index)
	if err != nil {
		return nil, err
	}

	result := make([][4]uint32, acc.Count)
	switch acc.ComponentType {
	case document.ComponentUnsignedByte:
		for i := range result {
			v := data[i*4 : i*4+4]
			result[i] = [4]uint32{uint32(v[0]), uint32(v[1]), uint32(v[2]), uint32(v[3])}
		}
	case document.ComponentUnsignedShort:
		for i := range result {
			for j := 0; j < 4; j++ {
				result[i][j] = uint32(binary.LittleEndian.Uint16(data[i*8+j*2:]))
			}
		}
	default:
		return nil, fmt.Errorf("%w: unsupported joints component type: %s", ErrAccessor, acc.ComponentType)
	}

	return result, nil
}

// --- Helper Functions ---

func (a *accessorReader) accessor(index int) (*document.Accessor, error) {
	if a.asset == nil || a.asset.Document == nil {
		return nil, fmt.Errorf("%w: no document loaded", ErrAccessor)
	}
	accessors := a.asset.Document.Accessors
	if index < 0 || index >= len(accessors) {
		return nil, fmt.Errorf("%w: accessor index %d out of range", ErrAccessor, index)
	}
	return &accessors[index], nil
}

// bufferData returns the bytes backing buffer index.
func (a *accessorReader) bufferData(index uint32) ([]byte, error) {
	buffers := a.asset.Document.Buffers
	if int(index) >= len(buffers) {
		return nil, fmt.Errorf("%w: buffer index %d out of range", ErrAccessor, index)
	}

	switch b := buffers[index].(type) {
	case document.EmbeddedBuffer:
		chunk := 0
		for _, prev := range buffers[:index] {
			if _, ok := prev.(document.EmbeddedBuffer); ok {
				chunk++
			}
		}
		if chunk >= len(a.asset.Binary) {
			return nil, fmt.Errorf("%w: buffer %d has no binary chunk", ErrAccessor, index)
		}
		return a.asset.Binary[chunk], nil
	case document.ExternalBuffer:
		if !isDataURI(b.URI) {
			return nil, fmt.Errorf("%w: buffer %d is external (%s)", ErrAccessor, index, b.URI)
		}
		a.mu.Lock()
		defer a.mu.Unlock()
		if data, ok := a.decoded[index]; ok {
			return data, nil
		}
		data, _, err := decodeDataURI(b.URI)
		if err != nil {
			return nil, fmt.Errorf("%w: buffer %d: %w", ErrAccessor, index, err)
		}
		if a.decoded == nil {
			a.decoded = make(map[uint32][]byte)
		}
		a.decoded[index] = data
		return data, nil
	default:
		return nil, fmt.Errorf("%w: buffer %d has unknown variant %T", ErrAccessor, index, b)
	}
}

func (a *accessorReader) ReadBufferView(index int) ([]byte, error) {
	if a.asset == nil || a.asset.Document == nil {
		return nil, fmt.Errorf("%w: no document loaded", ErrAccessor)
	}
	views := a.asset.Document.BufferViews
	if index < 0 || index >= len(views) {
		return nil, fmt.Errorf("%w: bufferView index %d out of range", ErrAccessor, index)
	}
	bv := &views[index]

	data, err := a.bufferData(bv.Buffer)
	if err != nil {
		return nil, err
	}
	end := int(bv.ByteOffset) + int(bv.ByteLength)
	if end > len(data) {
		return nil, fmt.Errorf("%w: bufferView %d exceeds buffer bounds: offset=%d length=%d bufSize=%d", ErrAccessor, index, bv.ByteOffset, bv.ByteLength, len(data))
	}
	return bytes.Clone(data[bv.ByteOffset:end]), nil
}

func (a *accessorReader) ReadImage(index int) ([]byte, string, error) {
	if a.asset == nil || a.asset.Document == nil {
		return nil, "", fmt.Errorf("%w: no document loaded", ErrAccessor)
	}
	images := a.asset.Document.Images
	if index < 0 || index >= len(images) {
		return nil, "", fmt.Errorf("%w: image index %d out of range", ErrAccessor, index)
	}

	switch img := images[index].(type) {
	case document.EmbeddedImage:
		data, err := a.ReadBufferView(int(img.BufferView))
		if err != nil {
			return nil, "", fmt.Errorf("failed to read image buffer view: %w", err)
		}
		return data, img.MimeType, nil
	case document.ExternalImage:
		if !isDataURI(img.URI) {
			return nil, "", fmt.Errorf("%w: image %d is external (%s)", ErrAccessor, index, img.URI)
		}
		data, mimeType, err := decodeDataURI(img.URI)
		if err != nil {
			return nil, "", fmt.Errorf("%w: image %d: %w", ErrAccessor, index, err)
		}
		return data, common.Coalesce(img.MimeType, mimeType), nil
	default:
		return nil, "", fmt.Errorf("%w: image %d has unknown variant %T", ErrAccessor, index, img)
	}
}

// readFloats decodes a FLOAT accessor of the given type into fixed size elements of T.
func readFloats[T any](a *accessorReader, index int, typ document.AccessorType) ([]T, error) {
	acc, err := a.accessor(index)
	if err != nil {
		return nil, err
	}
	if acc.Type != typ || acc.ComponentType != document.ComponentFloat {
		return nil, fmt.Errorf("%w: accessor %d is not %s FLOAT: type=%s, componentType=%s", ErrAccessor, index, typ, acc.Type, acc.ComponentType)
	}

	data, err := a.ReadAccessorData(index)
	if err != nil {
		return nil, err
	}

	result := make([]T, acc.Count)
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, result); err != nil {
		return nil, err
	}
	return result, nil
}

package loader

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/Carmen-Shannon/oxy-gltf/common"
)

// ChunkType identifies the payload of a container chunk.
type ChunkType uint32

// Container magic and chunk type constants (little-endian ASCII).
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#glb-file-format-specification
const (
	ContainerMagic uint32    = 0x46546C67 // "glTF"
	ChunkJSON      ChunkType = 0x4E4F534A // "JSON"
	ChunkBIN       ChunkType = 0x004E4942 // "BIN\0"
)

const (
	containerHeaderSize = 12

	// chunk payloads are read in steps of at most this size so a bogus
	// length does not trigger a huge up-front allocation
	chunkReadStep = 1 << 20
)

func (t ChunkType) String() string {
	switch t {
	case ChunkJSON:
		return "JSON"
	case ChunkBIN:
		return "BIN"
	default:
		return fmt.Sprintf("CHUNK(%08X)", uint32(t))
	}
}

// ContainerHeader is the fixed 12 byte container header.
// Version and Length are reported as read; neither is checked against the stream.
type ContainerHeader struct {
	Magic   uint32
	Version uint32
	Length  uint32
}

// glbChunkHeader is the 8 byte sub-header preceding every chunk payload.
type glbChunkHeader struct {
	ChunkLength uint32
	ChunkType   uint32
}

// Chunk is one demultiplexed container chunk.
type Chunk struct {
	Type ChunkType
	Data []byte
}

// ChunkReader iterates over the chunks of a binary container.
type ChunkReader struct {
	r      io.Reader
	header ContainerHeader
	err    error
}

// NewChunkReader reads and verifies the container header.
//
// Parameters:
//   - r: a reader positioned at the first byte of the container
//
// Returns:
//   - *ChunkReader: a reader positioned at the first chunk
//   - error: ErrTruncatedInput for a short header, ErrFormat for a bad magic tag
func NewChunkReader(r io.Reader) (*ChunkReader, error) {
	var header ContainerHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, readError("container header", err)
	}
	if header.Magic != ContainerMagic {
		return nil, fmt.Errorf("%w: bad magic %08X", ErrFormat, header.Magic)
	}
	return &ChunkReader{r: r, header: header}, nil
}

// Header returns the container header.
func (c *ChunkReader) Header() ContainerHeader {
	return c.header
}

// Next returns the next chunk, skipping its alignment padding.
// It returns io.EOF when the stream ends cleanly at a chunk boundary.
//
// Returns:
//   - Chunk: the chunk type and payload
//   - error: io.EOF at the end, ErrTruncatedInput for a short sub-header or payload
func (c *ChunkReader) Next() (Chunk, error) {
	if c.err != nil {
		return Chunk{}, c.err
	}

	var ch glbChunkHeader
	if err := binary.Read(c.r, binary.LittleEndian, &ch); err != nil {
		if err == io.EOF {
			c.err = io.EOF
		} else {
			c.err = readError("chunk header", err)
		}
		return Chunk{}, c.err
	}

	var buf bytes.Buffer
	buf.Grow(int(min(ch.ChunkLength, chunkReadStep)))
	if n, err := io.CopyN(&buf, c.r, int64(ch.ChunkLength)); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		c.err = readError(fmt.Sprintf("chunk payload (%d of %d bytes)", n, ch.ChunkLength), err)
		return Chunk{}, c.err
	}

	// a final chunk without its padding is tolerated
	if pad := chunkPadding(ch.ChunkLength); pad > 0 {
		if _, err := io.CopyN(io.Discard, c.r, int64(pad)); err != nil {
			if err != io.EOF {
				c.err = readError("chunk padding", err)
				return Chunk{}, c.err
			}
			c.err = io.EOF
		}
	}

	common.LogDebug("container chunk %s: %d bytes", ChunkType(ch.ChunkType), ch.ChunkLength)
	return Chunk{Type: ChunkType(ch.ChunkType), Data: buf.Bytes()}, nil
}

// Container is a fully demultiplexed binary container.
type Container struct {
	Header ContainerHeader
	JSON   []byte
	Binary [][]byte
}

// ReadContainer reads every chunk of a container. Chunks of unknown type are skipped.
//
// Parameters:
//   - r: a reader positioned at the first byte of the container
//
// Returns:
//   - *Container: the header, JSON chunk and binary chunks in order
//   - error: error if the container is malformed or has no JSON chunk
func ReadContainer(r io.Reader) (*Container, error) {
	cr, err := NewChunkReader(r)
	if err != nil {
		return nil, err
	}

	c := &Container{Header: cr.Header()}
	for {
		chunk, err := cr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch chunk.Type {
		case ChunkJSON:
			if c.JSON != nil {
				return nil, fmt.Errorf("%w: duplicate JSON chunk", ErrFormat)
			}
			c.JSON = chunk.Data
		case ChunkBIN:
			c.Binary = append(c.Binary, chunk.Data)
		default:
			common.LogDebug("skipping container chunk %s", chunk.Type)
		}
	}

	if c.JSON == nil {
		return nil, ErrMissingJSONChunk
	}
	return c, nil
}

// IsContainer reports whether data starts with the container magic tag.
func IsContainer(data []byte) bool {
	return len(data) >= 4 && binary.LittleEndian.Uint32(data[:4]) == ContainerMagic
}

// --- Helper Functions ---

// chunkPadding returns the number of bytes that align a payload of the given length to 4 bytes.
func chunkPadding(length uint32) uint32 {
	if length&3 != 0 {
		return 4 - length&3
	}
	return 0
}

func readError(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %s", ErrTruncatedInput, what)
	}
	return fmt.Errorf("failed to read %s: %w", what, err)
}

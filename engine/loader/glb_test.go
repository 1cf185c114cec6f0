package loader

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkReaderPadding(t *testing.T) {
	jsonData := []byte("hello")
	binData := []byte{1, 2, 3, 4, 5, 6}
	data := buildContainer(2,
		Chunk{Type: ChunkJSON, Data: jsonData},
		Chunk{Type: ChunkBIN, Data: binData},
	)
	// 12 header + (8+5+3) + (8+6+2)
	require.Len(t, data, 44)

	cr, err := NewChunkReader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, ContainerHeader{Magic: ContainerMagic, Version: 2, Length: 44}, cr.Header())

	chunk, err := cr.Next()
	require.NoError(t, err)
	assert.Equal(t, ChunkJSON, chunk.Type)
	assert.Equal(t, jsonData, chunk.Data)

	chunk, err = cr.Next()
	require.NoError(t, err)
	assert.Equal(t, ChunkBIN, chunk.Type)
	assert.Equal(t, binData, chunk.Data)

	_, err = cr.Next()
	assert.Equal(t, io.EOF, err)
	_, err = cr.Next()
	assert.Equal(t, io.EOF, err)
}

func TestChunkReaderVersionNotValidated(t *testing.T) {
	data := buildContainer(7, Chunk{Type: ChunkJSON, Data: []byte("{}  ")})
	cr, err := NewChunkReader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.EqualValues(t, 7, cr.Header().Version)
}

func TestChunkReaderBadMagic(t *testing.T) {
	data := buildContainer(2, Chunk{Type: ChunkJSON, Data: []byte("{}")})
	copy(data, "glTX")

	_, err := NewChunkReader(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrFormat)
}

func TestChunkReaderTruncated(t *testing.T) {
	full := buildContainer(2, Chunk{Type: ChunkJSON, Data: []byte(`{"asset":{}}`)})

	t.Run("empty", func(t *testing.T) {
		_, err := NewChunkReader(bytes.NewReader(nil))
		assert.ErrorIs(t, err, ErrTruncatedInput)
	})

	t.Run("short header", func(t *testing.T) {
		_, err := NewChunkReader(bytes.NewReader(full[:8]))
		assert.ErrorIs(t, err, ErrTruncatedInput)
	})

	t.Run("short chunk header", func(t *testing.T) {
		cr, err := NewChunkReader(bytes.NewReader(full[:16]))
		require.NoError(t, err)
		_, err = cr.Next()
		assert.ErrorIs(t, err, ErrTruncatedInput)
	})

	t.Run("short payload", func(t *testing.T) {
		cr, err := NewChunkReader(bytes.NewReader(full[:24]))
		require.NoError(t, err)
		_, err = cr.Next()
		assert.ErrorIs(t, err, ErrTruncatedInput)

		// the reader stays failed
		_, again := cr.Next()
		assert.Equal(t, err, again)
	})

	t.Run("declared length beyond stream", func(t *testing.T) {
		var buf bytes.Buffer
		_ = binary.Write(&buf, binary.LittleEndian, ContainerHeader{Magic: ContainerMagic, Version: 2, Length: 1 << 30})
		_ = binary.Write(&buf, binary.LittleEndian, glbChunkHeader{ChunkLength: 1 << 30, ChunkType: uint32(ChunkBIN)})
		buf.Write([]byte{1, 2, 3})

		cr, err := NewChunkReader(&buf)
		require.NoError(t, err)
		_, err = cr.Next()
		assert.ErrorIs(t, err, ErrTruncatedInput)
	})
}

func TestChunkReaderMissingFinalPadding(t *testing.T) {
	data := buildContainer(2, Chunk{Type: ChunkBIN, Data: []byte{9, 9, 9}})
	data = data[:len(data)-1]

	cr, err := NewChunkReader(bytes.NewReader(data))
	require.NoError(t, err)

	chunk, err := cr.Next()
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 9, 9}, chunk.Data)

	_, err = cr.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReadContainer(t *testing.T) {
	data := buildContainer(2,
		Chunk{Type: ChunkJSON, Data: []byte("{}")},
		Chunk{Type: ChunkType(0x12345678), Data: []byte("skip me")},
		Chunk{Type: ChunkBIN, Data: []byte{1}},
		Chunk{Type: ChunkBIN, Data: []byte{2, 2}},
	)

	c, err := ReadContainer(bytes.NewReader(data))
	require.NoError(t, err)
	assert.EqualValues(t, 2, c.Header.Version)
	assert.Equal(t, []byte("{}"), c.JSON)
	assert.Equal(t, [][]byte{{1}, {2, 2}}, c.Binary)
}

func TestReadContainerErrors(t *testing.T) {
	t.Run("missing JSON", func(t *testing.T) {
		data := buildContainer(2, Chunk{Type: ChunkBIN, Data: []byte{1, 2, 3, 4}})
		_, err := ReadContainer(bytes.NewReader(data))
		assert.ErrorIs(t, err, ErrMissingJSONChunk)
	})

	t.Run("duplicate JSON", func(t *testing.T) {
		data := buildContainer(2,
			Chunk{Type: ChunkJSON, Data: []byte("{}")},
			Chunk{Type: ChunkJSON, Data: []byte("{}")},
		)
		_, err := ReadContainer(bytes.NewReader(data))
		assert.ErrorIs(t, err, ErrFormat)
	})
}

func TestIsContainer(t *testing.T) {
	assert.True(t, IsContainer(buildContainer(2)))
	assert.False(t, IsContainer([]byte(`{"asset":{}}`)))
	assert.False(t, IsContainer([]byte("glT")))
}

func TestChunkPadding(t *testing.T) {
	for length, want := range map[uint32]uint32{0: 0, 1: 3, 2: 2, 3: 1, 4: 0, 5: 3, 8: 0} {
		assert.Equal(t, want, chunkPadding(length), "length %d", length)
	}
	assert.Equal(t, "JSON", ChunkJSON.String())
	assert.Equal(t, "BIN", ChunkBIN.String())
}

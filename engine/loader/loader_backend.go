package loader

import (
	"fmt"
	"io"

	"github.com/Carmen-Shannon/oxy-gltf/common"
	"github.com/Carmen-Shannon/oxy-gltf/engine/document"
)

// loaderBackend defines how JSON text reaches the parser.
// Concrete implementations differ only in how they feed it.
type loaderBackend interface {
	// Decode parses the JSON text read from r into doc.
	//
	// Parameters:
	//   - r: the reader providing the JSON text
	//   - doc: the destination document
	//   - options: options for the parser
	//
	// Returns:
	//   - error: error if reading or parsing fails
	Decode(r io.Reader, doc *document.Document, options ...ParserBuilderOption) error
}

var (
	_ loaderBackend = &scannerLoaderBackend{}
	_ loaderBackend = &wholeLoaderBackend{}
)

// scannerLoaderBackend feeds fixed size fragments as they are read, so the
// JSON text is never held in memory as a whole.
type scannerLoaderBackend struct {
	chunkSize int
}

func newScannerLoaderBackend(chunkSize int) *scannerLoaderBackend {
	return &scannerLoaderBackend{chunkSize: common.Coalesce(chunkSize, DefaultChunkSize)}
}

func (b *scannerLoaderBackend) Decode(r io.Reader, doc *document.Document, options ...ParserBuilderOption) error {
	p := NewParser(doc, options...)
	buf := make([]byte, b.chunkSize)
	feeds := 0
	for {
		n, err := r.Read(buf)
		if n > 0 {
			feeds++
			if _, ferr := p.Feed(buf[:n]); ferr != nil {
				return ferr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read JSON text: %w", err)
		}
	}
	common.LogDebug("scanner backend: %d feeds of up to %d bytes", feeds, b.chunkSize)
	return p.Finish()
}

// wholeLoaderBackend reads the JSON text fully and parses it in one feed.
type wholeLoaderBackend struct{}

func newWholeLoaderBackend() *wholeLoaderBackend {
	return &wholeLoaderBackend{}
}

func (b *wholeLoaderBackend) Decode(r io.Reader, doc *document.Document, options ...ParserBuilderOption) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read JSON text: %w", err)
	}
	return ParseBytes(doc, data, options...)
}

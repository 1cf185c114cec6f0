package document

// Buffer is either an EmbeddedBuffer or an ExternalBuffer.
// Consumers are expected to switch on the concrete type.
type Buffer interface {
	// Length returns the declared byte length.
	Length() uint32
	isBuffer()
}

// EmbeddedBuffer is a buffer without a URI; its bytes live in the container's binary chunk.
type EmbeddedBuffer struct {
	Name       string
	ByteLength uint32
}

// ExternalBuffer is a buffer referenced by URI. The URI is never resolved by this module.
type ExternalBuffer struct {
	Name       string
	ByteLength uint32
	URI        string
}

func (b EmbeddedBuffer) Length() uint32 { return b.ByteLength }
func (b ExternalBuffer) Length() uint32 { return b.ByteLength }

func (EmbeddedBuffer) isBuffer() {}
func (ExternalBuffer) isBuffer() {}

// NewBuffer picks the variant: an empty URI selects EmbeddedBuffer.
func NewBuffer(name string, byteLength uint32, uri string) Buffer {
	if uri == "" {
		return EmbeddedBuffer{Name: name, ByteLength: byteLength}
	}
	return ExternalBuffer{Name: name, ByteLength: byteLength, URI: uri}
}

// Image is either an EmbeddedImage or an ExternalImage.
type Image interface {
	// ImageName returns the optional image name.
	ImageName() string
	isImage()
}

// EmbeddedImage is stored in a buffer view.
type EmbeddedImage struct {
	Name       string
	MimeType   string
	BufferView uint64
}

// ExternalImage is referenced by URI.
type ExternalImage struct {
	Name     string
	URI      string
	MimeType string
}

func (i EmbeddedImage) ImageName() string { return i.Name }
func (i ExternalImage) ImageName() string { return i.Name }

func (EmbeddedImage) isImage() {}
func (ExternalImage) isImage() {}

// NewImage picks the variant: a valid buffer view selects EmbeddedImage.
func NewImage(name, uri, mimeType string, bufferView Ordinal) Image {
	if idx, ok := bufferView.Get(); ok {
		return EmbeddedImage{Name: name, MimeType: mimeType, BufferView: uint64(idx)}
	}
	return ExternalImage{Name: name, URI: uri, MimeType: mimeType}
}

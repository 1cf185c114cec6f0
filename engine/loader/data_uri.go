package loader

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const dataURIPrefix = "data:"

var errMalformedDataURI = errors.New("malformed data URI")

func isDataURI(uri string) bool {
	return strings.HasPrefix(uri, dataURIPrefix)
}

// decodeDataURI decodes an inline data URI into raw bytes and its MIME type.
// Format: data:[<mediatype>][;base64],<data>
func decodeDataURI(uri string) ([]byte, string, error) {
	if !isDataURI(uri) {
		return nil, "", fmt.Errorf("%w: missing %q prefix", errMalformedDataURI, dataURIPrefix)
	}
	header, encoded, ok := strings.Cut(uri[len(dataURIPrefix):], ",")
	if !ok {
		return nil, "", fmt.Errorf("%w: no comma found", errMalformedDataURI)
	}

	mimeType, isBase64 := strings.CutSuffix(header, ";base64")
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}

	if !isBase64 {
		data, err := url.PathUnescape(encoded)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %w", errMalformedDataURI, err)
		}
		return []byte(data), mimeType, nil
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode base64: %w", err)
	}
	return data, mimeType, nil
}

package request

import (
	"strings"
)

// DefaultContentType is injected when a resolved request has no Content-Type
const DefaultContentType = "application/json"

// BodyEncoding tells how a request body is serialized
type BodyEncoding int

const (
	EncodingUnsupported BodyEncoding = iota
	EncodingJSON
	EncodingForm
	EncodingOpaque
)

// MediaType returns the content type up to the first ';', trimmed and lower-cased
func MediaType(contentType string) string {
	mt, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}

// EncodingFor maps a media type to its body encoding
func EncodingFor(mediaType string) BodyEncoding {
	switch mediaType {
	case "application/json":
		return EncodingJSON
	case "application/x-www-form-urlencoded", "multipart/form-data":
		return EncodingForm
	case "application/xml", "application/octet-stream":
		return EncodingOpaque
	}
	if strings.HasPrefix(mediaType, "text/") {
		return EncodingOpaque
	}
	return EncodingUnsupported
}

package enums

import "fmt"

// MediaContentType categorizes a product media entry. Entries with an
// unrecognized content type are excluded from viewer payloads entirely.
type MediaContentType string

const (
	MediaContentTypeImage MediaContentType = "image"
	MediaContentTypeVideo MediaContentType = "video"
)

var validMediaContentTypes = []MediaContentType{
	MediaContentTypeImage,
	MediaContentTypeVideo,
}

func (m MediaContentType) String() string {
	return string(m)
}

// IsValid reports whether the value is a renderable content type.
func (m MediaContentType) IsValid() bool {
	for _, candidate := range validMediaContentTypes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMediaContentType converts raw input into a MediaContentType.
func ParseMediaContentType(value string) (MediaContentType, error) {
	for _, candidate := range validMediaContentTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid media content type %q", value)
}

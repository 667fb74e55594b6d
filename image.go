package stylist

// MediaTypeJPEG is the media type attached to uploaded images.
const MediaTypeJPEG = "image/jpeg"

// Image is base64-encoded image data tagged with its media type.
type Image struct {
	Base64   string
	MimeType string
}

// NewJPEG wraps base64 data as a JPEG image.
func NewJPEG(base64Data string) Image {
	return Image{Base64: base64Data, MimeType: MediaTypeJPEG}
}

// MediaType returns the image's media type, defaulting to JPEG.
func (i Image) MediaType() string {
	if i.MimeType == "" {
		return MediaTypeJPEG
	}
	return i.MimeType
}

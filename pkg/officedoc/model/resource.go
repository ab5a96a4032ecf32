package model

import "strings"

// ResourceType classifies an embedded binary resource.
type ResourceType int

const (
	ResourceImage ResourceType = iota
	ResourceAudio
	ResourceVideo
	ResourceChart
	ResourceOle
	ResourceOther
)

func (t ResourceType) String() string {
	switch t {
	case ResourceImage:
		return "Image"
	case ResourceAudio:
		return "Audio"
	case ResourceVideo:
		return "Video"
	case ResourceChart:
		return "Chart"
	case ResourceOle:
		return "Ole"
	default:
		return "Other"
	}
}

// Resource is a binary payload owned by the Document, keyed by the
// relationship id that introduced it. Data is excluded from JSON
// serialization — officedoc's JSON output is a structural document tree,
// not a byte-for-byte archive.
type Resource struct {
	ResourceType ResourceType `json:"resource_type"`
	Filename     string       `json:"filename,omitempty"`
	MimeType     string       `json:"mime_type,omitempty"`
	Data         []byte       `json:"-"`
	Size         int          `json:"size"`
	Width        int          `json:"width,omitempty"`
	Height       int          `json:"height,omitempty"`
	AltText      string       `json:"alt_text,omitempty"`
}

// mimeExt maps a MIME type to its canonical export extension. Only the
// handful of types actually produced by the parsers are listed; for any
// other type SuggestedFilename uses the subtype of an "image/" MIME type
// and "bin" otherwise.
var mimeExt = map[string]string{
	"image/png":                "png",
	"image/jpeg":               "jpg",
	"image/gif":                "gif",
	"image/bmp":                "bmp",
	"image/tiff":               "tiff",
	"image/x-emf":              "emf",
	"image/x-wmf":              "wmf",
	"image/svg+xml":            "svg",
	"audio/mpeg":               "mp3",
	"audio/wav":                "wav",
	"video/mp4":                "mp4",
	"application/octet-stream": "bin",
}

// SuggestedFilename implements the export filename rule from the data model:
// the original filename if known, else "{id}.{ext}" where ext is derived
// from the MIME type.
func (r *Resource) SuggestedFilename(id string) string {
	if r.Filename != "" {
		return r.Filename
	}
	ext, ok := mimeExt[strings.ToLower(r.MimeType)]
	if !ok {
		if strings.HasPrefix(r.MimeType, "image/") {
			ext = strings.TrimPrefix(strings.ToLower(r.MimeType), "image/")
		} else {
			ext = "bin"
		}
	}
	return id + "." + ext
}

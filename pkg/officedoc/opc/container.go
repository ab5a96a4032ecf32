package opc

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/vortex/officedoc/pkg/officedoc/model"
)

// Container gives uniform read access to a ZIP-packaged OOXML file: part
// lookup by archive path, relationship-manifest parsing, and core-metadata
// extraction. It never writes — officedoc has no authoring/round-trip path.
//
// The archive is materialized into memory at open-time (spec §4.1: streaming
// is not required); subsequent part reads are in-memory only.
type Container struct {
	files map[string][]byte
	names []string // sorted for deterministic ListFiles output
}

// zipMagic is the four-byte ZIP local-file-header signature.
var zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}

// HasZipMagic reports whether data begins with the ZIP local-file-header
// signature `50 4B 03 04`.
func HasZipMagic(data []byte) bool {
	return len(data) >= 4 && bytes.Equal(data[:4], zipMagic)
}

// Open opens a ZIP-packaged OOXML file from disk.
func Open(path string) (*Container, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, model.NewError(model.ErrIo, err, "reading %q", path)
	}
	return FromBytes(data)
}

// FromBytes opens a ZIP-packaged OOXML file held entirely in memory.
func FromBytes(data []byte) (*Container, error) {
	if !HasZipMagic(data) {
		return nil, model.NewError(model.ErrZipArchive, nil, "missing ZIP magic bytes")
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, model.NewError(model.ErrZipArchive, err, "opening zip archive")
	}
	return fromZipReader(zr)
}

// FromReader opens a ZIP-packaged OOXML file from an io.ReaderAt of known size.
func FromReader(r io.ReaderAt, size int64) (*Container, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, model.NewError(model.ErrZipArchive, err, "opening zip archive")
	}
	return fromZipReader(zr)
}

func fromZipReader(zr *zip.Reader) (*Container, error) {
	c := &Container{files: make(map[string][]byte, len(zr.File))}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, model.NewError(model.ErrZipArchive, err, "opening entry %q", f.Name)
		}
		blob, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, model.NewError(model.ErrZipArchive, err, "reading entry %q", f.Name)
		}
		name := strings.TrimPrefix(f.Name, "/")
		c.files[name] = blob
		c.names = append(c.names, name)
	}
	sort.Strings(c.names)
	return c, nil
}

// Exists reports whether path is present in the archive.
func (c *Container) Exists(path string) bool {
	_, ok := c.files[strings.TrimPrefix(path, "/")]
	return ok
}

// ListFiles returns every archive path, sorted.
func (c *Container) ListFiles() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// ListFilesWithPrefix returns every archive path with the given prefix, sorted.
func (c *Container) ListFilesWithPrefix(prefix string) []string {
	prefix = strings.TrimPrefix(prefix, "/")
	var out []string
	for _, n := range c.names {
		if strings.HasPrefix(n, prefix) {
			out = append(out, n)
		}
	}
	return out
}

// ReadBinary returns the raw bytes of path, or a MissingComponent error.
func (c *Container) ReadBinary(path string) ([]byte, error) {
	blob, ok := c.files[strings.TrimPrefix(path, "/")]
	if !ok {
		return nil, model.NewError(model.ErrMissingComponent, nil, "%s", path)
	}
	return blob, nil
}

var xmlEncodingDecl = regexp.MustCompile(`(?i)encoding\s*=\s*["']([\w-]+)["']`)

// ReadXML returns path's contents decoded to a UTF-8 string: BOM-sniffed for
// UTF-16 (LE/BE) or a UTF-8 BOM, else read per the XML prolog's declared
// encoding, else assumed UTF-8.
func (c *Container) ReadXML(path string) (string, error) {
	blob, err := c.ReadBinary(path)
	if err != nil {
		return "", err
	}
	return decodeXMLBytes(blob)
}

func decodeXMLBytes(blob []byte) (string, error) {
	switch {
	case len(blob) >= 3 && blob[0] == 0xEF && blob[1] == 0xBB && blob[2] == 0xBF:
		return string(blob[3:]), nil
	case len(blob) >= 2 && blob[0] == 0xFF && blob[1] == 0xFE:
		return transcodeUTF16(blob[2:], unicode.LittleEndian)
	case len(blob) >= 2 && blob[0] == 0xFE && blob[1] == 0xFF:
		return transcodeUTF16(blob[2:], unicode.BigEndian)
	}

	// No BOM: check the XML prolog for a declared non-UTF-8 encoding.
	head := blob
	if len(head) > 256 {
		head = head[:256]
	}
	if m := xmlEncodingDecl.FindSubmatch(head); m != nil {
		enc := strings.ToLower(string(m[1]))
		switch enc {
		case "utf-16", "utf-16le":
			return transcodeUTF16(blob, unicode.LittleEndian)
		case "utf-16be":
			return transcodeUTF16(blob, unicode.BigEndian)
		}
	}
	if !utf8.Valid(blob) {
		return "", model.NewError(model.ErrEncoding, nil, "invalid UTF-8 and no recognized encoding declared")
	}
	return string(blob), nil
}

func transcodeUTF16(blob []byte, endian unicode.Endianness) (string, error) {
	decoder := unicode.UTF16(endian, unicode.IgnoreBOM).NewDecoder()
	out, _, err := transform.Bytes(decoder, blob)
	if err != nil {
		return "", model.NewError(model.ErrEncoding, err, "decoding UTF-16")
	}
	return string(out), nil
}

// ReadRelationships computes partPath's relationships-manifest path and
// parses it if present, else returns an empty (non-nil) manifest.
func (c *Container) ReadRelationships(partPath string) (*Relationships, error) {
	relsPath := relsPathFor(partPath)
	if !c.Exists(relsPath) {
		return NewRelationships(), nil
	}
	blob, err := c.ReadBinary(relsPath)
	if err != nil {
		return nil, err
	}
	rels, err := parseRelationships(blob)
	if err != nil {
		return nil, model.NewError(model.ErrXmlParse, err, "parsing %s", relsPath)
	}
	return rels, nil
}

// ReadPackageRelationships parses the fixed package-level manifest at
// "_rels/.rels".
func (c *Container) ReadPackageRelationships() (*Relationships, error) {
	return c.ReadRelationships("/")
}

// ResolvePath performs POSIX-style resolution of a relationship target
// against the part that declared it. An absolute target ("/foo") strips the
// leading slash. A relative target is resolved against base's parent
// directory; ".." pops a segment. The result always uses forward slashes.
func ResolvePath(base, relative string) string {
	if strings.HasPrefix(relative, "/") {
		return strings.TrimPrefix(relative, "/")
	}
	baseDir, _ := splitPath(base)
	segs := []string{}
	if baseDir != "" {
		segs = strings.Split(baseDir, "/")
	}
	for _, part := range strings.Split(relative, "/") {
		switch part {
		case "", ".":
			continue
		case "..":
			if len(segs) > 0 {
				segs = segs[:len(segs)-1]
			}
		default:
			segs = append(segs, part)
		}
	}
	return strings.Join(segs, "/")
}

func readFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

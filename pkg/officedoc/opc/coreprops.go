package opc

import (
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/vortex/officedoc/pkg/officedoc/model"
)

// coreMetadataPath is the fixed archive location of core properties.
const coreMetadataPath = "docProps/core.xml"

// ParseCoreMetadata reads docProps/core.xml, extracting title/creator/
// subject/description/keywords (comma-or-semicolon separated)/created/
// modified. A missing file is not an error — it yields zero-valued Metadata.
func (c *Container) ParseCoreMetadata() (model.Metadata, error) {
	var md model.Metadata
	if !c.Exists(coreMetadataPath) {
		return md, nil
	}
	xmlStr, err := c.ReadXML(coreMetadataPath)
	if err != nil {
		return md, err
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlStr); err != nil {
		return md, model.NewError(model.ErrXmlParse, err, "parsing %s", coreMetadataPath)
	}
	root := doc.Root()
	if root == nil {
		return md, nil
	}

	for _, child := range root.ChildElements() {
		text := strings.TrimSpace(child.Text())
		switch child.Tag {
		case "title":
			md.Title = text
		case "creator":
			md.Author = text
		case "subject":
			md.Subject = text
		case "description":
			md.Description = text
		case "keywords":
			md.Keywords = splitKeywords(text)
		case "lastModifiedBy":
			md.LastModifiedBy = text
		case "created":
			if t, ok := parseISO8601(text); ok {
				md.Created = &t
			}
		case "modified":
			if t, ok := parseISO8601(text); ok {
				md.Modified = &t
			}
		}
	}
	return md, nil
}

func splitKeywords(s string) []string {
	if s == "" {
		return nil
	}
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
	var out []string
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func parseISO8601(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05Z", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

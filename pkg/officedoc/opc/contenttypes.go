package opc

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/vortex/officedoc/pkg/officedoc/model"
)

// ContentTypesPath is the fixed location of the package's content-type index.
const ContentTypesPath = "[Content_Types].xml"

// ContentTypes is the parsed [Content_Types].xml index: per-extension
// defaults and per-part overrides.
type ContentTypes struct {
	Defaults  map[string]string // extension (as written in the manifest, no dot) -> content type
	Overrides map[string]string // part name ("/word/document.xml") -> content type
}

// ReadContentTypes parses [Content_Types].xml. Missing file surfaces
// MissingComponent, per the format detector's policy.
func (c *Container) ReadContentTypes() (*ContentTypes, error) {
	if !c.Exists(ContentTypesPath) {
		return nil, model.NewError(model.ErrMissingComponent, nil, ContentTypesPath)
	}
	xmlStr, err := c.ReadXML(ContentTypesPath)
	if err != nil {
		return nil, err
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlStr); err != nil {
		return nil, model.NewError(model.ErrXmlParse, err, "parsing %s", ContentTypesPath)
	}
	ct := &ContentTypes{Defaults: map[string]string{}, Overrides: map[string]string{}}
	root := doc.Root()
	if root == nil {
		return ct, nil
	}
	for _, child := range root.ChildElements() {
		switch child.Tag {
		case "Default":
			ext := child.SelectAttrValue("Extension", "")
			typ := child.SelectAttrValue("ContentType", "")
			if ext != "" {
				ct.Defaults[ext] = typ
			}
		case "Override":
			name := child.SelectAttrValue("PartName", "")
			typ := child.SelectAttrValue("ContentType", "")
			if name != "" {
				ct.Overrides[name] = typ
			}
		}
	}
	return ct, nil
}

// ContainsAny reports whether any Override content type in ct equals, or
// contains as a substring, one of the given URIs.
func (ct *ContentTypes) ContainsAny(uris ...string) string {
	for _, typ := range ct.Overrides {
		for _, uri := range uris {
			if strings.Contains(typ, uri) {
				return uri
			}
		}
	}
	return ""
}

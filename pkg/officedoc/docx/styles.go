// Package docx parses the word-processor OOXML format into the intermediate
// Document model: styles.xml inheritance, numbering.xml counters, and the
// document.xml body walk.
package docx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/vortex/officedoc/pkg/officedoc/model"
)

// styleKind mirrors CT_Style's w:type attribute.
type styleKind string

const (
	styleParagraph styleKind = "paragraph"
	styleCharacter styleKind = "character"
	styleTable     styleKind = "table"
	styleNumbering styleKind = "numbering"
)

// styleDef is one <w:style> entry, holding only what officedoc needs to
// resolve run/paragraph formatting and heading level.
type styleDef struct {
	ID           string
	Name         string
	Kind         styleKind
	BasedOn      string
	OutlineLevel int // -1 when not set on this style
	HasRunStyle  bool
	RunStyle     model.TextStyle
	HasAlign     bool
	Alignment    model.Alignment
}

// StyleTable is the parsed styles.xml: a lookup by style id with based-on
// inheritance resolution.
type StyleTable struct {
	byID              map[string]*styleDef
	defaultParagraph  string
}

// ParseStyles parses a styles.xml document. Malformed XML yields a nil
// StyleTable and an ErrXmlParse error; a document without a root element
// yields an empty StyleTable.
func ParseStyles(xmlStr string) (*StyleTable, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlStr); err != nil {
		return nil, model.NewError(model.ErrXmlParse, err, "parsing styles.xml")
	}
	t := &StyleTable{byID: map[string]*styleDef{}}
	root := doc.Root()
	if root == nil {
		return t, nil
	}
	for _, el := range root.ChildElements() {
		if !isTag(el, "style") {
			continue
		}
		def := &styleDef{
			ID:           el.SelectAttrValue("w:styleId", ""),
			Kind:         styleKind(el.SelectAttrValue("w:type", "paragraph")),
			OutlineLevel: -1,
		}
		if def.ID == "" {
			continue
		}
		if def.Kind == styleParagraph && attrIsTrue(el, "w:default") {
			t.defaultParagraph = def.ID
		}
		for _, child := range el.ChildElements() {
			switch {
			case isTag(child, "name"):
				def.Name = child.SelectAttrValue("w:val", "")
			case isTag(child, "basedOn"):
				def.BasedOn = child.SelectAttrValue("w:val", "")
			case isTag(child, "pPr"):
				parsePPrStyleBits(child, def)
			case isTag(child, "rPr"):
				def.RunStyle = parseRPr(child, model.TextStyle{})
				def.HasRunStyle = true
			}
		}
		t.byID[def.ID] = def
	}
	return t, nil
}

func parsePPrStyleBits(pPr *etree.Element, def *styleDef) {
	for _, child := range pPr.ChildElements() {
		switch {
		case isTag(child, "outlineLvl"):
			if v, err := strconv.Atoi(child.SelectAttrValue("w:val", "")); err == nil {
				def.OutlineLevel = v
			}
		case isTag(child, "jc"):
			def.Alignment = parseAlignment(child.SelectAttrValue("w:val", ""))
			def.HasAlign = true
		}
	}
}

// resolved is the fully inherited style: run formatting and outline level
// merged base-first then override.
type resolved struct {
	RunStyle     model.TextStyle
	OutlineLevel int
	Alignment    model.Alignment
	HasAlign     bool
	Name         string
}

// maxInheritanceDepth caps based_on chain walks as a cycle guard (a
// malformed styles.xml may contain a cycle).
const maxInheritanceDepth = 10

// GetResolved walks id's based_on chain (base first, most specific last),
// merging run style fields and outline level. Unknown id yields a zero
// resolved value, not an error — callers fall back to direct formatting.
func (t *StyleTable) GetResolved(id string) resolved {
	var chain []*styleDef
	seen := map[string]bool{}
	cur := id
	for depth := 0; depth < maxInheritanceDepth && cur != "" && !seen[cur]; depth++ {
		def, ok := t.byID[cur]
		if !ok {
			break
		}
		seen[cur] = true
		chain = append(chain, def)
		cur = def.BasedOn
	}

	var out resolved
	out.OutlineLevel = -1
	for i := len(chain) - 1; i >= 0; i-- {
		def := chain[i]
		if def.HasRunStyle {
			out.RunStyle = mergeTextStyle(out.RunStyle, def.RunStyle)
		}
		if def.OutlineLevel >= 0 {
			out.OutlineLevel = def.OutlineLevel
		}
		if def.HasAlign {
			out.Alignment = def.Alignment
			out.HasAlign = true
		}
		out.Name = def.Name
	}
	return out
}

// mergeTextStyle overlays override onto base: boolean/string/int fields in
// override win whenever they carry a non-zero value.
func mergeTextStyle(base, override model.TextStyle) model.TextStyle {
	out := base
	if override.Bold {
		out.Bold = true
	}
	if override.Italic {
		out.Italic = true
	}
	if override.Underline {
		out.Underline = true
	}
	if override.Strikethrough {
		out.Strikethrough = true
	}
	if override.Superscript {
		out.Superscript = true
	}
	if override.Subscript {
		out.Subscript = true
	}
	if override.Code {
		out.Code = true
	}
	if override.Font != "" {
		out.Font = override.Font
	}
	if override.Size != 0 {
		out.Size = override.Size
	}
	if override.Color != "" {
		out.Color = override.Color
	}
	if override.Highlight != "" {
		out.Highlight = override.Highlight
	}
	return out
}

// headingLevelFromOutline maps a w:outlineLvl (0-based, Word convention) to
// a HeadingLevel (1-based).
func headingLevelFromOutline(outline int) model.HeadingLevel {
	if outline < 0 {
		return model.HeadingNone
	}
	return model.HeadingLevel(outline + 1).Clamp(6)
}

// headingLevelFromName recognizes the builtin "heading N" / "Title" /
// "Subtitle" style display names when outlineLvl is absent.
func headingLevelFromName(name string) model.HeadingLevel {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "title":
		return model.H1
	case "subtitle":
		return model.H2
	}
	if strings.HasPrefix(n, "heading") {
		rest := strings.TrimSpace(strings.TrimPrefix(n, "heading"))
		if v, err := strconv.Atoi(rest); err == nil {
			return model.HeadingLevel(v).Clamp(6)
		}
	}
	return model.HeadingNone
}

func parseAlignment(val string) model.Alignment {
	switch val {
	case "center":
		return model.AlignCenter
	case "right", "end":
		return model.AlignRight
	case "both", "distribute":
		return model.AlignJustify
	default:
		return model.AlignLeft
	}
}

func attrIsTrue(el *etree.Element, attr string) bool {
	v := el.SelectAttrValue(attr, "")
	return v == "" || v == "1" || v == "true" || v == "on"
}

// isTag reports whether el's local tag name equals name. The namespace
// prefix (el.Space) is not compared.
func isTag(el *etree.Element, name string) bool {
	return el.Tag == name
}

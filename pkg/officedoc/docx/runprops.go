package docx

import (
	"strconv"

	"github.com/beevik/etree"

	"github.com/vortex/officedoc/pkg/officedoc/model"
)

// parseRPr reads a <w:rPr> element's direct-formatting bits on top of base,
// returning the merged TextStyle. Half-point sizes (<w:sz w:val="24"/> = 12pt)
// are kept in half-points throughout the model.
func parseRPr(rPr *etree.Element, base model.TextStyle) model.TextStyle {
	out := base
	for _, child := range rPr.ChildElements() {
		switch {
		case isTag(child, "b"):
			out.Bold = attrIsTrue(child, "w:val")
		case isTag(child, "i"):
			out.Italic = attrIsTrue(child, "w:val")
		case isTag(child, "u"):
			val := child.SelectAttrValue("w:val", "single")
			out.Underline = val != "none"
		case isTag(child, "strike"):
			out.Strikethrough = attrIsTrue(child, "w:val")
		case isTag(child, "vertAlign"):
			switch child.SelectAttrValue("w:val", "") {
			case "superscript":
				out.Superscript = true
				out.Subscript = false
			case "subscript":
				out.Subscript = true
				out.Superscript = false
			}
		case isTag(child, "rFonts"):
			if f := child.SelectAttrValue("w:ascii", ""); f != "" {
				out.Font = f
				if isMonospaceFont(f) {
					out.Code = true
				}
			}
		case isTag(child, "sz"):
			if v, err := strconv.Atoi(child.SelectAttrValue("w:val", "")); err == nil {
				out.Size = v
			}
		case isTag(child, "color"):
			if v := child.SelectAttrValue("w:val", ""); v != "" && v != "auto" {
				out.Color = v
			}
		case isTag(child, "highlight"):
			if v := child.SelectAttrValue("w:val", ""); v != "" && v != "none" {
				out.Highlight = v
			}
		}
	}
	return out
}

var monospaceFonts = map[string]bool{
	"consolas":         true,
	"courier new":      true,
	"courier":          true,
	"lucida console":   true,
	"source code pro":  true,
	"menlo":            true,
	"monaco":           true,
	"dejavu sans mono": true,
}

func isMonospaceFont(name string) bool {
	return monospaceFonts[lower(name)]
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

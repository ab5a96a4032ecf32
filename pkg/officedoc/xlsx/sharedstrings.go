// Package xlsx parses the spreadsheet OOXML format into the intermediate
// Document model: the shared-string table, cell style/number-format
// classification, date-serial decoding, and merge-cell expansion.
package xlsx

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/vortex/officedoc/pkg/officedoc/model"
)

// SharedStrings is the parsed sharedStrings.xml table: <si> index -> text.
// A rich-text <si> (multiple <r> runs) is flattened to its concatenated
// text — officedoc's spreadsheet cells carry plain TextRuns, not per-run
// character formatting.
type SharedStrings []string

// ParseSharedStrings parses a sharedStrings.xml document. Empty input or a
// rootless document yields an empty (non-nil) table, not an error — a
// workbook with no shared strings is valid; malformed XML returns nil and
// an ErrXmlParse error.
func ParseSharedStrings(xmlStr string) (SharedStrings, error) {
	if strings.TrimSpace(xmlStr) == "" {
		return SharedStrings{}, nil
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlStr); err != nil {
		return nil, model.NewError(model.ErrXmlParse, err, "parsing sharedStrings.xml")
	}
	root := doc.Root()
	if root == nil {
		return SharedStrings{}, nil
	}
	var out SharedStrings
	for _, si := range root.ChildElements() {
		if si.Tag != "si" {
			continue
		}
		out = append(out, flattenSI(si))
	}
	return out, nil
}

// flattenSI concatenates an <si>'s direct <t> text, or every <r><t> run's
// text when the entry is rich text.
func flattenSI(si *etree.Element) string {
	var sb strings.Builder
	for _, child := range si.ChildElements() {
		switch child.Tag {
		case "t":
			sb.WriteString(child.Text())
		case "r":
			for _, rc := range child.ChildElements() {
				if rc.Tag == "t" {
					sb.WriteString(rc.Text())
				}
			}
		}
	}
	return sb.String()
}

// Get returns index's string, or "" if out of range.
func (s SharedStrings) Get(index int) string {
	if index < 0 || index >= len(s) {
		return ""
	}
	return s[index]
}

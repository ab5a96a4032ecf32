package xlsx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/vortex/officedoc/pkg/officedoc/model"
)

// builtinDateFormats are the ECMA-376 built-in numFmtIds classified as
// date/time (§18.8.30 of the standard): 14-22 date/time, 45-47 elapsed
// time. 0 ("General") and the plain numeric formats are deliberately
// excluded.
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true,
	21: true, 22: true, 45: true, 46: true, 47: true,
}

// Styles is the parsed styles.xml: custom number formats plus the cellXfs
// list, indexed by the "s" attribute cells reference.
type Styles struct {
	customFormats map[int]string // numFmtId -> formatCode, for ids >= 164
	cellXfNumFmt  []int          // cellXfs[i] -> numFmtId
}

// ParseStyles parses a styles.xml document.
func ParseStyles(xmlStr string) (*Styles, error) {
	st := &Styles{customFormats: map[int]string{}}
	if strings.TrimSpace(xmlStr) == "" {
		return st, nil
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlStr); err != nil {
		return nil, model.NewError(model.ErrXmlParse, err, "parsing styles.xml")
	}
	root := doc.Root()
	if root == nil {
		return st, nil
	}
	for _, child := range root.ChildElements() {
		switch child.Tag {
		case "numFmts":
			for _, fmtEl := range child.ChildElements() {
				if fmtEl.Tag != "numFmt" {
					continue
				}
				id, err := strconv.Atoi(fmtEl.SelectAttrValue("numFmtId", ""))
				if err != nil {
					continue
				}
				st.customFormats[id] = fmtEl.SelectAttrValue("formatCode", "")
			}
		case "cellXfs":
			for _, xf := range child.ChildElements() {
				if xf.Tag != "xf" {
					continue
				}
				id, _ := strconv.Atoi(xf.SelectAttrValue("numFmtId", "0"))
				st.cellXfNumFmt = append(st.cellXfNumFmt, id)
			}
		}
	}
	return st, nil
}

// NumFmtID returns the number-format id cellXfs[styleIndex] declares, or 0
// ("General") for an out-of-range index.
func (s *Styles) NumFmtID(styleIndex int) int {
	if s == nil || styleIndex < 0 || styleIndex >= len(s.cellXfNumFmt) {
		return 0
	}
	return s.cellXfNumFmt[styleIndex]
}

// IsDateFormat reports whether styleIndex's number format represents a
// date or time value: a built-in date/time format id, or a custom format
// code whose tokens are drawn entirely from date/time/duration characters.
func (s *Styles) IsDateFormat(styleIndex int) bool {
	if s == nil {
		return false
	}
	id := s.NumFmtID(styleIndex)
	if builtinDateFormats[id] {
		return true
	}
	if id < 164 {
		return false
	}
	code, ok := s.customFormats[id]
	if !ok {
		return false
	}
	return looksLikeDateFormatCode(code)
}

// looksLikeDateFormatCode heuristically classifies a custom format code by
// checking for date/time tokens (y, m, d, h, s outside of a quoted literal
// or a color/condition bracket) and the absence of '0'/'#' numeric digit
// placeholders, which only appear in plain-number formats.
func looksLikeDateFormatCode(code string) bool {
	inLiteral := false
	sawDateToken := false
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case c == '"':
			inLiteral = !inLiteral
		case c == '[':
			for i < len(code) && code[i] != ']' {
				i++
			}
		case inLiteral:
			continue
		case c == '0' || c == '#' || c == '?':
			return false
		case c == 'y' || c == 'Y' || c == 'm' || c == 'M' || c == 'd' || c == 'D' ||
			c == 'h' || c == 'H' || c == 's' || c == 'S':
			sawDateToken = true
		}
	}
	return sawDateToken
}

package xlsx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/vortex/officedoc/pkg/officedoc/model"
	"github.com/vortex/officedoc/pkg/officedoc/opc"
)

// Parse reads a spreadsheet container and builds the intermediate Document
// model: one model.Section per worksheet, each holding a
// single Table block that represents the sheet's grid, with shared
// strings resolved, date-serial values decoded, and merged ranges
// expanded to col/row spans on their top-left cell.
func Parse(c *opc.Container) (*model.Document, error) {
	doc := model.NewDocument()

	md, err := c.ParseCoreMetadata()
	if err != nil {
		return nil, err
	}
	doc.Metadata = md

	pkgRels, err := c.ReadPackageRelationships()
	if err != nil {
		return nil, err
	}
	mainRel := firstOfType(pkgRels, opc.RelTypeOfficeDocument)
	if mainRel == nil {
		return nil, model.NewError(model.ErrMissingComponent, nil, "package relationship %s", opc.RelTypeOfficeDocument)
	}
	workbookPath := opc.ResolvePath("/", mainRel.Target)

	workbookRels, err := c.ReadRelationships(workbookPath)
	if err != nil {
		return nil, err
	}

	var shared SharedStrings
	if rel := firstOfType(workbookRels, opc.RelTypeSharedStrings); rel != nil {
		path := opc.ResolvePath(workbookPath, rel.Target)
		if xmlStr, err := c.ReadXML(path); err == nil {
			if ss, err := ParseSharedStrings(xmlStr); err == nil {
				shared = ss
			}
		}
	}

	var styles *Styles
	if rel := firstOfType(workbookRels, opc.RelTypeStyles); rel != nil {
		path := opc.ResolvePath(workbookPath, rel.Target)
		if xmlStr, err := c.ReadXML(path); err == nil {
			if st, err := ParseStyles(xmlStr); err == nil {
				styles = st
			}
		}
	}

	workbookXML, err := c.ReadXML(workbookPath)
	if err != nil {
		return nil, err
	}
	sheets, err := parseWorkbookSheets(workbookXML)
	if err != nil {
		return nil, err
	}

	sp := &sheetParser{shared: shared, styles: styles}
	for i, sh := range sheets {
		rel, ok := workbookRels.Get(sh.RID)
		if !ok {
			continue
		}
		sheetPath := opc.ResolvePath(workbookPath, rel.Target)
		sheetXML, err := c.ReadXML(sheetPath)
		if err != nil {
			continue
		}
		tbl, err := sp.parseSheet(sheetXML)
		if err != nil {
			return nil, err
		}
		section := &model.Section{
			Index:   i,
			Name:    sh.Name,
			Content: []model.Block{model.NewTableBlock(tbl)},
		}
		doc.Sections = append(doc.Sections, section)
	}
	return doc, nil
}

func firstOfType(rels *opc.Relationships, typeURI string) *opc.Relationship {
	all := rels.ByType(typeURI)
	if len(all) == 0 {
		return nil
	}
	return &all[0]
}

// workbookSheet is one <sheet> entry from workbook.xml: display name plus
// the relationship id naming its part.
type workbookSheet struct {
	Name string
	RID  string
}

func parseWorkbookSheets(xmlStr string) ([]workbookSheet, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlStr); err != nil {
		return nil, model.NewError(model.ErrXmlParse, err, "parsing workbook.xml")
	}
	root := doc.Root()
	if root == nil {
		return nil, nil
	}
	var out []workbookSheet
	for _, child := range root.ChildElements() {
		if child.Tag != "sheets" {
			continue
		}
		for _, sh := range child.ChildElements() {
			if sh.Tag != "sheet" {
				continue
			}
			out = append(out, workbookSheet{
				Name: sh.SelectAttrValue("name", ""),
				RID:  sh.SelectAttrValue("r:id", ""),
			})
		}
	}
	return out, nil
}

// sheetParser threads the shared-string table and style table through one
// worksheet's cell-value resolution.
type sheetParser struct {
	shared SharedStrings
	styles *Styles
}

// parseSheet parses a worksheetN.xml document into a single Table, with
// merged ranges collapsed onto their top-left cell's span and empty grid
// positions materialized as blank cells.
func (sp *sheetParser) parseSheet(xmlStr string) (*model.Table, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlStr); err != nil {
		return nil, model.NewError(model.ErrXmlParse, err, "parsing worksheet")
	}
	root := doc.Root()
	if root == nil {
		return &model.Table{}, nil
	}

	type rawCell struct {
		col  int
		text string
	}
	rowsByIndex := map[int][]rawCell{}
	maxRow, maxCol := 0, 0

	var sheetData, mergeCells *etree.Element
	for _, child := range root.ChildElements() {
		switch child.Tag {
		case "sheetData":
			sheetData = child
		case "mergeCells":
			mergeCells = child
		}
	}
	if sheetData == nil {
		return &model.Table{}, nil
	}

	for _, rowEl := range sheetData.ChildElements() {
		if rowEl.Tag != "row" {
			continue
		}
		rowIdx, _ := strconv.Atoi(rowEl.SelectAttrValue("r", "0"))
		if rowIdx > maxRow {
			maxRow = rowIdx
		}
		var cells []rawCell
		for _, cellEl := range rowEl.ChildElements() {
			if cellEl.Tag != "c" {
				continue
			}
			ref := cellEl.SelectAttrValue("r", "")
			col, _ := colLetterToIndex(ref)
			if col > maxCol {
				maxCol = col
			}
			text := sp.resolveCellText(cellEl)
			cells = append(cells, rawCell{col: col, text: text})
		}
		rowsByIndex[rowIdx] = cells
	}

	// mergeRanges maps a top-left (row, col) to its span; coveredCells marks
	// every non-top-left cell inside a merge so it is skipped, mirroring
	// the docx vMerge/gridSpan continuation-absorption invariant.
	type span struct{ rowSpan, colSpan int }
	mergeRanges := map[[2]int]span{}
	covered := map[[2]int]bool{}
	if mergeCells != nil {
		for _, mc := range mergeCells.ChildElements() {
			if mc.Tag != "mergeCell" {
				continue
			}
			ref := mc.SelectAttrValue("ref", "")
			r1, c1, r2, c2, ok := parseRange(ref)
			if !ok {
				continue
			}
			mergeRanges[[2]int{r1, c1}] = span{rowSpan: r2 - r1 + 1, colSpan: c2 - c1 + 1}
			for r := r1; r <= r2; r++ {
				for c := c1; c <= c2; c++ {
					if r == r1 && c == c1 {
						continue
					}
					covered[[2]int{r, c}] = true
				}
			}
		}
	}

	tbl := &model.Table{}
	for r := 1; r <= maxRow; r++ {
		byCol := map[int]string{}
		for _, rc := range rowsByIndex[r] {
			byCol[rc.col] = rc.text
		}
		row := model.Row{}
		for col := 1; col <= maxCol; col++ {
			if covered[[2]int{r, col}] {
				continue
			}
			cell := model.Cell{ColSpan: 1, RowSpan: 1}
			if ms := mergeRanges[[2]int{r, col}]; ms.rowSpan > 0 {
				cell.ColSpan, cell.RowSpan = ms.colSpan, ms.rowSpan
			}
			text := byCol[col]
			if text != "" {
				cell.Content = []model.Paragraph{{Runs: []model.TextRun{{Text: text}}}}
			}
			row.Cells = append(row.Cells, cell)
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	return tbl, nil
}

// resolveCellText computes one <c>'s display text: shared-string lookup,
// inline string, boolean, error, or the raw/date-decoded numeric value.
func (sp *sheetParser) resolveCellText(c *etree.Element) string {
	typ := c.SelectAttrValue("t", "")
	var v string
	for _, child := range c.ChildElements() {
		if child.Tag == "v" {
			v = child.Text()
		}
		if child.Tag == "is" {
			for _, is := range child.ChildElements() {
				if is.Tag == "t" {
					v = is.Text()
				}
			}
		}
	}

	switch typ {
	case "s":
		idx, err := strconv.Atoi(v)
		if err != nil {
			return ""
		}
		return sp.shared.Get(idx)
	case "str", "inlineStr", "e":
		return v
	case "b":
		if v == "1" {
			return "TRUE"
		}
		return "FALSE"
	default:
		styleIdx, _ := strconv.Atoi(c.SelectAttrValue("s", "0"))
		if sp.styles != nil && sp.styles.IsDateFormat(styleIdx) {
			f, err := strconv.ParseFloat(v, 64)
			if err == nil {
				return DateFromSerial(f).Format("2006-01-02")
			}
		}
		return v
	}
}

// colLetterToIndex extracts the 1-based column number from a cell
// reference like "AB12" ("A" -> 1).
func colLetterToIndex(ref string) (int, bool) {
	i := 0
	for i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z' {
		i++
	}
	if i == 0 {
		return 0, false
	}
	col := 0
	for _, ch := range ref[:i] {
		col = col*26 + int(ch-'A'+1)
	}
	return col, true
}

func rowIndexOf(ref string) (int, bool) {
	i := 0
	for i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z' {
		i++
	}
	n, err := strconv.Atoi(ref[i:])
	return n, err == nil
}

// parseRange parses a mergeCell "ref" like "A1:C2" into 1-based
// (row, col) bounds.
func parseRange(ref string) (r1, c1, r2, c2 int, ok bool) {
	parts := strings.SplitN(ref, ":", 2)
	if len(parts) != 2 {
		return 0, 0, 0, 0, false
	}
	c1, ok1 := colLetterToIndex(parts[0])
	r1, ok2 := rowIndexOf(parts[0])
	c2, ok3 := colLetterToIndex(parts[1])
	r2, ok4 := rowIndexOf(parts[1])
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return 0, 0, 0, 0, false
	}
	return r1, c1, r2, c2, true
}

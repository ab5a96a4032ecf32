package docx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/vortex/officedoc/pkg/officedoc/model"
	"github.com/vortex/officedoc/pkg/officedoc/opc"
	"github.com/vortex/officedoc/pkg/officedoc/rdim"
)

// Parse reads a word-processor container and builds the intermediate
// Document model: styles/numbering tables, the body walk
// (paragraphs, runs, tables, images, hyperlinks, revisions), and resource
// extraction. The whole word-processing document maps to a single
// model.Section; mid-document section breaks surface as SectionBreak blocks
// within it rather than splitting the Document into multiple Sections (see
// DESIGN.md).
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
	mainPath := opc.ResolvePath("/", mainRel.Target)

	docRels, err := c.ReadRelationships(mainPath)
	if err != nil {
		return nil, err
	}

	styles := &StyleTable{byID: map[string]*styleDef{}}
	if rel := firstOfType(docRels, opc.RelTypeStyles); rel != nil {
		path := opc.ResolvePath(mainPath, rel.Target)
		if xmlStr, err := c.ReadXML(path); err == nil {
			if st, err := ParseStyles(xmlStr); err == nil {
				styles = st
			}
		}
	}

	var numbering *Numbering
	if rel := firstOfType(docRels, opc.RelTypeNumbering); rel != nil {
		path := opc.ResolvePath(mainPath, rel.Target)
		if xmlStr, err := c.ReadXML(path); err == nil {
			if n, err := ParseNumbering(xmlStr); err == nil {
				numbering = n
			}
		}
	}

	extractImageResources(c, doc, docRels, mainPath)

	xmlStr, err := c.ReadXML(mainPath)
	if err != nil {
		return nil, err
	}
	xdoc := etree.NewDocument()
	if err := xdoc.ReadFromString(xmlStr); err != nil {
		return nil, model.NewError(model.ErrXmlParse, err, "parsing %s", mainPath)
	}
	root := xdoc.Root()
	if root == nil {
		return nil, model.NewError(model.ErrInvalidData, nil, "%s has no root element", mainPath)
	}
	var body *etree.Element
	for _, child := range root.ChildElements() {
		if isTag(child, "body") {
			body = child
			break
		}
	}
	if body == nil {
		return nil, model.NewError(model.ErrMissingComponent, nil, "w:body in %s", mainPath)
	}

	p := &bodyParser{styles: styles, numbering: numbering, rels: docRels}
	section := &model.Section{Index: 0, Name: "Document"}
	for _, child := range body.ChildElements() {
		switch {
		case isTag(child, "p"):
			section.Content = append(section.Content, p.parseParagraphBlock(child)...)
		case isTag(child, "tbl"):
			tbl := p.parseTable(child)
			section.Content = append(section.Content, model.NewTableBlock(&tbl))
		case isTag(child, "sectPr"):
			// Trailing section properties close the document; nothing to emit.
		}
	}
	doc.Sections = append(doc.Sections, section)
	return doc, nil
}

func firstOfType(rels *opc.Relationships, typeURI string) *opc.Relationship {
	all := rels.ByType(typeURI)
	if len(all) == 0 {
		return nil
	}
	return &all[0]
}

// bodyParser threads the styles/numbering/relationship tables through the
// recursive body walk.
type bodyParser struct {
	styles    *StyleTable
	numbering *Numbering
	rels      *opc.Relationships
}

// parseParagraphBlock returns one or more blocks for a <w:p>: normally a
// single Paragraph block, plus a SectionBreak block when the paragraph
// carries a mid-document <w:sectPr>.
func (p *bodyParser) parseParagraphBlock(el *etree.Element) []model.Block {
	para := model.Paragraph{}
	hasSectBreak := false

	var pPr *etree.Element
	for _, child := range el.ChildElements() {
		if isTag(child, "pPr") {
			pPr = child
			break
		}
	}

	var resolvedStyle resolved
	resolvedStyle.OutlineLevel = -1
	explicitAlign := false
	if pPr != nil {
		for _, c := range pPr.ChildElements() {
			switch {
			case isTag(c, "pStyle"):
				para.StyleID = c.SelectAttrValue("w:val", "")
				resolvedStyle = p.styles.GetResolved(para.StyleID)
				para.StyleName = resolvedStyle.Name
			case isTag(c, "jc"):
				para.Alignment = parseAlignment(c.SelectAttrValue("w:val", ""))
				explicitAlign = true
			case isTag(c, "ind"):
				if lvl := c.SelectAttrValue("w:left", ""); lvl != "" {
					if v, err := strconv.Atoi(lvl); err == nil {
						para.IndentLevel = v / 720 // 720 twips ≈ one indent level
					}
				}
			case isTag(c, "numPr"):
				var numID string
				var ilvl int
				for _, np := range c.ChildElements() {
					switch {
					case isTag(np, "numId"):
						numID = np.SelectAttrValue("w:val", "")
					case isTag(np, "ilvl"):
						ilvl, _ = strconv.Atoi(np.SelectAttrValue("w:val", "0"))
					}
				}
				if numID != "" {
					para.ListInfo = p.numbering.GetListInfo(numID, ilvl)
				}
			case isTag(c, "sectPr"):
				hasSectBreak = true
			}
		}
	}
	if !explicitAlign && resolvedStyle.HasAlign {
		para.Alignment = resolvedStyle.Alignment
	}

	if resolvedStyle.OutlineLevel >= 0 {
		para.Heading = headingLevelFromOutline(resolvedStyle.OutlineLevel)
	} else if para.StyleName != "" {
		para.Heading = headingLevelFromName(para.StyleName)
	}

	p.walkRuns(el, &para, resolvedStyle.RunStyle, model.RevisionNone, "")

	blocks := []model.Block{model.NewParagraphBlock(&para)}
	if hasSectBreak {
		blocks = append(blocks, model.NewSectionBreakBlock())
	}
	return blocks
}

// walkRuns recurses into <w:r>, <w:hyperlink>, <w:ins>, and <w:del>,
// appending TextRuns (and inline images) to para.
func (p *bodyParser) walkRuns(parent *etree.Element, para *model.Paragraph, baseStyle model.TextStyle, rev model.Revision, hyperlink string) {
	for _, child := range parent.ChildElements() {
		switch {
		case isTag(child, "r"):
			p.appendRun(child, para, baseStyle, rev, hyperlink)
		case isTag(child, "hyperlink"):
			target := hyperlink
			if rid := child.SelectAttrValue("r:id", ""); rid != "" {
				if rel, ok := p.rels.Get(rid); ok {
					target = rel.Target
				}
			} else if anchor := child.SelectAttrValue("w:anchor", ""); anchor != "" {
				target = "#" + anchor
			}
			p.walkRuns(child, para, baseStyle, rev, target)
		case isTag(child, "ins"):
			p.walkRuns(child, para, baseStyle, model.RevisionInserted, hyperlink)
		case isTag(child, "del"):
			p.walkRuns(child, para, baseStyle, model.RevisionDeleted, hyperlink)
		}
	}
}

func (p *bodyParser) appendRun(r *etree.Element, para *model.Paragraph, baseStyle model.TextStyle, rev model.Revision, hyperlink string) {
	style := baseStyle
	for _, c := range r.ChildElements() {
		if isTag(c, "rPr") {
			style = parseRPr(c, baseStyle)
			break
		}
	}

	for _, c := range r.ChildElements() {
		switch {
		case isTag(c, "t"):
			para.Runs = append(para.Runs, model.TextRun{Text: c.Text(), Style: style, Hyperlink: hyperlink, Revision: rev})
		case isTag(c, "delText"):
			para.Runs = append(para.Runs, model.TextRun{Text: c.Text(), Style: style, Hyperlink: hyperlink, Revision: model.RevisionDeleted})
		case isTag(c, "br"):
			typ := c.SelectAttrValue("w:type", "")
			para.Runs = append(para.Runs, model.TextRun{Style: style, LineBreak: typ != "page", PageBreak: typ == "page"})
		case isTag(c, "tab"):
			para.Runs = append(para.Runs, model.TextRun{Text: "\t", Style: style, Hyperlink: hyperlink, Revision: rev})
		case isTag(c, "drawing"):
			if img, ok := p.parseDrawing(c); ok {
				para.Images = append(para.Images, img)
			}
		}
	}
}

// parseDrawing extracts the embedded image's relationship id and display
// size (EMU -> pixel at 96dpi) from a <w:drawing>.
func (p *bodyParser) parseDrawing(drawing *etree.Element) (model.ImageRef, bool) {
	var ref model.ImageRef
	blip := findDescendant(drawing, "blip")
	if blip == nil {
		return ref, false
	}
	rid := blip.SelectAttrValue("r:embed", "")
	if rid == "" {
		return ref, false
	}
	ref.ResourceID = rid
	if ext := findDescendant(drawing, "extent"); ext != nil {
		if cx, err := strconv.Atoi(ext.SelectAttrValue("cx", "")); err == nil {
			ref.Width = emuToPixels(cx)
		}
		if cy, err := strconv.Atoi(ext.SelectAttrValue("cy", "")); err == nil {
			ref.Height = emuToPixels(cy)
		}
	}
	if doc := findDescendant(drawing, "docPr"); doc != nil {
		ref.Alt = doc.SelectAttrValue("descr", "")
		if ref.Alt == "" {
			ref.Alt = doc.SelectAttrValue("name", "")
		}
	}
	return ref, true
}

func emuToPixels(emu int) int {
	const emuPerInch = 914400
	return emu * 96 / emuPerInch
}

// findDescendant returns the first descendant element with the given local
// tag name, depth-first.
func findDescendant(el *etree.Element, tag string) *etree.Element {
	for _, child := range el.ChildElements() {
		if isTag(child, tag) {
			return child
		}
		if found := findDescendant(child, tag); found != nil {
			return found
		}
	}
	return nil
}

// --------------------------------------------------------------------------
// Tables
// --------------------------------------------------------------------------

func (p *bodyParser) parseTable(el *etree.Element) model.Table {
	var tbl model.Table
	// openSpans[col] locates (row index, cell index in that row) the cell
	// that a vMerge continuation in this column should extend, keyed by
	// starting column index.
	openSpans := map[int][2]int{}

	for _, rowEl := range el.ChildElements() {
		if !isTag(rowEl, "tr") {
			continue
		}
		row := model.Row{}
		col := 0
		for _, cellEl := range rowEl.ChildElements() {
			if !isTag(cellEl, "tc") {
				continue
			}
			colSpan := 1
			continuation := false
			var align model.Alignment
			var vAlign model.VerticalAlignment
			var bg string
			if tcPr := firstChild(cellEl, "tcPr"); tcPr != nil {
				for _, c := range tcPr.ChildElements() {
					switch {
					case isTag(c, "gridSpan"):
						if v, err := strconv.Atoi(c.SelectAttrValue("w:val", "1")); err == nil {
							colSpan = v
						}
					case isTag(c, "vMerge"):
						val := c.SelectAttrValue("w:val", "continue")
						continuation = val != "restart"
					case isTag(c, "vAlign"):
						vAlign = parseVAlign(c.SelectAttrValue("w:val", ""))
					case isTag(c, "shd"):
						if fill := c.SelectAttrValue("w:fill", ""); fill != "" && fill != "auto" {
							bg = fill
						}
					}
				}
			}

			if continuation {
				if prev, ok := openSpans[col]; ok {
					tbl.Rows[prev[0]].Cells[prev[1]].RowSpan++
				}
				col += colSpan
				continue
			}

			cell := model.Cell{ColSpan: colSpan, RowSpan: 1, Alignment: align, VerticalAlignment: vAlign, Background: bg}
			for _, c := range cellEl.ChildElements() {
				switch {
				case isTag(c, "p"):
					cp := model.Paragraph{}
					var resolvedStyle resolved
					resolvedStyle.OutlineLevel = -1
					if pPr := firstChild(c, "pPr"); pPr != nil {
						for _, pc := range pPr.ChildElements() {
							switch {
							case isTag(pc, "pStyle"):
								cp.StyleID = pc.SelectAttrValue("w:val", "")
								resolvedStyle = p.styles.GetResolved(cp.StyleID)
								cp.StyleName = resolvedStyle.Name
							case isTag(pc, "jc"):
								cp.Alignment = parseAlignment(pc.SelectAttrValue("w:val", ""))
							}
						}
					}
					p.walkRuns(c, &cp, resolvedStyle.RunStyle, model.RevisionNone, "")
					cell.Content = append(cell.Content, cp)
				case isTag(c, "tbl"):
					cell.NestedTables = append(cell.NestedTables, p.parseTable(c))
				}
			}

			row.Cells = append(row.Cells, cell)
			openSpans[col] = [2]int{len(tbl.Rows), len(row.Cells) - 1}
			col += colSpan
		}
		if rowIsHeaderCandidate(rowEl) {
			row.IsHeader = true
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	return tbl
}

func rowIsHeaderCandidate(rowEl *etree.Element) bool {
	trPr := firstChild(rowEl, "trPr")
	if trPr == nil {
		return false
	}
	return firstChild(trPr, "tblHeader") != nil
}

func parseVAlign(val string) model.VerticalAlignment {
	switch val {
	case "center":
		return model.VAlignMiddle
	case "bottom":
		return model.VAlignBottom
	default:
		return model.VAlignTop
	}
}

func firstChild(el *etree.Element, tag string) *etree.Element {
	for _, c := range el.ChildElements() {
		if isTag(c, tag) {
			return c
		}
	}
	return nil
}

// --------------------------------------------------------------------------
// Resources
// --------------------------------------------------------------------------

var imageExtMime = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".emf":  "image/x-emf",
	".wmf":  "image/x-wmf",
	".svg":  "image/svg+xml",
}

func extractImageResources(c *opc.Container, doc *model.Document, rels *opc.Relationships, basePath string) {
	for _, rel := range rels.ByType(opc.RelTypeImage) {
		if rel.External {
			doc.AddResource(rel.ID, &model.Resource{ResourceType: model.ResourceImage, Filename: rel.Target})
			continue
		}
		path := opc.ResolvePath(basePath, rel.Target)
		data, err := c.ReadBinary(path)
		if err != nil {
			continue
		}
		mime := imageExtMime[strings.ToLower(extOf(path))]
		w, h, _ := rdim.Dimensions(mime, data)
		doc.AddResource(rel.ID, &model.Resource{
			ResourceType: model.ResourceImage,
			Filename:     path,
			MimeType:     mime,
			Data:         data,
			Size:         len(data),
			Width:        w,
			Height:       h,
		})
	}
}

func extOf(path string) string {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return ""
	}
	return path[i:]
}

// Package pptx parses the presentation OOXML format into the intermediate
// Document model: slide ordering from presentation.xml, the per-slide shape
// tree walk, speaker notes, and chart-to-table conversion.
package pptx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/vortex/officedoc/pkg/officedoc/model"
	"github.com/vortex/officedoc/pkg/officedoc/opc"
	"github.com/vortex/officedoc/pkg/officedoc/rdim"
)

// Parse reads a presentation container and builds the intermediate
// Document model: one model.Section per slide, in presentation.xml's
// sldIdLst order (not sorted by id or filename), each holding the slide's
// shape text as paragraph/table blocks, its speaker notes, and any
// embedded charts converted to a data table.
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
	presPath := opc.ResolvePath("/", mainRel.Target)

	presRels, err := c.ReadRelationships(presPath)
	if err != nil {
		return nil, err
	}

	presXML, err := c.ReadXML(presPath)
	if err != nil {
		return nil, err
	}
	slideRIDs, err := parseSlideOrder(presXML)
	if err != nil {
		return nil, err
	}

	for i, rid := range slideRIDs {
		rel, ok := presRels.Get(rid)
		if !ok {
			continue
		}
		slidePath := opc.ResolvePath(presPath, rel.Target)
		slideXML, err := c.ReadXML(slidePath)
		if err != nil {
			continue
		}
		section := &model.Section{Index: i, Name: "Slide " + strconv.Itoa(i+1)}

		slideRels, err := c.ReadRelationships(slidePath)
		if err == nil {
			extractImageResources(c, doc, slideRels, slidePath)
		}
		section.Content = parseShapeTree(slideXML)

		if err == nil {
			if notesRel := firstOfType(slideRels, opc.RelTypeNotesSlide); notesRel != nil {
				notesPath := opc.ResolvePath(slidePath, notesRel.Target)
				if notesXML, err := c.ReadXML(notesPath); err == nil {
					section.Notes = parseShapeTree(notesXML)
				}
			}
			for _, chartRel := range slideRels.ByType(opc.RelTypeChart) {
				chartPath := opc.ResolvePath(slidePath, chartRel.Target)
				if chartXML, err := c.ReadXML(chartPath); err == nil {
					if tbl, ok := parseChartTable(chartXML); ok {
						section.Content = append(section.Content, model.NewTableBlock(tbl))
					}
				}
			}
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

// parseSlideOrder reads presentation.xml's <p:sldIdLst>, returning the
// relationship ids of its <p:sldId> entries in document order — the
// authoritative slide order, independent of part filenames or ids.
func parseSlideOrder(xmlStr string) ([]string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlStr); err != nil {
		return nil, model.NewError(model.ErrXmlParse, err, "parsing presentation.xml")
	}
	root := doc.Root()
	if root == nil {
		return nil, nil
	}
	var out []string
	for _, child := range root.ChildElements() {
		if child.Tag != "sldIdLst" {
			continue
		}
		for _, sld := range child.ChildElements() {
			if sld.Tag != "sldId" {
				continue
			}
			if rid := sld.SelectAttrValue("r:id", ""); rid != "" {
				out = append(out, rid)
			}
		}
	}
	return out, nil
}

func isTag(el *etree.Element, name string) bool { return el.Tag == name }

func findDescendants(el *etree.Element, tag string, out *[]*etree.Element) {
	for _, child := range el.ChildElements() {
		if isTag(child, tag) {
			*out = append(*out, child)
		}
		findDescendants(child, tag, out)
	}
}

// parseShapeTree walks a slide or notes-slide's <p:spTree>, emitting one
// Paragraph block per text-bearing shape (<p:sp>/<p:txBody>) and one Table
// block per table shape (<a:tbl> inside a <p:graphicFrame>), in document
// (z-)order.
func parseShapeTree(xmlStr string) []model.Block {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlStr); err != nil {
		return nil
	}
	root := doc.Root()
	if root == nil {
		return nil
	}
	var cSld *etree.Element
	for _, child := range root.ChildElements() {
		if child.Tag == "cSld" {
			cSld = child
		}
	}
	if cSld == nil {
		return nil
	}
	var spTree *etree.Element
	for _, child := range cSld.ChildElements() {
		if child.Tag == "spTree" {
			spTree = child
		}
	}
	if spTree == nil {
		return nil
	}

	var blocks []model.Block
	for _, shape := range spTree.ChildElements() {
		switch shape.Tag {
		case "sp":
			if p, ok := paragraphFromShape(shape); ok {
				blocks = append(blocks, model.NewParagraphBlock(&p))
			}
		case "graphicFrame":
			var tbls []*etree.Element
			findDescendants(shape, "tbl", &tbls)
			for _, tblEl := range tbls {
				tbl := tableFromGraphicFrame(tblEl)
				blocks = append(blocks, model.NewTableBlock(&tbl))
			}
		case "pic":
			if img, ok := imageFromPic(shape); ok {
				blocks = append(blocks, model.NewImageBlock(&img))
			}
		}
	}
	return blocks
}

// paragraphFromShape extracts a shape's <p:txBody> text into a single
// Paragraph — each <a:p> becomes one run-separated line joined by a line
// break, since the Document model has no multi-paragraph shape concept.
func paragraphFromShape(sp *etree.Element) (model.Paragraph, bool) {
	var txBody *etree.Element
	for _, child := range sp.ChildElements() {
		if child.Tag == "txBody" {
			txBody = child
		}
	}
	if txBody == nil {
		return model.Paragraph{}, false
	}
	var para model.Paragraph
	first := true
	for _, aP := range txBody.ChildElements() {
		if aP.Tag != "p" {
			continue
		}
		if !first {
			para.Runs = append(para.Runs, model.TextRun{LineBreak: true})
		}
		first = false
		for _, aR := range aP.ChildElements() {
			if aR.Tag != "r" {
				continue
			}
			var text string
			for _, t := range aR.ChildElements() {
				if t.Tag == "t" {
					text = t.Text()
				}
			}
			para.Runs = append(para.Runs, model.TextRun{Text: text})
		}
	}
	if len(para.Runs) == 0 {
		return para, false
	}
	return para, true
}

// imageFromPic extracts a <p:pic>'s embedded-image relationship id, alt
// text, and display size (EMU -> pixel at 96dpi), mirroring the docx
// drawing parser.
func imageFromPic(pic *etree.Element) (model.ImageRef, bool) {
	var ref model.ImageRef
	blip := findDescendant(pic, "blip")
	if blip == nil {
		return ref, false
	}
	rid := blip.SelectAttrValue("r:embed", "")
	if rid == "" {
		return ref, false
	}
	ref.ResourceID = rid
	if xfrm := findDescendant(pic, "xfrm"); xfrm != nil {
		if ext := findDescendant(xfrm, "ext"); ext != nil {
			if cx, err := strconv.Atoi(ext.SelectAttrValue("cx", "")); err == nil {
				ref.Width = emuToPixels(cx)
			}
			if cy, err := strconv.Atoi(ext.SelectAttrValue("cy", "")); err == nil {
				ref.Height = emuToPixels(cy)
			}
		}
	}
	if nvPicPr := findDescendant(pic, "cNvPr"); nvPicPr != nil {
		ref.Alt = nvPicPr.SelectAttrValue("descr", "")
		if ref.Alt == "" {
			ref.Alt = nvPicPr.SelectAttrValue("name", "")
		}
	}
	return ref, true
}

func emuToPixels(emu int) int {
	const emuPerInch = 914400
	return emu * 96 / emuPerInch
}

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

// tableFromGraphicFrame converts an <a:tbl> (DrawingML table, used for
// in-slide tables) into a model.Table. DrawingML tables have no
// row/col-span continuation model as rich as WordprocessingML's; gridSpan/
// rowSpan/hMerge/vMerge are read the same way as the docx table parser.
func tableFromGraphicFrame(tblEl *etree.Element) model.Table {
	var tbl model.Table
	for _, row := range tblEl.ChildElements() {
		if row.Tag != "tr" {
			continue
		}
		var mrow model.Row
		for _, cell := range row.ChildElements() {
			if cell.Tag != "tc" {
				continue
			}
			if cell.SelectAttrValue("hMerge", "") == "1" || cell.SelectAttrValue("vMerge", "") == "1" {
				continue
			}
			colSpan := 1
			if v, err := strconv.Atoi(cell.SelectAttrValue("gridSpan", "1")); err == nil {
				colSpan = v
			}
			rowSpan := 1
			if v, err := strconv.Atoi(cell.SelectAttrValue("rowSpan", "1")); err == nil {
				rowSpan = v
			}
			var text string
			var texts []*etree.Element
			findDescendants(cell, "t", &texts)
			for _, t := range texts {
				text += t.Text()
			}
			mrow.Cells = append(mrow.Cells, model.Cell{
				ColSpan: colSpan,
				RowSpan: rowSpan,
				Content: []model.Paragraph{{Runs: []model.TextRun{{Text: text}}}},
			})
		}
		tbl.Rows = append(tbl.Rows, mrow)
	}
	return tbl
}

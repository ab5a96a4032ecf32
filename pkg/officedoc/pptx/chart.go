package pptx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/vortex/officedoc/pkg/officedoc/model"
)

// parseChartTable converts a DrawingML chart part (chart1.xml etc.) into a
// data table: one column per series plus a leading category column, one
// row per category index. Only the bar/line/pie family's <c:ser> series —
// the common case for embedded presentation charts — is handled; chart
// types with no flat category/value series (e.g. scatter's numeric x) fall
// back to whatever <c:cat>/<c:val> is present. Axis formatting, legends and
// rendering are out of scope — only the underlying data is recovered.
func parseChartTable(xmlStr string) (*model.Table, bool) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlStr); err != nil {
		return nil, false
	}
	root := doc.Root()
	if root == nil {
		return nil, false
	}

	var plotArea *etree.Element
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		for _, child := range el.ChildElements() {
			if child.Tag == "plotArea" {
				plotArea = child
				return
			}
			walk(child)
		}
	}
	walk(root)
	if plotArea == nil {
		return nil, false
	}

	var series []*etree.Element
	findDescendants(plotArea, "ser", &series)
	if len(series) == 0 {
		return nil, false
	}

	var categories []string
	var seriesNames []string
	var seriesValues [][]string

	for i, ser := range series {
		seriesNames = append(seriesNames, seriesName(ser))
		cats, vals := seriesCatVal(ser)
		if i == 0 {
			categories = cats
		}
		seriesValues = append(seriesValues, vals)
	}

	tbl := &model.Table{}
	header := model.Row{IsHeader: true}
	header.Cells = append(header.Cells, headerCell("Category"))
	for _, name := range seriesNames {
		header.Cells = append(header.Cells, headerCell(name))
	}
	tbl.Rows = append(tbl.Rows, header)

	for i, cat := range categories {
		row := model.Row{}
		row.Cells = append(row.Cells, textCell(cat))
		for _, vals := range seriesValues {
			v := "0"
			if i < len(vals) && vals[i] != "" {
				v = formatChartNumber(vals[i])
			}
			row.Cells = append(row.Cells, textCell(v))
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	return tbl, true
}

// formatChartNumber renders a cached numeric value: integers with no
// decimal point; otherwise 6 digits of precision with trailing zeros
// (and a trailing '.') stripped.
func formatChartNumber(raw string) string {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	s := strconv.FormatFloat(f, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s
}

func textCell(s string) model.Cell {
	cell := model.Cell{ColSpan: 1, RowSpan: 1}
	if s != "" {
		cell.Content = []model.Paragraph{{Runs: []model.TextRun{{Text: s}}}}
	}
	return cell
}

func headerCell(s string) model.Cell {
	cell := textCell(s)
	cell.IsHeader = true
	return cell
}

func seriesName(ser *etree.Element) string {
	for _, child := range ser.ChildElements() {
		if child.Tag != "tx" {
			continue
		}
		var vs []*etree.Element
		findDescendants(child, "v", &vs)
		if len(vs) > 0 {
			return vs[0].Text()
		}
	}
	return ""
}

// seriesCatVal reads a series's <c:cat> (category labels, string or
// numeric reference) and <c:val> (numeric values), indexed by each point's
// "idx" attribute so that gaps in a sparse <c:numCache>/<c:strCache> are
// preserved as empty slots.
func seriesCatVal(ser *etree.Element) (cats []string, vals []string) {
	for _, child := range ser.ChildElements() {
		switch child.Tag {
		case "cat":
			cats = indexedPoints(child)
		case "val":
			vals = indexedPoints(child)
		}
	}
	return cats, vals
}

func indexedPoints(container *etree.Element) []string {
	var pts []*etree.Element
	findDescendants(container, "pt", &pts)
	max := -1
	byIdx := map[int]string{}
	for _, pt := range pts {
		idx, err := strconv.Atoi(pt.SelectAttrValue("idx", "0"))
		if err != nil {
			continue
		}
		var text string
		for _, v := range pt.ChildElements() {
			if v.Tag == "v" {
				text = v.Text()
			}
		}
		byIdx[idx] = text
		if idx > max {
			max = idx
		}
	}
	out := make([]string, max+1)
	for i := range out {
		out[i] = byIdx[i]
	}
	return out
}

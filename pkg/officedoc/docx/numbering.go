package docx

import (
	"strconv"

	"github.com/beevik/etree"

	"github.com/vortex/officedoc/pkg/officedoc/model"
)

// numLevel is one <w:lvl> entry inside an abstract numbering definition.
type numLevel struct {
	Format string // "bullet", "decimal", "lowerLetter", ...
	Start  int
}

func (l numLevel) listType() model.ListType {
	if l.Format == "bullet" {
		return model.ListBullet
	}
	return model.ListNumbered
}

// abstractNum is one <w:abstractNum>: a template of per-level formats.
type abstractNum struct {
	ID     string
	Levels map[int]numLevel
}

// Numbering is the parsed numbering.xml: abstract definitions, the
// numId -> abstractNumId instance map, and the live per-(numId,level)
// counters.
type Numbering struct {
	abstract  map[string]*abstractNum
	instances map[string]string // numId -> abstractNumId
	counters  map[string]map[int]int
}

// ParseNumbering parses a numbering.xml document.
func ParseNumbering(xmlStr string) (*Numbering, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlStr); err != nil {
		return nil, model.NewError(model.ErrXmlParse, err, "parsing numbering.xml")
	}
	n := &Numbering{
		abstract:  map[string]*abstractNum{},
		instances: map[string]string{},
		counters:  map[string]map[int]int{},
	}
	root := doc.Root()
	if root == nil {
		return n, nil
	}
	for _, el := range root.ChildElements() {
		switch {
		case isTag(el, "abstractNum"):
			n.parseAbstractNum(el)
		case isTag(el, "num"):
			numID := el.SelectAttrValue("w:numId", "")
			for _, child := range el.ChildElements() {
				if isTag(child, "abstractNumId") {
					n.instances[numID] = child.SelectAttrValue("w:val", "")
				}
			}
		}
	}
	return n, nil
}

func (n *Numbering) parseAbstractNum(el *etree.Element) {
	an := &abstractNum{ID: el.SelectAttrValue("w:abstractNumId", ""), Levels: map[int]numLevel{}}
	for _, lvl := range el.ChildElements() {
		if !isTag(lvl, "lvl") {
			continue
		}
		ilvl, err := strconv.Atoi(lvl.SelectAttrValue("w:ilvl", "0"))
		if err != nil {
			continue
		}
		nl := numLevel{Format: "decimal", Start: 1}
		for _, c := range lvl.ChildElements() {
			switch {
			case isTag(c, "numFmt"):
				nl.Format = c.SelectAttrValue("w:val", "decimal")
			case isTag(c, "start"):
				if v, err := strconv.Atoi(c.SelectAttrValue("w:val", "1")); err == nil {
					nl.Start = v
				}
			}
		}
		an.Levels[ilvl] = nl
	}
	n.abstract[an.ID] = an
}

// GetListInfo advances numID's counter at level. Counters are independent
// per (numID, level) for the life of the parse — a deeper level's counter
// is never reset by activity at a shallower level, only by ResetCounters.
// Returns nil if numID is not a recognized numbering instance.
func (n *Numbering) GetListInfo(numID string, level int) *model.ListInfo {
	if n == nil {
		return nil
	}
	abstractID, ok := n.instances[numID]
	if !ok {
		return nil
	}
	an, ok := n.abstract[abstractID]
	if !ok {
		return nil
	}
	lvl, ok := an.Levels[level]
	if !ok {
		lvl = numLevel{Format: "decimal", Start: 1}
	}

	levelCounters, ok := n.counters[numID]
	if !ok {
		levelCounters = map[int]int{}
		n.counters[numID] = levelCounters
	}
	cur, seen := levelCounters[level]
	if !seen {
		cur = lvl.Start
	} else {
		cur++
	}
	levelCounters[level] = cur

	info := &model.ListInfo{ListType: lvl.listType(), Level: level}
	if lvl.listType() == model.ListNumbered {
		n := cur
		info.Number = &n
	}
	return info
}

// ResetCounters clears every live counter, so the next GetListInfo for any
// (numID, level) starts again from that level's start value.
func (n *Numbering) ResetCounters() {
	n.counters = map[string]map[int]int{}
}

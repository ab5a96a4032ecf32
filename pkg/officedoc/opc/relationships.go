package opc

import (
	"strings"

	"github.com/beevik/etree"
)

// Relationship is one edge of a part's or the package's relationship
// manifest: an opaque id naming a typed, directed target.
type Relationship struct {
	ID       string
	Type     string
	Target   string
	External bool
}

// Relationships is the parsed content of one *.rels manifest.
type Relationships struct {
	byID   map[string]Relationship
	byType map[string][]Relationship
}

// NewRelationships returns an empty manifest.
func NewRelationships() *Relationships {
	return &Relationships{byID: map[string]Relationship{}, byType: map[string][]Relationship{}}
}

// Get returns the relationship with the given id, or false if absent.
func (r *Relationships) Get(id string) (Relationship, bool) {
	if r == nil {
		return Relationship{}, false
	}
	rel, ok := r.byID[id]
	return rel, ok
}

// ByType returns every relationship of the given type URI, in manifest order.
func (r *Relationships) ByType(typeURI string) []Relationship {
	if r == nil {
		return nil
	}
	return r.byType[typeURI]
}

// All returns every relationship in the manifest, grouped by type. Within
// a type the manifest order is kept; the order of the type groups is not
// defined, so the overall result is not in load order.
func (r *Relationships) All() []Relationship {
	if r == nil {
		return nil
	}
	out := make([]Relationship, 0, len(r.byID))
	for _, rels := range r.byType {
		out = append(out, rels...)
	}
	// byType may not preserve global order across types; fall back to
	// byID's insertion-agnostic map only if byType is empty (defensive).
	if len(out) == 0 {
		for _, rel := range r.byID {
			out = append(out, rel)
		}
	}
	return out
}

func (r *Relationships) add(rel Relationship) {
	r.byID[rel.ID] = rel
	r.byType[rel.Type] = append(r.byType[rel.Type], rel)
}

// parseRelationships parses a *_rels/*.rels document's raw XML bytes.
func parseRelationships(data []byte) (*Relationships, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}
	rels := NewRelationships()
	root := doc.Root()
	if root == nil {
		return rels, nil
	}
	for _, child := range root.ChildElements() {
		if child.Tag != "Relationship" {
			continue
		}
		id := child.SelectAttrValue("Id", "")
		typ := child.SelectAttrValue("Type", "")
		target := child.SelectAttrValue("Target", "")
		mode := child.SelectAttrValue("TargetMode", "Internal")
		rels.add(Relationship{
			ID:       id,
			Type:     typ,
			Target:   target,
			External: strings.EqualFold(mode, "External"),
		})
	}
	return rels, nil
}

// relsPathFor computes the relationships-manifest path for a given part
// path: "<dir>/_rels/<file>.rels".
func relsPathFor(partPath string) string {
	dir, file := splitPath(partPath)
	if dir == "" {
		return "_rels/" + file + ".rels"
	}
	return dir + "/_rels/" + file + ".rels"
}

func splitPath(p string) (dir, file string) {
	p = strings.TrimPrefix(p, "/")
	idx := strings.LastIndex(p, "/")
	if idx < 0 {
		return "", p
	}
	return p[:idx], p[idx+1:]
}

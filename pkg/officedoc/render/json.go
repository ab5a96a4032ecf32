package render

import (
	"encoding/json"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/vortex/officedoc/pkg/officedoc/model"
)

// jsonDocument mirrors model.Document but replaces the Resources map with a
// slice ordered by id, so output is byte-stable across runs instead of
// following Go's incidental map iteration order.
type jsonDocument struct {
	Metadata  model.Metadata   `json:"metadata"`
	Sections  []*model.Section `json:"sections"`
	Resources []jsonResource   `json:"resources,omitempty"`
}

type jsonResource struct {
	ID string `json:"id"`
	*model.Resource
}

// JSON serializes doc as its Document tree, with Block's `type`
// discriminator and default-valued fields omitted (inherited from the
// model's own json tags), Resource.Data excluded (json:"-"), and resources
// ordered deterministically by id.
func JSON(doc *model.Document, format JSONFormat) (string, error) {
	jd := jsonDocument{
		Metadata: doc.Metadata,
		Sections: doc.Sections,
	}

	ids := maps.Keys(doc.Resources)
	slices.Sort(ids)
	jd.Resources = make([]jsonResource, 0, len(ids))
	for _, id := range ids {
		jd.Resources = append(jd.Resources, jsonResource{ID: id, Resource: doc.Resources[id]})
	}

	var (
		data []byte
		err  error
	)
	if format == JSONPretty {
		data, err = json.MarshalIndent(jd, "", "  ")
	} else {
		data, err = json.Marshal(jd)
	}
	if err != nil {
		return "", model.NewError(model.ErrRender, err, "serializing document to JSON")
	}
	return string(data), nil
}

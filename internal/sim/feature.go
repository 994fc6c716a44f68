package sim

import (
	"github.com/google/uuid"

	"github.com/partforge/cadctl/internal/kernel"
)

// feature is one node of the simulated feature tree. Deleting it runs the
// undo closure so the geometric effect disappears with the node.
type feature struct {
	id       string
	name     string
	typeName string
	doc      *Document
	undo     func()

	// plane parameters for RefPlane features
	planeAxis   int
	planeOffset float64
	planeSet    bool
}

var _ kernel.Feature = (*feature)(nil)

func newFeature(doc *Document, typeName string) *feature {
	return &feature{
		id:       uuid.NewString(),
		name:     doc.nextFeatureName(typeName),
		typeName: typeName,
		doc:      doc,
	}
}

func (f *feature) ID() string { return f.id }

func (f *feature) Kind() kernel.EntityKind {
	switch f.typeName {
	case kernel.FeatureTypeRefPlane:
		return kernel.KindPlane
	case kernel.FeatureTypeMate:
		return kernel.KindMate
	default:
		return kernel.EntityKind("BODYFEATURE")
	}
}

func (f *feature) Name() string        { return f.name }
func (f *feature) SetName(name string) { f.name = name }
func (f *feature) TypeName() string    { return f.typeName }

// Next walks the feature list in creation order.
func (f *feature) Next() (kernel.Feature, bool) {
	for i, cur := range f.doc.features {
		if cur == f {
			if i+1 < len(f.doc.features) {
				return f.doc.features[i+1], true
			}
			return nil, false
		}
	}
	return nil, false
}

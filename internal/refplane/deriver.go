package refplane

import (
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/partforge/cadctl/internal/geom"
	"github.com/partforge/cadctl/internal/kernel"
	"github.com/partforge/cadctl/internal/observability"
)

// Deriver auto-creates named helper planes from the first solid body after
// an extrude, so later sketches and mates can pick planes by stable names
// instead of probing.
type Deriver struct {
	doc    kernel.Document
	prefix string
}

// NewDeriver builds a deriver whose helper names share the given prefix.
func NewDeriver(doc kernel.Document, prefix string) *Deriver {
	if strings.TrimSpace(prefix) == "" {
		prefix = DefaultHelperPrefix
	}
	return &Deriver{doc: doc, prefix: prefix}
}

// Derive inspects the first solid body's bounding box and face set, then
// creates one offset plane per relevant box extent. Bodies with any
// cylindrical surface get only the top/bottom cap planes (a round body has
// no meaningful left/right/front/back); plain boxes get all six.
// Derivation is idempotent by name: an existing helper plane is reused,
// never duplicated.
func (d *Deriver) Derive() ([]kernel.Feature, error) {
	body, ok := d.doc.FirstBody()
	if !ok {
		return nil, fmt.Errorf("refplane: document %q has no solid body to derive from", d.doc.Name())
	}
	box := body.Box()
	cylindrical := hasCylindricalFace(body)

	dirs := geom.Directions()
	if cylindrical {
		dirs = []geom.Direction{geom.DirTop, geom.DirBottom}
	}

	out := make([]kernel.Feature, 0, len(dirs))
	for _, dir := range dirs {
		name := d.helperName(dir)
		if existing, ok := findPlane(d.doc, name); ok {
			observability.RecordHelperPlane("reused", cylindrical)
			out = append(out, existing)
			continue
		}
		created, err := d.createOffsetPlane(box, dir, name)
		if err != nil {
			return out, err
		}
		observability.RecordHelperPlane("created", cylindrical)
		out = append(out, created)
	}
	log.Info().
		Int("planes", len(out)).
		Bool("cylindrical", cylindrical).
		Str("prefix", d.prefix).
		Msg("refplane.derive complete")
	return out, nil
}

// createOffsetPlane selects the direction's base datum plane and offsets it
// out to the box extent, naming the result.
func (d *Deriver) createOffsetPlane(box geom.Box3, dir geom.Direction, name string) (kernel.Feature, error) {
	base, err := Resolve(d.doc, baseDatumFor(dir.Axis()), d.prefix)
	if err != nil {
		return nil, err
	}

	coord := box.Max.Axis(dir.Axis())
	if dir.Sign() < 0 {
		coord = box.Min.Axis(dir.Axis())
	}

	d.doc.ClearSelection()
	if !d.doc.SelectEntity(base, false, kernel.MarkNone) {
		return nil, fmt.Errorf("refplane: could not select base plane %q", base.Name())
	}
	feat, err := d.doc.CreateOffsetPlane(math.Abs(coord), coord < 0)
	if err != nil {
		return nil, fmt.Errorf("refplane: offset plane %q from %q: %w", name, base.Name(), err)
	}
	feat.SetName(name)
	log.Debug().
		Str("plane", name).
		Str("base", base.Name()).
		Float64("offset", coord).
		Msg("refplane.derive created")
	return feat, nil
}

// helperName builds the stable plane name for a direction, e.g. HelperTop.
func (d *Deriver) helperName(dir geom.Direction) string {
	s := string(dir)
	return d.prefix + strings.ToUpper(s[:1]) + s[1:]
}

func hasCylindricalFace(body kernel.Body) bool {
	for _, f := range body.Faces() {
		if f.Surface() == kernel.SurfaceCylinder {
			return true
		}
	}
	return false
}

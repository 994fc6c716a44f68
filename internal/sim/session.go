package sim

import (
	"fmt"

	"github.com/partforge/cadctl/internal/kernel"
)

// Faults injects the kernel misbehaviors the automation layer is built to
// survive. All documents of a session share one instance, so a test can arm
// a fault mid-scenario.
type Faults struct {
	// LieOnMateStatus makes AddMate report an error status even when the
	// mate feature was created.
	LieOnMateStatus bool

	// DropRectangles makes SketchRectangle claim success without adding
	// any segments.
	DropRectangles bool
}

// Session is the in-memory kernel connection.
type Session struct {
	Faults *Faults

	open  []*Document
	saved map[string]*Document
}

var _ kernel.Session = (*Session)(nil)

func NewSession() *Session {
	return &Session{
		Faults: &Faults{},
		saved:  make(map[string]*Document),
	}
}

func (s *Session) NewPart(name string) (kernel.Document, error) {
	d := newDocument(name, docPart, s)
	s.open = append(s.open, d)
	return d, nil
}

func (s *Session) NewAssembly(name string) (kernel.Document, error) {
	d := newDocument(name, docAssembly, s)
	s.open = append(s.open, d)
	return d, nil
}

// Open returns a document previously stored with SaveAs.
func (s *Session) Open(path string) (kernel.Document, error) {
	d, ok := s.saved[path]
	if !ok {
		return nil, fmt.Errorf("sim: no document saved at %q", path)
	}
	s.open = append(s.open, d)
	return d, nil
}

func (s *Session) Close(doc kernel.Document) error {
	for i, cur := range s.open {
		if cur == doc {
			s.open = append(s.open[:i], s.open[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("sim: document %q is not open", doc.Name())
}

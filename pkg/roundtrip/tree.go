package roundtrip

import (
	"github.com/dominikbraun/graph"
	"github.com/nirslab/nirspipe/pkg/model"
	"github.com/pkg/errors"
)

var (
	// ErrDuplicateID means two steps share an id: either an aliased
	// subtree or ids assigned outside the usual constructors.
	ErrDuplicateID = errors.New("duplicate step id")
	// ErrCycle means a step is reachable from one of its own descendants.
	ErrCycle = errors.New("step tree contains a cycle")
)

// CheckTree verifies the ownership invariant of an editor step tree: every
// step appears exactly once, under exactly one parent, with no cycles.
func CheckTree(steps []*model.Step) error {
	g := graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles())

	var add func(parent string, s *model.Step) error
	add = func(parent string, s *model.Step) error {
		if err := g.AddVertex(s.ID); err != nil {
			if errors.Is(err, graph.ErrVertexAlreadyExists) {
				return errors.Wrapf(ErrDuplicateID, "step %q (%s)", s.Name, s.ID)
			}
			return err
		}
		if parent != "" {
			if err := g.AddEdge(parent, s.ID); err != nil {
				if errors.Is(err, graph.ErrEdgeCreatesCycle) {
					return errors.Wrapf(ErrCycle, "step %q (%s)", s.Name, s.ID)
				}
				return err
			}
		}

		for _, c := range s.Content.Steps {
			if err := add(s.ID, c); err != nil {
				return err
			}
		}
		for _, grp := range s.Content.Groups {
			for _, c := range grp.Steps {
				if err := add(s.ID, c); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for _, s := range steps {
		if err := add("", s); err != nil {
			return err
		}
	}
	return nil
}

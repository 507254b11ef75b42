package model

import "github.com/nirslab/nirspipe/pkg/cmp"

// ContentKind tags the nested-content variant a step uses.
type ContentKind int

const (
	// ContentNone: the step has no nested steps.
	ContentNone ContentKind = iota

	// ContentFlat: a single editable list of nested steps
	// (containers, sequential groups).
	ContentFlat

	// ContentGrouped: parallel groups of steps, optionally labeled
	// (branch steps, or/cartesian generators).
	ContentGrouped
)

// NestedContent is the single authoritative holder of a step's nested steps.
// Exactly one variant is populated, per the step's subtype.
type NestedContent struct {
	Kind   ContentKind
	Steps  []*Step // ContentFlat
	Groups []Group // ContentGrouped
}

// Group is one parallel branch of a Grouped content.
// Named distinguishes a branch with an explicit name from an indexed one;
// an empty Name with Named set is still a named branch.
type Group struct {
	Name  string
	Named bool
	Steps []*Step
}

func Flat(steps []*Step) NestedContent {
	return NestedContent{Kind: ContentFlat, Steps: steps}
}

func Grouped(groups []Group) NestedContent {
	return NestedContent{Kind: ContentGrouped, Groups: groups}
}

func (c NestedContent) clone() NestedContent {
	ret := NestedContent{Kind: c.Kind}
	if c.Steps != nil {
		ret.Steps = make([]*Step, len(c.Steps))
		for i, s := range c.Steps {
			ret.Steps[i] = s.Clone()
		}
	}
	if c.Groups != nil {
		ret.Groups = make([]Group, len(c.Groups))
		for i, g := range c.Groups {
			steps := make([]*Step, len(g.Steps))
			for j, s := range g.Steps {
				steps[j] = s.Clone()
			}
			ret.Groups[i] = Group{Name: g.Name, Named: g.Named, Steps: steps}
		}
	}
	return ret
}

func (c NestedContent) Equal(o NestedContent) bool {
	if c.Kind != o.Kind {
		return false
	}
	switch c.Kind {
	case ContentFlat:
		return cmp.SliceEqWith(c.Steps, o.Steps, (*Step).Equal)
	case ContentGrouped:
		return cmp.SliceEqWith(c.Groups, o.Groups, Group.Equal)
	}
	return true
}

func (g Group) Equal(o Group) bool {
	return g.Name == o.Name &&
		g.Named == o.Named &&
		cmp.SliceEqWith(g.Steps, o.Steps, (*Step).Equal)
}

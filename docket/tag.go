package docket

import "slices"

// Tag groups operations in the generated document.
type Tag struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

type Tags []Tag

// Names lists the tag names in order.
func (t Tags) Names() []string {
	names := make([]string, len(t))
	for i, tag := range t {
		names[i] = tag.Name
	}
	return names
}

// Union appends the tags of next that are not in t by name. A later
// non-empty description replaces the earlier one.
func (t Tags) Union(next Tags) Tags {
	if len(next) == 0 {
		return t
	}

	out := slices.Clone(t)
	for _, tag := range next {
		idx := slices.IndexFunc(out, func(existing Tag) bool { return existing.Name == tag.Name })
		switch {
		case idx == -1:
			out = append(out, tag)
		case tag.Description != "":
			out[idx].Description = tag.Description
		}
	}
	return out
}

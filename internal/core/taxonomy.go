package core

import (
	"strings"
	"unicode/utf8"
)

// ExcludedMarker prefixes group names whose categories are left out of
// active totals but stay visible (dimmed) in lists.
const ExcludedMarker = "-"

type (
	// CategorySpec is the display metadata configured for one category.
	CategorySpec struct {
		Icon   string
		Income bool
	}

	// Group is one named taxonomy group with its categories in declaration
	// order.
	Group struct {
		Name       string
		Categories []string
		Specs      map[string]CategorySpec
	}

	// Taxonomy is the group → category hierarchy. Groups keep declaration
	// order; byCategory is a reverse index built once at load time with
	// first-match-wins semantics, so a category accidentally declared in two
	// groups resolves exactly as a linear scan would.
	Taxonomy struct {
		Currency   string
		Groups     []Group
		byCategory map[string]*Group
	}
)

// NewTaxonomy builds the taxonomy and its reverse index. Groups and their
// categories must already be in declaration order.
func NewTaxonomy(currency string, groups []Group) *Taxonomy {
	t := &Taxonomy{
		Currency:   currency,
		Groups:     groups,
		byCategory: make(map[string]*Group),
	}
	for i := range t.Groups {
		g := &t.Groups[i]
		for _, c := range g.Categories {
			if _, taken := t.byCategory[c]; !taken {
				t.byCategory[c] = g
			}
		}
	}
	return t
}

// Excluded reports whether the group is an excluded group.
func (g Group) Excluded() bool {
	return strings.HasPrefix(g.Name, ExcludedMarker)
}

// DisplayName is the group name without the excluded marker.
func (g Group) DisplayName() string {
	return strings.TrimPrefix(g.Name, ExcludedMarker)
}

// ResolveGroup returns the name of the first group containing category.
// Categories absent from every group resolve to ("", false).
func (t *Taxonomy) ResolveGroup(category string) (string, bool) {
	g, ok := t.byCategory[category]
	if !ok {
		return "", false
	}
	return g.Name, true
}

// IsExcluded reports whether category belongs to an excluded group. Unknown
// categories are not excluded: new or miscategorized entries must stay
// visible rather than silently vanish from totals.
func (t *Taxonomy) IsExcluded(category string) bool {
	g, ok := t.byCategory[category]
	return ok && g.Excluded()
}

// Icon returns the configured glyph for category, falling back to the first
// character of the category name so every entry renders something.
func (t *Taxonomy) Icon(category string) string {
	if g, ok := t.byCategory[category]; ok {
		if spec, ok := g.Specs[category]; ok && spec.Icon != "" {
			return spec.Icon
		}
	}
	r, size := utf8.DecodeRuneInString(category)
	if size == 0 || r == utf8.RuneError {
		return "?"
	}
	return string(r)
}

// IsIncome reports whether category carries the income flag.
func (t *Taxonomy) IsIncome(category string) bool {
	if g, ok := t.byCategory[category]; ok {
		return g.Specs[category].Income
	}
	return false
}

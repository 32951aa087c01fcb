package core

import "testing"

func testTaxonomy() *Taxonomy {
	return NewTaxonomy("EUR", []Group{
		{
			Name:       "-Ignore",
			Categories: []string{"Fees"},
			Specs:      map[string]CategorySpec{"Fees": {Icon: "$"}},
		},
		{
			Name:       "Food",
			Categories: []string{"Groceries", "Restaurants"},
			Specs: map[string]CategorySpec{
				"Groceries": {Icon: "G"},
				// Restaurants intentionally has no icon configured
			},
		},
		{
			Name:       "Work",
			Categories: []string{"Salary", "Groceries"}, // duplicate: first match must win
			Specs: map[string]CategorySpec{
				"Salary":    {Icon: "€", Income: true},
				"Groceries": {Icon: "X"},
			},
		},
	})
}

func TestResolveGroup(t *testing.T) {
	tax := testTaxonomy()

	tests := []struct {
		category string
		want     string
		found    bool
	}{
		{"Fees", "-Ignore", true},
		{"Groceries", "Food", true}, // declared twice, first group wins
		{"Salary", "Work", true},
		{"Unknown", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			got, found := tax.ResolveGroup(tt.category)
			if got != tt.want || found != tt.found {
				t.Errorf("ResolveGroup(%q) = (%q, %v), want (%q, %v)", tt.category, got, found, tt.want, tt.found)
			}
		})
	}
}

func TestIsExcluded(t *testing.T) {
	tax := testTaxonomy()

	if !tax.IsExcluded("Fees") {
		t.Error("Fees belongs to an excluded group, IsExcluded should be true")
	}
	if tax.IsExcluded("Groceries") {
		t.Error("Groceries belongs to a regular group, IsExcluded should be false")
	}
	// Unknown categories fail open: they stay visible in active totals.
	if tax.IsExcluded("Unknown") {
		t.Error("Unknown categories must not be excluded by default")
	}
}

func TestIcon(t *testing.T) {
	tax := testTaxonomy()

	tests := []struct {
		category string
		want     string
	}{
		{"Groceries", "G"},
		{"Fees", "$"},
		{"Restaurants", "R"}, // configured without icon, first character fallback
		{"Unknown", "U"},     // not in the taxonomy at all
		{"épicerie", "é"},    // multi-byte first rune
		{"", "?"},
	}

	for _, tt := range tests {
		if got := tax.Icon(tt.category); got != tt.want {
			t.Errorf("Icon(%q) = %q, want %q", tt.category, got, tt.want)
		}
	}
}

func TestIsIncome(t *testing.T) {
	tax := testTaxonomy()

	if !tax.IsIncome("Salary") {
		t.Error("Salary is flagged income")
	}
	if tax.IsIncome("Groceries") {
		t.Error("Groceries is not income")
	}
	if tax.IsIncome("Unknown") {
		t.Error("unknown categories are not income")
	}
}

func TestGroupExcluded(t *testing.T) {
	g := Group{Name: "-Internal"}
	if !g.Excluded() {
		t.Error("group with marker prefix should be excluded")
	}
	if g.DisplayName() != "Internal" {
		t.Errorf("DisplayName = %q, want %q", g.DisplayName(), "Internal")
	}

	g = Group{Name: "Food"}
	if g.Excluded() {
		t.Error("group without marker prefix should not be excluded")
	}
}

package entity

import "testing"

func newTestRegistry(t *testing.T) *CategoryRegistry {
	t.Helper()
	expense := TransactionTypeExpense
	registry, err := NewCategoryRegistry([]CategoryDefinition{
		{Name: "Galaxy", Subcategories: []string{"Labor Cost", "Part Profits"}, Project: true},
		{Name: "Loans", Subcategories: []string{"Car Loan", "Home Loan"}, DefaultType: &expense},
	})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	return registry
}

func TestCategoryRegistry_ResultsDoNotAliasRegistry(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *CategoryRegistry)
	}{
		{
			name: "Find subcategories",
			mutate: func(r *CategoryRegistry) {
				def, _ := r.Find("Loans")
				def.Subcategories[0] = "Mutated"
			},
		},
		{
			name: "Find default type",
			mutate: func(r *CategoryRegistry) {
				def, _ := r.Find("Loans")
				*def.DefaultType = TransactionTypeIncome
			},
		},
		{
			name: "Resolve subcategories",
			mutate: func(r *CategoryRegistry) {
				def, _, _ := r.Resolve("Loans", "Car Loan")
				def.Subcategories[0] = "Mutated"
			},
		},
		{
			name: "Definitions subcategories",
			mutate: func(r *CategoryRegistry) {
				r.Definitions()[1].Subcategories[0] = "Mutated"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := newTestRegistry(t)
			tt.mutate(registry)

			def, ok := registry.Find("Loans")
			if !ok {
				t.Fatal("Loans not found")
			}
			if got := def.FirstSubcategory(); got != "Car Loan" {
				t.Errorf("FirstSubcategory = %q, want Car Loan", got)
			}
			if def.DefaultType == nil || *def.DefaultType != TransactionTypeExpense {
				t.Errorf("DefaultType changed to %v", def.DefaultType)
			}
		})
	}
}

func TestCategoryRegistry_Resolve(t *testing.T) {
	registry := newTestRegistry(t)

	tests := []struct {
		name            string
		category        string
		subcategory     string
		wantSubcategory string
		wantOK          bool
	}{
		{"known pair", "Galaxy", "Part Profits", "Part Profits", true},
		{"unknown subcategory falls back", "Galaxy", "Plumbing", "Labor Cost", true},
		{"unknown category", "Moon Base", "Labor Cost", "", false},
		{"category is case-sensitive", "galaxy", "Labor Cost", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, sub, ok := registry.Resolve(tt.category, tt.subcategory)
			if ok != tt.wantOK || sub != tt.wantSubcategory {
				t.Errorf("Resolve(%q, %q) = %q, %v; want %q, %v",
					tt.category, tt.subcategory, sub, ok, tt.wantSubcategory, tt.wantOK)
			}
		})
	}
}

// Package entity defines the core business entities for the domain layer.
package entity

import (
	"fmt"
	"slices"
)

// OtherSubcategory is the label used when a transaction carries no subcategory.
const OtherSubcategory = "Other"

// CategoryDefinition describes one category of the registry.
type CategoryDefinition struct {
	Name          string
	Subcategories []string
	DefaultType   *TransactionType // Applied when the category is picked without an explicit type
	Project       bool             // Real-estate project tracked in project status
}

// HasSubcategory reports whether name is one of the category's subcategories.
func (c CategoryDefinition) HasSubcategory(name string) bool {
	return slices.Contains(c.Subcategories, name)
}

// FirstSubcategory returns the first subcategory, or OtherSubcategory when the list is empty.
func (c CategoryDefinition) FirstSubcategory() string {
	if len(c.Subcategories) == 0 {
		return OtherSubcategory
	}
	return c.Subcategories[0]
}

// clone returns a deep copy that shares no memory with c.
func (c CategoryDefinition) clone() CategoryDefinition {
	copied := CategoryDefinition{
		Name:          c.Name,
		Subcategories: slices.Clone(c.Subcategories),
		Project:       c.Project,
	}
	if c.DefaultType != nil {
		t := *c.DefaultType
		copied.DefaultType = &t
	}
	return copied
}

// CategoryRegistry is an immutable, ordered table of category definitions.
type CategoryRegistry struct {
	definitions []CategoryDefinition
	index       map[string]int
}

// NewCategoryRegistry validates the definitions and builds a registry.
// The definitions are copied so later changes by the caller are not visible.
func NewCategoryRegistry(definitions []CategoryDefinition) (*CategoryRegistry, error) {
	if len(definitions) == 0 {
		return nil, fmt.Errorf("category registry must define at least one category")
	}

	registry := &CategoryRegistry{
		definitions: make([]CategoryDefinition, 0, len(definitions)),
		index:       make(map[string]int, len(definitions)),
	}

	for i, def := range definitions {
		if def.Name == "" {
			return nil, fmt.Errorf("category #%d has an empty name", i+1)
		}
		if _, dup := registry.index[def.Name]; dup {
			return nil, fmt.Errorf("category %q is defined more than once", def.Name)
		}
		if len(def.Subcategories) == 0 {
			return nil, fmt.Errorf("category %q has no subcategories", def.Name)
		}
		if def.DefaultType != nil && !def.DefaultType.IsValid() {
			return nil, fmt.Errorf("category %q has invalid default type %q", def.Name, *def.DefaultType)
		}

		registry.index[def.Name] = len(registry.definitions)
		registry.definitions = append(registry.definitions, def.clone())
	}

	return registry, nil
}

// Definitions returns a copy of the registry in declaration order.
func (r *CategoryRegistry) Definitions() []CategoryDefinition {
	out := make([]CategoryDefinition, len(r.definitions))
	for i, def := range r.definitions {
		out[i] = def.clone()
	}
	return out
}

// Find looks up a category by its exact name. The result is a copy.
func (r *CategoryRegistry) Find(name string) (CategoryDefinition, bool) {
	i, ok := r.index[name]
	if !ok {
		return CategoryDefinition{}, false
	}
	return r.definitions[i].clone(), true
}

// Names returns the category names in declaration order.
func (r *CategoryRegistry) Names() []string {
	names := make([]string, len(r.definitions))
	for i, def := range r.definitions {
		names[i] = def.Name
	}
	return names
}

// Projects returns the names of the categories flagged as projects.
func (r *CategoryRegistry) Projects() []string {
	var names []string
	for _, def := range r.definitions {
		if def.Project {
			names = append(names, def.Name)
		}
	}
	return names
}

// Resolve validates a (category, subcategory) pair against the registry.
// An unknown category is rejected; an unknown subcategory falls back to the
// category's first subcategory.
func (r *CategoryRegistry) Resolve(category, subcategory string) (CategoryDefinition, string, bool) {
	def, ok := r.Find(category)
	if !ok {
		return CategoryDefinition{}, "", false
	}
	if def.HasSubcategory(subcategory) {
		return def, subcategory, true
	}
	return def, def.FirstSubcategory(), true
}

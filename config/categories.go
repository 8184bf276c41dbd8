package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/realtytrack/backend/internal/domain/entity"
	domainerror "github.com/realtytrack/backend/internal/domain/error"
)

// projectSubcategories are shared by every real-estate project.
var projectSubcategories = []string{
	"Capital Investment",
	"Loans Given",
	"Loans Received",
	"Part Profits",
	"Investor Funds",
	"Construction Material",
	"Labor Cost",
	"Other",
}

// DefaultCategories returns the built-in category table.
func DefaultCategories() []entity.CategoryDefinition {
	expense := entity.TransactionTypeExpense

	defs := make([]entity.CategoryDefinition, 0, 10)
	for _, project := range []string{"Galaxy", "Tatva Developer", "Kalpchandra Serenity", "Bouganvilla", "Varaj Vihar"} {
		defs = append(defs, entity.CategoryDefinition{
			Name:          project,
			Subcategories: projectSubcategories,
			Project:       true,
		})
	}

	return append(defs,
		entity.CategoryDefinition{
			Name:          "Investments",
			Subcategories: []string{"SIP", "Gold SIP", "Stocks", "Fixed Deposit", "Other"},
		},
		entity.CategoryDefinition{
			Name:          "Insurance",
			Subcategories: []string{"Mediclaim", "Teams Plan", "LIC Policy", "Vehicle Insurance", "Other"},
		},
		entity.CategoryDefinition{
			Name:          "Loans",
			Subcategories: []string{"Home Loan", "Personal Loan", "Business Loan", "Car Loan"},
		},
		entity.CategoryDefinition{
			Name:          "Friends & Family",
			Subcategories: []string{"Loans Given", "Loans Taken", "Gift", "Help"},
		},
		entity.CategoryDefinition{
			Name: "Regular Expenses",
			Subcategories: []string{
				"Home Expenses",
				"Electrical Expenses",
				"Property Tax",
				"Vehicle Expenses",
				"Traveling Expenses",
				"School Fees",
				"Family Welfare",
				"Food & Dining",
				"Utilities",
			},
			DefaultType: &expense,
		},
	)
}

// categoryFile is the YAML layout of a registry file:
//
//	categories:
//	  - name: Galaxy
//	    project: true
//	    subcategories: [Capital Investment, Labor Cost]
//	  - name: Regular Expenses
//	    default_type: EXPENSE
//	    subcategories: [Utilities]
type categoryFile struct {
	Categories []struct {
		Name          string   `yaml:"name"`
		Subcategories []string `yaml:"subcategories"`
		DefaultType   string   `yaml:"default_type"`
		Project       bool     `yaml:"project"`
	} `yaml:"categories"`
}

// ParseCategories decodes and validates a YAML registry.
func ParseCategories(data []byte) (*entity.CategoryRegistry, error) {
	var file categoryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", domainerror.ErrInvalidCategoryRegistry, err)
	}

	defs := make([]entity.CategoryDefinition, 0, len(file.Categories))
	for _, c := range file.Categories {
		def := entity.CategoryDefinition{
			Name:          c.Name,
			Subcategories: c.Subcategories,
			Project:       c.Project,
		}
		if c.DefaultType != "" {
			t := entity.TransactionType(c.DefaultType)
			def.DefaultType = &t
		}
		defs = append(defs, def)
	}

	registry, err := entity.NewCategoryRegistry(defs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainerror.ErrInvalidCategoryRegistry, err)
	}
	return registry, nil
}

// LoadCategories returns the registry from the configured file, or the
// built-in table when no file is set.
func LoadCategories(cfg CategoriesConfig) (*entity.CategoryRegistry, error) {
	if cfg.File == "" {
		return entity.NewCategoryRegistry(DefaultCategories())
	}

	data, err := os.ReadFile(cfg.File)
	if err != nil {
		return nil, fmt.Errorf("failed to read category registry %s: %w", cfg.File, err)
	}
	return ParseCategories(data)
}

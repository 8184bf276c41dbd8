package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/realtytrack/backend/internal/domain/entity"
)

// ProjectStatus is the all-time net position of one project category.
type ProjectStatus struct {
	Project string
	Net     decimal.Decimal
}

// ComputeProjectStatus returns one row per registry project, in registry
// order, including projects without activity.
func ComputeProjectStatus(transactions []*entity.Transaction, registry *entity.CategoryRegistry) []ProjectStatus {
	projects := registry.Projects()

	nets := make(map[string]decimal.Decimal, len(projects))
	for _, p := range projects {
		nets[p] = decimal.Zero
	}
	for _, t := range transactions {
		if net, ok := nets[t.Category]; ok {
			nets[t.Category] = net.Add(t.SignedAmount())
		}
	}

	status := make([]ProjectStatus, len(projects))
	for i, p := range projects {
		status[i] = ProjectStatus{Project: p, Net: nets[p]}
	}
	return status
}

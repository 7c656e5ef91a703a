package analysis

import (
	"context"

	"github.com/malund/ociwho/internal/identity"
	"github.com/malund/ociwho/internal/report"
)

// ListCompartments reports the tenancy root followed by every active
// compartment, filtered by hierarchical path when a compartment filter is
// set.
func (a *Analyzer) ListCompartments(ctx context.Context) (*report.CompartmentsReport, error) {
	rep := &report.CompartmentsReport{TenancyID: a.tenancy.TenancyID()}
	rep.Compartments = append(rep.Compartments, identity.Compartment{
		ID:    a.tenancy.TenancyID(),
		Name:  "root",
		State: identity.StateActive,
	})

	compartments, err := a.tenancy.ListCompartments(ctx)
	if err != nil {
		return nil, err
	}
	a.logger.Info("listed compartments", "count", len(compartments))

	for _, compartment := range compartments {
		match, err := a.matchCompartment(compartment)
		if err != nil {
			return nil, err
		}
		if match {
			rep.Compartments = append(rep.Compartments, compartment)
		}
	}

	return rep, nil
}

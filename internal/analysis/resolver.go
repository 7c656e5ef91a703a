// Package analysis implements the identity reports: deciding which
// authorization policy statements mention a user's groups, rewriting
// compartment OCIDs in matched statements to human-readable names, and
// building the domain, user, and compartment listings.
package analysis

import (
	"context"

	"github.com/hashicorp/go-hclog"

	"github.com/malund/ociwho/internal/identity"
)

// CompartmentGetter is the directory lookup the resolver depends on.
type CompartmentGetter interface {
	GetCompartment(ctx context.Context, id string) (identity.Compartment, error)
}

// Resolver memoizes compartment OCID to name lookups for the lifetime of
// one run. Compartment OCIDs are globally unique and immutable, so the
// cache is never invalidated. Not safe for concurrent use; the pipeline
// has a single caller.
type Resolver struct {
	directory CompartmentGetter
	tenancyID string
	cache     map[string]string
	logger    hclog.Logger
}

// NewResolver creates a Resolver backed by the given directory lookup.
func NewResolver(directory CompartmentGetter, tenancyID string, logger hclog.Logger) *Resolver {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Resolver{
		directory: directory,
		tenancyID: tenancyID,
		cache:     make(map[string]string),
		logger:    logger,
	}
}

// Resolve returns the human-readable name of a compartment. The tenancy
// root resolves to the literal "root" without a lookup. Lookup failures are
// non-fatal: the OCID is returned unchanged so downstream text always has
// some compartment reference, and a warning is logged. Failed lookups are
// not cached, so a later call may retry.
func (r *Resolver) Resolve(ctx context.Context, compartmentID string) string {
	if compartmentID == r.tenancyID {
		return "root"
	}

	if name, ok := r.cache[compartmentID]; ok {
		return name
	}

	compartment, err := r.directory.GetCompartment(ctx, compartmentID)
	if err != nil {
		r.logger.Warn("could not resolve compartment", "compartment_id", compartmentID, "error", err)
		return compartmentID
	}

	r.cache[compartmentID] = compartment.Name
	return compartment.Name
}

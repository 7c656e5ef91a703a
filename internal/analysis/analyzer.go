package analysis

import (
	"context"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/malund/ociwho/internal/identity"
	"github.com/malund/ociwho/internal/namefilter"
	"github.com/malund/ociwho/internal/report"
)

// Analyzer runs the identity reports against the tenancy boundary.
type Analyzer struct {
	tenancy identity.TenancyClient
	domains identity.DomainOpener
	logger  hclog.Logger

	// CompartmentFilter limits which compartments are scanned and listed,
	// matched against their hierarchical path. The tenancy root is always
	// scanned for policies: policies there commonly apply tenancy-wide.
	CompartmentFilter *namefilter.Filter

	// DomainFilter limits which domains are scanned and listed, matched
	// against their display name.
	DomainFilter *namefilter.Filter

	// DomainDelay is the pause between identity-domain scans, to stay under
	// the per-tenancy rate limits.
	DomainDelay time.Duration
}

// NewAnalyzer creates an Analyzer over the given boundary clients.
func NewAnalyzer(tenancy identity.TenancyClient, domains identity.DomainOpener, logger hclog.Logger) *Analyzer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Analyzer{
		tenancy: tenancy,
		domains: domains,
		logger:  logger,
	}
}

// resolvedUser is the outcome of locating a user.
type resolvedUser struct {
	user   identity.User
	kind   identity.Kind
	domain identity.Domain       // zero for legacy users
	client identity.DomainClient // nil for legacy users
}

// resolveUser finds the user behind an id. Legacy OCIDs go straight to the
// tenancy client; any other id is probed against each active identity
// domain in listing order, and the first domain that knows the user wins.
func (a *Analyzer) resolveUser(ctx context.Context, userID string) (*resolvedUser, error) {
	if identity.KindOfUserID(userID) == identity.KindLegacy {
		user, err := a.tenancy.GetUser(ctx, userID)
		if err != nil {
			if identity.IsNotFound(err) {
				return nil, &identity.UserNotFoundError{UserID: userID}
			}
			return nil, err
		}
		return &resolvedUser{user: user, kind: identity.KindLegacy}, nil
	}

	domains, err := a.tenancy.ListDomains(ctx)
	if err != nil {
		return nil, err
	}

	for _, domain := range domains {
		match, err := a.matchDomain(domain.DisplayName)
		if err != nil {
			return nil, err
		}
		if !match {
			continue
		}

		client, err := a.domains.OpenDomain(domain)
		if err != nil {
			a.logger.Warn("could not open identity domain", "domain", domain.DisplayName, "error", err)
			continue
		}
		user, err := client.GetUser(ctx, userID)
		if err != nil {
			// Not in this domain, keep probing.
			a.logger.Debug("user not in domain", "domain", domain.DisplayName, "error", err)
			continue
		}
		a.logger.Info("found user in domain", "domain", domain.DisplayName)
		return &resolvedUser{user: user, kind: identity.KindIdentityDomain, domain: domain, client: client}, nil
	}

	return nil, &identity.UserNotFoundError{UserID: userID}
}

// AnalyzeUser reports every policy statement that applies to the user
// through group membership. Compartment resolution and per-compartment
// policy listing failures degrade with warnings; only user lookup and
// compartment enumeration failures abort the analysis.
func (a *Analyzer) AnalyzeUser(ctx context.Context, userID string) (*report.PolicyReport, error) {
	resolved, err := a.resolveUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	a.logger.Info("detected user", "name", resolved.user.Name, "kind", resolved.kind.String())

	var groups []identity.Group
	if resolved.kind == identity.KindLegacy {
		groups = a.legacyGroups(ctx, userID)
	} else {
		groups = a.domainGroups(ctx, resolved.client, userID)
	}
	a.logger.Info("resolved group memberships", "count", len(groups))

	rep := &report.PolicyReport{
		User:       resolved.user,
		Kind:       resolved.kind,
		DomainName: resolved.domain.DisplayName,
		Groups:     groups,
	}

	if len(groups) == 0 {
		a.logger.Warn("no groups found for user", "user_id", userID)
		return rep, nil
	}

	groupNames := make([]string, len(groups))
	for i, group := range groups {
		groupNames[i] = group.Name
	}

	compartmentIDs, err := a.scanCompartmentIDs(ctx)
	if err != nil {
		return nil, err
	}

	resolver := NewResolver(a.tenancy, a.tenancy.TenancyID(), a.logger)
	pipeline := NewPipeline(resolver)

	for _, compartmentID := range compartmentIDs {
		a.logger.Debug("checking policies", "compartment", resolver.Resolve(ctx, compartmentID))
		policies, err := a.tenancy.ListPolicies(ctx, compartmentID)
		if err != nil {
			a.logger.Warn("could not list policies", "compartment_id", compartmentID, "error", err)
			continue
		}
		rep.PoliciesScanned += len(policies)
		rep.Results = append(rep.Results, pipeline.FilterPoliciesForGroups(ctx, policies, groupNames)...)
	}
	rep.CompartmentsScanned = len(compartmentIDs)

	a.logger.Info("analysis complete", "statements", len(rep.Results), "policies", rep.PoliciesScanned, "compartments", rep.CompartmentsScanned)
	return rep, nil
}

// scanCompartmentIDs returns the tenancy root followed by every active
// compartment that passes the compartment filter.
func (a *Analyzer) scanCompartmentIDs(ctx context.Context) ([]string, error) {
	compartments, err := a.tenancy.ListCompartments(ctx)
	if err != nil {
		return nil, err
	}

	ids := []string{a.tenancy.TenancyID()}
	for _, compartment := range compartments {
		match, err := a.matchCompartment(compartment)
		if err != nil {
			return nil, err
		}
		if match {
			ids = append(ids, compartment.ID)
		}
	}
	return ids, nil
}

func (a *Analyzer) matchCompartment(compartment identity.Compartment) (bool, error) {
	if a.CompartmentFilter == nil {
		return true, nil
	}
	return a.CompartmentFilter.Match(compartment.Path)
}

func (a *Analyzer) matchDomain(displayName string) (bool, error) {
	if a.DomainFilter == nil {
		return true, nil
	}
	return a.DomainFilter.Match(displayName)
}

// pause waits the configured delay between identity-domain scans.
func (a *Analyzer) pause(ctx context.Context) error {
	if a.DomainDelay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(a.DomainDelay):
		return nil
	}
}

// joinGroupNames renders group names for log lines.
func joinGroupNames(groups []identity.Group) string {
	names := make([]string, len(groups))
	for i, group := range groups {
		names[i] = group.Name
	}
	return strings.Join(names, ", ")
}

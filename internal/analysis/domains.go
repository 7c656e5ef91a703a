package analysis

import (
	"context"

	"github.com/malund/ociwho/internal/identity"
	"github.com/malund/ociwho/internal/report"
)

// rootDomainName is the display name of the synthetic legacy IAM entry.
const rootDomainName = "Root Tenancy (Legacy IAM)"

// rootEntry presents the legacy IAM realm of the tenancy root as a domain
// row. It is always Active.
func (a *Analyzer) rootEntry() report.DomainEntry {
	return report.DomainEntry{
		Name:  rootDomainName,
		Kind:  identity.KindLegacy,
		ID:    a.tenancy.TenancyID(),
		State: "Active",
	}
}

// domainEntry converts an identity domain into a report row.
func domainEntry(domain identity.Domain) report.DomainEntry {
	return report.DomainEntry{
		Name:  domain.DisplayName,
		Kind:  identity.KindIdentityDomain,
		ID:    domain.ID,
		URL:   domain.URL,
		State: domain.State,
	}
}

// ListDomains reports the legacy IAM realm and every active identity
// domain, filtered by display name when a domain filter is set.
func (a *Analyzer) ListDomains(ctx context.Context) (*report.DomainsReport, error) {
	rep := &report.DomainsReport{TenancyID: a.tenancy.TenancyID()}

	root := a.rootEntry()
	match, err := a.matchDomain(root.Name)
	if err != nil {
		return nil, err
	}
	if match {
		rep.Domains = append(rep.Domains, root)
	}

	domains, err := a.tenancy.ListDomains(ctx)
	if err != nil {
		return nil, err
	}
	a.logger.Info("listed identity domains", "count", len(domains))

	for _, domain := range domains {
		match, err := a.matchDomain(domain.DisplayName)
		if err != nil {
			return nil, err
		}
		if match {
			rep.Domains = append(rep.Domains, domainEntry(domain))
		}
	}

	return rep, nil
}

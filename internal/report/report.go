// Package report defines the flat report structures produced by the
// analysis layer and consumed by the output renderers.
package report

import "github.com/malund/ociwho/internal/identity"

// MatchResult is one policy statement that references a user's group. The
// statement text has compartment OCIDs already translated to names.
type MatchResult struct {
	// PolicyName is the display name of the owning policy
	PolicyName string `json:"policy_name"`

	// CompartmentName is the resolved name of the policy's compartment
	CompartmentName string `json:"compartment_name"`

	// Statement is the translated statement text
	Statement string `json:"statement"`
}

// PolicyReport is the outcome of analyzing which policy statements apply to
// one user.
type PolicyReport struct {
	// User is the analyzed user
	User identity.User `json:"user"`

	// Kind is the realm the user was found in
	Kind identity.Kind `json:"kind"`

	// DomainName is the identity domain's display name, empty for legacy users
	DomainName string `json:"domain_name,omitempty"`

	// Groups are the user's group memberships
	Groups []identity.Group `json:"groups"`

	// Results are the matching statements in scan order
	Results []MatchResult `json:"results"`

	// CompartmentsScanned is how many compartments were checked for policies
	CompartmentsScanned int `json:"compartments_scanned"`

	// PoliciesScanned is how many policies were checked across all compartments
	PoliciesScanned int `json:"policies_scanned"`
}

// DomainEntry is one row of the domains report. The tenancy root appears as
// a synthetic legacy IAM entry.
type DomainEntry struct {
	// Name is the domain's display name
	Name string `json:"name"`

	// Kind is the realm kind of this entry
	Kind identity.Kind `json:"kind"`

	// ID is the domain OCID (the tenancy OCID for the legacy entry)
	ID string `json:"id"`

	// URL is the domain's SCIM endpoint, empty for the legacy entry
	URL string `json:"url,omitempty"`

	// State is the lifecycle state
	State string `json:"state"`
}

// DomainsReport lists the identity domains of a tenancy.
type DomainsReport struct {
	// TenancyID is the tenancy root OCID
	TenancyID string `json:"tenancy_id"`

	// Domains are the entries in listing order, the legacy realm first
	Domains []DomainEntry `json:"domains"`
}

// DomainUsers is the users of one domain. Warning carries the degradation
// message when the user listing failed; the report still renders.
type DomainUsers struct {
	// Domain is the domain the users belong to
	Domain DomainEntry `json:"domain"`

	// Users are the (possibly filtered) users of the domain
	Users []identity.User `json:"users"`

	// Warning is a non-fatal listing failure, empty on success
	Warning string `json:"warning,omitempty"`
}

// UsersSummary is the totals block of a users report.
type UsersSummary struct {
	// Domains is how many domains were scanned
	Domains int `json:"domains"`

	// MatchingDomains is how many scanned domains have at least one user row
	MatchingDomains int `json:"matching_domains"`

	// TotalUsers is the user row count across all domains
	TotalUsers int `json:"total_users"`
}

// UsersReport lists users per domain across the tenancy.
type UsersReport struct {
	// TenancyID is the tenancy root OCID
	TenancyID string `json:"tenancy_id"`

	// Query is the username filter that was applied, empty for full listings
	Query string `json:"query,omitempty"`

	// Domains are the per-domain blocks in scan order
	Domains []DomainUsers `json:"domains"`

	// Summary is computed from the domain blocks
	Summary UsersSummary `json:"summary"`

	// SummaryOnly hides the per-domain user tables in table output
	SummaryOnly bool `json:"-"`
}

// Compute fills in the summary from the domain blocks.
func (r *UsersReport) Compute() {
	r.Summary = UsersSummary{Domains: len(r.Domains)}
	for _, d := range r.Domains {
		if len(d.Users) > 0 {
			r.Summary.MatchingDomains++
		}
		r.Summary.TotalUsers += len(d.Users)
	}
}

// CompartmentsReport lists the active compartments of a tenancy, root first.
type CompartmentsReport struct {
	// TenancyID is the tenancy root OCID
	TenancyID string `json:"tenancy_id"`

	// Compartments are the rows in listing order
	Compartments []identity.Compartment `json:"compartments"`
}

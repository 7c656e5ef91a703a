package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/malund/ociwho/internal/identity"
	"github.com/malund/ociwho/internal/namefilter"
)

func TestResolveUser_LegacyWithoutProbing(t *testing.T) {
	tenancy := newFakeTenancy()
	tenancy.users["ocid1.user.oc1..alice"] = identity.User{ID: "ocid1.user.oc1..alice", Name: "alice"}
	tenancy.domains = []identity.Domain{{ID: "d1", DisplayName: "Default"}}
	opener := newFakeOpener()
	analyzer := NewAnalyzer(tenancy, opener, nil)

	resolved, err := analyzer.resolveUser(context.Background(), "ocid1.user.oc1..alice")
	if err != nil {
		t.Fatalf("resolveUser error: %v", err)
	}
	if resolved.kind != identity.KindLegacy {
		t.Errorf("kind = %v, want KindLegacy", resolved.kind)
	}
	if len(opener.opened) != 0 {
		t.Errorf("legacy OCID should not probe domains, probed %v", opener.opened)
	}
}

func TestResolveUser_ProbesDomainsInOrder(t *testing.T) {
	tenancy := newFakeTenancy()
	tenancy.domains = []identity.Domain{
		{ID: "d1", DisplayName: "First"},
		{ID: "d2", DisplayName: "Second"},
		{ID: "d3", DisplayName: "Third"},
	}
	opener := newFakeOpener()
	opener.clients["d1"] = newFakeDomainClient()
	second := newFakeDomainClient()
	second.users["81a9295fd751480daec690c975029513"] = identity.User{ID: "81a9295fd751480daec690c975029513", Name: "bob"}
	opener.clients["d2"] = second
	opener.clients["d3"] = newFakeDomainClient()
	analyzer := NewAnalyzer(tenancy, opener, nil)

	resolved, err := analyzer.resolveUser(context.Background(), "81a9295fd751480daec690c975029513")
	if err != nil {
		t.Fatalf("resolveUser error: %v", err)
	}
	if resolved.kind != identity.KindIdentityDomain || resolved.domain.DisplayName != "Second" {
		t.Errorf("resolved in %q, want Second", resolved.domain.DisplayName)
	}
	// Probing stops at the first domain that knows the user.
	if len(opener.opened) != 2 {
		t.Errorf("opened %v, want the first two domains only", opener.opened)
	}
}

func TestResolveUser_SkipsFilteredDomains(t *testing.T) {
	tenancy := newFakeTenancy()
	tenancy.domains = []identity.Domain{
		{ID: "d1", DisplayName: "Default"},
		{ID: "d2", DisplayName: "Prod"},
	}
	opener := newFakeOpener()
	opener.clients["d1"] = newFakeDomainClient()
	prod := newFakeDomainClient()
	prod.users["81a9295fd751480daec690c975029513"] = identity.User{ID: "81a9295fd751480daec690c975029513", Name: "bob"}
	opener.clients["d2"] = prod
	analyzer := NewAnalyzer(tenancy, opener, nil)
	analyzer.DomainFilter = namefilter.New([]string{"Prod"}, nil)

	resolved, err := analyzer.resolveUser(context.Background(), "81a9295fd751480daec690c975029513")
	if err != nil {
		t.Fatalf("resolveUser error: %v", err)
	}
	if resolved.domain.DisplayName != "Prod" {
		t.Errorf("resolved in %q, want Prod", resolved.domain.DisplayName)
	}
	if len(opener.opened) != 1 || opener.opened[0] != "Prod" {
		t.Errorf("opened %v, filtered domain should not be probed", opener.opened)
	}
}

func TestResolveUser_NotFoundAnywhere(t *testing.T) {
	tenancy := newFakeTenancy()
	tenancy.domains = []identity.Domain{{ID: "d1", DisplayName: "Default"}}
	opener := newFakeOpener()
	opener.clients["d1"] = newFakeDomainClient()
	analyzer := NewAnalyzer(tenancy, opener, nil)

	_, err := analyzer.resolveUser(context.Background(), "81a9295fd751480daec690c975029513")
	var notFound *identity.UserNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want UserNotFoundError", err)
	}
}

func TestAnalyzeUser_LegacyEndToEnd(t *testing.T) {
	tenancy := newFakeTenancy()
	tenancy.users["ocid1.user.oc1..alice"] = identity.User{ID: "ocid1.user.oc1..alice", Name: "alice", Email: "alice@example.com"}
	tenancy.legacyGroups["ocid1.user.oc1..alice"] = []identity.Group{{ID: "g1", Name: "Admins"}}
	tenancy.compartments = []identity.Compartment{
		{ID: "ocid1.compartment.oc1..fin", Name: "Finance", Path: "Finance", State: identity.StateActive},
	}
	tenancy.policies[tenancy.tenancyID] = []identity.Policy{
		{
			Name:          "tenancy-admins",
			CompartmentID: tenancy.tenancyID,
			Statements: []string{
				"Allow group Admins to manage all-resources in compartment ocid1.compartment.oc1..fin",
				"Allow group Viewers to read all-resources in tenancy",
			},
		},
	}
	tenancy.policies["ocid1.compartment.oc1..fin"] = []identity.Policy{
		{
			Name:          "finance-local",
			CompartmentID: "ocid1.compartment.oc1..fin",
			Statements:    []string{"Allow group Admins to read budgets in tenancy"},
		},
	}
	analyzer := NewAnalyzer(tenancy, newFakeOpener(), nil)

	rep, err := analyzer.AnalyzeUser(context.Background(), "ocid1.user.oc1..alice")
	if err != nil {
		t.Fatalf("AnalyzeUser error: %v", err)
	}

	if rep.Kind != identity.KindLegacy {
		t.Errorf("Kind = %v, want KindLegacy", rep.Kind)
	}
	if rep.CompartmentsScanned != 2 {
		t.Errorf("CompartmentsScanned = %d, want 2 (root + Finance)", rep.CompartmentsScanned)
	}
	if rep.PoliciesScanned != 2 {
		t.Errorf("PoliciesScanned = %d, want 2", rep.PoliciesScanned)
	}
	if len(rep.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(rep.Results))
	}
	if rep.Results[0].Statement != "Allow group Admins to manage all-resources in compartment Finance" {
		t.Errorf("compartment id not translated: %q", rep.Results[0].Statement)
	}
	if rep.Results[1].PolicyName != "finance-local" || rep.Results[1].CompartmentName != "Finance" {
		t.Errorf("unexpected second result: %+v", rep.Results[1])
	}
}

func TestAnalyzeUser_NoGroupsShortCircuits(t *testing.T) {
	tenancy := newFakeTenancy()
	tenancy.users["ocid1.user.oc1..bob"] = identity.User{ID: "ocid1.user.oc1..bob", Name: "bob"}
	analyzer := NewAnalyzer(tenancy, newFakeOpener(), nil)

	rep, err := analyzer.AnalyzeUser(context.Background(), "ocid1.user.oc1..bob")
	if err != nil {
		t.Fatalf("AnalyzeUser error: %v", err)
	}
	if len(rep.Groups) != 0 || len(rep.Results) != 0 {
		t.Errorf("expected empty report, got %+v", rep)
	}
	if rep.CompartmentsScanned != 0 {
		t.Errorf("no compartments should be scanned without groups, got %d", rep.CompartmentsScanned)
	}
}

func TestAnalyzeUser_PolicyListFailureSkipsCompartment(t *testing.T) {
	tenancy := newFakeTenancy()
	tenancy.users["ocid1.user.oc1..alice"] = identity.User{ID: "ocid1.user.oc1..alice", Name: "alice"}
	tenancy.legacyGroups["ocid1.user.oc1..alice"] = []identity.Group{{ID: "g1", Name: "Admins"}}
	tenancy.compartments = []identity.Compartment{
		{ID: "ocid1.compartment.oc1..locked", Name: "Locked", Path: "Locked", State: identity.StateActive},
	}
	tenancy.policiesErr["ocid1.compartment.oc1..locked"] = &identity.RequestError{
		Op: "ListPolicies", StatusCode: 404, Code: identity.CodeNotAuthorizedOrNotFound,
	}
	tenancy.policies[tenancy.tenancyID] = []identity.Policy{
		{Name: "p", CompartmentID: tenancy.tenancyID, Statements: []string{"Allow group Admins to read all-resources in tenancy"}},
	}
	analyzer := NewAnalyzer(tenancy, newFakeOpener(), nil)

	rep, err := analyzer.AnalyzeUser(context.Background(), "ocid1.user.oc1..alice")
	if err != nil {
		t.Fatalf("per-compartment failure must not abort: %v", err)
	}
	if len(rep.Results) != 1 {
		t.Errorf("got %d results, want 1 from the readable compartment", len(rep.Results))
	}
}

func TestScanCompartmentIDs_RootAlwaysIncluded(t *testing.T) {
	tenancy := newFakeTenancy()
	tenancy.compartments = []identity.Compartment{
		{ID: "c1", Name: "prod", Path: "prod", State: identity.StateActive},
		{ID: "c2", Name: "dev", Path: "dev", State: identity.StateActive},
	}
	analyzer := NewAnalyzer(tenancy, newFakeOpener(), nil)
	analyzer.CompartmentFilter = namefilter.New([]string{"prod"}, nil)

	ids, err := analyzer.scanCompartmentIDs(context.Background())
	if err != nil {
		t.Fatalf("scanCompartmentIDs error: %v", err)
	}
	if len(ids) != 2 || ids[0] != tenancy.tenancyID || ids[1] != "c1" {
		t.Errorf("ids = %v, want root then prod", ids)
	}
}

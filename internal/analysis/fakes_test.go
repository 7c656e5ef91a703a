package analysis

import (
	"context"
	"fmt"

	"github.com/malund/ociwho/internal/identity"
)

// fakeTenancy implements identity.TenancyClient for tests.
type fakeTenancy struct {
	tenancyID    string
	compartments []identity.Compartment
	domains      []identity.Domain
	policies     map[string][]identity.Policy
	users        map[string]identity.User
	legacyUsers  []identity.User
	legacyGroups map[string][]identity.Group

	listUsersErr       error
	listGroupsErr      error
	policiesErr        map[string]error
	getCompartmentErrs map[string]error

	getCompartmentCalls map[string]int
}

func newFakeTenancy() *fakeTenancy {
	return &fakeTenancy{
		tenancyID:           "ocid1.tenancy.oc1..root",
		policies:            make(map[string][]identity.Policy),
		users:               make(map[string]identity.User),
		legacyGroups:        make(map[string][]identity.Group),
		policiesErr:         make(map[string]error),
		getCompartmentErrs:  make(map[string]error),
		getCompartmentCalls: make(map[string]int),
	}
}

func (f *fakeTenancy) TenancyID() string { return f.tenancyID }

func (f *fakeTenancy) ListCompartments(ctx context.Context) ([]identity.Compartment, error) {
	return f.compartments, nil
}

func (f *fakeTenancy) GetCompartment(ctx context.Context, id string) (identity.Compartment, error) {
	f.getCompartmentCalls[id]++
	if err, ok := f.getCompartmentErrs[id]; ok {
		return identity.Compartment{}, err
	}
	for _, compartment := range f.compartments {
		if compartment.ID == id {
			return compartment, nil
		}
	}
	return identity.Compartment{}, &identity.RequestError{
		Op: "GetCompartment", Resource: id, StatusCode: 404, Code: identity.CodeNotAuthorizedOrNotFound,
	}
}

func (f *fakeTenancy) ListDomains(ctx context.Context) ([]identity.Domain, error) {
	return f.domains, nil
}

func (f *fakeTenancy) ListPolicies(ctx context.Context, compartmentID string) ([]identity.Policy, error) {
	if err, ok := f.policiesErr[compartmentID]; ok {
		return nil, err
	}
	return f.policies[compartmentID], nil
}

func (f *fakeTenancy) GetUser(ctx context.Context, id string) (identity.User, error) {
	user, ok := f.users[id]
	if !ok {
		return identity.User{}, &identity.RequestError{Op: "GetUser", Resource: id, StatusCode: 404}
	}
	return user, nil
}

func (f *fakeTenancy) ListUsers(ctx context.Context) ([]identity.User, error) {
	if f.listUsersErr != nil {
		return nil, f.listUsersErr
	}
	return f.legacyUsers, nil
}

func (f *fakeTenancy) ListGroupsForUser(ctx context.Context, userID string) ([]identity.Group, error) {
	if f.listGroupsErr != nil {
		return nil, f.listGroupsErr
	}
	return f.legacyGroups[userID], nil
}

// fakeDomainClient implements identity.DomainClient for tests.
type fakeDomainClient struct {
	users      map[string]identity.User
	userList   []identity.User
	groupRefs  map[string][]string
	groups     map[string]identity.Group
	members    map[string][]string
	groupOrder []string

	refsErr      error
	listErr      error
	getGroupErrs map[string]error
	membersErrs  map[string]error

	getUserCalls int
}

func newFakeDomainClient() *fakeDomainClient {
	return &fakeDomainClient{
		users:        make(map[string]identity.User),
		groupRefs:    make(map[string][]string),
		groups:       make(map[string]identity.Group),
		members:      make(map[string][]string),
		getGroupErrs: make(map[string]error),
		membersErrs:  make(map[string]error),
	}
}

func (f *fakeDomainClient) addGroup(group identity.Group, memberIDs ...string) {
	f.groups[group.ID] = group
	f.members[group.ID] = memberIDs
	f.groupOrder = append(f.groupOrder, group.ID)
}

func (f *fakeDomainClient) GetUser(ctx context.Context, id string) (identity.User, error) {
	f.getUserCalls++
	user, ok := f.users[id]
	if !ok {
		return identity.User{}, &identity.RequestError{Op: "GetUser", Resource: id, StatusCode: 404}
	}
	return user, nil
}

func (f *fakeDomainClient) UserGroupRefs(ctx context.Context, userID string) ([]string, error) {
	if f.refsErr != nil {
		return nil, f.refsErr
	}
	return f.groupRefs[userID], nil
}

func (f *fakeDomainClient) GetGroup(ctx context.Context, id string) (identity.Group, error) {
	if err, ok := f.getGroupErrs[id]; ok {
		return identity.Group{}, err
	}
	group, ok := f.groups[id]
	if !ok {
		return identity.Group{}, &identity.RequestError{Op: "GetGroup", Resource: id, StatusCode: 404}
	}
	return group, nil
}

func (f *fakeDomainClient) ListGroups(ctx context.Context) ([]identity.Group, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	groups := make([]identity.Group, 0, len(f.groupOrder))
	for _, id := range f.groupOrder {
		groups = append(groups, f.groups[id])
	}
	return groups, nil
}

func (f *fakeDomainClient) GroupMemberIDs(ctx context.Context, groupID string) ([]string, error) {
	if err, ok := f.membersErrs[groupID]; ok {
		return nil, err
	}
	return f.members[groupID], nil
}

func (f *fakeDomainClient) ListUsers(ctx context.Context, query string) ([]identity.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	// The real adapter filters server-side via SCIM; the fake reuses the
	// same containment semantics.
	return filterUsers(f.userList, query), nil
}

// fakeOpener implements identity.DomainOpener, mapping domain ids to fake
// domain clients.
type fakeOpener struct {
	clients  map[string]identity.DomainClient
	openErrs map[string]error
	opened   []string
}

func newFakeOpener() *fakeOpener {
	return &fakeOpener{
		clients:  make(map[string]identity.DomainClient),
		openErrs: make(map[string]error),
	}
}

func (f *fakeOpener) OpenDomain(domain identity.Domain) (identity.DomainClient, error) {
	f.opened = append(f.opened, domain.DisplayName)
	if err, ok := f.openErrs[domain.ID]; ok {
		return nil, err
	}
	client, ok := f.clients[domain.ID]
	if !ok {
		return nil, fmt.Errorf("no client for domain %s", domain.ID)
	}
	return client, nil
}

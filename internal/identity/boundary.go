package identity

import "context"

// TenancyClient is the tenancy-level identity surface: compartments,
// identity domains, policies, and the legacy IAM users and groups that live
// in the tenancy root.
type TenancyClient interface {
	// TenancyID returns the OCID of the tenancy root.
	TenancyID() string

	// ListCompartments returns the ACTIVE compartments of the whole tenancy
	// subtree, root excluded, with hierarchical paths.
	ListCompartments(ctx context.Context) ([]Compartment, error)

	// GetCompartment fetches a single compartment by OCID.
	GetCompartment(ctx context.Context, id string) (Compartment, error)

	// ListDomains returns the ACTIVE identity domains of the tenancy.
	ListDomains(ctx context.Context) ([]Domain, error)

	// ListPolicies returns the policies owned by a compartment, statements
	// in policy order.
	ListPolicies(ctx context.Context, compartmentID string) ([]Policy, error)

	// GetUser looks up a legacy IAM user by OCID.
	GetUser(ctx context.Context, id string) (User, error)

	// ListUsers returns the legacy IAM users of the tenancy root.
	ListUsers(ctx context.Context) ([]User, error)

	// ListGroupsForUser returns the legacy IAM groups a user belongs to.
	ListGroupsForUser(ctx context.Context, userID string) ([]Group, error)
}

// DomainClient is the SCIM surface of a single identity domain.
type DomainClient interface {
	// GetUser looks up a user by identity-domain id.
	GetUser(ctx context.Context, id string) (User, error)

	// UserGroupRefs returns the group ids from the user's groups attribute.
	UserGroupRefs(ctx context.Context, userID string) ([]string, error)

	// GetGroup fetches a single group by id.
	GetGroup(ctx context.Context, id string) (Group, error)

	// ListGroups returns every group in the domain.
	ListGroups(ctx context.Context) ([]Group, error)

	// GroupMemberIDs returns the member user ids of a group.
	GroupMemberIDs(ctx context.Context, groupID string) ([]string, error)

	// ListUsers returns the domain's users. A non-empty query keeps only
	// users whose username or email contains it, case-insensitively.
	ListUsers(ctx context.Context, query string) ([]User, error)
}

// DomainOpener opens the SCIM surface of one identity domain.
type DomainOpener interface {
	OpenDomain(domain Domain) (DomainClient, error)
}

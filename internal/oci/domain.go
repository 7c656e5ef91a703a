package oci

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/identitydomains"

	"github.com/malund/ociwho/internal/identity"
)

// scimPageSize is the SCIM page size used for identity-domain listings.
const scimPageSize = 100

// scimPageDelay paces SCIM pagination to stay under per-domain rate limits.
const scimPageDelay = 200 * time.Millisecond

// userAttributes are the SCIM attributes fetched for user lookups and
// listings.
const userAttributes = "userName,displayName,emails,active,meta,name"

// domainClient implements identity.DomainClient for one identity domain.
type domainClient struct {
	client identitydomains.IdentityDomainsClient
	domain identity.Domain
	logger hclog.Logger
}

// OpenDomain opens the SCIM surface of an identity domain at its service
// endpoint.
func (c *Client) OpenDomain(domain identity.Domain) (identity.DomainClient, error) {
	client, err := identitydomains.NewIdentityDomainsClientWithConfigurationProvider(c.provider, domain.URL)
	if err != nil {
		return nil, fmt.Errorf("could not create client for domain %s: %w", domain.DisplayName, err)
	}
	return &domainClient{
		client: client,
		domain: domain,
		logger: c.logger.With("domain", domain.DisplayName),
	}, nil
}

// GetUser looks up a user by identity-domain id.
func (d *domainClient) GetUser(ctx context.Context, id string) (identity.User, error) {
	resp, err := d.client.GetUser(ctx, identitydomains.GetUserRequest{
		UserId:          common.String(id),
		Attributes:      common.String(userAttributes),
		RequestMetadata: requestMetadata(),
	})
	if err != nil {
		return identity.User{}, wrapErr("GetUser", id, err)
	}
	return convertDomainUser(resp.User), nil
}

// UserGroupRefs returns the group ids from the user's groups attribute.
func (d *domainClient) UserGroupRefs(ctx context.Context, userID string) ([]string, error) {
	resp, err := d.client.GetUser(ctx, identitydomains.GetUserRequest{
		UserId:          common.String(userID),
		Attributes:      common.String("groups"),
		RequestMetadata: requestMetadata(),
	})
	if err != nil {
		return nil, wrapErr("GetUser", userID, err)
	}

	refs := make([]string, 0, len(resp.User.Groups))
	for _, ref := range resp.User.Groups {
		if ref.Value != nil {
			refs = append(refs, *ref.Value)
		}
	}
	return refs, nil
}

// GetGroup fetches a single group by id.
func (d *domainClient) GetGroup(ctx context.Context, id string) (identity.Group, error) {
	resp, err := d.client.GetGroup(ctx, identitydomains.GetGroupRequest{
		GroupId:         common.String(id),
		RequestMetadata: requestMetadata(),
	})
	if err != nil {
		return identity.Group{}, wrapErr("GetGroup", id, err)
	}
	return convertDomainGroup(resp.Group), nil
}

// ListGroups returns every group in the domain.
func (d *domainClient) ListGroups(ctx context.Context) ([]identity.Group, error) {
	var groups []identity.Group
	err := scimPages(ctx, func(startIndex int) (int, error) {
		resp, err := d.client.ListGroups(ctx, identitydomains.ListGroupsRequest{
			StartIndex:      common.Int(startIndex),
			Count:           common.Int(scimPageSize),
			RequestMetadata: requestMetadata(),
		})
		if err != nil {
			return 0, wrapErr("ListGroups", d.domain.DisplayName, err)
		}
		for _, group := range resp.Resources {
			groups = append(groups, convertDomainGroup(group))
		}
		return len(resp.Resources), nil
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// GroupMemberIDs returns the member user ids of a group.
func (d *domainClient) GroupMemberIDs(ctx context.Context, groupID string) ([]string, error) {
	resp, err := d.client.GetGroup(ctx, identitydomains.GetGroupRequest{
		GroupId:         common.String(groupID),
		Attributes:      common.String("members"),
		RequestMetadata: requestMetadata(),
	})
	if err != nil {
		return nil, wrapErr("GetGroup", groupID, err)
	}

	members := make([]string, 0, len(resp.Group.Members))
	for _, member := range resp.Group.Members {
		if member.Value != nil {
			members = append(members, *member.Value)
		}
	}
	return members, nil
}

// ListUsers returns the domain's users through SCIM pagination. A non-empty
// query is pushed down as a SCIM containment filter on username and email.
func (d *domainClient) ListUsers(ctx context.Context, query string) ([]identity.User, error) {
	var users []identity.User
	err := scimPages(ctx, func(startIndex int) (int, error) {
		req := identitydomains.ListUsersRequest{
			StartIndex:      common.Int(startIndex),
			Count:           common.Int(scimPageSize),
			Attributes:      common.String(userAttributes),
			RequestMetadata: requestMetadata(),
		}
		if query != "" {
			req.Filter = common.String(scimUserFilter(query))
		}

		resp, err := d.client.ListUsers(ctx, req)
		if err != nil {
			return 0, wrapErr("ListUsers", d.domain.DisplayName, err)
		}
		for _, user := range resp.Resources {
			users = append(users, convertDomainUser(user))
		}
		return len(resp.Resources), nil
	})
	if err != nil {
		return nil, err
	}

	d.logger.Debug("listed domain users", "total", len(users))
	return users, nil
}

// scimPages drives SCIM pagination from startIndex 1 in scimPageSize steps.
// fetch returns the page length; a page shorter than scimPageSize ends the
// walk. Full pages are paced by scimPageDelay.
func scimPages(ctx context.Context, fetch func(startIndex int) (int, error)) error {
	startIndex := 1
	for {
		n, err := fetch(startIndex)
		if err != nil {
			return err
		}
		if n < scimPageSize {
			return nil
		}
		startIndex += scimPageSize
		if err := pause(ctx, scimPageDelay); err != nil {
			return err
		}
	}
}

// scimUserFilter builds the SCIM filter matching users whose username or
// email contains the query.
func scimUserFilter(query string) string {
	return fmt.Sprintf(`userName co %q or emails.value co %q`, query, query)
}

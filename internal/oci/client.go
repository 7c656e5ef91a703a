// Package oci binds the identity capability boundary to the Oracle Cloud
// Infrastructure SDK. Authentication comes from the standard OCI config
// file, every request carries the SDK default retry policy, and service
// failures are wrapped into the boundary error taxonomy.
package oci

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/oracle/oci-go-sdk/v65/common"
	sdkidentity "github.com/oracle/oci-go-sdk/v65/identity"

	"github.com/malund/ociwho/internal/identity"
)

// Client implements identity.TenancyClient and identity.DomainOpener on top
// of the OCI identity service.
type Client struct {
	client    sdkidentity.IdentityClient
	provider  common.ConfigurationProvider
	tenancyID string
	logger    hclog.Logger
}

// NewClient builds a client authenticated from the OCI config file. An
// empty configPath means the SDK default location (~/.oci/config); an empty
// profile means the DEFAULT profile.
func NewClient(configPath, profile string, logger hclog.Logger) (*Client, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	var provider common.ConfigurationProvider
	switch {
	case configPath != "":
		provider = common.CustomProfileConfigProvider(configPath, profile)
	case profile != "" && profile != "DEFAULT":
		provider = common.CustomProfileConfigProvider("", profile)
	default:
		provider = common.DefaultConfigProvider()
	}

	tenancyID, err := provider.TenancyOCID()
	if err != nil {
		return nil, fmt.Errorf("could not read tenancy from OCI config: %w", err)
	}

	client, err := sdkidentity.NewIdentityClientWithConfigurationProvider(provider)
	if err != nil {
		return nil, fmt.Errorf("could not create identity client: %w", err)
	}

	logger.Debug("connected to tenancy", "tenancy_id", tenancyID)
	return &Client{
		client:    client,
		provider:  provider,
		tenancyID: tenancyID,
		logger:    logger,
	}, nil
}

// TenancyID returns the OCID of the tenancy root.
func (c *Client) TenancyID() string {
	return c.tenancyID
}

// requestMetadata returns per-request metadata carrying the SDK default
// retry policy, which backs off on throttling and transient server errors.
func requestMetadata() common.RequestMetadata {
	policy := common.DefaultRetryPolicy()
	return common.RequestMetadata{RetryPolicy: &policy}
}

// pause waits between paged requests to stay under the service rate limits.
func pause(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// ListCompartments returns every ACTIVE compartment of the tenancy subtree,
// requested with ANY access level, with hierarchical paths derived from the
// parent chain.
func (c *Client) ListCompartments(ctx context.Context) ([]identity.Compartment, error) {
	req := sdkidentity.ListCompartmentsRequest{
		CompartmentId:          common.String(c.tenancyID),
		CompartmentIdInSubtree: common.Bool(true),
		AccessLevel:            sdkidentity.ListCompartmentsAccessLevelAny,
		RequestMetadata:        requestMetadata(),
	}

	var items []sdkidentity.Compartment
	for {
		resp, err := c.client.ListCompartments(ctx, req)
		if err != nil {
			return nil, wrapErr("ListCompartments", c.tenancyID, err)
		}
		items = append(items, resp.Items...)
		if resp.OpcNextPage == nil {
			break
		}
		req.Page = resp.OpcNextPage
	}

	c.logger.Debug("listed compartments", "total", len(items))
	return convertCompartments(items, c.tenancyID), nil
}

// GetCompartment fetches a single compartment by OCID.
func (c *Client) GetCompartment(ctx context.Context, id string) (identity.Compartment, error) {
	resp, err := c.client.GetCompartment(ctx, sdkidentity.GetCompartmentRequest{
		CompartmentId:   common.String(id),
		RequestMetadata: requestMetadata(),
	})
	if err != nil {
		return identity.Compartment{}, wrapErr("GetCompartment", id, err)
	}
	return convertCompartment(resp.Compartment), nil
}

// ListDomains returns the ACTIVE identity domains of the tenancy.
func (c *Client) ListDomains(ctx context.Context) ([]identity.Domain, error) {
	req := sdkidentity.ListDomainsRequest{
		CompartmentId:   common.String(c.tenancyID),
		RequestMetadata: requestMetadata(),
	}

	var items []sdkidentity.DomainSummary
	for {
		resp, err := c.client.ListDomains(ctx, req)
		if err != nil {
			return nil, wrapErr("ListDomains", c.tenancyID, err)
		}
		items = append(items, resp.Items...)
		if resp.OpcNextPage == nil {
			break
		}
		req.Page = resp.OpcNextPage
	}

	return convertDomains(items), nil
}

// ListPolicies returns the policies owned by a compartment.
func (c *Client) ListPolicies(ctx context.Context, compartmentID string) ([]identity.Policy, error) {
	req := sdkidentity.ListPoliciesRequest{
		CompartmentId:   common.String(compartmentID),
		RequestMetadata: requestMetadata(),
	}

	var policies []identity.Policy
	for {
		resp, err := c.client.ListPolicies(ctx, req)
		if err != nil {
			return nil, wrapErr("ListPolicies", compartmentID, err)
		}
		for _, item := range resp.Items {
			policies = append(policies, convertPolicy(item))
		}
		if resp.OpcNextPage == nil {
			break
		}
		req.Page = resp.OpcNextPage
	}

	return policies, nil
}

// GetUser looks up a legacy IAM user by OCID.
func (c *Client) GetUser(ctx context.Context, id string) (identity.User, error) {
	resp, err := c.client.GetUser(ctx, sdkidentity.GetUserRequest{
		UserId:          common.String(id),
		RequestMetadata: requestMetadata(),
	})
	if err != nil {
		return identity.User{}, wrapErr("GetUser", id, err)
	}
	return convertLegacyUser(resp.User), nil
}

// ListUsers returns the legacy IAM users of the tenancy root.
func (c *Client) ListUsers(ctx context.Context) ([]identity.User, error) {
	req := sdkidentity.ListUsersRequest{
		CompartmentId:   common.String(c.tenancyID),
		RequestMetadata: requestMetadata(),
	}

	var users []identity.User
	for {
		resp, err := c.client.ListUsers(ctx, req)
		if err != nil {
			return nil, wrapErr("ListUsers", c.tenancyID, err)
		}
		for _, item := range resp.Items {
			users = append(users, convertLegacyUser(item))
		}
		if resp.OpcNextPage == nil {
			break
		}
		req.Page = resp.OpcNextPage
	}

	return users, nil
}

// ListGroupsForUser returns the legacy IAM groups a user belongs to, with
// full group details resolved per membership.
func (c *Client) ListGroupsForUser(ctx context.Context, userID string) ([]identity.Group, error) {
	req := sdkidentity.ListUserGroupMembershipsRequest{
		CompartmentId:   common.String(c.tenancyID),
		UserId:          common.String(userID),
		RequestMetadata: requestMetadata(),
	}

	var groupIDs []string
	for {
		resp, err := c.client.ListUserGroupMemberships(ctx, req)
		if err != nil {
			return nil, wrapErr("ListUserGroupMemberships", userID, err)
		}
		for _, membership := range resp.Items {
			if membership.GroupId != nil {
				groupIDs = append(groupIDs, *membership.GroupId)
			}
		}
		if resp.OpcNextPage == nil {
			break
		}
		req.Page = resp.OpcNextPage
	}

	groups := make([]identity.Group, 0, len(groupIDs))
	for _, groupID := range groupIDs {
		resp, err := c.client.GetGroup(ctx, sdkidentity.GetGroupRequest{
			GroupId:         common.String(groupID),
			RequestMetadata: requestMetadata(),
		})
		if err != nil {
			return nil, wrapErr("GetGroup", groupID, err)
		}
		groups = append(groups, convertLegacyGroup(resp.Group))
	}

	return groups, nil
}

package oci

import (
	"fmt"
	"strings"
	"time"

	"github.com/oracle/oci-go-sdk/v65/common"
	sdkidentity "github.com/oracle/oci-go-sdk/v65/identity"
	"github.com/oracle/oci-go-sdk/v65/identitydomains"

	"github.com/malund/ociwho/internal/identity"
)

// wrapErr converts an SDK failure into the boundary error taxonomy.
func wrapErr(op, resource string, err error) error {
	if serviceErr, ok := common.IsServiceError(err); ok {
		return &identity.RequestError{
			Op:         op,
			Resource:   resource,
			StatusCode: serviceErr.GetHTTPStatusCode(),
			Code:       serviceErr.GetCode(),
			Message:    serviceErr.GetMessage(),
		}
	}
	return fmt.Errorf("%s %s: %w", op, resource, err)
}

// convertCompartments keeps ACTIVE compartments and derives each one's
// hierarchical path from the parent chain.
func convertCompartments(items []sdkidentity.Compartment, tenancyID string) []identity.Compartment {
	byID := make(map[string]sdkidentity.Compartment, len(items))
	for _, item := range items {
		if item.Id != nil {
			byID[*item.Id] = item
		}
	}

	var out []identity.Compartment
	for _, item := range items {
		if string(item.LifecycleState) != identity.StateActive {
			continue
		}
		out = append(out, identity.Compartment{
			ID:    deref(item.Id),
			Name:  deref(item.Name),
			Path:  compartmentPath(item, byID, tenancyID),
			State: string(item.LifecycleState),
		})
	}
	return out
}

// compartmentPath walks the parent chain up to the tenancy root. The root
// itself is not part of the path. A parent missing from the listing (not
// visible to the caller) truncates the path at that point.
func compartmentPath(item sdkidentity.Compartment, byID map[string]sdkidentity.Compartment, tenancyID string) string {
	segments := []string{deref(item.Name)}

	parent := deref(item.CompartmentId)
	for parent != "" && parent != tenancyID {
		parentItem, ok := byID[parent]
		if !ok {
			break
		}
		segments = append([]string{deref(parentItem.Name)}, segments...)
		parent = deref(parentItem.CompartmentId)
	}

	return strings.Join(segments, "/")
}

// convertCompartment converts a single fetched compartment. No path is
// derived: the full listing is not available for a point lookup.
func convertCompartment(item sdkidentity.Compartment) identity.Compartment {
	return identity.Compartment{
		ID:    deref(item.Id),
		Name:  deref(item.Name),
		State: string(item.LifecycleState),
	}
}

// convertDomains keeps ACTIVE identity domains.
func convertDomains(items []sdkidentity.DomainSummary) []identity.Domain {
	var out []identity.Domain
	for _, item := range items {
		if string(item.LifecycleState) != identity.StateActive {
			continue
		}
		out = append(out, identity.Domain{
			ID:          deref(item.Id),
			DisplayName: deref(item.DisplayName),
			URL:         deref(item.Url),
			State:       string(item.LifecycleState),
		})
	}
	return out
}

func convertPolicy(item sdkidentity.Policy) identity.Policy {
	return identity.Policy{
		ID:            deref(item.Id),
		Name:          deref(item.Name),
		CompartmentID: deref(item.CompartmentId),
		Statements:    item.Statements,
	}
}

func convertLegacyUser(item sdkidentity.User) identity.User {
	user := identity.User{
		ID:    deref(item.Id),
		Name:  deref(item.Name),
		Email: deref(item.Email),
		State: string(item.LifecycleState),
	}
	if item.TimeCreated != nil {
		user.TimeCreated = item.TimeCreated.Time
	}
	return user
}

func convertLegacyGroup(item sdkidentity.Group) identity.Group {
	return identity.Group{
		ID:   deref(item.Id),
		Name: deref(item.Name),
	}
}

// convertDomainUser flattens a SCIM user: first email wins, active maps to
// Active/Inactive, and the creation time comes from the SCIM meta block.
func convertDomainUser(item identitydomains.User) identity.User {
	user := identity.User{
		ID:          deref(item.Id),
		Name:        deref(item.UserName),
		DisplayName: deref(item.DisplayName),
		State:       "Inactive",
	}
	if item.Active != nil && *item.Active {
		user.State = "Active"
	}
	if len(item.Emails) > 0 {
		user.Email = deref(item.Emails[0].Value)
	}
	if item.Meta != nil && item.Meta.Created != nil {
		if created, err := time.Parse(time.RFC3339, *item.Meta.Created); err == nil {
			user.TimeCreated = created
		}
	}
	return user
}

func convertDomainGroup(item identitydomains.Group) identity.Group {
	return identity.Group{
		ID:   deref(item.Id),
		Name: deref(item.DisplayName),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package analysis

import (
	"context"
	"slices"

	"github.com/malund/ociwho/internal/identity"
)

// legacyGroups returns the legacy IAM groups of a user. A listing failure
// degrades to an empty group list with a warning.
func (a *Analyzer) legacyGroups(ctx context.Context, userID string) []identity.Group {
	groups, err := a.tenancy.ListGroupsForUser(ctx, userID)
	if err != nil {
		a.logger.Warn("could not list group memberships", "user_id", userID, "error", err)
		return nil
	}
	a.logger.Debug("legacy group memberships", "groups", joinGroupNames(groups))
	return groups
}

// domainGroups returns the identity-domain groups of a user with a two-step
// strategy: the user's groups attribute first, then, when that lookup fails
// as a whole, a full scan of the domain's groups checking member lists.
// Only the final outcome surfaces.
func (a *Analyzer) domainGroups(ctx context.Context, client identity.DomainClient, userID string) []identity.Group {
	refs, err := client.UserGroupRefs(ctx, userID)
	if err != nil {
		a.logger.Warn("direct group lookup failed, scanning all groups", "user_id", userID, "error", err)
		return a.scanDomainGroups(ctx, client, userID)
	}

	var groups []identity.Group
	for _, ref := range refs {
		group, err := client.GetGroup(ctx, ref)
		if err != nil {
			a.logger.Warn("could not fetch group details", "group_id", ref, "error", err)
			continue
		}
		groups = append(groups, group)
	}
	a.logger.Debug("domain group memberships", "groups", joinGroupNames(groups))
	return groups
}

// scanDomainGroups reconciles membership by listing every group in the
// domain and checking its member ids. Per-group failures are skipped.
func (a *Analyzer) scanDomainGroups(ctx context.Context, client identity.DomainClient, userID string) []identity.Group {
	all, err := client.ListGroups(ctx)
	if err != nil {
		a.logger.Warn("could not list domain groups", "error", err)
		return nil
	}

	var groups []identity.Group
	for _, group := range all {
		members, err := client.GroupMemberIDs(ctx, group.ID)
		if err != nil {
			a.logger.Warn("could not check group members", "group", group.Name, "error", err)
			continue
		}
		if slices.Contains(members, userID) {
			groups = append(groups, group)
		}
	}
	a.logger.Debug("domain group memberships via scan", "groups", joinGroupNames(groups))
	return groups
}

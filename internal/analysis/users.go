package analysis

import (
	"context"
	"strings"

	"github.com/malund/ociwho/internal/identity"
	"github.com/malund/ociwho/internal/report"
)

// ListUsers reports the users of the legacy IAM realm and of every active
// identity domain. A non-empty query keeps only users whose username or
// email contains it. A domain whose user listing fails is reported with
// zero users and a warning; it never aborts the whole report.
func (a *Analyzer) ListUsers(ctx context.Context, query string) (*report.UsersReport, error) {
	rep := &report.UsersReport{
		TenancyID: a.tenancy.TenancyID(),
		Query:     query,
	}

	root := a.rootEntry()
	match, err := a.matchDomain(root.Name)
	if err != nil {
		return nil, err
	}
	if match {
		a.logger.Info("scanning legacy IAM users")
		block := report.DomainUsers{Domain: root}
		users, err := a.tenancy.ListUsers(ctx)
		if err != nil {
			block.Warning = listWarning(err)
			a.logger.Warn("could not list legacy users", "error", err)
		} else {
			// Legacy IAM has no server-side substring filter.
			block.Users = filterUsers(users, query)
		}
		rep.Domains = append(rep.Domains, block)
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

		// Pause between scanned realms, the legacy realm included.
		if len(rep.Domains) > 0 {
			if err := a.pause(ctx); err != nil {
				return nil, err
			}
		}

		a.logger.Info("scanning identity domain", "domain", domain.DisplayName)
		block := report.DomainUsers{Domain: domainEntry(domain)}

		client, err := a.domains.OpenDomain(domain)
		if err != nil {
			block.Warning = err.Error()
			a.logger.Warn("could not open identity domain", "domain", domain.DisplayName, "error", err)
		} else {
			users, err := client.ListUsers(ctx, query)
			if err != nil {
				block.Warning = listWarning(err)
				a.logger.Warn("could not list domain users", "domain", domain.DisplayName, "error", err)
			} else {
				block.Users = users
			}
		}

		rep.Domains = append(rep.Domains, block)
	}

	rep.Compute()
	return rep, nil
}

// listWarning keys the degradation message on the error class.
func listWarning(err error) string {
	switch {
	case identity.IsUnauthorized(err):
		return "no access to list users in this domain"
	case identity.IsNotFound(err):
		return "domain endpoint not accessible"
	default:
		return err.Error()
	}
}

// filterUsers keeps users whose username or email contains the query,
// case-insensitively. An empty query keeps everything.
func filterUsers(users []identity.User, query string) []identity.User {
	if query == "" {
		return users
	}

	q := strings.ToLower(query)
	var out []identity.User
	for _, user := range users {
		if strings.Contains(strings.ToLower(user.Name), q) ||
			strings.Contains(strings.ToLower(user.Email), q) {
			out = append(out, user)
		}
	}
	return out
}

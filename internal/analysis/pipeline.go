package analysis

import (
	"context"

	"github.com/malund/ociwho/internal/identity"
	"github.com/malund/ociwho/internal/report"
)

// Pipeline decides which policy statements reference a set of groups and
// rewrites compartment references in the ones that do.
type Pipeline struct {
	resolver   *Resolver
	translator *Translator
}

// NewPipeline creates a Pipeline sharing one resolver between compartment
// name lookups and statement translation.
func NewPipeline(resolver *Resolver) *Pipeline {
	return &Pipeline{
		resolver:   resolver,
		translator: NewTranslator(resolver),
	}
}

// FilterPoliciesForGroups returns one MatchResult per statement that
// references at least one of the group names. Policies are processed in
// input order and statements in statement order, so the output order is
// stable. Each policy's compartment is resolved once and reused for all its
// statements. A statement is emitted at most once even when several groups
// match it. Empty policies or group names yield an empty result.
func (p *Pipeline) FilterPoliciesForGroups(ctx context.Context, policies []identity.Policy, groupNames []string) []report.MatchResult {
	var results []report.MatchResult

	for _, policy := range policies {
		compartmentName := p.resolver.Resolve(ctx, policy.CompartmentID)

		for _, statement := range policy.Statements {
			if !Matches(statement, groupNames) {
				continue
			}
			results = append(results, report.MatchResult{
				PolicyName:      policy.Name,
				CompartmentName: compartmentName,
				Statement:       p.translator.Translate(ctx, statement),
			})
		}
	}

	return results
}

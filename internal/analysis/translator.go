package analysis

import (
	"context"
	"regexp"
)

// compartmentRef matches "compartment <ocid>" inside a policy statement:
// the literal word compartment, whitespace, then a compartment OCID token.
var compartmentRef = regexp.MustCompile(`(?i)compartment\s+(ocid1\.compartment\.[A-Za-z0-9._-]+)`)

// Translator rewrites compartment OCIDs embedded in policy statements with
// names resolved through a Resolver.
type Translator struct {
	resolver *Resolver
}

// NewTranslator creates a Translator using the given resolver.
func NewTranslator(resolver *Resolver) *Translator {
	return &Translator{resolver: resolver}
}

// Translate replaces every "compartment ocid1.compartment..." reference
// with "compartment <name>". Each occurrence is replaced independently and
// non-recursively; statements without such a reference pass through
// unchanged. Since resolved names never contain the OCID pattern, the
// output of one pass translates to itself.
func (t *Translator) Translate(ctx context.Context, statement string) string {
	return compartmentRef.ReplaceAllStringFunc(statement, func(match string) string {
		id := compartmentRef.FindStringSubmatch(match)[1]
		return "compartment " + t.resolver.Resolve(ctx, id)
	})
}

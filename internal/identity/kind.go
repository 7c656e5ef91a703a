package identity

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind distinguishes the legacy IAM realm of the tenancy root from the
// newer identity domains.
type Kind int

const (
	// KindLegacy is the legacy IAM realm (full OCIDs, tenancy root)
	KindLegacy Kind = iota
	// KindIdentityDomain is an identity domain (short ids, SCIM endpoint)
	KindIdentityDomain
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindLegacy:
		return "Legacy IAM"
	case KindIdentityDomain:
		return "Identity Domain"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON implements json.Marshaler
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (k *Kind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseKind(str)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind parses a string into a Kind
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "legacy iam", "legacy":
		return KindLegacy, nil
	case "identity domain":
		return KindIdentityDomain, nil
	default:
		return KindLegacy, fmt.Errorf("unknown kind: %s", s)
	}
}

// KindOfUserID returns the kind implied by the shape of a user id. Ids
// without the legacy OCID prefix still need to be located by probing the
// identity domains.
func KindOfUserID(id string) Kind {
	if strings.HasPrefix(id, LegacyUserIDPrefix) {
		return KindLegacy
	}
	return KindIdentityDomain
}

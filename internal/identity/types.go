// Package identity defines the capability boundary to the cloud identity
// service: the domain types and the tenancy-level and per-domain client
// interfaces the rest of the tool consumes. The OCI SDK binding lives in
// internal/oci; tests use fakes.
package identity

import "time"

// StateActive is the lifecycle state of usable compartments and domains.
const StateActive = "ACTIVE"

// LegacyUserIDPrefix is the OCID prefix of legacy IAM users. Ids without it
// belong to identity domains.
const LegacyUserIDPrefix = "ocid1.user."

// Compartment is one compartment in the tenancy.
type Compartment struct {
	// ID is the compartment OCID
	ID string `json:"id"`

	// Name is the compartment's display name
	Name string `json:"name"`

	// Path is the hierarchical path from the root, e.g. "prod/networking".
	// The root itself is not part of the path.
	Path string `json:"path,omitempty"`

	// State is the lifecycle state, e.g. "ACTIVE"
	State string `json:"state"`
}

// Domain is one identity domain in the tenancy.
type Domain struct {
	// ID is the domain OCID
	ID string `json:"id"`

	// DisplayName is the domain's display name
	DisplayName string `json:"display_name"`

	// URL is the domain's SCIM service endpoint
	URL string `json:"url"`

	// State is the lifecycle state, e.g. "ACTIVE"
	State string `json:"state"`
}

// Group is one IAM group, legacy or identity-domain.
type Group struct {
	// ID is the group OCID or identity-domain id
	ID string `json:"id"`

	// Name is the group name used in policy statements
	Name string `json:"name"`
}

// Policy is one authorization policy with its raw statements.
type Policy struct {
	// ID is the policy OCID
	ID string `json:"id"`

	// Name is the policy's display name
	Name string `json:"name"`

	// CompartmentID is the OCID of the compartment owning the policy
	CompartmentID string `json:"compartment_id"`

	// Statements are the raw statement strings in policy order
	Statements []string `json:"statements"`
}

// User is one IAM user, legacy or identity-domain.
type User struct {
	// ID is the user OCID or identity-domain id
	ID string `json:"id"`

	// Name is the username
	Name string `json:"name"`

	// DisplayName is the human name (identity-domain users only)
	DisplayName string `json:"display_name,omitempty"`

	// Email is the user's primary email, empty when not exposed
	Email string `json:"email,omitempty"`

	// State is the lifecycle state, e.g. "ACTIVE" or "Active"
	State string `json:"state"`

	// TimeCreated is when the user was created; zero when unknown
	TimeCreated time.Time `json:"time_created,omitzero"`
}

package output

import (
	"encoding/json"
	"io"

	"github.com/malund/ociwho/internal/report"
)

// JSONRenderer renders reports in JSON format
type JSONRenderer struct{}

// RenderDomains writes the domains report in JSON format
func (r *JSONRenderer) RenderDomains(w io.Writer, rep *report.DomainsReport) error {
	return encode(w, rep)
}

// RenderUsers writes the users report in JSON format
func (r *JSONRenderer) RenderUsers(w io.Writer, rep *report.UsersReport) error {
	return encode(w, rep)
}

// RenderCompartments writes the compartments report in JSON format
func (r *JSONRenderer) RenderCompartments(w io.Writer, rep *report.CompartmentsReport) error {
	return encode(w, rep)
}

// RenderPolicies writes the policy analysis report in JSON format
func (r *JSONRenderer) RenderPolicies(w io.Writer, rep *report.PolicyReport) error {
	return encode(w, rep)
}

func encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

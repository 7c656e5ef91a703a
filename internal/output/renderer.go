// Package output renders identity reports as tables, CSV, or JSON.
package output

import (
	"io"

	"github.com/malund/ociwho/internal/report"
)

// Renderer defines the interface for output renderers
type Renderer interface {
	// RenderDomains writes the domains report to the writer
	RenderDomains(w io.Writer, rep *report.DomainsReport) error

	// RenderUsers writes the users report to the writer
	RenderUsers(w io.Writer, rep *report.UsersReport) error

	// RenderCompartments writes the compartments report to the writer
	RenderCompartments(w io.Writer, rep *report.CompartmentsReport) error

	// RenderPolicies writes the policy analysis report to the writer
	RenderPolicies(w io.Writer, rep *report.PolicyReport) error
}

// Format represents an output format
type Format string

const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
)

// NewRenderer creates a renderer for the given format
func NewRenderer(format Format, colorEnabled bool) Renderer {
	switch format {
	case FormatJSON:
		return &JSONRenderer{}
	case FormatCSV:
		return &CSVRenderer{}
	default:
		return &TableRenderer{ColorEnabled: colorEnabled}
	}
}

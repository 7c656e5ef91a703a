package output

import (
	"encoding/csv"
	"io"

	"github.com/malund/ociwho/internal/report"
)

// CSVRenderer renders reports in CSV format
type CSVRenderer struct{}

// RenderDomains writes the domains report in CSV format
func (r *CSVRenderer) RenderDomains(w io.Writer, rep *report.DomainsReport) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Domain Name", "Type", "Status", "Domain ID", "URL"}); err != nil {
		return err
	}
	for _, d := range rep.Domains {
		if err := cw.Write([]string{d.Name, d.Kind.String(), d.State, d.ID, d.URL}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// RenderUsers writes one row per user across all domains. A filtered report
// is prefixed with a comment row naming the query.
func (r *CSVRenderer) RenderUsers(w io.Writer, rep *report.UsersReport) error {
	cw := csv.NewWriter(w)

	if rep.Query != "" {
		if err := cw.Write([]string{"# Filtered results for username:", rep.Query}); err != nil {
			return err
		}
		if err := cw.Write([]string{}); err != nil {
			return err
		}
	}

	header := []string{"Domain Name", "Domain Type", "Domain ID", "Username", "Display Name", "Email", "Status", "Created", "User ID"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, d := range rep.Domains {
		for _, u := range d.Users {
			row := []string{
				d.Domain.Name,
				d.Domain.Kind.String(),
				d.Domain.ID,
				u.Name,
				valueOrNA(u.DisplayName),
				u.Email,
				u.State,
				formatTime(u.TimeCreated),
				u.ID,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// RenderCompartments writes the compartments report in CSV format
func (r *CSVRenderer) RenderCompartments(w io.Writer, rep *report.CompartmentsReport) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Name", "Path", "State", "OCID"}); err != nil {
		return err
	}
	for _, c := range rep.Compartments {
		if err := cw.Write([]string{c.Name, c.Path, c.State, c.ID}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// RenderPolicies writes one row per matching statement
func (r *CSVRenderer) RenderPolicies(w io.Writer, rep *report.PolicyReport) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Policy", "Compartment", "Statement"}); err != nil {
		return err
	}
	for _, res := range rep.Results {
		if err := cw.Write([]string{res.PolicyName, res.CompartmentName, res.Statement}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

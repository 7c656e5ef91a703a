package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/malund/ociwho/internal/identity"
	"github.com/malund/ociwho/internal/report"
)

const timeFormat = "2006-01-02 15:04:05"

// TableRenderer renders reports as human-readable tables
type TableRenderer struct {
	ColorEnabled bool
}

// RenderDomains writes the domains report as a table
func (r *TableRenderer) RenderDomains(w io.Writer, rep *report.DomainsReport) error {
	r.configureColor()

	r.banner(w, "IDENTITY DOMAINS")
	fmt.Fprintf(w, "Tenancy ID: %s\n\n", rep.TenancyID)

	table := newTable(w)
	table.SetHeader([]string{"Domain Name", "Type", "Status", "Domain ID", "URL"})
	for _, d := range rep.Domains {
		table.Append([]string{d.Name, d.Kind.String(), d.State, d.ID, valueOrNA(d.URL)})
	}
	table.Render()

	fmt.Fprintf(w, "\nTotal Domains: %d\n", len(rep.Domains))
	return nil
}

// RenderUsers writes the users report as a summary table followed by
// per-domain detail blocks
func (r *TableRenderer) RenderUsers(w io.Writer, rep *report.UsersReport) error {
	r.configureColor()

	r.renderUsersSummary(w, rep)

	if !rep.SummaryOnly {
		r.renderUsersDetail(w, rep)
	}

	for _, d := range rep.Domains {
		if d.Warning != "" {
			r.warnf(w, "\nWarning: %s: %s\n", d.Domain.Name, d.Warning)
		}
	}

	return nil
}

func (r *TableRenderer) renderUsersSummary(w io.Writer, rep *report.UsersReport) {
	if rep.Query != "" {
		r.banner(w, fmt.Sprintf("DOMAINS SUMMARY - FILTERED BY USERNAME: '%s'", rep.Query))
	} else {
		r.banner(w, "DOMAINS SUMMARY")
	}

	table := newTable(w)
	table.SetHeader([]string{"Domain Name", "Type", "User Count", "Status", "Domain ID"})
	rows := 0
	for _, d := range rep.Domains {
		// Only show domains with users when filtering
		if rep.Query != "" && len(d.Users) == 0 {
			continue
		}
		table.Append([]string{
			d.Domain.Name,
			d.Domain.Kind.String(),
			fmt.Sprintf("%d", len(d.Users)),
			d.Domain.State,
			d.Domain.ID,
		})
		rows++
	}

	if rows == 0 {
		fmt.Fprintln(w, "No domains found with matching users.")
		return
	}
	table.Render()

	if rep.Query != "" {
		fmt.Fprintf(w, "\nDomains with matches: %d\n", rep.Summary.MatchingDomains)
		fmt.Fprintf(w, "Total matching users: %d\n", rep.Summary.TotalUsers)
	} else {
		fmt.Fprintf(w, "\nTotal Domains: %d\n", rep.Summary.Domains)
		fmt.Fprintf(w, "Total Users Across All Domains: %d\n", rep.Summary.TotalUsers)
	}
}

func (r *TableRenderer) renderUsersDetail(w io.Writer, rep *report.UsersReport) {
	shown := 0
	for _, d := range rep.Domains {
		// Only show domains with users when filtering
		if rep.Query != "" && len(d.Users) == 0 {
			continue
		}
		shown++

		fmt.Fprintln(w)
		r.banner(w, fmt.Sprintf("[%d] DOMAIN: %s", shown, d.Domain.Name))
		if rep.Query != "" {
			fmt.Fprintf(w, "    MATCHING USERS FOR: '%s'\n", rep.Query)
		}
		fmt.Fprintf(w, "Type: %s\n", d.Domain.Kind)
		fmt.Fprintf(w, "Status: %s\n", d.Domain.State)
		fmt.Fprintf(w, "User Count: %d\n", len(d.Users))
		fmt.Fprintf(w, "Domain ID: %s\n", d.Domain.ID)
		if d.Domain.URL != "" {
			fmt.Fprintf(w, "Domain URL: %s\n", d.Domain.URL)
		}

		if len(d.Users) == 0 {
			fmt.Fprintf(w, "\nNo users found in %s\n", d.Domain.Name)
			continue
		}

		fmt.Fprintf(w, "\nUSERS IN %s:\n", d.Domain.Name)
		fmt.Fprintln(w, strings.Repeat("-", 80))

		table := newTable(w)
		if d.Domain.Kind == identity.KindLegacy {
			table.SetHeader([]string{"Username", "Email", "Status", "Created", "User OCID"})
			for _, u := range d.Users {
				table.Append([]string{u.Name, valueOrNA(u.Email), u.State, formatTime(u.TimeCreated), u.ID})
			}
		} else {
			table.SetHeader([]string{"Username", "Display Name", "Email", "Status", "Created", "User ID"})
			for _, u := range d.Users {
				table.Append([]string{u.Name, valueOrNA(u.DisplayName), valueOrNA(u.Email), u.State, formatTime(u.TimeCreated), u.ID})
			}
		}
		table.Render()
	}

	if rep.Query != "" && shown == 0 {
		fmt.Fprintf(w, "\nNo domains contain users matching '%s'\n", rep.Query)
	}
}

// RenderCompartments writes the compartments report as a table
func (r *TableRenderer) RenderCompartments(w io.Writer, rep *report.CompartmentsReport) error {
	r.configureColor()

	r.banner(w, "COMPARTMENTS")
	fmt.Fprintf(w, "Tenancy ID: %s\n\n", rep.TenancyID)

	table := newTable(w)
	table.SetHeader([]string{"Name", "Path", "State", "OCID"})
	for _, c := range rep.Compartments {
		table.Append([]string{c.Name, valueOrNA(c.Path), c.State, c.ID})
	}
	table.Render()

	fmt.Fprintf(w, "\nTotal Compartments: %d\n", len(rep.Compartments))
	return nil
}

// RenderPolicies writes the policy analysis report with matching statements
// grouped by policy and compartment
func (r *TableRenderer) RenderPolicies(w io.Writer, rep *report.PolicyReport) error {
	r.configureColor()

	r.banner(w, fmt.Sprintf("POLICY ANALYSIS FOR USER: %s", rep.User.ID))
	if rep.User.Email != "" {
		fmt.Fprintf(w, "User: %s (%s)\n", rep.User.Name, rep.User.Email)
	} else {
		fmt.Fprintf(w, "User: %s\n", rep.User.Name)
	}
	fmt.Fprintf(w, "Type: %s\n", rep.Kind)
	if rep.DomainName != "" {
		fmt.Fprintf(w, "Domain: %s\n", rep.DomainName)
	}

	if len(rep.Groups) == 0 {
		fmt.Fprintln(w, "\nNo groups found for user.")
		return nil
	}

	fmt.Fprintf(w, "\nUser belongs to %d groups:\n", len(rep.Groups))
	for _, g := range rep.Groups {
		fmt.Fprintf(w, "  - %s (%s)\n", g.Name, g.ID)
	}
	fmt.Fprintln(w)

	if len(rep.Results) == 0 {
		fmt.Fprintln(w, "No policy statements found that apply to this user's groups.")
		return nil
	}

	fmt.Fprintf(w, "Found %d policy statements that apply to this user:\n\n", len(rep.Results))
	fmt.Fprintln(w, strings.Repeat("=", 80))

	// Group statements by policy and compartment in first-appearance order
	type groupKey struct {
		policy      string
		compartment string
	}
	grouped := make(map[groupKey][]string)
	var order []groupKey
	for _, res := range rep.Results {
		key := groupKey{res.PolicyName, res.CompartmentName}
		if _, seen := grouped[key]; !seen {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], res.Statement)
	}

	for _, key := range order {
		fmt.Fprintf(w, "\nPolicy: %s\n", key.policy)
		fmt.Fprintf(w, "Compartment: %s\n", key.compartment)
		fmt.Fprintln(w, strings.Repeat("-", 40))
		for _, statement := range grouped[key] {
			fmt.Fprintf(w, "  %s\n", statement)
		}
	}

	fmt.Fprintln(w, "\n"+strings.Repeat("=", 80))
	fmt.Fprintf(w, "Analysis complete. Total statements: %d (%d policies scanned across %d compartments)\n",
		len(rep.Results), rep.PoliciesScanned, rep.CompartmentsScanned)
	return nil
}

func (r *TableRenderer) configureColor() {
	// fatih/color disables itself when stdout is not a terminal, so forced
	// color must override its default as well.
	color.NoColor = !r.ColorEnabled
}

// banner prints a section title between 80-column separators
func (r *TableRenderer) banner(w io.Writer, title string) {
	fmt.Fprintln(w, strings.Repeat("=", 80))
	if r.ColorEnabled {
		bold := color.New(color.Bold).SprintFunc()
		fmt.Fprintln(w, bold(title))
	} else {
		fmt.Fprintln(w, title)
	}
	fmt.Fprintln(w, strings.Repeat("=", 80))
}

func (r *TableRenderer) warnf(w io.Writer, format string, args ...any) {
	if r.ColorEnabled {
		yellow := color.New(color.FgYellow).FprintfFunc()
		yellow(w, format, args...)
		return
	}
	fmt.Fprintf(w, format, args...)
}

func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format(timeFormat)
}

func valueOrNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

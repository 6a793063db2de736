package console

import (
	"fmt"
	"io"
	"strconv"

	"legal-roster/models"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable(w io.Writer, header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	return t
}

func renderLawyers(w io.Writer, lawyers []models.Lawyer) {
	if len(lawyers) == 0 {
		_, _ = fmt.Fprintln(w, "\n(No lawyers found.)")
		return
	}

	_, _ = fmt.Fprintln(w, "\n--- Lawyers ---")
	t := newTable(w, table.Row{"ID", "Name", "Specialization", "Email", "Phone", "Hired"})
	for _, l := range lawyers {
		t.AppendRow(table.Row{l.ID, l.FullName(), l.Specialization, l.Email, orDash(l.Phone), l.HireDate.String()})
	}
	t.Render()
}

func renderCases(w io.Writer, cases []models.LegalCase) {
	if len(cases) == 0 {
		_, _ = fmt.Fprintln(w, "\n(No cases found.)")
		return
	}

	_, _ = fmt.Fprintln(w, "\n--- Cases ---")
	t := newTable(w, table.Row{"ID", "Case", "Client", "Status", "Start", "End"})
	for _, c := range cases {
		t.AppendRow(table.Row{c.ID, c.Name, c.ClientName, c.Status, c.StartDate.String(), dateOrDash(c.EndDate)})
	}
	t.Render()
}

func renderCaseDetail(w io.Writer, d *models.CaseDetail) {
	c := d.Case
	_, _ = fmt.Fprintln(w, "\n--- Case Details ---")
	_, _ = fmt.Fprintf(w, "ID: %d\n", c.ID)
	_, _ = fmt.Fprintf(w, "Name: %s\n", c.Name)
	_, _ = fmt.Fprintf(w, "Client: %s\n", c.ClientName)
	_, _ = fmt.Fprintf(w, "Status: %s\n", c.Status)
	_, _ = fmt.Fprintf(w, "Start date: %s\n", c.StartDate.String())
	_, _ = fmt.Fprintf(w, "End date: %s\n", dateOrDash(c.EndDate))
	_, _ = fmt.Fprintf(w, "Description: %s\n", orDash(c.Description))

	_, _ = fmt.Fprintln(w, "\nAssigned Lawyers:")
	if len(d.Lawyers) == 0 {
		_, _ = fmt.Fprintln(w, "  (No lawyers assigned yet.)")
		return
	}

	t := newTable(w, table.Row{"ID", "Name", "Specialization", "Role", "Hours"})
	for _, l := range d.Lawyers {
		t.AppendRow(table.Row{l.LawyerID, l.FirstName + " " + l.LastName, l.Specialization, l.Role, formatHours(l.BillableHours)})
	}
	t.AppendFooter(table.Row{"", "", "", "Total", formatHours(d.TotalHours())})
	t.Render()
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func dateOrDash(d *models.Date) string {
	if d == nil {
		return "-"
	}
	return d.String()
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 2, 64)
}

package business

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/simplu-io/simplu-cli/internal/application"
	"github.com/simplu-io/simplu-cli/internal/domain"
)

func Businesses(views []application.BusinessView) (string, error) {
	return run(func(s styles) string {
		return renderBusinesses(views, s)
	})
}

func Business(view application.BusinessView) (string, error) {
	return run(func(s styles) string {
		return renderBusiness(view, s)
	})
}

func renderBusinesses(views []application.BusinessView, s styles) string {
	lines := []string{
		s.title.Render("Businesses"),
		s.header.Render(fmt.Sprintf("businesses: %d", len(views))),
	}

	if len(views) == 0 {
		lines = append(lines, s.empty.Render("No businesses yet. Start one with `simplu wizard start`."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.border).
		Headers("ID", "NAME", "STATUS", "PAYMENT", "URL", "ACTIONS").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.header.Padding(0, 1)
			}
			return s.cell
		})

	for _, view := range views {
		b := view.Business
		t.Row(
			string(b.ID),
			b.CompanyName,
			s.statusBadge(b.Status),
			s.paymentBadge(b.PaymentStatus),
			orDash(view.PublicURL),
			actionList(view.Actions),
		)
	}

	lines = append(lines, t.String())
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderBusiness(view application.BusinessView, s styles) string {
	b := view.Business
	lines := []string{
		s.name.Render(fmt.Sprintf("%s (%s)", b.CompanyName, b.ID)),
		field(s, "status", s.statusBadge(b.Status)+" / "+s.paymentBadge(b.PaymentStatus)),
		field(s, "type", fmt.Sprintf("%s, %s plan", b.BusinessType, b.SubscriptionType)),
		field(s, "url", orDash(view.PublicURL)),
		field(s, "settings", fmt.Sprintf("%s, %s", b.Settings.Currency, b.Settings.Language)),
	}
	if b.ConfigureForEmail != "" {
		lines = append(lines, field(s, "billing by", b.ConfigureForEmail))
	}
	if !b.CreatedAt.IsZero() {
		lines = append(lines, field(s, "created", b.CreatedAt.Format("2006-01-02 15:04")))
	}

	lines = append(lines, s.section.Render(s.title.Render("Locations")))
	lines = append(lines, locationLines(b.Locations, s)...)

	lines = append(lines, s.section.Render(field(s, "actions", actionList(view.Actions))))
	if !view.CanBill {
		lines = append(lines, s.warning.Render("Billing for this business is managed by someone else."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func locationLines(locations []domain.Location, s styles) []string {
	if len(locations) == 0 {
		return []string{s.empty.Render("no locations")}
	}

	lines := make([]string, 0, len(locations))
	for _, location := range locations {
		line := fmt.Sprintf("%s  %s", location.ID, location.Name)
		if location.Address != "" {
			line += ", " + location.Address
		}
		line += " (" + location.Timezone + ")"
		if !location.Active {
			line += " " + s.label.Render("[inactive]")
		}
		lines = append(lines, s.detail.Render(line))
	}
	return lines
}

func actionList(actions []application.BusinessAction) string {
	if len(actions) == 0 {
		return "-"
	}
	names := make([]string, 0, len(actions))
	for _, action := range actions {
		names = append(names, string(action))
	}
	return strings.Join(names, ", ")
}

func field(s styles, label string, value string) string {
	return s.label.Render(label+":") + " " + s.detail.Render(value)
}

func orDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}

package business

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/simplu-io/simplu-cli/internal/domain"
)

func Plans(plans []domain.Plan) (string, error) {
	return run(func(s styles) string {
		return renderPlans(plans, s)
	})
}

func PlansByCategory(byCategory map[string][]domain.Plan) (string, error) {
	return run(func(s styles) string {
		categories := make([]string, 0, len(byCategory))
		for category := range byCategory {
			categories = append(categories, category)
		}
		sort.Strings(categories)

		sections := make([]string, 0, len(categories))
		for _, category := range categories {
			sections = append(sections, s.section.Render(lipgloss.JoinVertical(
				lipgloss.Left,
				s.name.Render(category),
				planTable(byCategory[category], s),
			)))
		}
		if len(sections) == 0 {
			return s.empty.Render("No plans available.")
		}
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	})
}

func Invoices(invoices []domain.Invoice) (string, error) {
	return run(func(s styles) string {
		return renderInvoices(invoices, s)
	})
}

func Cards(cards []domain.PaymentMethod) (string, error) {
	return run(func(s styles) string {
		return renderCards(cards, s)
	})
}

func Subscriptions(subscriptions []domain.Subscription) (string, error) {
	return run(func(s styles) string {
		return renderSubscriptions(subscriptions, s)
	})
}

func Profile(user domain.User) (string, error) {
	return run(func(s styles) string {
		return renderProfile(user, s)
	})
}

func newTable(s styles, headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.border).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.header.Padding(0, 1)
			}
			return s.cell
		})
}

func renderPlans(plans []domain.Plan, s styles) string {
	if len(plans) == 0 {
		return s.empty.Render("No plans available.")
	}
	return lipgloss.JoinVertical(lipgloss.Left, s.title.Render("Plans"), planTable(plans, s))
}

func planTable(plans []domain.Plan, s styles) string {
	t := newTable(s, "PLAN", "PRICE ID", "INTERVAL", "AMOUNT")
	for _, plan := range plans {
		for _, price := range plan.Prices {
			t.Row(plan.Name, price.ID, string(price.Interval), domain.FormatMinorUnits(price.UnitAmount, price.Currency))
		}
	}
	return t.String()
}

func renderInvoices(invoices []domain.Invoice, s styles) string {
	lines := []string{
		s.title.Render("Invoices"),
		s.header.Render(fmt.Sprintf("invoices: %d", len(invoices))),
	}
	if len(invoices) == 0 {
		lines = append(lines, s.empty.Render("No invoices."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	t := newTable(s, "NUMBER", "DATE", "STATUS", "TOTAL", "LINK")
	for _, invoice := range invoices {
		status := string(invoice.Status)
		if !invoice.Paid() {
			status = s.warning.Render(status)
		}
		t.Row(
			orDash(invoice.Number),
			invoice.Created.Format("2006-01-02"),
			status,
			domain.FormatMinorUnits(invoice.Total, invoice.Currency),
			orDash(invoice.HostedURL),
		)
	}
	lines = append(lines, t.String())
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderCards(cards []domain.PaymentMethod, s styles) string {
	if len(cards) == 0 {
		return s.empty.Render("No saved cards. Add one with `simplu profile cards add <pm_...>`.")
	}

	lines := []string{s.title.Render("Saved cards")}
	for _, card := range cards {
		line := s.detail.Render(fmt.Sprintf("%s  %s", card.ID, card.Label()))
		if card.Default {
			line += " " + s.success.Render("[default]")
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderSubscriptions(subscriptions []domain.Subscription, s styles) string {
	if len(subscriptions) == 0 {
		return s.empty.Render("No subscriptions.")
	}

	t := newTable(s, "ID", "STATUS", "PRICE", "RENEWS")
	for _, sub := range subscriptions {
		renews := "-"
		if !sub.CurrentPeriodEnd.IsZero() {
			renews = sub.CurrentPeriodEnd.Format("2006-01-02")
			if sub.CancelAtPeriodEnd {
				renews = "ends " + renews
			}
		}
		t.Row(sub.ID, sub.Status, orDash(sub.PriceID), renews)
	}
	return lipgloss.JoinVertical(lipgloss.Left, s.title.Render("Subscriptions"), t.String())
}

func renderProfile(user domain.User, s styles) string {
	address := user.BillingAddress
	lines := []string{
		s.name.Render(user.DisplayName()),
		field(s, "email", user.Email),
		field(s, "phone", orDash(user.Phone)),
		field(s, "entity", orDash(user.EntityType)),
		field(s, "registration", orDash(user.RegistrationNumber)),
		field(s, "tax code", orDash(user.TaxCode)),
		s.section.Render(s.title.Render("Billing address")),
		s.detail.Render(orDash(address.Company)),
		s.detail.Render(orDash(address.Street)),
		s.detail.Render(fmt.Sprintf("%s %s, %s", address.PostalCode, address.City, address.District)),
		s.detail.Render(orDash(address.Country)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

package business

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/simplu-io/simplu-cli/internal/application"
	"github.com/simplu-io/simplu-cli/internal/domain"
)

func Wizard(draft domain.WizardDraft) (string, error) {
	return run(func(s styles) string {
		return renderWizard(draft, s)
	})
}

func Drafts(drafts []domain.WizardDraft) (string, error) {
	return run(func(s styles) string {
		return renderDrafts(drafts, s)
	})
}

func renderWizard(draft domain.WizardDraft, s styles) string {
	lines := []string{
		s.title.Render(fmt.Sprintf("Business wizard (%s) %s", draft.Mode, draft.ID)),
		stepLine(draft, s),
	}

	form := draft.Form
	summary := []string{
		field(s, "company", orDash(form.CompanyName)),
		field(s, "type", fmt.Sprintf("%s, %s plan", form.BusinessType, form.SubscriptionType)),
		field(s, "url", orDash(form.PublicURL())),
		field(s, "settings", fmt.Sprintf("%s, %s, %s page", form.Settings.Currency, form.Settings.Language, form.ClientPageType)),
	}
	if form.RegistrationNumber != "" || form.TaxCode != "" {
		summary = append(summary, field(s, "registration", strings.TrimSpace(form.RegistrationNumber+" "+form.TaxCode)))
	}
	if form.ConfigureForEmail != "" {
		summary = append(summary, field(s, "billing by", form.ConfigureForEmail))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, summary...)))

	lines = append(lines, s.section.Render(s.title.Render(fmt.Sprintf("Locations (%d)", len(form.Locations)))))
	lines = append(lines, locationLines(form.Locations, s)...)

	if draft.Business != nil {
		b := draft.Business
		lines = append(lines, s.section.Render(field(s, "business", fmt.Sprintf("%s %s / %s", b.ID, s.statusBadge(b.Status), s.paymentBadge(b.PaymentStatus)))))
	}
	if draft.Step == domain.StepLaunch {
		lines = append(lines, launchReadiness(draft, s))
	}

	if draft.Message != "" {
		lines = append(lines, s.section.Render(s.success.Render(draft.Message)))
	}
	if draft.LastError != "" {
		lines = append(lines, s.section.Render(s.warning.Render("error: "+draft.LastError)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func stepLine(draft domain.WizardDraft, s styles) string {
	total := draft.TotalSteps()
	if draft.Step == domain.StepFinished {
		return lipgloss.JoinHorizontal(lipgloss.Top, renderProgressBar(100, 21, s), " ", s.success.Render("Finished"))
	}

	current := min(max(int(draft.Step), 1), total)
	percent := float64(current) / float64(total) * 100
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		renderProgressBar(percent, 21, s),
		" ",
		s.detail.Render(fmt.Sprintf("step %d/%d: %s", current, total, draft.Step.Title())),
	)
}

func launchReadiness(draft domain.WizardDraft, s styles) string {
	switch {
	case application.CanLaunch(draft):
		return s.success.Render("Ready to launch: run `simplu wizard launch`.")
	case draft.Business == nil || !draft.Business.Launchable():
		return s.warning.Render("Not launchable yet: the business must be suspended and paid.")
	default:
		return s.label.Render("Confirm the launch with `simplu wizard confirm` first.")
	}
}

func renderProgressBar(percent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(percent) / 100))
	filled = min(max(filled, 0), width)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func renderDrafts(drafts []domain.WizardDraft, s styles) string {
	lines := []string{
		s.title.Render("Wizard drafts"),
		s.header.Render(fmt.Sprintf("drafts: %d", len(drafts))),
	}
	if len(drafts) == 0 {
		lines = append(lines, s.empty.Render("No wizard drafts."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, draft := range drafts {
		state := draft.Step.Title()
		if draft.Closed {
			state = "closed"
		}
		name := orDash(draft.Form.CompanyName)
		line := fmt.Sprintf("%s  %-6s  %-10s  %s  %s", draft.ID, draft.Mode, state, name, draft.UpdatedAt.Format("2006-01-02 15:04"))
		lines = append(lines, s.detail.Render(line))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

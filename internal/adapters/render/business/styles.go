package business

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/simplu-io/simplu-cli/internal/domain"
)

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	name       lipgloss.Style
	detail     lipgloss.Style
	label      lipgloss.Style
	warning    lipgloss.Style
	success    lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	cell       lipgloss.Style
	border     lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		name:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		label:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		warning:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		success:    lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		cell:       lipgloss.NewStyle().Padding(0, 1),
		border:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}

func (s styles) statusBadge(status domain.BusinessStatus) string {
	color := lipgloss.Color("245")
	switch status {
	case domain.BusinessStatusActive:
		color = lipgloss.Color("114")
	case domain.BusinessStatusSuspended:
		color = lipgloss.Color("221")
	case domain.BusinessStatusDeleted:
		color = lipgloss.Color("240")
	}
	return lipgloss.NewStyle().Foreground(color).Render(string(status))
}

func (s styles) paymentBadge(status domain.PaymentStatus) string {
	color := lipgloss.Color("203")
	if status != domain.PaymentStatusUnpaid {
		color = lipgloss.Color("114")
	}
	return lipgloss.NewStyle().Foreground(color).Render(string(status))
}

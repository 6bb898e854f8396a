package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/simplu-io/simplu-cli/internal/adapters/httpapi"
	"github.com/spf13/cobra"
)

// callDoneMsg carries the call's result back into the program, so nothing
// outside the model is written once Run has returned.
type callDoneMsg struct {
	value any
	err   error
}

type callSpinnerModel struct {
	spinner spinner.Model
	label   string
	call    tea.Cmd
	value   any
	err     error
	done    bool
}

func newCallSpinnerModel(label string, call tea.Cmd) callSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return callSpinnerModel{
		spinner: s,
		label:   label,
		call:    call,
	}
}

func (m callSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.call)
}

func (m callSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case callDoneMsg:
		m.done = true
		m.value = msg.value
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m callSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

func runCallSpinner(ctx context.Context, output io.Writer, label string, call func(context.Context) (any, error)) (any, error) {
	callCmd := func() tea.Msg {
		value, err := call(ctx)
		return callDoneMsg{value: value, err: err}
	}

	p := tea.NewProgram(
		newCallSpinnerModel(label, callCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	result, ok := finalModel.(callSpinnerModel)
	if !ok {
		return nil, fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.value, result.err
}

// fetch runs a network call behind the spinner on stderr, or plainly when
// the output is JSON, and returns its result.
func fetch[T any](cmd *cobra.Command, label string, call func(context.Context) (T, error)) (T, error) {
	if jsonOutput(cmd) {
		result, err := call(cmd.Context())
		return result, explain(err)
	}

	value, err := runCallSpinner(cmd.Context(), cmd.ErrOrStderr(), label, func(ctx context.Context) (any, error) {
		return call(ctx)
	})
	result, ok := value.(T)
	if err != nil {
		return result, explain(err)
	}
	if !ok {
		return result, fmt.Errorf("unexpected %q result type %T", label, value)
	}
	return result, nil
}

// explain adds a sign-in hint to errors the backend rejected as unauthorized.
func explain(err error) error {
	if httpapi.IsUnauthorized(err) {
		return fmt.Errorf("%w (sign in with `simplu auth login`)", err)
	}
	return err
}

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type deliveryDoneMsg struct {
	err error
}

type deliverySpinnerModel struct {
	spinner spinner.Model
	label   string
	deliver tea.Cmd
	err     error
	done    bool
}

func newDeliverySpinnerModel(label string, deliver tea.Cmd) deliverySpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return deliverySpinnerModel{
		spinner: s,
		label:   label,
		deliver: deliver,
	}
}

func (m deliverySpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.deliver)
}

func (m deliverySpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case deliveryDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m deliverySpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

func runDeliverySpinner(ctx context.Context, output io.Writer, deliver func(context.Context) error) error {
	deliverCmd := func() tea.Msg {
		return deliveryDoneMsg{err: deliver(ctx)}
	}

	p := tea.NewProgram(
		newDeliverySpinnerModel("Delivering report...", deliverCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(deliverySpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}

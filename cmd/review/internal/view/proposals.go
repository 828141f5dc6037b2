package view

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/accounter-io/accounter/internal/matching"
)

const dbTimeout = 30 * time.Second

type proposalsState int

const (
	stateBrowse proposalsState = iota
	stateConfirm
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type ProposalsModel struct {
	matchingSvc *matching.Service
	adminID     uuid.UUID

	state     proposalsState
	table     table.Model
	proposals []matching.Proposal
	form      *huh.Form
	confirm   bool

	loading bool
	status  string
	err     error
}

type loadProposalsMsg struct {
	proposals []matching.Proposal
	err       error
}

type mergeDoneMsg struct {
	err error
}

type autoMatchDoneMsg struct {
	result *matching.RunResult
	err    error
}

func NewProposalsModel(matchingSvc *matching.Service, adminID uuid.UUID) ProposalsModel {
	columns := []table.Column{
		{Title: "Confidence", Width: 10},
		{Title: "Amount", Width: 12},
		{Title: "Cur", Width: 4},
		{Title: "Description", Width: 32},
		{Title: "Transaction Charge", Width: 36},
		{Title: "Document Charge", Width: 36},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ProposalsModel{
		matchingSvc: matchingSvc,
		adminID:     adminID,
		table:       t,
		loading:     true,
		status:      "Loading proposals...",
	}
}

func (m ProposalsModel) Init() tea.Cmd {
	return m.loadProposalsCmd()
}

func (m ProposalsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadProposalsMsg:
		m.loading = false

		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.proposals = msg.proposals
		m.table.SetRows(proposalRows(msg.proposals))
		m.status = fmt.Sprintf("%d proposals", len(msg.proposals))

		return m, nil

	case mergeDoneMsg:
		m.loading = true

		if msg.err != nil {
			m.err = msg.err
			m.status = "Merge failed"
		} else {
			m.status = "Merged. Reloading..."
		}

		return m, m.loadProposalsCmd()

	case autoMatchDoneMsg:
		m.loading = true

		if msg.err != nil {
			m.err = msg.err
			return m, m.loadProposalsCmd()
		}

		m.status = fmt.Sprintf("Auto-match: %d merged, %d skipped, %d errors. Reloading...",
			msg.result.TotalMatches, len(msg.result.SkippedCharges), len(msg.result.Errors))

		return m, m.loadProposalsCmd()

	case tea.KeyMsg:
		if m.state == stateConfirm {
			break // the form handles keys below
		}

		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.status = "Reloading..."

			return m, m.loadProposalsCmd()
		case "a":
			m.loading = true
			m.status = "Running auto-match..."

			return m, m.autoMatchCmd()
		case "enter":
			if len(m.proposals) == 0 {
				return m, nil
			}

			m.state = stateConfirm
			m.confirm = false
			m.form = m.confirmForm()

			return m, m.form.Init()
		}
	}

	if m.state == stateConfirm {
		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}

		if m.form.State == huh.StateCompleted {
			m.state = stateBrowse
			m.confirm = m.form.GetBool("confirm")

			if !m.confirm {
				m.status = "Merge cancelled"
				return m, nil
			}

			m.loading = true
			m.status = "Merging..."

			return m, m.mergeCmd(m.proposals[m.table.Cursor()])
		}

		if m.form.State == huh.StateAborted {
			m.state = stateBrowse
			return m, nil
		}

		return m, cmd
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ProposalsModel) View() string {
	header := titleStyle.Render("Match Proposals")

	body := m.table.View()
	if m.state == stateConfirm {
		body = m.form.View()
	}

	status := statusStyle.Render(m.status)
	if m.err != nil {
		status = errorStyle.Render(m.err.Error())
	}

	help := statusStyle.Render("enter: merge | a: auto-match | r: refresh | q: quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", status, help)
}

func (m ProposalsModel) confirmForm() *huh.Form {
	p := m.proposals[m.table.Cursor()]

	return huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Key("confirm").
			Title("Merge document charge into transaction charge?").
			Description(fmt.Sprintf("%s %s %q (confidence %.3f)",
				p.Amount, p.Currency, p.Description, p.ConfidenceScore)).
			Affirmative("Merge").
			Negative("Cancel").
			Value(&m.confirm),
	))
}

func (m ProposalsModel) loadProposalsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
		defer cancel()

		proposals, err := m.matchingSvc.Preview(ctx, m.adminID)

		return loadProposalsMsg{proposals: proposals, err: err}
	}
}

func (m ProposalsModel) mergeCmd(p matching.Proposal) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
		defer cancel()

		return mergeDoneMsg{err: m.matchingSvc.Merge(ctx, p.DocumentChargeID, p.TransactionChargeID)}
	}
}

func (m ProposalsModel) autoMatchCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
		defer cancel()

		result, err := m.matchingSvc.AutoMatch(ctx, m.adminID)

		return autoMatchDoneMsg{result: result, err: err}
	}
}

func proposalRows(proposals []matching.Proposal) []table.Row {
	rows := make([]table.Row, 0, len(proposals))

	for _, p := range proposals {
		rows = append(rows, table.Row{
			fmt.Sprintf("%.3f", p.ConfidenceScore),
			p.Amount,
			p.Currency,
			p.Description,
			p.TransactionChargeID.String(),
			p.DocumentChargeID.String(),
		})
	}

	return rows
}

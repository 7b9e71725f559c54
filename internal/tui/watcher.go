// Package tui renders a live view of an autonomous debate: each statement
// as counsel produce it, juror votes as they land, and the verdict.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lexumbra/lexumbra/internal/event"
	"github.com/lexumbra/lexumbra/internal/jury"
	"github.com/lexumbra/lexumbra/internal/trial"
)

// Messages delivered to the model.
type (
	stepMsg      struct{ step trial.Step }
	stepErrMsg   struct{ err error }
	jurorVoteMsg struct {
		name  string
		score int
	}
	deliberatedMsg struct{ err error }
	verdictMsg     struct {
		verdict *jury.Verdict
		err     error
	}
)

// watchPhase tracks which stage the watcher is driving.
type watchPhase int

const (
	watchDebate watchPhase = iota
	watchDeliberation
	watchVerdict
	watchDone
)

// Model is the bubbletea model for the debate watcher. It drives the trial
// itself: each completed step schedules the next as a command, so the UI
// stays responsive between generations.
type Model struct {
	ctx    context.Context
	orch   *trial.Orchestrator
	debate *trial.Debate

	viewport viewport.Model
	spinner  spinner.Model
	lines    []string
	phase    watchPhase
	waiting  string // who the court is waiting on
	round    int
	verdict  *jury.Verdict
	err      error
	quitting bool
	ready    bool
	width    int
}

// NewModel prepares a watcher for an assembled trial.
func NewModel(ctx context.Context, orch *trial.Orchestrator) (*Model, error) {
	debate, err := orch.NewDebate()
	if err != nil {
		return nil, err
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &Model{
		ctx:     ctx,
		orch:    orch,
		debate:  debate,
		spinner: sp,
		phase:   watchDebate,
		waiting: "the court",
	}, nil
}

// Init starts the spinner and the first debate step.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.nextStep())
}

func (m *Model) nextStep() tea.Cmd {
	return func() tea.Msg {
		step, err := m.debate.Next(m.ctx)
		if err != nil {
			return stepErrMsg{err: err}
		}
		return stepMsg{step: step}
	}
}

func (m *Model) deliberate() tea.Cmd {
	return func() tea.Msg {
		return deliberatedMsg{err: m.orch.RunJuryDeliberation(m.ctx)}
	}
}

func (m *Model) renderVerdict() tea.Cmd {
	return func() tea.Msg {
		if err := m.orch.RunVerdict(m.ctx); err != nil {
			return verdictMsg{err: err}
		}
		m.orch.Adjourn()
		return verdictMsg{verdict: m.orch.Verdict()}
	}
}

// Update advances the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		headerHeight := 2
		footerHeight := 2
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		m.refreshContent()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case stepMsg:
		m.applyStep(msg.step)
		if m.debate.Done() {
			m.phase = watchDeliberation
			m.waiting = "the jury"
			m.appendLine(styleJudge.Render("— The jury retires to deliberate —"))
			return m, m.deliberate()
		}
		return m, m.nextStep()

	case jurorVoteMsg:
		m.appendLine(styleJuror.Render(fmt.Sprintf("  %s votes: %d/100", msg.name, msg.score)))
		return m, nil

	case deliberatedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.phase = watchVerdict
		m.waiting = "the judge"
		return m, m.renderVerdict()

	case verdictMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.verdict = msg.verdict
		m.phase = watchDone
		m.appendLine("")
		m.appendLine(styleVerdict.Render(verdictSummary(msg.verdict)))
		return m, nil

	case stepErrMsg:
		m.err = msg.err
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) applyStep(step trial.Step) {
	m.round = step.Round
	switch step.Kind {
	case trial.StepJudgeOpen:
		m.appendLine(styleJudge.Render("[Judge] " + step.Content))
	case trial.StepRoundStart:
		m.appendLine("")
		m.appendLine(styleHeader.Render(fmt.Sprintf(" Round %d ", step.Round)))
	case trial.StepPlaintiffSpeaking:
		m.waiting = step.Speaker
	case trial.StepPlaintiffDone:
		m.appendLine(stylePlaintiff.Render(fmt.Sprintf("[%s] %s", step.Speaker, step.Content)))
	case trial.StepDefenseSpeaking:
		m.waiting = step.Speaker
	case trial.StepDefenseDone:
		m.appendLine(styleDefense.Render(fmt.Sprintf("[%s] %s", step.Speaker, step.Content)))
	case trial.StepRoundComplete:
		m.appendLine(styleJudge.Render(fmt.Sprintf("[Judge] Round %d complete. %s", step.Round, step.Reason)))
	case trial.StepDebateComplete:
		m.appendLine(styleJudge.Render(fmt.Sprintf("[Judge] Arguments concluded after %d rounds.", step.Round)))
	}
}

func (m *Model) appendLine(line string) {
	m.lines = append(m.lines, line)
	m.refreshContent()
}

func (m *Model) refreshContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

// View renders the watcher.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.err != nil {
		return styleErr.Render("trial error: "+m.err.Error()) + "\n"
	}

	title := m.orch.Case().Title
	header := styleHeader.Render(fmt.Sprintf(" %s — %s ", title, m.orch.Phase().DisplayName()))

	var status string
	switch m.phase {
	case watchDone:
		status = styleStatus.Render("verdict rendered — press q to leave the courtroom")
	default:
		status = styleStatus.Render(fmt.Sprintf("%s waiting on %s — q to quit", m.spinner.View(), m.waiting))
	}

	if !m.ready {
		return header + "\n" + strings.Join(m.lines, "\n") + "\n" + status
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View(), status)
}

func verdictSummary(v *jury.Verdict) string {
	if v.Winner == jury.WinnerPlaintiff {
		return fmt.Sprintf("VERDICT: PLAINTIFF PREVAILS\nDamages: $%d   Panel average: %.1f/100", v.Damages, v.AverageScore)
	}
	return fmt.Sprintf("VERDICT: DEFENSE PREVAILS\nCase dismissed.   Panel average: %.1f/100", v.AverageScore)
}

// Run drives the watcher to completion. Juror votes stream in through the
// event bus as the panel deliberates.
func Run(ctx context.Context, orch *trial.Orchestrator, bus *event.Bus) error {
	model, err := NewModel(ctx, orch)
	if err != nil {
		return err
	}
	program := tea.NewProgram(model, tea.WithAltScreen())

	if bus != nil {
		subID := bus.Subscribe("jury.juror_voted", func(e event.Event) {
			if vote, ok := e.(event.JurorVotedEvent); ok {
				program.Send(jurorVoteMsg{name: vote.JurorName, score: vote.Score})
			}
		})
		defer bus.Unsubscribe(subID)
	}

	_, err = program.Run()
	return err
}

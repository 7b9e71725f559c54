package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lexumbra/lexumbra/internal/config"
	"github.com/lexumbra/lexumbra/internal/event"
	"github.com/lexumbra/lexumbra/internal/jury"
	"github.com/lexumbra/lexumbra/internal/llm"
	"github.com/lexumbra/lexumbra/internal/testutil"
	"github.com/lexumbra/lexumbra/internal/trial"
)

func watcherFixture(t *testing.T) *Model {
	t.Helper()
	cfg := config.Default()
	cfg.Jury.ProfilesFile = testutil.WriteProfileStore(t, testutil.SixJurorProfiles)
	cfg.Debate.MinRounds = 1
	fake := &testutil.FakeCompleter{Script: func(req llm.Request) (string, error) {
		if strings.Contains(req.Prompt, "CONTINUE or CONCLUDE") {
			return "CONCLUDE", nil
		}
		return "THOUGHTS: fine\nSCORE: 60", nil
	}}
	orch := trial.NewOrchestrator(cfg, fake, nil, event.NewBus(), nil)
	if err := orch.SetCase("Doe v. Acme", "facts"); err != nil {
		t.Fatal(err)
	}
	if err := orch.InitializeCourt(); err != nil {
		t.Fatal(err)
	}
	m, err := NewModel(context.Background(), orch)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

// drive pumps messages through Update until the model stops issuing
// commands or the step budget is exhausted.
func drive(t *testing.T, m *Model, first tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{first}
	for steps := 0; len(queue) > 0 && steps < 200; steps++ {
		cmd := queue[0]
		queue = queue[1:]
		if cmd == nil {
			continue
		}
		msg := cmd()
		if msg == nil {
			continue
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		if _, ok := msg.(tea.QuitMsg); ok {
			return
		}
		_, next := m.Update(msg)
		queue = append(queue, next)
	}
}

func TestWatcherRunsDebateToVerdict(t *testing.T) {
	m := watcherFixture(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	drive(t, m, m.nextStep())

	if m.err != nil {
		t.Fatalf("watcher error: %v", m.err)
	}
	if m.phase != watchDone {
		t.Fatalf("phase = %d, want done", m.phase)
	}
	if m.verdict == nil {
		t.Fatal("no verdict recorded")
	}
	if m.verdict.Winner != jury.WinnerPlaintiff {
		t.Errorf("winner = %s", m.verdict.Winner)
	}

	view := m.View()
	if !strings.Contains(view, "Doe v. Acme") {
		t.Errorf("view missing case title: %q", view)
	}
	if !strings.Contains(view, "VERDICT: PLAINTIFF PREVAILS") {
		t.Errorf("view missing verdict: %q", view)
	}
}

func TestWatcherShowsJurorVotes(t *testing.T) {
	m := watcherFixture(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m.Update(jurorVoteMsg{name: "Elena", score: 71})
	found := false
	for _, line := range m.lines {
		if strings.Contains(line, "Elena votes: 71/100") {
			found = true
		}
	}
	if !found {
		t.Errorf("juror vote not rendered: %v", m.lines)
	}
}

func TestWatcherQuitKey(t *testing.T) {
	m := watcherFixture(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q must quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not produce a quit command")
	}
	if m.View() != "" {
		t.Error("quitting view must be empty")
	}
}

func TestWatcherSurfacesErrors(t *testing.T) {
	m := watcherFixture(t)
	m.Update(stepErrMsg{err: context.DeadlineExceeded})
	view := m.View()
	if !strings.Contains(view, "trial error") {
		t.Errorf("error not surfaced: %q", view)
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/danielhkuo/dealdesk/models"
	"github.com/danielhkuo/dealdesk/pipeline"
	"github.com/danielhkuo/dealdesk/session"
	"github.com/danielhkuo/dealdesk/ui"
	"github.com/danielhkuo/dealdesk/views"
)

// tab is the screen on display
type tab int

const (
	tabDashboard tab = iota
	tabPipeline
	tabInterview
	tabArchive
	tabPortfolio
	tabCount
)

var tabNames = [tabCount]string{"Dashboard", "Pipeline", "Interview", "Archive", "Portfolio"}

const toastRefreshInterval = 500 * time.Millisecond

type tickMsg time.Time

// App is the bubbletea model of the terminal front end. Engine calls go
// through the session; modal and toast state lives in ui.State.
type App struct {
	sess *session.Session
	ui   ui.State
	now  func() time.Time

	tab    tab
	cursor int

	archiveSort   int
	portfolioSort int
	search        textinput.Model
	searching     bool
	query         [tabCount]string

	notes        textinput.Model
	notesFocused bool

	width  int
	height int
}

// AppOption customizes App construction for tests.
type AppOption func(*App)

// WithClock overrides the clock used for toast expiry.
func WithClock(now func() time.Time) AppOption {
	return func(a *App) {
		if now != nil {
			a.now = now
		}
	}
}

// NewApp creates the model for one session.
func NewApp(sess *session.Session, opts ...AppOption) *App {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "company, founder or description"
	search.CharLimit = 64

	notes := textinput.New()
	notes.Prompt = "Notes: "
	notes.Placeholder = "optional"
	notes.CharLimit = 280

	a := &App{
		sess:   sess,
		now:    time.Now,
		search: search,
		notes:  notes,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return a.scheduleTick()
}

func (a *App) scheduleTick() tea.Cmd {
	return tea.Tick(toastRefreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tickMsg:
		// Toasts expire on read; the tick only forces a redraw.
		return a, a.scheduleTick()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch {
		case a.searching:
			return a.updateSearch(msg)
		case a.ui.Modal.Kind != ui.ModalNone:
			return a.updateModal(msg)
		}
		return a.updateScreen(msg)
	}
	return a, nil
}

func (a *App) updateScreen(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "tab", "right", "l":
		a.switchTab((a.tab + 1) % tabCount)
	case "shift+tab", "left", "h":
		a.switchTab((a.tab + tabCount - 1) % tabCount)
	case "1", "2", "3", "4", "5":
		a.switchTab(tab(msg.Runes[0] - '1'))
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < a.rowCount()-1 {
			a.cursor++
		}
	case "ctrl+r":
		if err := a.sess.Reset(); err != nil {
			a.ui.ReportError(err, a.now())
		} else {
			a.ui.Show("Demo data reloaded.", ui.ToneInfo, a.now())
		}
		a.clampCursor()
	case "x":
		if toasts := a.ui.Toasts(a.now()); len(toasts) > 0 {
			a.ui.Dismiss(toasts[len(toasts)-1].ID)
		}
	case "/":
		if a.tab == tabArchive || a.tab == tabPortfolio {
			a.searching = true
			a.search.SetValue(a.query[a.tab])
			a.search.CursorEnd()
			return a, a.search.Focus()
		}
	case "s":
		a.cycleSort()
	case "enter":
		a.openSelected()
	case "a":
		if a.tab == tabPipeline {
			if id, ok := a.selectedApplicationID(); ok {
				ev, err := a.sess.AdvanceToInterview(id)
				a.report(ev, err)
			}
		}
	case "e":
		if a.tab == tabInterview || a.tab == tabArchive {
			if id, ok := a.selectedApplicationID(); ok {
				ev, err := a.sess.MarkEmailSent(id)
				a.report(ev, err)
			}
		}
	}
	return a, nil
}

func (a *App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		a.searching = false
		a.search.Blur()
		return a, nil
	}
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	a.query[a.tab] = a.search.Value()
	a.clampCursor()
	return a, cmd
}

func (a *App) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "esc" {
		if a.notesFocused {
			a.notesFocused = false
			a.notes.Blur()
			return a, nil
		}
		a.closeModal()
		return a, nil
	}

	switch a.ui.Modal.Kind {
	case ui.ModalVote:
		return a.updateVoteModal(msg)
	case ui.ModalDecision:
		switch key {
		case "i":
			a.decide(models.StageInvested)
		case "r":
			a.decide(models.StageRejected)
		}
	case ui.ModalDetail, ui.ModalInvestment:
		if key == "enter" || key == "q" {
			a.closeModal()
		}
	}
	return a, nil
}

func (a *App) updateVoteModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "enter" {
		a.submitVote()
		return a, nil
	}
	if key == "tab" {
		a.notesFocused = !a.notesFocused
		if a.notesFocused {
			return a, a.notes.Focus()
		}
		a.notes.Blur()
		return a, nil
	}
	if a.notesFocused {
		var cmd tea.Cmd
		a.notes, cmd = a.notes.Update(msg)
		a.ui.SetNotes(a.notes.Value())
		return a, cmd
	}

	switch key {
	case "y":
		a.ui.SetVote(models.VoteYes)
	case "m":
		a.ui.SetVote(models.VoteMaybe)
	case "n":
		a.ui.SetVote(models.VoteNo)
	}
	return a, nil
}

func (a *App) submitVote() {
	if !a.ui.CanSubmit() {
		return
	}
	ev, err := a.sess.CastVote(a.ui.Modal.TargetID, a.ui.Form.Vote, a.ui.Form.Notes)
	a.report(ev, err)
	if a.ui.Modal.Kind == ui.ModalNone {
		a.resetNotes()
	}
}

func (a *App) decide(decision models.Stage) {
	ev, err := a.sess.Decide(a.ui.Modal.TargetID, decision)
	a.report(ev, err)
}

// report hands an engine result to the presentation state.
func (a *App) report(ev pipeline.Event, err error) {
	now := a.now()
	if err != nil {
		slog.Debug("tui operation rejected", "session", a.sess.Tag(), "error", err)
		a.ui.ReportError(err, now)
	} else {
		a.ui.React(ev, now)
	}
	a.clampCursor()
}

func (a *App) closeModal() {
	a.ui.Close()
	a.resetNotes()
}

func (a *App) resetNotes() {
	a.notesFocused = false
	a.notes.Blur()
	a.notes.SetValue("")
}

func (a *App) switchTab(t tab) {
	if t < 0 || t >= tabCount {
		return
	}
	a.tab = t
	a.cursor = 0
}

func (a *App) cycleSort() {
	switch a.tab {
	case tabArchive:
		a.archiveSort = (a.archiveSort + 1) % len(views.ArchiveSorts)
	case tabPortfolio:
		a.portfolioSort = (a.portfolioSort + 1) % len(views.PortfolioSorts)
	}
}

func (a *App) openSelected() {
	switch a.tab {
	case tabPipeline:
		entries := a.pipelineEntries()
		if a.cursor < len(entries) {
			a.ui.OpenVote(entries[a.cursor])
			a.notes.SetValue(a.ui.Form.Notes)
		}
	case tabInterview:
		if id, ok := a.selectedApplicationID(); ok {
			a.ui.OpenDecision(id)
		}
	case tabArchive:
		if id, ok := a.selectedApplicationID(); ok {
			a.ui.OpenDetail(id)
		}
	case tabPortfolio:
		list := a.portfolio().Investments
		if a.cursor < len(list) {
			a.ui.OpenInvestment(list[a.cursor].ID)
		}
	}
}

// Data accessors. Each reads a fresh view from the session.

// pipelineEntries lists applications needing a vote first, then the ones
// already voted on, with other partners' votes sealed.
func (a *App) pipelineEntries() []views.PipelineEntry {
	p := a.sess.Pipeline().Sealed()
	return append(p.NeedsVote, p.AlreadyVoted...)
}

func (a *App) archive() []models.ArchivedApplication {
	list, err := a.sess.Archive(a.query[tabArchive], views.ArchiveSorts[a.archiveSort])
	if err != nil {
		return nil
	}
	return list
}

func (a *App) portfolio() session.Portfolio {
	p, err := a.sess.Portfolio(a.query[tabPortfolio], views.PortfolioSorts[a.portfolioSort])
	if err != nil {
		return session.Portfolio{}
	}
	return p
}

func (a *App) rowCount() int {
	switch a.tab {
	case tabPipeline:
		return len(a.pipelineEntries())
	case tabInterview:
		return len(a.sess.Interview())
	case tabArchive:
		return len(a.archive())
	case tabPortfolio:
		return len(a.portfolio().Investments)
	}
	return 0
}

func (a *App) clampCursor() {
	if n := a.rowCount(); a.cursor >= n {
		a.cursor = max(0, n-1)
	}
}

func (a *App) selectedApplicationID() (string, bool) {
	switch a.tab {
	case tabPipeline:
		entries := a.pipelineEntries()
		if a.cursor < len(entries) {
			return entries[a.cursor].Application.ID, true
		}
	case tabInterview:
		list := a.sess.Interview()
		if a.cursor < len(list) {
			return list[a.cursor].ID, true
		}
	case tabArchive:
		list := a.archive()
		if a.cursor < len(list) {
			return list[a.cursor].ID, true
		}
	}
	return "", false
}

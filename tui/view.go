// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/danielhkuo/dealdesk/ledger"
	"github.com/danielhkuo/dealdesk/models"
	"github.com/danielhkuo/dealdesk/pipeline"
	"github.com/danielhkuo/dealdesk/ui"
	"github.com/danielhkuo/dealdesk/views"
)

var (
	accent = lipgloss.Color("#5B8DEF")
	muted  = lipgloss.Color("#888888")
	border = lipgloss.Color("#444444")

	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(accent)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(accent).Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Foreground(muted).Padding(0, 1)
	hintStyle      = lipgloss.NewStyle().Foreground(muted)
	selectedStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	boxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1)
	modalStyle     = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(accent).Padding(0, 1)

	countBarStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	celebrateStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#10B981")).Padding(0, 1)

	toneStyles = map[ui.Tone]lipgloss.Style{
		ui.ToneSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")),
		ui.ToneError:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		ui.ToneInfo:    lipgloss.NewStyle().Foreground(accent),
	}
)

const (
	barWidth      = 30
	countBarWidth = 10
)

// View renders the current state.
func (a *App) View() string {
	sections := []string{a.renderTabs()}

	switch a.tab {
	case tabDashboard:
		sections = append(sections, a.renderDashboard())
	case tabPipeline:
		sections = append(sections, a.renderPipeline())
	case tabInterview:
		sections = append(sections, a.renderInterview())
	case tabArchive:
		sections = append(sections, a.renderArchive())
	case tabPortfolio:
		sections = append(sections, a.renderPortfolio())
	}

	if modal := a.renderModal(); modal != "" {
		sections = append(sections, modal)
	}
	if toasts := a.renderToasts(); toasts != "" {
		sections = append(sections, toasts)
	}
	sections = append(sections, hintStyle.Render(a.hints()))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) renderTabs() string {
	user := a.sess.CurrentUser()
	parts := []string{titleStyle.Render("DealDesk")}
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if tab(i) == a.tab {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, tabStyle.Render(label))
		}
	}
	parts = append(parts, hintStyle.Render(user.Avatar+" "+user.Name))
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (a *App) renderDashboard() string {
	d := a.sess.Dashboard()

	stats := fmt.Sprintf("Pipeline %d   Deliberation %d   Invested %d   Rejected %d   Unread %d",
		d.Stats.Pipeline, d.Stats.Deliberation, d.Stats.Invested, d.Stats.Rejected, d.UnreadNotifications)

	lines := []string{titleStyle.Render("Needs your vote")}
	if len(d.NeedsVote) == 0 {
		lines = append(lines, hintStyle.Render("You're all caught up."))
	}
	for _, app := range d.NeedsVote {
		lines = append(lines, fmt.Sprintf("  %s  %s", app.CompanyName, hintStyle.Render(views.FormatDate(app.SubmittedAt))))
	}

	lines = append(lines, "", titleStyle.Render("Needs a decision"))
	if len(d.NeedsDecision) == 0 {
		lines = append(lines, hintStyle.Render("Nothing in deliberation."))
	}
	for _, rec := range d.NeedsDecision {
		lines = append(lines, "  "+rec.CompanyName)
	}

	lines = append(lines, "", titleStyle.Render("Portfolio"),
		fmt.Sprintf("  %d investments, %s invested, %s average check",
			d.Portfolio.TotalInvestments,
			views.FormatCurrency(d.Portfolio.TotalInvested),
			views.FormatCurrency(d.Portfolio.AverageCheck)))

	return boxStyle.Render(stats + "\n\n" + strings.Join(lines, "\n"))
}

func (a *App) renderPipeline() string {
	entries := a.pipelineEntries()
	if len(entries) == 0 {
		return boxStyle.Render(hintStyle.Render("The pipeline is empty."))
	}

	quorum := len(a.sess.Partners())
	lines := make([]string, 0, len(entries))
	for i, e := range entries {
		status := fmt.Sprintf("%d/%d votes", e.VoteCount, quorum)
		if e.UserVote != nil {
			status += ", you: " + string(e.UserVote.Vote)
		}
		if e.Revealed {
			status += fmt.Sprintf(" | %d yes %d maybe %d no", e.Tally.Yes, e.Tally.Maybe, e.Tally.No)
		}
		lines = append(lines, a.row(i, fmt.Sprintf("%-24s %-10s %s", e.Application.CompanyName, e.Application.Stage, status)))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func (a *App) renderInterview() string {
	list := a.sess.Interview()
	if len(list) == 0 {
		return boxStyle.Render(hintStyle.Render("No applications in deliberation."))
	}

	lines := make([]string, 0, len(list))
	for i, rec := range list {
		d := rec.Deliberation
		status := "no status"
		if d.Status != nil {
			status = string(*d.Status)
		}
		email := ""
		if rec.EmailSent {
			email = " emailed"
		}
		lines = append(lines, a.row(i, fmt.Sprintf("%-24s leaning %-8s %-10s %s%s",
			rec.CompanyName, d.Decision, status, strings.Join(d.Tags, ","), email)))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func (a *App) renderArchive() string {
	header := a.searchLine(tabArchive) + hintStyle.Render("  sort: "+string(views.ArchiveSorts[a.archiveSort]))
	list := a.archive()
	if len(list) == 0 {
		return boxStyle.Render(header + "\n" + hintStyle.Render("No matching applications."))
	}

	lines := []string{header}
	for i, rec := range list {
		email := ""
		if rec.EmailSent {
			email = " emailed"
		}
		lines = append(lines, a.row(i, fmt.Sprintf("%-24s %-9s %s%s",
			rec.CompanyName, rec.Stage, views.FormatDate(rec.SubmittedAt), email)))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func (a *App) renderPortfolio() string {
	p := a.portfolio()
	header := a.searchLine(tabPortfolio) + hintStyle.Render("  sort: "+string(views.PortfolioSorts[a.portfolioSort]))

	lines := []string{
		header,
		fmt.Sprintf("%d investments  %s total  %s average",
			p.Stats.TotalInvestments, views.FormatCurrency(p.Stats.TotalInvested), views.FormatCurrency(p.Stats.AverageCheck)),
		"",
	}
	for i, inv := range p.Investments {
		lines = append(lines, a.row(i, fmt.Sprintf("%-20s %8s  %s",
			inv.CompanyName, views.FormatCurrencyCompact(inv.Amount), views.FormatDate(inv.InvestmentDate))))
	}

	m := p.Monthly
	lines = append(lines, "", titleStyle.Render("By month"))
	for _, b := range m.Buckets {
		amount := bar(b.Amount, m.MaxAmount, barWidth)
		count := countBarStyle.Render(bar(int64(b.Count), int64(m.MaxCount), countBarWidth))
		lines = append(lines, fmt.Sprintf("%-14s %-*s %-7s %s %d",
			b.Label, barWidth, amount, views.FormatCurrencyCompact(b.Amount), count, b.Count))
	}
	if len(m.Buckets) > 0 {
		lines = append(lines, hintStyle.Render(fmt.Sprintf("%d mo total: %s · %d investments",
			len(m.Buckets), views.FormatCurrencyCompact(m.TotalAmount()), m.TotalCount())))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

// bar draws value as a run of blocks scaled to width, never shorter than
// the floor BarHeight applies.
func bar(value, maximum int64, width int) string {
	h := views.BarHeight(value, maximum)
	return strings.Repeat("█", max(1, int(h*float64(width)/100)))
}

func (a *App) searchLine(t tab) string {
	if a.searching && a.tab == t {
		return a.search.View()
	}
	if q := a.query[t]; q != "" {
		return "/ " + q
	}
	return hintStyle.Render("/ to search")
}

func (a *App) row(i int, text string) string {
	if i == a.cursor {
		return selectedStyle.Render("> " + text)
	}
	return "  " + text
}

func (a *App) renderModal() string {
	m := a.ui.Modal
	switch m.Kind {
	case ui.ModalVote:
		name := m.TargetID
		if rec, ok := a.sess.Find(m.TargetID); ok {
			name = rec.Base().CompanyName
		}
		choice := func(v models.VoteValue, key string) string {
			label := fmt.Sprintf("[%s] %s", key, v)
			if a.ui.Form.Vote == v {
				return selectedStyle.Render(label)
			}
			return label
		}
		body := strings.Join([]string{
			titleStyle.Render("Vote on " + name),
			choice(models.VoteYes, "y") + "  " + choice(models.VoteMaybe, "m") + "  " + choice(models.VoteNo, "n"),
			a.notes.View(),
			hintStyle.Render("tab notes · enter submit · esc cancel"),
		}, "\n")
		return modalStyle.Render(body)

	case ui.ModalDecision:
		rec, ok := a.sess.Find(m.TargetID)
		if !ok {
			return ""
		}
		body := titleStyle.Render("Decide on "+rec.Base().CompanyName) + "\n"
		if r, ok := rec.(pipeline.InterviewRecord); ok {
			body += voteSummary(r.Votes) + "\n"
		}
		body += "[i] invest  [r] reject\n" + hintStyle.Render("esc cancel")
		return modalStyle.Render(body)

	case ui.ModalDetail:
		rec, ok := a.sess.Find(m.TargetID)
		if !ok {
			return ""
		}
		return modalStyle.Render(renderApplication(rec))

	case ui.ModalInvestment:
		for _, inv := range a.portfolio().Investments {
			if inv.ID == m.TargetID {
				return modalStyle.Render(renderInvestment(inv))
			}
		}
	}
	return ""
}

func renderApplication(rec pipeline.Record) string {
	app := rec.Base()
	lines := []string{titleStyle.Render(app.CompanyName), "Stage: " + string(app.Stage)}
	add := func(label string, v *string) {
		if v != nil && *v != "" {
			lines = append(lines, label+": "+*v)
		}
	}
	add("Founders", app.FounderNames)
	add("Email", app.PrimaryEmail)
	add("Website", app.Website)
	add("Funding", app.PreviousFunding)
	add("About", app.CompanyDescription)
	switch r := rec.(type) {
	case pipeline.InterviewRecord:
		lines = append(lines, voteSummary(r.Votes))
		if d := r.Deliberation; d.IdeaSummary != nil {
			lines = append(lines, "Idea: "+*d.IdeaSummary)
		}
	case pipeline.ArchiveRecord:
		lines = append(lines, voteSummary(r.Votes))
	}
	return strings.Join(lines, "\n")
}

// voteSummary is the tally line shown once votes are attached to a record.
func voteSummary(votes []models.Vote) string {
	t := ledger.TallyVotes(votes)
	return fmt.Sprintf("Votes: %d yes, %d maybe, %d no · partners lean %s", t.Yes, t.Maybe, t.No, t.Leaning())
}

func renderInvestment(inv models.Investment) string {
	lines := []string{
		titleStyle.Render(inv.CompanyName),
		fmt.Sprintf("%s on %s", views.FormatCurrency(inv.Amount), views.FormatDate(inv.InvestmentDate)),
		"Status: " + string(inv.Status),
	}
	if inv.Round != nil {
		lines = append(lines, "Round: "+*inv.Round)
	}
	if inv.PostMoneyValuation != nil {
		lines = append(lines, "Post-money: "+views.FormatCurrencyCompact(*inv.PostMoneyValuation))
	}
	if inv.ShortDescription != nil {
		lines = append(lines, *inv.ShortDescription)
	}
	for _, f := range inv.Founders {
		line := "  " + f.Name
		if f.Title != nil {
			line += ", " + *f.Title
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderToasts() string {
	toasts := a.ui.Toasts(a.now())
	if len(toasts) == 0 {
		return ""
	}
	lines := make([]string, len(toasts))
	for i, t := range toasts {
		if t.Celebrate {
			lines[i] = celebrateStyle.Render("🎉 " + t.Message)
			continue
		}
		lines[i] = toneStyles[t.Tone].Render(t.Message)
	}
	return strings.Join(lines, "\n")
}

func (a *App) hints() string {
	if a.searching {
		return "type to filter · enter/esc done"
	}
	base := "tab/1-5 switch · ↑↓ move · x dismiss · ctrl+r reload · q quit"
	switch a.tab {
	case tabPipeline:
		return "enter vote · a advance · " + base
	case tabInterview:
		return "enter decide · e emailed · " + base
	case tabArchive:
		return "/ search · s sort · enter details · e emailed · " + base
	case tabPortfolio:
		return "/ search · s sort · enter details · " + base
	}
	return base
}

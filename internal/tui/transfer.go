package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/kindling-cc/kindling/internal/api"
)

// transferPage looks up one transfer by id and shows it. Like the profile
// page it is cache-first: a cached row renders immediately and the fetched
// row replaces it.
type transferPage struct {
	input textinput.Model

	transfer  api.Transfer
	haveData  bool
	fromCache bool
	loading   bool
	loadErr   string

	spin spinner.Model
}

func newTransferPage() transferPage {
	ti := textinput.New()
	ti.Placeholder = "transfer id"
	ti.Prompt = "> "
	ti.Width = 40
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return transferPage{input: ti, spin: sp}
}

func (p transferPage) update(msg tea.Msg, d *deps) (transferPage, tea.Cmd) {
	switch m := msg.(type) {
	case spinner.TickMsg:
		if !p.loading {
			return p, nil
		}
		var cmd tea.Cmd
		p.spin, cmd = p.spin.Update(m)
		return p, cmd

	case transferLoadedMsg:
		if m.fromCache && p.haveData && !p.fromCache {
			return p, nil
		}
		p.transfer = m.transfer
		p.haveData = true
		p.fromCache = m.fromCache
		if !m.fromCache {
			p.loading = false
			p.loadErr = ""
		}
		return p, nil

	case errMsg:
		p.loading = false
		d.log.Error("loading transfer", "err", m.error)
		if p.haveData {
			return p, feedbackCmd(feedbackInfo, "showing cached transfer; refresh failed")
		}
		p.loadErr = "could not load this transfer"
		return p, nil

	case tea.KeyMsg:
		if p.loading {
			return p, nil
		}
		switch m.String() {
		case "enter":
			return p.submit(d)
		case "esc":
			return p, navigateCmd(pageProfile)
		}
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p transferPage) submit(d *deps) (transferPage, tea.Cmd) {
	id, err := uuid.Parse(strings.TrimSpace(p.input.Value()))
	if err != nil {
		return p, feedbackCmd(feedbackError, "that is not a valid transfer id")
	}
	p.loading = true
	p.loadErr = ""
	p.haveData = false
	return p, tea.Batch(p.spin.Tick, cachedTransferCmd(d, id), fetchTransferCmd(d, id))
}

func cachedTransferCmd(d *deps, id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		cached, err := d.cachedTransfer(id)
		if err != nil {
			d.log.Warn("transfer cache lookup", "id", id, "err", err)
			return nil
		}
		if cached == nil {
			return nil
		}
		return transferLoadedMsg{transfer: *cached, fromCache: true}
	}
}

func fetchTransferCmd(d *deps, id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		tr, err := d.fetchTransfer(id)
		if err != nil {
			return errMsg{err}
		}
		if err := d.cacheTransfer(tr); err != nil {
			d.log.Warn("caching transfer", "id", tr.ID, "err", err)
		}
		return transferLoadedMsg{transfer: tr}
	}
}

func (p transferPage) view(d *deps) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Transfer lookup"))
	b.WriteString("\n\n")
	b.WriteString(p.input.View())
	b.WriteString("\n")

	switch {
	case p.loading && !p.haveData:
		b.WriteString("\n")
		b.WriteString(p.spin.View())
		b.WriteString(noticeStyle.Render(" loading..."))
		b.WriteString("\n")
	case p.loadErr != "":
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(p.loadErr))
		b.WriteString("\n")
	case p.haveData:
		t := p.transfer
		b.WriteString("\n")
		row := func(label, value string) {
			b.WriteString(labelStyle.Render(label + " "))
			b.WriteString(valueStyle.Render(value))
			b.WriteString("\n")
		}
		row("From  ", t.From)
		row("To    ", t.To)
		row("Amount", fmt.Sprintf("%.2f %s", t.Amount, communityName(d.communities, t.Symbol)))
		if t.Memo != "" {
			row("Memo  ", t.Memo)
		}
		row("Date  ", t.CreatedAt.Format("2 Jan 2006 15:04"))
		if p.fromCache {
			b.WriteString(hintStyle.Render("cached copy"))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("[enter] Look up  [esc] Back to profile  [ctrl+c] Quit"))
	return b.String()
}

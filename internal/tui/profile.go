package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kindling-cc/kindling/internal/api"
	"github.com/kindling-cc/kindling/internal/community"
)

// profilePage shows one member's public profile. A cached copy is shown
// immediately when present; the network copy replaces it when it lands.
type profilePage struct {
	account string

	profile   api.Profile
	haveData  bool
	fromCache bool
	loading   bool
	loadErr   string

	spin spinner.Model
}

func newProfilePage(account string) profilePage {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return profilePage{account: account, spin: sp}
}

// load kicks off the cache lookup and the network fetch together. The cache
// result carries fromCache so a slow network reply still wins.
func (p profilePage) load(d *deps) (profilePage, tea.Cmd) {
	p.loading = true
	p.loadErr = ""
	return p, tea.Batch(p.spin.Tick, cachedProfileCmd(d, p.account), fetchProfileCmd(d, p.account))
}

func cachedProfileCmd(d *deps, account string) tea.Cmd {
	return func() tea.Msg {
		cached, err := d.cachedProfile(account)
		if err != nil {
			d.log.Warn("profile cache lookup", "account", account, "err", err)
			return nil
		}
		if cached == nil {
			return nil
		}
		return profileLoadedMsg{profile: *cached, fromCache: true}
	}
}

func fetchProfileCmd(d *deps, account string) tea.Cmd {
	return func() tea.Msg {
		prof, err := d.fetchProfile(account)
		if err != nil {
			return errMsg{err}
		}
		if err := d.cacheProfile(prof); err != nil {
			d.log.Warn("caching profile", "account", prof.Account, "err", err)
		}
		return profileLoadedMsg{profile: prof}
	}
}

func (p profilePage) update(msg tea.Msg, d *deps) (profilePage, tea.Cmd) {
	switch m := msg.(type) {
	case spinner.TickMsg:
		if !p.loading {
			return p, nil
		}
		var cmd tea.Cmd
		p.spin, cmd = p.spin.Update(m)
		return p, cmd

	case profileLoadedMsg:
		if m.fromCache && p.haveData && !p.fromCache {
			// network copy already arrived; the cache hit is stale
			return p, nil
		}
		p.profile = m.profile
		p.haveData = true
		p.fromCache = m.fromCache
		if !m.fromCache {
			p.loading = false
			p.loadErr = ""
		}
		return p, nil

	case errMsg:
		p.loading = false
		d.log.Error("loading profile", "account", p.account, "err", m.error)
		if p.haveData {
			// keep showing the cached copy
			return p, feedbackCmd(feedbackInfo, "showing cached profile; refresh failed")
		}
		p.loadErr = "could not load this profile"
		return p, nil

	case tea.KeyMsg:
		if m.String() == "r" && !p.loading {
			return p.load(d)
		}
		return p, nil
	}
	return p, nil
}

func (p profilePage) view(d *deps) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Profile"))
	b.WriteString("\n\n")

	switch {
	case p.loadErr != "":
		b.WriteString(errorStyle.Render(p.loadErr))
		b.WriteString("\n")
	case !p.haveData:
		b.WriteString(p.spin.View())
		b.WriteString(noticeStyle.Render(" loading..."))
		b.WriteString("\n")
	default:
		row := func(label, value string) {
			if value == "" {
				return
			}
			b.WriteString(labelStyle.Render(label + " "))
			b.WriteString(valueStyle.Render(value))
			b.WriteString("\n")
		}
		row("Account  ", p.profile.Account)
		row("Name     ", p.profile.Name)
		row("Email    ", p.profile.Email)
		row("Community", communityName(d.communities, p.profile.Community))
		if !p.profile.JoinedAt.IsZero() {
			row("Joined   ", p.profile.JoinedAt.Format("2 Jan 2006"))
		}
		if p.profile.Bio != "" {
			b.WriteString("\n")
			b.WriteString(valueStyle.Render(p.profile.Bio))
			b.WriteString("\n")
		}
		if p.fromCache {
			b.WriteString("\n")
			b.WriteString(hintStyle.Render("cached copy"))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("[r] Refresh  [t] Look up transfer  [ctrl+c] Quit"))
	return b.String()
}

// communityName resolves a community symbol against the local directory,
// falling back to the raw symbol for communities we do not know.
func communityName(dir []community.Community, symbol string) string {
	if symbol == "" {
		return ""
	}
	return community.Label(dir, symbol)
}

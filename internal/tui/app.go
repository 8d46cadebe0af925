// Package tui is the terminal client: a login wizard, account
// registration, and read-only profile and transfer views.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/kindling-cc/kindling/internal/api"
	"github.com/kindling-cc/kindling/internal/cache"
	"github.com/kindling-cc/kindling/internal/community"
	"github.com/kindling-cc/kindling/internal/config"
	"github.com/kindling-cc/kindling/internal/prefs"
	"github.com/kindling-cc/kindling/internal/session"
)

const bannerTTL = 4 * time.Second

// App is the root model. It owns page routing, the active session, and the
// transient feedback banner; everything else lives in the page models.
type App struct {
	deps *deps

	page     pageID
	login    loginPage
	register registerPage
	profile  profilePage
	transfer transferPage

	sess *session.Session

	banner     string
	bannerKind feedbackKind
	bannerSeq  int
}

// New builds the root model. A non-nil stored session skips the login
// wizard and opens straight onto the member's own profile.
func New(ctx context.Context, cfg config.Config, logger *log.Logger, client *api.Client, store *cache.Cache, communities []community.Community, pr prefs.Prefs, sess *session.Session) App {
	d := newDeps(ctx, cfg, logger, client, store, communities, pr)
	app := App{
		deps:  d,
		page:  pageLogin,
		login: newLoginPage(pr.PinVisible),
	}
	if sess != nil {
		app.sess = sess
		app.page = pageProfile
		app.profile = newProfilePage(sess.Account)
	}
	return app
}

func (a App) Init() tea.Cmd {
	if a.page == pageProfile {
		var cmd tea.Cmd
		a.profile, cmd = a.profile.load(a.deps)
		return tea.Batch(textinput.Blink, cmd)
	}
	return textinput.Blink
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if m.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.page == pageProfile && m.String() == "t" {
			a.page = pageTransfer
			a.transfer = newTransferPage()
			return a, textinput.Blink
		}

	case feedbackMsg:
		a.banner = m.text
		a.bannerKind = m.kind
		a.bannerSeq++
		seq := a.bannerSeq
		return a, tea.Tick(bannerTTL, func(time.Time) tea.Msg {
			return clearFeedbackMsg{seq: seq}
		})

	case clearFeedbackMsg:
		if m.seq == a.bannerSeq {
			a.banner = ""
		}
		return a, nil

	case navigateMsg:
		return a.navigate(m.page)

	case loggedInMsg:
		a.sess = &m.sess
		a.page = pageProfile
		a.profile = newProfilePage(m.sess.Account)
		var cmd tea.Cmd
		a.profile, cmd = a.profile.load(a.deps)
		return a, cmd
	}

	return a.route(msg)
}

// navigate switches pages, resetting the target to a fresh model.
func (a App) navigate(page pageID) (tea.Model, tea.Cmd) {
	a.page = page
	switch page {
	case pageLogin:
		a.login = newLoginPage(a.deps.prefs.PinVisible)
	case pageRegister:
		a.register = newRegisterPage()
	case pageProfile:
		account := ""
		if a.sess != nil {
			account = a.sess.Account
		}
		a.profile = newProfilePage(account)
		var cmd tea.Cmd
		a.profile, cmd = a.profile.load(a.deps)
		return a, cmd
	case pageTransfer:
		a.transfer = newTransferPage()
	}
	return a, textinput.Blink
}

// route hands the message to the active page only. Pages receive nothing
// while another page is on screen.
func (a App) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.page {
	case pageLogin:
		a.login, cmd = a.login.update(msg, a.deps)
	case pageRegister:
		a.register, cmd = a.register.update(msg, a.deps)
	case pageProfile:
		a.profile, cmd = a.profile.update(msg, a.deps)
	case pageTransfer:
		a.transfer, cmd = a.transfer.update(msg, a.deps)
	}
	return a, cmd
}

func (a App) View() string {
	var body string
	switch a.page {
	case pageLogin:
		body = a.login.view()
	case pageRegister:
		body = a.register.view()
	case pageProfile:
		body = a.profile.view(a.deps)
	case pageTransfer:
		body = a.transfer.view(a.deps)
	}

	if a.banner == "" {
		return body + "\n"
	}
	style := bannerInfo
	switch a.bannerKind {
	case feedbackError:
		style = bannerErr
	case feedbackSuccess:
		style = bannerSuccess
	}
	return body + "\n\n" + style.Render(a.banner) + "\n"
}

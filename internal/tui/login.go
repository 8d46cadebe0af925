package tui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kindling-cc/kindling/internal/api"
	"github.com/kindling-cc/kindling/internal/session"
)

type loginStep int

const (
	stepPassphrase loginStep = iota
	stepPin
)

// loginPage is the two-step sign-in wizard. The active step is the only
// one that receives input; results addressed to an inactive step are
// logged and dropped so a late response can never mutate the wrong screen.
type loginPage struct {
	step       loginStep
	passphrase passphraseStep
	pin        pinStep

	pinVisible bool // sticky default for the pin field, from prefs
}

func newLoginPage(pinVisible bool) loginPage {
	return loginPage{
		step:       stepPassphrase,
		passphrase: newPassphraseStep(),
		pinVisible: pinVisible,
	}
}

func (p loginPage) update(msg tea.Msg, d *deps) (loginPage, tea.Cmd) {
	switch m := msg.(type) {
	case pasteResultMsg:
		if p.step != stepPassphrase {
			d.log.Info("stale message for inactive step", "msg", "pasteResult", "step", int(p.step))
			return p, nil
		}
		var cmd tea.Cmd
		p.passphrase, cmd = p.passphrase.onPasteResult(m.result, d)
		return p, cmd

	case signInResultMsg:
		if p.step != stepPin {
			d.log.Info("stale message for inactive step", "msg", "signInResult", "step", int(p.step))
			return p, nil
		}
		return p.onSignInResult(m, d)

	case errMsg:
		// storing the session failed after a good sign-in
		d.log.Error("persisting session", "err", m.error)
		p.step = stepPassphrase
		p.passphrase = newPassphraseStep()
		p.pin = pinStep{}
		return p, feedbackCmd(feedbackError, "could not save your session; please sign in again")

	case tea.KeyMsg:
		if p.step == stepPassphrase && m.String() == "ctrl+n" {
			return p, navigateCmd(pageRegister)
		}
	}

	switch p.step {
	case stepPassphrase:
		next, cmd, res := p.passphrase.update(msg, d)
		p.passphrase = next
		if res.done {
			p.step = stepPin
			p.pin = newPinStep(res.phrase, p.pinVisible)
		}
		return p, cmd
	default:
		next, cmd, ev := p.pin.update(msg, d)
		p.pin = next
		if ev.visibilityChanged {
			p.pinVisible = ev.pinVisible
			return p, tea.Batch(cmd, p.savePrefsCmd(d))
		}
		return p, cmd
	}
}

func (p loginPage) onSignInResult(m signInResultMsg, d *deps) (loginPage, tea.Cmd) {
	if m.err == nil {
		sess := session.Session{
			Token:     m.result.Token,
			Account:   m.result.Account,
			Community: m.result.Community,
			CreatedAt: time.Now().UTC(),
		}
		d.prefs.LastAccount = sess.Account
		pr := d.prefs
		return p, func() tea.Msg {
			if err := d.storeSession(sess); err != nil {
				return errMsg{err}
			}
			if err := d.savePrefs(pr); err != nil {
				d.log.Warn("saving preferences", "err", err)
			}
			return loggedInMsg{sess: sess}
		}
	}

	// any failure restarts the wizard from a pristine passphrase step
	p.step = stepPassphrase
	p.passphrase = newPassphraseStep()
	p.pin = pinStep{}

	var authErr *api.AuthError
	switch {
	case errors.As(m.err, &authErr):
		return p, feedbackCmd(feedbackError, authErr.Error())
	case errors.Is(m.err, api.ErrEmptySignIn):
		d.log.Error("sign-in succeeded with empty payload", "err", m.err)
		return p, tea.Batch(p.clearSessionCmd(d), feedbackCmd(feedbackError, "sign-in failed; please try again"))
	default:
		d.log.Error("sign-in failed", "err", m.err)
		return p, tea.Batch(p.clearSessionCmd(d), feedbackCmd(feedbackError, "could not reach the server; please try again"))
	}
}

// clearSessionCmd drops any stored session after a failed sign-in so a stale
// token never outlives a rejected attempt.
func (p loginPage) clearSessionCmd(d *deps) tea.Cmd {
	return func() tea.Msg {
		if err := d.clearSession(); err != nil {
			d.log.Warn("clearing session", "err", err)
		}
		return nil
	}
}

func (p loginPage) savePrefsCmd(d *deps) tea.Cmd {
	d.prefs.PinVisible = p.pinVisible
	pr := d.prefs
	return func() tea.Msg {
		if err := d.savePrefs(pr); err != nil {
			d.log.Warn("saving preferences", "err", err)
		}
		return nil
	}
}

func (p loginPage) view() string {
	if p.step == stepPassphrase {
		return p.passphrase.view()
	}
	return p.pin.view()
}

package tui

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kindling-cc/kindling/internal/api"
	"github.com/kindling-cc/kindling/internal/keys"
)

type registerPhase int

const (
	phaseForm registerPhase = iota
	phaseSubmitting
	phaseDone // phrase on screen, waiting for acknowledgement
)

// registerPage collects name, email and a PIN, generates a recovery phrase,
// and registers the derived account. The phrase is shown exactly once after
// the server accepts the account.
type registerPage struct {
	phase  registerPhase
	inputs []textinput.Model // name, email, pin, confirm
	focus  int
	errs   []string

	spin spinner.Model

	account string
	phrase  string
	copied  bool
}

const (
	fieldName = iota
	fieldEmail
	fieldPin
	fieldConfirm
	fieldCount
)

func newRegisterPage() registerPage {
	mk := func(placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.Prompt = "> "
		ti.Width = 40
		return ti
	}
	inputs := make([]textinput.Model, fieldCount)
	inputs[fieldName] = mk("display name")
	inputs[fieldEmail] = mk("email")
	inputs[fieldPin] = mk("6 digits")
	inputs[fieldConfirm] = mk("repeat PIN")
	for i := fieldPin; i <= fieldConfirm; i++ {
		inputs[i].CharLimit = 6
		inputs[i].EchoMode = textinput.EchoPassword
		inputs[i].EchoCharacter = pinEchoChar
		inputs[i].Width = 12
	}
	inputs[fieldName].Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return registerPage{
		phase:  phaseForm,
		inputs: inputs,
		errs:   make([]string, fieldCount),
		spin:   sp,
	}
}

func (p registerPage) update(msg tea.Msg, d *deps) (registerPage, tea.Cmd) {
	switch m := msg.(type) {
	case spinner.TickMsg:
		if p.phase != phaseSubmitting {
			return p, nil
		}
		var cmd tea.Cmd
		p.spin, cmd = p.spin.Update(m)
		return p, cmd

	case registerResultMsg:
		if p.phase != phaseSubmitting {
			d.log.Info("stale message for inactive step", "msg", "registerResult")
			return p, nil
		}
		if m.err != nil {
			p.phase = phaseForm
			d.log.Error("registration failed", "err", m.err)
			return p, feedbackCmd(feedbackError, registerFailureText(m.err))
		}
		p.phase = phaseDone
		p.account = m.account
		p.phrase = m.phrase
		return p, nil

	case phraseCopiedMsg:
		if p.phase != phaseDone {
			return p, nil
		}
		if m.err != nil {
			d.log.Warn("copying phrase to clipboard", "err", m.err)
			return p, feedbackCmd(feedbackInfo, "could not copy; write the phrase down instead")
		}
		p.copied = true
		return p, nil

	case tea.KeyMsg:
		switch p.phase {
		case phaseSubmitting:
			return p, nil
		case phaseDone:
			switch m.String() {
			case "ctrl+p":
				return p, p.copyPhraseCmd(d)
			case "enter":
				return p, tea.Batch(
					navigateCmd(pageLogin),
					feedbackCmd(feedbackSuccess, "account created; sign in with your new phrase"),
				)
			}
			return p, nil
		}
		switch m.String() {
		case "esc":
			return p, navigateCmd(pageLogin)
		case "tab", "down":
			return p.moveFocus(1), nil
		case "shift+tab", "up":
			return p.moveFocus(-1), nil
		case "enter":
			return p.submit(d)
		}
		var cmd tea.Cmd
		p.inputs[p.focus], cmd = p.inputs[p.focus].Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p registerPage) moveFocus(delta int) registerPage {
	p.inputs[p.focus].Blur()
	p.focus = (p.focus + delta + fieldCount) % fieldCount
	p.inputs[p.focus].Focus()
	return p
}

func (p registerPage) submit(d *deps) (registerPage, tea.Cmd) {
	for i := range p.errs {
		p.errs[i] = ""
	}
	name := strings.TrimSpace(p.inputs[fieldName].Value())
	email := strings.TrimSpace(p.inputs[fieldEmail].Value())
	if name == "" {
		p.errs[fieldName] = "name is required"
	}
	if email == "" || !strings.Contains(email, "@") {
		p.errs[fieldEmail] = "a valid email is required"
	}
	pinErr, confirmErr := validatePinConfirmation(p.inputs[fieldPin].Value(), p.inputs[fieldConfirm].Value())
	if pinErr != nil {
		p.errs[fieldPin] = pinErr.Error()
	}
	if confirmErr != nil {
		p.errs[fieldConfirm] = confirmErr.Error()
	}
	for _, e := range p.errs {
		if e != "" {
			return p, nil
		}
	}

	p.phase = phaseSubmitting
	pin := p.inputs[fieldPin].Value()
	return p, tea.Batch(p.spin.Tick, registerCmd(d, name, email, pin))
}

// registerCmd generates a fresh phrase, derives the account it will sign
// for, and registers it. The phrase only leaves this closure on success.
func registerCmd(d *deps, name, email, pin string) tea.Cmd {
	return func() tea.Msg {
		phrase, err := d.genPhrase()
		if err != nil {
			return registerResultMsg{err: err}
		}
		kp, err := keys.Derive(phrase, pin)
		if err != nil {
			return registerResultMsg{err: err}
		}
		reg := api.Registration{
			Account:   kp.Account,
			Name:      name,
			Email:     email,
			PublicKey: base64.StdEncoding.EncodeToString(kp.Public),
		}
		if err := d.register(reg); err != nil {
			return registerResultMsg{err: err}
		}
		return registerResultMsg{account: kp.Account, phrase: phrase}
	}
}

func (p registerPage) copyPhraseCmd(d *deps) tea.Cmd {
	phrase := p.phrase
	return func() tea.Msg {
		return phraseCopiedMsg{err: d.writeClipboard(phrase)}
	}
}

func registerFailureText(err error) string {
	var authErr *api.AuthError
	if errors.As(err, &authErr) {
		return authErr.Error()
	}
	return "registration failed; please try again"
}

func (p registerPage) view() string {
	if p.phase == phaseDone {
		return p.viewPhrase()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Create account"))
	b.WriteString("\n\n")
	labels := [fieldCount]string{"Name", "Email", "PIN", "Confirm PIN"}
	for i, ti := range p.inputs {
		b.WriteString(labelStyle.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(ti.View())
		b.WriteString("\n")
		if p.errs[i] != "" {
			b.WriteString(errorStyle.Render(p.errs[i]))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	if p.phase == phaseSubmitting {
		b.WriteString(p.spin.View())
		b.WriteString(noticeStyle.Render(" creating account..."))
	} else {
		b.WriteString(footerStyle.Render("[enter] Create  [tab] Next field  [esc] Back to sign in  [ctrl+c] Quit"))
	}
	return b.String()
}

func (p registerPage) viewPhrase() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Your recovery phrase"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Account "))
	b.WriteString(valueStyle.Render(p.account))
	b.WriteString("\n\n")
	b.WriteString(valueStyle.Render(p.phrase))
	b.WriteString("\n\n")
	b.WriteString(noticeStyle.Render("This phrase is shown once. Anyone holding it controls the account."))
	b.WriteString("\n")
	if p.copied {
		b.WriteString(successStyle.Render("copied to clipboard"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("[ctrl+p] Copy  [enter] Continue to sign in"))
	return b.String()
}

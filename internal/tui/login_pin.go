package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kindling-cc/kindling/internal/keys"
)

// pinStep owns PIN entry and confirmation. It holds the validated
// passphrase from the previous step and hands both to the key-derivation
// and sign-in capabilities on submit.
type pinStep struct {
	passphrase string

	pin     textinput.Model
	confirm textinput.Model
	focus   int // 0 = pin, 1 = confirmation

	pinVisible     bool
	confirmVisible bool

	pinErr     string
	confirmErr string

	submitting bool
	spin       spinner.Model
}

// pinEvent is what the step reports upward after handling a message.
type pinEvent struct {
	// visibilityChanged is set when the pin field toggle flipped; the wizard
	// records the new default for future logins.
	visibilityChanged bool
	pinVisible        bool
}

const pinEchoChar = '•'

func newPinStep(passphrase string, visible bool) pinStep {
	pin := textinput.New()
	pin.Placeholder = "6 digits"
	pin.Prompt = "> "
	pin.CharLimit = 6
	pin.Width = 12
	pin.Focus()

	confirm := textinput.New()
	confirm.Placeholder = "repeat PIN"
	confirm.Prompt = "> "
	confirm.CharLimit = 6
	confirm.Width = 12

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	s := pinStep{
		passphrase:     passphrase,
		pin:            pin,
		confirm:        confirm,
		pinVisible:     visible,
		confirmVisible: visible,
		spin:           sp,
	}
	s.applyEcho()
	return s
}

func (s *pinStep) applyEcho() {
	if s.pinVisible {
		s.pin.EchoMode = textinput.EchoNormal
	} else {
		s.pin.EchoMode = textinput.EchoPassword
		s.pin.EchoCharacter = pinEchoChar
	}
	if s.confirmVisible {
		s.confirm.EchoMode = textinput.EchoNormal
	} else {
		s.confirm.EchoMode = textinput.EchoPassword
		s.confirm.EchoCharacter = pinEchoChar
	}
}

func (s pinStep) update(msg tea.Msg, d *deps) (pinStep, tea.Cmd, pinEvent) {
	switch m := msg.(type) {
	case spinner.TickMsg:
		if !s.submitting {
			return s, nil, pinEvent{}
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(m)
		return s, cmd, pinEvent{}
	case tea.KeyMsg:
		if s.submitting {
			// one request in flight; no edits until the outcome lands
			return s, nil, pinEvent{}
		}
		switch m.String() {
		case "tab", "shift+tab", "up", "down":
			s.focus = 1 - s.focus
			if s.focus == 0 {
				s.pin.Focus()
				s.confirm.Blur()
			} else {
				s.confirm.Focus()
				s.pin.Blur()
			}
			return s, nil, pinEvent{}
		case "ctrl+r":
			return s.toggleVisibility()
		case "enter":
			return s.submit(d)
		}
		var cmd tea.Cmd
		if s.focus == 0 {
			s.pin, cmd = s.pin.Update(msg)
		} else {
			s.confirm, cmd = s.confirm.Update(msg)
		}
		return s, cmd, pinEvent{}
	default:
		return s, nil, pinEvent{}
	}
}

// toggleVisibility flips the focused field's visibility. The two flags are
// independent; only the pin field's flag is the sticky preference.
func (s pinStep) toggleVisibility() (pinStep, tea.Cmd, pinEvent) {
	if s.focus == 0 {
		s.pinVisible = !s.pinVisible
		s.applyEcho()
		return s, nil, pinEvent{visibilityChanged: true, pinVisible: s.pinVisible}
	}
	s.confirmVisible = !s.confirmVisible
	s.applyEcho()
	return s, nil, pinEvent{}
}

func (s pinStep) submit(d *deps) (pinStep, tea.Cmd, pinEvent) {
	pinErr, confirmErr := validatePinConfirmation(s.pin.Value(), s.confirm.Value())
	s.pinErr, s.confirmErr = "", ""
	if pinErr != nil {
		s.pinErr = pinErr.Error()
	}
	if confirmErr != nil {
		s.confirmErr = confirmErr.Error()
	}
	if pinErr != nil || confirmErr != nil {
		return s, nil, pinEvent{}
	}

	s.submitting = true
	return s, tea.Batch(s.spin.Tick, signInCmd(d, s.passphrase, s.pin.Value())), pinEvent{}
}

// signInCmd derives the signing key and performs the remote sign-in. Key
// generation is the keys package's job; this step only sequences the call
// and interprets the response.
func signInCmd(d *deps, passphrase, pin string) tea.Cmd {
	return func() tea.Msg {
		kp, err := keys.Derive(passphrase, pin)
		if err != nil {
			return signInResultMsg{err: err}
		}
		res, err := d.signIn(kp)
		return signInResultMsg{result: res, err: err}
	}
}

func (s pinStep) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Choose your PIN"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("The PIN locks your recovery phrase into a signing key on this device"))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("PIN"))
	b.WriteString("\n")
	b.WriteString(s.pin.View())
	b.WriteString("\n")
	if s.pinErr != "" {
		b.WriteString(errorStyle.Render(s.pinErr))
		b.WriteString("\n")
	}

	b.WriteString(labelStyle.Render("Confirm PIN"))
	b.WriteString("\n")
	b.WriteString(s.confirm.View())
	b.WriteString("\n")
	if s.confirmErr != "" {
		b.WriteString(errorStyle.Render(s.confirmErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if s.submitting {
		b.WriteString(s.spin.View())
		b.WriteString(noticeStyle.Render(" signing in..."))
	} else {
		b.WriteString(footerStyle.Render("[enter] Sign in  [tab] Switch field  [ctrl+r] Show/hide  [ctrl+c] Quit"))
	}
	return b.String()
}

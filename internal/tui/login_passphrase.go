package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kindling-cc/kindling/internal/clipboard"
	"github.com/kindling-cc/kindling/internal/words"
)

// passphraseStep owns the recovery phrase input: typed text, clipboard
// pastes, and validation. It never touches the network; success is reported
// upward through the result value.
type passphraseStep struct {
	input     textinput.Model
	hasPasted bool
	errText   string
	hint      string
}

// passphraseResult is the outcome the step reports to the wizard.
type passphraseResult struct {
	done   bool
	phrase string // validated, normalized; set only when done
}

func newPassphraseStep() passphraseStep {
	ti := textinput.New()
	ti.Placeholder = "twelve word recovery phrase"
	ti.Prompt = "> "
	ti.Width = 64
	ti.Focus()
	return passphraseStep{input: ti}
}

func (s passphraseStep) update(msg tea.Msg, d *deps) (passphraseStep, tea.Cmd, passphraseResult) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		switch m.String() {
		case "enter":
			return s.submit()
		case "ctrl+p":
			return s, s.requestPaste(d), passphraseResult{}
		}
		prev := s.input.Value()
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		if s.input.Value() != prev {
			// typing invalidates the "pasted" marker
			s.hasPasted = false
		}
		return s, cmd, passphraseResult{}
	default:
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd, passphraseResult{}
	}
}

// requestPaste fires the clipboard read; the outcome arrives later as a
// pasteResultMsg. State is untouched until then.
func (s passphraseStep) requestPaste(d *deps) tea.Cmd {
	return func() tea.Msg {
		return pasteResultMsg{result: d.readClipboard()}
	}
}

func (s passphraseStep) onPasteResult(res clipboard.ReadResult, d *deps) (passphraseStep, tea.Cmd) {
	switch res.Status {
	case clipboard.StatusContent:
		s.input.SetValue(strings.TrimSpace(res.Text))
		s.input.CursorEnd()
		s.hasPasted = true
		s.errText = ""
		s.hint = ""
		return s, nil
	case clipboard.StatusDenied:
		s.hasPasted = false
		return s, feedbackCmd(feedbackInfo, "clipboard access was denied")
	case clipboard.StatusUnsupported:
		s.hasPasted = false
		d.log.Warn("clipboard not supported on this platform")
		return s, feedbackCmd(feedbackInfo, "clipboard is not available here; type the phrase instead")
	default:
		s.hasPasted = false
		d.log.Warn("clipboard read failed", "err", res.Err)
		return s, feedbackCmd(feedbackInfo, "could not read the clipboard")
	}
}

func (s passphraseStep) submit() (passphraseStep, tea.Cmd, passphraseResult) {
	phrase, badWord, err := validatePassphrase(s.input.Value())
	if err != nil {
		s.errText = err.Error()
		s.hint = ""
		if badWord != "" {
			if sugg := words.Suggest(badWord, 3); len(sugg) > 0 {
				s.hint = fmt.Sprintf("%q: did you mean %s?", badWord, strings.Join(sugg, ", "))
			}
		}
		return s, nil, passphraseResult{}
	}
	s.errText = ""
	s.hint = ""
	return s, nil, passphraseResult{done: true, phrase: phrase}
}

func (s passphraseStep) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Sign in"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Enter your 12-word recovery phrase"))
	b.WriteString("\n")
	b.WriteString(s.input.View())
	b.WriteString("\n")
	if s.hasPasted {
		b.WriteString(successStyle.Render("pasted from clipboard"))
		b.WriteString("\n")
	}
	if s.errText != "" {
		b.WriteString(errorStyle.Render(s.errText))
		b.WriteString("\n")
	}
	if s.hint != "" {
		b.WriteString(hintStyle.Render(s.hint))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("[enter] Continue  [ctrl+p] Paste  [ctrl+n] New account  [ctrl+c] Quit"))
	return b.String()
}

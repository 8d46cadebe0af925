package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kindling-cc/kindling/internal/api"
	"github.com/kindling-cc/kindling/internal/clipboard"
	"github.com/kindling-cc/kindling/internal/session"
)

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------
// Capability responses come back as typed messages produced by tea.Cmd
// closures. Each closure is tied to the call that produced it, so responses
// never need to be matched back by name or address.

type pageID int

const (
	pageLogin pageID = iota
	pageRegister
	pageProfile
	pageTransfer
)

// feedbackKind selects the banner style for transient feedback.
type feedbackKind int

const (
	feedbackInfo feedbackKind = iota
	feedbackSuccess
	feedbackError
)

// feedbackMsg shows one transient banner in the shell.
type feedbackMsg struct {
	kind feedbackKind
	text string
}

// clearFeedbackMsg expires the banner with the matching sequence number.
// A stale timer for an already-replaced banner is ignored.
type clearFeedbackMsg struct {
	seq int
}

// navigateMsg asks the shell to switch pages.
type navigateMsg struct {
	page pageID
}

// pasteResultMsg carries a clipboard read outcome to the passphrase step.
type pasteResultMsg struct {
	result clipboard.ReadResult
}

// signInResultMsg carries the remote sign-in outcome to the PIN step.
type signInResultMsg struct {
	result api.SignInResult
	err    error
}

// loggedInMsg tells the shell a session was established and persisted.
type loggedInMsg struct {
	sess session.Session
}

// registerResultMsg carries the registration outcome, including the
// generated recovery phrase on success (shown exactly once).
type registerResultMsg struct {
	account string
	phrase  string
	err     error
}

// phraseCopiedMsg reports the copy-to-clipboard attempt for a fresh phrase.
type phraseCopiedMsg struct {
	err error
}

// profileLoadedMsg delivers a profile to the profile page. Cache hits arrive
// first with fromCache set; the network copy follows and wins.
type profileLoadedMsg struct {
	profile   api.Profile
	fromCache bool
}

// transferLoadedMsg delivers a transfer to the transfer page.
type transferLoadedMsg struct {
	transfer  api.Transfer
	fromCache bool
}

// errMsg is a generic failure from a background command.
type errMsg struct{ error }

func feedbackCmd(kind feedbackKind, text string) tea.Cmd {
	return func() tea.Msg { return feedbackMsg{kind: kind, text: text} }
}

func navigateCmd(page pageID) tea.Cmd {
	return func() tea.Msg { return navigateMsg{page: page} }
}

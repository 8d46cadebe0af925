package tui

import (
	"regexp"
	"strings"
)

// ---------------------------------------------------------------------------
// Passphrase and PIN validation
// ---------------------------------------------------------------------------
//
// The rules are deliberately strict and local: a passphrase is twelve
// whitespace-separated words of three or more characters, a PIN is six
// digits. Anything beyond that (wordlist membership, account existence) is
// the server's call.

type validationCode int

const (
	codeWrongWordCount validationCode = iota + 1
	codeWordTooShort
	codeInvalidPinFormat
	codePinMismatch
)

type validationError struct {
	code validationCode
}

func (e *validationError) Error() string {
	switch e.code {
	case codeWrongWordCount:
		return "the passphrase must have exactly 12 words"
	case codeWordTooShort:
		return "each word has at least 3 letters; check for typos"
	case codeInvalidPinFormat:
		return "the PIN must be exactly 6 digits"
	case codePinMismatch:
		return "the PINs do not match"
	default:
		return "invalid input"
	}
}

const passphraseWords = 12

var pinPattern = regexp.MustCompile(`^[0-9]{6}$`)

// validatePassphrase checks the 12-word shape and returns the normalized
// phrase: words rejoined by single spaces. The shortest offending word is
// also returned so the caller can offer a spelling hint.
func validatePassphrase(raw string) (phrase string, badWord string, err *validationError) {
	tokens := strings.Fields(raw)
	if len(tokens) != passphraseWords {
		return "", "", &validationError{code: codeWrongWordCount}
	}
	for _, tok := range tokens {
		if len(tok) <= 2 {
			return "", tok, &validationError{code: codeWordTooShort}
		}
	}
	return strings.Join(tokens, " "), "", nil
}

// validatePin checks the 6-digit shape.
func validatePin(pin string) *validationError {
	if !pinPattern.MatchString(pin) {
		return &validationError{code: codeInvalidPinFormat}
	}
	return nil
}

// validatePinConfirmation validates both fields and then their equality.
// The two errors are reported per field so the UI highlights the right
// input; a mismatch is the confirmation field's problem.
func validatePinConfirmation(pin, confirmation string) (pinErr, confirmErr *validationError) {
	pinErr = validatePin(pin)
	confirmErr = validatePin(confirmation)
	if pinErr != nil || confirmErr != nil {
		return pinErr, confirmErr
	}
	if pin != confirmation {
		return nil, &validationError{code: codePinMismatch}
	}
	return nil, nil
}

package api

import (
	"time"

	"github.com/google/uuid"
)

// Profile is a member's public profile.
type Profile struct {
	Account   string    `json:"account"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Community string    `json:"community,omitempty"`
	JoinedAt  time.Time `json:"created_at"`
}

// Transfer is one completed transfer between two accounts.
type Transfer struct {
	ID        uuid.UUID `json:"id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Amount    float64   `json:"amount"`
	Symbol    string    `json:"symbol"`
	Memo      string    `json:"memo,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SignInResult is a successful sign-in payload.
type SignInResult struct {
	Token     string `json:"token"`
	Account   string `json:"account"`
	Community string `json:"community,omitempty"`
}

// Registration is the payload for creating a new account.
type Registration struct {
	Account   string `json:"account"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	PublicKey string `json:"public_key"`
	Invite    string `json:"invite,omitempty"`
}

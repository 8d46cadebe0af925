package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/kindling-cc/kindling/internal/api"
	"github.com/kindling-cc/kindling/internal/cache"
	"github.com/kindling-cc/kindling/internal/clipboard"
	"github.com/kindling-cc/kindling/internal/community"
	"github.com/kindling-cc/kindling/internal/config"
	"github.com/kindling-cc/kindling/internal/keys"
	"github.com/kindling-cc/kindling/internal/prefs"
	"github.com/kindling-cc/kindling/internal/session"
	"github.com/kindling-cc/kindling/internal/words"
)

// deps bundles the external capabilities the pages call into. Every slot is
// a plain function so tests can swap in fakes without a network, clipboard,
// or filesystem.
type deps struct {
	cfg         config.Config
	log         *log.Logger
	communities []community.Community
	prefs       prefs.Prefs

	readClipboard  func() clipboard.ReadResult
	writeClipboard func(string) error
	signIn         func(keys.KeyPair) (api.SignInResult, error)
	register       func(api.Registration) error
	fetchProfile   func(string) (api.Profile, error)
	fetchTransfer  func(uuid.UUID) (api.Transfer, error)
	cachedProfile  func(string) (*api.Profile, error)
	cacheProfile   func(api.Profile) error
	cachedTransfer func(uuid.UUID) (*api.Transfer, error)
	cacheTransfer  func(api.Transfer) error
	storeSession   func(session.Session) error
	clearSession   func() error
	savePrefs      func(prefs.Prefs) error
	genPhrase      func() (string, error)
}

// newDeps wires the real capabilities.
func newDeps(ctx context.Context, cfg config.Config, logger *log.Logger, client *api.Client, store *cache.Cache, communities []community.Community, pr prefs.Prefs) *deps {
	timeout := time.Duration(cfg.Server.TimeoutSeconds) * time.Second
	withTimeout := func(fn func(context.Context)) {
		callCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		fn(callCtx)
	}

	d := &deps{
		cfg:            cfg,
		log:            logger,
		communities:    communities,
		prefs:          pr,
		readClipboard:  clipboard.Read,
		writeClipboard: clipboard.WriteString,
		storeSession:   session.Store,
		clearSession:   session.Clear,
		savePrefs:      prefs.Save,
		genPhrase:      words.GeneratePhrase,
	}
	d.signIn = func(kp keys.KeyPair) (res api.SignInResult, err error) {
		withTimeout(func(c context.Context) { res, err = client.SignIn(c, kp) })
		return
	}
	d.register = func(reg api.Registration) (err error) {
		withTimeout(func(c context.Context) { err = client.Register(c, reg) })
		return
	}
	d.fetchProfile = func(account string) (p api.Profile, err error) {
		withTimeout(func(c context.Context) { p, err = client.Profile(c, account) })
		return
	}
	d.fetchTransfer = func(id uuid.UUID) (t api.Transfer, err error) {
		withTimeout(func(c context.Context) { t, err = client.Transfer(c, id) })
		return
	}
	d.cachedProfile = func(account string) (*api.Profile, error) { return store.GetProfile(ctx, account) }
	d.cacheProfile = func(p api.Profile) error { return store.PutProfile(ctx, p) }
	d.cachedTransfer = func(id uuid.UUID) (*api.Transfer, error) { return store.GetTransfer(ctx, id) }
	d.cacheTransfer = func(t api.Transfer) error { return store.PutTransfer(ctx, t) }
	return d
}

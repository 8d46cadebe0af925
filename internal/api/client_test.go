package api

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/kindling-cc/kindling/internal/keys"
)

const testPhrase = "won glory hope maple cedar river stone amber quartz willow finch otter"

func testKeyPair(t *testing.T) keys.KeyPair {
	t.Helper()
	kp, err := keys.Derive(testPhrase, "123456")
	require.NoError(t, err)
	return kp
}

func TestSignInSuccess(t *testing.T) {
	kp := testKeyPair(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/sign_in", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var body struct {
			Account   string `json:"account"`
			PublicKey string `json:"public_key"`
			Timestamp string `json:"timestamp"`
			Signature string `json:"signature"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, kp.Account, body.Account)

		pub, err := base64.StdEncoding.DecodeString(body.PublicKey)
		require.NoError(t, err)
		sig, err := base64.StdEncoding.DecodeString(body.Signature)
		require.NoError(t, err)
		statement := fmt.Sprintf("kindling-signin:%s:%s", body.Account, body.Timestamp)
		require.True(t, ed25519.Verify(pub, []byte(statement), sig), "signature must verify")

		fmt.Fprintf(w, `{"data":{"token":"tok-1","account":%q,"community":"EMB"}}`, body.Account)
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second)
	res, err := c.SignIn(context.Background(), kp)
	require.NoError(t, err)
	require.Equal(t, "tok-1", res.Token)
	require.Equal(t, kp.Account, res.Account)
	require.Equal(t, "EMB", res.Community)
}

func TestSignInRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"unknown account"}}`)
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second)
	_, err := c.SignIn(context.Background(), testKeyPair(t))
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, "unknown account", authErr.Reason)
}

func TestSignInNullPayload(t *testing.T) {
	for _, body := range []string{`null`, `{"data":null}`, ``, `{"data":{}}`} {
		t.Run("body="+body, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, body)
			}))
			defer srv.Close()

			c := New(srv.URL, 2*time.Second)
			_, err := c.SignIn(context.Background(), testKeyPair(t))
			require.ErrorIs(t, err, ErrEmptySignIn)
		})
	}
}

func TestSignInTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL, 2*time.Second)
	_, err := c.SignIn(context.Background(), testKeyPair(t))
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrEmptySignIn)
}

func TestRegister(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/users", r.URL.Path)
		var reg Registration
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reg))
		require.Equal(t, "emberfox2026", reg.Account)
		require.NotEmpty(t, reg.PublicKey)
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"data":{"account":%q}}`, reg.Account)
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second)
	err := c.Register(context.Background(), Registration{
		Account:   "emberfox2026",
		Name:      "Ember Fox",
		Email:     "ember@example.org",
		PublicKey: "cHVibGljLWtleQ==",
	})
	require.NoError(t, err)
}

func TestRegisterConflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprint(w, `{"error":{"message":"account taken"}}`)
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second)
	err := c.Register(context.Background(), Registration{Account: "emberfox2026"})
	require.ErrorContains(t, err, "account taken")
}

func TestProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/users/emberfox2026", r.URL.Path)
		fmt.Fprint(w, `{"data":{"account":"emberfox2026","name":"Ember Fox","bio":"gardener","community":"EMB","created_at":"2025-03-01T12:00:00Z"}}`)
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second)
	p, err := c.Profile(context.Background(), "emberfox2026")
	require.NoError(t, err)
	require.Equal(t, "Ember Fox", p.Name)
	require.Equal(t, "gardener", p.Bio)
	require.Equal(t, 2025, p.JoinedAt.Year())
}

func TestTransfer(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/transfers/"+id.String(), r.URL.Path)
		fmt.Fprintf(w, `{"data":{"id":%q,"from":"emberfox2026","to":"oakshade1234","amount":12.5,"symbol":"EMB","memo":"veg box","created_at":"2026-08-20T09:30:00Z"}}`, id)
	}))
	defer srv.Close()

	c := New(srv.URL, 2*time.Second)
	tr, err := c.Transfer(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, id, tr.ID)
	require.Equal(t, 12.5, tr.Amount)
	require.Equal(t, "veg box", tr.Memo)
}

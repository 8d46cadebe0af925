package keys

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const testPhrase = "won glory hope maple cedar river stone amber quartz willow finch otter"

func TestDeriveDeterministic(t *testing.T) {
	a, err := Derive(testPhrase, "123456")
	require.NoError(t, err)
	b, err := Derive(testPhrase, "123456")
	require.NoError(t, err)
	require.Equal(t, a.Account, b.Account)
	require.Equal(t, a.Private, b.Private)
}

func TestDeriveDistinctAcrossPins(t *testing.T) {
	a, err := Derive(testPhrase, "123456")
	require.NoError(t, err)
	b, err := Derive(testPhrase, "123457")
	require.NoError(t, err)
	require.NotEqual(t, a.Account, b.Account)
	require.NotEqual(t, a.Private, b.Private)
}

func TestDeriveDistinctAcrossPhrases(t *testing.T) {
	a, err := Derive(testPhrase, "123456")
	require.NoError(t, err)
	b, err := Derive(testPhrase+" extra", "123456")
	require.NoError(t, err)
	require.NotEqual(t, a.Account, b.Account)
}

func TestDeriveRejectsEmptyInputs(t *testing.T) {
	_, err := Derive("", "123456")
	require.Error(t, err)
	_, err = Derive("   ", "123456")
	require.Error(t, err)
	_, err = Derive(testPhrase, "")
	require.Error(t, err)
}

func TestAccountShape(t *testing.T) {
	kp, err := Derive(testPhrase, "123456")
	require.NoError(t, err)
	require.Len(t, kp.Account, AccountLen)
	require.Equal(t, kp.Account, AccountFor(kp.Public))
}

func TestSignVerify(t *testing.T) {
	kp, err := Derive(testPhrase, "123456")
	require.NoError(t, err)
	challenge := []byte("sign-in:2026-08-23T10:00:00Z")
	sig := kp.Sign(challenge)
	require.True(t, kp.Verify(challenge, sig))
	require.False(t, kp.Verify([]byte("tampered"), sig))

	other, err := Derive(testPhrase, "654321")
	require.NoError(t, err)
	require.False(t, other.Verify(challenge, sig))
}

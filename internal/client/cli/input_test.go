package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	require.NoError(t, err)
	require.Equal(t, "hello world", got)
	require.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	require.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	require.Error(t, err)
}

func stubTerminal(t *testing.T, tty bool, pw []byte, pwErr error) {
	t.Helper()
	origTTY, origRP := isTerminal, readPassword
	isTerminal = func(int) bool { return tty }
	readPassword = func(int) ([]byte, error) { return pw, pwErr }
	t.Cleanup(func() {
		isTerminal = origTTY
		readPassword = origRP
	})
}

func TestGetSecret_Terminal(t *testing.T) {
	stubTerminal(t, true, []byte(" 123456 "), nil)
	var out bytes.Buffer
	got, err := GetSecret(rdr("ignored\n"), "Enter OTP", &out)
	require.NoError(t, err)
	require.Equal(t, "123456", got)
	require.Equal(t, "Enter OTP: \n", out.String())
}

func TestGetSecret_TerminalError(t *testing.T) {
	stubTerminal(t, true, nil, errors.New("boom"))
	var out bytes.Buffer
	_, err := GetSecret(rdr(""), "Enter OTP", &out)
	require.Error(t, err)
}

func TestGetSecret_Piped(t *testing.T) {
	stubTerminal(t, false, nil, nil)
	var out bytes.Buffer
	got, err := GetSecret(rdr("654321\n"), "Enter OTP", &out)
	require.NoError(t, err)
	require.Equal(t, "654321", got)
}

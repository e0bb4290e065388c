package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeStripsBOM(t *testing.T) {
	src := append([]byte{0xEF, 0xBB, 0xBF}, []byte("x = 1")...)
	got := Normalize(src)
	require.Equal(t, "x = 1", string(got))
}

func TestNormalizeNFC(t *testing.T) {
	// "é" as NFD (e + combining acute) should normalize to the NFC form.
	nfd := []byte{'e', 0xCC, 0x81}
	got := Normalize(nfd)
	require.NotEqual(t, nfd, got)
	require.Equal(t, []byte{0xC3, 0xA9}, got)
}

package lexer

import (
	"bytes"

	"golang.org/x/text/unicode/norm"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Normalize strips a UTF-8 BOM and applies Unicode NFC normalization so that
// lexically equivalent source (NFC vs NFD identifiers) produces identical
// token streams.
func Normalize(src []byte) []byte {
	src = bytes.TrimPrefix(src, utf8BOM)
	if norm.NFC.IsNormal(src) {
		return src
	}
	return norm.NFC.Bytes(src)
}

// Package common holds the text code page shared by every string codec.
//
// All on-disk strings are Windows-1252. The five byte values the code page
// leaves undefined decode to the C1 control with the same value and encode
// back to that byte, so every byte string survives a round trip. Encoding
// substitutes runes outside the code page and reports them through the
// logger instead of failing, so authoring tools can still save.
package common

import (
	"strings"
	"unicode/utf8"

	"github.com/rawbytedev/genom/pkg/errs"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/charmap"
)

// codePage is the single code page used by the file formats.
var codePage = charmap.Windows1252

// substitute is written for runes the code page cannot hold.
const substitute = 0x1A

// undefined reports whether c is one of the byte values Windows-1252 does
// not assign.
func undefined(c byte) bool {
	switch c {
	case 0x81, 0x8D, 0x8F, 0x90, 0x9D:
		return true
	}
	return false
}

// isASCII reports whether b can be passed through both ways unchanged.
func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}

// DecodeText converts Windows-1252 bytes into a UTF-8 string.
func DecodeText(b []byte) (string, error) {
	if isASCII(b) {
		return string(b), nil
	}
	var sb strings.Builder
	sb.Grow(len(b) + len(b)/2)
	for _, c := range b {
		if undefined(c) {
			sb.WriteRune(rune(c))
			continue
		}
		sb.WriteRune(codePage.DecodeByte(c))
	}
	return sb.String(), nil
}

// EncodeText converts s into Windows-1252. Runes outside the code page are
// replaced and logged at warn level; invalid UTF-8 input is rejected.
func EncodeText(s string, log *zerolog.Logger) ([]byte, error) {
	if isASCII([]byte(s)) {
		return []byte(s), nil
	}
	if !utf8.ValidString(s) {
		return nil, eris.Wrapf(errs.ErrInvalidString, "%q is not valid UTF-8", s)
	}
	out := make([]byte, 0, len(s))
	replaced := 0
	for _, r := range s {
		if r < 0x100 && undefined(byte(r)) {
			out = append(out, byte(r))
			continue
		}
		c, ok := codePage.EncodeRune(r)
		if !ok {
			c = substitute
			replaced++
		}
		out = append(out, c)
	}
	if replaced > 0 && log != nil {
		log.Warn().Str("text", s).Int("replaced", replaced).Msg("string contains characters outside Windows-1252, substituting")
	}
	return out, nil
}

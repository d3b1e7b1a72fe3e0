package cmrparser

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DecodeText turns an uploaded report into text. A UTF-8 or UTF-16 byte order
// mark selects the encoding. Without one, text holding any UTF-8 multi-byte
// sequence is read as UTF-8 with invalid bytes dropped; anything else is read
// as Windows-1252, the code page of the workstation's Windows exports. The result is NFC-normalised so headings typed with
// combining characters still compare equal.
func DecodeText(raw []byte) string {
	decoded, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), raw)
	if err != nil {
		decoded = raw
	}

	if !utf8.Valid(decoded) && !hasMultiByteRune(decoded) {
		if latin, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), decoded); err == nil {
			decoded = latin
		}
	}

	return norm.NFC.String(strings.ToValidUTF8(string(decoded), ""))
}

// hasMultiByteRune reports whether b contains a valid UTF-8 sequence longer
// than one byte.
func hasMultiByteRune(b []byte) bool {
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if size > 1 && r != utf8.RuneError {
			return true
		}
		b = b[size:]
	}
	return false
}

// ReadText reads r fully and decodes it with DecodeText.
func ReadText(r io.Reader) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read report: %w", err)
	}
	return DecodeText(raw), nil
}

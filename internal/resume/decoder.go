// Package resume turns uploaded resume documents into plain text. Decoding
// fails soft: malformed input yields empty text, which callers treat as "no
// skills derivable".
package resume

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Decoder extracts text from a resume document.
type Decoder interface {
	Decode(data []byte) string
}

// minPrintableRatio separates text documents from binary blobs that happen
// to contain some readable runs.
const minPrintableRatio = 0.7

// TextDecoder handles plain-text resumes. Binary formats are expected to be
// converted upstream; anything that does not look like text decodes to "".
type TextDecoder struct{}

// NewTextDecoder creates a TextDecoder.
func NewTextDecoder() TextDecoder {
	return TextDecoder{}
}

// Decode returns the document's text, or empty when the payload is not
// usable text. It never fails with an error.
func (TextDecoder) Decode(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	if !utf8.Valid(data) {
		return ""
	}

	text := string(data)

	printable := 0
	total := 0
	for _, r := range text {
		total++
		if unicode.IsSpace(r) || unicode.IsGraphic(r) {
			printable++
		}
	}

	if total == 0 || float64(printable)/float64(total) < minPrintableRatio {
		return ""
	}

	return strings.TrimSpace(text)
}

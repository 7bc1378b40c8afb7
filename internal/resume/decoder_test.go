package resume

import (
	"strings"
	"testing"
)

func TestDecodePlainText(t *testing.T) {
	decoder := NewTextDecoder()

	text := decoder.Decode([]byte("  Jane Doe\nPython, SQL, Docker\n"))
	if !strings.HasPrefix(text, "Jane Doe") {
		t.Fatalf("unexpected decoded text: %q", text)
	}
}

func TestDecodeFailsSoft(t *testing.T) {
	decoder := NewTextDecoder()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"invalid utf8", []byte{0xff, 0xfe, 0x00, 0x41}},
		{"mostly control bytes", []byte("\x01\x02\x03\x04\x05\x06ok")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decoder.Decode(tt.data); got != "" {
				t.Fatalf("expected empty text, got %q", got)
			}
		})
	}
}

package util

import "testing"

func TestHashBytes(t *testing.T) {
	payload := []byte("%PDF-1.4 sample")
	got := HashBytes(payload)
	if got != HashBytes(payload) {
		t.Fatalf("expected stable hash, got %s", got)
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("hash contains non-hex character: %c", ch)
		}
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
}

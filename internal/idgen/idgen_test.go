package idgen

import (
	"regexp"
	"strings"
	"testing"
)

func TestSessionID_Format(t *testing.T) {
	id, err := SessionID()
	if err != nil {
		t.Fatalf("SessionID() error: %v", err)
	}
	wantLen := len(SessionPrefix) + Length
	if len(id) != wantLen {
		t.Errorf("SessionID() length = %d, want %d (id=%q)", len(id), wantLen, id)
	}
	if !strings.HasPrefix(id, SessionPrefix) {
		t.Errorf("SessionID() = %q, want prefix %q", id, SessionPrefix)
	}
}

func TestItemKey_Charset(t *testing.T) {
	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(ItemPrefix) + `[a-zA-Z0-9]+$`)
	for i := 0; i < 100; i++ {
		key := ItemKey()
		if !pattern.MatchString(key) {
			t.Fatalf("ItemKey() = %q, does not match expected charset pattern", key)
		}
	}
}

func TestItemKey_Unique(t *testing.T) {
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		key := ItemKey()
		if seen[key] {
			t.Fatalf("ItemKey() produced duplicate %q on iteration %d", key, i)
		}
		seen[key] = true
	}
}

func TestGenerateWithPrefix_InvalidAlphabet(t *testing.T) {
	orig := Alphabet
	Alphabet = ""
	defer func() { Alphabet = orig }()

	if _, err := GenerateWithPrefix("x_"); err == nil {
		t.Error("expected error for empty alphabet")
	}
}

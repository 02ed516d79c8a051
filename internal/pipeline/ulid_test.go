package pipeline

import (
	"strings"
	"testing"
	"time"
)

func TestULID_FormatAndOrder(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	a := newULID(now)
	b := newULID(now)
	c := newULID(now.Add(time.Millisecond))

	for _, id := range []string{a, b, c} {
		if len(id) != 26 {
			t.Fatalf("expected 26 characters, got %q", id)
		}
		if strings.Trim(id, crockford) != "" {
			t.Errorf("unexpected characters in %q", id)
		}
	}
	if a == b {
		t.Errorf("expected distinct IDs within one millisecond, got %q twice", a)
	}
	if !(a < b && b < c) {
		t.Errorf("expected %q < %q < %q", a, b, c)
	}
	if a[:10] != b[:10] {
		t.Errorf("expected shared timestamp prefix, got %q and %q", a[:10], b[:10])
	}
}

func TestEncodeULID_Zero(t *testing.T) {
	if got := encodeULID([16]byte{}); got != strings.Repeat("0", 26) {
		t.Errorf("expected all zeros, got %q", got)
	}
	var max [16]byte
	for i := range max {
		max[i] = 0xff
	}
	if got := encodeULID(max); got != "7"+strings.Repeat("Z", 25) {
		t.Errorf("expected 7ZZZ..., got %q", got)
	}
}

package parser

import (
	"errors"
	"strings"
	"testing"
)

func TestPDFParser_InvalidInput(t *testing.T) {
	p := &PDFParser{}
	if _, err := p.Parse(strings.NewReader("definitely not a pdf"), "bad.pdf"); err == nil {
		t.Fatal("expected error for invalid pdf")
	}
}

func TestPDFDate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"D:20240102150405+01'00'", "2024-01-02T15:04:05+01:00"},
		{"D:20240102150405-05'30'", "2024-01-02T15:04:05-05:30"},
		{"D:20240102150405Z", "2024-01-02T15:04:05Z"},
		{"D:2024", "2024-01-01T00:00:00Z"},
		{"D:202403", "2024-03-01T00:00:00Z"},
		{"yesterday", "yesterday"},
	}
	for _, tt := range tests {
		if got := pdfDate(tt.in); got != tt.want {
			t.Errorf("pdfDate(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestRecovered(t *testing.T) {
	_, err := recovered("page 3", func() (int, error) {
		panic("bad xref")
	})
	if err == nil || !strings.Contains(err.Error(), "page 3") {
		t.Fatalf("expected recovered panic error, got %v", err)
	}

	want := errors.New("plain")
	if _, err := recovered("open", func() (int, error) { return 0, want }); !errors.Is(err, want) {
		t.Errorf("expected %v, got %v", want, err)
	}
}

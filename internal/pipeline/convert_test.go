package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dgallion1/doc2xhtml/internal/convert"
	"github.com/dgallion1/doc2xhtml/internal/doctree"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatHTML, false},
		{"html", FormatHTML, false},
		{"text", FormatText, false},
		{"pdf", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q): unexpected error state %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestConverter_HTML(t *testing.T) {
	c := Converter{Options: convert.DefaultOptions()}
	res, err := c.Convert(context.Background(), []byte("# Hello\n\nWorld."), "hello.md", FormatHTML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := string(res.Body)
	for _, want := range []string{
		`<!DOCTYPE html>`,
		`<div class="page">`,
		`<p>World.</p>`,
		`<meta name="resourceName" content="hello.md"/>`,
		`<li>Hello</li>`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, body)
		}
	}
	if res.Kind != doctree.KindMarkdown || res.Title != "Hello" || res.Pages != 1 {
		t.Errorf("unexpected result %v %q %d", res.Kind, res.Title, res.Pages)
	}
	if res.ContentType != FormatHTML.ContentType() {
		t.Errorf("expected content type %q, got %q", FormatHTML.ContentType(), res.ContentType)
	}
}

func TestConverter_Text(t *testing.T) {
	c := Converter{Options: convert.DefaultOptions()}
	res, err := c.Convert(context.Background(), []byte("one\ftwo"), "pages.txt", FormatText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Pages != 2 {
		t.Errorf("expected 2 pages, got %d", res.Pages)
	}
	body := string(res.Body)
	if !strings.Contains(body, "one") || !strings.Contains(body, "two") {
		t.Errorf("expected both pages in output, got %q", body)
	}
	if strings.Contains(body, "<") {
		t.Errorf("expected no markup in text output, got %q", body)
	}
}

func TestConverter_Unsupported(t *testing.T) {
	c := Converter{Options: convert.DefaultOptions()}
	if _, err := c.Convert(context.Background(), []byte("\x89PNG"), "image.png", FormatHTML); err == nil {
		t.Fatal("expected error for unsupported file")
	}
}

func TestConverter_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := Converter{Options: convert.DefaultOptions()}
	_, err := c.Convert(ctx, []byte("text"), "a.txt", FormatHTML)
	var failure *convert.ConversionFailure
	if !errors.As(err, &failure) {
		t.Fatalf("expected *convert.ConversionFailure, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

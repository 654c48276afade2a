package doc2pdf

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

const sampleMarkdown = `# Intro

Welcome.

## Getting Started

Steps below.

### Installation

Run the installer.
`

// fakePDFConverter records inputs and returns canned output without a browser.
type fakePDFConverter struct {
	gotHTML string
	gotOpts *pdfOptions
	result  []byte
	err     error
	closed  bool
}

func (f *fakePDFConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	f.gotHTML = htmlContent
	f.gotOpts = opts
	return f.result, f.err
}

func (f *fakePDFConverter) Close() error {
	f.closed = true
	return nil
}

func newTestConverter(t *testing.T, opts ...Option) (*Converter, *fakePDFConverter) {
	t.Helper()
	c, err := NewConverter(opts...)
	if err != nil {
		t.Fatalf("NewConverter() error: %v", err)
	}
	fake := &fakePDFConverter{result: []byte("%PDF-1.7")}
	c.pdfConverter = fake
	return c, fake
}

func TestConvertHTMLOnly(t *testing.T) {
	c, _ := newTestConverter(t)

	result, err := c.Convert(context.Background(), Input{
		Markdown:    sampleMarkdown,
		TOC:         &TOC{},
		AnchorLinks: &AnchorLinks{Depth: 2},
		HTMLOnly:    true,
	})
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}

	html := string(result.HTML)

	if len(result.PDF) != 0 {
		t.Error("HTMLOnly produced PDF bytes")
	}
	if !strings.Contains(html, `<nav class="toc" id="toc">`) {
		t.Error("missing TOC nav")
	}
	if !strings.Contains(html, `<h2 class="toc-title">Table of Contents</h2>`) {
		t.Error("missing localized TOC title")
	}
	if !strings.Contains(html, `<a href="#toc" class="anchor-link">`) {
		t.Error("missing anchor link targeting TOC")
	}
	if !strings.Contains(html, "<style>") || !strings.Contains(html, ".anchor-link-container") {
		t.Error("missing injected styles")
	}

	report := result.AnchorReport
	if report == nil {
		t.Fatal("AnchorReport is nil")
	}
	if len(report.Sections) != 2 {
		t.Fatalf("len(Sections) = %d, want 2 (depth filter)", len(report.Sections))
	}
	if report.LinksInserted != 1 {
		t.Errorf("LinksInserted = %d, want 1", report.LinksInserted)
	}
	if report.Sections[0].Title != "Intro" || report.Sections[0].HasAnchorLink {
		t.Errorf("Sections[0] = %+v, want Intro without link", report.Sections[0])
	}
	if report.Sections[1].Title != "Getting Started" || !report.Sections[1].HasAnchorLink {
		t.Errorf("Sections[1] = %+v, want Getting Started with link", report.Sections[1])
	}
}

func TestConvertWithoutTOC(t *testing.T) {
	c, _ := newTestConverter(t)

	result, err := c.Convert(context.Background(), Input{
		Markdown:    "# Only\n\nBody text.\n",
		AnchorLinks: &AnchorLinks{},
		HTMLOnly:    true,
	})
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}

	html := string(result.HTML)
	if !strings.Contains(html, `<a id="top"></a>`) {
		t.Error("missing top anchor target")
	}
	if !strings.Contains(html, `<a href="#top" class="anchor-link">`) {
		t.Error("anchor link does not target #top")
	}
	if strings.Contains(html, `id="toc"`) {
		t.Error("unexpected TOC markup")
	}
}

func TestConvertWithoutAnchorLinks(t *testing.T) {
	c, _ := newTestConverter(t)

	result, err := c.Convert(context.Background(), Input{
		Markdown: sampleMarkdown,
		TOC:      &TOC{},
		HTMLOnly: true,
	})
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}

	if result.AnchorReport != nil {
		t.Error("AnchorReport set without anchor links requested")
	}
	if strings.Contains(string(result.HTML), "anchor-link-container") {
		t.Error("anchor markup present without anchor links requested")
	}
}

func TestConvertAuditOnly(t *testing.T) {
	c, _ := newTestConverter(t)

	result, err := c.Convert(context.Background(), Input{
		Markdown:    sampleMarkdown,
		TOC:         &TOC{},
		AnchorLinks: &AnchorLinks{Depth: AnchorDepthNone},
		HTMLOnly:    true,
	})
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}

	report := result.AnchorReport
	if report == nil {
		t.Fatal("AnchorReport is nil")
	}
	if report.LinksInserted != 0 {
		t.Errorf("LinksInserted = %d, want 0", report.LinksInserted)
	}
	if len(report.Sections) != 3 {
		t.Errorf("len(Sections) = %d, want 3", len(report.Sections))
	}
	if strings.Contains(string(result.HTML), `class="anchor-link"`) {
		t.Error("audit-only mode inserted link markup")
	}
}

func TestConvertValidation(t *testing.T) {
	c, _ := newTestConverter(t)

	tests := []struct {
		name    string
		input   Input
		wantErr error
	}{
		{"empty markdown", Input{}, ErrEmptyMarkdown},
		{"bad page size", Input{Markdown: "# x", Page: &PageSettings{Size: "huge", Orientation: "portrait", Margin: 0.5}}, ErrInvalidPageSize},
		{"bad footer position", Input{Markdown: "# x", Footer: &Footer{Position: "top"}}, ErrInvalidFooterPosition},
		{"bad toc depth", Input{Markdown: "# x", TOC: &TOC{MaxDepth: 9}}, ErrInvalidTOCDepth},
		{"bad anchor depth", Input{Markdown: "# x", AnchorLinks: &AnchorLinks{Depth: 1}}, ErrInvalidAnchorDepth},
		{"bad anchor alignment", Input{Markdown: "# x", AnchorLinks: &AnchorLinks{Alignment: "wide"}}, ErrInvalidAnchorAlignment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.Convert(context.Background(), tt.input); !errors.Is(err, tt.wantErr) {
				t.Errorf("Convert() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConvertProducesPDF(t *testing.T) {
	c, fake := newTestConverter(t, WithTimeout(10*time.Second))

	result, err := c.Convert(context.Background(), Input{
		Markdown:    sampleMarkdown,
		TOC:         &TOC{},
		AnchorLinks: &AnchorLinks{},
	})
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}

	if string(result.PDF) != "%PDF-1.7" {
		t.Errorf("PDF = %q", result.PDF)
	}
	if !strings.Contains(fake.gotHTML, "<style>") {
		t.Error("PDF stage received HTML without injected styles")
	}
	// A small document must not have its timeout scaled.
	if fake.gotOpts.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", fake.gotOpts.Timeout)
	}
}

func TestConvertLocale(t *testing.T) {
	c, _ := newTestConverter(t, WithLocale("fr"))

	result, err := c.Convert(context.Background(), Input{
		Markdown:    sampleMarkdown,
		TOC:         &TOC{},
		AnchorLinks: &AnchorLinks{},
		HTMLOnly:    true,
	})
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}

	html := string(result.HTML)
	if !strings.Contains(html, "Table des matières") {
		t.Error("missing French TOC title")
	}
	if !strings.Contains(html, "⬆ Retour au sommaire") {
		t.Error("missing French anchor link label")
	}
}

func TestConvertCustomText(t *testing.T) {
	c, _ := newTestConverter(t)

	result, err := c.Convert(context.Background(), Input{
		Markdown:    "# Only\n\nText.\n",
		TOC:         &TOC{Title: "Index"},
		AnchorLinks: &AnchorLinks{Text: "Go back"},
		HTMLOnly:    true,
	})
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}

	html := string(result.HTML)
	if !strings.Contains(html, `<h2 class="toc-title">Index</h2>`) {
		t.Error("custom TOC title not used")
	}
	if !strings.Contains(html, ">Go back</span>") {
		t.Error("custom anchor text not used")
	}
}

func TestConvertUserCSSComesLast(t *testing.T) {
	c, _ := newTestConverter(t)

	result, err := c.Convert(context.Background(), Input{
		Markdown: "# X\n\nY.\n",
		CSS:      "body { color: navy; }",
		HTMLOnly: true,
	})
	if err != nil {
		t.Fatalf("Convert() error: %v", err)
	}

	html := string(result.HTML)
	base := strings.Index(html, "font-family: sans-serif")
	user := strings.Index(html, "color: navy")
	if base == -1 || user == -1 {
		t.Fatalf("missing CSS sections: base=%d user=%d", base, user)
	}
	if user < base {
		t.Error("user CSS not appended after base styles")
	}
}

func TestConvertCanceledContext(t *testing.T) {
	c, _ := newTestConverter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Convert(ctx, Input{Markdown: "# X"}); !errors.Is(err, context.Canceled) {
		t.Errorf("Convert() error = %v, want context.Canceled", err)
	}
}

func TestNewConverterUnknownLocale(t *testing.T) {
	if _, err := NewConverter(WithLocale("xx")); err == nil {
		t.Error("expected error for unknown locale, got nil")
	}
}

func TestConverterClose(t *testing.T) {
	c, fake := newTestConverter(t)
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if !fake.closed {
		t.Error("Close() did not reach the PDF converter")
	}
}

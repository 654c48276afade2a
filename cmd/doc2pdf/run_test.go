package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/docfold/go-doc2pdf/internal/config"
)

func TestValidateMarkdownExtension(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"doc.md", false},
		{"doc.markdown", false},
		{"DOC.MD", false},
		{"doc.txt", true},
		{"doc", true},
		{"doc.md.bak", true},
	}

	for _, tt := range tests {
		err := validateMarkdownExtension(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateMarkdownExtension(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidExtension) {
			t.Errorf("error = %v, want ErrInvalidExtension", err)
		}
	}
}

func TestOutputPathFor(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		input    string
		output   string
		multiple bool
		htmlOnly bool
		want     string
	}{
		{
			name:  "derived pdf next to input",
			input: "docs/guide.md",
			want:  "docs/guide.pdf",
		},
		{
			name:     "derived html in html-only mode",
			input:    "guide.md",
			htmlOnly: true,
			want:     "guide.html",
		},
		{
			name:   "explicit output file",
			input:  "guide.md",
			output: "out/final.pdf",
			want:   "out/final.pdf",
		},
		{
			name:     "multiple inputs treat output as directory",
			input:    "docs/guide.md",
			output:   "out",
			multiple: true,
			want:     filepath.Join("out", "guide.pdf"),
		},
		{
			name:   "existing directory output",
			input:  "guide.md",
			output: dir,
			want:   filepath.Join(dir, "guide.pdf"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPathFor(tt.input, tt.output, tt.multiple, tt.htmlOnly)
			if got != tt.want {
				t.Errorf("outputPathFor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMergeFlags(t *testing.T) {
	t.Run("flags win over config", func(t *testing.T) {
		cfg := config.Default()
		cfg.Locale = "fr"
		cfg.TOC.Title = "Sommaire"
		cfg.AnchorLinks.Depth = "4"

		f := &convertFlags{locale: "pt"}
		f.toc.title = "Índice"
		f.anchor.depth = "2"
		mergeFlags(cfg, f)

		if cfg.Locale != "pt" {
			t.Errorf("Locale = %q", cfg.Locale)
		}
		if cfg.TOC.Title != "Índice" {
			t.Errorf("TOC.Title = %q", cfg.TOC.Title)
		}
		if cfg.AnchorLinks.Depth != "2" {
			t.Errorf("AnchorLinks.Depth = %q", cfg.AnchorLinks.Depth)
		}
	})

	t.Run("disable switches turn features off", func(t *testing.T) {
		cfg := config.Default()
		f := &convertFlags{}
		f.toc.disabled = true
		f.anchor.disabled = true
		mergeFlags(cfg, f)

		if cfg.TOC.Enabled {
			t.Error("TOC still enabled")
		}
		if cfg.AnchorLinks.Enabled {
			t.Error("anchor links still enabled")
		}
	})

	t.Run("footer flags enable the footer", func(t *testing.T) {
		cfg := config.Default()
		f := &convertFlags{}
		f.footer.pageNumber = true
		mergeFlags(cfg, f)

		if !cfg.Footer.Enabled || !cfg.Footer.ShowPageNumber {
			t.Errorf("footer = %+v", cfg.Footer)
		}
	})

	t.Run("config conveniences fill empty flags", func(t *testing.T) {
		cfg := config.Default()
		cfg.CSS.Path = "style.css"
		cfg.Output.DefaultDir = "build"

		f := &convertFlags{}
		mergeFlags(cfg, f)

		if f.css != "style.css" {
			t.Errorf("css = %q", f.css)
		}
		if f.output != "build" {
			t.Errorf("output = %q", f.output)
		}
	})

	t.Run("quiet and verbose set logging level", func(t *testing.T) {
		cfg := config.Default()
		f := &convertFlags{}
		f.common.quiet = true
		mergeFlags(cfg, f)
		if cfg.Logging.Level != "none" {
			t.Errorf("Level = %q, want none", cfg.Logging.Level)
		}

		cfg = config.Default()
		f = &convertFlags{}
		f.common.verbose = true
		mergeFlags(cfg, f)
		if cfg.Logging.Level != "debug" {
			t.Errorf("Level = %q, want debug", cfg.Logging.Level)
		}
	})
}

func TestBuildInput(t *testing.T) {
	t.Run("enabled features map to input", func(t *testing.T) {
		cfg := config.Default()
		cfg.TOC.Title = "Contents"
		cfg.AnchorLinks.Depth = "none"
		cfg.Footer.Enabled = true
		cfg.Footer.Text = "draft"
		cfg.Page.Size = "a4"

		input, err := buildInput(cfg, &convertFlags{htmlOnly: true}, "# X", "p{}")
		if err != nil {
			t.Fatalf("buildInput() error: %v", err)
		}

		if input.Markdown != "# X" || input.CSS != "p{}" || !input.HTMLOnly {
			t.Errorf("input = %+v", input)
		}
		if input.TOC == nil || input.TOC.Title != "Contents" {
			t.Errorf("TOC = %+v", input.TOC)
		}
		if input.AnchorLinks == nil || input.AnchorLinks.Depth != -1 {
			t.Errorf("AnchorLinks = %+v", input.AnchorLinks)
		}
		if input.Footer == nil || input.Footer.Text != "draft" {
			t.Errorf("Footer = %+v", input.Footer)
		}
		if input.Page == nil || input.Page.Size != "a4" {
			t.Errorf("Page = %+v", input.Page)
		}
		// Partial page config is padded with defaults.
		if input.Page.Orientation != "portrait" || input.Page.Margin != 0.5 {
			t.Errorf("Page defaults = %+v", input.Page)
		}
	})

	t.Run("disabled features stay nil", func(t *testing.T) {
		cfg := config.Default()
		cfg.TOC.Enabled = false
		cfg.AnchorLinks.Enabled = false

		input, err := buildInput(cfg, &convertFlags{}, "# X", "")
		if err != nil {
			t.Fatalf("buildInput() error: %v", err)
		}
		if input.TOC != nil || input.AnchorLinks != nil || input.Footer != nil || input.Page != nil {
			t.Errorf("input = %+v", input)
		}
	})

	t.Run("invalid depth surfaces", func(t *testing.T) {
		cfg := config.Default()
		cfg.AnchorLinks.Depth = "9"
		if _, err := buildInput(cfg, &convertFlags{}, "# X", ""); !errors.Is(err, config.ErrInvalidDepthValue) {
			t.Errorf("error = %v, want ErrInvalidDepthValue", err)
		}
	})
}

func TestLoadConfigHint(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, config.ErrConfigNotFound) {
		t.Fatalf("error = %v, want ErrConfigNotFound", err)
	}
}

func TestRunConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "starter.yaml")
	if err := runConfigInit([]string{path}); err != nil {
		t.Fatalf("runConfigInit() error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if _, err := config.Load(path); err != nil {
		t.Errorf("starter config does not load: %v", err)
	}
}

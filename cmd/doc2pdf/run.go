package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	doc2pdf "github.com/docfold/go-doc2pdf"
	"github.com/docfold/go-doc2pdf/internal/config"
	"github.com/docfold/go-doc2pdf/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInputs         = errors.New("no input files (usage: doc2pdf convert [flags] <input.md> ...)")
	ErrInvalidExtension = errors.New("file must have .md or .markdown extension")
	ErrInvalidTimeout   = errors.New("invalid timeout value")
)

// runConvert executes the convert command.
func runConvert(args []string) error {
	flags, inputs, err := parseConvertFlags(args)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return ErrNoInputs
	}

	cfg, err := loadConfig(flags.common.config)
	if err != nil {
		return err
	}
	mergeFlags(cfg, flags)

	logger, flush, err := buildLogger(cfg.Logging.Level, cfg.Logging.File, cfg.Logging.Mode)
	if err != nil {
		return err
	}
	defer flush()

	opts := []doc2pdf.Option{
		doc2pdf.WithLogger(logger),
		doc2pdf.WithLocale(cfg.Locale),
	}
	if flags.timeout != "" {
		d, err := time.ParseDuration(flags.timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: %q%s", ErrInvalidTimeout, flags.timeout, hints.ForTimeout())
		}
		opts = append(opts, doc2pdf.WithTimeout(d))
	}

	conv, err := doc2pdf.NewConverter(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	ctx := context.Background()
	var errs error
	for _, input := range inputs {
		outPath := outputPathFor(input, flags.output, len(inputs) > 1, flags.htmlOnly)
		if err := convertFile(ctx, conv, cfg, flags, input, outPath, logger); err != nil {
			logger.Error("conversion failed", zap.String("input", input), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", input, err))
			continue
		}
		logger.Info("created", zap.String("output", outPath))
	}
	return errs
}

// loadConfig resolves the effective configuration: defaults when no config
// is named, the loaded file otherwise, with an actionable hint on not-found.
func loadConfig(nameOrPath string) (*config.Config, error) {
	if nameOrPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(nameOrPath)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(config.SearchPaths(nameOrPath)))
		}
		return nil, err
	}
	return cfg, nil
}

// mergeFlags applies command line flags over the loaded config (flags win).
// Config-only conveniences (css.path, output.defaultDir) fill in flags the
// user left empty.
func mergeFlags(cfg *config.Config, f *convertFlags) {
	if f.css == "" {
		f.css = cfg.CSS.Path
	}
	if f.output == "" {
		f.output = cfg.Output.DefaultDir
	}
	if f.locale != "" {
		cfg.Locale = f.locale
	}
	if f.common.quiet {
		cfg.Logging.Level = "none"
	}
	if f.common.verbose {
		cfg.Logging.Level = "debug"
	}
	if f.common.logFile != "" {
		cfg.Logging.File = f.common.logFile
	}
	if f.common.logMode != "" {
		cfg.Logging.Mode = f.common.logMode
	}

	if f.page.size != "" {
		cfg.Page.Size = f.page.size
	}
	if f.page.orientation != "" {
		cfg.Page.Orientation = f.page.orientation
	}
	if f.page.margin != 0 {
		cfg.Page.Margin = f.page.margin
	}

	if f.footer.disabled {
		cfg.Footer.Enabled = false
	} else if f.footer.position != "" || f.footer.text != "" || f.footer.date != "" ||
		f.footer.status != "" || f.footer.pageNumber {
		cfg.Footer.Enabled = true
		if f.footer.position != "" {
			cfg.Footer.Position = f.footer.position
		}
		if f.footer.text != "" {
			cfg.Footer.Text = f.footer.text
		}
		if f.footer.date != "" {
			cfg.Footer.Date = f.footer.date
		}
		if f.footer.status != "" {
			cfg.Footer.Status = f.footer.status
		}
		if f.footer.pageNumber {
			cfg.Footer.ShowPageNumber = true
		}
	}

	if f.toc.disabled {
		cfg.TOC.Enabled = false
	} else {
		if f.toc.title != "" {
			cfg.TOC.Title = f.toc.title
		}
		if f.toc.maxDepth != 0 {
			cfg.TOC.MaxDepth = f.toc.maxDepth
		}
	}

	if f.anchor.disabled {
		cfg.AnchorLinks.Enabled = false
	} else {
		if f.anchor.depth != "" {
			cfg.AnchorLinks.Depth = f.anchor.depth
		}
		if f.anchor.text != "" {
			cfg.AnchorLinks.Text = f.anchor.text
		}
		if f.anchor.alignment != "" {
			cfg.AnchorLinks.Alignment = f.anchor.alignment
		}
	}
}

// buildInput assembles the library input from config, flags, and content.
func buildInput(cfg *config.Config, f *convertFlags, markdown, css string) (doc2pdf.Input, error) {
	input := doc2pdf.Input{
		Markdown: markdown,
		CSS:      css,
		HTMLOnly: f.htmlOnly,
	}

	if cfg.Page.Size != "" || cfg.Page.Orientation != "" || cfg.Page.Margin != 0 {
		page := doc2pdf.DefaultPageSettings()
		if cfg.Page.Size != "" {
			page.Size = cfg.Page.Size
		}
		if cfg.Page.Orientation != "" {
			page.Orientation = cfg.Page.Orientation
		}
		if cfg.Page.Margin != 0 {
			page.Margin = cfg.Page.Margin
		}
		input.Page = page
	}

	if cfg.Footer.Enabled {
		input.Footer = &doc2pdf.Footer{
			Position:       cfg.Footer.Position,
			ShowPageNumber: cfg.Footer.ShowPageNumber,
			Date:           cfg.Footer.Date,
			Status:         cfg.Footer.Status,
			Text:           cfg.Footer.Text,
		}
	}

	if cfg.TOC.Enabled {
		input.TOC = &doc2pdf.TOC{
			Title:    cfg.TOC.Title,
			MaxDepth: cfg.TOC.MaxDepth,
		}
	}

	if cfg.AnchorLinks.Enabled {
		depth, err := cfg.AnchorLinks.DepthValue()
		if err != nil {
			return doc2pdf.Input{}, err
		}
		input.AnchorLinks = &doc2pdf.AnchorLinks{
			Depth:     depth,
			Text:      cfg.AnchorLinks.Text,
			Alignment: cfg.AnchorLinks.Alignment,
		}
	}

	return input, nil
}

// convertFile converts one markdown file and writes the output.
func convertFile(ctx context.Context, conv *doc2pdf.Converter, cfg *config.Config, f *convertFlags, inputPath, outputPath string, logger *zap.Logger) error {
	if err := validateMarkdownExtension(inputPath); err != nil {
		return err
	}

	mdContent, err := os.ReadFile(inputPath) // #nosec G304 -- input path is user-provided
	if err != nil {
		return fmt.Errorf("reading markdown: %w", err)
	}

	css := ""
	if f.css != "" {
		cssBytes, err := os.ReadFile(f.css) // #nosec G304 -- css path is user-provided
		if err != nil {
			return fmt.Errorf("reading CSS: %w", err)
		}
		css = string(cssBytes)
	}

	input, err := buildInput(cfg, f, string(mdContent), css)
	if err != nil {
		return err
	}

	result, err := conv.Convert(ctx, input)
	if err != nil {
		if errors.Is(err, doc2pdf.ErrBrowserConnect) {
			return fmt.Errorf("%w%s", err, hints.ForBrowserConnect())
		}
		return err
	}

	logAnchorReport(logger, inputPath, result.AnchorReport)

	data := result.PDF
	if f.htmlOnly {
		data = result.HTML
	}
	if err := os.WriteFile(outputPath, data, 0o600); err != nil {
		return fmt.Errorf("writing output: %w%s", err, hints.ForOutputDirectory())
	}
	return nil
}

// logAnchorReport logs the anchor link audit trail: a summary at info level
// and one debug entry per processed section.
func logAnchorReport(logger *zap.Logger, inputPath string, report *doc2pdf.AnchorReport) {
	if report == nil {
		return
	}
	logger.Info("anchor links",
		zap.String("input", inputPath),
		zap.Int("inserted", report.LinksInserted),
		zap.Int("sections", len(report.Sections)))
	for _, s := range report.Sections {
		logger.Debug("section",
			zap.String("title", s.Title),
			zap.Int("level", s.Level),
			zap.String("anchor", s.Anchor),
			zap.Bool("link", s.HasAnchorLink))
	}
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".md" && ext != ".markdown" {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, ext)
	}
	return nil
}

// outputPathFor derives the output path for one input file.
func outputPathFor(inputPath, output string, multiple, htmlOnly bool) string {
	ext := ".pdf"
	if htmlOnly {
		ext = ".html"
	}

	derived := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ext

	switch {
	case output == "":
		return derived
	case multiple || isDirectory(output):
		return filepath.Join(output, filepath.Base(derived))
	default:
		return output
	}
}

// isDirectory returns true if path exists and is a directory.
func isDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// runConfigInit writes a starter config file.
func runConfigInit(args []string) error {
	path := "doc2pdf.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if err := config.Default().Save(path); err != nil {
		return err
	}
	fmt.Printf("Created %s\n", path)
	return nil
}

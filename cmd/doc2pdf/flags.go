package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	logFile string
	logMode string
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// footerFlags holds footer-related flags.
type footerFlags struct {
	position   string
	text       string
	date       string
	status     string
	pageNumber bool
	disabled   bool
}

// tocFlags holds table of contents flags.
type tocFlags struct {
	title    string
	maxDepth int
	disabled bool
}

// anchorFlags holds back-to-contents anchor link flags.
type anchorFlags struct {
	depth     string // "none" or "2".."6"
	text      string
	alignment string
	disabled  bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common   commonFlags
	output   string
	timeout  string
	locale   string
	css      string
	htmlOnly bool
	page     pageFlags
	footer   footerFlags
	toc      tocFlags
	anchor   anchorFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-section details")
	fs.StringVar(&f.logFile, "log-file", "", "also log to file")
	fs.StringVar(&f.logMode, "log-mode", "", "log file mode: append, overwrite")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

// addFooterFlags adds footer flags to a FlagSet.
func addFooterFlags(fs *flag.FlagSet, f *footerFlags) {
	fs.StringVar(&f.position, "footer-position", "", "footer position: left, center, right")
	fs.StringVar(&f.text, "footer-text", "", "custom footer text")
	fs.StringVar(&f.date, "footer-date", "", "footer date text")
	fs.StringVar(&f.status, "footer-status", "", "footer status text")
	fs.BoolVar(&f.pageNumber, "footer-page-number", false, "show page numbers in footer")
	fs.BoolVar(&f.disabled, "no-footer", false, "disable footer")
}

// addTOCFlags adds TOC flags to a FlagSet.
func addTOCFlags(fs *flag.FlagSet, f *tocFlags) {
	fs.StringVar(&f.title, "toc-title", "", "table of contents heading")
	fs.IntVar(&f.maxDepth, "toc-max-depth", 0, "max heading depth for TOC (1-6, default: 3)")
	fs.BoolVar(&f.disabled, "no-toc", false, "disable table of contents")
}

// addAnchorFlags adds anchor link flags to a FlagSet.
func addAnchorFlags(fs *flag.FlagSet, f *anchorFlags) {
	fs.StringVar(&f.depth, "anchor-depth", "", "max heading depth for back-to-contents links (none, 2-6)")
	fs.StringVar(&f.text, "anchor-text", "", "back-to-contents link label")
	fs.StringVar(&f.alignment, "anchor-align", "", "link alignment: left, center, right")
	fs.BoolVar(&f.disabled, "no-anchor-links", false, "disable back-to-contents links")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.locale, "locale", "", "locale for generated text (en, fr, pt)")
	fs.StringVar(&f.css, "css", "", "CSS file appended to the stylesheet")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "output HTML only, skip PDF")

	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addFooterFlags(fs, &f.footer)
	addTOCFlags(fs, &f.toc)
	addAnchorFlags(fs, &f.anchor)

	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// printConvertUsage writes the convert command usage text.
func printConvertUsage(w *os.File) {
	fmt.Fprint(w, `usage: doc2pdf convert [flags] <input.md> [input2.md ...]

Converts Markdown files to PDF with a table of contents and back-to-contents
anchor links after each section.

Flags:
  -o, --output            output file (single input) or directory
  -t, --timeout           PDF generation timeout (e.g., 30s, 2m)
  -c, --config            config file name or path
      --css               CSS file appended to the stylesheet
      --locale            locale for generated text (en, fr, pt)
      --html-only         output HTML only, skip PDF
      --toc-title         table of contents heading
      --toc-max-depth     max heading depth for TOC (1-6)
      --no-toc            disable table of contents
      --anchor-depth      max heading depth for links (none, 2-6)
      --anchor-text       back-to-contents link label
      --anchor-align      link alignment: left, center, right
      --no-anchor-links   disable back-to-contents links
  -p, --page-size         page size: letter, a4, legal
      --orientation       page orientation: portrait, landscape
      --margin            page margin in inches (0.25-3.0)
      --footer-*          footer options (see doc2pdf help)
  -q, --quiet             only show errors
  -v, --verbose           show per-section details
`)
}

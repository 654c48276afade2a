// Package doc2pdf converts Markdown documents to PDF using headless Chrome,
// inserting "back to contents" navigation links after each section.
//
// # Quick Start
//
// Create a converter, convert markdown, and close when done:
//
//	conv, err := doc2pdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, doc2pdf.Input{
//	    Markdown:    "# Hello\n\nWorld",
//	    TOC:         &doc2pdf.TOC{},
//	    AnchorLinks: &doc2pdf.AnchorLinks{},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.pdf", result.PDF, 0644)
//
// The result contains the PDF bytes (result.PDF), the intermediate HTML
// (result.HTML) for debugging, and an anchor link report
// (result.AnchorReport) listing every section that was in scope and whether
// a link was inserted after it. Use Input.HTMLOnly to skip PDF generation.
//
// # Conversion Pipeline
//
//  1. Markdown to HTML via Goldmark (GFM, auto heading IDs, highlighting)
//  2. TOC injection (or a #top anchor when no TOC is requested)
//  3. Anchor link insertion after each eligible section
//  4. CSS injection (print rules, anchor link styles, user CSS)
//  5. PDF rendering via headless Chrome (go-rod), with the render timeout
//     scaled for content complexity
//
// # Anchor Links
//
// Links are inserted after the last complete structural element of each
// section (paragraph, table, list, blockquote, code block, admonition or
// diagram container) so they never land mid-table or mid-list. A section
// whose next heading is one of its own sub-headings gets no link; it is
// still recorded in the report with HasAnchorLink=false. Per-section
// failures (a heading id that does not appear in the HTML) are logged and
// recorded without aborting the rest of the document.
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run. For containers and CI
// environments, set ROD_NO_SANDBOX=1 to disable the Chrome sandbox and
// ROD_BROWSER_BIN to specify a custom Chrome binary.
package doc2pdf

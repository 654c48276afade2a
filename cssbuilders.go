package doc2pdf

import (
	"fmt"
	"strings"

	"github.com/docfold/go-doc2pdf/internal/pipeline"
)

// defaultFontFamily is the standard font stack for generated content.
const defaultFontFamily = "sans-serif"

// Orphan/widow line minimums for print layout.
const (
	DefaultOrphans = 3
	DefaultWidows  = 3
)

// buildPrintCSS generates the always-on print stylesheet: heading
// protection, orphan/widow control, and TOC styling.
func buildPrintCSS() string {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf(`
/* Base */
body {
  font-family: %s;
  line-height: 1.6;
}
`, defaultFontFamily))

	buf.WriteString(`
/* Page breaks: prevent heading alone at page bottom */
h1, h2, h3, h4, h5, h6 {
  break-after: avoid;
  page-break-after: avoid;
  break-inside: avoid;
  page-break-inside: avoid;
}
`)

	buf.WriteString(fmt.Sprintf(`
/* Page breaks: orphan/widow control */
p, li, dd, dt, blockquote {
  orphans: %d;
  widows: %d;
}
`, DefaultOrphans, DefaultWidows))

	buf.WriteString(`
/* Table of contents */
nav.toc {
  break-after: page;
  page-break-after: always;
}
nav.toc ol {
  list-style: none;
  padding-left: 1.25em;
}
nav.toc a {
  text-decoration: none;
}
`)

	return buf.String()
}

// AnchorStyles returns the CSS block for anchor link markup built from the
// given options (nil means defaults). Callers composing their own stylesheet
// embed this; Convert does it automatically.
func AnchorStyles(opts *AnchorLinks) string {
	data := toAnchorLinksData(opts, false)
	return pipeline.NewAnchorLinkInjection(data, nil, nil).Styles()
}

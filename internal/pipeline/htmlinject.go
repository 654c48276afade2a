package pipeline

import (
	"context"
	"html"
	"strconv"
	"strings"
)

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
// CSS content is sanitized to prevent injection attacks.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" || ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	if pos, ok := bodyOpenEnd(htmlContent); ok {
		return htmlContent[:pos] + styleBlock + htmlContent[pos:]
	}

	return styleBlock + htmlContent
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// bodyOpenEnd finds the offset just past the closing > of the <body...> tag.
func bodyOpenEnd(htmlContent string) (int, bool) {
	idx := strings.Index(strings.ToLower(htmlContent), "<body")
	if idx == -1 {
		return 0, false
	}
	closeIdx := strings.Index(htmlContent[idx:], ">")
	if closeIdx == -1 {
		return 0, false
	}
	return idx + closeIdx + 1, true
}

// topAnchorMarkup is the navigation target used by anchor links when no TOC
// exists in the document.
const topAnchorMarkup = `<a id="top"></a>`

// EnsureTopAnchor guarantees an id="top" navigation target at the start of
// the document body. A document that already carries id="top" is returned
// unchanged.
func EnsureTopAnchor(htmlContent string) string {
	if strings.Contains(htmlContent, `id="top"`) {
		return htmlContent
	}
	if pos, ok := bodyOpenEnd(htmlContent); ok {
		return htmlContent[:pos] + topAnchorMarkup + htmlContent[pos:]
	}
	return topAnchorMarkup + htmlContent
}

// TOCData holds TOC configuration for injection.
type TOCData struct {
	Title    string
	MaxDepth int
	Headings []Heading // extracted upstream, shared with the anchor link stage
}

// TOCInjector defines the contract for TOC injection into HTML.
type TOCInjector interface {
	InjectTOC(ctx context.Context, htmlContent string, data *TOCData) (string, error)
}

// TOCInjection implements TOCInjector.
type TOCInjection struct{}

// NewTOCInjection creates a new TOC injector.
func NewTOCInjection() *TOCInjection {
	return &TOCInjection{}
}

// InjectTOC renders a numbered TOC from the supplied headings and injects it
// after the <body> tag. The generated <nav> carries id="toc" so back-to-TOC
// anchor links can target it. If data is nil or no heading is within depth,
// the HTML is returned unchanged.
func (t *TOCInjection) InjectTOC(ctx context.Context, htmlContent string, data *TOCData) (string, error) {
	if data == nil {
		return htmlContent, nil
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	headings := FilterHeadingsByDepth(data.Headings, data.MaxDepth)
	if len(headings) == 0 {
		return htmlContent, nil
	}

	tocHTML := generateNumberedTOC(headings, data.Title)

	if pos, ok := bodyOpenEnd(htmlContent); ok {
		return htmlContent[:pos] + tocHTML + htmlContent[pos:], nil
	}
	return tocHTML + htmlContent, nil
}

// numberingState tracks hierarchical numbering for TOC entries.
// Supports normalization (first heading becomes level 1) and gap skipping.
type numberingState struct {
	counters     [6]int
	minLevelSeen int
	lastLevel    int
}

// next returns the next number string and effective depth for the given
// heading level, handling normalization and gap skipping (H1 -> H3 is
// treated as a direct child, depth 2 rather than 3).
func (n *numberingState) next(level int) (numStr string, effectiveDepth int) {
	if n.minLevelSeen == 0 {
		n.minLevelSeen = level
	}

	effectiveDepth = level - n.minLevelSeen + 1
	if effectiveDepth < 1 {
		effectiveDepth = 1
	}
	if n.lastLevel > 0 && effectiveDepth > n.lastLevel+1 {
		effectiveDepth = n.lastLevel + 1
	}

	for i := effectiveDepth; i < 6; i++ {
		n.counters[i] = 0
	}
	n.counters[effectiveDepth-1]++
	n.lastLevel = effectiveDepth

	var parts []string
	for i := 0; i < effectiveDepth; i++ {
		parts = append(parts, strconv.Itoa(n.counters[i]))
	}
	return strings.Join(parts, ".") + ".", effectiveDepth
}

// generateNumberedTOC creates HTML for a numbered table of contents.
func generateNumberedTOC(headings []Heading, title string) string {
	if len(headings) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString(`<nav class="toc" id="toc">`)

	if title != "" {
		buf.WriteString(`<h2 class="toc-title">`)
		buf.WriteString(html.EscapeString(title))
		buf.WriteString(`</h2>`)
	}

	buf.WriteString(`<ol class="toc-list">`)

	numbering := &numberingState{}
	openDepth := 1 // the root list is open; nested lists open inside the current <li>

	for i, h := range headings {
		num, effectiveDepth := numbering.next(h.Level)

		switch {
		case i == 0:
			// First entry: normalization guarantees depth 1, nothing to close.
		case effectiveDepth > openDepth:
			for ; openDepth < effectiveDepth; openDepth++ {
				buf.WriteString(`<ol>`)
			}
		default:
			// Close nested lists when returning to a shallower level, then
			// close the sibling entry. The root list stays open.
			for ; openDepth > effectiveDepth; openDepth-- {
				buf.WriteString(`</li></ol>`)
			}
			buf.WriteString(`</li>`)
		}

		buf.WriteString(`<li><a href="`)
		buf.WriteString(html.EscapeString(h.Anchor))
		buf.WriteString(`">`)
		buf.WriteString(num)
		buf.WriteString(` `)
		buf.WriteString(html.EscapeString(h.Text))
		buf.WriteString(`</a>`)
	}

	for ; openDepth > 1; openDepth-- {
		buf.WriteString(`</li></ol>`)
	}

	buf.WriteString(`</li></ol></nav>`)
	return buf.String()
}

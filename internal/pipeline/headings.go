package pipeline

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

// Heading is one structural marker (h1-h6) extracted from rendered HTML.
// Anchor is the href form of the id ("#" prefix included); the anchor link
// engine strips the prefix before matching id attributes.
type Heading struct {
	Level  int
	Text   string
	ID     string
	Anchor string
}

// headingTagPattern matches h1-h6 tags with an id attribute.
// Captures: 1=level, 2=id, 3=inner HTML (may contain inline tags).
var headingTagPattern = regexp.MustCompile(`(?is)<h([1-6])[^>]*\bid="([^"]*)"[^>]*>(.*?)</h[1-6]>`)

// htmlTagPattern matches HTML tags for stripping from heading text.
var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// stripHTMLTags removes HTML tags from a string, decodes entities, and trims
// whitespace. Decoding keeps the text plain so consumers that re-escape it
// (the TOC renderer) do not double-encode entities.
func stripHTMLTags(s string) string {
	return strings.TrimSpace(html.UnescapeString(htmlTagPattern.ReplaceAllString(s, "")))
}

// ExtractHeadings returns all id-carrying headings in document order.
// Headings without an id are skipped: they cannot serve as navigation
// targets and the anchor link engine treats a missing anchor as an explicit
// per-section failure rather than synthesizing one.
func ExtractHeadings(htmlContent string) []Heading {
	matches := headingTagPattern.FindAllStringSubmatch(htmlContent, -1)
	if len(matches) == 0 {
		return nil
	}

	var headings []Heading
	for _, m := range matches {
		if m[2] == "" {
			continue
		}
		level, _ := strconv.Atoi(m[1])
		headings = append(headings, Heading{
			Level:  level,
			Text:   stripHTMLTags(m[3]),
			ID:     m[2],
			Anchor: "#" + m[2],
		})
	}
	return headings
}

// FilterHeadingsByDepth returns the headings whose level is within maxDepth,
// preserving document order.
func FilterHeadingsByDepth(headings []Heading, maxDepth int) []Heading {
	return filterHeadingsByDepth(headings, maxDepth)
}

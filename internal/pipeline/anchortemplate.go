package pipeline

import (
	"fmt"
	"html"
)

// Default CSS class names for anchor link markup.
const (
	DefaultAnchorContainerClass = "anchor-link-container"
	DefaultAnchorLinkClass      = "anchor-link"
	DefaultAnchorTextClass      = "anchor-link-text"
)

// AnchorLinkTextKey is the translation key for the default link text.
// FallbackAnchorLinkText is used when no translator is available or the key
// is missing from the active locale.
const (
	AnchorLinkTextKey      = "anchorLinks.backToContents"
	FallbackAnchorLinkText = "⬆ Back to Contents"
)

// Navigation targets. The TOC injector guarantees id="toc" on the generated
// <nav>; the converter ensures an id="top" anchor when no TOC is requested.
const (
	anchorTargetTOC = "#toc"
	anchorTargetTop = "#top"
)

// normalizeAnchorAlignment maps an alignment value to one of the three fixed
// alignment class suffixes, defaulting to right.
func normalizeAnchorAlignment(alignment string) string {
	switch alignment {
	case "left", "center":
		return alignment
	}
	return "right"
}

// buildAnchorLinkHTML renders the link snippet for one section. Pure function
// of its arguments: identical inputs yield identical strings, so tests can
// assert exact equality on the injected markup.
func buildAnchorLinkHTML(containerClass, linkClass, textClass, alignment, linkText string, hasTOC bool) string {
	target := anchorTargetTop
	if hasTOC {
		target = anchorTargetTOC
	}

	return fmt.Sprintf(`<div class="%s anchor-link-%s"><a href="%s" class="%s"><span class="%s">%s</span></a></div>`,
		containerClass,
		normalizeAnchorAlignment(alignment),
		target,
		linkClass,
		textClass,
		html.EscapeString(linkText))
}

// buildAnchorLinkStyles renders the CSS block for anchor link markup.
// All three alignment classes and the hover rule are always present so a
// stylesheet built once serves documents with any configured alignment.
func buildAnchorLinkStyles(containerClass, linkClass, textClass string) string {
	return fmt.Sprintf(`
/* Anchor links: back-to-contents navigation */
.%s {
  margin: 0.75em 0 1.5em;
  font-size: 0.85em;
  line-height: 1.4;
}
.anchor-link-left {
  text-align: left;
}
.anchor-link-center {
  text-align: center;
}
.anchor-link-right {
  text-align: right;
}
.%s {
  color: #6a737d;
  text-decoration: none;
}
.%s:hover {
  color: #0366d6;
  text-decoration: underline;
}
.%s {
  white-space: nowrap;
}
`, containerClass, linkClass, linkClass, textClass)
}

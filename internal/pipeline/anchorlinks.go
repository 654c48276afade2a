package pipeline

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Anchor depth constants. Depth 0 on AnchorLinksData means "use default";
// AnchorDepthNone walks and records every eligible section without inserting
// any links, preserving the audit trail for callers that only want the report.
const (
	DefaultAnchorDepth = 3
	AnchorDepthNone    = -1
)

// Translator resolves a message key to localized text.
// Implementations return "" for unknown keys so callers can fall back.
type Translator interface {
	Translate(key string) string
}

// AnchorLinksData holds anchor link options passed from the public API.
type AnchorLinksData struct {
	Enabled        bool
	Depth          int    // 0 = default, AnchorDepthNone = audit only, else 2-6
	Text           string // empty = translator lookup with fixed fallback
	Alignment      string // "left", "center", "right" (default: "right")
	ContainerClass string
	LinkClass      string
	TextClass      string
	HasTOC         bool // selects the navigation target (#toc vs #top)
}

// ProcessedSection is the audit record for one heading that passed the depth
// filter, whether or not a link was actually inserted after it.
type ProcessedSection struct {
	Title         string
	Level         int
	Anchor        string
	HasAnchorLink bool
}

// AnchorLinksResult is the outcome of one anchor link pass.
// Sections always covers the depth-filtered headings in document order,
// independent of per-section failures.
type AnchorLinksResult struct {
	HTML          string
	LinksInserted int
	Sections      []ProcessedSection
}

// AnchorLinkInjector defines the contract for anchor link insertion.
type AnchorLinkInjector interface {
	InjectAnchorLinks(ctx context.Context, htmlContent string, headings []Heading) *AnchorLinksResult
	Styles() string
}

// AnchorLinkInjection inserts "back to contents" links after each eligible
// section of rendered HTML. Options are frozen at construction; the injector
// is safe for sequential reuse across documents.
//
// Each heading is re-resolved against the progressively mutated HTML, not
// against cached offsets, because earlier insertions shift every later
// offset. Rescanning the growing document per heading is quadratic in the
// worst case; for realistic documents (hundreds of headings) this completes
// well under a second and is an accepted cost.
type AnchorLinkInjection struct {
	enabled        bool
	depth          int  // numeric filter depth, always 1-6
	insert         bool // false when constructed with AnchorDepthNone
	snippet        string
	containerClass string
	linkClass      string
	textClass      string
	log            *zap.Logger
}

// NewAnchorLinkInjection creates an injector with defaults applied:
// depth 3, right alignment, standard CSS classes, and link text resolved
// through the translator (falling back to a fixed glyph+text constant).
// A nil translator or logger is replaced by a no-op implementation.
func NewAnchorLinkInjection(data *AnchorLinksData, tr Translator, log *zap.Logger) *AnchorLinkInjection {
	if log == nil {
		log = zap.NewNop()
	}
	if data == nil {
		return &AnchorLinkInjection{log: log}
	}

	depth := data.Depth
	insert := true
	switch {
	case depth == AnchorDepthNone:
		// Audit-only mode: filter at the internal default, never insert.
		depth = DefaultAnchorDepth
		insert = false
	case depth == 0:
		depth = DefaultAnchorDepth
	}

	container := data.ContainerClass
	if container == "" {
		container = DefaultAnchorContainerClass
	}
	link := data.LinkClass
	if link == "" {
		link = DefaultAnchorLinkClass
	}
	text := data.TextClass
	if text == "" {
		text = DefaultAnchorTextClass
	}

	linkText := data.Text
	if linkText == "" && tr != nil {
		linkText = tr.Translate(AnchorLinkTextKey)
	}
	if linkText == "" {
		linkText = FallbackAnchorLinkText
	}

	return &AnchorLinkInjection{
		enabled:        data.Enabled,
		depth:          depth,
		insert:         insert,
		snippet:        buildAnchorLinkHTML(container, link, text, data.Alignment, linkText, data.HasTOC),
		containerClass: container,
		linkClass:      link,
		textClass:      text,
		log:            log,
	}
}

// Styles returns the CSS block for the anchor link markup. The caller embeds
// it into the final stylesheet; the injector never emits <style> tags itself.
func (a *AnchorLinkInjection) Styles() string {
	container := a.containerClass
	if container == "" {
		container = DefaultAnchorContainerClass
	}
	link := a.linkClass
	if link == "" {
		link = DefaultAnchorLinkClass
	}
	text := a.textClass
	if text == "" {
		text = DefaultAnchorTextClass
	}
	return buildAnchorLinkStyles(container, link, text)
}

// InjectAnchorLinks walks the depth-filtered headings in document order and
// splices a navigation link after each section's last complete structural
// element. Per-section failures (unresolvable heading tag, missing anchor,
// panic during scanning) are recorded and logged; they never abort the pass.
func (a *AnchorLinkInjection) InjectAnchorLinks(ctx context.Context, htmlContent string, headings []Heading) *AnchorLinksResult {
	result := &AnchorLinksResult{
		HTML:     htmlContent,
		Sections: []ProcessedSection{},
	}

	if !a.enabled || len(headings) == 0 || ctx.Err() != nil {
		return result
	}

	targets := filterHeadingsByDepth(headings, a.depth)
	if len(targets) == 0 {
		return result
	}

	modified := htmlContent
	for i, h := range targets {
		var next *Heading
		if i+1 < len(targets) {
			next = &targets[i+1]
		}

		section := ProcessedSection{
			Title:  h.Text,
			Level:  h.Level,
			Anchor: h.Anchor,
		}

		switch {
		case !a.insert:
			// Audit-only mode: record the section, keep the HTML untouched.
		case next != nil && next.Level > h.Level:
			// The next filtered heading is this section's own first
			// sub-section: a link here would sit before the section's
			// children, so skip insertion.
		default:
			modified, section.HasAnchorLink = a.insertForHeading(modified, h, next)
		}

		if section.HasAnchorLink {
			result.LinksInserted++
		}
		result.Sections = append(result.Sections, section)
	}

	result.HTML = modified
	return result
}

// filterHeadingsByDepth selects headings whose level is within depth,
// preserving document order.
func filterHeadingsByDepth(headings []Heading, depth int) []Heading {
	var targets []Heading
	for _, h := range headings {
		if h.Level <= depth {
			targets = append(targets, h)
		}
	}
	return targets
}

// insertForHeading splices the link snippet after the section that starts at
// heading h and ends before next. Returns the (possibly) modified document
// and whether an insertion happened. Recovers from panics so a single bad
// section cannot abort the remaining headings.
func (a *AnchorLinkInjection) insertForHeading(doc string, h Heading, next *Heading) (out string, inserted bool) {
	out = doc

	defer func() {
		if r := recover(); r != nil {
			out, inserted = doc, false
			a.log.Warn("anchor link insertion failed",
				zap.String("heading", h.Text),
				zap.Any("panic", r))
		}
	}()

	id := cleanAnchorID(h.Anchor)
	if id == "" {
		a.log.Warn("anchor link skipped: heading has no anchor",
			zap.String("heading", h.Text))
		return doc, false
	}

	loc := headingTagLocation(doc, h.Level, id)
	if loc == nil {
		a.log.Warn("anchor link skipped: heading tag not found",
			zap.String("heading", h.Text),
			zap.String("anchor", id))
		return doc, false
	}

	pos := a.insertionPoint(doc, loc, next)
	return doc[:pos] + a.snippet + doc[pos:], true
}

// insertionPoint computes the document offset where the link lands.
//
//   - Last heading overall: the very end of the document.
//   - Next heading resolvable: after the last complete structural element in
//     the region between the two headings, or at the next heading's opening
//     tag when the region holds no structural boundary.
//   - Next heading unresolvable (id mismatch): right after the current
//     heading's own closing tag.
func (a *AnchorLinkInjection) insertionPoint(doc string, cur []int, next *Heading) int {
	if next == nil {
		return len(doc)
	}

	nextLoc := headingTagLocation(doc, next.Level, cleanAnchorID(next.Anchor))
	if nextLoc == nil {
		return cur[1]
	}

	region := doc[cur[1]:nextLoc[0]]
	if end, ok := lastStructuralBoundary(region); ok {
		return cur[1] + end
	}
	return nextLoc[0]
}

// cleanAnchorID strips the optional leading '#' from a heading anchor so it
// can be matched against the raw id attribute in the HTML.
func cleanAnchorID(anchor string) string {
	return strings.TrimPrefix(anchor, "#")
}

// headingTagLocation finds the full tag of a heading by level and id.
// Returns nil when the heading does not appear in the document, which is a
// per-section failure rather than a fatal condition.
func headingTagLocation(doc string, level int, id string) []int {
	if id == "" {
		return nil
	}
	pattern := fmt.Sprintf(`(?is)<h%d[^>]*\bid="%s"[^>]*>.*?</h%d>`, level, regexp.QuoteMeta(id), level)
	return regexp.MustCompile(pattern).FindStringIndex(doc)
}

// Container patterns matched non-greedily across lines so multi-line
// admonition and diagram blocks resolve to their own closing tag.
var (
	admonitionPattern = regexp.MustCompile(`(?is)<div class="admonition[^"]*"[^>]*>.*?</div>`)
	diagramPattern    = regexp.MustCompile(`(?is)<div class="(?:mermaid|plantuml)-diagram"[^>]*>.*?</div>`)
)

// boundaryFinder locates the end offset of the last complete occurrence of
// one structural element kind within a region. Keeping the finders as an
// ordered list keeps the boundary rules declarative: adding a new container
// type is one entry, not another branch.
type boundaryFinder struct {
	name string
	find func(region string) (end int, ok bool)
}

var structuralBoundaries = []boundaryFinder{
	{name: "paragraph", find: lastClosingTag("</p>")},
	{name: "table", find: lastClosingTag("</table>")},
	{name: "codeblock", find: lastClosingTag("</pre>")},
	{name: "blockquote", find: lastClosingTag("</blockquote>")},
	{name: "list", find: lastListEnd},
	{name: "admonition", find: lastPatternEnd(admonitionPattern)},
	{name: "diagram", find: lastPatternEnd(diagramPattern)},
	{name: "container", find: lastClosingTag("</div>")},
}

// lastStructuralBoundary returns the end offset of the latest-occurring
// structural element in the region. Picking the maximum across all finders
// keeps nested elements (a list inside a blockquote) from causing a
// premature, too-early insertion.
func lastStructuralBoundary(region string) (int, bool) {
	best, found := 0, false
	for _, b := range structuralBoundaries {
		if end, ok := b.find(region); ok && end > best {
			best, found = end, true
		}
	}
	return best, found
}

// lastClosingTag builds a finder for the last occurrence of a literal
// closing tag.
func lastClosingTag(tag string) func(string) (int, bool) {
	return func(region string) (int, bool) {
		idx := strings.LastIndex(region, tag)
		if idx == -1 {
			return 0, false
		}
		return idx + len(tag), true
	}
}

// lastListEnd finds the later of the last </ul> and </ol>.
func lastListEnd(region string) (int, bool) {
	ul, ulOK := lastClosingTag("</ul>")(region)
	ol, olOK := lastClosingTag("</ol>")(region)
	switch {
	case ulOK && (!olOK || ul > ol):
		return ul, true
	case olOK:
		return ol, true
	}
	return 0, false
}

// lastPatternEnd builds a finder for the end of the last regexp match.
func lastPatternEnd(re *regexp.Regexp) func(string) (int, bool) {
	return func(region string) (int, bool) {
		locs := re.FindAllStringIndex(region, -1)
		if len(locs) == 0 {
			return 0, false
		}
		return locs[len(locs)-1][1], true
	}
}

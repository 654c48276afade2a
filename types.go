package doc2pdf

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// Depth defaults and bounds.
const (
	DefaultTOCDepth    = 3
	DefaultAnchorDepth = 3

	// AnchorDepthNone disables link insertion while keeping the per-section
	// audit trail: every heading within the internal default depth is still
	// walked and recorded, with zero links inserted.
	AnchorDepthNone = -1
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	switch strings.ToLower(p.Size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// Footer configures the PDF footer.
type Footer struct {
	Position       string // "left", "center", "right" (default: "right")
	ShowPageNumber bool
	Date           string
	Status         string
	Text           string
}

// Validate checks that footer settings are valid.
// Returns nil if f is nil (nil means no footer).
func (f *Footer) Validate() error {
	if f == nil {
		return nil
	}
	switch strings.ToLower(f.Position) {
	case "", "left", "center", "right":
		return nil
	default:
		return fmt.Errorf("%w: %q (must be left, center, or right)", ErrInvalidFooterPosition, f.Position)
	}
}

// TOC configures the generated table of contents.
type TOC struct {
	Title    string // Empty = localized default title
	MaxDepth int    // 1-6; 0 = default (3)
}

// Validate checks that TOC settings are valid.
// Returns nil if t is nil (nil means no TOC).
func (t *TOC) Validate() error {
	if t == nil || t.MaxDepth == 0 {
		return nil
	}
	if t.MaxDepth < 1 || t.MaxDepth > 6 {
		return fmt.Errorf("%w: %d (must be between 1 and 6)", ErrInvalidTOCDepth, t.MaxDepth)
	}
	return nil
}

// AnchorLinks configures "back to contents" navigation links inserted after
// each section. A nil pointer on Input disables the feature entirely.
type AnchorLinks struct {
	Depth          int    // 0 = default (3), AnchorDepthNone = audit only, else 2-6
	Text           string // Empty = localized default label
	Alignment      string // "left", "center", "right" (default: "right")
	ContainerClass string // default "anchor-link-container"
	LinkClass      string // default "anchor-link"
	TextClass      string // default "anchor-link-text"
}

// Validate checks that anchor link settings are valid.
// Returns nil if a is nil (nil means no anchor links).
func (a *AnchorLinks) Validate() error {
	if a == nil {
		return nil
	}
	switch {
	case a.Depth == 0 || a.Depth == AnchorDepthNone:
	case a.Depth >= 2 && a.Depth <= 6:
	default:
		return fmt.Errorf("%w: %d (must be none or 2-6)", ErrInvalidAnchorDepth, a.Depth)
	}
	switch strings.ToLower(a.Alignment) {
	case "", "left", "center", "right":
	default:
		return fmt.Errorf("%w: %q (must be left, center, or right)", ErrInvalidAnchorAlignment, a.Alignment)
	}
	return nil
}

// ProcessedSection is the audit record for one heading that was in scope for
// anchor link processing, whether or not a link was inserted after it.
type ProcessedSection struct {
	Title         string
	Level         int
	Anchor        string
	HasAnchorLink bool
}

// AnchorReport summarizes one anchor link pass. Sections covers every
// depth-filtered heading in document order; LinksInserted never exceeds
// len(Sections).
type AnchorReport struct {
	LinksInserted int
	Sections      []ProcessedSection
}

// Input contains conversion parameters.
type Input struct {
	Markdown    string        // Markdown content (required)
	CSS         string        // Custom CSS appended to the generated stylesheet (optional)
	Page        *PageSettings // Page settings (optional, nil = defaults)
	Footer      *Footer       // Footer config (optional)
	TOC         *TOC          // Table of contents (optional)
	AnchorLinks *AnchorLinks  // Back-to-contents links (optional)
	HTMLOnly    bool          // Skip PDF generation, return HTML only
}

// ConvertResult holds the conversion output: the intermediate HTML, the PDF
// bytes (empty in HTMLOnly mode), and the anchor link audit trail when
// anchor links were requested.
type ConvertResult struct {
	HTML         []byte
	PDF          []byte
	AnchorReport *AnchorReport
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout time.Duration
	locale  string
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the base PDF generation timeout. The effective timeout
// may be scaled up for complex documents.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("doc2pdf: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithLocale selects the translation locale for generated text (anchor link
// labels, TOC titles). Default is "en".
func WithLocale(locale string) Option {
	return func(c *Converter) {
		c.cfg.locale = locale
	}
}

// WithLogger sets the logger used by pipeline stages for per-section
// warnings. Default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Converter) {
		if log != nil {
			c.log = log
		}
	}
}

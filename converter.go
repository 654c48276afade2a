package doc2pdf

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/docfold/go-doc2pdf/internal/i18n"
	"github.com/docfold/go-doc2pdf/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.HTMLConverter      = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector        = (*pipeline.CSSInjection)(nil)
	_ pipeline.TOCInjector        = (*pipeline.TOCInjection)(nil)
	_ pipeline.AnchorLinkInjector = (*pipeline.AnchorLinkInjection)(nil)
	_ pipeline.Translator         = (*i18n.Translator)(nil)
)

// Converter orchestrates the markdown-to-PDF pipeline.
// Create with NewConverter, use Convert for conversion, and Close when done.
type Converter struct {
	cfg           converterConfig
	log           *zap.Logger
	translator    *i18n.Translator
	htmlConverter pipeline.HTMLConverter
	cssInjector   pipeline.CSSInjector
	tocInjector   pipeline.TOCInjector
	pdfConverter  pdfConverter
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithLocale).
// Returns error if the configured locale has no embedded translations.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:           converterConfig{timeout: defaultTimeout, locale: i18n.DefaultLocale},
		log:           zap.NewNop(),
		htmlConverter: pipeline.NewGoldmarkConverter(),
		cssInjector:   &pipeline.CSSInjection{},
		tocInjector:   pipeline.NewTOCInjection(),
	}

	for _, opt := range opts {
		opt(c)
	}

	translator, err := i18n.New(c.cfg.locale)
	if err != nil {
		return nil, err
	}
	c.translator = translator

	// Create PDF converter if not injected (e.g., by tests)
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}

	return c, nil
}

// Convert runs the full pipeline and returns the result containing HTML,
// PDF bytes, and the anchor link report when anchor links were requested.
// The context is used for cancellation and timeout.
// Recovers from internal panics to prevent crashes from propagating.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	htmlContent, err := c.htmlConverter.ToHTML(ctx, input.Markdown)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	// Headings are extracted once from the rendered document and shared by
	// the TOC and anchor link stages.
	headings := pipeline.ExtractHeadings(htmlContent)
	hasTOC := input.TOC != nil

	if hasTOC {
		htmlContent, err = c.tocInjector.InjectTOC(ctx, htmlContent, c.toTOCData(input.TOC, headings))
		if err != nil {
			return nil, fmt.Errorf("injecting TOC: %w", err)
		}
	} else {
		// Anchor links fall back to a #top target when no TOC exists.
		htmlContent = pipeline.EnsureTopAnchor(htmlContent)
	}

	// Insert anchor links against the TOC-bearing document so every
	// heading is re-resolved at its current offset.
	var report *AnchorReport
	anchorCSS := ""
	if input.AnchorLinks != nil {
		injector := pipeline.NewAnchorLinkInjection(toAnchorLinksData(input.AnchorLinks, hasTOC), c.translator, c.log)
		res := injector.InjectAnchorLinks(ctx, htmlContent, headings)
		htmlContent = res.HTML
		anchorCSS = injector.Styles()
		report = toAnchorReport(res)
	}

	// Build combined CSS. Order matters: print base first, anchor link
	// styles next, user CSS last so it can override.
	cssContent := buildPrintCSS() + anchorCSS
	if input.CSS != "" {
		cssContent += "\n" + input.CSS
	}
	htmlContent = c.cssInjector.InjectCSS(ctx, htmlContent, cssContent)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &ConvertResult{
		HTML:         []byte(htmlContent),
		AnchorReport: report,
	}

	if input.HTMLOnly {
		return res, nil
	}

	// Scale the render timeout for heavy documents before printing.
	complexity := pipeline.AnalyzeComplexity(htmlContent)
	pdfOpts := &pdfOptions{
		Footer:  input.Footer,
		Page:    input.Page,
		Timeout: complexity.RenderTimeout(c.cfg.timeout),
	}

	pdfBytes, err := c.pdfConverter.ToPDF(ctx, htmlContent, pdfOpts)
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}

	res.PDF = pdfBytes
	return res, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// validateInput checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Input
// manually. CLI users have their input validated earlier at config load
// time; both paths converge here.
func (c *Converter) validateInput(input Input) error {
	if input.Markdown == "" {
		return ErrEmptyMarkdown
	}
	if err := input.Page.Validate(); err != nil {
		return err
	}
	if err := input.Footer.Validate(); err != nil {
		return err
	}
	if err := input.TOC.Validate(); err != nil {
		return err
	}
	if err := input.AnchorLinks.Validate(); err != nil {
		return err
	}
	return nil
}

// toTOCData converts the public TOC type to internal pipeline.TOCData,
// applying the localized default title.
func (c *Converter) toTOCData(t *TOC, headings []pipeline.Heading) *pipeline.TOCData {
	if t == nil {
		return nil
	}
	title := t.Title
	if title == "" {
		title = c.translator.Translate("toc.title")
	}
	maxDepth := t.MaxDepth
	if maxDepth == 0 {
		maxDepth = DefaultTOCDepth
	}
	return &pipeline.TOCData{
		Title:    title,
		MaxDepth: maxDepth,
		Headings: headings,
	}
}

// toAnchorLinksData converts the public AnchorLinks type to internal
// pipeline.AnchorLinksData. A nil pointer yields disabled data.
func toAnchorLinksData(a *AnchorLinks, hasTOC bool) *pipeline.AnchorLinksData {
	if a == nil {
		return &pipeline.AnchorLinksData{HasTOC: hasTOC}
	}
	return &pipeline.AnchorLinksData{
		Enabled:        true,
		Depth:          a.Depth,
		Text:           a.Text,
		Alignment:      a.Alignment,
		ContainerClass: a.ContainerClass,
		LinkClass:      a.LinkClass,
		TextClass:      a.TextClass,
		HasTOC:         hasTOC,
	}
}

// toAnchorReport converts the internal result to the public report type.
func toAnchorReport(res *pipeline.AnchorLinksResult) *AnchorReport {
	sections := make([]ProcessedSection, len(res.Sections))
	for i, s := range res.Sections {
		sections[i] = ProcessedSection(s)
	}
	return &AnchorReport{
		LinksInserted: res.LinksInserted,
		Sections:      sections,
	}
}

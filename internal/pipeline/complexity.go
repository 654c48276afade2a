package pipeline

import (
	"strings"
	"time"
)

// Weights for the complexity score. Diagrams dominate because they render
// client-side in the browser before PDF capture.
const (
	tableWeight     = 3
	codeBlockWeight = 2
	diagramWeight   = 10
	imageWeight     = 2
	headingWeight   = 1
)

// Score thresholds mapping documents to render timeout multipliers.
const (
	moderateComplexityScore = 50
	highComplexityScore     = 150
)

// ContentComplexity summarizes how expensive a rendered document is to lay
// out and print. Derived from closing-tag counts only; the document is never
// parsed.
type ContentComplexity struct {
	Tables     int
	CodeBlocks int
	Diagrams   int
	Images     int
	Headings   int
}

// AnalyzeComplexity scans rendered HTML and counts the structural elements
// that drive PDF render time.
func AnalyzeComplexity(htmlContent string) ContentComplexity {
	return ContentComplexity{
		Tables:     strings.Count(htmlContent, "</table>"),
		CodeBlocks: strings.Count(htmlContent, "</pre>"),
		Diagrams:   len(diagramPattern.FindAllStringIndex(htmlContent, -1)),
		Images:     strings.Count(htmlContent, "<img"),
		Headings:   len(headingTagPattern.FindAllStringIndex(htmlContent, -1)),
	}
}

// Score returns the weighted complexity score.
func (c ContentComplexity) Score() int {
	return c.Tables*tableWeight +
		c.CodeBlocks*codeBlockWeight +
		c.Diagrams*diagramWeight +
		c.Images*imageWeight +
		c.Headings*headingWeight
}

// RenderTimeout scales a base timeout for heavy documents: 2x above the
// moderate threshold, 3x above the high threshold.
func (c ContentComplexity) RenderTimeout(base time.Duration) time.Duration {
	score := c.Score()
	switch {
	case score >= highComplexityScore:
		return 3 * base
	case score >= moderateComplexityScore:
		return 2 * base
	}
	return base
}

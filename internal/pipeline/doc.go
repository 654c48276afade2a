// Package pipeline contains the document transformation stages: markdown to
// HTML conversion, heading extraction, TOC and CSS injection, anchor link
// insertion, and content complexity analysis.
//
// Every stage operates on HTML as a string. Injection stages locate known
// tags by search and splice new markup at computed offsets; they never parse
// or validate the document structure.
package pipeline

// Package textnorm canonicalizes raw corpus text before feature
// extraction. The same normalization runs at training and predict time.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// Markdown headings the generator likes to emit, stripped to end of line.
	mdHeadingRe = regexp.MustCompile(`##[^\n]*`)
	// Section headings left over from the wiki dumps, e.g. "== History ==".
	wikiHeadingRe = regexp.MustCompile(`={2,}.*?={2,}`)
	// Numeric citation markers such as [1], [23].
	citationRe = regexp.MustCompile(`\[\d+\]`)
	urlRe      = regexp.MustCompile(`https?://\S+|www\.\S+`)
	// Generator lead-in phrases up to their colon, e.g. "Neste artigo
	// vamos ver:". Matched after lowercasing.
	boilerplateRe = regexp.MustCompile(`\b(neste artigo|vamos explorar|desmistificando|uma introdução clara|entenda|explicando)\b.*?:`)
	spaceRe       = regexp.MustCompile(`\s+`)
)

// Normalize returns the canonical form of text: lowercase, markup and
// control characters folded to spaces, whitespace runs collapsed to a
// single space, leading/trailing whitespace trimmed.
//
// Normalize is pure, total and idempotent. Invalid UTF-8 sequences are
// dropped rather than reported.
func Normalize(text string) string {
	text = strings.ToValidUTF8(text, "")
	text = strings.ToLower(text)
	// Markdown headings terminate at the newline, so they are stripped
	// while line structure is still intact. Every later pattern runs on
	// space-folded text, which keeps a second pass from matching markup
	// the first pass could not see across a line break.
	text = mdHeadingRe.ReplaceAllString(text, " ")
	text = strings.Map(foldControl, text)
	text = wikiHeadingRe.ReplaceAllString(text, " ")
	text = citationRe.ReplaceAllString(text, " ")
	text = urlRe.ReplaceAllString(text, " ")
	text = boilerplateRe.ReplaceAllString(text, " ")
	text = spaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// foldControl maps control and other non-printable runes to a plain
// space so word boundaries survive the cleanup.
func foldControl(r rune) rune {
	if unicode.IsControl(r) || !unicode.IsPrint(r) {
		return ' '
	}
	return r
}

// Package textx turns rich-text job content into plain text.
package textx

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const blockElements = "p, div, li, br, h1, h2, h3, h4, h5, h6, tr, blockquote, pre"

// PlainText strips markup from an HTML fragment and collapses whitespace.
// Input that fails to parse is returned with whitespace collapsed.
func PlainText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return collapse(html)
	}

	doc.Find("script, style").Remove()
	doc.Find(blockElements).Each(func(_ int, s *goquery.Selection) {
		s.AfterHtml(" ")
	})

	return collapse(doc.Text())
}

// Excerpt returns at most max runes of the plain text, cut on a word boundary
func Excerpt(html string, max int) string {
	text := PlainText(html)
	if utf8.RuneCountInString(text) <= max {
		return text
	}

	runes := []rune(text)
	cut := string(runes[:max])
	if i := strings.LastIndex(cut, " "); i > max/2 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut) + "..."
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

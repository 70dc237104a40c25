// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockElements separate runs of text; a space is inserted around each so
// that "<h4>Background</h4>Text" reads "Background Text".
const blockElements = "h1, h2, h3, h4, h5, h6, p, br, div, li, sec"

// plainText reduces inline HTML/JATS markup in provider text to plain text
// with collapsed whitespace. Text without markup is only trimmed.
func plainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	doc.Find(blockElements).BeforeHtml(" ").AfterHtml(" ")
	return strings.Join(strings.Fields(doc.Text()), " ")
}

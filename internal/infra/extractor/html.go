package extractor

import (
	"bytes"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// HTML extraction modes.
const (
	// ModeText keeps all visible text of the page.
	ModeText = "text"
	// ModeReadability keeps only the main article, falling back to ModeText
	// when no article can be found.
	ModeReadability = "readability"
)

// htmlText returns the visible text of an HTML document. script and style
// elements are dropped, text nodes are separated by spaces and every
// whitespace run collapses to one space.
func htmlText(body []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	doc.Find("script, style, noscript, template").Remove()

	var sb strings.Builder
	for _, n := range doc.Nodes {
		collectText(&sb, n)
	}
	return strings.Join(strings.Fields(sb.String()), " "), nil
}

func collectText(sb *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(sb, c)
	}
}

// articleText extracts the main article with go-readability.
func articleText(body []byte, pageURL *url.URL) (string, error) {
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return "", err
	}
	return strings.Join(strings.Fields(article.TextContent), " "), nil
}

// pageText converts a fetched page to normalized text according to mode.
func pageText(page *Page, mode string) (string, error) {
	if mode == ModeReadability {
		text, err := articleText(page.Body, page.URL)
		if err == nil && text != "" {
			return text, nil
		}
		slog.Debug("readability found no article, using full page text",
			slog.String("url", page.URL.String()),
			slog.Any("error", err))
	}
	return htmlText(page.Body)
}

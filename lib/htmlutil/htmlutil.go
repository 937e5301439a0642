package htmlutil

import (
	"bytes"
	"context"
	"strings"

	"ferry-scraper/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/net/html"
)

var tracer = otel.Tracer("ferry.lib.htmlutil")

// ParseDocument parses a whole page of html.
func ParseDocument(ctx context.Context, page string) (*goquery.Document, error) {
	_, span := tracer.Start(ctx, "ParseDocument")
	defer span.End()
	span.SetAttributes(attribute.Int("custom.page_bytes", len(page)))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, err
	}
	return doc, nil
}

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// Text returns the whitespace-collapsed text of the first node in the selection,
// empty if the selection is empty.
func Text(sel *goquery.Selection) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	return textutil.CollapseSpace(GetText(sel.Get(0)))
}

// TextOr is Text but with a placeholder for missing or blank nodes.
func TextOr(sel *goquery.Selection, placeholder string) string {
	text := Text(sel)
	if text == "" {
		return placeholder
	}
	return text
}

// FirstChildText returns the first direct child of the first node in the
// selection, trimmed. If that child is an element, its text content is used.
// This is what you want for markup like `<p>Address<br><span>note</span></p>`
// where only the leading text belongs to the field.
func FirstChildText(sel *goquery.Selection) (string, bool) {
	if sel == nil || sel.Length() == 0 {
		return "", false
	}
	child := sel.Get(0).FirstChild
	for child != nil && child.Type == html.CommentNode {
		child = child.NextSibling
	}
	if child == nil {
		return "", false
	}
	return textutil.CollapseSpace(GetText(child)), true
}

// HasAny reports whether the selection contains at least one node matching selector.
func HasAny(sel *goquery.Selection, selector string) bool {
	return sel.Find(selector).Length() > 0
}

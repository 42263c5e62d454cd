package htmlutil

import (
	"bytes"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

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

// Fragment parses a partial chunk of markup, like the option lists and
// table bodies the portal embeds inside its JSON payloads.
func Fragment(markup string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(markup))
}

// FragmentText returns the visible text of a markup fragment, trimmed.
// Malformed markup degrades to the raw input rather than failing.
func FragmentText(markup string) string {
	doc, err := Fragment(markup)
	if err != nil {
		return strings.TrimSpace(markup)
	}
	var buffer bytes.Buffer
	for _, node := range doc.Nodes {
		getTextRecursive(node, &buffer)
	}
	return strings.TrimSpace(buffer.String())
}

func RemoveNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

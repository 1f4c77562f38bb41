package browser

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// cleanedContent is the readable remainder of a page after noise removal.
type cleanedContent struct {
	Title     string
	Text      string
	Truncated bool
}

// Elements whose entire subtree is noise for content extraction.
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"svg":      true,
	"iframe":   true,
	"template": true,
}

// Elements that end a line of extracted text.
var blockElements = map[string]bool{
	"p": true, "div": true, "section": true, "article": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"li": true, "tr": true, "br": true, "header": true, "footer": true,
	"main": true, "nav": true, "blockquote": true, "pre": true,
}

// cleanHTML parses raw HTML and extracts its title and readable text,
// truncating at maxLength characters.
func cleanHTML(raw string, maxLength int) (*cleanedContent, error) {
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	result := &cleanedContent{Title: findTitle(doc)}
	var b strings.Builder
	collectText(doc, &b, maxLength, &result.Truncated)

	result.Text = condenseBlankLines(strings.TrimSpace(b.String()))
	if result.Truncated {
		result.Text += fmt.Sprintf("\n\n[content truncated at %d characters]", maxLength)
	}
	return result, nil
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
			return strings.TrimSpace(n.FirstChild.Data)
		}
		return ""
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if title := findTitle(c); title != "" {
			return title
		}
	}
	return ""
}

func collectText(n *html.Node, b *strings.Builder, maxLength int, truncated *bool) {
	if *truncated {
		return
	}
	switch n.Type {
	case html.CommentNode:
		return
	case html.ElementNode:
		if skippedElements[strings.ToLower(n.Data)] {
			return
		}
	case html.TextNode:
		text := strings.Join(strings.Fields(n.Data), " ")
		if text == "" {
			return
		}
		if b.Len()+len(text) > maxLength {
			remaining := maxLength - b.Len()
			if remaining > 0 {
				b.WriteString(text[:remaining])
			}
			*truncated = true
			return
		}
		if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
			b.WriteString(" ")
		}
		b.WriteString(text)
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b, maxLength, truncated)
	}

	if n.Type == html.ElementNode && blockElements[strings.ToLower(n.Data)] {
		if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
			b.WriteString("\n")
		}
	}
}

// condenseBlankLines collapses runs of blank lines left behind by nested
// block elements.
func condenseBlankLines(text string) string {
	lines := strings.Split(text, "\n")
	var out []string
	for _, line := range lines {
		line = strings.TrimRight(line, " ")
		if line == "" && len(out) > 0 && out[len(out)-1] == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

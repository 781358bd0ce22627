package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoBlocks is returned when a document contains no JSON-LD
var ErrNoBlocks = errors.New("no JSON-LD blocks found")

// MediaType marks a JSON-LD script element
const MediaType = "application/ld+json"

// Blocks returns the JSON-LD blocks in data, in document order. Input that
// starts with '{' or '[' is treated as one raw JSON-LD block; anything else
// is parsed as HTML.
func Blocks(data []byte) ([][]byte, error) {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")))
	if len(trimmed) == 0 {
		return nil, ErrNoBlocks
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return [][]byte{trimmed}, nil
	}

	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var blocks [][]byte
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Script && isJSONLD(n) {
			if text := strings.TrimSpace(textContent(n)); text != "" {
				blocks = append(blocks, []byte(text))
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if len(blocks) == 0 {
		return nil, ErrNoBlocks
	}
	return blocks, nil
}

func isJSONLD(n *html.Node) bool {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, "type") {
			mediaType, _, _ := strings.Cut(attr.Val, ";")
			return strings.EqualFold(strings.TrimSpace(mediaType), MediaType)
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

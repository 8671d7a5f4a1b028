package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a root element with an id index.
type Document struct {
	Root *Element
}

func NewDocument() *Document {
	return &Document{Root: New("body")}
}

// ByID returns the element with the given id or nil. Absent anchors are
// expected and callers must handle nil.
func (d *Document) ByID(id string) *Element {
	if d == nil || d.Root == nil || id == "" {
		return nil
	}
	return d.Root.Find(func(el *Element) bool { return el.ID() == id })
}

// First returns the first element matching pred or nil.
func (d *Document) First(pred func(*Element) bool) *Element {
	if d == nil || d.Root == nil {
		return nil
	}
	return d.Root.Find(pred)
}

// All returns all elements matching pred.
func (d *Document) All(pred func(*Element) bool) []*Element {
	if d == nil || d.Root == nil {
		return nil
	}
	return d.Root.FindAll(pred)
}

// Parse builds a Document from an HTML fragment. Inputs take their initial
// value from the value attribute.
func Parse(r io.Reader) (*Document, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(r, body)
	if err != nil {
		return nil, fmt.Errorf("dom: parse: %w", err)
	}
	doc := NewDocument()
	for _, n := range nodes {
		if el := convert(n); el != nil {
			doc.Root.Append(el)
		}
	}
	return doc, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

func convert(n *html.Node) *Element {
	if n.Type != html.ElementNode {
		return nil
	}
	el := New(n.Data)
	for _, a := range n.Attr {
		el.attrs[a.Key] = a.Val
	}
	if v, ok := el.attrs["value"]; ok {
		el.value = v
	}
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			text.WriteString(c.Data)
		case html.ElementNode:
			if child := convert(c); child != nil {
				el.Append(child)
			}
		}
	}
	el.text = strings.TrimSpace(text.String())
	if el.tag == "textarea" {
		el.value = el.text
	}
	return el
}

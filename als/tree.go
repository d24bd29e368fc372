package als

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Node is an element in the parsed document. Only elements and their
// attributes are kept; text, comments and directives are dropped.
type Node struct {
	Name     xml.Name
	Attr     []xml.Attr
	Children []*Node
}

// ParseDocument parses text into an element tree and returns its root element.
// A leading byte order mark is skipped. Duplicate attributes are rejected.
func ParseDocument(text string) (*Node, error) {
	dec := xml.NewDecoder(strings.NewReader(strings.TrimPrefix(text, "\ufeff")))

	var root *Node
	var stack []*Node
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrXML, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if dup, ok := duplicateAttr(t.Attr); ok {
				return nil, fmt.Errorf("%w: duplicate attribute %s on <%s>", ErrXML, dup, t.Name.Local)
			}
			n := &Node{Name: t.Name, Attr: append([]xml.Attr(nil), t.Attr...)}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("%w: multiple root elements", ErrXML)
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 && strings.TrimSpace(string(t)) != "" {
				return nil, fmt.Errorf("%w: text outside root element", ErrXML)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrXML)
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("%w: unclosed element <%s>", ErrXML, stack[len(stack)-1].Name.Local)
	}
	return root, nil
}

func duplicateAttr(attrs []xml.Attr) (string, bool) {
	for i := range attrs {
		for j := i + 1; j < len(attrs); j++ {
			if attrs[i].Name == attrs[j].Name {
				return attrs[i].Name.Local, true
			}
		}
	}
	return "", false
}

// Descendants returns n and every element below it in document order.
func (n *Node) Descendants() []*Node {
	out := []*Node{n}
	for _, c := range n.Children {
		out = append(out, c.Descendants()...)
	}
	return out
}

// ChildrenNamed returns the direct children whose local name is local.
// Namespaces are ignored.
func (n *Node) ChildrenNamed(local string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Name.Local == local {
			out = append(out, c)
		}
	}
	return out
}

// Attribute looks up an attribute without a namespace prefix.
func (n *Node) Attribute(local string) (string, bool) {
	for _, a := range n.Attr {
		if a.Name.Space == "" && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

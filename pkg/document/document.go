// Package document reads rendered page markup into the flat sequence of
// heading and table nodes that era extraction walks. Only document order,
// heading levels and cell text survive; everything else in the markup is
// discarded.
package document

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"

	"github.com/agentstation/eramap/pkg/errors"
)

// Kind distinguishes heading nodes from table nodes.
type Kind int

const (
	// KindHeading is an h1-h6 element.
	KindHeading Kind = iota + 1
	// KindTable is a table element.
	KindTable
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindTable:
		return "table"
	default:
		return "unknown"
	}
}

// Row is the text of a table row's cells, in order.
type Row []string

// Node is a heading or a table in document order.
type Node struct {
	Kind  Kind
	Level int    // heading level 1-6; zero for tables
	Text  string // heading text
	Rows  []Row  // table rows
}

// Heading builds a heading node.
func Heading(level int, text string) Node {
	return Node{Kind: KindHeading, Level: level, Text: text}
}

// Table builds a table node from rows of cells.
func Table(rows ...Row) Node {
	return Node{Kind: KindTable, Rows: rows}
}

var headingLevels = map[atom.Atom]int{
	atom.H1: 1, atom.H2: 2, atom.H3: 3,
	atom.H4: 4, atom.H5: 5, atom.H6: 6,
}

// Parse reads markup and returns its heading and table nodes in document
// order. Nested tables are emitted after the table that contains them.
func Parse(r io.Reader) ([]Node, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.WrapParse("html", "", err)
	}

	var nodes []Node
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level, ok := headingLevels[n.DataAtom]; ok {
				nodes = append(nodes, Heading(level, Text(n)))
				return
			}
			if n.DataAtom == atom.Table {
				nodes = append(nodes, Table(rows(n)...))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(root)

	return nodes, nil
}

// ParseString is Parse over a string.
func ParseString(s string) ([]Node, error) {
	return Parse(strings.NewReader(s))
}

// rows collects every descendant tr of table with its descendant cells.
func rows(table *html.Node) []Row {
	var out []Row
	for _, tr := range descendants(table, atom.Tr) {
		cells := descendants(tr, atom.Td, atom.Th)
		row := make(Row, 0, len(cells))
		for _, cell := range cells {
			row = append(row, Text(cell))
		}
		out = append(out, row)
	}
	return out
}

// descendants returns the elements below n matching any of the atoms, in document order.
func descendants(n *html.Node, atoms ...atom.Atom) []*html.Node {
	var found []*html.Node
	var visit func(*html.Node)
	visit = func(node *html.Node) {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				for _, a := range atoms {
					if c.DataAtom == a {
						found = append(found, c)
						break
					}
				}
			}
			visit(c)
		}
	}
	visit(n)
	return found
}

// Text returns the NFC-normalized concatenation of n's descendant text
// nodes, each trimmed of surrounding whitespace. Script and style contents
// are skipped.
func Text(n *html.Node) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(node *html.Node) {
		switch node.Type {
		case html.TextNode:
			sb.WriteString(strings.TrimSpace(node.Data))
			return
		case html.ElementNode:
			if node.DataAtom == atom.Script || node.DataAtom == atom.Style {
				return
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return norm.NFC.String(sb.String())
}

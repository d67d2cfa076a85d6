// Package fragment reads the HTML a list view returns for its data region
// and lays it out as plain text.
package fragment

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/unkn0wn-root/richlist/internal/errdef"
)

type Table struct {
	Header []string
	Rows   [][]string
}

// Document holds the tables of a fragment in order, any text found outside
// them, and the distinct link targets in document order.
type Document struct {
	Tables []Table
	Text   []string
	Links  []string
}

func Parse(src string) (*Document, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: atom.Div.String(), DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(src), ctx)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeDecode, err, "parse html fragment")
	}
	doc := &Document{}
	for _, n := range nodes {
		doc.walk(n)
	}
	return doc, nil
}

func (d *Document) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		if t := collapse(n.Data); t != "" {
			d.Text = append(d.Text, t)
		}
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Table:
			d.Tables = append(d.Tables, readTable(n))
			d.collectLinks(n)
			return
		case atom.Script, atom.Style:
			return
		case atom.A:
			d.addLink(attr(n, "href"))
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.walk(c)
	}
}

func (d *Document) collectLinks(n *html.Node) {
	if n.Type == html.ElementNode && n.DataAtom == atom.A {
		d.addLink(attr(n, "href"))
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.collectLinks(c)
	}
}

func (d *Document) addLink(href string) {
	if href == "" || slices.Contains(d.Links, href) {
		return
	}
	d.Links = append(d.Links, href)
}

func readTable(table *html.Node) Table {
	var t Table
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Tr {
			cells, header := readRow(n)
			if header && t.Header == nil && len(t.Rows) == 0 {
				t.Header = cells
			} else {
				t.Rows = append(t.Rows, cells)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(table)
	return t
}

// readRow reports header=true when every cell is a <th>.
func readRow(tr *html.Node) (cells []string, header bool) {
	header = true
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case atom.Th:
		case atom.Td:
			header = false
		default:
			continue
		}
		cells = append(cells, textOf(c))
	}
	if len(cells) == 0 {
		header = false
	}
	return cells, header
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		case n.Type == html.ElementNode && n.DataAtom == atom.Br:
			sb.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return collapse(sb.String())
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

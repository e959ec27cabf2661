package sec

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/guttosm/finny/internal/domain/models"
)

// Column positions in the EDGAR filings table.
const (
	colFormType   = 0
	colFilingDate = 3
	minColumns    = colFilingDate + 1
)

// ParseFilings extracts filings from an EDGAR company page.
//
// Every <tr> in the document except the first is considered; rows with at least four
// <td> cells yield {date: cell 3, type: cell 0}. Rows with fewer cells are skipped.
func ParseFilings(r io.Reader) ([]models.Filing, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	rows := findAll(doc, atom.Tr)
	filings := make([]models.Filing, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue
		}
		cells := findAll(row, atom.Td)
		if len(cells) < minColumns {
			continue
		}
		filings = append(filings, models.Filing{
			Date: strings.TrimSpace(textOf(cells[colFilingDate])),
			Type: strings.TrimSpace(textOf(cells[colFormType])),
		})
	}
	return filings, nil
}

// findAll returns descendants of n with the given tag, in document order.
func findAll(n *html.Node, tag atom.Atom) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.DataAtom == tag {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if cur.Type == html.TextNode {
			sb.WriteString(cur.Data)
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

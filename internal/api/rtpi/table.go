package rtpi

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/dublin-on-time/dublinontime/internal/arrivals"
)

// extractRows pulls the Service and Time columns out of the first table in
// the page that carries both headers. The RTPI display page puts arrivals in
// its first table, but matching on headers keeps us honest if the page grows
// extra tables.
func extractRows(r io.Reader) ([]arrivals.Row, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoArrivalsTable, err)
	}

	for _, table := range findElements(doc, "table") {
		if rows, ok := tableArrivals(table); ok {
			return rows, nil
		}
	}
	return nil, ErrNoArrivalsTable
}

func tableArrivals(table *html.Node) ([]arrivals.Row, bool) {
	trs := findElements(table, "tr")
	if len(trs) == 0 {
		return nil, false
	}

	serviceCol, timeCol := -1, -1
	for i, cell := range rowCells(trs[0]) {
		switch strings.ToLower(cell) {
		case "service":
			serviceCol = i
		case "time":
			timeCol = i
		}
	}
	if serviceCol < 0 || timeCol < 0 {
		return nil, false
	}

	rows := []arrivals.Row{}
	for _, tr := range trs[1:] {
		cells := rowCells(tr)
		if serviceCol >= len(cells) || timeCol >= len(cells) {
			continue
		}
		rows = append(rows, arrivals.Row{
			Service: cells[serviceCol],
			Time:    cells[timeCol],
		})
	}
	return rows, true
}

// rowCells returns the trimmed text of each th/td cell in a table row.
func rowCells(tr *html.Node) []string {
	var cells []string
	for _, cell := range findElements(tr, "th", "td") {
		cells = append(cells, nodeText(cell))
	}
	return cells
}

// findElements collects, in document order, every descendant element of n
// whose tag matches one of names.
func findElements(n *html.Node, names ...string) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode {
			for _, name := range names {
				if node.Data == name {
					found = append(found, node)
					return
				}
			}
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walk(child)
	}
	return found
}

// nodeText concatenates the text content beneath n with whitespace collapsed.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

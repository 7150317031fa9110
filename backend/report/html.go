package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/npillmayer/fontsweep/core"
	"github.com/npillmayer/fontsweep/engine/shaping"
	"github.com/npillmayer/fontsweep/engine/sweep"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Page collects the contents of an HTML report.
type Page struct {
	Fontname string
	Image    string // location of the PNG, relative to the page
	Result   *sweep.Result
	Checks   []shaping.Report // optional, one per line
}

const stylesheet = `
body { font-family: sans-serif; }
table { border-collapse: collapse; }
td, th { padding: 2px 8px; text-align: right; }
tr.clipped td, td.suspicious { background: #fcc; }
`

// WriteHTML renders a report page to w.
func WriteHTML(w io.Writer, page Page) error {
	if page.Result == nil {
		return core.Error(core.EINVALID, "report needs a sweep result")
	}
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	root := element("html")
	doc.AppendChild(root)
	title := fmt.Sprintf("Sweep of %s with %s", page.Fontname, page.Result.Backend)
	head := element("head")
	head.AppendChild(withText(element("title"), title))
	head.AppendChild(withText(element("style"), stylesheet))
	root.AppendChild(head)
	body := element("body")
	root.AppendChild(body)
	body.AppendChild(withText(element("h1"), title))
	body.AppendChild(withText(element("p"), fmt.Sprintf("%q at %d sizes, %g dpi",
		page.Result.Fixture.Text, len(page.Result.Lines), page.Result.Fixture.DPI)))
	if page.Image != "" {
		b := page.Result.Canvas.Bounds()
		body.AppendChild(element("img", "src", page.Image, "alt", title,
			"width", strconv.Itoa(b.Dx()), "height", strconv.Itoa(b.Dy())))
	}
	body.AppendChild(lineTable(page))
	if err := html.Render(w, doc); err != nil {
		return core.WrapError(err, core.EIO, "cannot write HTML report")
	}
	return nil
}

func lineTable(page Page) *html.Node {
	table := element("table", "class", "lines")
	thead := element("thead")
	hrow := element("tr")
	headers := []string{"size", "baseline", "bounding box", "width"}
	if len(page.Checks) > 0 {
		headers = append(headers, "expected", "deviation")
	}
	for _, h := range headers {
		hrow.AppendChild(withText(element("th"), h))
	}
	thead.AppendChild(hrow)
	table.AppendChild(thead)
	tbody := element("tbody")
	for i, line := range page.Result.Lines {
		class := "line"
		if line.Clipped {
			class += " clipped"
		}
		row := element("tr", "class", class)
		row.AppendChild(withText(element("td", "class", "size"), fmt.Sprintf("%dpt", line.Size)))
		row.AppendChild(withText(element("td", "class", "baseline"), strconv.Itoa(line.Baseline)))
		row.AppendChild(withText(element("td", "class", "bbox"), line.BBox.String()))
		row.AppendChild(withText(element("td", "class", "width"), strconv.Itoa(line.BBox.Width())))
		if i < len(page.Checks) {
			check := page.Checks[i]
			row.AppendChild(withText(element("td", "class", "expected"), fmt.Sprintf("%.1f", check.Expected)))
			devclass := "deviation"
			if check.Suspicious() {
				devclass += " suspicious"
			}
			row.AppendChild(withText(element("td", "class", devclass), fmt.Sprintf("%+.1f", check.Deviation)))
		}
		tbody.AppendChild(row)
	}
	table.AppendChild(tbody)
	return table
}

// element creates an element node. attrs are key-value pairs.
func element(tag string, attrs ...string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func withText(n *html.Node, text string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}

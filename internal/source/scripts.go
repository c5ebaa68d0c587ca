package source

import (
	"context"
	"strconv"

	"github.com/chrisuehlinger/slotshim/dom"
)

// Script is a classic script found in a page, in document order.
type Script struct {
	Name    string // src URL, or "inline #n" for inline scripts
	Content string
	Inline  bool
}

// Scripts collects the page's classic scripts, fetching external ones
// relative to base. Module scripts and non-JavaScript types are skipped.
func (l *Loader) Scripts(ctx context.Context, doc *dom.Document, base string) ([]Script, error) {
	var scripts []Script
	for i, n := range doc.QuerySelectorAll("script").Slice() {
		el := n.AsElement()
		switch el.GetAttribute("type") {
		case "", "text/javascript", "application/javascript":
		default:
			continue
		}

		src := el.GetAttribute("src")
		if src == "" {
			scripts = append(scripts, Script{
				Name:    inlineName(i),
				Content: el.TextContent(),
				Inline:  true,
			})
			continue
		}

		ref, err := Resolve(base, src)
		if err != nil {
			return nil, err
		}
		res, err := l.Load(ctx, ref)
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, Script{Name: ref, Content: res.AsString()})
	}
	return scripts, nil
}

func inlineName(i int) string {
	return "inline #" + strconv.Itoa(i)
}

package wiki

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/thegrimgg/grimbot/characters"
)

// Placeholders written when a page lacks the corresponding section.
const (
	Missing     = "N/A"
	UnknownType = "Unknown"
)

// Extract pulls one character row out of a page's parsed HTML. Type is the
// raw text found on the page; callers normalise it with characters.ParseType.
func Extract(title, link, page string) (characters.Row, error) {
	root, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return characters.Row{}, err
	}
	return characters.Row{
		Name:   title,
		Rule:   extractRule(root),
		Flavor: extractFlavor(root),
		Type:   extractType(root),
		Link:   link,
	}, nil
}

func extractRule(root *html.Node) string {
	if summary := findFirst(root, withClass("div", "summary")); summary != nil {
		if p := findFirst(summary, isElement("p")); p != nil {
			if text := textOf(p); text != "" {
				return text
			}
		}
	}
	// Pages without a summary box: first substantial paragraph.
	var rule string
	walk(root, func(n *html.Node) bool {
		if !isElement("p")(n) {
			return true
		}
		text := textOf(n)
		if len(text) > 20 && !strings.HasPrefix(text, "Category") {
			rule = text
			return false
		}
		return true
	})
	if rule == "" {
		return Missing
	}
	return rule
}

func extractFlavor(root *html.Node) string {
	if div := findFirst(root, withClass("div", "flavour")); div != nil {
		if text := textOf(div); text != "" {
			return text
		}
	}
	return Missing
}

func extractType(root *html.Node) string {
	if details := findFirst(root, withID("character-details")); details != nil {
		if a := findFirst(details, isTypeLink); a != nil {
			return textOf(a)
		}
	}
	var found string
	walk(root, func(n *html.Node) bool {
		if !isElement("td")(n) {
			return true
		}
		if a := findFirst(n, isTypeLink); a != nil {
			found = textOf(a)
			return false
		}
		return true
	})
	if found != "" {
		return found
	}
	// Loric pages state the type as plain text: <tr><td>Type</td><td>Loric</td></tr>.
	walk(root, func(n *html.Node) bool {
		if !isElement("tr")(n) {
			return true
		}
		var cells []*html.Node
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if isElement("td")(c) {
				cells = append(cells, c)
			}
		}
		if len(cells) >= 2 && strings.ToLower(textOf(cells[0])) == "type" {
			found = textOf(cells[1])
			return false
		}
		return true
	})
	if found != "" {
		return found
	}
	return UnknownType
}

func isElement(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Type == html.ElementNode && n.Data == tag }
}

func withClass(tag, class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		if !isElement(tag)(n) {
			return false
		}
		for _, c := range strings.Fields(attr(n, "class")) {
			if c == class {
				return true
			}
		}
		return false
	}
}

func withID(id string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Type == html.ElementNode && attr(n, "id") == id }
}

func isTypeLink(n *html.Node) bool {
	return isElement("a")(n) && strings.Contains(attr(n, "href"), "Character_Types")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// walk visits n and its descendants depth first until visit returns false.
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if !visit(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}

func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	var found *html.Node
	walk(n, func(c *html.Node) bool {
		if match(c) {
			found = c
			return false
		}
		return true
	})
	return found
}

// textOf returns the node's text with runs of whitespace collapsed.
func textOf(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return strings.Join(strings.Fields(b.String()), " ")
}

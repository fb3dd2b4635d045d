package detail

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLToText renders an HTML mail body as plain terminal text. Script and
// style content is dropped, block elements start new lines and links keep
// their target in parentheses. Unparseable input is returned unchanged.
func HTMLToText(src string) string {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return src
	}

	w := &textWriter{}
	w.walk(doc)
	return w.String()
}

type textWriter struct {
	b       strings.Builder
	pending bool // a space is owed before the next word
	lines   int  // trailing newlines already written
}

func (w *textWriter) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.text(n.Data)
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Head, atom.Title:
			return
		case atom.Br:
			w.newline(1)
			return
		case atom.Hr:
			w.newline(1)
			w.raw("────────")
			w.newline(1)
			return
		case atom.Img:
			if alt := attr(n, "alt"); alt != "" {
				w.pending = true
				w.text("[" + alt + "]")
			}
			return
		case atom.Li:
			w.newline(1)
			w.raw("• ")
		}
	}

	block := isBlock(n)
	if block {
		w.newline(blockGap(n))
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}

	if n.Type == html.ElementNode && n.DataAtom == atom.A {
		if href := attr(n, "href"); href != "" && !strings.HasPrefix(href, "#") {
			w.pending = true
			w.text("(" + href + ")")
		}
	}
	if block {
		w.newline(blockGap(n))
	}
}

func (w *textWriter) text(s string) {
	if s == "" {
		return
	}
	if isSpace(s[0]) {
		w.pending = true
	}
	for i, word := range strings.Fields(s) {
		if (i > 0 || w.pending) && w.lines == 0 && w.b.Len() > 0 {
			w.b.WriteByte(' ')
		}
		w.b.WriteString(word)
		w.pending = false
		w.lines = 0
	}
	if isSpace(s[len(s)-1]) {
		w.pending = true
	}
}

func (w *textWriter) raw(s string) {
	w.b.WriteString(s)
	w.pending = false
	w.lines = 0
}

// newline ensures at least n line breaks end the output so far.
func (w *textWriter) newline(n int) {
	if w.b.Len() == 0 {
		return
	}
	for w.lines < n {
		w.b.WriteByte('\n')
		w.lines++
	}
	w.pending = false
}

func (w *textWriter) String() string {
	return strings.TrimSpace(w.b.String())
}

func isBlock(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.P, atom.Div, atom.Table, atom.Tr, atom.Ul, atom.Ol,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Blockquote, atom.Pre, atom.Section, atom.Article,
		atom.Header, atom.Footer:
		return true
	}
	return false
}

func blockGap(n *html.Node) int {
	switch n.DataAtom {
	case atom.P, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Blockquote, atom.Table:
		return 2
	}
	return 1
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\t' || c == '\r'
}

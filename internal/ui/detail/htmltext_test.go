package detail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTMLToText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"paragraphs", `<p>Hello <b>world</b></p><p>Second</p>`, "Hello world\n\nSecond"},
		{"inline join", `<p>Hel<b>lo</b></p>`, "Hello"},
		{"line break", `Hi<br>there`, "Hi\nthere"},
		{"script dropped", `<html><head><style>p{}</style></head><body><script>alert(1)</script>Body</body></html>`, "Body"},
		{"link target", `Click <a href="https://x.test/verify">here</a>.`, "Click here (https://x.test/verify)."},
		{"anchor link", `<a href="#top">top</a>`, "top"},
		{"list", `<ul><li>one</li><li>two</li></ul>`, "• one\n• two"},
		{"image alt", `<img src="x.png" alt="logo">`, "[logo]"},
		{"whitespace collapse", "<div>  a \n\t b  </div>", "a b"},
		{"entities", `<p>Tom &amp; Jerry</p>`, "Tom & Jerry"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTMLToText(tc.in))
		})
	}
}

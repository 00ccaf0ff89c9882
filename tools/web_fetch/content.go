package web_fetch

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/go-shiori/go-readability"
)

// Matches the copyright rubble most campus pages append to their footer; the
// marker and everything after it on the line carries no content.
var copyrightRe = regexp.MustCompile(`©[^\n]*`)

// ExtractText strips markup (scripts, styles, navigation chrome) from raw
// HTML and returns the readable text.
func ExtractText(html, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		u = &url.URL{}
	}
	article, err := readability.FromReader(strings.NewReader(html), u)
	if err != nil {
		return "", err
	}
	return article.TextContent, nil
}

// CleanText normalises extracted page text: copyright artifacts go, non-ASCII
// runes go, whitespace collapses to single spaces.
func CleanText(s string) string {
	s = copyrightRe.ReplaceAllString(s, "")
	var b strings.Builder
	for _, r := range s {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

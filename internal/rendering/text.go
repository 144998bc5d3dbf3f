package rendering

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText extracts the readable text of rendered HTML, one block per
// line with a blank line before each section heading.
func PlainText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", &RenderError{Message: "failed to parse HTML", Cause: err}
	}
	doc.Find("head, style, script, img").Remove()

	var lines []string
	doc.Find("h1, h2, h3, h4, p, li").Each(func(_ int, s *goquery.Selection) {
		text := strings.Join(strings.Fields(s.Text()), " ")
		if text == "" {
			return
		}
		if goquery.NodeName(s) == "h3" && len(lines) > 0 {
			lines = append(lines, "")
			text = strings.ToUpper(text)
		}
		lines = append(lines, text)
	})

	return strings.Join(lines, "\n") + "\n", nil
}

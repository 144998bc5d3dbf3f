package export

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/cv-builder/internal/types"
)

const printCSS = `@page { size: A4; margin: 0; }
@media print {
  body { -webkit-print-color-adjust: exact; print-color-adjust: exact; }
  section, .entry { break-inside: avoid; }
}`

// Printable returns html with print styles and the given document title,
// ready to hand to a browser print dialog.
func Printable(html, title string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", &ExportError{Format: "print", Message: "failed to parse HTML", Cause: err}
	}

	head := doc.Find("head")
	titles := head.Find("title")
	if titles.Length() == 0 {
		head.AppendHtml("<title></title>")
		titles = head.Find("title")
	}
	titles.First().SetText(title)
	titles.Slice(1, titles.Length()).Remove()

	style := doc.Find("style#print")
	if style.Length() == 0 {
		head.AppendHtml(`<style id="print" media="print"></style>`)
		style = head.Find("style#print")
	}
	style.SetText(printCSS)

	out, err := doc.Html()
	if err != nil {
		return "", &ExportError{Format: "print", Message: "failed to serialize HTML", Cause: err}
	}
	return out, nil
}

// FileName is the download name for doc with the given extension,
// e.g. "CV-Ana García.pdf".
func FileName(doc *types.ResumeDocument, ext string) string {
	name := strings.TrimSpace(doc.PersonalInfo.FullName)
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return -1
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		name = "Resume"
	}
	return "CV-" + name + "." + strings.TrimPrefix(ext, ".")
}

package export

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/resume"
	"github.com/jonathan/cv-builder/internal/types"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		ext      string
		want     string
	}{
		{"full name", "Ana García", "pdf", "CV-Ana García.pdf"},
		{"empty name", "", "pdf", "CV-Resume.pdf"},
		{"whitespace name", "   ", "png", "CV-Resume.png"},
		{"leading dot ext", "Ana", ".txt", "CV-Ana.txt"},
		{"path separators stripped", "../etc/passwd", "pdf", "CV-..etcpasswd.pdf"},
		{"only dots", "..", "pdf", "CV-Resume.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := resume.New()
			doc.PersonalInfo.FullName = tt.fullName
			assert.Equal(t, tt.want, FileName(doc, tt.ext))
		})
	}
}

func TestPrintable(t *testing.T) {
	html, err := rendering.Render(resume.New(), rendering.Options{})
	require.NoError(t, err)

	out, err := Printable(html, "CV - Ana")
	require.NoError(t, err)

	d, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 1, d.Find("title").Length())
	assert.Equal(t, "CV - Ana", d.Find("title").Text())
	assert.Contains(t, d.Find("style#print").Text(), "size: A4")
	assert.Equal(t, "Your Name", d.Find("h1").Text())

	again, err := Printable(out, "CV - Ana")
	require.NoError(t, err)
	d2, err := goquery.NewDocumentFromReader(strings.NewReader(again))
	require.NoError(t, err)
	assert.Equal(t, 1, d2.Find("style#print").Length())
}

func TestPrintable_AddsMissingTitle(t *testing.T) {
	out, err := Printable("<p>hello</p>", "CV - <Resume>")
	require.NoError(t, err)
	assert.Contains(t, out, "<title>CV - &lt;Resume&gt;</title>")
	assert.Contains(t, out, "<p>hello</p>")
}

func TestNew_ClampsScale(t *testing.T) {
	assert.Equal(t, 1, New("", 0).Scale())
	assert.Equal(t, 2, New("", 2).Scale())
	assert.Equal(t, 4, New("", 9).Scale())
}

func TestFindChrome_MissingExplicitPath(t *testing.T) {
	_, ok := FindChrome("/nonexistent/chrome-binary")
	assert.False(t, ok)
}

func browserExporter(t *testing.T) *Exporter {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser export in short mode")
	}
	path, ok := FindChrome("")
	if !ok {
		t.Skip("no Chrome or Chromium found on PATH")
	}
	return New(path, 1).WithTimeout(90 * time.Second)
}

func sampleHTML(t *testing.T) string {
	t.Helper()
	doc := resume.New()
	doc.PersonalInfo = types.PersonalInfo{FullName: "Ana García", Email: "ana@example.com"}
	html, err := rendering.Render(doc, rendering.Options{Template: "professional"})
	require.NoError(t, err)
	return html
}

func TestExporter_PDF(t *testing.T) {
	e := browserExporter(t)

	buf, err := e.PDF(context.Background(), sampleHTML(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf, []byte("%PDF-")))
}

func TestExporter_Bundle(t *testing.T) {
	e := browserExporter(t)

	out, err := e.Bundle(context.Background(), sampleHTML(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out.PDF, []byte("%PDF-")))
	assert.True(t, bytes.HasPrefix(out.PNG, []byte("\x89PNG")))
}

func TestExporter_CanceledContext(t *testing.T) {
	e := browserExporter(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.PDF(ctx, sampleHTML(t))
	require.Error(t, err)
	var exportErr *ExportError
	assert.ErrorAs(t, err, &exportErr)
}

// Package export converts rendered resume HTML into PDF and PNG files
// using a headless Chrome instance.
package export

import (
	"context"
	"fmt"
	"log"
	"os/exec"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"golang.org/x/sync/errgroup"
)

// A4 paper size in inches and its CSS pixel equivalent at 96 dpi.
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
	pageWidthPx       = 794
	pageHeightPx      = 1123
)

// DefaultTimeout bounds a single browser run.
const DefaultTimeout = 60 * time.Second

var browserNames = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"headless-shell",
}

// FindChrome returns the browser executable to use. An explicit path wins;
// otherwise well-known names are looked up on PATH.
func FindChrome(path string) (string, bool) {
	if path != "" {
		if p, err := exec.LookPath(path); err == nil {
			return p, true
		}
		return "", false
	}
	for _, name := range browserNames {
		if p, err := exec.LookPath(name); err == nil {
			return p, true
		}
	}
	return "", false
}

// ExportError represents a failed browser conversion
type ExportError struct {
	Format  string
	Message string
	Cause   error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s export failed: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s export failed: %s", e.Format, e.Message)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}

// Exporter drives headless Chrome to print HTML documents.
type Exporter struct {
	chromePath string
	scale      int
	timeout    time.Duration
}

// New creates an Exporter. scale is the PNG device scale factor (1-4);
// chromePath may be empty to use the browser found on PATH.
func New(chromePath string, scale int) *Exporter {
	if scale < 1 {
		scale = 1
	}
	if scale > 4 {
		scale = 4
	}
	return &Exporter{chromePath: chromePath, scale: scale, timeout: DefaultTimeout}
}

// WithTimeout returns a copy of e with a different per-run timeout.
func (e *Exporter) WithTimeout(d time.Duration) *Exporter {
	c := *e
	c.timeout = d
	return &c
}

// Scale returns the PNG device scale factor.
func (e *Exporter) Scale() int {
	return e.scale
}

func (e *Exporter) run(ctx context.Context, html string, actions ...chromedp.Action) error {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if e.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(e.chromePath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, e.timeout)
	defer cancel()

	steps := []chromedp.Action{
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}
	return chromedp.Run(browserCtx, append(steps, actions...)...)
}

// PDF prints html to an A4 PDF with backgrounds.
func (e *Exporter) PDF(ctx context.Context, html string) ([]byte, error) {
	start := time.Now()
	var buf []byte
	err := e.run(ctx, html, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		buf, _, err = page.PrintToPDF().
			WithPrintBackground(true).
			WithPaperWidth(paperWidthInches).
			WithPaperHeight(paperHeightInches).
			WithMarginTop(0).
			WithMarginBottom(0).
			WithMarginLeft(0).
			WithMarginRight(0).
			WithPreferCSSPageSize(true).
			Do(ctx)
		return err
	}))
	if err != nil {
		log.Printf("[export] PDF failed after %v: %v", time.Since(start), err)
		return nil, &ExportError{Format: "pdf", Message: "browser run failed", Cause: err}
	}
	log.Printf("[export] PDF rendered: %d bytes in %v", len(buf), time.Since(start))
	return buf, nil
}

// PNG captures a full-page screenshot of html at the exporter's scale.
func (e *Exporter) PNG(ctx context.Context, html string) ([]byte, error) {
	start := time.Now()
	var buf []byte
	err := e.run(ctx, html,
		chromedp.EmulateViewport(pageWidthPx, pageHeightPx, chromedp.EmulateScale(float64(e.scale))),
		chromedp.FullScreenshot(&buf, 100),
	)
	if err != nil {
		log.Printf("[export] PNG failed after %v: %v", time.Since(start), err)
		return nil, &ExportError{Format: "png", Message: "browser run failed", Cause: err}
	}
	log.Printf("[export] PNG rendered: %d bytes at scale %d in %v", len(buf), e.scale, time.Since(start))
	return buf, nil
}

// Artifacts holds the outputs of Bundle.
type Artifacts struct {
	PDF []byte
	PNG []byte
}

// Bundle produces the PDF and PNG concurrently. Either failure cancels the other.
func (e *Exporter) Bundle(ctx context.Context, html string) (*Artifacts, error) {
	var out Artifacts
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		buf, err := e.PDF(gctx, html)
		out.PDF = buf
		return err
	})
	g.Go(func() error {
		buf, err := e.PNG(gctx, html)
		out.PNG = buf
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

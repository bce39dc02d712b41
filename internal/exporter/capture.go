package exporter

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Capture viewport before the 2x density scale is applied.
const (
	captureViewportWidth  = 1440
	captureViewportHeight = 900
	captureScale          = 2
)

// ChromeCapturer renders pages in headless Chrome. Each call runs in a fresh
// browser context; the capture runs to completion or failure with no retry.
type ChromeCapturer struct {
	allocOpts []chromedp.ExecAllocatorOption
	logger    *slog.Logger
}

// NewChromeCapturer creates a chromedp-backed capturer.
func NewChromeCapturer(headless bool, logger *slog.Logger) *ChromeCapturer {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts, chromedp.Flag("headless", headless))
	return &ChromeCapturer{
		allocOpts: opts,
		logger:    logger.With(slog.String("component", "chrome_capturer")),
	}
}

// CaptureRegion navigates to pageURL and screenshots the selector's region as
// PNG at 2x pixel density on a white background. A selector matching no node
// fails with ErrCaptureTargetMissing.
func (c *ChromeCapturer) CaptureRegion(ctx context.Context, pageURL, selector string) ([]byte, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, c.allocOpts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	c.logger.InfoContext(ctx, "capturing dashboard region",
		slog.String("url", pageURL),
		slog.String("selector", selector))

	var nodes []*cdp.Node
	var shot []byte
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(captureViewportWidth, captureViewportHeight, chromedp.EmulateScale(captureScale)),
		emulation.SetDefaultBackgroundColorOverride().WithColor(&cdp.RGBA{R: 255, G: 255, B: 255, A: 1}),
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Nodes(selector, &nodes, chromedp.ByQuery, chromedp.AtLeast(0)),
		chromedp.ActionFunc(func(ctx context.Context) error {
			if len(nodes) == 0 {
				return fmt.Errorf("%w: selector %q", ErrCaptureTargetMissing, selector)
			}
			return nil
		}),
		chromedp.Screenshot(selector, &shot, chromedp.NodeVisible, chromedp.ByQuery),
	)
	if err != nil {
		return nil, err
	}
	return shot, nil
}

// RenderPDF prints a self-contained HTML document to PDF in landscape with
// backgrounds enabled. The document is loaded through a data: URL, so it must
// not reference external resources.
func (c *ChromeCapturer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, c.allocOpts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	dataURL := "data:text/html;charset=utf-8;base64," + base64.StdEncoding.EncodeToString([]byte(html))

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithLandscape(true).
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "rendered report PDF", slog.Int("bytes", len(pdf)))
	return pdf, nil
}

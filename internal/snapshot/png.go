package snapshot

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/chromedp/chromedp"

	game_log "github.com/NimaJafariComp/NimaJafariComp.github.io/internal/log"
)

// PNG rasterises an SVG document with headless Chrome. It needs a Chrome or
// Chromium binary on the PATH.
func PNG(ctx context.Context, svg []byte, logger *game_log.Logger) ([]byte, error) {
	logger = logger.Tag("SNAPSHOT")
	dataURI := "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(svg)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Headless,
		chromedp.DisableGPU,
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	cctx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	var buf []byte
	tasks := chromedp.Tasks{
		chromedp.Navigate(dataURI),
		chromedp.WaitVisible(`svg`, chromedp.ByQuery),
		chromedp.Screenshot(`svg`, &buf, chromedp.ByQuery),
	}
	logger.Debugf("rendering %d bytes of svg", len(svg))
	if err := chromedp.Run(cctx, tasks); err != nil {
		return nil, fmt.Errorf("snapshot: chrome: %w", err)
	}
	if len(buf) == 0 {
		return nil, fmt.Errorf("snapshot: empty screenshot")
	}
	logger.Infof("png %d bytes", len(buf))
	return buf, nil
}

package browser

import (
	"context"
	"fmt"
	"sync"

	"github.com/chromedp/chromedp"

	"github.com/raysh454/mycv/internal/logging"
)

// monthProbeScript creates an input, asks for type=month and reports whether
// the engine kept it. Engines without the control fall back to "text".
const monthProbeScript = `(() => {
	const input = document.createElement('input');
	input.setAttribute('type', 'month');
	return input.type === 'month';
})()`

// ChromeProber answers capability questions with a headless Chrome. The
// browser process is started lazily on the first probe and shared after
// that; Close releases it.
type ChromeProber struct {
	headless bool
	logger   logging.Logger

	mu          sync.Mutex
	allocCtx    context.Context
	allocCancel context.CancelFunc
	cached      *bool
}

func NewChromeProber(headless bool, logger logging.Logger) *ChromeProber {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &ChromeProber{
		headless: headless,
		logger:   logger.With(logging.Field{Key: "component", Value: "chrome_prober"}),
	}
}

func (p *ChromeProber) allocator() context.Context {
	if p.allocCtx != nil {
		return p.allocCtx
	}
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts, chromedp.Flag("headless", p.headless))
	p.allocCtx, p.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	return p.allocCtx
}

// SupportsMonthInput runs the probe once per prober and caches the answer.
func (p *ChromeProber) SupportsMonthInput(ctx context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cached != nil {
		return *p.cached, nil
	}

	tabCtx, cancel := chromedp.NewContext(p.allocator())
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var supported bool
	err := chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		chromedp.Evaluate(monthProbeScript, &supported),
	)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		p.logger.Warn("month input probe failed", logging.Field{Key: "error", Value: err})
		return false, fmt.Errorf("chrome probe: %w", err)
	}

	p.logger.Debug("month input probe", logging.Field{Key: "supported", Value: supported})
	p.cached = &supported
	return supported, nil
}

// Close shuts down the browser process, if one was started.
func (p *ChromeProber) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.allocCancel != nil {
		p.allocCancel()
		p.allocCtx, p.allocCancel = nil, nil
	}
	return nil
}

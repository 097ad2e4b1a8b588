// Package browser implements dom.Page over a live page driven by headless Chrome.
package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"github.com/jonathan/jobfiller/internal/dom"
)

// Options configures the headless browser session.
type Options struct {
	// Timeout bounds page load.
	Timeout time.Duration
	// Settle is how long to wait after load for scripts to render the form.
	Settle time.Duration
	// ActionTimeout bounds each read or write on the loaded page.
	ActionTimeout time.Duration
	Headless      bool
}

// DefaultOptions returns sensible defaults for form pages.
func DefaultOptions() Options {
	return Options{
		Timeout:       30 * time.Second,
		Settle:        2 * time.Second,
		ActionTimeout: 10 * time.Second,
		Headless:      true,
	}
}

// Page is a loaded browser tab. Close it when done.
type Page struct {
	ctx    context.Context
	cancel context.CancelFunc
	opts   Options
}

// Open starts a browser, navigates to url and waits for the body to be ready.
// Requires Chrome/Chromium to be installed on the system.
func Open(ctx context.Context, url string, opts Options) (*Page, error) {
	log.Debug().Str("url", url).Msg("starting headless browser")

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", opts.Headless),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	cancel := func() {
		cancelBrowser()
		cancelAlloc()
	}

	loadCtx, cancelLoad := context.WithTimeout(browserCtx, opts.Timeout)
	defer cancelLoad()

	err := chromedp.Run(loadCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(opts.Settle),
	)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("browser failed to load %s: %w", url, err)
	}

	return &Page{ctx: browserCtx, cancel: cancel, opts: opts}, nil
}

// Close shuts the browser down.
func (p *Page) Close() {
	if p.cancel != nil {
		p.cancel()
	}
}

// run executes actions in the tab, bounded by the action timeout and the caller's context.
func (p *Page) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx, cancel := context.WithTimeout(p.ctx, p.opts.ActionTimeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(runCtx, actions...)
}

// Controls snapshots every control and tags each with its index for later writes.
func (p *Page) Controls(ctx context.Context) ([]*dom.Control, error) {
	var controls []*dom.Control
	if err := p.run(ctx, chromedp.Evaluate(snapshotScript, &controls)); err != nil {
		return nil, fmt.Errorf("failed to snapshot controls: %w", err)
	}
	return controls, nil
}

// Attached reports whether the tagged control is still in the document.
func (p *Page) Attached(ctx context.Context, c *dom.Control) bool {
	var ok bool
	if err := p.run(ctx, chromedp.Evaluate(fmt.Sprintf(attachedScript, c.Index), &ok)); err != nil {
		return false
	}
	return ok
}

// SetValue assigns the control's value; for selects the value must name an option.
func (p *Page) SetValue(ctx context.Context, c *dom.Control, value string) error {
	literal, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return p.write(ctx, c, fmt.Sprintf(setValueScript, c.Index, literal, literal), value)
}

// SetChecked sets the checked state of a checkbox or radio.
func (p *Page) SetChecked(ctx context.Context, c *dom.Control, checked bool) error {
	return p.write(ctx, c, fmt.Sprintf(setCheckedScript, c.Index, checked), "")
}

// Dispatch fires a bubbling event on the control.
func (p *Page) Dispatch(ctx context.Context, c *dom.Control, event string) error {
	literal, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.write(ctx, c, fmt.Sprintf(dispatchScript, c.Index, literal), "")
}

func (p *Page) write(ctx context.Context, c *dom.Control, script, value string) error {
	var status string
	if err := p.run(ctx, chromedp.Evaluate(script, &status)); err != nil {
		return fmt.Errorf("browser write to %s failed: %w", c, err)
	}
	switch status {
	case "ok":
		return nil
	case "detached":
		return &dom.DetachedError{Control: c.String()}
	case "nooption":
		return &dom.NoOptionError{Control: c.String(), Value: value}
	default:
		return fmt.Errorf("browser write to %s returned %q", c, status)
	}
}

// HTML returns the rendered document.
func (p *Page) HTML(ctx context.Context) (string, error) {
	var html string
	if err := p.run(ctx, chromedp.OuterHTML("html", &html)); err != nil {
		return "", fmt.Errorf("failed to read rendered HTML: %w", err)
	}
	return html, nil
}

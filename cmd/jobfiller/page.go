package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/jobfiller/internal/dom"
	"github.com/jonathan/jobfiller/internal/dom/browser"
	"github.com/jonathan/jobfiller/internal/dom/htmlpage"
	"github.com/jonathan/jobfiller/internal/fetch"
	"github.com/jonathan/jobfiller/internal/logging"
)

// pageSource selects where a form page comes from. Exactly one of File and
// URL is set.
type pageSource struct {
	File    string
	URL     string
	Domain  string
	Browser bool
}

// openedPage is a loaded form page and the domain its mappings are stored under.
type openedPage struct {
	dom.Page
	Domain string
	html   func(ctx context.Context) (string, error)
	close  func()
}

// HTML serializes the page in its current state.
func (p *openedPage) HTML(ctx context.Context) (string, error) {
	return p.html(ctx)
}

// Close releases the page.
func (p *openedPage) Close() {
	if p.close != nil {
		p.close()
	}
}

func (src pageSource) validate() error {
	if src.File == "" && src.URL == "" {
		return fmt.Errorf("either --file or --url must be provided")
	}
	if src.File != "" && src.URL != "" {
		return fmt.Errorf("--file and --url are mutually exclusive; provide only one")
	}
	return nil
}

// openPage loads the page named by src. Live pages are opened in headless
// Chrome when requested, when the platform renders its form client side, or
// when the static HTML has no controls.
func openPage(ctx context.Context, src pageSource) (*openedPage, error) {
	if err := src.validate(); err != nil {
		return nil, err
	}

	if src.File != "" {
		content, err := os.ReadFile(src.File)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", src.File, err)
		}
		return staticPage(string(content), src.Domain)
	}

	platform := fetch.DetectPlatform(src.URL)
	if src.Browser || fetch.RendersClientSide(platform) {
		domain := src.Domain
		if domain == "" {
			d, err := fetch.Domain(src.URL)
			if err != nil {
				return nil, err
			}
			domain = d
		}
		return browserPage(ctx, src.URL, domain)
	}

	fetched, err := fetch.Get(ctx, src.URL)
	if err != nil {
		return nil, err
	}
	// Mappings are keyed by the host that served the form, not a shortener in front of it.
	domain := src.Domain
	if domain == "" {
		domain = fetched.Domain()
	}
	page, err := staticPage(fetched.Body, domain)
	if err != nil {
		return nil, err
	}
	controls, err := page.Controls(ctx)
	if err != nil {
		return nil, err
	}
	if fetch.ShouldUseBrowser(fetch.DetectPlatform(fetched.FinalURL), len(controls)) {
		logging.Ctx(ctx).Info().Str("url", fetched.FinalURL).Msg("static page has no form controls, opening in browser")
		return browserPage(ctx, fetched.FinalURL, domain)
	}
	return page, nil
}

func staticPage(content, domain string) (*openedPage, error) {
	page, err := htmlpage.FromString(content)
	if err != nil {
		return nil, err
	}
	return &openedPage{
		Page:   page,
		Domain: domain,
		html:   func(context.Context) (string, error) { return page.HTML() },
	}, nil
}

func browserPage(ctx context.Context, url, domain string) (*openedPage, error) {
	page, err := browser.Open(ctx, url, browser.DefaultOptions())
	if err != nil {
		return nil, err
	}
	return &openedPage{
		Page:   page,
		Domain: domain,
		html:   page.HTML,
		close:  page.Close,
	}, nil
}

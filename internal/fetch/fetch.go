// Package fetch retrieves application pages and résumé documents over HTTP
// and reduces HTML to text.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

const (
	// DefaultTimeout bounds one request including redirects.
	DefaultTimeout = 30 * time.Second

	// MaxBodyBytes caps a downloaded page or résumé.
	MaxBodyBytes = 10 << 20

	userAgent = "Mozilla/5.0 (compatible; JobFiller/1.0)"
)

var client = &http.Client{Timeout: DefaultTimeout}

// Page is a fetched document with its body decoded to UTF-8.
type Page struct {
	// FinalURL is where the request landed after redirects.
	FinalURL   string
	Body       string
	MediaType  string
	Charset    string
	StatusCode int
}

// Domain returns the mapping key of the host the page was served from.
func (p *Page) Domain() string {
	d, _ := Domain(p.FinalURL)
	return d
}

// IsJSON reports whether the server labelled the body as JSON.
func (p *Page) IsJSON() bool {
	return p.MediaType == "application/json" || strings.HasSuffix(p.MediaType, "+json")
}

// IsHTML reports whether the server labelled the body as HTML.
func (p *Page) IsHTML() bool {
	return p.MediaType == "text/html" || p.MediaType == "application/xhtml+xml"
}

// Error represents an error during URL fetching.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Get downloads urlStr, following redirects. A non-200 response returns the
// page alongside an *Error.
func Get(ctx context.Context, urlStr string) (*Page, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	contentType := resp.Header.Get("Content-Type")
	page := &Page{
		FinalURL:   resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
	}
	if mediaType, params, err := mime.ParseMediaType(contentType); err == nil {
		page.MediaType = mediaType
		page.Charset = strings.ToLower(params["charset"])
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}
	if len(body) > MaxBodyBytes {
		return nil, &Error{URL: urlStr, Message: fmt.Sprintf("response larger than %d bytes", MaxBodyBytes)}
	}

	page.Body, err = decode(body, contentType, page.Charset)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to decode response body", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return page, &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}
	return page, nil
}

// decode converts body to UTF-8. A declared charset wins; an undeclared body
// that is already valid UTF-8 is kept, otherwise a byte-order mark or HTML
// meta tag decides and windows-1252 is the last resort.
func decode(body []byte, contentType, declared string) (string, error) {
	if declared == "" && utf8.Valid(body) {
		return strings.TrimPrefix(string(body), "\uFEFF"), nil
	}
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return "", err
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

const noiseSelector = "nav, footer, header, script, style, noscript, .ad, .advertisement, .ads, .sidebar, .cookie-banner, .popup"

var contentSelectors = []string{"main", "article", ".content", "#content", ".main-content", "#main-content"}

// MainText parses HTML and returns the text of its main content block, or of
// the body when no content block is marked up. Navigation and chrome are dropped.
func MainText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find(noiseSelector).Remove()

	content := doc.Find("body")
	for _, selector := range contentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			content = selection.First()
			break
		}
	}
	return cleanWhitespace(content.Text()), nil
}

// Domain returns the key under which per-site field mappings are stored:
// the lowercased host without port or a leading "www.".
func Domain(urlStr string) (string, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Host == "" {
		return "", &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}
	host := strings.ToLower(parsed.Hostname())
	return strings.TrimPrefix(host, "www."), nil
}

// cleanWhitespace trims every line and drops blank ones.
func cleanWhitespace(text string) string {
	var cleaned []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}

package web_fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/siue-cs/eddiebot/config"
	"github.com/siue-cs/eddiebot/tools/web_fetch/cache"
	cdp "github.com/siue-cs/eddiebot/tools/web_fetch/chromedp"
)

const (
	DefaultStaticTimeout  = 10 * time.Second
	DefaultMinStaticChars = 500
)

// ErrLikelyScriptRendered signals that a static fetch succeeded but produced
// too little text, which usually means the page body is built by scripts.
var ErrLikelyScriptRendered = errors.New("likely script-rendered page")

// FetchError is the single failure kind surfaced by the fetcher: network
// errors, timeouts and render-engine errors all fold into it. Callers treat
// it as "this URL yielded no context".
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("fetch %s: %v", e.URL, e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher retrieves cleaned text content from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Renderer is the narrow contract with the headless browser: fully rendered
// HTML, or an error.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// PageFetcher tries a lightweight static GET first and falls back to the
// renderer exactly once when the static result looks script-rendered or the
// static fetch fails. Every lookup goes through the cache; every successful
// fetch populates it.
type PageFetcher struct {
	cache          *cache.Cache
	client         *http.Client
	renderer       Renderer
	minStaticChars int
	logger         *log.Logger
}

func NewFetcher(cfg config.FetcherConfig, pc *cache.Cache) *PageFetcher {
	staticTimeout := cfg.StaticTimeout
	if staticTimeout <= 0 {
		staticTimeout = DefaultStaticTimeout
	}
	minChars := cfg.MinStaticChars
	if minChars <= 0 {
		minChars = DefaultMinStaticChars
	}
	return &PageFetcher{
		cache:          pc,
		client:         &http.Client{Timeout: staticTimeout},
		renderer:       cdp.Renderer{Timeout: cfg.RenderTimeout},
		minStaticChars: minChars,
		logger:         log.New(log.Writer(), "[FETCH] ", log.LstdFlags),
	}
}

// WithRenderer swaps the headless-browser collaborator; tests use it.
func (f *PageFetcher) WithRenderer(r Renderer) *PageFetcher {
	f.renderer = r
	return f
}

func (f *PageFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if text, ok := f.cache.Load(url); ok {
		return text, nil
	}

	text, err := f.fetchStatic(ctx, url)
	if err != nil {
		f.logger.Printf("static fetch failed for %s: %v, falling back to renderer", url, err)
		text, err = f.fetchRendered(ctx, url)
		if err != nil {
			return "", &FetchError{URL: url, Err: err}
		}
	}

	if err := f.cache.Save(url, text); err != nil {
		f.logger.Printf("cache save failed for %s: %v", url, err)
	}
	return text, nil
}

func (f *PageFetcher) fetchStatic(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	raw, err := ExtractText(string(body), url)
	if err != nil {
		return "", err
	}
	text := CleanText(raw)
	if len(text) < f.minStaticChars {
		return "", ErrLikelyScriptRendered
	}
	return text, nil
}

func (f *PageFetcher) fetchRendered(ctx context.Context, url string) (string, error) {
	html, err := f.renderer.Render(ctx, url)
	if err != nil {
		return "", err
	}
	raw, err := ExtractText(html, url)
	if err != nil {
		return "", err
	}
	return CleanText(raw), nil
}

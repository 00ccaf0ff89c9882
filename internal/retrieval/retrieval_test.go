package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/siue-cs/eddiebot/internal/sources"
	"github.com/siue-cs/eddiebot/tools/web_fetch"
)

type stubFetcher struct {
	texts map[string]string
	calls []string
}

func (f *stubFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.calls = append(f.calls, url)
	text, ok := f.texts[url]
	if !ok {
		return "", &web_fetch.FetchError{URL: url, Err: errors.New("unreachable")}
	}
	return text, nil
}

func TestSelectSourcesKnownCategory(t *testing.T) {
	urls := SelectSources("events", "what events are there?")
	curated := sources.ForCategory("events")
	if len(urls) == 0 || len(urls) > 3 {
		t.Fatalf("got %d urls", len(urls))
	}
	for i, u := range urls {
		if u != curated[i] {
			t.Errorf("url %d = %q, outside the curated set", i, u)
		}
	}
}

func TestSelectSourcesGeneralKeywords(t *testing.T) {
	urls := SelectSources("general", "Where is the dining hall near my dorm?")
	if len(urls) != 2 {
		t.Fatalf("got %v", urls)
	}
	want := map[string]bool{
		"https://www.siue.edu/housing/": true,
		"https://www.siue.edu/dining/":  true,
	}
	for _, u := range urls {
		if !want[u] {
			t.Errorf("unexpected url %q", u)
		}
	}
}

func TestSelectSourcesGeneralDefaults(t *testing.T) {
	urls := SelectSources("general", "hello there")
	if len(urls) != 2 {
		t.Fatalf("got %v", urls)
	}
	if urls[0] != "https://www.siue.edu/" || urls[1] != "https://www.siue.edu/about/" {
		t.Errorf("default urls = %v", urls)
	}
}

func TestSelectSourcesGeneralCap(t *testing.T) {
	msg := "housing dining admissions academics engineering recreation"
	urls := SelectSources("general", msg)
	if len(urls) != 3 {
		t.Errorf("got %d urls, want cap of 3", len(urls))
	}
}

func TestRetrieveContextJoinsTexts(t *testing.T) {
	curated := sources.ForCategory("events")
	f := &stubFetcher{texts: map[string]string{
		curated[0]: "first page",
		curated[1]: "second page",
	}}
	got := New(f).RetrieveContext(context.Background(), "events", "events?")
	if got != "first page\n\nsecond page" {
		t.Errorf("RetrieveContext = %q", got)
	}
}

func TestRetrieveContextSkipsFailedURLs(t *testing.T) {
	curated := sources.ForCategory("events")
	f := &stubFetcher{texts: map[string]string{
		curated[1]: "only survivor",
	}}
	got := New(f).RetrieveContext(context.Background(), "events", "events?")
	if got != "only survivor" {
		t.Errorf("RetrieveContext = %q", got)
	}
	if len(f.calls) != len(curated) {
		t.Errorf("fetcher called %d times, want %d (failure must not abort the batch)", len(f.calls), len(curated))
	}
}

func TestRetrieveContextAllFail(t *testing.T) {
	f := &stubFetcher{}
	got := New(f).RetrieveContext(context.Background(), "events", "events?")
	if got != "" {
		t.Errorf("RetrieveContext = %q, want empty string", got)
	}
}

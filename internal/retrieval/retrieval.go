package retrieval

import (
	"context"
	"log"
	"strings"

	"github.com/siue-cs/eddiebot/internal/sources"
	"github.com/siue-cs/eddiebot/tools/web_fetch"
)

const maxSources = 3

// keyword groups scanned for "general" questions; order determines which
// URLs win when more than three groups match
var keywordSources = []struct {
	keywords []string
	url      string
}{
	{[]string{"housing", "dorm", "residence"}, "https://www.siue.edu/housing/"},
	{[]string{"dining", "meal plan", "food"}, "https://www.siue.edu/dining/"},
	{[]string{"admission", "apply"}, "https://www.siue.edu/admissions/"},
	{[]string{"major", "program", "degree", "academics"}, "https://www.siue.edu/academics/"},
	{[]string{"engineering"}, "https://www.siue.edu/engineering/"},
	{[]string{"recreation", "gym", "fitness"}, "https://www.siue.edu/campus-recreation/"},
}

var defaultSources = []string{
	"https://www.siue.edu/",
	"https://www.siue.edu/about/",
}

// Retriever gathers page text for a classified question.
type Retriever struct {
	fetcher web_fetch.Fetcher
	logger  *log.Logger
}

func New(fetcher web_fetch.Fetcher) *Retriever {
	return &Retriever{
		fetcher: fetcher,
		logger:  log.New(log.Writer(), "[RETRIEVE] ", log.LstdFlags),
	}
}

// SelectSources picks at most three candidate URLs. Known categories use
// their curated list; "general" questions are scanned for keyword groups and
// fall back to the two default institutional pages.
func SelectSources(category, message string) []string {
	urls := sources.ForCategory(category)
	if category != "general" {
		if len(urls) > maxSources {
			urls = urls[:maxSources]
		}
		return urls
	}

	m := strings.ToLower(message)
	var picked []string
	for _, group := range keywordSources {
		for _, k := range group.keywords {
			if strings.Contains(m, k) {
				picked = append(picked, group.url)
				break
			}
		}
	}
	if len(picked) == 0 {
		picked = append(picked, defaultSources...)
	}
	if len(picked) > maxSources {
		picked = picked[:maxSources]
	}
	return picked
}

// RetrieveContext fetches every selected source and joins the texts with a
// blank line. A URL that fails to fetch is logged and skipped; it never
// aborts the batch. An empty result is a valid outcome, not an error.
func (r *Retriever) RetrieveContext(ctx context.Context, category, message string) string {
	var texts []string
	for _, url := range SelectSources(category, message) {
		text, err := r.fetcher.Fetch(ctx, url)
		if err != nil {
			r.logger.Printf("fetch error for %s: %v", url, err)
			continue
		}
		texts = append(texts, text)
	}
	return strings.Join(texts, "\n\n")
}

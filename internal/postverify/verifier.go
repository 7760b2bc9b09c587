// Package postverify checks that a submitted post proof URL resolves to a
// real published page. It is the automated half of the proof verification
// step; an operator can still flip the flag by hand.
package postverify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

type CheckResult struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Published   bool      `json:"published"`
	CheckedAt   time.Time `json:"checked_at"`
}

type Verifier struct {
	httpClient *http.Client
	log        *zap.Logger
	maxRetries int
}

func NewVerifier(timeoutMS, maxRetries int, log *zap.Logger) *Verifier {
	return &Verifier{
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutMS) * time.Millisecond,
		},
		log:        log,
		maxRetries: maxRetries,
	}
}

// Check fetches the post URL and inspects the page metadata. Transient
// failures are retried with backoff.
func (v *Verifier) Check(ctx context.Context, postURL string) (*CheckResult, error) {
	var doc *goquery.Document
	var lastErr error

	for attempt := 0; attempt <= v.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, postURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")

		resp, err := v.httpClient.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("HTTP %d for %s", resp.StatusCode, postURL)
			time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
			continue
		}

		doc, err = goquery.NewDocumentFromReader(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		lastErr = nil
		break
	}

	if lastErr != nil {
		return nil, lastErr
	}

	result := Inspect(doc)
	result.URL = postURL
	result.CheckedAt = time.Now()
	return result, nil
}

// Inspect extracts the publication signals from a parsed page: Open Graph
// tags first, plain <title> as fallback.
func Inspect(doc *goquery.Document) *CheckResult {
	result := &CheckResult{}

	doc.Find("meta").Each(func(i int, s *goquery.Selection) {
		prop, _ := s.Attr("property")
		content, _ := s.Attr("content")
		switch prop {
		case "og:title":
			if result.Title == "" {
				result.Title = strings.TrimSpace(content)
			}
		case "og:description":
			if result.Description == "" {
				result.Description = strings.TrimSpace(content)
			}
		}
	})

	if result.Title == "" {
		result.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	result.Published = result.Title != ""
	return result
}

package youtube

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
)

const (
	watchURLFormat = "https://www.youtube.com/watch?v=%s"
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/96.0.4664.110 Safari/537.36"
)

var (
	consentFormRe  = regexp.MustCompile(`action="https://consent\.youtube\.com/s`)
	consentValueRe = regexp.MustCompile(`name="v" value="(.*?)"`)
)

func (c *Client) fetch(ctx context.Context, url string, cookie *http.Cookie) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// fetchWatchPage downloads the watch page HTML for a video, setting the
// CONSENT cookie and retrying once when YouTube serves the EU consent
// interstitial instead of the player page.
func (c *Client) fetchWatchPage(ctx context.Context, videoID string) ([]byte, error) {
	watchURL := fmt.Sprintf(watchURLFormat, videoID)

	body, err := c.fetch(ctx, watchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch watch page: %w", err)
	}

	if !consentFormRe.Match(body) {
		return body, nil
	}

	cookie, err := consentCookie(body)
	if err != nil {
		return nil, err
	}

	body, err = c.fetch(ctx, watchURL, cookie)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch watch page after consent: %w", err)
	}
	return body, nil
}

func consentCookie(body []byte) (*http.Cookie, error) {
	m := consentValueRe.FindSubmatch(body)
	if len(m) < 2 {
		return nil, fmt.Errorf("consent required but no consent value found in page")
	}

	return &http.Cookie{
		Name:   "CONSENT",
		Value:  "YES+" + string(m[1]),
		Domain: ".youtube.com",
	}, nil
}

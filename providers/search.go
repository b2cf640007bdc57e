package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"being/activities"
)

// DuckDuckGo answers topic lookups through the Instant Answer API. Best
// effort: topics without an instant answer come back with an empty abstract.
type DuckDuckGo struct {
	client  *http.Client
	baseURL string
}

func NewDuckDuckGo() *DuckDuckGo {
	return &DuckDuckGo{
		client:  &http.Client{Timeout: callTimeout},
		baseURL: "https://api.duckduckgo.com",
	}
}

type instantAnswer struct {
	AbstractText   string `json:"AbstractText"`
	AbstractSource string `json:"AbstractSource"`
	Heading        string `json:"Heading"`
}

func (d *DuckDuckGo) Search(ctx context.Context, topic string) (*activities.SearchResult, error) {
	query := url.Values{}
	query.Set("q", topic)
	query.Set("format", "json")
	query.Set("no_html", "1")
	query.Set("skip_disambig", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"/?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "digital-being/1.0 (read-only)")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("search http status: %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2_000_000))
	if err != nil {
		return nil, err
	}

	var answer instantAnswer
	if err := json.Unmarshal(body, &answer); err != nil {
		return nil, fmt.Errorf("search returned malformed payload: %w", err)
	}

	return &activities.SearchResult{
		Abstract: answer.AbstractText,
		Source:   answer.AbstractSource,
	}, nil
}
